package train

import (
	"log"
	"sync"

	"github.com/nullmove/tairitsu/pkg/board"
	"github.com/nullmove/tairitsu/pkg/eval"
	"github.com/nullmove/tairitsu/pkg/player"
	"github.com/nullmove/tairitsu/pkg/rng"
	"github.com/nullmove/tairitsu/pkg/search"
	"github.com/nullmove/tairitsu/pkg/workerpool"
)

// GenerateDatasetViaSelfPlay plays opts.TotalGames self-play games
// split evenly across opts.WorkerCount workers (the caller's own
// goroutine is the last worker), harvesting a DataPoint per searched
// position plus every transposition table entry from the search that
// produced it.
func GenerateDatasetViaSelfPlay(evaluator eval.Evaluator, opts DataGenerationOptions) []eval.DataPoint {
	if opts.WorkerCount <= 0 {
		panic("train: WorkerCount must be positive")
	}
	counts := workerpool.Split(opts.TotalGames, opts.WorkerCount)

	var mu sync.Mutex
	var dataset []eval.DataPoint
	var sizeTracker int

	work := make([]func(int), opts.WorkerCount)
	for i := range work {
		work[i] = func(workerID int) {
			local := generateWorkerDataset(evaluator, opts, workerID, counts[workerID], func(increment int) {
				mu.Lock()
				sizeTracker += increment
				if opts.ShowProgress {
					log.Printf("[worker %3d] accumulated dataset size: %d", workerID, sizeTracker)
				}
				mu.Unlock()
			})
			mu.Lock()
			dataset = append(dataset, local...)
			mu.Unlock()
		}
	}
	workerpool.Run(work)
	return dataset
}

// generateWorkerDataset runs totalGames self-play games on the
// calling goroutine, using its own searcher, solver, and RNG.
func generateWorkerDataset(
	evaluator eval.Evaluator,
	opts DataGenerationOptions,
	workerID, totalGames int,
	onGameFinished func(increment int),
) []eval.DataPoint {
	var source rng.Source
	if opts.Seed != nil {
		source = rng.New(*opts.Seed + int64(workerID))
	} else {
		source = rng.NewUnseeded()
	}
	randomPlayer := player.NewRandomPlayer(source)
	searcher := search.NewMidgameSearcher()
	solver := search.NewEndgameSolver()

	var local []eval.DataPoint
	for i := 0; i < totalGames; i++ {
		oldSize := len(local)
		local = playOneGame(evaluator, opts, source, randomPlayer, searcher, solver, local)
		onGameFinished(len(local) - oldSize)
	}
	return local
}

func playOneGame(
	evaluator eval.Evaluator,
	opts DataGenerationOptions,
	source rng.Source,
	randomPlayer *player.RandomPlayer,
	searcher *search.MidgameSearcher,
	solver *search.EndgameSolver,
	local []eval.DataPoint,
) []eval.DataPoint {
	oldDatasetSize := len(local)
	state := board.NewGameState()
	for {
		if state.LegalMoves == 0 {
			state = state.PlayCopied(board.None)
			if state.LegalMoves == 0 {
				break
			}
			continue
		}
		total := state.Board.CountTotal()
		if board.CellCount-total <= opts.EndgameSolveDepth {
			middleSize := len(local)
			solveRes := solver.Solve(state)
			local = append(local, eval.DataPoint{
				Board:  state.CanonicalBoard(),
				Bounds: board.Exact(float32(solveRes.Score)),
			})
			for _, e := range solver.Entries() {
				local = append(local, eval.DataPoint{
					Board:  e.Board,
					Bounds: board.Bounds[float32]{Lower: float32(e.Bounds.Lower), Upper: float32(e.Bounds.Upper)},
				})
			}
			solver.ClearTT()
			if !opts.BalancePhases {
				break
			}
			local = balancePhasesInPlace(local, oldDatasetSize, middleSize, opts, source)
			break
		}

		searchRes := searcher.Search(state, evaluator, opts.MidgameSearchDepth)
		local = append(local, eval.DataPoint{
			Board:  state.CanonicalBoard(),
			Bounds: board.Exact(searchRes.Score),
		})
		for _, e := range searcher.Entries() {
			local = append(local, eval.DataPoint{Board: e.Board, Bounds: e.Bounds})
		}

		useRandom := total-4 < opts.InitialRandomMoves || source.Bernoulli(opts.Epsilon)
		var move board.Coords
		if useRandom {
			move = randomPlayer.GetMove(state)
		} else {
			move = searchRes.Move
		}
		state = state.PlayCopied(move)
	}
	return local
}

// balancePhasesInPlace equalizes training signal across game phases:
// it histograms this game's midgame block by disk count, computes a
// per-disk-count target from that histogram, shuffles the end-of-game
// block just appended, and keeps only entries whose disk count is
// still under target, truncating the rest.
func balancePhasesInPlace(local []eval.DataPoint, oldDatasetSize, middleSize int, opts DataGenerationOptions, source rng.Source) []eval.DataPoint {
	middle := local[oldDatasetSize:middleSize]
	end := local[middleSize:]

	var hist [board.CellCount]int
	for _, dp := range middle {
		hist[dp.Board.CountTotal()]++
	}

	start := 4 + opts.InitialRandomMoves
	stop := board.CellCount - opts.EndgameSolveDepth
	target := balanceTarget(hist, start, stop)

	source.Shuffle(len(end), func(i, j int) { end[i], end[j] = end[j], end[i] })

	last := 0
	for _, dp := range end {
		disks := dp.Board.CountTotal()
		if hist[disks] >= target {
			continue
		}
		hist[disks]++
		end[last] = dp
		last++
	}
	return local[:middleSize+last]
}

func balanceTarget(hist [board.CellCount]int, start, stop int) int {
	if stop <= start {
		return 0
	}
	total := 0
	for i := start; i < stop; i++ {
		total += hist[i]
	}
	return total / (stop - start)
}
