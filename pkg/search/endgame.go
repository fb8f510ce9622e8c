// Package search implements the two-phase alpha-beta search: an
// exact EndgameSolver over the integer disk-difference score, and a
// heuristic MidgameSearcher over an Evaluator's float score. Both are
// single-threaded by construction, owning their own transposition
// table and node counter.
package search

import (
	"sort"

	"github.com/nullmove/tairitsu/pkg/bit"
	"github.com/nullmove/tairitsu/pkg/board"
	"github.com/nullmove/tairitsu/pkg/flip"
	"github.com/nullmove/tairitsu/pkg/tt"
)

const (
	minPVSDepth = 6
	intInf      = board.CellCount + 1
)

// EndgameSolver runs an exact negamax/PVS search to game end, scoring
// every leaf by the final integer disk difference.
type EndgameSolver struct {
	nodes uint64
	table *tt.Table[int]
}

// NewEndgameSolver returns a solver with its own transposition table.
func NewEndgameSolver() *EndgameSolver {
	return &EndgameSolver{table: tt.New[int](0)}
}

// Entries enumerates the solver's transposition table, used to
// harvest training labels after a Solve/Evaluate call.
func (e *EndgameSolver) Entries() []tt.Entry[int] { return e.table.Entries() }

// ClearTT empties the transposition table. Unlike MidgameSearcher,
// EndgameSolver does not clear automatically between calls, so
// callers that harvest entries must clear explicitly once done.
func (e *EndgameSolver) ClearTT() { e.table.Clear() }

// EvalResult is the outcome of Evaluate: the principal score and the
// number of nodes traversed to compute it.
type EvalResult struct {
	TraversedNodes uint64
	Score          int
}

// SolveResult is the outcome of Solve: the principal score, the move
// that achieves it (or None if the side to move must pass), and the
// number of nodes traversed.
type SolveResult struct {
	TraversedNodes uint64
	Score          int
	Move           board.Coords
}

// Evaluate returns the exact score of state without choosing a move.
func (e *EndgameSolver) Evaluate(state board.GameState) EvalResult {
	e.nodes = 0
	depth := state.Board.CountEmpty()
	score := e.negascout(state, -intInf, intInf, depth, false)
	return EvalResult{TraversedNodes: e.nodes, Score: score}
}

// Solve returns the exact score and best move of state.
func (e *EndgameSolver) Solve(state board.GameState) SolveResult {
	e.nodes = 0
	depth := state.Board.CountEmpty()
	if state.LegalMoves == 0 {
		score := -e.negascout(state.PlayCopied(board.None), -intInf, intInf, depth, true)
		return SolveResult{TraversedNodes: e.nodes, Score: score, Move: board.None}
	}
	res := SolveResult{Score: -intInf - 1, Move: board.None}
	it := bit.SetBits{Bits: state.LegalMoves}
	for {
		m, ok := it.Next()
		if !ok {
			break
		}
		move := board.Coords(m)
		score := -e.negascout(state.PlayCopied(move), -intInf, -res.Score, depth-1, false)
		if score > res.Score {
			res.Score = score
			res.Move = move
		}
	}
	res.TraversedNodes = e.nodes
	return res
}

func (e *EndgameSolver) negamax(state board.GameState, alpha, beta, depth int, passed bool) int {
	switch depth {
	case 0:
		e.nodes++
		return state.DiskDifference()
	case 1:
		return e.negamaxLast(state, passed)
	}
	e.nodes++
	moves := state.LegalMoves
	if moves == 0 {
		if passed {
			return state.FinalScore()
		}
		return -e.negamax(state.PlayCopied(board.None), -beta, -alpha, depth, true)
	}
	it := bit.SetBits{Bits: moves}
	for {
		m, ok := it.Next()
		if !ok {
			break
		}
		score := -e.negamax(state.PlayCopied(board.Coords(m)), -beta, -alpha, depth-1, false)
		if score > alpha {
			if score >= beta {
				return score
			}
			alpha = score
		}
	}
	return alpha
}

func (e *EndgameSolver) negamaxLast(state board.GameState, passed bool) int {
	e.nodes++
	moves := state.LegalMoves
	if moves == 0 {
		if passed {
			return state.FinalScore()
		}
		return -e.negamaxLast(state.PlayCopied(board.None), true)
	}
	canonical := state.CanonicalBoard()
	placed := bit.TrailingZeros(moves)
	flips := flip.CountFlips(placed, canonical.Black, canonical.White)
	return canonical.DiskDifference() + 1 + 2*flips
}

// lookaheadKey returns int(current): 0 for black to move, 1 for
// white. This is the endgame TT's key; unlike the midgame TT's depth
// key, it has no ">=" ordering and must be matched exactly.
func lookaheadKey(c board.Color) int {
	if c == board.White {
		return 1
	}
	return 0
}

func (e *EndgameSolver) negascout(state board.GameState, alpha, beta, depth int, passed bool) int {
	if depth < minPVSDepth {
		return e.negamax(state, alpha, beta, depth, passed)
	}
	e.nodes++
	state.Canonicalize()
	key := lookaheadKey(state.Current)
	hash := e.table.Hash(state.Board)
	bounds := board.Bounds[int]{Lower: -intInf, Upper: intInf}
	if loaded, ok := e.table.TryLoadExactHinted(state.Board, key, hash); ok {
		bounds = loaded
		switch {
		case bounds.Upper <= alpha:
			return bounds.Upper
		case bounds.Lower >= beta:
			return bounds.Lower
		case bounds.Upper == bounds.Lower:
			return bounds.Lower
		}
		if bounds.Lower > alpha {
			alpha = bounds.Lower
		}
		if bounds.Upper < beta {
			beta = bounds.Upper
		}
	}

	score := -intInf
	storeScore := func(score int) {
		switch {
		case score <= alpha:
			e.table.StoreHinted(state.Board, key, board.Bounds[int]{Lower: bounds.Lower, Upper: score}, hash)
		case score >= beta:
			e.table.StoreHinted(state.Board, key, board.Bounds[int]{Lower: score, Upper: bounds.Upper}, hash)
		default:
			e.table.StoreHinted(state.Board, key, board.Exact(score), hash)
		}
	}

	moves := state.LegalMoves
	if moves == 0 {
		if passed {
			score = state.FinalScore()
			e.table.StoreHinted(state.Board, key, board.Exact(score), hash)
			return score
		}
		score = -e.negascout(state.PlayCopied(board.None), -beta, -alpha, depth, true)
		storeScore(score)
		return score
	}

	for _, move := range sortMovesWithMobility(state) {
		next := state.PlayCopied(move)
		lower := alpha
		if score > lower {
			lower = score
		}
		var newScore int
		if lower == -intInf {
			newScore = -e.negascout(next, -beta, intInf, depth-1, false)
		} else {
			newScore = -e.negascout(next, -lower-1, -lower, depth-1, false)
			if lower < newScore && newScore < beta {
				newScore = -e.negascout(next, -beta, -lower, depth-1, false)
			}
		}
		if newScore > score {
			score = newScore
			if score >= beta {
				break
			}
		}
	}
	storeScore(score)
	return score
}

// sortMovesWithMobility orders state's legal moves by the opponent's
// resulting mobility, ascending, skipping the sort when there is only
// one candidate.
func sortMovesWithMobility(state board.GameState) []board.Coords {
	if bit.PopCount(state.LegalMoves) == 1 {
		return []board.Coords{board.Coords(bit.TrailingZeros(state.LegalMoves))}
	}
	type weighted struct {
		move   board.Coords
		weight int
	}
	var moves []weighted
	it := bit.SetBits{Bits: state.LegalMoves}
	for {
		m, ok := it.Next()
		if !ok {
			break
		}
		move := board.Coords(m)
		next := state.PlayCopied(move)
		moves = append(moves, weighted{move: move, weight: bit.PopCount(next.LegalMoves)})
	}
	sort.Slice(moves, func(i, j int) bool { return moves[i].weight < moves[j].weight })
	res := make([]board.Coords, len(moves))
	for i, w := range moves {
		res[i] = w.move
	}
	return res
}
