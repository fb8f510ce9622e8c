package search

import (
	"math"
	"sort"

	"github.com/nullmove/tairitsu/pkg/bit"
	"github.com/nullmove/tairitsu/pkg/board"
	"github.com/nullmove/tairitsu/pkg/eval"
	"github.com/nullmove/tairitsu/pkg/tt"
)

// minShallow is the depth at which move ordering switches from
// mobility to a half-depth PVS of each candidate.
const minShallow = 10

// minMidgamePVSDepth is the depth below which negascout defers to
// plain negamax, mirroring the endgame solver's own threshold but at
// the midgame searcher's shallower value.
const minMidgamePVSDepth = 4

// MidgameSearcher is a PVS search identical in control flow to
// EndgameSolver, but scoring leaves with an Evaluator instead of the
// exact disk difference, and keying its TT by search depth rather
// than by lookahead.
type MidgameSearcher struct {
	nodes  uint64
	table  *tt.Table[float32]
	record *board.GameRecord
	ev     eval.Evaluator
}

// NewMidgameSearcher returns a searcher with its own transposition
// table.
func NewMidgameSearcher() *MidgameSearcher {
	return &MidgameSearcher{table: tt.New[float32](0)}
}

// Entries enumerates the searcher's transposition table, used to
// harvest training labels after a Search/Evaluate call. The table is
// cleared again at the start of the next Search/Evaluate.
func (m *MidgameSearcher) Entries() []tt.Entry[float32] { return m.table.Entries() }

// Evaluate returns the principal score of state at depth, without
// choosing a move.
func (m *MidgameSearcher) Evaluate(state board.GameState, evaluator eval.Evaluator, depth int) EvalResultF {
	m.nodes = 0
	m.ev = evaluator
	m.record = board.NewGameRecord(state)
	m.table.Clear()
	score := m.negascout(math.Inf(-1), math.Inf(1), depth, false)
	return EvalResultF{TraversedNodes: m.nodes, Score: float32(score)}
}

// Search returns the principal score and best move of state at depth.
func (m *MidgameSearcher) Search(state board.GameState, evaluator eval.Evaluator, depth int) SolveResultF {
	m.nodes = 0
	m.ev = evaluator
	m.record = board.NewGameRecord(state)
	m.table.Clear()
	if state.LegalMoves == 0 {
		m.record.Play(board.None)
		score := -m.negascout(math.Inf(-1), math.Inf(1), depth, false)
		return SolveResultF{TraversedNodes: m.nodes, Score: float32(score), Move: board.None}
	}
	res := SolveResultF{Score: float32(math.Inf(-1)), Move: board.None}
	it := bit.SetBits{Bits: state.LegalMoves}
	for {
		b, ok := it.Next()
		if !ok {
			break
		}
		move := board.Coords(b)
		m.record.Play(move)
		score := -m.negascout(math.Inf(-1), -float64(res.Score), depth-1, false)
		m.record.Undo()
		if float32(score) > res.Score {
			res.Score = float32(score)
			res.Move = move
		}
	}
	res.TraversedNodes = m.nodes
	return res
}

// EvalResultF mirrors EvalResult for the evaluator-scored search.
type EvalResultF struct {
	TraversedNodes uint64
	Score          float32
}

// SolveResultF mirrors SolveResult for the evaluator-scored search.
type SolveResultF struct {
	TraversedNodes uint64
	Score          float32
	Move           board.Coords
}

func (m *MidgameSearcher) negamax(alpha, beta float64, depth int, passed bool) float64 {
	m.nodes++
	state := m.record.CurrentCanonical()
	if depth == 0 {
		return float64(m.ev.Evaluate(state.Board))
	}
	moves := state.LegalMoves
	if moves == 0 {
		if passed {
			return float64(state.FinalScore())
		}
		m.record.Play(board.None)
		score := -m.negamax(-beta, -alpha, depth, true)
		m.record.Undo()
		return score
	}
	it := bit.SetBits{Bits: moves}
	for {
		b, ok := it.Next()
		if !ok {
			break
		}
		m.record.Play(board.Coords(b))
		score := -m.negamax(-beta, -alpha, depth-1, false)
		m.record.Undo()
		if score > alpha {
			if score >= beta {
				return score
			}
			alpha = score
		}
	}
	return alpha
}

func (m *MidgameSearcher) negascout(alpha, beta float64, depth int, passed bool) float64 {
	if depth < minMidgamePVSDepth {
		return m.negamax(alpha, beta, depth, passed)
	}
	m.nodes++
	state := m.record.CurrentCanonical()
	hash := m.table.Hash(state.Board)
	bounds := board.Bounds[float32]{Lower: float32(math.Inf(-1)), Upper: float32(math.Inf(1))}
	if loaded, ok := m.table.TryLoadHinted(state.Board, depth, hash); ok {
		bounds = loaded
		switch {
		case float64(bounds.Upper) <= alpha:
			return float64(bounds.Upper)
		case float64(bounds.Lower) >= beta:
			return float64(bounds.Lower)
		case bounds.Upper == bounds.Lower:
			return float64(bounds.Lower)
		}
		if float64(bounds.Lower) > alpha {
			alpha = float64(bounds.Lower)
		}
		if float64(bounds.Upper) < beta {
			beta = float64(bounds.Upper)
		}
	}

	score := math.Inf(-1)
	storeScore := func(score float64) {
		s := float32(score)
		switch {
		case score <= alpha:
			m.table.StoreHinted(state.Board, depth, board.Bounds[float32]{Lower: bounds.Lower, Upper: s}, hash)
		case score >= beta:
			m.table.StoreHinted(state.Board, depth, board.Bounds[float32]{Lower: s, Upper: bounds.Upper}, hash)
		default:
			m.table.StoreHinted(state.Board, depth, board.Exact(s), hash)
		}
	}

	moves := state.LegalMoves
	if moves == 0 {
		if passed {
			score = float64(state.FinalScore())
			m.table.StoreHinted(state.Board, depth, board.Exact(float32(score)), hash)
			return score
		}
		m.record.Play(board.None)
		score = -m.negascout(-beta, -alpha, depth, true)
		m.record.Undo()
		storeScore(score)
		return score
	}

	for _, move := range m.orderMoves(moves, depth) {
		m.record.Play(move)
		lower := alpha
		if score > lower {
			lower = score
		}
		var newScore float64
		if math.IsInf(lower, -1) {
			newScore = -m.negascout(-beta, math.Inf(1), depth-1, false)
		} else {
			newScore = -m.negascout(-math.Nextafter(lower, math.Inf(1)), -lower, depth-1, false)
			if lower < newScore && newScore < beta {
				newScore = -m.negascout(-beta, -lower, depth-1, false)
			}
		}
		m.record.Undo()
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

// orderMoves sorts moves by opponent mobility ascending, or, once
// depth reaches minShallow, by a half-depth PVS score of each
// candidate, descending.
func (m *MidgameSearcher) orderMoves(moves bit.Board, depth int) []board.Coords {
	if depth < minShallow {
		return sortByMobility(m.record, moves)
	}
	type weighted struct {
		move  board.Coords
		score float64
	}
	var weightedMoves []weighted
	it := bit.SetBits{Bits: moves}
	for {
		b, ok := it.Next()
		if !ok {
			break
		}
		move := board.Coords(b)
		m.record.Play(move)
		s := -m.negascout(math.Inf(-1), math.Inf(1), depth/2, false)
		m.record.Undo()
		weightedMoves = append(weightedMoves, weighted{move: move, score: s})
	}
	sort.Slice(weightedMoves, func(i, j int) bool { return weightedMoves[i].score > weightedMoves[j].score })
	res := make([]board.Coords, len(weightedMoves))
	for i, w := range weightedMoves {
		res[i] = w.move
	}
	return res
}

func sortByMobility(record *board.GameRecord, moves bit.Board) []board.Coords {
	if bit.PopCount(moves) == 1 {
		return []board.Coords{board.Coords(bit.TrailingZeros(moves))}
	}
	type weighted struct {
		move   board.Coords
		weight int
	}
	var weightedMoves []weighted
	it := bit.SetBits{Bits: moves}
	for {
		b, ok := it.Next()
		if !ok {
			break
		}
		move := board.Coords(b)
		record.Play(move)
		weight := bit.PopCount(record.Current().LegalMoves)
		record.Undo()
		weightedMoves = append(weightedMoves, weighted{move: move, weight: weight})
	}
	sort.Slice(weightedMoves, func(i, j int) bool { return weightedMoves[i].weight < weightedMoves[j].weight })
	res := make([]board.Coords, len(weightedMoves))
	for i, w := range weightedMoves {
		res[i] = w.move
	}
	return res
}
