package player

import (
	"github.com/nullmove/tairitsu/pkg/board"
	"github.com/nullmove/tairitsu/pkg/eval"
	"github.com/nullmove/tairitsu/pkg/search"
)

// SearchingPlayer dispatches to the exact endgame solver once few
// enough empties remain, and to the heuristic midgame searcher
// otherwise.
type SearchingPlayer struct {
	evaluator    eval.Evaluator
	midgameDepth int
	endgameDepth int
	solver       *search.EndgameSolver
	searcher     *search.MidgameSearcher
}

// NewSearchingPlayer returns a player that scores positions with
// evaluator, searching midgameDepth plies in the midgame and solving
// exactly once empty_squares <= endgameDepth.
func NewSearchingPlayer(evaluator eval.Evaluator, midgameDepth, endgameDepth int) *SearchingPlayer {
	if evaluator == nil {
		panic("player: evaluator must not be nil")
	}
	return &SearchingPlayer{
		evaluator:    evaluator,
		midgameDepth: midgameDepth,
		endgameDepth: endgameDepth,
		solver:       search.NewEndgameSolver(),
		searcher:     search.NewMidgameSearcher(),
	}
}

func (p *SearchingPlayer) GetMove(state board.GameState) board.Coords {
	if state.LegalMoves == 0 {
		return board.None
	}
	if state.Board.CountEmpty() <= p.endgameDepth {
		return p.solver.Solve(state).Move
	}
	return p.searcher.Search(state, p.evaluator, p.midgameDepth).Move
}
