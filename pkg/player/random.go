package player

import (
	"github.com/nullmove/tairitsu/pkg/bit"
	"github.com/nullmove/tairitsu/pkg/board"
	"github.com/nullmove/tairitsu/pkg/rng"
)

// RandomPlayer picks uniformly among the legal moves of the state it
// is given. It samples an index rather than materializing the move
// list: a random integer in [0, popcount(legal_moves)) is deposited
// into the legal_moves mask via ExpandByMask to land on the i-th set
// bit directly.
type RandomPlayer struct {
	Source rng.Source
}

// NewRandomPlayer returns a RandomPlayer drawing from source.
func NewRandomPlayer(source rng.Source) *RandomPlayer {
	return &RandomPlayer{Source: source}
}

func (p *RandomPlayer) GetMove(state board.GameState) board.Coords {
	if state.LegalMoves == 0 {
		return board.None
	}
	total := bit.PopCount(state.LegalMoves)
	idx := p.Source.Intn(total)
	moveMask := bit.ExpandByMask(bit.Board(1)<<uint(idx), state.LegalMoves)
	return board.Coords(bit.TrailingZeros(moveMask))
}
