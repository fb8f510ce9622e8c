package player

import (
	"testing"

	"github.com/nullmove/tairitsu/pkg/board"
	"github.com/nullmove/tairitsu/pkg/rng"
)

func TestRandomPlayerReturnsNoneWithoutLegalMoves(t *testing.T) {
	p := NewRandomPlayer(rng.New(1))
	state := board.GameState{}
	if got := p.GetMove(state); got != board.None {
		t.Fatalf("expected None with no legal moves, got %v", got)
	}
}

func TestRandomPlayerAlwaysReturnsALegalMove(t *testing.T) {
	p := NewRandomPlayer(rng.New(1))
	state := board.NewGameState()
	for i := 0; i < 100; i++ {
		move := p.GetMove(state)
		if state.LegalMoves&move.Bit() == 0 {
			t.Fatalf("random player returned illegal move %v", move)
		}
	}
}

func TestRandomPlayerCanReturnEveryLegalMove(t *testing.T) {
	p := NewRandomPlayer(rng.New(7))
	state := board.NewGameState()
	seen := map[board.Coords]bool{}
	for i := 0; i < 500; i++ {
		seen[p.GetMove(state)] = true
	}
	it := state.LegalMoves
	for it != 0 {
		sq := trailingZerosLocal(it)
		if !seen[board.Coords(sq)] {
			t.Fatalf("move %d never sampled in 500 draws", sq)
		}
		it &= it - 1
	}
}

func trailingZerosLocal(b uint64) int {
	for i := 0; i < 64; i++ {
		if b&(1<<uint(i)) != 0 {
			return i
		}
	}
	return 64
}
