package board

import (
	"testing"

	"github.com/nullmove/tairitsu/pkg/bit"
)

func TestStandardOpeningLegalMoves(t *testing.T) {
	s := NewGameState()
	// c4, d3, e6, f5 in that coordinate system.
	want := []Coords{CoordOf(2, 3), CoordOf(3, 2), CoordOf(4, 5), CoordOf(5, 4)}
	var mask uint64
	for _, c := range want {
		mask |= c.Bit()
	}
	if s.LegalMoves != mask {
		t.Fatalf("legal moves from standard opening: got %#x want %#x", s.LegalMoves, mask)
	}
}

func TestLegalMovesAreAlwaysEmptySquares(t *testing.T) {
	s := NewGameState()
	if s.LegalMoves&(s.Board.Black|s.Board.White) != 0 {
		t.Fatalf("legal moves must not overlap occupied squares")
	}
}

func TestPlayFlipsAtLeastOneDiskAndSide(t *testing.T) {
	s := NewGameState()
	before := s.Current
	c, ok := firstMove(s.LegalMoves)
	if !ok {
		t.Fatal("expected a legal move")
	}
	next := s.PlayCopied(c)
	if next.Current == before {
		t.Fatalf("current side must flip after play")
	}
	if !next.Board.IsBlack(c) && !next.Board.IsWhite(c) {
		t.Fatalf("played-to square must be occupied after play")
	}
	if next.Board.CountTotal() <= s.Board.CountTotal() {
		t.Fatalf("total disk count must increase after play")
	}
	if next.LegalMoves != next.Board.FindLegalMoves(next.Current) {
		t.Fatalf("legal moves invariant violated after play")
	}
}

func TestSymmetryCommutesWithLegalMoves(t *testing.T) {
	s := NewGameState()
	s.Play(firstMoveMust(s.LegalMoves))
	orig := s
	transformed := s
	transformed.MirrorMainDiagonal()
	wantLegal := bit.MirrorMainDiagonal(orig.Board.FindLegalMoves(orig.Current))
	if transformed.Board.FindLegalMoves(transformed.Current) != wantLegal {
		t.Fatalf("mirror_main_diagonal does not commute with legal move generation")
	}
}

func TestFinalScoreGivesEmptyToWinner(t *testing.T) {
	// All black but two empty squares: black should collect the empties.
	b := Board{Black: ^uint64(0) &^ (1<<62 | 1<<63), White: 0}
	s := FromBoardAndColor(b, Black)
	s.LegalMoves = 0
	score := s.FinalScore()
	want := b.CountBlack() - b.CountWhite() + b.CountEmpty()
	if score != want {
		t.Fatalf("got %d want %d", score, want)
	}
}

func TestCoordStringRoundtrip(t *testing.T) {
	for i := 0; i < CellCount; i++ {
		c := Coords(i)
		s := c.String()
		parsed, ok := ParseCoord(s)
		if !ok || parsed != c {
			t.Fatalf("roundtrip failed for coord %d: %q -> %v", i, s, parsed)
		}
	}
	if None.String() != "Pass" {
		t.Fatalf("None must render as Pass")
	}
}

func TestRotate180Involution(t *testing.T) {
	s := NewGameState()
	s.Play(firstMoveMust(s.LegalMoves))
	orig := s
	s.Rotate180()
	s.Rotate180()
	if s != orig {
		t.Fatalf("rotate_180 applied twice must be identity")
	}
}

func firstMove(mask uint64) (Coords, bool) {
	if mask == 0 {
		return None, false
	}
	for i := 0; i < 64; i++ {
		if mask&(1<<uint(i)) != 0 {
			return Coords(i), true
		}
	}
	return None, false
}

func firstMoveMust(mask uint64) Coords {
	c, _ := firstMove(mask)
	return c
}
