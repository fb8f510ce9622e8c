package opening

import (
	"testing"

	"github.com/nullmove/tairitsu/pkg/board"
)

// twoPlyLine replays the first legal move twice from the starting
// position and renders it as a parseable opening line, so tests don't
// need to hardcode coordinates that happen to stay legal in sequence.
func twoPlyLine(t *testing.T) string {
	t.Helper()
	s := board.NewGameState()
	c1, ok := firstLegal(s.LegalMoves)
	if !ok {
		t.Fatal("expected a legal opening move")
	}
	s = s.PlayCopied(c1)
	c2, ok := firstLegal(s.LegalMoves)
	if !ok {
		t.Fatal("expected a legal reply")
	}
	return c1.String() + c2.String()
}

func firstLegal(mask uint64) (board.Coords, bool) {
	if mask == 0 {
		return board.None, false
	}
	for i := 0; i < 64; i++ {
		if mask&(uint64(1)<<uint(i)) != 0 {
			return board.CoordOf(i%8, i/8), true
		}
	}
	return board.None, false
}

func TestParseSkipsBlankAndCommentLines(t *testing.T) {
	text := "\n// a comment\n" + twoPlyLine(t) + "\n\n"
	openings, err := Parse(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(openings) != 1 {
		t.Fatalf("expected 1 opening, got %d", len(openings))
	}
}

func TestParseRejectsOddLengthLine(t *testing.T) {
	if _, err := Parse("F5D"); err == nil {
		t.Fatalf("expected error for an odd-length opening line")
	}
}

func TestParseRejectsIllegalMove(t *testing.T) {
	if _, err := Parse("A1"); err == nil {
		t.Fatalf("expected error for a move that is not legal from the opening position")
	}
}

func TestParseRejectsMalformedCoordinate(t *testing.T) {
	if _, err := Parse("Z9"); err == nil {
		t.Fatalf("expected error for a malformed coordinate")
	}
}

func TestExpandD4ReturnsFourDistinctLegalMoveSets(t *testing.T) {
	openings, err := Parse(twoPlyLine(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	orbit := ExpandD4(openings[0])

	seen := map[uint64]bool{}
	for _, state := range orbit {
		seen[state.LegalMoves] = true
		if state.Board.FindLegalMoves(state.Current) != state.LegalMoves {
			t.Fatalf("GameState invariant broken after symmetry transform: %+v", state)
		}
	}
	if len(seen) != 4 {
		t.Fatalf("expected four distinct legal-move sets in the orbit, got %d", len(seen))
	}
}

func TestExpandD4IdentityElementMatchesInput(t *testing.T) {
	openings, err := Parse(twoPlyLine(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	orbit := ExpandD4(openings[0])
	if orbit[0] != openings[0] {
		t.Fatalf("expected the first orbit element to be the identity")
	}
}
