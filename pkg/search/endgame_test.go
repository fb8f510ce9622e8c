package search

import (
	"testing"

	"github.com/nullmove/tairitsu/pkg/board"
)

// nearEndState plays a short fixed sequence from the opening to reach
// a position with few empty squares, cheap enough for exhaustive
// endgame search in a test.
func nearEndState(t *testing.T, plies int) board.GameState {
	t.Helper()
	s := board.NewGameState()
	for i := 0; i < plies; i++ {
		if s.LegalMoves == 0 {
			s = s.PlayCopied(board.None)
			continue
		}
		move := board.Coords(firstSetBit(s.LegalMoves))
		s = s.PlayCopied(move)
	}
	return s
}

func firstSetBit(mask uint64) int {
	for i := 0; i < 64; i++ {
		if mask&(1<<uint(i)) != 0 {
			return i
		}
	}
	return -1
}

func TestSolveScoreMatchesEvaluate(t *testing.T) {
	s := nearEndState(t, 54) // leaves roughly 6-10 empties
	solver := NewEndgameSolver()
	solveRes := solver.Solve(s)
	evalRes := solver.Evaluate(s)
	if solveRes.Score != evalRes.Score {
		t.Fatalf("solve score %d != evaluate score %d", solveRes.Score, evalRes.Score)
	}
}

func TestSolveMoveIsLegalOrNone(t *testing.T) {
	s := nearEndState(t, 50)
	solver := NewEndgameSolver()
	res := solver.Solve(s)
	if res.Move == board.None {
		if s.LegalMoves != 0 {
			t.Fatalf("solve returned none despite legal moves existing")
		}
		return
	}
	if s.LegalMoves&res.Move.Bit() == 0 {
		t.Fatalf("solve returned an illegal move %v", res.Move)
	}
}

func TestNegamaxAndPVSAgreeAtShallowDepth(t *testing.T) {
	s := nearEndState(t, 59) // leaves 5 empties (the fixture passes twice on the way)
	solver := NewEndgameSolver()
	depth := s.Board.CountEmpty()
	if depth > 5 {
		t.Skipf("fixture reached depth %d, need <=5 to exercise the plain-negamax path", depth)
	}
	viaNegamax := solver.negamax(s, -intInf, intInf, depth, false)
	viaNegascout := solver.negascout(s, -intInf, intInf, depth, false)
	if viaNegamax != viaNegascout {
		t.Fatalf("negamax and negascout disagree at depth %d: %d vs %d", depth, viaNegamax, viaNegascout)
	}
}
