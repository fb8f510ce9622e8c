package board

import (
	"fmt"

	"github.com/nullmove/tairitsu/pkg/bit"
	"github.com/nullmove/tairitsu/pkg/flip"
)

// GameState is a position plus the side to move and its cached legal
// moves. Invariant: LegalMoves == Board.FindLegalMoves(Current), and
// LegalMoves never overlaps occupied squares.
type GameState struct {
	Current    Color
	Board      Board
	LegalMoves bit.Board
}

// NewGameState returns the standard opening, black to move.
func NewGameState() GameState {
	b := NewBoard()
	return GameState{
		Current:    Black,
		Board:      b,
		LegalMoves: b.FindLegalMoves(Black),
	}
}

// FromBoardAndColor builds a GameState from an arbitrary board and
// side to move, recomputing legal moves.
func FromBoardAndColor(b Board, color Color) GameState {
	return GameState{
		Current:    color,
		Board:      b,
		LegalMoves: b.FindLegalMoves(color),
	}
}

// Self returns the bitboard of the side to move's own disks.
func (s GameState) Self() bit.Board {
	if s.Current == Black {
		return s.Board.Black
	}
	return s.Board.White
}

// Opponent returns the bitboard of the side not to move.
func (s GameState) Opponent() bit.Board {
	if s.Current == White {
		return s.Board.Black
	}
	return s.Board.White
}

// SwapColors flips both the board's disks and the side to move.
func (s *GameState) SwapColors() {
	s.Board.SwapColors()
	s.Current = s.Current.Opponent()
}

// Canonicalize rewrites the state in place so Current becomes Black,
// making side-agnostic caching possible.
func (s *GameState) Canonicalize() {
	if s.Current == White {
		s.SwapColors()
	}
}

// Canonicalized returns a canonicalized copy, leaving s untouched.
func (s GameState) Canonicalized() GameState {
	s.Canonicalize()
	return s
}

// CanonicalBoard returns {Self, Opponent} without mutating s.
func (s GameState) CanonicalBoard() Board {
	return Board{Black: s.Self(), White: s.Opponent()}
}

// DiskDifference returns the board's disk difference from Current's
// perspective.
func (s GameState) DiskDifference() int {
	return s.Current.Sign() * s.Board.DiskDifference()
}

// FinalScore computes the terminal score, assuming s.LegalMoves == 0
// and the side after a pass also has none. The winner receives every
// empty square.
func (s GameState) FinalScore() int {
	if s.LegalMoves != 0 {
		panic("final score requested on a non-terminal state")
	}
	black, white := s.Board.CountBlack(), s.Board.CountWhite()
	empty := CellCount - black - white
	diff := black - white
	bonus := 0
	switch {
	case diff > 0:
		bonus = empty
	case diff < 0:
		bonus = -empty
	}
	return s.Current.Sign() * (diff + bonus)
}

// Play applies a move (or a pass, via None) in place.
//
// A pass asserts LegalMoves == 0, flips Current, and recomputes
// LegalMoves for the new side. A real move asserts the bit is set in
// LegalMoves, finds the flipped disks (which include the placed bit
// itself), merges them into self, clears them from opponent, flips
// Current, and recomputes LegalMoves.
func (s *GameState) Play(c Coords) {
	if c == None {
		if s.LegalMoves != 0 {
			panic("pass played while legal moves exist")
		}
		s.Current = s.Current.Opponent()
		s.LegalMoves = s.Board.FindLegalMoves(s.Current)
		return
	}
	if s.LegalMoves&c.Bit() == 0 {
		panic(fmt.Sprintf("illegal move %v played", c))
	}
	selfPtr, oppPtr := &s.Board.Black, &s.Board.White
	if s.Current == White {
		selfPtr, oppPtr = &s.Board.White, &s.Board.Black
	}
	flips := flip.FindFlips(int(c), *selfPtr, *oppPtr)
	*selfPtr |= flips
	*oppPtr &^= flips
	s.Current = s.Current.Opponent()
	s.LegalMoves = s.Board.FindLegalMoves(s.Current)
}

// PlayCopied returns a copy of s with c played, leaving s untouched.
func (s GameState) PlayCopied(c Coords) GameState {
	s.Play(c)
	return s
}

// MirrorMainDiagonal transforms the board and legal moves in place.
func (s *GameState) MirrorMainDiagonal() {
	s.Board.Black = bit.MirrorMainDiagonal(s.Board.Black)
	s.Board.White = bit.MirrorMainDiagonal(s.Board.White)
	s.LegalMoves = bit.MirrorMainDiagonal(s.LegalMoves)
}

// MirrorAntiDiagonal transforms the board and legal moves in place.
func (s *GameState) MirrorAntiDiagonal() {
	s.Board.Black = bit.MirrorAntiDiagonal(s.Board.Black)
	s.Board.White = bit.MirrorAntiDiagonal(s.Board.White)
	s.LegalMoves = bit.MirrorAntiDiagonal(s.LegalMoves)
}

// Rotate180 transforms the board and legal moves in place.
func (s *GameState) Rotate180() {
	s.Board.Black = bit.Rotate180(s.Board.Black)
	s.Board.White = bit.Rotate180(s.Board.White)
	s.LegalMoves = bit.Rotate180(s.LegalMoves)
}

// String renders the board followed by a trailing 'X'/'O' for Current.
func (s GameState) String() string {
	c := byte('X')
	if s.Current == White {
		c = 'O'
	}
	return s.Board.String() + string(c)
}

// ParseGameState parses a board string followed by one trailing
// black/white sentinel character denoting the side to move.
func ParseGameState(repr string, black, white, space byte) (GameState, error) {
	if len(repr) != CellCount+1 {
		return GameState{}, fmt.Errorf("board: game state representation must be %d characters, got %d", CellCount+1, len(repr))
	}
	colorChar := repr[len(repr)-1]
	var color Color
	switch colorChar {
	case black:
		color = Black
	case white:
		color = White
	default:
		return GameState{}, fmt.Errorf("board: invalid side-to-move character %q", colorChar)
	}
	b, err := ParseBoard(repr[:CellCount], black, white, space)
	if err != nil {
		return GameState{}, err
	}
	return FromBoardAndColor(b, color), nil
}
