package board

import (
	"fmt"
	"math/bits"

	"github.com/nullmove/tairitsu/pkg/bit"
)

const CellCount = boardLength * boardLength

// Color is one of the two sides, black moving first.
type Color bool

const (
	Black Color = false
	White Color = true
)

// Opponent returns the other color.
func (c Color) Opponent() Color { return !c }

// Sign returns +1 for black, -1 for white.
func (c Color) Sign() int {
	if c == Black {
		return 1
	}
	return -1
}

func (c Color) String() string {
	if c == Black {
		return "black"
	}
	return "white"
}

// Board holds the two disjoint disk bitboards. The zero value is the
// empty board; NewBoard returns the standard Othello opening.
type Board struct {
	Black bit.Board
	White bit.Board
}

// Empty is the zero-disk board.
var Empty = Board{}

// NewBoard returns the standard opening position: black={d5,e4},
// white={d4,e5} (bits 28, 35 and 27, 36 respectively).
func NewBoard() Board {
	return Board{
		Black: 1<<28 | 1<<35,
		White: 1<<27 | 1<<36,
	}
}

func (b Board) IsBlack(c Coords) bool { return b.Black&c.Bit() != 0 }
func (b Board) IsWhite(c Coords) bool { return b.White&c.Bit() != 0 }

func (b Board) CountBlack() int { return bits.OnesCount64(b.Black) }
func (b Board) CountWhite() int { return bits.OnesCount64(b.White) }
func (b Board) CountTotal() int { return bits.OnesCount64(b.Black | b.White) }
func (b Board) CountEmpty() int { return bits.OnesCount64(^(b.Black | b.White)) }

// DiskDifference returns CountBlack() - CountWhite().
func (b Board) DiskDifference() int { return b.CountBlack() - b.CountWhite() }

// SwapColors exchanges black and white in place.
func (b *Board) SwapColors() { b.Black, b.White = b.White, b.Black }

// FindLegalMoves returns the legal-move bitboard for color on b.
//
// With self/opp bitboards and empty = ~(self|opp), for each of 8
// directions a running frontier (seeded from self) is repeatedly
// shifted through opponent-masked squares up to six times (the most
// disks flippable in one direction), then shifted once more and
// intersected with empty.
func (b Board) FindLegalMoves(color Color) bit.Board {
	self, opponent := b.Black, b.White
	if color == White {
		self, opponent = b.White, b.Black
	}
	return findLegalMoves(self, opponent)
}

func findLegalMoves(self, opponent bit.Board) bit.Board {
	center := opponent & bit.Center6x6
	columns := opponent & bit.Middle6Files

	southeast, northwest := center&(self<<9), center&(self>>9)
	south, north := opponent&(self<<8), opponent&(self>>8)
	southwest, northeast := center&(self<<7), center&(self>>7)
	east, west := columns&(self<<1), columns&(self>>1)

	for i := 0; i < 6; i++ {
		southeast = (center & (southeast << 9)) | southeast
		northwest = (center & (northwest >> 9)) | northwest
		south = (opponent & (south << 8)) | south
		north = (opponent & (north >> 8)) | north
		southwest = (center & (southwest << 7)) | southwest
		northeast = (center & (northeast >> 7)) | northeast
		east = (columns & (east << 1)) | east
		west = (columns & (west >> 1)) | west
	}

	southeast <<= 9
	northwest >>= 9
	south <<= 8
	north >>= 8
	southwest <<= 7
	northeast >>= 7
	east <<= 1
	west >>= 1

	empty := ^(self | opponent)
	return (southeast | northwest | south | north | southwest | northeast | east | west) & empty
}

// String renders the board as 64 characters row-major from a1, one of
// black, white or space for each square (defaults 'X', 'O', '-').
func (b Board) String() string {
	return b.Format('X', 'O', '-')
}

// Format renders the board using the given black/white/space sentinels.
func (b Board) Format(black, white, space byte) string {
	buf := make([]byte, CellCount)
	for i := 0; i < CellCount; i++ {
		bitAt := uint64(1) << uint(i)
		switch {
		case b.Black&bitAt != 0:
			buf[i] = black
		case b.White&bitAt != 0:
			buf[i] = white
		default:
			buf[i] = space
		}
	}
	return string(buf)
}

// ParseBoard parses a 64-character board representation using the
// given black/white/space sentinels.
func ParseBoard(repr string, black, white, space byte) (Board, error) {
	if len(repr) != CellCount {
		return Board{}, fmt.Errorf("board: representation must be %d characters, got %d", CellCount, len(repr))
	}
	var b Board
	for i := 0; i < CellCount; i++ {
		switch repr[i] {
		case black:
			b.Black |= 1 << uint(i)
		case white:
			b.White |= 1 << uint(i)
		case space:
			// empty
		default:
			return Board{}, fmt.Errorf("board: invalid character %q at position %d", repr[i], i)
		}
	}
	return b, nil
}
