// Package flip builds the per-square flip tables used to compute which
// opponent disks a placed move brackets, and exposes FindFlips and
// CountFlips over them.
package flip

import (
	"math/bits"

	"github.com/nullmove/tairitsu/pkg/bit"
)

const (
	boardLength = 8
	cellCount   = boardLength * boardLength
)

// The four lines (rank, file, diagonal, anti-diagonal) crossing each
// square, and the square's position within each line, are built once
// at package init instead of recomputed per call — the same shape as
// a magic-bitboard attack table.
var (
	lineTable     [cellCount][4]bit.Board
	posInLine     [cellCount][4]uint8
	outflanks     [boardLength][1 << boardLength]uint8
	flips         [boardLength][1 << boardLength]uint8
	flipCounts    [boardLength][1 << boardLength]uint8
)

func init() {
	generateLines()
	generatePosInLines()
	generateOutflanks()
	generateFlips()
	generateFlipCounts()
}

func generateLines() {
	for i := 0; i < cellCount; i++ {
		var arr [4]bit.Board
		arr[0], arr[1], arr[2], arr[3] = 1<<uint(i), 1<<uint(i), 1<<uint(i), 1<<uint(i)
		for j := 0; j < boardLength-1; j++ {
			arr[0] |= bit.ShiftWest(arr[0]) | bit.ShiftEast(arr[0])
			arr[1] |= (arr[1] << 8) | (arr[1] >> 8)
			arr[2] |= bit.ShiftNorthwest(arr[2]) | bit.ShiftSoutheast(arr[2])
			arr[3] |= bit.ShiftSouthwest(arr[3]) | bit.ShiftNortheast(arr[3])
		}
		lineTable[i] = arr
	}
}

func generatePosInLines() {
	for i := 0; i < cellCount; i++ {
		r, c := uint8(i/8), uint8(i%8)
		posInLine[i][0] = c
		posInLine[i][1] = r
		posInLine[i][2] = min8(r, c)
		posInLine[i][3] = min8(r, 7-c)
	}
}

func min8(a, b uint8) uint8 {
	if a < b {
		return a
	}
	return b
}

// generateOutflanks computes, for a disk newly placed at row-position
// i and an arbitrary 8-bit occupancy j of opponent disks (including
// the placed bit itself, per the original construction), the self-disk
// bracket positions that would terminate a flip run in either
// direction.
func generateOutflanks() {
	for i := 0; i < boardLength; i++ {
		bitAt := uint8(1 << i)
		for j := 0; j < (1 << boardLength); j++ {
			opponent := uint8(j) | bitAt
			if (bitAt<<1)&opponent != 0 {
				self := bitAt
				for self&opponent != 0 {
					self <<= 1
				}
				outflanks[i][j] |= self
			}
			if (bitAt>>1)&opponent != 0 {
				self := bitAt
				for self&opponent != 0 {
					self >>= 1
				}
				outflanks[i][j] |= self
			}
		}
	}
}

// generateFlips computes, for a placed bit at row-position i and an
// outflank pattern j (at most two self-disk bracket bits), the bits
// between them inclusive of the placed bit itself.
func generateFlips() {
	for i := 0; i < boardLength; i++ {
		bitAt := uint8(1 << i)
		for j := 0; j < (1 << boardLength); j++ {
			if (uint8(j)&bitAt) != 0 || bits.OnesCount8(uint8(j)) > 2 {
				continue
			}
			if uint8(j) > bitAt {
				self := bitAt
				for self&uint8(j) == 0 {
					flips[i][j] |= self
					self <<= 1
				}
			}
			if uint8(j)&(bitAt-1) != 0 {
				self := bitAt
				for self&uint8(j) == 0 {
					flips[i][j] |= self
					self >>= 1
				}
			}
		}
	}
}

// generateFlipCounts mirrors flips but excludes the placed disk from
// the count, used by the depth-1 search leaf optimization.
func generateFlipCounts() {
	for i := 0; i < boardLength; i++ {
		for j := 0; j < (1 << boardLength); j++ {
			f := flips[i][j]
			if f == 0 {
				flipCounts[i][j] = 0
			} else {
				flipCounts[i][j] = uint8(bits.OnesCount8(f) - 1)
			}
		}
	}
}

// FindFlips returns the disks flipped by placing at square placed,
// including the placed bit itself.
func FindFlips(placed int, self, opponent bit.Board) bit.Board {
	var result bit.Board
	lines := &lineTable[placed]
	pos := &posInLine[placed]
	for i := 0; i < 4; i++ {
		selfLine := uint8(bit.CompressByMask(self, lines[i]))
		oppLine := uint8(bit.CompressByMask(opponent, lines[i]))
		outflank := outflanks[pos[i]][oppLine] & selfLine
		flipLine := flips[pos[i]][outflank]
		result |= bit.ExpandByMask(bit.Board(flipLine), lines[i])
	}
	return result
}

// CountFlips returns the number of opponent disks flipped by placing
// at square placed, not counting the placed disk itself.
func CountFlips(placed int, self, opponent bit.Board) int {
	var total int
	lines := &lineTable[placed]
	pos := &posInLine[placed]
	for i := 0; i < 4; i++ {
		selfLine := uint8(bit.CompressByMask(self, lines[i]))
		oppLine := uint8(bit.CompressByMask(opponent, lines[i]))
		outflank := outflanks[pos[i]][oppLine] & selfLine
		total += int(flipCounts[pos[i]][outflank])
	}
	return total
}
