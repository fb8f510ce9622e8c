package eval

import (
	"encoding/binary"
	"fmt"
	"io"
	"math/bits"

	"github.com/nullmove/tairitsu/pkg/bit"
)

const maxPatternSize = 10

// powersOf3[i] = 3^i, used to reinterpret a set of bit positions as a
// base-3 number.
var powersOf3 [maxPatternSize + 1]int

func init() {
	powersOf3[0] = 1
	for i := 1; i < len(powersOf3); i++ {
		powersOf3[i] = powersOf3[i-1] * 3
	}
}

// binaryToTernary[x] reinterprets the set bits of a 10-bit binary
// number x as a ternary number: sum of 3^j over every set bit j.
var binaryToTernary [1 << maxPatternSize]int

func init() {
	for x := 0; x < len(binaryToTernary); x++ {
		sum := 0
		for j := 0; j < maxPatternSize; j++ {
			if x&(1<<j) != 0 {
				sum += powersOf3[j]
			}
		}
		binaryToTernary[x] = sum
	}
}

// extractPattern computes the ternary feature index of board
// (self, opp) under mask: T[compress(self,mask)] + 2*T[compress(opp,mask)].
func extractPattern(self, opp bit.Board, mask bit.Board) int {
	return binaryToTernary[bit.CompressByMask(self, mask)] + 2*binaryToTernary[bit.CompressByMask(opp, mask)]
}

// transformD4 returns the 8 D4 rotoreflections of mask in the fixed
// order: the 4 rotations of mask, then the 4 rotations of mask
// mirrored across the main diagonal.
func transformD4(mask bit.Board) [8]bit.Board {
	flipped := bit.MirrorMainDiagonal(mask)
	return [8]bit.Board{
		mask,
		bit.Rotate90CCW(mask),
		bit.Rotate180(mask),
		bit.Rotate90CW(mask),
		flipped,
		bit.Rotate90CCW(flipped),
		bit.Rotate180(flipped),
		bit.Rotate90CW(flipped),
	}
}

// findPatternCanonicalForm returns the lexicographically minimum
// value over the 8 D4 rotoreflections of mask.
func findPatternCanonicalForm(mask bit.Board) bit.Board {
	orbit := transformD4(mask)
	min := orbit[0]
	for _, v := range orbit[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// Symmetry classifies a canonical pattern mask's invariance under a
// single reflection.
type Symmetry uint8

const (
	SymmetryNone Symmetry = iota
	SymmetryDiagonal
	SymmetryAxial
)

func findPatternSymmetry(mask bit.Board) Symmetry {
	switch {
	case mask == bit.MirrorHorizontal(mask):
		return SymmetryAxial
	case mask == bit.MirrorMainDiagonal(mask):
		return SymmetryDiagonal
	default:
		return SymmetryNone
	}
}

// generatePatternIndexMap builds the mapping from a raw ternary index
// (length 3^popcount(mask)) to a compressed weight slot, collapsing
// indices that are equivalent under symmetry.
func generatePatternIndexMap(mask bit.Board, symmetry Symmetry) ([]uint16, int) {
	popcount := bits.OnesCount64(mask)
	if popcount > maxPatternSize {
		panic(fmt.Sprintf("eval: pattern mask has %d squares, maximum is %d", popcount, maxPatternSize))
	}
	size := powersOf3[popcount]
	indexMap := make([]uint16, size)
	for i := range indexMap {
		indexMap[i] = uint16(i)
	}
	if symmetry != SymmetryNone {
		// Enumerate every pair of disjoint black-bit-subset / white-bit-subset
		// of the pattern's bit positions, expand them back to full
		// boards, reflect, and re-extract to find the reflected index.
		bitPositions := make([]int, 0, popcount)
		for i := 0; i < 64; i++ {
			if mask&(1<<uint(i)) != 0 {
				bitPositions = append(bitPositions, i)
			}
		}
		reflect := bit.MirrorMainDiagonal
		if symmetry == SymmetryAxial {
			reflect = bit.MirrorHorizontal
		}
		for blackSub := 0; blackSub < (1 << popcount); blackSub++ {
			for whiteSub := 0; whiteSub < (1 << popcount); whiteSub++ {
				if blackSub&whiteSub != 0 {
					continue // self/opponent occupancy must be disjoint
				}
				first := binaryToTernary[blackSub] + 2*binaryToTernary[whiteSub]
				var self, opp bit.Board
				for bitIdx := 0; bitIdx < popcount; bitIdx++ {
					if blackSub&(1<<bitIdx) != 0 {
						self |= 1 << uint(bitPositions[bitIdx])
					}
					if whiteSub&(1<<bitIdx) != 0 {
						opp |= 1 << uint(bitPositions[bitIdx])
					}
				}
				second := extractPattern(reflect(self), reflect(opp), mask)
				if second < int(indexMap[first]) {
					indexMap[first] = uint16(second)
				}
			}
		}
	}
	// Compress: drop unused raw indices, remapping the survivors to
	// [0, count).
	occupied := make([]bool, size)
	for _, v := range indexMap {
		occupied[v] = true
	}
	compressed := make([]int, size)
	count := 0
	for i := 0; i < size; i++ {
		if occupied[i] {
			compressed[i] = count
			count++
		}
	}
	for i := range indexMap {
		indexMap[i] = uint16(compressed[indexMap[i]])
	}
	return indexMap, count
}

// pattern holds one learned feature: a canonical D4-minimal mask, its
// symmetry class, the compression map from raw ternary index to
// weight slot, and stages*count weights plus parallel gradients.
type pattern struct {
	mask      bit.Board
	symmetry  Symmetry
	indexMap  []uint16
	count     int
	weights   []float32
	gradients []float32
}

func newPattern(mask bit.Board, stages int) *pattern {
	canonical := findPatternCanonicalForm(mask)
	symmetry := findPatternSymmetry(canonical)
	indexMap, count := generatePatternIndexMap(canonical, symmetry)
	return &pattern{
		mask:     canonical,
		symmetry: symmetry,
		indexMap: indexMap,
		count:    count,
		weights:  make([]float32, stages*count),
	}
}

func (p *pattern) weightsAtStage(stage int) []float32 {
	return p.weights[stage*p.count : (stage+1)*p.count]
}

func (p *pattern) gradientsAtStage(stage int) []float32 {
	return p.gradients[stage*p.count : (stage+1)*p.count]
}

func (p *pattern) applyGradients() {
	for i := range p.weights {
		p.weights[i] -= p.gradients[i]
	}
}

func (p *pattern) resetGradients() {
	if p.gradients == nil {
		p.gradients = make([]float32, len(p.weights))
		return
	}
	for i := range p.gradients {
		p.gradients[i] = 0
	}
}

func (p *pattern) save(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, uint64(p.mask)); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, p.weights)
}

func loadPattern(r io.Reader, mask bit.Board, stages int) (*pattern, error) {
	canonical := findPatternCanonicalForm(mask)
	symmetry := findPatternSymmetry(canonical)
	indexMap, count := generatePatternIndexMap(canonical, symmetry)
	weights := make([]float32, stages*count)
	if err := binary.Read(r, binary.LittleEndian, weights); err != nil {
		return nil, err
	}
	return &pattern{
		mask:     canonical,
		symmetry: symmetry,
		indexMap: indexMap,
		count:    count,
		weights:  weights,
	}, nil
}
