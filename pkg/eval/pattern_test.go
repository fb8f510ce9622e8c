package eval

import (
	"testing"

	"github.com/nullmove/tairitsu/pkg/bit"
)

func TestFindPatternCanonicalFormIsD4Invariant(t *testing.T) {
	mask := bit.Board(0x0000001818000000) // central 2x2 block, already symmetric
	canonical := findPatternCanonicalForm(mask)
	for _, transformed := range transformD4(mask) {
		if findPatternCanonicalForm(transformed) != canonical {
			t.Fatalf("canonical form not invariant across D4 orbit")
		}
	}
}

func TestFindPatternSymmetryDetectsAxial(t *testing.T) {
	// Rank-3 mask (row index 2, 0-based), symmetric about the horizontal
	// mirror but not the main diagonal.
	mask := bit.Board(0x00000000000000FF) << 16
	if got := findPatternSymmetry(mask); got != SymmetryAxial {
		t.Fatalf("expected SymmetryAxial, got %v", got)
	}
}

func TestFindPatternSymmetryDetectsDiagonal(t *testing.T) {
	mask := bit.Board(1) | bit.Board(1)<<9 | bit.Board(1)<<18 // a1,b2,c3: on the main diagonal
	if got := findPatternSymmetry(mask); got != SymmetryDiagonal {
		t.Fatalf("expected SymmetryDiagonal, got %v", got)
	}
}

func TestFindPatternSymmetryPrefersAxialWhenBothHold(t *testing.T) {
	// Central 2x2 block (d4,e4,d5,e5): invariant under both the
	// horizontal mirror and the main-diagonal mirror. Axial must win,
	// matching original_source's own mirror_horizontal-first check.
	mask := bit.Board(0x0000001818000000)
	if got := findPatternSymmetry(mask); got != SymmetryAxial {
		t.Fatalf("doubly-symmetric mask must classify as SymmetryAxial, got %v", got)
	}

	axialMap, axialCount := generatePatternIndexMap(mask, SymmetryAxial)
	diagonalMap, diagonalCount := generatePatternIndexMap(mask, SymmetryDiagonal)
	if axialCount == diagonalCount && equalUint16Slices(axialMap, diagonalMap) {
		t.Fatalf("axial and diagonal reflections coincide for this mask; fixture cannot pin precedence")
	}

	p := newPattern(mask, 5)
	if p.count != axialCount {
		t.Fatalf("newPattern must build its index map from the axial reflection, got count=%d want %d", p.count, axialCount)
	}
}

func equalUint16Slices(a, b []uint16) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestGeneratePatternIndexMapNoCompressionWithoutSymmetry(t *testing.T) {
	single := bit.Board(1) << 27 // d4
	indexMap, count := generatePatternIndexMap(single, SymmetryNone)
	if len(indexMap) != 3 {
		t.Fatalf("expected 3 raw indices for a 1-square pattern, got %d", len(indexMap))
	}
	if count != 3 {
		t.Fatalf("expected no compression for SymmetryNone, got count=%d", count)
	}
}

func TestGeneratePatternIndexMapCompressesSymmetricPattern(t *testing.T) {
	// Two squares that swap under the horizontal mirror: their raw
	// ternary indices collapse pairwise, shrinking count below 9.
	mask := bit.Board(1)<<24 | bit.Board(1)<<31 // a4, h4: swap under mirror_horizontal
	if findPatternSymmetry(mask) != SymmetryAxial {
		t.Fatalf("test fixture mask is not axially symmetric")
	}
	indexMap, count := generatePatternIndexMap(mask, SymmetryAxial)
	if len(indexMap) != 9 {
		t.Fatalf("expected 9 raw indices for a 2-square pattern, got %d", len(indexMap))
	}
	if count >= 9 {
		t.Fatalf("expected compression to shrink count below 9, got %d", count)
	}
}

func TestGeneratePatternIndexMapPanicsOnOversizedPattern(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for pattern larger than 10 squares")
		}
	}()
	generatePatternIndexMap(bit.Board(0x7FF), SymmetryNone) // 11 set bits
}

func TestNewPatternCountMatchesIndexMapMax(t *testing.T) {
	p := newPattern(bit.Board(0x0000001818000000), 5)
	max := uint16(0)
	for _, v := range p.indexMap {
		if v > max {
			max = v
		}
	}
	if int(max)+1 != p.count {
		t.Fatalf("count %d does not match max(indexMap)+1 = %d", p.count, max+1)
	}
	if len(p.weights) != 5*p.count {
		t.Fatalf("weights length %d != stages*count = %d", len(p.weights), 5*p.count)
	}
}
