package bit

import "testing"

func TestExpandCompressRoundtrip(t *testing.T) {
	mask := Board(0x00ff00ff00ff00ff)
	for value := Board(0); value < 256; value++ {
		expanded := ExpandByMask(value, mask)
		compressedBack := CompressByMask(expanded, mask)
		wantLow := value & ((1 << PopCount(mask)) - 1)
		if compressedBack != wantLow {
			t.Fatalf("roundtrip failed for value=%x: got %x want %x", value, compressedBack, wantLow)
		}
	}
}

func TestMirrorInvolutions(t *testing.T) {
	boards := []Board{0, ^Board(0), 0x0000000810000000, 0x8000000000000001, 0x00ff0000ff000000}
	fns := map[string]func(Board) Board{
		"main_diag": MirrorMainDiagonal,
		"anti_diag": MirrorAntiDiagonal,
		"vertical":  MirrorVertical,
		"horizontal": MirrorHorizontal,
	}
	for name, fn := range fns {
		for _, b := range boards {
			if got := fn(fn(b)); got != b {
				t.Errorf("%s is not an involution for %#x: got %#x", name, b, got)
			}
		}
	}
}

func TestRotate180IsInvolution(t *testing.T) {
	boards := []Board{0, ^Board(0), 0x0000000810000000}
	for _, b := range boards {
		if got := Rotate180(Rotate180(b)); got != b {
			t.Errorf("rotate180 twice should be identity for %#x, got %#x", b, got)
		}
	}
}

func TestRotate90ComposesToRotate180(t *testing.T) {
	boards := []Board{0x0000000810000000, 0x8000000000000001}
	for _, b := range boards {
		if got := Rotate90CW(Rotate90CW(b)); got != Rotate180(b) {
			t.Errorf("rotate90cw twice should equal rotate180 for %#x: got %#x want %#x", b, got, Rotate180(b))
		}
		if got := Rotate90CCW(Rotate90CCW(b)); got != Rotate180(b) {
			t.Errorf("rotate90ccw twice should equal rotate180 for %#x: got %#x want %#x", b, got, Rotate180(b))
		}
	}
}

func TestSetBitsIterator(t *testing.T) {
	b := Board(0b1011)
	var got []int
	it := SetBits{Bits: b}
	for {
		i, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, i)
	}
	want := []int{0, 1, 3}
	if len(got) != len(want) {
		t.Fatalf("got %v want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v want %v", got, want)
		}
	}
}

func TestShiftsMaskOffWrap(t *testing.T) {
	// a1 (bit 0) shifting west must not wrap to h-file of another rank.
	if ShiftWest(1) != 0 {
		t.Errorf("shift west off a-file should be zero")
	}
	// h1 (bit 7) shifting east must not wrap.
	if ShiftEast(1<<7) != 0 {
		t.Errorf("shift east off h-file should be zero")
	}
}
