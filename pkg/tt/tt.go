// Package tt implements a fixed-size, direct-mapped, always-replace
// transposition table, generic over the score type stored in its
// Bounds.
package tt

import (
	"hash/fnv"

	"github.com/nullmove/tairitsu/pkg/board"
)

// DefaultSize is 2^20 slots, matching the original evaluator's table
// (about 32 MB at 32 bytes/entry for the float32 instantiation, 40 MB
// at 40 bytes/entry for the int one).
const DefaultSize = 1 << 20

type entry[T board.Number] struct {
	board  board.Board
	depth  int
	bounds board.Bounds[T]
}

// Table is a direct-mapped, always-replace cache keyed by board and
// depth. Re-searched positions at deeper depths simply overwrite
// shallower ones in place; since every search runs single-threaded
// against its own Table, no synchronization is required.
type Table[T board.Number] struct {
	data []entry[T]
}

// New returns a Table with the given size, which must be a power of
// two. size defaults to DefaultSize when zero.
func New[T board.Number](size int) *Table[T] {
	if size == 0 {
		size = DefaultSize
	}
	if size&(size-1) != 0 {
		panic("tt: size must be a power of two")
	}
	return &Table[T]{data: make([]entry[T], size)}
}

// Hash returns the table index for board b: fnv1a(board) & (size-1).
func (t *Table[T]) Hash(b board.Board) uint64 {
	h := fnv.New64a()
	var buf [16]byte
	putUint64(buf[0:8], b.Black)
	putUint64(buf[8:16], b.White)
	h.Write(buf[:])
	return h.Sum64() & uint64(len(t.data)-1)
}

func putUint64(buf []byte, v uint64) {
	for i := 0; i < 8; i++ {
		buf[i] = byte(v >> (8 * i))
	}
}

// Store writes the slot unconditionally (always-replace).
func (t *Table[T]) Store(b board.Board, depth int, bounds board.Bounds[T]) {
	t.StoreHinted(b, depth, bounds, t.Hash(b))
}

// StoreHinted is Store with a precomputed hash, to avoid re-hashing
// when the caller already has it from a matching TryLoad.
func (t *Table[T]) StoreHinted(b board.Board, depth int, bounds board.Bounds[T], hash uint64) {
	t.data[hash] = entry[T]{board: b, depth: depth, bounds: bounds}
}

// TryLoad returns the stored bounds iff the stored board equals b and
// the stored depth is at least minDepth. Used by the midgame searcher,
// where a deeper entry remains valid for a shallower query.
func (t *Table[T]) TryLoad(b board.Board, minDepth int) (board.Bounds[T], bool) {
	return t.TryLoadHinted(b, minDepth, t.Hash(b))
}

// TryLoadHinted is TryLoad with a precomputed hash.
func (t *Table[T]) TryLoadHinted(b board.Board, minDepth int, hash uint64) (board.Bounds[T], bool) {
	e := &t.data[hash]
	if e.board != b || e.depth < minDepth {
		var zero board.Bounds[T]
		return zero, false
	}
	return e.bounds, true
}

// TryLoadExact returns the stored bounds iff the stored board equals b
// and the stored key equals key exactly. Used by the endgame solver,
// where the key is lookahead = int(current) (0 or 1), not a depth — a
// deeper/shallower comparison has no meaning there.
func (t *Table[T]) TryLoadExact(b board.Board, key int) (board.Bounds[T], bool) {
	return t.TryLoadExactHinted(b, key, t.Hash(b))
}

// TryLoadExactHinted is TryLoadExact with a precomputed hash.
func (t *Table[T]) TryLoadExactHinted(b board.Board, key int, hash uint64) (board.Bounds[T], bool) {
	e := &t.data[hash]
	if e.board != b || e.depth != key {
		var zero board.Bounds[T]
		return zero, false
	}
	return e.bounds, true
}

// Clear zeros every slot.
func (t *Table[T]) Clear() {
	for i := range t.data {
		t.data[i] = entry[T]{}
	}
}

// Len returns the number of slots.
func (t *Table[T]) Len() int { return len(t.data) }

// Entry is a single harvested (board, bounds) training label.
type Entry[T board.Number] struct {
	Board  board.Board
	Bounds board.Bounds[T]
}

// Entries enumerates every non-empty slot, used to harvest training
// data from a search's transposition table.
func (t *Table[T]) Entries() []Entry[T] {
	var result []Entry[T]
	empty := board.Board{}
	for i := range t.data {
		e := &t.data[i]
		if e.board != empty {
			result = append(result, Entry[T]{Board: e.board, Bounds: e.bounds})
		}
	}
	return result
}
