package board

// Number is the subset of numeric types a Bounds can hold: int for
// the endgame solver's exact disk-difference score, float32 for the
// midgame searcher's evaluator-based score.
type Number interface {
	int | float32
}

// Bounds is a lower/upper pair with lower <= upper. A Bounds built
// from a single value via Exact is an exact label; otherwise it
// represents a not-fully-searched interval, as harvested from a
// transposition table entry.
type Bounds[T Number] struct {
	Lower T
	Upper T
}

// Exact returns a Bounds representing a single known value.
func Exact[T Number](v T) Bounds[T] {
	return Bounds[T]{Lower: v, Upper: v}
}

// Error returns p-Lower if p is below the interval, p-Upper if above,
// or zero if p already lies within [Lower, Upper].
func (b Bounds[T]) Error(p T) T {
	switch {
	case p < b.Lower:
		return p - b.Lower
	case p > b.Upper:
		return p - b.Upper
	default:
		return 0
	}
}
