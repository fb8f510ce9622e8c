// Package rng provides the uniform random source the core consumes:
// integer sampling for move selection and worker seeding, Bernoulli
// sampling for epsilon-greedy move choice.
package rng

import "math/rand"

// Source is the minimal random contract the core needs: a uniform
// integer in [0, n) and a Bernoulli trial at probability p.
type Source interface {
	Intn(n int) int
	Bernoulli(p float64) bool
	Shuffle(n int, swap func(i, j int))
}

// mathRand adapts math/rand.Rand to Source.
type mathRand struct {
	*rand.Rand
}

// New returns a Source seeded deterministically from seed.
func New(seed int64) Source {
	return mathRand{rand.New(rand.NewSource(seed))}
}

// NewUnseeded returns a Source seeded from a source-derived seed, for
// callers that have no seed of their own but still want a private
// generator rather than the shared global one.
func NewUnseeded() Source {
	return New(rand.Int63())
}

func (m mathRand) Bernoulli(p float64) bool {
	return m.Float64() < p
}
