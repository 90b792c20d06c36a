// Package rng provides the deterministic pseudo-random streams used across
// the generation pipeline. Every stage that needs randomness receives a
// stream derived from the single request seed, so the whole pipeline is a
// pure function of (draw history, seed).
package rng

import (
	"hash/fnv"
	"math/rand"
)

// Source is a seedable random stream. It wraps math/rand so stages depend on
// an injected generator rather than package-level global state.
type Source struct {
	seed int64
	rand *rand.Rand
}

// New creates a stream from an explicit seed (typically the request
// timestamp in epoch milliseconds).
func New(seed int64) *Source {
	return &Source{
		seed: seed,
		rand: rand.New(rand.NewSource(seed)),
	}
}

// Fork derives an independent stream for a named pipeline stage. The label
// keeps stage streams decoupled: consuming extra values in one stage never
// shifts another stage's sequence.
func (s *Source) Fork(label string) *Source {
	h := fnv.New64a()
	h.Write([]byte(label))
	return New(s.seed ^ int64(h.Sum64()))
}

// Seed returns the seed this stream was created with.
func (s *Source) Seed() int64 { return s.seed }

// Float64 returns a pseudo-random value in [0,1).
func (s *Source) Float64() float64 { return s.rand.Float64() }

// Intn returns a pseudo-random value in [0,n).
func (s *Source) Intn(n int) int { return s.rand.Intn(n) }

// Perm returns a pseudo-random permutation of [0,n).
func (s *Source) Perm(n int) []int { return s.rand.Perm(n) }

// Shuffle pseudo-randomizes the order of elements.
func (s *Source) Shuffle(n int, swap func(i, j int)) { s.rand.Shuffle(n, swap) }

// WeightedIndex samples an index proportionally to the given non-negative
// weights. A degenerate weight sum falls back to a uniform pick.
func (s *Source) WeightedIndex(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return s.Intn(len(weights))
	}
	target := s.Float64() * total
	acc := 0.0
	for i, w := range weights {
		if w > 0 {
			acc += w
		}
		if acc >= target {
			return i
		}
	}
	return len(weights) - 1
}
