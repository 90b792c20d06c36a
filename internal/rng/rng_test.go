package rng_test

import (
	"testing"

	"github.com/aristath/daebak/internal/rng"
	"github.com/stretchr/testify/assert"
)

func TestDeterministicSequences(t *testing.T) {
	a := rng.New(42)
	b := rng.New(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

func TestForkIsIndependentAndStable(t *testing.T) {
	root := rng.New(1234)
	first := root.Fork("mcmc").Float64()

	// Consuming values on another fork must not shift the mcmc stream.
	other := rng.New(1234)
	other.Fork("montecarlo").Float64()
	other.Fork("montecarlo").Float64()
	assert.Equal(t, first, other.Fork("mcmc").Float64())

	// Distinct labels give distinct streams.
	assert.NotEqual(t, first, rng.New(1234).Fork("genetic").Float64())
}

func TestWeightedIndex(t *testing.T) {
	s := rng.New(7)
	weights := []float64{0, 0, 1, 0}
	for i := 0; i < 50; i++ {
		assert.Equal(t, 2, s.WeightedIndex(weights))
	}

	// Degenerate weights fall back to uniform instead of dividing by zero.
	zero := []float64{0, 0, 0}
	idx := s.WeightedIndex(zero)
	assert.GreaterOrEqual(t, idx, 0)
	assert.Less(t, idx, 3)
}
