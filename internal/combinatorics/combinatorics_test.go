package combinatorics_test

import (
	"testing"

	"github.com/aristath/daebak/internal/combinatorics"
	"github.com/stretchr/testify/assert"
)

func TestBinomial(t *testing.T) {
	c := combinatorics.NewCalculator()
	assert.Equal(t, 1.0, c.Binomial(10, 0))
	assert.Equal(t, 10.0, c.Binomial(10, 1))
	assert.Equal(t, 45.0, c.Binomial(10, 2))
	assert.InDelta(t, 8145060.0, c.Binomial(45, 6), 1e-6)
	assert.Equal(t, 0.0, c.Binomial(5, 6))
	assert.Equal(t, 0.0, c.Binomial(5, -1))

	// Memoized second call returns the identical value.
	assert.Equal(t, c.Binomial(45, 6), c.Binomial(45, 6))
}

func TestTierProbabilities(t *testing.T) {
	c := combinatorics.NewCalculator()
	p := c.TierProbabilities()

	assert.InDelta(t, 1.0/8145060.0, p[1], 1e-12)
	// Match-5-plus-bonus: 6 ways to drop one winning number, forced bonus.
	assert.InDelta(t, 6.0/8145060.0, p[2], 1e-12)
	// Match-5 without bonus: 6*38 combinations.
	assert.InDelta(t, 228.0/8145060.0, p[3], 1e-12)
	assert.InDelta(t, 11115.0/8145060.0, p[4], 1e-9)
	assert.InDelta(t, 182780.0/8145060.0, p[5], 1e-9)
}

func TestMatchProbabilitySumsToOne(t *testing.T) {
	c := combinatorics.NewCalculator()
	for _, poolSize := range []int{14, 20, 24, 45} {
		total := 0.0
		for m := 0; m <= 6; m++ {
			total += c.MatchProbability(poolSize, m)
		}
		assert.InDelta(t, 1.0, total, 1e-9, "pool size %d", poolSize)
	}
}

func TestFullPoolReducesToUnconstrainedLottery(t *testing.T) {
	// With all 45 numbers in the pool, matching the lottery reduces to the
	// plain 6/45 probabilities: P(match 6) = 1/8,145,060.
	c := combinatorics.NewCalculator()
	assert.InDelta(t, 1.0, c.MatchProbability(45, 6), 1e-12)
	assert.InDelta(t, 1.0/8145060.0, c.PickRecoveryProbability(45, 6, 6), 1e-15)
}
