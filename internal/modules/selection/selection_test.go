package selection

import (
	"math"
	"testing"

	"github.com/aristath/daebak/internal/domain"
	"github.com/aristath/daebak/internal/modules/popularity"
	"github.com/aristath/daebak/internal/modules/profile"
	"github.com/aristath/daebak/internal/rng"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func historyDraws(count int) []domain.DrawRecord {
	templates := [][]int{
		{3, 11, 19, 27, 35, 43},
		{5, 14, 22, 30, 38, 45},
		{2, 9, 21, 28, 36, 44},
		{7, 16, 24, 31, 39, 42},
		{4, 13, 20, 29, 37, 41},
		{6, 12, 25, 33, 40, 45},
	}
	draws := make([]domain.DrawRecord, count)
	for i := 0; i < count; i++ {
		draws[i] = domain.DrawRecord{
			DrawNumber: i + 1,
			Date:       "2024-01-06",
			Numbers:    templates[i%len(templates)],
			Bonus:      1,
		}
	}
	return draws
}

func newContext(t *testing.T, seed int64) *SelectionContext {
	t.Helper()
	draws := historyDraws(60)

	builder := profile.NewBuilder(profile.DefaultBounds(), profile.DefaultDimensionWeights(), zerolog.Nop())
	pop := popularity.NewModel(popularity.DefaultBiasWeights())

	return &SelectionContext{
		Pool:         []int{2, 3, 5, 7, 9, 11, 13, 14, 16, 19, 21, 24, 27, 30, 33, 35, 38, 41, 43, 45},
		Unpopularity: pop.Unpopularity(draws),
		Profile:      builder.Build(draws),
		Validator:    profile.NewValidator(profile.DefaultHardConstraints(), nil),
		PairAffinity: PairAffinityFromDraws(draws),
		Rand:         rng.New(seed),
	}
}

func TestGelmanRubinConstantSeriesIsOne(t *testing.T) {
	series := make([][]float64, 4)
	for i := range series {
		series[i] = make([]float64, 100)
	}
	assert.Equal(t, 1.0, gelmanRubin(series))
}

func TestGelmanRubinDivergedChains(t *testing.T) {
	series := make([][]float64, 4)
	for i := range series {
		series[i] = make([]float64, 100)
		for j := range series[i] {
			// Chains centered far apart with tiny within-chain noise.
			series[i][j] = float64(i)*10 + float64(j%2)*0.01
		}
	}
	assert.Greater(t, gelmanRubin(series), 1.1)
}

func TestMCMCSelectorProducesValidCombination(t *testing.T) {
	sc := newContext(t, 42)
	selector := NewMCMCSelector(zerolog.Nop())

	outcome, err := selector.Select(sc)
	require.NoError(t, err)

	assert.Len(t, outcome.Combination, domain.CombinationSize)
	assert.True(t, sc.Validator.PassesHardConstraints(outcome.Combination))
	assert.Greater(t, outcome.Score, 0.0)
	assert.Contains(t, []string{"mcmc", "mcmc_fallback"}, outcome.Method)
	assert.False(t, math.IsNaN(outcome.RHat))
}

func TestMCMCSelectorDeterministic(t *testing.T) {
	selector := NewMCMCSelector(zerolog.Nop())

	first, err := selector.Select(newContext(t, 7))
	require.NoError(t, err)
	second, err := selector.Select(newContext(t, 7))
	require.NoError(t, err)

	assert.Equal(t, first.Combination, second.Combination)
	assert.Equal(t, first.Method, second.Method)
	assert.Equal(t, first.RHat, second.RHat)
}

func TestGeneticSelectorProducesValidCombination(t *testing.T) {
	sc := newContext(t, 42)
	selector := NewGeneticSelector(zerolog.Nop())

	outcome, err := selector.Select(sc)
	require.NoError(t, err)

	assert.Len(t, outcome.Combination, domain.CombinationSize)
	assert.True(t, sc.Validator.PassesHardConstraints(outcome.Combination))
	assert.Greater(t, outcome.Score, 0.0)
	assert.Contains(t, []string{"genetic", "genetic_fallback"}, outcome.Method)
}

func TestGeneticSelectorDeterministic(t *testing.T) {
	selector := NewGeneticSelector(zerolog.Nop())

	first, err := selector.Select(newContext(t, 99))
	require.NoError(t, err)
	second, err := selector.Select(newContext(t, 99))
	require.NoError(t, err)

	assert.Equal(t, first.Combination, second.Combination)
}

func TestSelectorsRejectTinyPool(t *testing.T) {
	sc := newContext(t, 1)
	sc.Pool = []int{3, 11, 24}

	_, err := NewMCMCSelector(zerolog.Nop()).Select(sc)
	assert.Error(t, err)
	_, err = NewGeneticSelector(zerolog.Nop()).Select(sc)
	assert.Error(t, err)
}

func TestZoneGuaranteedCombinationAlwaysValid(t *testing.T) {
	// Recent draws chosen to collide with some templates; the disjoint
	// template set must still yield a passing combination.
	recent := []domain.DrawRecord{
		{DrawNumber: 1, Date: "2024-01-06", Numbers: []int{3, 11, 24, 27, 35, 42}, Bonus: 1},
		{DrawNumber: 2, Date: "2024-01-13", Numbers: []int{5, 14, 22, 30, 38, 45}, Bonus: 2},
	}
	sc := newContext(t, 5)
	sc.Validator = profile.NewValidator(profile.DefaultHardConstraints(), recent)

	for seed := int64(0); seed < 20; seed++ {
		combo := zoneGuaranteedCombination(sc, rng.New(seed))
		assert.True(t, sc.Validator.PassesHardConstraints(combo), "seed %d", seed)
	}
}

func TestTemperatureSampleSatisfiesConstraints(t *testing.T) {
	sc := newContext(t, 11)
	combo, score := temperatureSample(sc, sc.Rand.Fork("test"))

	assert.True(t, sc.Validator.PassesHardConstraints(combo))
	assert.Greater(t, score, 0.0)
}

func TestPairAffinityBounds(t *testing.T) {
	affinity := PairAffinityFromDraws(historyDraws(30))
	for a := domain.MinNumber; a <= domain.MaxNumber; a++ {
		for b := a + 1; b <= domain.MaxNumber; b++ {
			v := affinity.At(a, b)
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
	}
	// Template members co-occur every cycle; 3 and 11 share a template.
	assert.Greater(t, affinity.At(3, 11), 0.0)
}
