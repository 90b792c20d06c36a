package scoring_test

import (
	"context"
	"testing"

	"github.com/aristath/daebak/internal/domain"
	"github.com/aristath/daebak/internal/modules/scoring"
	"github.com/aristath/daebak/internal/rng"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syntheticDraws builds count draws where number 7 always appears and the
// remaining five slots cycle through the rest of the universe.
func syntheticDraws(count int) []domain.DrawRecord {
	draws := make([]domain.DrawRecord, count)
	for i := 0; i < count; i++ {
		numbers := []int{7}
		next := 8 + (i*5)%37
		for len(numbers) < domain.CombinationSize {
			if next > domain.MaxNumber {
				next = 8
			}
			if next != 7 {
				numbers = append(numbers, next)
			}
			next++
		}
		draws[i] = domain.DrawRecord{
			DrawNumber: i + 1,
			Date:       "2024-01-06",
			Numbers:    numbers,
			Bonus:      1,
		}
	}
	domain.SortDraws(draws)
	return draws
}

func assertRanksSevenFirst(t *testing.T, name string, scores domain.ScoreVector) {
	t.Helper()
	for n := domain.MinNumber; n <= domain.MaxNumber; n++ {
		if n == 7 {
			continue
		}
		assert.Greater(t, scores[7], scores[n], "%s: 7 should outrank %d", name, n)
	}
}

func TestAdaptiveFrequencyRanksEverPresentNumberFirst(t *testing.T) {
	draws := syntheticDraws(80)
	scores := scoring.NewAdaptiveFrequency().Score(draws)
	assertRanksSevenFirst(t, "adaptive_frequency", scores)
}

func TestBayesianPosteriorRanksEverPresentNumberFirst(t *testing.T) {
	draws := syntheticDraws(80)
	scores := scoring.NewBayesianPosterior().Score(draws)
	assertRanksSevenFirst(t, "bayesian_posterior", scores)
}

func TestAllModelsUniformFallbackOnShortHistory(t *testing.T) {
	draws := syntheticDraws(5)
	models := []scoring.Model{
		scoring.NewAdaptiveFrequency(),
		scoring.NewBayesianPosterior(),
		scoring.NewMomentum(),
		scoring.NewMarkovTransition(),
		scoring.NewMonteCarlo(rng.New(1)),
		scoring.NewSpectral(),
		scoring.NewGraphCentrality(),
	}
	uniform := domain.UniformScoreVector()
	for _, model := range models {
		assert.Equal(t, uniform, model.Score(draws), model.Name())
	}
}

func TestMonteCarloDeterministicUnderSeed(t *testing.T) {
	draws := syntheticDraws(60)
	a := scoring.NewMonteCarlo(rng.New(99)).Score(draws)
	b := scoring.NewMonteCarlo(rng.New(99)).Score(draws)
	assert.Equal(t, a, b)

	c := scoring.NewMonteCarlo(rng.New(100)).Score(draws)
	assert.NotEqual(t, a, c)
}

func TestMonteCarloFavorsHighPosteriorNumbers(t *testing.T) {
	draws := syntheticDraws(80)
	scores := scoring.NewMonteCarlo(rng.New(7)).Score(draws)
	for n := domain.MinNumber; n <= domain.MaxNumber; n++ {
		if n == 7 {
			continue
		}
		assert.Greater(t, scores[7], scores[n], "7 should be sampled most often, beat %d", n)
	}
}

func TestMarkovTransitionScoresArePositive(t *testing.T) {
	draws := syntheticDraws(50)
	scores := scoring.NewMarkovTransition().Score(draws)
	for n := domain.MinNumber; n <= domain.MaxNumber; n++ {
		assert.Greater(t, scores[n], 0.0)
	}
	// 7 feeds every transition source, so it accumulates the most mass.
	assertRanksSevenFirst(t, "markov_transition", scores)
}

func TestSpectralHandlesConstantSeries(t *testing.T) {
	draws := syntheticDraws(40)
	scores := scoring.NewSpectral().Score(draws)
	for n := domain.MinNumber; n <= domain.MaxNumber; n++ {
		assert.False(t, scores[n] != scores[n], "score must not be NaN")
		assert.GreaterOrEqual(t, scores[n], 0.0)
	}
}

func TestGraphCentralityBounded(t *testing.T) {
	draws := syntheticDraws(60)
	scores := scoring.NewGraphCentrality().Score(draws)
	for n := domain.MinNumber; n <= domain.MaxNumber; n++ {
		assert.GreaterOrEqual(t, scores[n], 0.0)
		assert.LessOrEqual(t, scores[n], 1.0)
	}
}

func TestRunnerScoresAllModels(t *testing.T) {
	draws := syntheticDraws(60)
	models := []scoring.Model{
		scoring.NewAdaptiveFrequency(),
		scoring.NewBayesianPosterior(),
		scoring.NewMomentum(),
	}
	runner := scoring.NewRunner(models, zerolog.Nop())

	scores, err := runner.ScoreAll(context.Background(), draws)
	require.NoError(t, err)
	require.Len(t, scores, 3)
	assert.Contains(t, scores, "adaptive_frequency")
	assert.Contains(t, scores, "bayesian_posterior")
	assert.Contains(t, scores, "momentum")
}
