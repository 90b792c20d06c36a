package popularity_test

import (
	"testing"

	"github.com/aristath/daebak/internal/domain"
	"github.com/aristath/daebak/internal/modules/popularity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPopularityBounds(t *testing.T) {
	model := popularity.NewModel(popularity.DefaultBiasWeights())
	pop := model.Popularity(nil)
	for n := domain.MinNumber; n <= domain.MaxNumber; n++ {
		assert.GreaterOrEqual(t, pop[n], 0.0)
		assert.LessOrEqual(t, pop[n], 1.0)
	}
}

func TestBirthdayNumbersMorePopularThanHighNumbers(t *testing.T) {
	model := popularity.NewModel(popularity.DefaultBiasWeights())
	pop := model.Popularity(nil)

	// 7 is a birthday number, a lucky number and sits in the top slip row.
	assert.Greater(t, pop[7], pop[41])
	assert.Greater(t, pop[7], pop[39])

	// Unpopularity inverts the ordering.
	unpop := model.Unpopularity(nil)
	assert.Less(t, unpop[7], unpop[41])
}

func TestTetraphobiaNumbersLessPopularThanNeighbors(t *testing.T) {
	model := popularity.NewModel(popularity.DefaultBiasWeights())
	pop := model.Popularity(nil)
	assert.Less(t, pop[44], pop[43])
}

func TestRecentWinnersGainPopularity(t *testing.T) {
	model := popularity.NewModel(popularity.DefaultBiasWeights())
	without := model.Popularity(nil)

	draws := []domain.DrawRecord{{
		DrawNumber: 1,
		Date:       "2024-01-06",
		Numbers:    []int{36, 39, 41, 42, 43, 45},
		Bonus:      2,
	}}
	with := model.Popularity(draws)
	assert.Greater(t, with[39], without[39])
}

func TestCombinationUnpopularityWeakestLink(t *testing.T) {
	var unpop domain.ScoreVector
	for n := domain.MinNumber; n <= domain.MaxNumber; n++ {
		unpop[n] = 0.9
	}

	combo, err := domain.NewCombination([]int{2, 9, 16, 25, 33, 40})
	require.NoError(t, err)

	base := popularity.CombinationUnpopularity(combo, unpop)
	assert.InDelta(t, 0.9, base, 1e-9)

	// Drag the sixth number's score toward zero: the geometric mean must
	// fall strictly, and faster than an arithmetic mean would.
	prev := base
	for _, sixth := range []float64{0.6, 0.3, 0.1, 0.01} {
		unpop[40] = sixth
		geo := popularity.CombinationUnpopularity(combo, unpop)
		arith := (5*0.9 + sixth) / 6

		assert.Less(t, geo, prev, "geometric mean must strictly decrease")
		assert.Less(t, geo, arith, "geometric mean must penalize harder than arithmetic")
		prev = geo
	}
}

func TestCombinationUnpopularityFloorsZeroInputs(t *testing.T) {
	var unpop domain.ScoreVector // all zeros
	combo, err := domain.NewCombination([]int{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)

	score := popularity.CombinationUnpopularity(combo, unpop)
	assert.False(t, score != score, "must not be NaN")
	assert.Greater(t, score, 0.0)
}
