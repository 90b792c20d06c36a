package domain_test

import (
	"testing"

	"github.com/aristath/daebak/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrawRecordValidate(t *testing.T) {
	valid := domain.DrawRecord{
		DrawNumber: 1100,
		Date:       "2024-01-06",
		Numbers:    []int{3, 7, 12, 28, 34, 45},
		Bonus:      21,
	}
	assert.NoError(t, valid.Validate())

	tooFew := valid
	tooFew.Numbers = []int{3, 7, 12, 28, 34}
	assert.Error(t, tooFew.Validate())

	duplicate := valid
	duplicate.Numbers = []int{3, 3, 12, 28, 34, 45}
	assert.Error(t, duplicate.Validate())

	outOfRange := valid
	outOfRange.Numbers = []int{0, 7, 12, 28, 34, 45}
	assert.Error(t, outOfRange.Validate())

	badBonus := valid
	badBonus.Bonus = 46
	assert.Error(t, badBonus.Validate())
}

func TestSortDraws(t *testing.T) {
	draws := []domain.DrawRecord{
		{DrawNumber: 3}, {DrawNumber: 1}, {DrawNumber: 2},
	}
	domain.SortDraws(draws)
	assert.Equal(t, 1, draws[0].DrawNumber)
	assert.Equal(t, 3, draws[2].DrawNumber)
}

func TestZone(t *testing.T) {
	assert.Equal(t, 0, domain.Zone(1))
	assert.Equal(t, 0, domain.Zone(10))
	assert.Equal(t, 1, domain.Zone(11))
	assert.Equal(t, 3, domain.Zone(40))
	assert.Equal(t, 4, domain.Zone(41))
	assert.Equal(t, 4, domain.Zone(45))
}

func TestNewCombination(t *testing.T) {
	c, err := domain.NewCombination([]int{45, 1, 22, 13, 8, 34})
	require.NoError(t, err)
	assert.Equal(t, domain.Combination{1, 8, 13, 22, 34, 45}, c)

	_, err = domain.NewCombination([]int{1, 2, 3, 4, 5})
	assert.Error(t, err)

	_, err = domain.NewCombination([]int{1, 1, 3, 4, 5, 6})
	assert.Error(t, err)
}

func TestCombinationFeatures(t *testing.T) {
	c, err := domain.NewCombination([]int{4, 5, 6, 17, 28, 41})
	require.NoError(t, err)

	assert.Equal(t, 101, c.Sum())
	assert.Equal(t, 3, c.OddCount())
	assert.Equal(t, 4, c.LowCount())
	assert.Equal(t, 3, c.MaxConsecutiveRun())
	assert.Equal(t, 4, c.ZoneCoverage())
	assert.Equal(t, 37, c.Range())
	assert.False(t, c.IsArithmeticProgression())

	ap, err := domain.NewCombination([]int{5, 10, 15, 20, 25, 30})
	require.NoError(t, err)
	assert.True(t, ap.IsArithmeticProgression())
	assert.Equal(t, 1, ap.MaxConsecutiveRun())
}

func TestCombinationOverlap(t *testing.T) {
	c, err := domain.NewCombination([]int{1, 8, 13, 22, 34, 45})
	require.NoError(t, err)
	assert.Equal(t, 2, c.OverlapWith([]int{8, 22, 40}))
	assert.Equal(t, 0, c.OverlapWith(nil))
}

func TestScoreVectorNormalizedIdempotent(t *testing.T) {
	var v domain.ScoreVector
	for n := domain.MinNumber; n <= domain.MaxNumber; n++ {
		v[n] = float64(n)
	}
	once := v.Normalized()
	twice := once.Normalized()
	assert.Equal(t, once, twice)
	assert.Equal(t, 0.0, once[domain.MinNumber])
	assert.Equal(t, 1.0, once[domain.MaxNumber])
}

func TestScoreVectorNormalizedDegenerate(t *testing.T) {
	// All-equal scores must not divide by zero; range defaults to 1.
	var v domain.ScoreVector
	for n := domain.MinNumber; n <= domain.MaxNumber; n++ {
		v[n] = 0.5
	}
	norm := v.Normalized()
	for n := domain.MinNumber; n <= domain.MaxNumber; n++ {
		assert.Equal(t, 0.0, norm[n])
	}
}

func TestScoreVectorRanks(t *testing.T) {
	var v domain.ScoreVector
	v[7] = 1.0
	v[13] = 0.5
	ranks := v.Ranks()
	assert.Equal(t, 1, ranks[7])
	assert.Equal(t, 2, ranks[13])
	// Ties broken by number for determinism.
	assert.Equal(t, 3, ranks[1])
}

func TestScoreVectorTopN(t *testing.T) {
	var v domain.ScoreVector
	v[40] = 3
	v[2] = 2
	v[9] = 1
	assert.Equal(t, []int{40, 2, 9}, v.TopN(3))
}
