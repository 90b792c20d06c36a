package strategy_test

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/aristath/daebak/internal/combinatorics"
	"github.com/aristath/daebak/internal/domain"
	"github.com/aristath/daebak/internal/modules/fusion"
	"github.com/aristath/daebak/internal/modules/history"
	"github.com/aristath/daebak/internal/modules/payout"
	"github.com/aristath/daebak/internal/modules/popularity"
	"github.com/aristath/daebak/internal/modules/profile"
	"github.com/aristath/daebak/internal/modules/strategy"
	"github.com/aristath/daebak/internal/rng"
	_ "modernc.org/sqlite"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomHistory builds a reproducible synthetic draw history.
func randomHistory(count int) []domain.DrawRecord {
	r := rng.New(12345)
	draws := make([]domain.DrawRecord, count)
	for i := 0; i < count; i++ {
		perm := r.Perm(domain.MaxNumber)
		numbers := make([]int, domain.CombinationSize)
		for j := 0; j < domain.CombinationSize; j++ {
			numbers[j] = perm[j] + 1
		}
		sort.Ints(numbers)
		draws[i] = domain.DrawRecord{
			DrawNumber: i + 1,
			Date:       fmt.Sprintf("2024-%02d-%02d", i%12+1, i%28+1),
			Numbers:    numbers,
			Bonus:      perm[domain.CombinationSize] + 1,
		}
	}
	return draws
}

func newTestService(t *testing.T, drawCount int) (*strategy.Service, *strategy.Repository) {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	historyRepo, err := history.NewRepository(db, zerolog.Nop())
	require.NoError(t, err)
	historyService := history.NewService(historyRepo, zerolog.Nop())
	if drawCount > 0 {
		_, err = historyService.Import(randomHistory(drawCount))
		require.NoError(t, err)
	}

	resultsRepo, err := strategy.NewRepository(db, zerolog.Nop())
	require.NoError(t, err)

	calc := combinatorics.NewCalculator()
	service := strategy.NewService(strategy.Config{
		History:      historyService,
		Popularity:   popularity.NewModel(popularity.DefaultBiasWeights()),
		Profiles:     profile.NewBuilder(profile.DefaultBounds(), profile.DefaultDimensionWeights(), zerolog.Nop()),
		Constraints:  profile.DefaultHardConstraints(),
		Fuser:        fusion.NewFuser(zerolog.Nop()),
		PoolBuilder:  fusion.NewPoolBuilder(zerolog.Nop()),
		PayoutEngine: payout.NewEngine(payout.DefaultConfig(), calc, zerolog.Nop()),
		Calculator:   calc,
		Repository:   resultsRepo,
		Log:          zerolog.Nop(),
	})
	return service, resultsRepo
}

func TestGenerateDeterministicForFixedSeed(t *testing.T) {
	service, _ := newTestService(t, 60)
	req := strategy.GenerateRequest{
		Timestamp:       time.UnixMilli(1700000000000),
		CarryoverMisses: 1,
		Selector:        "mcmc",
	}

	first, err := service.Generate(context.Background(), req)
	require.NoError(t, err)
	second, err := service.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.Combination, second.Combination)
	assert.Equal(t, first.Method, second.Method)
	assert.Equal(t, first.PoolSize, second.PoolSize)
	assert.Equal(t, first.ExpectedValue.TotalEV, second.ExpectedValue.TotalEV)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestGenerateSatisfiesHardConstraints(t *testing.T) {
	service, _ := newTestService(t, 60)

	for _, selector := range []string{"mcmc", "genetic"} {
		result, err := service.Generate(context.Background(), strategy.GenerateRequest{
			Timestamp: time.UnixMilli(1700000000000),
			Selector:  selector,
		})
		require.NoError(t, err, selector)

		draws := randomHistory(60)
		validator := profile.NewValidator(profile.DefaultHardConstraints(), draws)
		assert.True(t, validator.PassesHardConstraints(result.Combination), selector)

		assert.Len(t, result.Combination, domain.CombinationSize)
		assert.GreaterOrEqual(t, result.PoolSize, fusion.MinPoolSize)
		assert.LessOrEqual(t, result.PoolSize, fusion.MaxPoolSize)
		assert.Greater(t, result.Confidence, 0.0)
		assert.LessOrEqual(t, result.Confidence, 1.0)
		assert.Len(t, result.ModelScores, 7)
	}
}

func TestGenerateRefusesThinHistory(t *testing.T) {
	service, _ := newTestService(t, 5)

	_, err := service.Generate(context.Background(), strategy.GenerateRequest{
		Timestamp: time.Now(),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient history")
}

func TestGenerateWarnsOnShortHistory(t *testing.T) {
	service, _ := newTestService(t, 20)

	result, err := service.Generate(context.Background(), strategy.GenerateRequest{
		Timestamp: time.UnixMilli(1700000000000),
	})
	require.NoError(t, err)
	assert.Contains(t, result.Rationale, "recommended")
}

func TestGenerateUnknownSelector(t *testing.T) {
	service, _ := newTestService(t, 60)

	_, err := service.Generate(context.Background(), strategy.GenerateRequest{
		Timestamp: time.Now(),
		Selector:  "quantum",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown selector")
}

func TestGeneratePersistsResult(t *testing.T) {
	service, repo := newTestService(t, 60)

	result, err := service.Generate(context.Background(), strategy.GenerateRequest{
		Timestamp: time.UnixMilli(1700000000000),
	})
	require.NoError(t, err)

	stored, err := repo.Get(result.ID)
	require.NoError(t, err)
	assert.Equal(t, result.Combination, stored.Combination)
	assert.Equal(t, result.ExpectedValue.Recommendation, stored.ExpectedValue.Recommendation)
}
