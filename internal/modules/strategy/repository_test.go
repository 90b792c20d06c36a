package strategy_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/aristath/daebak/internal/domain"
	"github.com/aristath/daebak/internal/modules/strategy"
	_ "modernc.org/sqlite"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *strategy.Repository {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo, err := strategy.NewRepository(db, zerolog.Nop())
	require.NoError(t, err)
	return repo
}

func sampleResult(id string, generatedAt time.Time) *domain.StrategyResult {
	return &domain.StrategyResult{
		ID:              id,
		Combination:     domain.Combination{3, 11, 24, 27, 35, 42},
		AntiPopularity:  0.71,
		StructuralFit:   0.64,
		ConvergenceRHat: 1.04,
		Method:          "mcmc",
		PoolSize:        18,
		ModelScores:     map[string]float64{"adaptive_frequency": 0.8},
		ExpectedValue: domain.ExpectedValueBreakdown{
			TotalEV:        -250,
			TicketPrice:    1000,
			Recommendation: domain.RecommendationNeutral,
		},
		Confidence:  0.74,
		Rationale:   "method mcmc over an 18-number pool",
		GeneratedAt: generatedAt,
	}
}

func TestRepositorySaveAndGet(t *testing.T) {
	repo := newTestRepo(t)
	saved := sampleResult("r1", time.Now().UTC())
	require.NoError(t, repo.Save(saved))

	got, err := repo.Get("r1")
	require.NoError(t, err)
	assert.Equal(t, saved.Combination, got.Combination)
	assert.Equal(t, saved.Method, got.Method)
	assert.Equal(t, saved.ExpectedValue.Recommendation, got.ExpectedValue.Recommendation)
	assert.InDelta(t, saved.ConvergenceRHat, got.ConvergenceRHat, 1e-9)
	assert.Equal(t, saved.ModelScores, got.ModelScores)
}

func TestRepositoryGetMissing(t *testing.T) {
	repo := newTestRepo(t)
	_, err := repo.Get("missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestRepositoryRecentNewestFirst(t *testing.T) {
	repo := newTestRepo(t)
	base := time.Now().UTC()
	require.NoError(t, repo.Save(sampleResult("old", base.Add(-2*time.Hour))))
	require.NoError(t, repo.Save(sampleResult("mid", base.Add(-time.Hour))))
	require.NoError(t, repo.Save(sampleResult("new", base)))

	results, err := repo.Recent(2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "new", results[0].ID)
	assert.Equal(t, "mid", results[1].ID)
}

func TestRepositoryDeleteOlderThan(t *testing.T) {
	repo := newTestRepo(t)
	base := time.Now().UTC()
	require.NoError(t, repo.Save(sampleResult("stale", base.Add(-48*time.Hour))))
	require.NoError(t, repo.Save(sampleResult("fresh", base)))

	removed, err := repo.DeleteOlderThan(base.Add(-24 * time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
