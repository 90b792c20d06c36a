package history_test

import (
	"database/sql"
	"testing"

	"github.com/aristath/daebak/internal/domain"
	"github.com/aristath/daebak/internal/modules/history"
	_ "modernc.org/sqlite"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *history.Repository {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo, err := history.NewRepository(db, zerolog.Nop())
	require.NoError(t, err)
	return repo
}

func TestRepositoryRoundTripOrdered(t *testing.T) {
	repo := newTestRepo(t)

	draws := []domain.DrawRecord{
		{DrawNumber: 3, Date: "2024-01-20", Numbers: []int{5, 9, 17, 23, 38, 44}, Bonus: 2},
		{DrawNumber: 1, Date: "2024-01-06", Numbers: []int{1, 8, 13, 22, 34, 45}, Bonus: 7},
		{DrawNumber: 2, Date: "2024-01-13", Numbers: []int{4, 11, 19, 28, 36, 42}, Bonus: 15},
	}
	require.NoError(t, repo.BulkImport(draws))

	all, err := repo.All()
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Ordered ascending regardless of insert order.
	assert.Equal(t, 1, all[0].DrawNumber)
	assert.Equal(t, 2, all[1].DrawNumber)
	assert.Equal(t, 3, all[2].DrawNumber)
	assert.Equal(t, []int{1, 8, 13, 22, 34, 45}, all[0].Numbers)

	count, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestRepositoryLatestAscending(t *testing.T) {
	repo := newTestRepo(t)
	for i := 1; i <= 5; i++ {
		require.NoError(t, repo.Upsert(domain.DrawRecord{
			DrawNumber: i,
			Date:       "2024-01-06",
			Numbers:    []int{1, 8, 13, 22, 34, 45},
			Bonus:      7,
		}))
	}

	latest, err := repo.Latest(2)
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, 4, latest[0].DrawNumber)
	assert.Equal(t, 5, latest[1].DrawNumber)
}

func TestServiceRejectsMalformedDraws(t *testing.T) {
	repo := newTestRepo(t)
	svc := history.NewService(repo, zerolog.Nop())

	_, err := svc.Import([]domain.DrawRecord{
		{DrawNumber: 1, Date: "2024-01-06", Numbers: []int{1, 8, 13, 22, 34}, Bonus: 7},
	})
	assert.Error(t, err)

	count, err := svc.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestServiceNormalizesNumberOrder(t *testing.T) {
	repo := newTestRepo(t)
	svc := history.NewService(repo, zerolog.Nop())

	n, err := svc.Import([]domain.DrawRecord{
		{DrawNumber: 1, Date: "2024-01-06", Numbers: []int{45, 1, 34, 8, 22, 13}, Bonus: 7},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	draws, err := svc.OrderedDraws()
	require.NoError(t, err)
	assert.Equal(t, []int{1, 8, 13, 22, 34, 45}, draws[0].Numbers)
}
