package history

import (
	"fmt"
	"sort"

	"github.com/aristath/daebak/internal/domain"
	"github.com/rs/zerolog"
)

const (
	// MinimumDraws is the hard floor below which generation is refused.
	// Below this the statistical models have nothing to work with.
	MinimumDraws = 10

	// RecommendedDraws is the level at which the estimators become
	// meaningful. Below this the pipeline still runs but surfaces a
	// warning in the result rationale.
	RecommendedDraws = 30
)

// Service validates draws at the boundary and serves ordered history to the
// pipeline.
type Service struct {
	repo *Repository
	log  zerolog.Logger
}

// NewService creates a history service.
func NewService(repo *Repository, log zerolog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With().Str("component", "history").Logger(),
	}
}

// Import validates and stores a batch of draws. Malformed records are
// rejected here - never deep in the pipeline.
func (s *Service) Import(draws []domain.DrawRecord) (int, error) {
	for _, draw := range draws {
		if err := draw.Validate(); err != nil {
			return 0, fmt.Errorf("rejected import: %w", err)
		}
	}
	normalized := make([]domain.DrawRecord, len(draws))
	for i, draw := range draws {
		numbers := make([]int, len(draw.Numbers))
		copy(numbers, draw.Numbers)
		sort.Ints(numbers)
		draw.Numbers = numbers
		normalized[i] = draw
	}
	if err := s.repo.BulkImport(normalized); err != nil {
		return 0, err
	}
	return len(normalized), nil
}

// OrderedDraws returns the full history sorted ascending by draw number.
func (s *Service) OrderedDraws() ([]domain.DrawRecord, error) {
	draws, err := s.repo.All()
	if err != nil {
		return nil, err
	}
	domain.SortDraws(draws)
	return draws, nil
}

// Latest returns the most recent n draws in ascending order.
func (s *Service) Latest(n int) ([]domain.DrawRecord, error) {
	return s.repo.Latest(n)
}

// Count returns the number of stored draws.
func (s *Service) Count() (int, error) {
	return s.repo.Count()
}
