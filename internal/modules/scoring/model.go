// Package scoring implements the seven independent statistical models that
// score each of the 45 numbers against historical draws. Every model is a
// pure function of (draws, injected rng); none shares mutable state, so the
// runner executes them concurrently.
package scoring

import (
	"context"

	"github.com/aristath/daebak/internal/domain"
	"github.com/aristath/daebak/internal/rng"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Model scores all 45 numbers from the ordered draw history. Implementations
// must degrade to a uniform vector when history is too short instead of
// failing the pipeline.
type Model interface {
	Name() string
	Score(draws []domain.DrawRecord) domain.ScoreVector
}

// minDrawsForModel is the degenerate-data floor shared by all models: below
// this every model returns a uniform vector.
const minDrawsForModel = 10

// DefaultModels returns the full seven-model set. The Monte Carlo model
// owns the given random stream; everything else is deterministic.
func DefaultModels(rand *rng.Source) []Model {
	return []Model{
		NewAdaptiveFrequency(),
		NewBayesianPosterior(),
		NewMomentum(),
		NewMarkovTransition(),
		NewMonteCarlo(rand),
		NewSpectral(),
		NewGraphCentrality(),
	}
}

// Runner executes a fixed set of models concurrently.
type Runner struct {
	models []Model
	log    zerolog.Logger
}

// NewRunner creates a runner over the given models.
func NewRunner(models []Model, log zerolog.Logger) *Runner {
	return &Runner{
		models: models,
		log:    log.With().Str("component", "scoring_runner").Logger(),
	}
}

// Models returns the models in registration order.
func (r *Runner) Models() []Model { return r.models }

// ScoreAll runs every model concurrently and returns the vectors keyed by
// model name. The draws slice is shared read-only; each model writes only to
// its own output slot.
func (r *Runner) ScoreAll(ctx context.Context, draws []domain.DrawRecord) (map[string]domain.ScoreVector, error) {
	results := make([]domain.ScoreVector, len(r.models))

	g, _ := errgroup.WithContext(ctx)
	for i, model := range r.models {
		i, model := i, model
		g.Go(func() error {
			results[i] = model.Score(draws)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	scores := make(map[string]domain.ScoreVector, len(r.models))
	for i, model := range r.models {
		scores[model.Name()] = results[i]
	}
	r.log.Debug().Int("models", len(r.models)).Int("draws", len(draws)).Msg("Scored all models")
	return scores, nil
}

// occurrenceCounts tallies how often each number appears in the given draws.
func occurrenceCounts(draws []domain.DrawRecord) [domain.MaxNumber + 1]int {
	var counts [domain.MaxNumber + 1]int
	for _, draw := range draws {
		for _, n := range draw.Numbers {
			counts[n]++
		}
	}
	return counts
}

// occurrenceRates returns per-number appearance rates over the given draws.
func occurrenceRates(draws []domain.DrawRecord) domain.ScoreVector {
	var rates domain.ScoreVector
	if len(draws) == 0 {
		return rates
	}
	counts := occurrenceCounts(draws)
	for n := domain.MinNumber; n <= domain.MaxNumber; n++ {
		rates[n] = float64(counts[n]) / float64(len(draws))
	}
	return rates
}
