package scoring

import (
	"github.com/aristath/daebak/internal/domain"
	"github.com/aristath/daebak/internal/rng"
)

// monteCarloTrials is the number of weighted without-replacement 6-number
// draws the model simulates.
const monteCarloTrials = 5000

// MonteCarlo resamples 6-number tickets using the Bayesian posterior means
// as sampling weights and scores each number by how often it gets selected.
// The without-replacement draws capture interaction effects a closed-form
// per-number calculation would miss.
type MonteCarlo struct {
	rand *rng.Source
}

// NewMonteCarlo creates the model with its own random stream. A fresh model
// is constructed per generation request, so the stream is never shared.
func NewMonteCarlo(rand *rng.Source) *MonteCarlo {
	return &MonteCarlo{rand: rand}
}

// Name implements Model.
func (m *MonteCarlo) Name() string { return "monte_carlo" }

// Score implements Model.
func (m *MonteCarlo) Score(draws []domain.DrawRecord) domain.ScoreVector {
	if len(draws) < minDrawsForModel {
		return domain.UniformScoreVector()
	}

	weights := posteriorMeans(draws)

	var tallies domain.ScoreVector
	trial := make([]float64, domain.MaxNumber+1)
	for t := 0; t < monteCarloTrials; t++ {
		copy(trial, weights[:])
		trial[0] = 0
		for pick := 0; pick < domain.CombinationSize; pick++ {
			idx := m.rand.WeightedIndex(trial)
			for idx == 0 || trial[idx] == 0 {
				// Degenerate weight fallback landed on the unused slot or an
				// already-picked number; walk to the next available one.
				idx = idx%domain.MaxNumber + 1
			}
			tallies[idx]++
			trial[idx] = 0 // without replacement
		}
	}

	total := float64(monteCarloTrials * domain.CombinationSize)
	for n := domain.MinNumber; n <= domain.MaxNumber; n++ {
		tallies[n] /= total
	}
	return tallies
}
