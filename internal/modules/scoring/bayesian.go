package scoring

import (
	"github.com/aristath/daebak/internal/domain"
	"gonum.org/v1/gonum/stat/distuv"
)

// BayesianPosterior scores each number by the posterior mean of a
// Beta(1+count, 1+6N-count) distribution - a Beta(1,1) uninformative prior
// updated with the number's appearance record. Short histories shrink toward
// the uniform rate instead of trusting extreme empirical frequencies.
type BayesianPosterior struct{}

// NewBayesianPosterior creates the model.
func NewBayesianPosterior() *BayesianPosterior { return &BayesianPosterior{} }

// Name implements Model.
func (m *BayesianPosterior) Name() string { return "bayesian_posterior" }

// Score implements Model.
func (m *BayesianPosterior) Score(draws []domain.DrawRecord) domain.ScoreVector {
	if len(draws) < minDrawsForModel {
		return domain.UniformScoreVector()
	}
	return posteriorMeans(draws)
}

// posteriorMeans returns the Beta posterior mean per number. Exposed inside
// the package because the Monte Carlo model reuses these as sampling weights.
func posteriorMeans(draws []domain.DrawRecord) domain.ScoreVector {
	counts := occurrenceCounts(draws)
	totalSlots := float64(len(draws)) * domain.CombinationSize

	var scores domain.ScoreVector
	for n := domain.MinNumber; n <= domain.MaxNumber; n++ {
		posterior := distuv.Beta{
			Alpha: 1 + float64(counts[n]),
			Beta:  1 + totalSlots - float64(counts[n]),
		}
		scores[n] = posterior.Mean()
	}
	return scores
}
