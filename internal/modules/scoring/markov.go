package scoring

import (
	"github.com/aristath/daebak/internal/domain"
	"gonum.org/v1/gonum/mat"
)

// MarkovTransition builds a 45x45 transition matrix from consecutive draw
// pairs (number present in draw t -> number present in draw t+1) and scores
// each number by the transition probability mass flowing into it from the
// most recent draws.
type MarkovTransition struct{}

// NewMarkovTransition creates the model.
func NewMarkovTransition() *MarkovTransition { return &MarkovTransition{} }

// Name implements Model.
func (m *MarkovTransition) Name() string { return "markov_transition" }

// recencyWeights skew the score toward transitions from the most recent
// draw. Renormalized when fewer than three draws are available.
var recencyWeights = []float64{0.5, 0.3, 0.2}

// Score implements Model.
func (m *MarkovTransition) Score(draws []domain.DrawRecord) domain.ScoreVector {
	if len(draws) < minDrawsForModel {
		return domain.UniformScoreVector()
	}

	probs := transitionProbabilities(draws)

	// Source draws: most recent first.
	sourceCount := len(recencyWeights)
	if sourceCount > len(draws) {
		sourceCount = len(draws)
	}
	weightTotal := 0.0
	for i := 0; i < sourceCount; i++ {
		weightTotal += recencyWeights[i]
	}

	var scores domain.ScoreVector
	for i := 0; i < sourceCount; i++ {
		source := draws[len(draws)-1-i]
		w := recencyWeights[i] / weightTotal
		for _, from := range source.Numbers {
			for to := domain.MinNumber; to <= domain.MaxNumber; to++ {
				scores[to] += w * probs.At(from-1, to-1) / domain.CombinationSize
			}
		}
	}
	return scores
}

// transitionProbabilities returns the Laplace-smoothed (+1 count, +45
// denominator) row-stochastic transition matrix.
func transitionProbabilities(draws []domain.DrawRecord) *mat.Dense {
	counts := mat.NewDense(domain.MaxNumber, domain.MaxNumber, nil)
	for t := 0; t < len(draws)-1; t++ {
		for _, from := range draws[t].Numbers {
			for _, to := range draws[t+1].Numbers {
				counts.Set(from-1, to-1, counts.At(from-1, to-1)+1)
			}
		}
	}

	probs := mat.NewDense(domain.MaxNumber, domain.MaxNumber, nil)
	for i := 0; i < domain.MaxNumber; i++ {
		rowTotal := 0.0
		for j := 0; j < domain.MaxNumber; j++ {
			rowTotal += counts.At(i, j) + 1
		}
		for j := 0; j < domain.MaxNumber; j++ {
			probs.Set(i, j, (counts.At(i, j)+1)/rowTotal)
		}
	}
	return probs
}
