package scoring

import (
	"github.com/aristath/daebak/internal/domain"
)

// windowCandidates are the lookback lengths the adaptive frequency model
// searches. The best window is the one whose occurrence counts deviate most
// from the uniform null hypothesis, letting recency-relevant bias announce
// itself instead of assuming a fixed lookback.
var windowCandidates = []int{20, 30, 40, 50, 60, 78}

// AdaptiveFrequency scores numbers by their occurrence rate inside the
// chi-square-maximizing window of recent draws.
type AdaptiveFrequency struct{}

// NewAdaptiveFrequency creates the model.
func NewAdaptiveFrequency() *AdaptiveFrequency { return &AdaptiveFrequency{} }

// Name implements Model.
func (m *AdaptiveFrequency) Name() string { return "adaptive_frequency" }

// Score implements Model.
func (m *AdaptiveFrequency) Score(draws []domain.DrawRecord) domain.ScoreVector {
	if len(draws) < minDrawsForModel {
		return domain.UniformScoreVector()
	}

	bestWindow := 0
	bestChiSquare := -1.0
	for _, w := range windowCandidates {
		if w > len(draws) {
			w = len(draws)
		}
		window := draws[len(draws)-w:]
		chi := chiSquareAgainstUniform(window)
		if chi > bestChiSquare {
			bestChiSquare = chi
			bestWindow = w
		}
	}

	return occurrenceRates(draws[len(draws)-bestWindow:])
}

// chiSquareAgainstUniform computes the chi-square statistic of the observed
// per-number counts against the uniform expectation of w*6/45 per number.
func chiSquareAgainstUniform(draws []domain.DrawRecord) float64 {
	counts := occurrenceCounts(draws)
	expected := float64(len(draws)) * domain.CombinationSize / float64(domain.MaxNumber)
	if expected == 0 {
		return 0
	}
	chi := 0.0
	for n := domain.MinNumber; n <= domain.MaxNumber; n++ {
		diff := float64(counts[n]) - expected
		chi += diff * diff / expected
	}
	return chi
}
