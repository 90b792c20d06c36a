package scoring

import (
	"github.com/aristath/daebak/internal/domain"
	"github.com/aristath/daebak/pkg/formulas"
)

// Momentum splits history into three equal epochs and scores each number by
// a blend of velocity (recent rate minus mid rate) and acceleration
// (velocity minus the previous epoch's velocity).
type Momentum struct{}

// NewMomentum creates the model.
func NewMomentum() *Momentum { return &Momentum{} }

// Name implements Model.
func (m *Momentum) Name() string { return "momentum" }

const (
	velocityWeight     = 0.6
	accelerationWeight = 0.4
)

// Score implements Model.
func (m *Momentum) Score(draws []domain.DrawRecord) domain.ScoreVector {
	if len(draws) < minDrawsForModel {
		return domain.UniformScoreVector()
	}

	third := len(draws) / 3
	old := occurrenceRates(draws[:third])
	mid := occurrenceRates(draws[third : 2*third])
	recent := occurrenceRates(draws[2*third:])

	var scores domain.ScoreVector
	for n := domain.MinNumber; n <= domain.MaxNumber; n++ {
		velocity := recent[n] - mid[n]
		acceleration := velocity - (mid[n] - old[n])
		scores[n] = velocityWeight*velocity + accelerationWeight*acceleration
	}
	return scores.Normalized()
}

// TrendDiagnostic summarizes the overall hit-rate trend of a number set over
// recent draws. It feeds the result rationale only; the score above is not
// affected.
func TrendDiagnostic(draws []domain.DrawRecord, numbers []int) *float64 {
	if len(draws) < minDrawsForModel {
		return nil
	}
	series := make([]float64, len(draws))
	for i, draw := range draws {
		hits := 0
		for _, n := range numbers {
			for _, d := range draw.Numbers {
				if n == d {
					hits++
				}
			}
		}
		series[i] = float64(hits)
	}
	return formulas.TrendSlope(series, 5, 10)
}
