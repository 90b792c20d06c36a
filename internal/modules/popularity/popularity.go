// Package popularity estimates how attractive each number is to human
// manual-pick players, then inverts that into an "unpopularity" score. The
// engine cannot make a ticket more likely to win - it can only steer toward
// combinations fewer people share, which is what this model measures.
package popularity

import (
	"math"

	"github.com/aristath/daebak/internal/domain"
)

// BiasWeights holds the relative weight of each calibrated bias source.
// These are empirically chosen constants, kept as configuration rather than
// algorithmic truths.
type BiasWeights struct {
	Birthday      float64
	LuckyNumber   float64
	Cultural      float64
	SlipPosition  float64
	RoundNumber   float64
	RecentMimicry float64
	Arithmetic    float64
	LowFamiliar   float64
}

// DefaultBiasWeights returns the calibrated source weights.
func DefaultBiasWeights() BiasWeights {
	return BiasWeights{
		Birthday:      0.25,
		LuckyNumber:   0.15,
		Cultural:      0.10,
		SlipPosition:  0.10,
		RoundNumber:   0.10,
		RecentMimicry: 0.12,
		Arithmetic:    0.08,
		LowFamiliar:   0.10,
	}
}

// Model combines the eight bias sources into per-number popularity and
// unpopularity estimates.
type Model struct {
	weights BiasWeights
}

// NewModel creates a popularity model with the given source weights.
func NewModel(weights BiasWeights) *Model {
	return &Model{weights: weights}
}

// Unpopularity returns the per-number anti-popularity vector in [0,1]:
// higher means fewer expected co-winners.
func (m *Model) Unpopularity(draws []domain.DrawRecord) domain.ScoreVector {
	popularity := m.Popularity(draws)
	var scores domain.ScoreVector
	for n := domain.MinNumber; n <= domain.MaxNumber; n++ {
		scores[n] = 1 - popularity[n]
	}
	return scores
}

// Popularity returns the per-number popularity estimate rescaled into [0,1].
func (m *Model) Popularity(draws []domain.DrawRecord) domain.ScoreVector {
	var raw domain.ScoreVector
	w := m.weights
	for n := domain.MinNumber; n <= domain.MaxNumber; n++ {
		raw[n] = w.Birthday*birthdayBias(n) +
			w.LuckyNumber*luckyNumberBias(n) +
			w.Cultural*culturalBias(n) +
			w.SlipPosition*slipPositionBias(n) +
			w.RoundNumber*roundNumberBias(n) +
			w.RecentMimicry*recentMimicryBias(n, draws) +
			w.Arithmetic*arithmeticBias(n) +
			w.LowFamiliar*lowFamiliarityBias(n)
	}
	return raw.Normalized()
}

// CombinationUnpopularity scores a full ticket by the geometric mean of its
// six per-number unpopularity values. The geometric mean gives the score a
// weakest-link property: one highly popular number drags the whole
// combination down far harder than an arithmetic mean would.
func CombinationUnpopularity(combo domain.Combination, unpopularity domain.ScoreVector) float64 {
	logSum := 0.0
	for _, n := range combo {
		logSum += math.Log(math.Max(unpopularity[n], 0.001))
	}
	return math.Exp(logSum / float64(len(combo)))
}

// birthdayBias: dates dominate manual picks. Days (<=31) are favored, months
// (<=12) doubly so.
func birthdayBias(n int) float64 {
	switch {
	case n <= 12:
		return 1.0
	case n <= 31:
		return 0.7
	default:
		return 0.0
	}
}

// luckyNumberBias: 7, 3, 8 and their decade multiples carry folk luck.
func luckyNumberBias(n int) float64 {
	switch n {
	case 7:
		return 1.0
	case 3, 8:
		return 0.8
	case 17, 27, 37:
		return 0.5
	case 13, 23, 33, 43, 18, 28, 38:
		return 0.3
	default:
		return 0.0
	}
}

// culturalBias: the 4-family is avoided (tetraphobia), the 8-family favored.
func culturalBias(n int) float64 {
	switch {
	case n == 4 || n == 14 || n == 24 || n == 34 || n == 44:
		return -0.8
	case n == 8 || n == 18 || n == 28 || n == 38:
		return 0.6
	default:
		return 0.0
	}
}

// slipPositionBias: physical play slips list numbers in seven columns; eyes
// and pens favor the top rows and center columns.
func slipPositionBias(n int) float64 {
	row := (n - 1) / 7
	col := (n - 1) % 7
	rowScore := 1.0 - float64(row)/6.0
	colScore := 1.0 - math.Abs(float64(col)-3.0)/3.0
	return 0.6*rowScore + 0.4*colScore
}

// roundNumberBias: multiples of 10, then 5, attract picks.
func roundNumberBias(n int) float64 {
	if n%10 == 0 {
		return 1.0
	}
	if n%5 == 0 {
		return 0.6
	}
	return 0.0
}

// recentMimicryBias: players replay recent winning numbers; the effect
// decays exponentially over the last 10 draws.
func recentMimicryBias(n int, draws []domain.DrawRecord) float64 {
	window := 10
	if len(draws) < window {
		window = len(draws)
	}
	bias := 0.0
	for i := 0; i < window; i++ {
		draw := draws[len(draws)-1-i]
		for _, d := range draw.Numbers {
			if d == n {
				bias += math.Exp(-0.5 * float64(i))
				break
			}
		}
	}
	return bias
}

// arithmeticBias: numbers on the 5 and 7 times tables show up in patterned
// picks (diagonals and columns on the slip).
func arithmeticBias(n int) float64 {
	score := 0.0
	if n%5 == 0 {
		score += 0.6
	}
	if n%7 == 0 {
		score += 0.4
	}
	return score
}

// lowFamiliarityBias: small numbers feel familiar; 1-10 dominate casual picks.
func lowFamiliarityBias(n int) float64 {
	if n <= 10 {
		return 1.0 - float64(n-1)/20.0
	}
	return math.Max(0, 0.5-float64(n-10)/70.0)
}
