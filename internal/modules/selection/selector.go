// Package selection picks a final 6-number combination from the candidate
// pool under hard structural constraints.
package selection

import (
	"github.com/aristath/daebak/internal/domain"
	"github.com/aristath/daebak/internal/modules/popularity"
	"github.com/aristath/daebak/internal/modules/profile"
	"github.com/aristath/daebak/internal/rng"
	"gonum.org/v1/gonum/mat"
)

const (
	antiPopularityWeight = 0.6
	structuralFitWeight  = 0.4

	// scoreFloor keeps log-density arguments and fitness terms away from
	// zero so a single weak component cannot collapse the whole score.
	scoreFloor = 0.001
)

// SelectionContext carries everything a selector needs for one generation
// run. It is immutable during selection except for the rng source.
type SelectionContext struct {
	Pool         []int
	Unpopularity domain.ScoreVector
	Profile      *profile.StructuralProfile
	Validator    *profile.Validator
	PairAffinity *mat.SymDense
	Rand         *rng.Source
}

// Outcome is the result of one selection run. RHat is NaN for selectors
// without a chain diagnostic.
type Outcome struct {
	Combination domain.Combination
	Score       float64
	Method      string
	RHat        float64
	Converged   bool
}

// Selector produces one constraint-valid combination.
type Selector interface {
	Name() string
	Select(sc *SelectionContext) (Outcome, error)
}

// PairAffinityFromDraws builds a symmetric co-occurrence affinity matrix
// over the historical draws, scaled to [0,1] by the maximum pair count.
func PairAffinityFromDraws(draws []domain.DrawRecord) *mat.SymDense {
	affinity := mat.NewSymDense(domain.MaxNumber+1, nil)
	maxCount := 0.0
	for _, draw := range draws {
		for i := 0; i < len(draw.Numbers); i++ {
			for j := i + 1; j < len(draw.Numbers); j++ {
				a, b := draw.Numbers[i], draw.Numbers[j]
				count := affinity.At(a, b) + 1
				affinity.SetSym(a, b, count)
				if count > maxCount {
					maxCount = count
				}
			}
		}
	}
	if maxCount > 0 {
		for a := domain.MinNumber; a <= domain.MaxNumber; a++ {
			for b := a + 1; b <= domain.MaxNumber; b++ {
				affinity.SetSym(a, b, affinity.At(a, b)/maxCount)
			}
		}
	}
	return affinity
}

// antiPopularity is the geometric-mean unpopularity of the combination.
func (sc *SelectionContext) antiPopularity(combo domain.Combination) float64 {
	return popularity.CombinationUnpopularity(combo, sc.Unpopularity)
}

// structuralFit is the profile plausibility, zero when the combination is
// outside the profile's hard bounds.
func (sc *SelectionContext) structuralFit(combo domain.Combination) float64 {
	fit, ok := sc.Profile.Score(combo)
	if !ok {
		return 0
	}
	return fit
}

// compositeScore is the blended anti-popularity and structural-fit score
// selectors report in their outcome.
func (sc *SelectionContext) compositeScore(combo domain.Combination) float64 {
	return antiPopularityWeight*sc.antiPopularity(combo) + structuralFitWeight*sc.structuralFit(combo)
}

// pairCorrelation averages the pair affinity over all 15 pairs.
func (sc *SelectionContext) pairCorrelation(combo domain.Combination) float64 {
	if sc.PairAffinity == nil {
		return 0
	}
	total := 0.0
	pairs := 0
	for i := 0; i < len(combo); i++ {
		for j := i + 1; j < len(combo); j++ {
			total += sc.PairAffinity.At(combo[i], combo[j])
			pairs++
		}
	}
	if pairs == 0 {
		return 0
	}
	return total / float64(pairs)
}

func floorAt(v, floor float64) float64 {
	if v < floor {
		return floor
	}
	return v
}
