// Package profile scores how structurally typical a candidate combination
// is, using a posterior built from full draw history. The profile describes
// "what a winning combination tends to look like" - sums, spreads, runs -
// without ever comparing candidates to past exact draws, so it filters
// implausible shapes without overfitting to history.
package profile

import (
	"github.com/aristath/daebak/internal/domain"
)

// Dimension identifies one structural feature of a combination.
type Dimension string

const (
	DimensionSum          Dimension = "sum"
	DimensionOddCount     Dimension = "odd_count"
	DimensionLowCount     Dimension = "low_count"
	DimensionMaxRun       Dimension = "max_run"
	DimensionMeanGap      Dimension = "mean_gap"
	DimensionZoneCoverage Dimension = "zone_coverage"
	DimensionLastDigits   Dimension = "last_digits"
	DimensionRange        Dimension = "range"
)

// dimensions lists every profiled feature in a fixed evaluation order.
var dimensions = []Dimension{
	DimensionSum,
	DimensionOddCount,
	DimensionLowCount,
	DimensionMaxRun,
	DimensionMeanGap,
	DimensionZoneCoverage,
	DimensionLastDigits,
	DimensionRange,
}

// featureValue extracts one dimension's value from a combination.
func featureValue(dim Dimension, combo domain.Combination) float64 {
	switch dim {
	case DimensionSum:
		return float64(combo.Sum())
	case DimensionOddCount:
		return float64(combo.OddCount())
	case DimensionLowCount:
		return float64(combo.LowCount())
	case DimensionMaxRun:
		return float64(combo.MaxConsecutiveRun())
	case DimensionMeanGap:
		return combo.MeanAdjacentGap()
	case DimensionZoneCoverage:
		return float64(combo.ZoneCoverage())
	case DimensionLastDigits:
		return float64(combo.LastDigitCount())
	case DimensionRange:
		return float64(combo.Range())
	}
	return 0
}

// Bound is a hard-reject interval for one dimension.
type Bound struct {
	Min float64
	Max float64
}

// contains reports whether v lies inside the closed interval.
func (b Bound) contains(v float64) bool {
	return v >= b.Min && v <= b.Max
}

// DefaultBounds returns the hard-reject intervals per dimension. Empirically
// chosen configuration, not derived truths.
func DefaultBounds() map[Dimension]Bound {
	return map[Dimension]Bound{
		DimensionSum:          {Min: 80, Max: 200},
		DimensionOddCount:     {Min: 1, Max: 5},
		DimensionLowCount:     {Min: 1, Max: 5},
		DimensionMaxRun:       {Min: 1, Max: 2},
		DimensionMeanGap:      {Min: 2, Max: 16},
		DimensionZoneCoverage: {Min: 3, Max: 5},
		DimensionLastDigits:   {Min: 4, Max: 6},
		DimensionRange:        {Min: 15, Max: 44},
	}
}

// DefaultDimensionWeights returns the per-dimension weights used to combine
// plausibility scores into one fit value.
func DefaultDimensionWeights() map[Dimension]float64 {
	return map[Dimension]float64{
		DimensionSum:          0.22,
		DimensionOddCount:     0.12,
		DimensionLowCount:     0.12,
		DimensionMaxRun:       0.10,
		DimensionMeanGap:      0.12,
		DimensionZoneCoverage: 0.12,
		DimensionLastDigits:   0.08,
		DimensionRange:        0.12,
	}
}
