package profile

import (
	"github.com/aristath/daebak/internal/domain"
)

// HardConstraints holds the reject rules every selector applies uniformly.
// A combination failing any rule is invalid outright - no partial credit.
type HardConstraints struct {
	SumMin           int
	SumMax           int
	OddMin           int
	OddMax           int
	LowMin           int
	LowMax           int
	MinZones         int
	MinHighNumber    int // at least one number >= this value
	MinLastDigits    int
	MaxZoneMembers   int
	MaxRun           int // longest consecutive run must stay below this
	MaxRecentOverlap int // max shared numbers with the last draws' union
	RecentDrawCount  int // how many recent draws feed the overlap check
}

// DefaultHardConstraints returns the selector-facing constraint set.
func DefaultHardConstraints() HardConstraints {
	return HardConstraints{
		SumMin:           100,
		SumMax:           175,
		OddMin:           2,
		OddMax:           4,
		LowMin:           2,
		LowMax:           4,
		MinZones:         3,
		MinHighNumber:    32,
		MinLastDigits:    4,
		MaxZoneMembers:   3,
		MaxRun:           2,
		MaxRecentOverlap: 3,
		RecentDrawCount:  2,
	}
}

// Validator is the single consolidated constraint checker used by every
// selector and fallback path.
type Validator struct {
	constraints HardConstraints
	recentUnion []int
}

// NewValidator creates a validator. recentDraws should be the tail of the
// ordered history; only the last RecentDrawCount draws feed the overlap rule.
func NewValidator(constraints HardConstraints, recentDraws []domain.DrawRecord) *Validator {
	start := len(recentDraws) - constraints.RecentDrawCount
	if start < 0 {
		start = 0
	}
	seen := make(map[int]bool)
	var union []int
	for _, draw := range recentDraws[start:] {
		for _, n := range draw.Numbers {
			if !seen[n] {
				seen[n] = true
				union = append(union, n)
			}
		}
	}
	return &Validator{constraints: constraints, recentUnion: union}
}

// PassesHardConstraints reports whether the combination satisfies every
// hard rule.
func (v *Validator) PassesHardConstraints(combo domain.Combination) bool {
	c := v.constraints

	if sum := combo.Sum(); sum < c.SumMin || sum > c.SumMax {
		return false
	}
	if odd := combo.OddCount(); odd < c.OddMin || odd > c.OddMax {
		return false
	}
	if low := combo.LowCount(); low < c.LowMin || low > c.LowMax {
		return false
	}
	if combo.ZoneCoverage() < c.MinZones {
		return false
	}
	if combo.Max() < c.MinHighNumber {
		return false
	}
	if combo.LastDigitCount() < c.MinLastDigits {
		return false
	}
	if combo.IsArithmeticProgression() {
		return false
	}
	if combo.MaxZoneMembers() > c.MaxZoneMembers {
		return false
	}
	if combo.MaxConsecutiveRun() > c.MaxRun {
		return false
	}
	if combo.OverlapWith(v.recentUnion) > c.MaxRecentOverlap {
		return false
	}
	return true
}

// Constraints exposes the active rule set.
func (v *Validator) Constraints() HardConstraints { return v.constraints }
