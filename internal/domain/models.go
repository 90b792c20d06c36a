// Package domain contains the pure domain types for the Daebak strategy
// engine. The domain layer has no infrastructure dependencies: draw records,
// score vectors, combinations and strategy results are plain values that the
// pipeline stages derive from one another without mutation.
package domain

import (
	"fmt"
	"sort"
	"time"
)

// MinNumber and MaxNumber bound the Lotto 6/45 number universe.
const (
	MinNumber = 1
	MaxNumber = 45

	// CombinationSize is the number of picks per ticket.
	CombinationSize = 6

	// ZoneCount is the number of fixed color zones on the play slip
	// (1-10 yellow, 11-20 blue, 21-30 red, 31-40 gray, 41-45 green).
	ZoneCount = 5
)

// DrawRecord is one historical draw. Immutable once loaded; Numbers are kept
// sorted ascending.
type DrawRecord struct {
	DrawNumber int    `json:"draw_number"`
	Date       string `json:"date"`
	Numbers    []int  `json:"numbers"`
	Bonus      int    `json:"bonus"`
}

// Validate checks a draw record against the 6/45 contract. Malformed records
// are rejected at the import boundary, never deep in the pipeline.
func (d DrawRecord) Validate() error {
	if d.DrawNumber <= 0 {
		return fmt.Errorf("draw %d: draw number must be positive", d.DrawNumber)
	}
	if len(d.Numbers) != CombinationSize {
		return fmt.Errorf("draw %d: expected %d numbers, got %d", d.DrawNumber, CombinationSize, len(d.Numbers))
	}
	seen := make(map[int]bool, CombinationSize)
	for _, n := range d.Numbers {
		if n < MinNumber || n > MaxNumber {
			return fmt.Errorf("draw %d: number %d out of range [%d,%d]", d.DrawNumber, n, MinNumber, MaxNumber)
		}
		if seen[n] {
			return fmt.Errorf("draw %d: duplicate number %d", d.DrawNumber, n)
		}
		seen[n] = true
	}
	if d.Bonus < MinNumber || d.Bonus > MaxNumber {
		return fmt.Errorf("draw %d: bonus %d out of range [%d,%d]", d.DrawNumber, d.Bonus, MinNumber, MaxNumber)
	}
	return nil
}

// SortDraws orders draws ascending by draw number. Time-series models require
// this ordering before they run.
func SortDraws(draws []DrawRecord) {
	sort.Slice(draws, func(i, j int) bool {
		return draws[i].DrawNumber < draws[j].DrawNumber
	})
}

// Zone returns the zero-based color zone of a number.
func Zone(n int) int {
	if n > 40 {
		return 4
	}
	return (n - 1) / 10
}

// Recommendation is the discrete buy/skip advice attached to a result.
type Recommendation string

const (
	RecommendationStrongBuy Recommendation = "strong_buy"
	RecommendationBuy       Recommendation = "buy"
	RecommendationNeutral   Recommendation = "neutral"
	RecommendationSkip      Recommendation = "skip"
)

// TierValue is the expected-value contribution of one prize tier.
type TierValue struct {
	Rank          int     `json:"rank"`
	Probability   float64 `json:"probability"`
	Prize         float64 `json:"prize"`
	PrizeAfterTax float64 `json:"prize_after_tax"`
	Expected      float64 `json:"expected"`
}

// ExpectedValueBreakdown bundles the financial metrics for one ticket.
type ExpectedValueBreakdown struct {
	Tiers            []TierValue    `json:"tiers"`
	TotalEV          float64        `json:"total_ev"`
	TicketPrice      float64        `json:"ticket_price"`
	EstimatedJackpot float64        `json:"estimated_jackpot"`
	ExpectedWinners  float64        `json:"expected_winners"`
	CarryoverMisses  int            `json:"carryover_misses"`
	Recommendation   Recommendation `json:"recommendation"`
	Rationale        string         `json:"rationale"`
}

// StrategyResult is the immutable output of one generation request.
type StrategyResult struct {
	ID              string                 `json:"id"`
	Combination     Combination            `json:"combination"`
	AntiPopularity  float64                `json:"anti_popularity"`
	StructuralFit   float64                `json:"structural_fit"`
	ConvergenceRHat float64                `json:"convergence_r_hat"`
	Method          string                 `json:"method"`
	PoolSize        int                    `json:"pool_size"`
	ModelScores     map[string]float64     `json:"model_scores"`
	ExpectedValue   ExpectedValueBreakdown `json:"expected_value"`
	Confidence      float64                `json:"confidence"`
	Rationale       string                 `json:"rationale"`
	GeneratedAt     time.Time              `json:"generated_at"`
}
