// Package payout computes the financial expected value of a combination
// under the fixed 6/45 prize structure, Korean lottery tax rules, and the
// current carryover state.
package payout

import (
	"fmt"
	"sort"

	"github.com/aristath/daebak/internal/combinatorics"
	"github.com/aristath/daebak/internal/domain"
	"github.com/rs/zerolog"
)

const (
	// TicketPrice is the fixed price of one line in KRW.
	TicketPrice = 1000

	// Two-bracket progressive prize tax.
	taxFreeLimit    = 50_000
	upperBracketMin = 300_000_000
	lowerTaxRate    = 0.22
	upperTaxRate    = 0.33

	// baseJackpotPool is the assumed weekly rank-1 pool in KRW before
	// carryover scaling.
	baseJackpotPool = 20_000_000_000

	// baseTicketSales is the assumed weekly line count; sales grow 30% per
	// carryover as jackpots make headlines.
	baseTicketSales       = 30_000_000.0
	salesGrowthPerMiss    = 0.30
	rank2PoolShare        = 0.125
	averageCombinationPop = 0.5

	// Fixed lower-tier prizes in KRW.
	rank3Prize = 1_500_000
	rank4Prize = 50_000
	rank5Prize = 5_000
)

// Config tunes the engine's pool and sales assumptions.
type Config struct {
	BaseJackpotPool float64
	BaseTicketSales float64
	TicketPrice     float64
}

// DefaultConfig returns the production assumptions.
func DefaultConfig() Config {
	return Config{
		BaseJackpotPool: baseJackpotPool,
		BaseTicketSales: baseTicketSales,
		TicketPrice:     TicketPrice,
	}
}

// Engine evaluates expected value for a chosen combination.
type Engine struct {
	cfg  Config
	calc *combinatorics.Calculator
	log  zerolog.Logger
}

// NewEngine creates a payout engine.
func NewEngine(cfg Config, calc *combinatorics.Calculator, log zerolog.Logger) *Engine {
	return &Engine{
		cfg:  cfg,
		calc: calc,
		log:  log.With().Str("component", "payout").Logger(),
	}
}

// Evaluate computes the full expected-value breakdown. combinationPopularity
// in [0,1] scales the expected co-winner count for pool-based tiers: popular
// combinations split the jackpot with more people.
func (e *Engine) Evaluate(carryoverMisses int, combinationPopularity float64, converged bool) domain.ExpectedValueBreakdown {
	probs := e.calc.TierProbabilities()

	jackpot := e.cfg.BaseJackpotPool * float64(1+carryoverMisses)
	sales := e.cfg.BaseTicketSales * salesGrowth(carryoverMisses)

	// Expected co-winners on the jackpot: how many of the other tickets
	// land on the same combination, scaled by how human-typical the chosen
	// combination is relative to the average pick.
	popularityFactor := combinationPopularity / averageCombinationPop
	if popularityFactor <= 0 {
		popularityFactor = scaleFloor
	}
	coWinners := 1 + sales*probs[1]*popularityFactor

	tiers := []domain.TierValue{
		e.tier(1, probs[1], jackpot/coWinners),
		e.tier(2, probs[2], jackpot*rank2PoolShare/coWinners),
		e.tier(3, probs[3], rank3Prize),
		e.tier(4, probs[4], rank4Prize),
		e.tier(5, probs[5], rank5Prize),
	}
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].Rank < tiers[j].Rank })

	totalEV := -e.cfg.TicketPrice
	for _, tier := range tiers {
		totalEV += tier.Expected
	}

	recommendation := e.recommend(totalEV, carryoverMisses)
	breakdown := domain.ExpectedValueBreakdown{
		Tiers:            tiers,
		TotalEV:          totalEV,
		TicketPrice:      e.cfg.TicketPrice,
		EstimatedJackpot: jackpot,
		ExpectedWinners:  coWinners,
		CarryoverMisses:  carryoverMisses,
		Recommendation:   recommendation,
		Rationale:        e.rationale(totalEV, carryoverMisses, coWinners, converged),
	}

	e.log.Debug().
		Float64("total_ev", totalEV).
		Int("carryover_misses", carryoverMisses).
		Str("recommendation", string(recommendation)).
		Msg("Evaluated expected value")
	return breakdown
}

const scaleFloor = 0.001

// ApplyTax applies the progressive prize tax: tax-free up to 50,000 KRW,
// 22% up to 300M, then 22% on the first 300M plus 33% on the excess.
func ApplyTax(prize float64) float64 {
	switch {
	case prize <= taxFreeLimit:
		return prize
	case prize <= upperBracketMin:
		return prize * (1 - lowerTaxRate)
	default:
		taxed := upperBracketMin * (1 - lowerTaxRate)
		return taxed + (prize-upperBracketMin)*(1-upperTaxRate)
	}
}

// Confidence maps selection convergence and EV sign into [0,1].
func Confidence(compositeScore float64, converged bool) float64 {
	confidence := 0.5 + 0.4*clamp01(compositeScore)
	if !converged {
		confidence *= 0.7
	}
	return clamp01(confidence)
}

func (e *Engine) tier(rank int, probability, prize float64) domain.TierValue {
	afterTax := ApplyTax(prize)
	return domain.TierValue{
		Rank:          rank,
		Probability:   probability,
		Prize:         prize,
		PrizeAfterTax: afterTax,
		Expected:      probability * afterTax,
	}
}

// recommend maps total EV and carryover pressure to the discrete tier.
// Break-even EV alone never yields strong_buy; it takes a real carryover.
func (e *Engine) recommend(totalEV float64, carryoverMisses int) domain.Recommendation {
	switch {
	case totalEV > 0 && carryoverMisses >= 2:
		return domain.RecommendationStrongBuy
	case totalEV > 0:
		return domain.RecommendationBuy
	case totalEV > -e.cfg.TicketPrice*0.25:
		return domain.RecommendationNeutral
	default:
		return domain.RecommendationSkip
	}
}

func (e *Engine) rationale(totalEV float64, carryoverMisses int, coWinners float64, converged bool) string {
	convergence := "converged"
	if !converged {
		convergence = "fell back to a simpler sampler"
	}
	return fmt.Sprintf(
		"total EV %.0f KRW per %.0f KRW ticket with %d carryover(s), expected jackpot co-winners %.2f; selection %s",
		totalEV, e.cfg.TicketPrice, carryoverMisses, coWinners, convergence,
	)
}

func salesGrowth(carryoverMisses int) float64 {
	growth := 1.0
	for i := 0; i < carryoverMisses; i++ {
		growth *= 1 + salesGrowthPerMiss
	}
	return growth
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
