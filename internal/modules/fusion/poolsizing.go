package fusion

import (
	"sort"

	"github.com/aristath/daebak/internal/combinatorics"
	"github.com/aristath/daebak/internal/domain"
	"github.com/rs/zerolog"
)

const (
	// MinPoolSize and MaxPoolSize bound the candidate pool the sizer may
	// choose. The selector needs headroom above 6 picks but loses its edge
	// as the pool approaches the full universe.
	MinPoolSize = 14
	MaxPoolSize = 24

	// minZonesInPool is the diversity floor the pool must span.
	minZonesInPool = 3
)

// matchPayouts approximates the fixed payouts for m in-pool matches used by
// the marginal expected-value analysis (rank 5..jackpot order: 3,4,5,6
// matches). Configuration, not derived truth.
var matchPayouts = map[int]float64{
	3: 5000,
	4: 50000,
	5: 1500000,
	6: 2000000000,
}

// PoolBuilder picks the candidate pool from the fused score vector.
type PoolBuilder struct {
	log zerolog.Logger
}

// NewPoolBuilder creates a pool builder.
func NewPoolBuilder(log zerolog.Logger) *PoolBuilder {
	return &PoolBuilder{log: log.With().Str("component", "pool_builder").Logger()}
}

// Build selects the pool size with the best marginal composite value and
// returns the top-scored numbers at that size, repaired for zone diversity.
func (b *PoolBuilder) Build(fused domain.ScoreVector, calc *combinatorics.Calculator) []int {
	size := b.bestPoolSize(fused, calc)
	pool := fused.TopN(size)
	pool = b.ensureZoneDiversity(pool, fused)
	sort.Ints(pool)

	b.log.Debug().Int("pool_size", len(pool)).Msg("Built candidate pool")
	return pool
}

// bestPoolSize evaluates the composite expected value for every size in
// [MinPoolSize, MaxPoolSize] and stops at the point of diminishing returns:
// the last size before the marginal composite gain turns negative.
func (b *PoolBuilder) bestPoolSize(fused domain.ScoreVector, calc *combinatorics.Calculator) int {
	norm := fused.Normalized()

	prevComposite := 0.0
	bestSize := MinPoolSize
	bestComposite := -1.0

	for size := MinPoolSize; size <= MaxPoolSize; size++ {
		composite := b.compositeValue(norm, calc, size)
		if composite > bestComposite {
			bestComposite = composite
			bestSize = size
		}
		if size > MinPoolSize && composite < prevComposite {
			// Marginal gain turned negative: diminishing returns.
			break
		}
		prevComposite = composite
	}
	return bestSize
}

// compositeValue is the expected payout of a pool of the given size times
// the pool's mean score quality, corrected for selection accuracy within
// the pool.
func (b *PoolBuilder) compositeValue(norm domain.ScoreVector, calc *combinatorics.Calculator, size int) float64 {
	// Expected value over partial-match tiers m=3..6: probability that the
	// pool captures exactly m winning numbers, times the probability a
	// 6-pick from the pool recovers all m, times the tier payout.
	ev := 0.0
	for m := 3; m <= 6; m++ {
		captureProb := calc.MatchProbability(size, m)
		recoverProb := calc.PickRecoveryProbability(size, m, m)
		ev += captureProb * recoverProb * matchPayouts[m]
	}

	top := norm.TopN(size)
	quality := 0.0
	for _, n := range top {
		quality += norm[n]
	}
	quality /= float64(size)

	accuracy := 1.0 / calc.Binomial(size, 6)

	return ev * quality * (1 + accuracy)
}

// ensureZoneDiversity swaps the weakest pool member for the best-scored
// representative of a missing zone until the pool spans at least
// minZonesInPool zones.
func (b *PoolBuilder) ensureZoneDiversity(pool []int, fused domain.ScoreVector) []int {
	for coveredZones(pool) < minZonesInPool {
		missing := -1
		for z := 0; z < domain.ZoneCount; z++ {
			if !zoneCovered(pool, z) {
				missing = z
				break
			}
		}
		if missing < 0 {
			break
		}

		// Best-scored number of the missing zone not already in the pool.
		candidate := -1
		for n := domain.MinNumber; n <= domain.MaxNumber; n++ {
			if domain.Zone(n) != missing || contains(pool, n) {
				continue
			}
			if candidate < 0 || fused[n] > fused[candidate] {
				candidate = n
			}
		}
		if candidate < 0 {
			break
		}

		// Replace the weakest member of the most crowded zone.
		weakest := -1
		for i, n := range pool {
			if zoneMemberCount(pool, domain.Zone(n)) <= 1 {
				continue
			}
			if weakest < 0 || fused[n] < fused[pool[weakest]] {
				weakest = i
			}
		}
		if weakest < 0 {
			weakest = len(pool) - 1
		}
		b.log.Debug().Int("out", pool[weakest]).Int("in", candidate).Msg("Zone diversity swap")
		pool[weakest] = candidate
	}
	return pool
}

func coveredZones(pool []int) int {
	var zones [domain.ZoneCount]bool
	for _, n := range pool {
		zones[domain.Zone(n)] = true
	}
	count := 0
	for _, hit := range zones {
		if hit {
			count++
		}
	}
	return count
}

func zoneCovered(pool []int, zone int) bool {
	for _, n := range pool {
		if domain.Zone(n) == zone {
			return true
		}
	}
	return false
}

func zoneMemberCount(pool []int, zone int) int {
	count := 0
	for _, n := range pool {
		if domain.Zone(n) == zone {
			count++
		}
	}
	return count
}

func contains(pool []int, n int) bool {
	for _, v := range pool {
		if v == n {
			return true
		}
	}
	return false
}
