package selection

import (
	"math"
	"sort"

	"github.com/aristath/daebak/internal/domain"
	"github.com/aristath/daebak/internal/rng"
)

const (
	randomDrawAttempts = 500
	expandedAttempts   = 1000

	temperature = 0.5
)

// guaranteedTemplates are pairwise-disjoint combinations that each satisfy
// every static hard constraint. Any two-draw union holds at most 12 numbers,
// so at most three templates can share four or more numbers with it; at
// least one template always passes the recent-overlap rule too.
var guaranteedTemplates = []domain.Combination{
	{3, 11, 24, 27, 35, 42},
	{5, 14, 22, 30, 38, 45},
	{2, 9, 21, 28, 36, 44},
	{7, 16, 25, 32, 39, 43},
}

// randomCombination draws 6 distinct numbers uniformly from the pool.
func randomCombination(pool []int, r *rng.Source) domain.Combination {
	perm := r.Perm(len(pool))
	combo := make(domain.Combination, 0, domain.CombinationSize)
	for _, idx := range perm[:domain.CombinationSize] {
		combo = append(combo, pool[idx])
	}
	sort.Ints(combo)
	return combo
}

// randomValidCombination draws uniformly from the pool until the validator
// accepts, expanding to the full number range after the first attempt budget
// runs out. Falls through to the zone-guaranteed construction, so it never
// fails.
func randomValidCombination(sc *SelectionContext, r *rng.Source) domain.Combination {
	for attempt := 0; attempt < randomDrawAttempts; attempt++ {
		combo := randomCombination(sc.Pool, r)
		if sc.Validator.PassesHardConstraints(combo) {
			return combo
		}
	}

	expanded := fullRangePool()
	for attempt := randomDrawAttempts; attempt < expandedAttempts; attempt++ {
		combo := randomCombination(expanded, r)
		if sc.Validator.PassesHardConstraints(combo) {
			return combo
		}
	}

	return zoneGuaranteedCombination(sc, r)
}

// rejectionSample draws the given number of valid combinations and keeps the
// best-scoring one.
func rejectionSample(sc *SelectionContext, r *rng.Source, validDraws int) (domain.Combination, float64) {
	var best domain.Combination
	bestScore := math.Inf(-1)
	for i := 0; i < validDraws; i++ {
		combo := randomValidCombination(sc, r)
		if score := sc.compositeScore(combo); score > bestScore {
			bestScore = score
			best = combo
		}
	}
	return best, bestScore
}

// temperatureSample draws combinations with per-number weights
// exp(unpopularity/T), so cold temperatures concentrate on the least
// popular numbers while staying stochastic.
func temperatureSample(sc *SelectionContext, r *rng.Source) (domain.Combination, float64) {
	weights := make([]float64, len(sc.Pool))
	for i, n := range sc.Pool {
		weights[i] = math.Exp(sc.Unpopularity[n] / temperature)
	}

	for attempt := 0; attempt < expandedAttempts; attempt++ {
		trial := make([]float64, len(weights))
		copy(trial, weights)

		combo := make(domain.Combination, 0, domain.CombinationSize)
		for len(combo) < domain.CombinationSize {
			idx := r.WeightedIndex(trial)
			combo = append(combo, sc.Pool[idx])
			trial[idx] = 0
		}
		sort.Ints(combo)
		if sc.Validator.PassesHardConstraints(combo) {
			return combo, sc.compositeScore(combo)
		}
	}

	combo := zoneGuaranteedCombination(sc, r)
	return combo, sc.compositeScore(combo)
}

// zoneGuaranteedCombination returns the first guaranteed template the
// validator accepts, starting from a random rotation. By construction at
// least one template always passes.
func zoneGuaranteedCombination(sc *SelectionContext, r *rng.Source) domain.Combination {
	offset := r.Intn(len(guaranteedTemplates))
	for i := 0; i < len(guaranteedTemplates); i++ {
		template := guaranteedTemplates[(offset+i)%len(guaranteedTemplates)]
		if sc.Validator.PassesHardConstraints(template) {
			return template.Clone()
		}
	}
	return guaranteedTemplates[offset].Clone()
}

func fullRangePool() []int {
	pool := make([]int, 0, domain.MaxNumber)
	for n := domain.MinNumber; n <= domain.MaxNumber; n++ {
		pool = append(pool, n)
	}
	return pool
}
