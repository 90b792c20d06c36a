// Package combinatorics provides binomial and hypergeometric helpers for the
// 6-from-45 lottery. The memoization table is scoped to a Calculator instance
// rather than a process-wide cache, so concurrent pipeline runs stay
// independent.
package combinatorics

// TotalCombinations is C(45,6), the size of the 6/45 outcome space.
const TotalCombinations = 8145060

// Calculator computes binomial coefficients with an instance-scoped memo.
// Not safe for concurrent use; each pipeline run owns its own Calculator.
type Calculator struct {
	memo map[[2]int]float64
}

// NewCalculator creates an empty calculator.
func NewCalculator() *Calculator {
	return &Calculator{memo: make(map[[2]int]float64)}
}

// Binomial returns C(n,k) as a float64. Values outside the valid range are 0.
func (c *Calculator) Binomial(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	if k == 0 || k == n {
		return 1
	}
	if k > n-k {
		k = n - k
	}
	key := [2]int{n, k}
	if v, ok := c.memo[key]; ok {
		return v
	}
	result := 1.0
	for i := 0; i < k; i++ {
		result = result * float64(n-i) / float64(i+1)
	}
	c.memo[key] = result
	return result
}

// Hypergeometric returns P(X = k) where X counts successes when drawing
// sampleSize items without replacement from a population with
// populationSuccesses successes.
func (c *Calculator) Hypergeometric(populationSize, populationSuccesses, sampleSize, k int) float64 {
	denom := c.Binomial(populationSize, sampleSize)
	if denom == 0 {
		return 0
	}
	return c.Binomial(populationSuccesses, k) *
		c.Binomial(populationSize-populationSuccesses, sampleSize-k) / denom
}

// MatchProbability returns the probability that the 6 drawn winning numbers
// intersect a pool of the given size in exactly m numbers.
func (c *Calculator) MatchProbability(poolSize, m int) float64 {
	return c.Hypergeometric(45, poolSize, 6, m)
}

// PickRecoveryProbability returns the probability that a random 6-pick from
// the pool recovers exactly want of the m winning numbers inside the pool.
func (c *Calculator) PickRecoveryProbability(poolSize, inPool, want int) float64 {
	denom := c.Binomial(poolSize, 6)
	if denom == 0 {
		return 0
	}
	return c.Binomial(inPool, want) * c.Binomial(poolSize-inPool, 6-want) / denom
}

// TierProbabilities returns the exact 6/45 prize-tier probabilities keyed by
// rank: rank 1 = match 6, rank 2 = match 5 + bonus, rank 3 = match 5,
// rank 4 = match 4, rank 5 = match 3.
func (c *Calculator) TierProbabilities() map[int]float64 {
	total := c.Binomial(45, 6)
	match5 := c.Binomial(6, 5) * c.Binomial(39, 1) / total
	// Of the 39 non-winning numbers, exactly one is the bonus.
	rank2 := match5 / 39.0
	return map[int]float64{
		1: 1.0 / total,
		2: rank2,
		3: match5 - rank2,
		4: c.Binomial(6, 4) * c.Binomial(39, 2) / total,
		5: c.Binomial(6, 3) * c.Binomial(39, 3) / total,
	}
}
