package selection

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/aristath/daebak/internal/domain"
	"github.com/aristath/daebak/internal/rng"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"
)

const (
	mcmcChains       = 4
	mcmcBurnIn       = 5000
	mcmcSamples      = 500
	rHatThreshold    = 1.1
	rejectionTrials  = 1000
	invalidLogWeight = -1e9
)

// MCMCSelector samples combinations with a Metropolis-Hastings walk over
// the candidate pool. Four independent chains run concurrently; the
// Gelman-Rubin R-hat over their post-burn-in score series decides whether
// the walk converged.
type MCMCSelector struct {
	log zerolog.Logger
}

// NewMCMCSelector creates an MCMC selector.
func NewMCMCSelector(log zerolog.Logger) *MCMCSelector {
	return &MCMCSelector{log: log.With().Str("component", "mcmc_selector").Logger()}
}

// Name implements Selector.
func (s *MCMCSelector) Name() string { return "mcmc" }

type chainResult struct {
	best      domain.Combination
	bestScore float64
	series    []float64
}

// Select runs the chains, checks convergence, and falls back to rejection
// sampling when the chains disagree.
func (s *MCMCSelector) Select(sc *SelectionContext) (Outcome, error) {
	if len(sc.Pool) < domain.CombinationSize {
		return Outcome{}, fmt.Errorf("pool too small for selection: %d numbers", len(sc.Pool))
	}

	results := make([]chainResult, mcmcChains)
	var wg sync.WaitGroup
	for i := 0; i < mcmcChains; i++ {
		wg.Add(1)
		go func(chain int) {
			defer wg.Done()
			r := sc.Rand.Fork(fmt.Sprintf("mcmc_chain_%d", chain))
			results[chain] = s.runChain(sc, r)
		}(i)
	}
	wg.Wait()

	series := make([][]float64, mcmcChains)
	best := results[0].best
	bestScore := results[0].bestScore
	for i, res := range results {
		series[i] = res.series
		if res.bestScore > bestScore {
			best = res.best
			bestScore = res.bestScore
		}
	}

	rHat := gelmanRubin(series)
	if rHat < rHatThreshold {
		s.log.Debug().Float64("r_hat", rHat).Msg("Chains converged")
		return Outcome{
			Combination: best,
			Score:       bestScore,
			Method:      "mcmc",
			RHat:        rHat,
			Converged:   true,
		}, nil
	}

	s.log.Warn().Float64("r_hat", rHat).Msg("Chains did not converge, falling back to rejection sampling")
	combo, score := rejectionSample(sc, sc.Rand.Fork("mcmc_rejection"), rejectionTrials)
	return Outcome{
		Combination: combo,
		Score:       score,
		Method:      "mcmc_fallback",
		RHat:        rHat,
		Converged:   false,
	}, nil
}

// runChain walks one chain: burn-in first, then the sampled stretch whose
// per-iteration scores feed the convergence diagnostic.
func (s *MCMCSelector) runChain(sc *SelectionContext, r *rng.Source) chainResult {
	current := randomValidCombination(sc, r)
	currentLog := s.logDensity(sc, current)

	res := chainResult{
		best:      current,
		bestScore: sc.compositeScore(current),
		series:    make([]float64, 0, mcmcSamples),
	}

	for iter := 0; iter < mcmcBurnIn+mcmcSamples; iter++ {
		proposal := s.proposeSwap(sc, current, r)
		proposalLog := s.logDensity(sc, proposal)

		// Symmetric proposal, so plain Metropolis acceptance.
		if proposalLog >= currentLog || r.Float64() < math.Exp(proposalLog-currentLog) {
			current = proposal
			currentLog = proposalLog
		}

		if iter < mcmcBurnIn {
			continue
		}
		score := sc.compositeScore(current)
		res.series = append(res.series, score)
		if score > res.bestScore {
			res.best = current
			res.bestScore = score
		}
	}
	return res
}

// proposeSwap replaces one member with a pool number not already present.
func (s *MCMCSelector) proposeSwap(sc *SelectionContext, current domain.Combination, r *rng.Source) domain.Combination {
	proposal := current.Clone()
	slot := r.Intn(len(proposal))
	for attempt := 0; attempt < len(sc.Pool); attempt++ {
		candidate := sc.Pool[r.Intn(len(sc.Pool))]
		if !proposal.Contains(candidate) {
			proposal[slot] = candidate
			break
		}
	}
	sort.Ints(proposal)
	return proposal
}

// logDensity is the target the walk samples from. Constraint violations get
// a large negative weight instead of -Inf so acceptance math stays finite.
func (s *MCMCSelector) logDensity(sc *SelectionContext, combo domain.Combination) float64 {
	if !sc.Validator.PassesHardConstraints(combo) {
		return invalidLogWeight
	}
	anti := floorAt(sc.antiPopularity(combo), scoreFloor)
	fit := floorAt(sc.structuralFit(combo), scoreFloor)
	return antiPopularityWeight*math.Log(anti) + structuralFitWeight*math.Log(fit)
}

// gelmanRubin computes the R-hat diagnostic over the per-chain score
// series: sqrt of pooled variance over mean within-chain variance. Constant
// chains with identical means yield exactly 1.0.
func gelmanRubin(series [][]float64) float64 {
	chains := len(series)
	if chains < 2 || len(series[0]) < 2 {
		return 1.0
	}
	n := float64(len(series[0]))

	means := make([]float64, chains)
	withinSum := 0.0
	for i, chain := range series {
		means[i] = stat.Mean(chain, nil)
		withinSum += stat.Variance(chain, nil)
	}
	within := withinSum / float64(chains)
	between := n * stat.Variance(means, nil)

	if within == 0 {
		if between == 0 {
			return 1.0
		}
		return math.Inf(1)
	}

	pooled := (n-1)/n*within + between/n
	return math.Sqrt(pooled / within)
}
