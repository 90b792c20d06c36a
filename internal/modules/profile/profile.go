package profile

import (
	"math"

	"github.com/aristath/daebak/internal/domain"
	"github.com/montanaflynn/stats"
	"github.com/rs/zerolog"
)

// posterior holds the Normal-Inverse-Gamma posterior parameters for one
// dimension: a Student-t predictive with the given location, scale and
// degrees of freedom.
type posterior struct {
	mean    float64
	scale   float64
	degrees float64
}

// StructuralProfile carries the per-dimension posteriors plus the hard
// bounds. More history narrows the posteriors and sharpens filtering
// automatically; nothing needs manual recalibration as data grows.
type StructuralProfile struct {
	posteriors map[Dimension]posterior
	bounds     map[Dimension]Bound
	weights    map[Dimension]float64
}

// Builder derives structural profiles from draw history.
type Builder struct {
	bounds  map[Dimension]Bound
	weights map[Dimension]float64
	log     zerolog.Logger
}

// NewBuilder creates a profile builder with the given configuration.
func NewBuilder(bounds map[Dimension]Bound, weights map[Dimension]float64, log zerolog.Logger) *Builder {
	return &Builder{
		bounds:  bounds,
		weights: weights,
		log:     log.With().Str("component", "structural_profile").Logger(),
	}
}

// Build fits the Normal-Inverse-Gamma posterior for each dimension from the
// full draw history (weakly informative prior: prior mean = sample mean,
// kappa0 = 1, alpha0 = 1, beta0 = sample variance).
func (b *Builder) Build(draws []domain.DrawRecord) *StructuralProfile {
	posteriors := make(map[Dimension]posterior, len(dimensions))

	for _, dim := range dimensions {
		values := make([]float64, 0, len(draws))
		for _, draw := range draws {
			combo := domain.Combination(draw.Numbers)
			values = append(values, featureValue(dim, combo))
		}
		posteriors[dim] = fitPosterior(values)
	}

	b.log.Debug().Int("draws", len(draws)).Msg("Built structural profile")
	return &StructuralProfile{
		posteriors: posteriors,
		bounds:     b.bounds,
		weights:    b.weights,
	}
}

// fitPosterior updates the weakly informative prior with the sample.
func fitPosterior(values []float64) posterior {
	n := float64(len(values))
	if n == 0 {
		return posterior{mean: 0, scale: 1, degrees: 2}
	}

	sampleMean, err := stats.Mean(values)
	if err != nil {
		return posterior{mean: 0, scale: 1, degrees: 2}
	}
	sampleVar, err := stats.Variance(values)
	if err != nil || sampleVar <= 0 {
		sampleVar = 1
	}

	// Prior: mu0 = sample mean, kappa0 = 1, alpha0 = 1, beta0 = sample
	// variance. With mu0 equal to the sample mean the posterior mean stays
	// at the sample mean and the (mu0 - mean)^2 correction vanishes.
	const kappa0, alpha0 = 1.0, 1.0
	beta0 := sampleVar

	kappaN := kappa0 + n
	alphaN := alpha0 + n/2
	betaN := beta0 + 0.5*sampleVar*n

	// Student-t predictive scale for a single future observation.
	scale := math.Sqrt(betaN * (kappaN + 1) / (alphaN * kappaN))
	if scale <= 0 {
		scale = 1
	}

	return posterior{
		mean:    sampleMean,
		scale:   scale,
		degrees: 2 * alphaN,
	}
}

// Score returns the structural fit of a candidate in [0,1] along with a
// hard-reject flag. Rejected candidates always score 0.
func (p *StructuralProfile) Score(combo domain.Combination) (float64, bool) {
	total := 0.0
	weightSum := 0.0

	for _, dim := range dimensions {
		value := featureValue(dim, combo)
		if bound, ok := p.bounds[dim]; ok && !bound.contains(value) {
			return 0, false
		}

		post := p.posteriors[dim]
		standardized := (value - post.mean) / post.scale
		// Gaussian-shaped plausibility of the standardized deviation.
		plausibility := math.Exp(-0.5 * standardized * standardized)

		w := p.weights[dim]
		total += w * plausibility
		weightSum += w
	}

	if weightSum == 0 {
		return 0, true
	}
	return total / weightSum, true
}

// Mean exposes a dimension's posterior mean for diagnostics.
func (p *StructuralProfile) Mean(dim Dimension) float64 {
	return p.posteriors[dim].mean
}
