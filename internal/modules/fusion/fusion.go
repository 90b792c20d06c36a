// Package fusion combines the independent model score vectors into a single
// candidate pool of numbers for the selectors.
package fusion

import (
	"math"
	"math/cmplx"
	"sort"

	"github.com/aristath/daebak/internal/domain"
	"github.com/rs/zerolog"
)

const (
	// rrfK is the standard reciprocal-rank-fusion constant from the IR
	// literature; it damps the gap between top ranks.
	rrfK = 60

	rrfBlendWeight          = 0.6
	interferenceBlendWeight = 0.4
)

// Fuser blends model rankings into one fused score vector.
type Fuser struct {
	log zerolog.Logger
}

// NewFuser creates a fuser.
func NewFuser(log zerolog.Logger) *Fuser {
	return &Fuser{log: log.With().Str("component", "fusion").Logger()}
}

// Fuse combines the model vectors: 0.6 x normalized reciprocal-rank fusion
// plus 0.4 x normalized amplitude interference.
func (f *Fuser) Fuse(modelScores map[string]domain.ScoreVector) domain.ScoreVector {
	rrf := reciprocalRankFusion(modelScores)
	interference := amplitudeInterference(modelScores)

	rrfNorm := rrf.Normalized()
	intNorm := interference.Normalized()

	var fused domain.ScoreVector
	for n := domain.MinNumber; n <= domain.MaxNumber; n++ {
		fused[n] = rrfBlendWeight*rrfNorm[n] + interferenceBlendWeight*intNorm[n]
	}
	f.log.Debug().Int("models", len(modelScores)).Msg("Fused model scores")
	return fused
}

// reciprocalRankFusion scores each number by the sum of 1/(k+rank) over all
// models. Ranks are scale-invariant, so models with wildly different score
// ranges contribute equally.
func reciprocalRankFusion(modelScores map[string]domain.ScoreVector) domain.ScoreVector {
	var fused domain.ScoreVector
	for _, name := range sortedModelNames(modelScores) {
		ranks := modelScores[name].Ranks()
		for n := domain.MinNumber; n <= domain.MaxNumber; n++ {
			fused[n] += 1.0 / float64(rrfK+ranks[n])
		}
	}
	return fused
}

// amplitudeInterference treats each model's normalized score as a complex
// amplitude with a model-specific phase (evenly spaced around the circle)
// and scores each number by the squared magnitude of the summed amplitudes.
// Numbers every model favors interfere constructively and get boosted
// superlinearly; numbers the models disagree on cancel out. Deliberately
// more aggressive at surfacing consensus than a linear average.
func amplitudeInterference(modelScores map[string]domain.ScoreVector) domain.ScoreVector {
	names := sortedModelNames(modelScores)
	modelCount := len(names)
	if modelCount == 0 {
		return domain.ScoreVector{}
	}

	normalized := make([]domain.ScoreVector, modelCount)
	for m, name := range names {
		normalized[m] = modelScores[name].Normalized()
	}

	// Phases span half the circle so that full agreement still sums
	// constructively instead of cancelling pairwise.
	var fused domain.ScoreVector
	for n := domain.MinNumber; n <= domain.MaxNumber; n++ {
		sum := complex(0, 0)
		for m := range normalized {
			phase := math.Pi * float64(m) / float64(modelCount)
			sum += cmplx.Rect(normalized[m][n], phase)
		}
		fused[n] = real(sum)*real(sum) + imag(sum)*imag(sum)
	}
	return fused
}

// sortedModelNames gives a deterministic iteration order over the map.
func sortedModelNames(modelScores map[string]domain.ScoreVector) []string {
	names := make([]string, 0, len(modelScores))
	for name := range modelScores {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
