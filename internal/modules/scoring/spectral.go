package scoring

import (
	"math"
	"math/cmplx"

	"github.com/aristath/daebak/internal/domain"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Spectral looks for periodicity in each number's appearance record. It
// transforms the mean-subtracted binary occurrence series, finds the
// dominant frequency among periods of 3 to N/3 draws, and scores the number
// by how close the next draw index sits to that frequency's phase peak,
// weighted by the frequency's amplitude, plus the base occurrence rate.
type Spectral struct{}

// NewSpectral creates the model.
func NewSpectral() *Spectral { return &Spectral{} }

// Name implements Model.
func (m *Spectral) Name() string { return "spectral" }

// Score implements Model.
func (m *Spectral) Score(draws []domain.DrawRecord) domain.ScoreVector {
	if len(draws) < minDrawsForModel {
		return domain.UniformScoreVector()
	}

	n := len(draws)
	fft := fourier.NewFFT(n)
	baseRates := occurrenceRates(draws)

	// Periods from 3 up to n/3 draws map to bins 3..n/3.
	binMin := 3
	binMax := n / 3
	if binMax < binMin {
		return baseRates
	}

	var scores domain.ScoreVector
	series := make([]float64, n)
	for num := domain.MinNumber; num <= domain.MaxNumber; num++ {
		for i, draw := range draws {
			series[i] = 0
			for _, d := range draw.Numbers {
				if d == num {
					series[i] = 1
					break
				}
			}
		}
		mean := baseRates[num]
		for i := range series {
			series[i] -= mean
		}

		coeffs := fft.Coefficients(nil, series)

		bestBin := 0
		bestAmp := 0.0
		for k := binMin; k <= binMax && k < len(coeffs); k++ {
			amp := cmplx.Abs(coeffs[k])
			if amp > bestAmp {
				bestAmp = amp
				bestBin = k
			}
		}
		if bestBin == 0 {
			scores[num] = mean
			continue
		}

		// The next draw sits at index n, where the component's value is
		// amplitude*cos(phase) since 2*pi*k*n/n wraps to zero.
		phase := cmplx.Phase(coeffs[bestBin])
		alignment := (math.Cos(phase) + 1) / 2

		// Amplitude normalized by the maximum a +/-0.5 series can carry.
		ampWeight := bestAmp / (float64(n) / 2)
		if ampWeight > 1 {
			ampWeight = 1
		}

		scores[num] = mean + ampWeight*alignment
	}
	return scores
}
