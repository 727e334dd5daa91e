package spectral

import (
	"math"

	"github.com/cwbudde/algo-biosignal/stats"
)

// peakEstimator locates the strongest spectral peak of a residual and
// returns its refined frequency and power. The uniform and Lomb-Scargle
// paths plug in their own periodogram here.
type peakEstimator func(residual []float64) (freq, peak float64, ok bool)

// extractHarmonics runs the iterative decomposition: locate the strongest
// residual peak, least-squares fit a sinusoid at that frequency, record it,
// subtract it, repeat. Extraction stops at maxHarmonics, when the residual
// peak falls below a fixed fraction of the first component's power, or when
// the peak is no longer significant against the residual noise.
//
// The returned total is accumulated in recording order, so it equals the sum
// of the individual component powers exactly.
func extractHarmonics(detrended, times []float64, independentFreqs, maxHarmonics int, estimate peakEstimator) ([]Harmonic, float64) {
	residual := append([]float64(nil), detrended...)

	var (
		harmonics []Harmonic
		total     float64
		firstPeak float64
	)

	for len(harmonics) < maxHarmonics {
		freq, peak, ok := estimate(residual)
		if !ok {
			break
		}

		if firstPeak == 0 {
			firstPeak = peak
		}

		if peak < negligiblePeakFraction*firstPeak {
			break
		}

		_, residualVar, _, _ := stats.Moments(residual)
		if residualVar <= 0 {
			break
		}

		z := scarglePower(residual, times, freq) / residualVar
		if falseAlarmComplement(z, independentFreqs) < minHarmonicSignificance {
			break
		}

		a, b, solvable := fitSinusoid(residual, times, freq)
		if !solvable {
			break
		}

		amplitude := math.Hypot(a, b)
		if amplitude == 0 {
			break
		}

		phase := math.Atan2(b, a)
		if phase < 0 {
			phase += 2 * math.Pi
		}

		h := Harmonic{
			Period:    1 / freq,
			Amplitude: amplitude,
			Phase:     phase,
			Power:     amplitude * amplitude / 2,
		}

		harmonics = append(harmonics, h)
		total += h.Power

		omega := 2 * math.Pi * freq
		for i, t := range times {
			residual[i] -= a*math.Cos(omega*t) + b*math.Sin(omega*t)
		}
	}

	return harmonics, total
}

// fitSinusoid solves min ||y - a*cos(2*pi*f*t) - b*sin(2*pi*f*t)||^2 via the
// 2x2 normal equations. The cross term is kept, so the fit stays exact for
// irregular sampling where cosine and sine are not orthogonal.
func fitSinusoid(y, times []float64, freq float64) (a, b float64, ok bool) {
	omega := 2 * math.Pi * freq

	var scc, sss, scs, syc, sys float64

	for i, t := range times {
		c := math.Cos(omega * t)
		s := math.Sin(omega * t)

		scc += c * c
		sss += s * s
		scs += c * s
		syc += y[i] * c
		sys += y[i] * s
	}

	det := scc*sss - scs*scs
	if math.Abs(det) <= 1e-12*scc*sss {
		return 0, 0, false
	}

	a = (syc*sss - sys*scs) / det
	b = (sys*scc - syc*scs) / det

	return a, b, true
}
