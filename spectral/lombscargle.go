package spectral

import (
	"math"

	"github.com/cwbudde/algo-biosignal/stats"
)

// AnalyzeTimestamps computes the Lomb-Scargle periodogram of an irregularly
// sampled signal and identifies its dominant rhythm. Timestamps must be
// strictly increasing and parallel to the values; they carry the time unit,
// so the sample rate in cfg is ignored.
//
// The frequency grid runs from one cycle per record span up to the average
// Nyquist frequency n/(2*span), oversampled by cfg.Oversample.
func AnalyzeTimestamps(signal, timestamps []float64, cfg Config) (Result, error) {
	if len(signal) == 0 {
		return Result{}, ErrEmptyInput
	}

	if len(signal) != len(timestamps) {
		return Result{}, ErrLengthMismatch
	}

	for i := 1; i < len(timestamps); i++ {
		if timestamps[i] <= timestamps[i-1] {
			return Result{}, ErrTimestampsNotIncreasing
		}
	}

	cfg = normalizeConfig(cfg)
	n := len(signal)

	mean, variance, _, _ := stats.Moments(signal)

	detrended := make([]float64, n)
	for i, x := range signal {
		detrended[i] = x - mean
	}

	if n < 2 {
		return Result{}, nil
	}

	span := timestamps[n-1] - timestamps[0]
	if span <= 0 {
		return Result{}, nil
	}

	freqs := lombFrequencyGrid(n, span, cfg.Oversample)
	if len(freqs) == 0 {
		return Result{}, nil
	}

	power := make([]float64, len(freqs))
	for i, f := range freqs {
		power[i] = displayScale(n) * scarglePower(detrended, timestamps, f)
	}

	res := Result{
		Frequencies: freqs,
		Power:       power,
		NoiseFloor:  medianPower(power),
	}

	if variance <= 0 {
		return res, nil
	}

	bin, ok := peakIndex(power, 0)
	if !ok || len(freqs) < 2 {
		return res, nil
	}

	df := freqs[1] - freqs[0]

	peakFreq := freqs[bin] + parabolicDelta(power, bin)*df
	if peakFreq <= 0 {
		return res, nil
	}

	res.DominantFrequency = peakFreq
	res.DominantPeriod = 1 / peakFreq

	independentFreqs := max(1, len(freqs)/cfg.Oversample)

	z := scarglePower(detrended, timestamps, peakFreq) / variance
	res.Significance = falseAlarmComplement(z, independentFreqs)

	if cfg.DetectHarmonics {
		res.Harmonics, res.HarmonicPower = extractHarmonics(
			detrended, timestamps, independentFreqs, cfg.MaxHarmonics,
			lombEstimator(timestamps, freqs))
	}

	return res, nil
}

// lombEstimator returns a peak estimator backed by the Lomb-Scargle
// periodogram over a fixed frequency grid.
func lombEstimator(timestamps, freqs []float64) peakEstimator {
	return func(residual []float64) (freq, peak float64, ok bool) {
		if len(freqs) < 2 {
			return 0, 0, false
		}

		power := make([]float64, len(freqs))
		for i, f := range freqs {
			power[i] = displayScale(len(residual)) * scarglePower(residual, timestamps, f)
		}

		bin, found := peakIndex(power, 0)
		if !found {
			return 0, 0, false
		}

		df := freqs[1] - freqs[0]

		f := freqs[bin] + parabolicDelta(power, bin)*df
		if f <= 0 {
			return 0, 0, false
		}

		return f, power[bin], true
	}
}

// scarglePower returns the classic Lomb-Scargle periodogram ordinate at
// frequency f for a mean-centered signal y sampled at the given times. The
// per-frequency offset tau makes the ordinate invariant to time shifts.
//
// At a noise-free sinusoid's frequency the ordinate approaches n*A^2/4.
func scarglePower(y, times []float64, f float64) float64 {
	if f <= 0 || len(y) == 0 {
		return 0
	}

	omega := 2 * math.Pi * f

	var sin2, cos2 float64

	for _, t := range times {
		sin2 += math.Sin(2 * omega * t)
		cos2 += math.Cos(2 * omega * t)
	}

	tau := math.Atan2(sin2, cos2) / (2 * omega)

	var cc, ss, yc, ys float64

	for i, t := range times {
		arg := omega * (t - tau)
		c := math.Cos(arg)
		s := math.Sin(arg)

		cc += c * c
		ss += s * s
		yc += y[i] * c
		ys += y[i] * s
	}

	var p float64

	if cc > 0 {
		p += yc * yc / cc
	}

	if ss > 0 {
		p += ys * ys / ss
	}

	return 0.5 * p
}

// displayScale converts a Lomb-Scargle ordinate to the amplitude-corrected
// units of the uniform path, where a sinusoid of amplitude A peaks near
// A^2/2.
func displayScale(n int) float64 {
	if n == 0 {
		return 0
	}

	return 2 / float64(n)
}

// lombFrequencyGrid builds the detection grid: multiples of
// 1/(oversample*span) from 1/span up to the average Nyquist frequency.
func lombFrequencyGrid(n int, span float64, oversample int) []float64 {
	df := 1 / (float64(oversample) * span)

	kMin := oversample
	kMax := n * oversample / 2

	if kMax < kMin {
		return nil
	}

	freqs := make([]float64, 0, kMax-kMin+1)
	for k := kMin; k <= kMax; k++ {
		freqs = append(freqs, float64(k)*df)
	}

	return freqs
}
