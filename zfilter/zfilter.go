// Package zfilter implements the filtering lens: a zero-phase Butterworth
// low-pass over the signal, with the cutoff either given by the caller or
// chosen from the signal's own dominant rhythm.
//
// The filter runs forward and backward over an odd-reflected extension of
// the input, so the output aligns sample for sample with the input and
// boundary transients stay out of the returned range.
package zfilter

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-biosignal/spectral"
	"github.com/cwbudde/algo-biosignal/stats"
)

// ErrEmptyInput is returned when the signal has no samples.
var ErrEmptyInput = errors.New("zfilter: empty input")

const (
	defaultOrder   = 4
	maxFilterOrder = 8

	// Auto-selected cutoffs stay inside this band of the Nyquist
	// frequency: low enough to smooth, high enough to keep the rhythm.
	minCutoffFrac = 0.02
	maxCutoffFrac = 0.25

	// Fallback cutoff fraction of Nyquist when the spectrum gives no
	// usable dominant frequency.
	fallbackCutoffFrac = 0.1
)

// Config holds filtering parameters. The zero value selects an order-4
// filter with automatic cutoff at sample rate 1.
type Config struct {
	// SampleRate in samples per time unit.
	SampleRate float64
	// CutoffFreq is the low-pass corner in cycles per time unit. Zero or
	// negative selects the cutoff automatically from the dominant
	// frequency. Values at or above Nyquist are pulled just below it.
	CutoffFreq float64
	// Order of the Butterworth cascade, 1 to 8.
	Order int
}

func normalizeConfig(cfg Config) Config {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = 1
	}

	if cfg.Order <= 0 {
		cfg.Order = defaultOrder
	}

	if cfg.Order > maxFilterOrder {
		cfg.Order = maxFilterOrder
	}

	return cfg
}

// Result holds the outcome of a filtering pass.
type Result struct {
	// Filtered has the same length as the input and is phase-aligned
	// with it.
	Filtered []float64

	// CutoffFreq is the corner frequency actually used, in cycles per
	// time unit. Zero when the input was constant and returned as-is.
	CutoffFreq float64

	// Order of the cascade actually used.
	Order int

	// NoiseReduction is the drop in sample-to-sample roughness, in
	// percent of the input's first-difference variance. Never negative.
	NoiseReduction float64
}

// Apply low-pass filters the signal. Constant inputs come back unchanged
// with zero noise reduction; only an empty signal is an error.
func Apply(signal []float64, cfg Config) (Result, error) {
	if len(signal) == 0 {
		return Result{}, ErrEmptyInput
	}

	cfg = normalizeConfig(cfg)

	if stats.Variance(signal) <= 0 {
		out := make([]float64, len(signal))
		copy(out, signal)

		return Result{Filtered: out, Order: cfg.Order}, nil
	}

	cutoff := cfg.CutoffFreq
	if cutoff <= 0 || math.IsNaN(cutoff) {
		cutoff = autoCutoff(signal, cfg.SampleRate)
	}

	nyquist := cfg.SampleRate / 2
	if cutoff >= nyquist {
		cutoff = 0.98 * nyquist
	}

	sections := butterworthLowpass(cutoff, cfg.Order, cfg.SampleRate)
	filtered := filtfilt(signal, sections, cfg.SampleRate, cutoff)

	return Result{
		Filtered:       filtered,
		CutoffFreq:     cutoff,
		Order:          cfg.Order,
		NoiseReduction: noiseReduction(signal, filtered),
	}, nil
}

// autoCutoff places the corner at three times the dominant frequency,
// clamped to a usable band. A spectrum without a usable peak falls back to
// a fixed fraction of Nyquist.
func autoCutoff(signal []float64, sampleRate float64) float64 {
	nyquist := sampleRate / 2

	res, err := spectral.Analyze(signal, spectral.Config{SampleRate: sampleRate})
	if err != nil || res.DominantFrequency <= 0 || math.IsNaN(res.DominantFrequency) {
		return fallbackCutoffFrac * nyquist
	}

	cutoff := 3 * res.DominantFrequency

	if lo := minCutoffFrac * nyquist; cutoff < lo {
		return lo
	}

	if hi := maxCutoffFrac * nyquist; cutoff > hi {
		return hi
	}

	return cutoff
}

// filtfilt runs the cascade forward and backward over an odd-reflected
// extension of the signal and returns the center portion. The double pass
// cancels the cascade's phase shift; the reflected padding keeps the
// filter settled when it enters the real samples.
func filtfilt(signal []float64, sections []section, sampleRate, cutoff float64) []float64 {
	n := len(signal)

	padLen := 3 * (2*len(sections) + 1)
	if cutoff > 0 {
		if byCutoff := int(2 * sampleRate / cutoff); byCutoff > padLen {
			padLen = byCutoff
		}
	}

	if padLen > n-1 {
		padLen = n - 1
	}

	ext := make([]float64, n+2*padLen)
	for i := 0; i < padLen; i++ {
		ext[i] = 2*signal[0] - signal[padLen-i]
		ext[padLen+n+i] = 2*signal[n-1] - signal[n-2-i]
	}

	copy(ext[padLen:], signal)

	cascade(sections, ext)
	reverse(ext)
	resetAll(sections)
	cascade(sections, ext)
	reverse(ext)

	out := make([]float64, n)
	copy(out, ext[padLen:padLen+n])

	return out
}

func reverse(buf []float64) {
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
}

func noiseReduction(input, filtered []float64) float64 {
	in := stats.DiffVariance(input)
	if in <= 0 {
		return 0
	}

	nr := 100 * (1 - stats.DiffVariance(filtered)/in)
	if nr < 0 {
		return 0
	}

	return nr
}
