// Package spectral implements the frequency-domain lens: periodogram
// estimation, dominant-rhythm identification with a false-alarm-derived
// significance score, and iterative harmonic decomposition.
//
// Uniformly sampled signals go through a windowed, zero-padded FFT;
// irregularly sampled signals go through the Lomb-Scargle periodogram.
// Frequencies are expressed in cycles per time unit (for biological
// series, cycles per hour), so a 24-hour rhythm appears at 1/24.
package spectral

import (
	"errors"
	"fmt"
	"math"
	"sort"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-biosignal/stats"
	"github.com/cwbudde/algo-biosignal/window"
)

var (
	// ErrEmptyInput is returned when the signal has no samples.
	ErrEmptyInput = errors.New("spectral: empty input")
	// ErrLengthMismatch is returned when values and timestamps differ in length.
	ErrLengthMismatch = errors.New("spectral: values and timestamps must have same length")
	// ErrTimestampsNotIncreasing is returned when timestamps are not strictly increasing.
	ErrTimestampsNotIncreasing = errors.New("spectral: timestamps must be strictly increasing")
)

const (
	defaultMaxHarmonics = 5
	defaultPadFactor    = 4
	defaultOversample   = 4

	// A residual peak below this fraction of the first harmonic's power
	// ends the extraction loop.
	negligiblePeakFraction = 0.01

	// A residual peak must reach this significance to count as a harmonic,
	// so white noise yields at most a stray low-power entry.
	minHarmonicSignificance = 0.9
)

// Config holds spectral analysis parameters. The zero value selects the
// package defaults (sample rate 1, Hann window, 4x zero padding).
type Config struct {
	// SampleRate in samples per time unit. Used only for uniform sampling.
	SampleRate float64
	// WindowType tapers the signal before the FFT.
	WindowType window.Type
	// PadFactor is the zero-padding factor applied before the FFT to
	// refine the frequency grid.
	PadFactor int
	// DetectHarmonics enables the iterative fit-subtract decomposition.
	DetectHarmonics bool
	// MaxHarmonics caps the number of extracted components.
	MaxHarmonics int
	// Oversample controls the Lomb-Scargle frequency grid density.
	Oversample int
}

func normalizeConfig(cfg Config) Config {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = 1
	}

	if cfg.WindowType == 0 {
		cfg.WindowType = window.TypeHann
	}

	if cfg.PadFactor <= 0 {
		cfg.PadFactor = defaultPadFactor
	}

	if cfg.MaxHarmonics <= 0 {
		cfg.MaxHarmonics = defaultMaxHarmonics
	}

	if cfg.Oversample <= 0 {
		cfg.Oversample = defaultOversample
	}

	return cfg
}

// Harmonic is one extracted sinusoidal component. Power is the component's
// contribution to the signal variance (amplitude^2 / 2), directly comparable
// to the peak values of the power spectrum.
type Harmonic struct {
	Period    float64
	Amplitude float64
	Phase     float64 // radians in [0, 2*pi), relative to cos(2*pi*f*t - phase)
	Power     float64
}

// Result holds the outcome of a spectral analysis.
type Result struct {
	// Frequencies and Power form the one-sided power spectrum. Power is
	// amplitude-corrected: a sinusoid of amplitude A peaks near A^2/2.
	Frequencies []float64
	Power       []float64

	DominantFrequency float64
	DominantPeriod    float64

	// Significance in [0,1] is the complement of the false-alarm
	// probability of the dominant peak under a white-noise null.
	Significance float64

	// NoiseFloor is the median of the power spectrum.
	NoiseFloor float64

	Harmonics     []Harmonic
	HarmonicPower float64
}

// Analyze computes the spectrum of a uniformly sampled signal and identifies
// its dominant rhythm.
//
// Degenerate inputs (constant signals, too few samples for a meaningful
// spectrum) return a best-effort Result with zero scores; only an empty
// signal is an error.
func Analyze(signal []float64, cfg Config) (Result, error) {
	if len(signal) == 0 {
		return Result{}, ErrEmptyInput
	}

	cfg = normalizeConfig(cfg)

	mean, variance, _, _ := stats.Moments(signal)

	detrended := make([]float64, len(signal))
	for i, x := range signal {
		detrended[i] = x - mean
	}

	freqs, power, err := periodogram(detrended, cfg)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Frequencies: freqs,
		Power:       power,
		NoiseFloor:  medianPower(power),
	}

	if variance <= 0 || len(signal) < 2 {
		return res, nil
	}

	minBin := minSearchBin(len(power), len(signal))

	bin, ok := peakIndex(power, minBin)
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

	times := uniformTimes(len(signal), cfg.SampleRate)
	z := scarglePower(detrended, times, peakFreq) / variance
	res.Significance = falseAlarmComplement(z, len(signal)/2)

	if cfg.DetectHarmonics {
		res.Harmonics, res.HarmonicPower = extractHarmonics(
			detrended, times, len(signal)/2, cfg.MaxHarmonics, uniformEstimator(cfg))
	}

	return res, nil
}

// uniformEstimator returns a peak estimator backed by the windowed FFT
// periodogram, for use by the harmonic extraction loop.
func uniformEstimator(cfg Config) peakEstimator {
	return func(residual []float64) (freq, peak float64, ok bool) {
		freqs, power, err := periodogram(residual, cfg)
		if err != nil || len(freqs) < 2 {
			return 0, 0, false
		}

		minBin := minSearchBin(len(power), len(residual))

		bin, found := peakIndex(power, minBin)
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

// periodogram computes the one-sided, amplitude-corrected power spectrum of a
// mean-removed signal. The signal is tapered, zero-padded to PadFactor times
// the next power of two, and transformed with the FFT backend.
func periodogram(detrended []float64, cfg Config) ([]float64, []float64, error) {
	n := len(detrended)

	fftSize := nextPowerOf2(n * cfg.PadFactor)
	if fftSize < 8 {
		fftSize = 8
	}

	coeffs := window.Generate(cfg.WindowType, n)

	windowed, err := window.ApplyCoefficients(detrended, coeffs)
	if err != nil {
		return nil, nil, fmt.Errorf("spectral: window: %w", err)
	}

	sumW := 0.0
	for _, w := range coeffs {
		sumW += w
	}

	if sumW <= 0 {
		// Degenerate taper for very short signals.
		sumW = float64(n)
	}

	inData := make([]complex128, fftSize)
	for i, v := range windowed {
		inData[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, nil, fmt.Errorf("spectral: fft plan: %w", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, inData); err != nil {
		return nil, nil, fmt.Errorf("spectral: fft: %w", err)
	}

	half := fftSize/2 + 1

	re := make([]float64, half)
	im := make([]float64, half)

	for i := 0; i < half; i++ {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}

	power := make([]float64, half)
	vecmath.Power(power, re, im)

	// One-sided amplitude correction: interior bins carry both halves of
	// the two-sided spectrum.
	norm := 1 / (sumW * sumW)

	for i := range power {
		scale := 2 * norm
		if i == 0 || i == half-1 {
			scale = norm
		}

		power[i] *= scale
	}

	df := cfg.SampleRate / float64(fftSize)

	freqs := make([]float64, half)
	for i := range freqs {
		freqs[i] = float64(i) * df
	}

	return freqs, power, nil
}

// minSearchBin returns the first bin eligible for peak search: DC is always
// excluded, as are frequencies below one full cycle per record.
func minSearchBin(binCount, signalLen int) int {
	if signalLen <= 0 {
		return 1
	}

	fftSize := 2 * (binCount - 1)

	minBin := (fftSize + signalLen - 1) / signalLen

	return clampInt(minBin, 1, binCount-1)
}

// peakIndex returns the index of the largest strictly positive power bin at
// or above minBin.
func peakIndex(power []float64, minBin int) (int, bool) {
	if minBin < 0 {
		minBin = 0
	}

	bestBin := -1
	bestVal := 0.0

	for i := minBin; i < len(power); i++ {
		if power[i] > bestVal {
			bestVal = power[i]
			bestBin = i
		}
	}

	return bestBin, bestBin >= 0
}

// parabolicDelta refines a peak location by fitting a parabola through the
// log-power of the peak bin and its neighbours. The returned offset is in
// bins, clamped to [-0.5, 0.5].
func parabolicDelta(power []float64, bin int) float64 {
	if bin <= 0 || bin >= len(power)-1 {
		return 0
	}

	const floor = 1e-300

	l := math.Log(math.Max(power[bin-1], floor))
	c := math.Log(math.Max(power[bin], floor))
	r := math.Log(math.Max(power[bin+1], floor))

	den := l - 2*c + r
	if den == 0 {
		return 0
	}

	delta := 0.5 * (l - r) / den
	if delta > 0.5 {
		delta = 0.5
	} else if delta < -0.5 {
		delta = -0.5
	}

	return delta
}

func medianPower(power []float64) float64 {
	if len(power) == 0 {
		return 0
	}

	sorted := append([]float64(nil), power...)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}

	return 0.5 * (sorted[mid-1] + sorted[mid])
}

func uniformTimes(n int, sampleRate float64) []float64 {
	times := make([]float64, n)
	for i := range times {
		times[i] = float64(i) / sampleRate
	}

	return times
}

func clampInt(val, lo, hi int) int {
	if val < lo {
		return lo
	}

	if val > hi {
		return hi
	}

	return val
}

func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p <<= 1
	}

	return p
}
