// Package wavelet implements the time-frequency lens: continuous wavelet
// transforms over a fixed catalog of mother wavelets, transient event
// detection on the transform energy, a scored auto-selection mode, and an
// orthogonal multi-resolution decomposition with universal-threshold
// denoising.
//
// The continuous transform serves localization questions (when does a
// burst happen, at which scale); the orthogonal decomposition serves
// additive questions (how does the signal split into bands that sum back
// to it). Both views share the same catalog: orthogonal entries double as
// filter banks, and non-orthogonal entries fall back to db4 when a
// decomposition is requested.
package wavelet

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrEmptyInput is returned when the signal has no samples.
	ErrEmptyInput = errors.New("wavelet: empty input")
	// ErrUnknownWavelet is returned when Config.Wavelet names no catalog entry.
	ErrUnknownWavelet = errors.New("wavelet: unknown wavelet")
)

const (
	defaultNumScales     = 32
	defaultDenoiseLevels = 4
	maxMRADepth          = 8
)

// Config holds wavelet analysis parameters. The zero value selects a
// 32-scale Morlet transform at sample rate 1 with no decomposition.
type Config struct {
	// SampleRate in samples per time unit.
	SampleRate float64
	// Wavelet names the catalog entry to use. Empty selects Morlet.
	Wavelet string
	// AutoSelect scores every catalog entry and uses the best fit.
	AutoSelect bool
	// NumScales caps the scale axis resolution.
	NumScales int
	// MRALevels enables multi-resolution analysis with that many detail
	// bands. Zero disables it.
	MRALevels int
	// Denoise adds a soft-thresholded reconstruction of the signal.
	Denoise bool
}

func normalizeConfig(cfg Config) Config {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = 1
	}

	if cfg.Wavelet == "" {
		cfg.Wavelet = Morlet
	}

	if cfg.NumScales <= 0 {
		cfg.NumScales = defaultNumScales
	}

	if cfg.MRALevels < 0 {
		cfg.MRALevels = 0
	}

	return cfg
}

// BandSummary describes one component of a multi-resolution decomposition.
type BandSummary struct {
	// EnergyShare in percent of the total band energy. Shares sum to 100.
	EnergyShare float64

	RMS        float64
	PeakToPeak float64

	// DominantFrequency is a coarse zero-crossing estimate in cycles per
	// time unit.
	DominantFrequency float64
}

// Result holds the outcome of a wavelet analysis.
type Result struct {
	// WaveletUsed is the catalog entry that produced Coefficients: the
	// configured one, or the auto-selection winner.
	WaveletUsed string

	// Scales is the scale axis in samples, ascending.
	Scales []float64

	// Coefficients holds |W(scale, t)|, indexed [scale][time].
	Coefficients [][]float64

	// TimeFreqMap holds the energy density |W|^2/scale, indexed the same.
	TimeFreqMap [][]float64

	// Events are localized energy bursts, in time order.
	Events []Event

	// SelectionScore rates WaveletUsed against this signal.
	SelectionScore Score

	// Alternatives lists every catalog entry scored and sorted, winner
	// first. Nil unless auto-selection ran.
	Alternatives []ScoredWavelet

	// Components maps "approximation" and "detail_1".."detail_k" to
	// same-length bands whose sample-wise sum rebuilds the signal. Nil
	// unless MRALevels > 0.
	Components map[string][]float64

	// BandSummaries describes each entry of Components.
	BandSummaries map[string]BandSummary

	// ReconstructionError is the RMS difference between the summed bands
	// and the input.
	ReconstructionError float64

	// MRAWavelet is the orthogonal wavelet used for decomposition and
	// denoising: WaveletUsed itself when orthogonal, db4 otherwise.
	MRAWavelet string

	// DenoisedSignal is the soft-thresholded reconstruction. Nil unless
	// Config.Denoise was set.
	DenoisedSignal []float64
}

// Analyze runs the configured wavelet decomposition over the signal.
//
// Degenerate inputs (constant signals, records too short to split) return
// best-effort results; only an empty signal or an unknown wavelet name is
// an error.
func Analyze(signal []float64, cfg Config) (Result, error) {
	if len(signal) == 0 {
		return Result{}, ErrEmptyInput
	}

	cfg = normalizeConfig(cfg)

	if _, ok := infoByName(cfg.Wavelet); !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownWavelet, cfg.Wavelet)
	}

	scales := scaleGrid(len(signal), cfg.NumScales)

	res := Result{Scales: scales, WaveletUsed: cfg.Wavelet}

	if cfg.AutoSelect {
		scored, err := scoreAllWavelets(signal, scales)
		if err != nil {
			return Result{}, err
		}

		res.WaveletUsed = scored[0].Name
		res.SelectionScore = scored[0].Score
		res.Alternatives = scored
	}

	coeffs, tfMap, err := cwt(signal, res.WaveletUsed, scales)
	if err != nil {
		return Result{}, err
	}

	res.Coefficients = coeffs
	res.TimeFreqMap = tfMap
	res.Events = detectEvents(coeffs)

	if !cfg.AutoSelect {
		res.SelectionScore = scoreTransform(coeffs, tfMap)
	}

	if cfg.MRALevels > 0 {
		analyzeMRA(&res, signal, cfg)
	}

	if cfg.Denoise {
		denoiseSignal(&res, signal, cfg)
	}

	return res, nil
}

func analyzeMRA(res *Result, signal []float64, cfg Config) {
	res.MRAWavelet = orthogonalFallback(res.WaveletUsed)

	levels := cfg.MRALevels
	if depth := mraMaxDepth(len(signal)); levels > depth {
		levels = depth
	}

	if levels < 1 {
		// Record too short to split: everything is approximation.
		approx := make([]float64, len(signal))
		copy(approx, signal)

		res.Components = map[string][]float64{"approximation": approx}
		res.BandSummaries = summarize(res.Components, cfg.SampleRate)

		return
	}

	dec := decompose(signal, res.MRAWavelet, levels)

	res.Components = dec.components(len(signal))
	res.BandSummaries = summarize(res.Components, cfg.SampleRate)
	res.ReconstructionError = reconstructionError(res.Components, signal)
}

func denoiseSignal(res *Result, signal []float64, cfg Config) {
	res.MRAWavelet = orthogonalFallback(res.WaveletUsed)

	levels := cfg.MRALevels
	if levels <= 0 {
		levels = defaultDenoiseLevels
	}

	if depth := mraMaxDepth(len(signal)); levels > depth {
		levels = depth
	}

	if levels < 1 {
		out := make([]float64, len(signal))
		copy(out, signal)

		res.DenoisedSignal = out

		return
	}

	res.DenoisedSignal = denoise(signal, res.MRAWavelet, levels)
}

// orthogonalFallback returns name when it can drive a filter bank, db4
// otherwise.
func orthogonalFallback(name string) string {
	if info, ok := infoByName(name); ok && info.Orthogonal {
		return name
	}

	return DB4
}

// mraMaxDepth bounds the decomposition depth by the record length.
func mraMaxDepth(n int) int {
	depth := 0
	for depth < maxMRADepth && 1<<(depth+1) <= n {
		depth++
	}

	return depth
}

func reconstructionError(components map[string][]float64, signal []float64) float64 {
	sum := make([]float64, len(signal))
	for _, c := range components {
		for i, v := range c {
			sum[i] += v
		}
	}

	sq := 0.0
	for i, v := range sum {
		d := v - signal[i]
		sq += d * d
	}

	return math.Sqrt(sq / float64(len(signal)))
}
