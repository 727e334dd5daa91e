package analyzer

import (
	"github.com/cwbudde/algo-biosignal/spectral"
	"github.com/cwbudde/algo-biosignal/stability"
	"github.com/cwbudde/algo-biosignal/wavelet"
	"github.com/cwbudde/algo-biosignal/window"
	"github.com/cwbudde/algo-biosignal/zfilter"
)

// Option configures an Analyzer at construction.
type Option func(*Analyzer)

// WithSampleRate sets the sampling rate in samples per time unit. For
// biological series the conventional unit is the hour, so 4 means one
// sample every 15 minutes.
func WithSampleRate(sampleRate float64) Option {
	return func(a *Analyzer) {
		if sampleRate > 0 {
			a.sampleRate = sampleRate
		}
	}
}

// WithMinLength sets the sample count below which Validate reports
// insufficient length.
func WithMinLength(length int) Option {
	return func(a *Analyzer) {
		if length > 0 {
			a.minLength = length
		}
	}
}

// WithVarianceFloor sets the variance Validate requires for a signal to
// count as carrying usable dynamics.
func WithVarianceFloor(floor float64) Option {
	return func(a *Analyzer) {
		if floor > 0 {
			a.varianceFloor = floor
		}
	}
}

// FourierOption configures a single spectral-lens call.
type FourierOption func(*spectral.Config)

// WithHarmonics enables harmonic decomposition, extracting at most
// maxHarmonics components. Zero or negative keeps the default cap.
func WithHarmonics(maxHarmonics int) FourierOption {
	return func(cfg *spectral.Config) {
		cfg.DetectHarmonics = true

		if maxHarmonics > 0 {
			cfg.MaxHarmonics = maxHarmonics
		}
	}
}

// WithWindow selects the taper applied before the transform.
func WithWindow(t window.Type) FourierOption {
	return func(cfg *spectral.Config) {
		cfg.WindowType = t
	}
}

// WaveletOption configures a single wavelet-lens call.
type WaveletOption func(*wavelet.Config)

// WithWavelet selects a catalog entry by name.
func WithWavelet(name string) WaveletOption {
	return func(cfg *wavelet.Config) {
		cfg.Wavelet = name
	}
}

// WithAutoSelect scores every catalog entry and analyzes with the best fit.
func WithAutoSelect() WaveletOption {
	return func(cfg *wavelet.Config) {
		cfg.AutoSelect = true
	}
}

// WithMRA enables multi-resolution analysis with the given number of detail
// bands.
func WithMRA(levels int) WaveletOption {
	return func(cfg *wavelet.Config) {
		if levels > 0 {
			cfg.MRALevels = levels
		}
	}
}

// WithDenoise adds a soft-thresholded reconstruction of the signal to the
// wavelet result.
func WithDenoise() WaveletOption {
	return func(cfg *wavelet.Config) {
		cfg.Denoise = true
	}
}

// StabilityOption configures a single stability-lens call.
type StabilityOption func(*stability.Config)

// WithModelOrder sets the autoregressive model order (1 to 4).
func WithModelOrder(order int) StabilityOption {
	return func(cfg *stability.Config) {
		if order > 0 {
			cfg.Order = order
		}
	}
}

// FilterOption configures a single filtering-lens call.
type FilterOption func(*zfilter.Config)

// WithCutoff sets the low-pass corner frequency in cycles per time unit
// instead of deriving it from the dominant rhythm.
func WithCutoff(freq float64) FilterOption {
	return func(cfg *zfilter.Config) {
		if freq > 0 {
			cfg.CutoffFreq = freq
		}
	}
}

// WithFilterOrder sets the Butterworth cascade order (1 to 8).
func WithFilterOrder(order int) FilterOption {
	return func(cfg *zfilter.Config) {
		if order > 0 {
			cfg.Order = order
		}
	}
}
