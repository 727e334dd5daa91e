package analyzer

import (
	"github.com/cwbudde/algo-biosignal/spectral"
	"github.com/cwbudde/algo-biosignal/stability"
	"github.com/cwbudde/algo-biosignal/validate"
	"github.com/cwbudde/algo-biosignal/wavelet"
	"github.com/cwbudde/algo-biosignal/zfilter"
)

// Analyzer bundles the four lenses behind one sampling configuration.
//
// An Analyzer is immutable after construction and safe for concurrent use:
// every method is a pure function of its input slice, and concurrent calls
// may even share the same backing array since no lens writes to it.
type Analyzer struct {
	sampleRate    float64
	minLength     int
	varianceFloor float64

	catalog []wavelet.Info
}

// New creates an Analyzer. Without options it assumes one sample per time
// unit and the default validation thresholds.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{sampleRate: 1}

	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}

	a.catalog = wavelet.Catalog()

	return a
}

// SampleRate returns the configured sampling rate in samples per time unit.
func (a *Analyzer) SampleRate() float64 {
	return a.sampleRate
}

// WaveletCatalog returns the analyzer's wavelet catalog. The slice is built
// once at construction and shared by reference; callers must treat it as
// read-only.
func (a *Analyzer) WaveletCatalog() []wavelet.Info {
	return a.catalog
}

// Validate checks the signal against the analyzer's quality thresholds. It
// never fails; the report carries every check outcome.
func (a *Analyzer) Validate(signal []float64) validate.Report {
	return validate.Check(signal, validate.Config{
		MinLength:     a.minLength,
		VarianceFloor: a.varianceFloor,
	})
}

// FourierLens runs the spectral lens over a uniformly sampled signal.
func (a *Analyzer) FourierLens(signal []float64, opts ...FourierOption) (spectral.Result, error) {
	cfg := spectral.Config{SampleRate: a.sampleRate}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return spectral.Analyze(signal, cfg)
}

// FourierLensIrregular runs the spectral lens over an irregularly sampled
// signal. The timestamps must be strictly increasing and parallel to the
// values; they carry the time unit, so the analyzer's sample rate does not
// apply.
func (a *Analyzer) FourierLensIrregular(signal, timestamps []float64, opts ...FourierOption) (spectral.Result, error) {
	cfg := spectral.Config{}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return spectral.AnalyzeTimestamps(signal, timestamps, cfg)
}

// WaveletLens runs the time-frequency lens.
func (a *Analyzer) WaveletLens(signal []float64, opts ...WaveletOption) (wavelet.Result, error) {
	cfg := wavelet.Config{SampleRate: a.sampleRate}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return wavelet.Analyze(signal, cfg)
}

// LaplaceLens runs the stability lens.
func (a *Analyzer) LaplaceLens(signal []float64, opts ...StabilityOption) (stability.Result, error) {
	cfg := stability.Config{SampleRate: a.sampleRate}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return stability.Analyze(signal, cfg)
}

// ZTransformLens runs the filtering lens.
func (a *Analyzer) ZTransformLens(signal []float64, opts ...FilterOption) (zfilter.Result, error) {
	cfg := zfilter.Config{SampleRate: a.sampleRate}

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return zfilter.Apply(signal, cfg)
}
