// Package analyzer is the entry point of the biosignal analysis engine: it
// characterizes a sampled biological metric through four complementary
// mathematical lenses.
//
//   - FourierLens: periodogram, dominant rhythm and its significance,
//     harmonic decomposition (package spectral)
//   - WaveletLens: time-frequency decomposition, transient events, wavelet
//     auto-selection, multi-resolution analysis and denoising (package wavelet)
//   - LaplaceLens: pole extraction and stable/oscillatory/unstable
//     classification (package stability)
//   - ZTransformLens: zero-phase low-pass filtering with automatic cutoff
//     (package zfilter)
//
// Validate gates them all: it reports length, finiteness, and variance
// concerns without ever failing, and the caller decides whether to proceed.
//
// An Analyzer holds only immutable construction-time configuration (the
// sampling rate and the wavelet catalog). Every lens is a pure function of
// its input slice, so one Analyzer may serve any number of goroutines, even
// over the same backing array.
//
// # Usage
//
//	eng := analyzer.New(analyzer.WithSampleRate(4)) // samples per hour
//
//	if report := eng.Validate(series); !report.AllPassed {
//		log.Printf("degraded input: %v", report.Checks())
//	}
//
//	spec, err := eng.FourierLens(series, analyzer.WithHarmonics(5))
//	if err != nil {
//		return err
//	}
//	fmt.Printf("dominant period %.1f h\n", spec.DominantPeriod)
package analyzer
