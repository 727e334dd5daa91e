// Package validate checks biological time series against the quality
// invariants the analysis lenses assume: minimum length, non-constant
// values, element-wise finiteness, and a variance floor.
//
// Validation is purely informational. Every check is evaluated even when an
// earlier one fails, so a caller sees all failing reasons at once, and no
// input, including an empty one, causes an error.
package validate

import (
	"math"

	"github.com/cwbudde/algo-biosignal/stats"
)

// Default thresholds applied by normalizeConfig.
const (
	DefaultMinLength       = 50
	DefaultConstantEpsilon = 1e-10
	DefaultVarianceFloor   = 1e-3
)

// Config controls the validation thresholds. The zero value selects the
// package defaults.
type Config struct {
	// MinLength is the smallest sample count considered sufficient for
	// rhythm analysis.
	MinLength int
	// ConstantEpsilon is the variance below which a signal counts as
	// constant.
	ConstantEpsilon float64
	// VarianceFloor is the variance a signal must exceed to count as
	// carrying usable dynamics. It is deliberately far above
	// ConstantEpsilon to catch near-constant noisy signals.
	VarianceFloor float64
}

func normalizeConfig(cfg Config) Config {
	if cfg.MinLength <= 0 {
		cfg.MinLength = DefaultMinLength
	}

	if cfg.ConstantEpsilon <= 0 {
		cfg.ConstantEpsilon = DefaultConstantEpsilon
	}

	if cfg.VarianceFloor <= 0 {
		cfg.VarianceFloor = DefaultVarianceFloor
	}

	return cfg
}

// Report holds the outcome of every check plus the measured quantities the
// checks were based on.
type Report struct {
	SufficientLength   bool
	NotConstant        bool
	NoNaNs             bool
	NoInfs             bool
	SufficientVariance bool

	// AllPassed is the conjunction of all checks.
	AllPassed bool

	// Length is the input sample count.
	Length int
	// Variance is the population variance over the finite samples.
	Variance float64
}

// Checks returns the per-check outcomes keyed by check name.
func (r Report) Checks() map[string]bool {
	return map[string]bool{
		"sufficient_length":   r.SufficientLength,
		"not_constant":        r.NotConstant,
		"no_nans":             r.NoNaNs,
		"no_infs":             r.NoInfs,
		"sufficient_variance": r.SufficientVariance,
	}
}

// Check validates the signal against cfg. All checks run unconditionally.
//
// The variance-based checks use only the finite samples, so a NaN or Inf
// fails the finiteness checks without also masking the variability checks.
func Check(signal []float64, cfg Config) Report {
	cfg = normalizeConfig(cfg)

	report := Report{
		Length: len(signal),
		NoNaNs: true,
		NoInfs: true,
	}

	finite := make([]float64, 0, len(signal))

	for _, x := range signal {
		switch {
		case math.IsNaN(x):
			report.NoNaNs = false
		case math.IsInf(x, 0):
			report.NoInfs = false
		default:
			finite = append(finite, x)
		}
	}

	_, variance, _, _ := stats.Moments(finite)
	report.Variance = variance

	report.SufficientLength = len(signal) >= cfg.MinLength
	report.NotConstant = variance > cfg.ConstantEpsilon
	report.SufficientVariance = variance > cfg.VarianceFloor

	report.AllPassed = report.SufficientLength &&
		report.NotConstant &&
		report.NoNaNs &&
		report.NoInfs &&
		report.SufficientVariance

	return report
}
