// Package stability implements the pole-based lens: it fits a low-order
// autoregressive model to a signal, maps the model's characteristic roots
// into the s-plane, and classifies the implied dynamics as stable,
// oscillatory, or unstable.
//
// The lens answers a different question than the spectral one: not "which
// rhythm is present" but "is the process generating this signal settling,
// sustaining, or running away".
package stability

import (
	"errors"
	"math"
	"math/cmplx"
	"sort"

	"github.com/cwbudde/algo-biosignal/internal/polyroot"
	"github.com/cwbudde/algo-biosignal/stats"
)

// ErrEmptyInput is returned when the signal has no samples.
var ErrEmptyInput = errors.New("stability: empty input")

// State classifies the fitted dynamics.
type State int

const (
	// StateUndetermined is reported when no meaningful model could be
	// fitted (constant input, too few samples, degenerate fit). It is the
	// zero value, never an error.
	StateUndetermined State = iota
	StateStable
	StateOscillatory
	StateUnstable
)

func (s State) String() string {
	switch s {
	case StateStable:
		return "stable"
	case StateOscillatory:
		return "oscillatory"
	case StateUnstable:
		return "unstable"
	default:
		return "undetermined"
	}
}

const (
	defaultOrder = 2
	maxOrder     = 4

	// A pole counts as sitting on the imaginary axis when |Re(s)| is
	// within this fraction of the pole magnitude.
	axisTolerance = 0.02

	// Pole magnitudes below this floor are treated as pure integrators:
	// zero natural frequency, zero damping.
	magnitudeFloor = 1e-9

	// z-plane roots below this magnitude carry no dynamics and are
	// dropped before the s-plane mapping.
	zeroRootFloor = 1e-12
)

// Config holds stability analysis parameters. The zero value selects an
// order-2 model at sample rate 1.
type Config struct {
	// SampleRate in samples per time unit.
	SampleRate float64
	// Order of the autoregressive model, 1 to 4. Order 2 admits one
	// complex-conjugate pole pair, order 4 admits two.
	Order int
}

func normalizeConfig(cfg Config) Config {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = 1
	}

	if cfg.Order <= 0 {
		cfg.Order = defaultOrder
	}

	if cfg.Order > maxOrder {
		cfg.Order = maxOrder
	}

	return cfg
}

// Result holds the outcome of a stability analysis.
type Result struct {
	// Poles are the fitted model's characteristic roots mapped to the
	// s-plane, sorted by real part descending (dominant first). Nil when
	// State is StateUndetermined.
	Poles []complex128

	State State

	// NaturalFrequency is the magnitude of the dominant pole in radians
	// per time unit. Zero for an undetermined or integrator-like fit.
	NaturalFrequency float64

	// DampingRatio is -Re(s)/|s| for the dominant pole: 0 for sustained
	// oscillation, positive for decay. It is negative only when State is
	// StateUnstable.
	DampingRatio float64

	// ARCoefficients are the fitted model coefficients a[1..order] in
	// x[n] = a1*x[n-1] + ... + ap*x[n-p] + c + e[n].
	ARCoefficients []float64

	// FitOrder is the model order actually used. It can be lower than the
	// configured order when the data does not support the full model
	// (a pure exponential, for example, carries only first-order dynamics).
	FitOrder int
}

// Analyze fits an autoregressive model to the signal and classifies its
// dynamics. Degenerate inputs (constant signals, too few samples, singular
// fits) yield StateUndetermined with nil poles; only an empty signal is an
// error.
func Analyze(signal []float64, cfg Config) (Result, error) {
	if len(signal) == 0 {
		return Result{}, ErrEmptyInput
	}

	cfg = normalizeConfig(cfg)

	mean, variance, _, _ := stats.Moments(signal)
	if variance <= 0 {
		return Result{}, nil
	}

	// Standardize before fitting. The regression carries an intercept, so
	// the fit is invariant under this transform; the poles come out the
	// same whether the signal hovers around 0 or around 37 degrees.
	std := math.Sqrt(variance)

	x := make([]float64, len(signal))
	for i, v := range signal {
		x[i] = (v - mean) / std
	}

	// Try the configured order first and degrade when the normal equations
	// are singular or the characteristic polynomial will not factor. A
	// signal with only first-order dynamics makes the order-2 equations
	// collinear, and the order-1 model is then the right description.
	for order := cfg.Order; order >= 1; order-- {
		if len(x) < 2*order+2 {
			continue
		}

		coeffs, ok := fitAR(x, order)
		if !ok {
			continue
		}

		zRoots, err := polyroot.Roots(characteristicPoly(coeffs))
		if err != nil {
			continue
		}

		poles := mapToSPlane(zRoots, cfg.SampleRate)
		if len(poles) == 0 {
			continue
		}

		res := Result{
			Poles:          poles,
			ARCoefficients: coeffs,
			FitOrder:       order,
		}

		res.State = classify(poles)
		res.NaturalFrequency, res.DampingRatio = dominantPoleMetrics(poles)

		// A pole the axis tolerance rounds onto the imaginary axis can
		// carry a slightly positive real part. Do not let that leak out as
		// negative damping on a non-unstable verdict.
		if res.State != StateUnstable && res.DampingRatio < 0 {
			res.DampingRatio = 0
		}

		return res, nil
	}

	return Result{}, nil
}

// fitAR solves the least-squares autoregression with intercept
// x[n] = a1*x[n-1] + ... + ap*x[n-p] + c via the normal equations. The
// intercept absorbs the signal's operating point without adding a spurious
// z=1 root the way plain mean subtraction would for settling signals. Only
// a[1..p] are returned; the intercept is a nuisance parameter.
func fitAR(x []float64, order int) ([]float64, bool) {
	n := len(x)
	dim := order + 1

	r := make([]float64, dim)

	m := make([][]float64, dim)
	for i := range m {
		m[i] = make([]float64, dim)
	}

	phi := make([]float64, dim)
	phi[order] = 1

	for t := order; t < n; t++ {
		for i := 0; i < order; i++ {
			phi[i] = x[t-1-i]
		}

		for i := 0; i < dim; i++ {
			r[i] += x[t] * phi[i]

			for j := i; j < dim; j++ {
				m[i][j] += phi[i] * phi[j]
			}
		}
	}

	for i := 1; i < dim; i++ {
		for j := 0; j < i; j++ {
			m[i][j] = m[j][i]
		}
	}

	sol, ok := solve(m, r)
	if !ok {
		return nil, false
	}

	return sol[:order], true
}

// solve performs Gaussian elimination with partial pivoting. It reports
// ok=false for (near-)singular systems so the caller can fall back to a
// lower model order.
func solve(m [][]float64, r []float64) ([]float64, bool) {
	n := len(r)

	scale := 0.0
	for i := range m {
		for j := range m[i] {
			if a := math.Abs(m[i][j]); a > scale {
				scale = a
			}
		}
	}

	if scale == 0 {
		return nil, false
	}

	const pivotTol = 1e-8

	for col := 0; col < n; col++ {
		pivot := col
		for row := col + 1; row < n; row++ {
			if math.Abs(m[row][col]) > math.Abs(m[pivot][col]) {
				pivot = row
			}
		}

		if math.Abs(m[pivot][col]) < pivotTol*scale {
			return nil, false
		}

		if pivot != col {
			m[pivot], m[col] = m[col], m[pivot]
			r[pivot], r[col] = r[col], r[pivot]
		}

		for row := col + 1; row < n; row++ {
			f := m[row][col] / m[col][col]
			for j := col; j < n; j++ {
				m[row][j] -= f * m[col][j]
			}

			r[row] -= f * r[col]
		}
	}

	out := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		sum := r[i]
		for j := i + 1; j < n; j++ {
			sum -= m[i][j] * out[j]
		}

		out[i] = sum / m[i][i]
	}

	return out, true
}

// characteristicPoly returns z^p - a1*z^(p-1) - ... - ap in descending
// power order.
func characteristicPoly(coeffs []float64) []float64 {
	poly := make([]float64, len(coeffs)+1)
	poly[0] = 1

	for i, a := range coeffs {
		poly[i+1] = -a
	}

	return poly
}

// mapToSPlane converts z-plane roots to continuous-frequency poles via
// s = sampleRate * log(z). Roots at the origin carry no dynamics and are
// dropped.
func mapToSPlane(zRoots []complex128, sampleRate float64) []complex128 {
	poles := make([]complex128, 0, len(zRoots))

	for _, z := range zRoots {
		if cmplx.Abs(z) < zeroRootFloor {
			continue
		}

		poles = append(poles, complex(sampleRate, 0)*cmplx.Log(z))
	}

	sort.Slice(poles, func(i, j int) bool {
		if real(poles[i]) != real(poles[j]) {
			return real(poles[i]) > real(poles[j])
		}

		return imag(poles[i]) > imag(poles[j])
	})

	return poles
}

// classify applies the s-plane rule: any pole right of the axis makes the
// system unstable, all poles strictly left make it stable, and anything on
// the axis (within tolerance) sustains.
func classify(poles []complex128) State {
	allStable := true

	for _, p := range poles {
		re := real(p)
		tol := axisTolerance * math.Max(cmplx.Abs(p), magnitudeFloor)

		switch {
		case re > tol:
			return StateUnstable
		case re >= -tol:
			allStable = false
		}
	}

	if allStable {
		return StateStable
	}

	return StateOscillatory
}

// dominantPoleMetrics reports natural frequency and damping ratio of the
// dominant (rightmost) pole.
func dominantPoleMetrics(poles []complex128) (naturalFreq, damping float64) {
	dominant := poles[0]

	mag := cmplx.Abs(dominant)
	if mag < magnitudeFloor {
		return 0, 0
	}

	return mag, -real(dominant) / mag
}
