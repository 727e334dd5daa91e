package wavelet

import (
	"math"
	"math/cmplx"
)

// Mother wavelet shape parameters.
const (
	morletOmega0 = 6.0
	paulOrder    = 4

	// Sampled support half-widths in mother-wavelet time units. The
	// Gaussian envelopes are below 4e-4 at |u|=4; the Paul wavelet decays
	// algebraically and needs a wider window.
	gaussianSupport = 4.0
	paulSupport     = 10.0
	haarSupport     = 0.5

	// Refinement steps for the Daubechies cascade tables. Six halvings
	// give 64 samples per unit time, enough for smooth interpolation.
	cascadeIterations = 6
)

// Dyadic approximations of the Daubechies mother wavelets, computed once by
// iterating the two-scale relation on the highpass filter.
var (
	db2PsiTable = cascadeTable(db2Filter, cascadeIterations)
	db4PsiTable = cascadeTable(db4Filter, cascadeIterations)
)

// kernelForScale samples the conjugate mother wavelet at the given scale,
// arranged so that plain convolution with the signal computes the wavelet
// correlation. The kernel is mean-corrected (a constant signal transforms
// to zero) and normalized to unit energy, which keeps coefficient
// magnitudes comparable across scales and wavelets.
func kernelForScale(name string, scale float64) []complex128 {
	half := int(math.Ceil(scale * supportHalfWidth(name)))
	if half < 1 {
		half = 1
	}

	k := make([]complex128, 2*half+1)
	for j := range k {
		u := (float64(half) - float64(j)) / scale
		k[j] = cmplx.Conj(motherValue(name, u))
	}

	var mean complex128
	for _, v := range k {
		mean += v
	}

	mean /= complex(float64(len(k)), 0)

	energy := 0.0
	for j := range k {
		k[j] -= mean
		energy += real(k[j])*real(k[j]) + imag(k[j])*imag(k[j])
	}

	if energy <= 0 {
		return k
	}

	norm := complex(1/math.Sqrt(energy), 0)
	for j := range k {
		k[j] *= norm
	}

	return k
}

func supportHalfWidth(name string) float64 {
	switch name {
	case Morlet, MexicanHat:
		return gaussianSupport
	case Paul:
		return paulSupport
	case Haar:
		return haarSupport
	case DB2:
		return float64(len(db2Filter)-1) / 2
	case DB4:
		return float64(len(db4Filter)-1) / 2
	default:
		return gaussianSupport
	}
}

func motherValue(name string, u float64) complex128 {
	switch name {
	case Morlet:
		c := math.Pow(math.Pi, -0.25) * math.Exp(-u*u/2)
		return complex(c*math.Cos(morletOmega0*u), c*math.Sin(morletOmega0*u))

	case MexicanHat:
		c := 2 / (math.Sqrt(3) * math.Pow(math.Pi, 0.25))
		return complex(c*(1-u*u)*math.Exp(-u*u/2), 0)

	case Paul:
		return paulValue(u)

	case Haar:
		switch {
		case u >= -0.5 && u < 0:
			return 1
		case u >= 0 && u < 0.5:
			return -1
		}

		return 0

	case DB2:
		return complex(cascadeValue(db2PsiTable, len(db2Filter), u), 0)

	case DB4:
		return complex(cascadeValue(db4PsiTable, len(db4Filter), u), 0)
	}

	return 0
}

// paulValue evaluates the order-4 Paul wavelet
// (2^m i^m m!)/sqrt(pi (2m)!) * (1-iu)^-(m+1). For m=4, i^m is 1.
func paulValue(u float64) complex128 {
	const m = paulOrder

	c := math.Pow(2, m) * 24 / math.Sqrt(math.Pi*40320)

	return complex(c, 0) * cmplx.Pow(complex(1, -u), complex(-(m + 1), 0))
}

// cascadeValue linearly interpolates a cascade table spanning
// [0, filterLen-1], re-centered so u=0 is the middle of the support.
func cascadeValue(table []float64, filterLen int, u float64) float64 {
	span := float64(filterLen - 1)

	pos := u + span/2
	if pos <= 0 || pos >= span {
		return 0
	}

	idx := pos / span * float64(len(table)-1)

	i := int(idx)
	if i+1 >= len(table) {
		return table[len(table)-1]
	}

	frac := idx - float64(i)

	return table[i]*(1-frac) + table[i+1]*frac
}

// cascadeTable approximates the mother wavelet on a dyadic grid: start from
// the highpass filter and repeatedly upsample and refine with the scaling
// filter. Each step halves the grid spacing.
func cascadeTable(h []float64, iterations int) []float64 {
	cur := qmf(h)

	for range iterations {
		next := make([]float64, 2*len(cur)+len(h)-2)

		for k, v := range cur {
			for n, hv := range h {
				next[2*k+n] += math.Sqrt2 * v * hv
			}
		}

		cur = next
	}

	return cur
}

// qmf derives the highpass filter g[n] = (-1)^n h[L-1-n] from a scaling
// filter.
func qmf(h []float64) []float64 {
	g := make([]float64, len(h))

	for n := range h {
		g[n] = h[len(h)-1-n]
		if n%2 == 1 {
			g[n] = -g[n]
		}
	}

	return g
}
