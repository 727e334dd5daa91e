package wavelet

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

const (
	minScale = 2.0

	// Magnitudes below this fraction of the signal norm are FFT round-off,
	// not structure, and are flushed to zero.
	roundoffFloor = 1e-12
)

// scaleGrid builds the log-spaced scale axis from 2 samples up to a quarter
// of the record, with at most numScales entries.
func scaleGrid(n, numScales int) []float64 {
	maxS := float64(n) / 4
	if maxS < minScale {
		maxS = minScale
	}

	count := numScales
	if half := n / 2; count > half {
		count = half
	}

	if count <= 1 {
		return []float64{minScale}
	}

	out := make([]float64, count)

	ratio := maxS / minScale
	for i := range out {
		out[i] = minScale * math.Pow(ratio, float64(i)/float64(count-1))
	}

	return out
}

// cwt computes the continuous wavelet transform by FFT convolution, one
// kernel per scale against a single transform of the signal. It returns
// the coefficient magnitudes |W| and the energy density map |W|^2/s, both
// indexed [scale][time] and aligned with the input.
func cwt(signal []float64, name string, scales []float64) (coeffs, tfMap [][]float64, err error) {
	n := len(signal)

	maxHalf := int(math.Ceil(scales[len(scales)-1] * supportHalfWidth(name)))
	if maxHalf < 1 {
		maxHalf = 1
	}

	fftSize := nextPowerOf2(n + 2*maxHalf)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, nil, fmt.Errorf("wavelet: fft plan: %w", err)
	}

	input := make([]complex128, fftSize)
	for i, v := range signal {
		input[i] = complex(v, 0)
	}

	spectrum := make([]complex128, fftSize)
	if err := plan.Forward(spectrum, input); err != nil {
		return nil, nil, fmt.Errorf("wavelet: fft: %w", err)
	}

	floor := roundoffFloor * math.Sqrt(energy(signal))

	coeffs = make([][]float64, len(scales))
	tfMap = make([][]float64, len(scales))

	kbuf := make([]complex128, fftSize)
	kspec := make([]complex128, fftSize)
	prod := make([]complex128, fftSize)
	conv := make([]complex128, fftSize)
	re := make([]float64, n)
	im := make([]float64, n)

	for si, scale := range scales {
		kernel := kernelForScale(name, scale)
		half := (len(kernel) - 1) / 2

		clear(kbuf)
		copy(kbuf, kernel)

		if err := plan.Forward(kspec, kbuf); err != nil {
			return nil, nil, fmt.Errorf("wavelet: fft: %w", err)
		}

		for i := range prod {
			prod[i] = spectrum[i] * kspec[i]
		}

		if err := plan.Inverse(conv, prod); err != nil {
			return nil, nil, fmt.Errorf("wavelet: inverse fft: %w", err)
		}

		// Center the linear convolution on the input range.
		for t := 0; t < n; t++ {
			w := conv[t+half]
			re[t] = real(w)
			im[t] = imag(w)
		}

		mag := make([]float64, n)
		vecmath.Magnitude(mag, re, im)

		for t, m := range mag {
			if m < floor {
				mag[t] = 0
			}
		}

		density := make([]float64, n)
		for t, m := range mag {
			density[t] = m * m / scale
		}

		coeffs[si] = mag
		tfMap[si] = density
	}

	return coeffs, tfMap, nil
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p *= 2
	}

	return p
}
