package zfilter

import "math"

const defaultQ = 1 / math.Sqrt2

// butterworthLowpass designs a lowpass Butterworth cascade of the given
// order. Each even order contributes RBJ lowpass biquads on the Butterworth
// Q ladder; odd orders append a first-order section.
func butterworthLowpass(freq float64, order int, sampleRate float64) []section {
	if order <= 0 {
		return nil
	}

	sections := make([]section, 0, (order+1)/2)

	n2 := order / 2
	for i := n2 - 1; i >= 0; i-- {
		q := butterworthQ(order, i)
		sections = append(sections, section{coefficients: lowpassRBJ(freq, q, sampleRate)})
	}

	if order%2 != 0 {
		sections = append(sections, section{coefficients: firstOrderLowpass(freq, sampleRate)})
	}

	return sections
}

// butterworthQ returns the quality factor for section index on the
// Butterworth ladder. index ranges from 0 to (order/2 - 1).
func butterworthQ(order, index int) float64 {
	theta := math.Pi * float64(2*index+1) / (2 * float64(order))

	s := math.Sin(theta)
	if s == 0 {
		return defaultQ
	}

	return 1 / (2 * s)
}

// lowpassRBJ designs a lowpass biquad at freq with quality factor q using
// the RBJ cookbook formula.
func lowpassRBJ(freq, q, sampleRate float64) coefficients {
	w0, ok := normalizedW0(freq, sampleRate)
	if !ok {
		return coefficients{B0: 1}
	}

	q = normalizedQ(q)
	cw := math.Cos(w0)
	sw := math.Sin(w0)
	alpha := sw / (2 * q)

	b0 := (1 - cw) / 2
	b1 := 1 - cw
	b2 := (1 - cw) / 2
	a0 := 1 + alpha
	a1 := -2 * cw
	a2 := 1 - alpha

	return normalizeBiquad(b0, b1, b2, a0, a1, a2)
}

// firstOrderLowpass designs a first-order lowpass section (B2=A2=0), used
// as the tail of odd-order cascades.
func firstOrderLowpass(freq, sampleRate float64) coefficients {
	if sampleRate <= 0 || freq <= 0 || freq >= sampleRate/2 {
		return coefficients{B0: 1}
	}

	k := math.Tan(math.Pi * freq / sampleRate)
	norm := 1 / (1 + k)

	return coefficients{
		B0: k * norm,
		B1: k * norm,
		A1: (k - 1) * norm,
	}
}

func normalizedW0(freq, sampleRate float64) (float64, bool) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return 0, false
	}

	nyquist := sampleRate / 2
	if freq <= 0 || freq >= nyquist || math.IsNaN(freq) || math.IsInf(freq, 0) {
		return 0, false
	}

	return 2 * math.Pi * freq / sampleRate, true
}

func normalizedQ(q float64) float64 {
	if q <= 0 || math.IsNaN(q) || math.IsInf(q, 0) {
		return defaultQ
	}

	return q
}

func normalizeBiquad(b0, b1, b2, a0, a1, a2 float64) coefficients {
	if a0 == 0 || math.IsNaN(a0) || math.IsInf(a0, 0) {
		return coefficients{B0: 1}
	}

	return coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}
}
