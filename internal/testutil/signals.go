package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freq, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freq / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// Rhythm generates baseline + amplitude*sin(2*pi*t/period), the canonical
// shape of a rhythmic biological metric such as core temperature or heart
// rate. Period and sampleRate share the same time unit.
func Rhythm(baseline, amplitude, period, sampleRate float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		t := float64(i) / sampleRate
		out[i] = baseline + amplitude*math.Sin(2*math.Pi*t/period)
	}
	return out
}

// DampedSine generates amplitude*exp(-decay*t)*sin(2*pi*freq*t): the impulse
// response of a stable second-order system.
func DampedSine(freq, sampleRate, amplitude, decay float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		t := float64(i) / sampleRate
		out[i] = amplitude * math.Exp(-decay*t) * math.Sin(2*math.Pi*freq*t)
	}
	return out
}

// GrowingExponential generates amplitude*exp(rate*t) for rate > 0: the shape
// of a runaway (unstable) process.
func GrowingExponential(rate, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		t := float64(i) / sampleRate
		out[i] = amplitude * math.Exp(rate*t)
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Ones generates an all-ones signal.
func Ones(length int) []float64 {
	return DC(1, length)
}

// Mix sums signals element-wise, truncated to the shortest input.
func Mix(signals ...[]float64) []float64 {
	if len(signals) == 0 {
		return nil
	}

	n := len(signals[0])
	for _, s := range signals[1:] {
		if len(s) < n {
			n = len(s)
		}
	}

	out := make([]float64, n)
	for _, s := range signals {
		for i := 0; i < n; i++ {
			out[i] += s[i]
		}
	}
	return out
}
