// Package stats provides time-domain descriptive statistics for sampled
// biological signals.
package stats

import "math"

// Stats holds time-domain signal statistics.
type Stats struct {
	Length        int
	Mean          float64
	RMS           float64
	Max           float64
	MaxPos        int
	Min           float64
	MinPos        int
	Range         float64 // max - min
	Energy        float64 // sum of squares
	ZeroCrossings int     // sign changes around the mean
	Variance      float64 // population variance
	Skewness      float64
	Kurtosis      float64 // excess kurtosis
}

// Calculate computes all time-domain statistics in a single pass using
// Welford's online algorithm for numerical stability on higher-order moments.
//
// Zero crossings are counted on the mean-removed signal in a second cheap
// pass, so a biological signal riding on a large baseline (heart rate around
// 70 bpm, body temperature around 37 degrees) still reports its oscillation
// count rather than zero.
func Calculate(signal []float64) Stats {
	n := len(signal)
	if n == 0 {
		return Stats{}
	}

	// Welford accumulators.
	var (
		mean float64
		m2   float64
		m3   float64
		m4   float64
	)

	var (
		sumSq  float64
		maxVal = signal[0]
		maxPos int
		minVal = signal[0]
		minPos int
	)

	for i, x := range signal {
		ni := float64(i + 1) // 1-based count after this sample
		delta := x - mean
		deltaN := delta / ni
		deltaN2 := deltaN * deltaN
		term1 := delta * deltaN * float64(i)

		// M4 must be updated before M3, and M3 before M2.
		m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*m2 - 4*deltaN*m3
		m3 += term1*deltaN*(float64(i)-1) - 3*deltaN*m2
		m2 += term1
		mean += deltaN

		sumSq += x * x

		if x > maxVal {
			maxVal = x
			maxPos = i
		}

		if x < minVal {
			minVal = x
			minPos = i
		}
	}

	nf := float64(n)
	variance := m2 / nf

	var skewness, kurtosis float64
	if variance > 0 {
		skewness = (m3 / nf) / (variance * math.Sqrt(variance))
		kurtosis = (m4/nf)/(variance*variance) - 3
	}

	// Mean-relative zero crossings.
	var crossings int

	for i := 1; i < n; i++ {
		if (signal[i-1]-mean)*(signal[i]-mean) < 0 {
			crossings++
		}
	}

	return Stats{
		Length:        n,
		Mean:          mean,
		RMS:           math.Sqrt(sumSq / nf),
		Max:           maxVal,
		MaxPos:        maxPos,
		Min:           minVal,
		MinPos:        minPos,
		Range:         maxVal - minVal,
		Energy:        sumSq,
		ZeroCrossings: crossings,
		Variance:      variance,
		Skewness:      skewness,
		Kurtosis:      kurtosis,
	}
}

// Mean returns the arithmetic mean of the signal using Kahan summation.
func Mean(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sum, c float64
	for _, x := range signal {
		y := x - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}

	return sum / float64(len(signal))
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sumSq float64
	for _, x := range signal {
		sumSq += x * x
	}

	return math.Sqrt(sumSq / float64(len(signal)))
}

// Variance returns the population variance of the signal.
func Variance(signal []float64) float64 {
	_, v, _, _ := Moments(signal)
	return v
}

// Moments returns the mean, population variance, skewness, and excess kurtosis
// of the signal using Welford's online algorithm.
func Moments(signal []float64) (mean, variance, skewness, kurtosis float64) {
	n := len(signal)
	if n == 0 {
		return 0, 0, 0, 0
	}

	var m2, m3, m4 float64

	for i, x := range signal {
		ni := float64(i + 1)
		delta := x - mean
		deltaN := delta / ni
		deltaN2 := deltaN * deltaN
		term1 := delta * deltaN * float64(i)

		m4 += term1*deltaN2*(ni*ni-3*ni+3) + 6*deltaN2*m2 - 4*deltaN*m3
		m3 += term1*deltaN*(float64(i)-1) - 3*deltaN*m2
		m2 += term1
		mean += deltaN
	}

	nf := float64(n)

	variance = m2 / nf
	if variance > 0 {
		skewness = (m3 / nf) / (variance * math.Sqrt(variance))
		kurtosis = (m4/nf)/(variance*variance) - 3
	}

	return mean, variance, skewness, kurtosis
}

// ZeroCrossings returns the number of mean-relative zero crossings.
// A crossing is counted when consecutive mean-removed samples have
// opposite signs.
func ZeroCrossings(signal []float64) int {
	if len(signal) < 2 {
		return 0
	}

	mean := Mean(signal)

	var count int

	for i := 1; i < len(signal); i++ {
		if (signal[i-1]-mean)*(signal[i]-mean) < 0 {
			count++
		}
	}

	return count
}

// DiffVariance returns the population variance of the first difference
// of the signal. It measures sample-to-sample roughness: white noise has a
// large first-difference variance while a slowly varying trend has almost
// none, which makes it a robust smoothness score for filter evaluation.
func DiffVariance(signal []float64) float64 {
	if len(signal) < 2 {
		return 0
	}

	diff := make([]float64, len(signal)-1)
	for i := 1; i < len(signal); i++ {
		diff[i-1] = signal[i] - signal[i-1]
	}

	return Variance(diff)
}

// DominantFrequency estimates the strongest oscillation frequency from the
// mean-relative zero-crossing count. Each full cycle produces two crossings,
// so frequency = crossings / (2 * duration). The estimate is coarse but cheap
// and needs no transform, which suits per-band summaries. Returns 0 for
// signals shorter than two samples or with no crossings.
func DominantFrequency(signal []float64, sampleRate float64) float64 {
	n := len(signal)
	if n < 2 || sampleRate <= 0 {
		return 0
	}

	crossings := ZeroCrossings(signal)
	if crossings == 0 {
		return 0
	}

	duration := float64(n-1) / sampleRate

	return float64(crossings) / (2 * duration)
}
