package wavelet

import (
	"math"
	"sort"
)

// Bursts must clear the background by this many MADs to count as events.
const eventMADFactor = 3.0

// Event is a localized burst of transform energy.
type Event struct {
	// TimeIndex of the energy peak within the burst.
	TimeIndex int
	// Intensity is the peak energy relative to the detection threshold.
	Intensity float64
	// DurationSamples is the length of the above-threshold run.
	DurationSamples int
}

// detectEvents scans the scale-summed coefficient energy for contiguous
// runs above an adaptive median + k*MAD threshold. A constant signal has a
// flat energy profile and produces no events.
func detectEvents(coeffs [][]float64) []Event {
	if len(coeffs) == 0 || len(coeffs[0]) == 0 {
		return nil
	}

	n := len(coeffs[0])

	profile := make([]float64, n)
	for _, row := range coeffs {
		for t, c := range row {
			profile[t] += c * c
		}
	}

	med := median(profile)

	dev := make([]float64, n)
	for t, e := range profile {
		dev[t] = math.Abs(e - med)
	}

	threshold := med + eventMADFactor*median(dev)
	if threshold <= 0 {
		// Flat-background degenerate case: fall back to a fraction of the
		// peak so intensities stay finite.
		peak := 0.0
		for _, e := range profile {
			if e > peak {
				peak = e
			}
		}

		if peak <= 0 {
			return nil
		}

		threshold = 0.1 * peak
	}

	var events []Event

	start := -1
	peakIdx := -1
	peakVal := 0.0

	for t := 0; t <= n; t++ {
		above := t < n && profile[t] > threshold

		if above {
			if start < 0 {
				start = t
				peakIdx = t
				peakVal = profile[t]
			} else if profile[t] > peakVal {
				peakIdx = t
				peakVal = profile[t]
			}

			continue
		}

		if start >= 0 {
			events = append(events, Event{
				TimeIndex:       peakIdx,
				Intensity:       peakVal / threshold,
				DurationSamples: t - start,
			})

			start = -1
		}
	}

	return events
}

func median(buf []float64) float64 {
	if len(buf) == 0 {
		return 0
	}

	tmp := make([]float64, len(buf))
	copy(tmp, buf)

	sort.Float64s(tmp)

	mid := len(tmp) / 2
	if len(tmp)%2 == 0 {
		return (tmp[mid-1] + tmp[mid]) / 2
	}

	return tmp[mid]
}
