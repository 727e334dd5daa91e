package zfilter_test

import (
	"fmt"

	"github.com/cwbudde/algo-biosignal/internal/testutil"
	"github.com/cwbudde/algo-biosignal/zfilter"
)

// Smooth a noisy daily rhythm sampled 4 times per hour, letting the lens
// pick its own cutoff from the dominant frequency.
func ExampleApply() {
	signal := testutil.Mix(
		testutil.Rhythm(100, 30, 24, 4, 288),
		testutil.DeterministicNoise(7, 5, 288),
	)

	res, err := zfilter.Apply(signal, zfilter.Config{SampleRate: 4})
	if err != nil {
		panic(err)
	}

	fmt.Printf("same length: %t\n", len(res.Filtered) == len(signal))
	fmt.Printf("cutoff: %.3f cycles/hour\n", res.CutoffFreq)
	fmt.Printf("noise reduced: %t\n", res.NoiseReduction > 50)

	// Output:
	// same length: true
	// cutoff: 0.125 cycles/hour
	// noise reduced: true
}
