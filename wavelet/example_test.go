package wavelet_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-biosignal/wavelet"
)

func ExampleAnalyze() {
	// A resting metric with one sharp disturbance.
	signal := make([]float64, 300)
	for i := range signal {
		signal[i] = 70
	}
	signal[150] += 25

	res, err := wavelet.Analyze(signal, wavelet.Config{SampleRate: 4})
	if err != nil {
		panic(err)
	}

	ev := res.Events[0]

	fmt.Printf("wavelet: %s\n", res.WaveletUsed)
	fmt.Printf("events: %d\n", len(res.Events))
	fmt.Printf("burst near index 150: %t\n", ev.TimeIndex >= 148 && ev.TimeIndex <= 152)

	// Output:
	// wavelet: morlet
	// events: 1
	// burst near index 150: true
}

func ExampleAnalyze_mra() {
	// 72 hours of a circadian rhythm at 4 samples/hour, split into an
	// approximation and three detail bands.
	signal := make([]float64, 288)
	for i := range signal {
		t := float64(i) / 4
		signal[i] = 100 + 30*math.Sin(2*math.Pi*t/24)
	}

	res, err := wavelet.Analyze(signal, wavelet.Config{SampleRate: 4, MRALevels: 3})
	if err != nil {
		panic(err)
	}

	fmt.Printf("bands: %d\n", len(res.Components))
	fmt.Printf("decomposition wavelet: %s\n", res.MRAWavelet)
	fmt.Printf("exact reconstruction: %t\n", res.ReconstructionError < 1e-6)
	fmt.Printf("approximation share: %.0f%%\n", res.BandSummaries["approximation"].EnergyShare)

	// Output:
	// bands: 4
	// decomposition wavelet: db4
	// exact reconstruction: true
	// approximation share: 100%
}

func ExampleCatalog() {
	for _, info := range wavelet.Catalog() {
		kind := "continuous"
		if info.Orthogonal {
			kind = "orthogonal"
		}

		fmt.Printf("%-6s %s\n", info.Name, kind)
	}

	// Output:
	// morlet continuous
	// mexh   continuous
	// paul   continuous
	// haar   orthogonal
	// db2    orthogonal
	// db4    orthogonal
}
