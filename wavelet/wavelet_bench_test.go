package wavelet

import (
	"testing"

	"github.com/cwbudde/algo-biosignal/internal/testutil"
)

func benchSignal() []float64 {
	signal := testutil.Mix(
		testutil.Rhythm(100, 30, 24, 4, 288),
		testutil.DeterministicNoise(1, 3, 288),
	)
	signal[96] += 40

	return signal
}

func BenchmarkAnalyze(b *testing.B) {
	signal := benchSignal()

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, err := Analyze(signal, Config{SampleRate: 4})
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAnalyze_AutoSelect(b *testing.B) {
	signal := benchSignal()

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, err := Analyze(signal, Config{SampleRate: 4, AutoSelect: true})
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAnalyze_MRA(b *testing.B) {
	signal := benchSignal()

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, err := Analyze(signal, Config{SampleRate: 4, MRALevels: 4, Denoise: true})
		if err != nil {
			b.Fatal(err)
		}
	}
}
