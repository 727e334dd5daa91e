package wavelet

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-biosignal/internal/testutil"
)

func TestAnalyzeShapes(t *testing.T) {
	signal := testutil.Rhythm(100, 30, 24, 4, 288)

	res, err := Analyze(signal, Config{SampleRate: 4})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if res.WaveletUsed != Morlet {
		t.Errorf("WaveletUsed = %q, want default %q", res.WaveletUsed, Morlet)
	}

	if len(res.Scales) != defaultNumScales {
		t.Fatalf("len(Scales) = %d, want %d", len(res.Scales), defaultNumScales)
	}

	if len(res.Coefficients) != len(res.Scales) || len(res.TimeFreqMap) != len(res.Scales) {
		t.Fatalf("rows: coeffs %d, map %d, want %d", len(res.Coefficients), len(res.TimeFreqMap), len(res.Scales))
	}

	for s := range res.Coefficients {
		if len(res.Coefficients[s]) != len(signal) {
			t.Fatalf("scale %d: row length %d, want %d", s, len(res.Coefficients[s]), len(signal))
		}

		testutil.RequireFinite(t, res.Coefficients[s])
		testutil.RequireFinite(t, res.TimeFreqMap[s])
	}
}

func TestScaleGrid(t *testing.T) {
	scales := scaleGrid(288, 32)

	if len(scales) != 32 {
		t.Fatalf("len = %d, want 32", len(scales))
	}

	if scales[0] != minScale {
		t.Errorf("first scale = %g, want %g", scales[0], minScale)
	}

	if math.Abs(scales[len(scales)-1]-72) > 1e-9 {
		t.Errorf("last scale = %g, want 72", scales[len(scales)-1])
	}

	for i := 1; i < len(scales); i++ {
		if scales[i] <= scales[i-1] {
			t.Fatalf("scales not ascending at %d: %g <= %g", i, scales[i], scales[i-1])
		}
	}

	if got := scaleGrid(5, 32); len(got) != 2 {
		t.Errorf("short record: %d scales, want 2", len(got))
	}

	if got := scaleGrid(1, 32); len(got) != 1 || got[0] != minScale {
		t.Errorf("single sample: scales = %v, want [%g]", got, minScale)
	}
}

func TestAnalyzeDetectsTransient(t *testing.T) {
	signal := testutil.DC(70, 300)
	signal[150] += 25

	res, err := Analyze(signal, Config{SampleRate: 4})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if len(res.Events) != 1 {
		t.Fatalf("got %d events, want 1: %+v", len(res.Events), res.Events)
	}

	ev := res.Events[0]

	if d := ev.TimeIndex - 150; d < -2 || d > 2 {
		t.Errorf("TimeIndex = %d, want ~150", ev.TimeIndex)
	}

	if ev.Intensity <= 1 {
		t.Errorf("Intensity = %g, want > 1", ev.Intensity)
	}

	if ev.DurationSamples < 1 {
		t.Errorf("DurationSamples = %d, want >= 1", ev.DurationSamples)
	}
}

func TestAnalyzeConstantNoEvents(t *testing.T) {
	res, err := Analyze(testutil.DC(100, 200), Config{SampleRate: 4})
	if err != nil {
		t.Fatalf("constant input must not fail: %v", err)
	}

	if len(res.Events) != 0 {
		t.Errorf("got %d events on a constant signal, want none", len(res.Events))
	}

	if res.SelectionScore.Total != 0 {
		t.Errorf("SelectionScore.Total = %g, want 0 for a flat transform", res.SelectionScore.Total)
	}
}

func TestAnalyzeAutoSelectDeterministic(t *testing.T) {
	signal := testutil.Mix(
		testutil.Rhythm(100, 20, 24, 4, 256),
		testutil.DeterministicNoise(5, 2, 256),
	)
	signal[64] += 40

	first, err := Analyze(signal, Config{SampleRate: 4, AutoSelect: true})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	second, err := Analyze(signal, Config{SampleRate: 4, AutoSelect: true})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if first.WaveletUsed != second.WaveletUsed {
		t.Fatalf("selection not deterministic: %q vs %q", first.WaveletUsed, second.WaveletUsed)
	}

	if first.SelectionScore != second.SelectionScore {
		t.Fatalf("scores not deterministic: %+v vs %+v", first.SelectionScore, second.SelectionScore)
	}

	if len(first.Alternatives) != len(catalog) {
		t.Fatalf("got %d alternatives, want %d", len(first.Alternatives), len(catalog))
	}

	if first.Alternatives[0].Name != first.WaveletUsed {
		t.Errorf("winner %q is not first in Alternatives (%q)", first.WaveletUsed, first.Alternatives[0].Name)
	}

	if first.Alternatives[0].Score != first.SelectionScore {
		t.Errorf("winner score mismatch: %+v vs %+v", first.Alternatives[0].Score, first.SelectionScore)
	}

	for i := 1; i < len(first.Alternatives); i++ {
		if first.Alternatives[i].Score.Total > first.Alternatives[i-1].Score.Total {
			t.Fatalf("alternatives not sorted descending at %d", i)
		}
	}

	for _, alt := range first.Alternatives {
		for name, v := range map[string]float64{
			"total":                  alt.Score.Total,
			"energy concentration":   alt.Score.EnergyConcentration,
			"time localization":      alt.Score.TimeLocalization,
			"frequency localization": alt.Score.FrequencyLocalization,
			"edge quality":           alt.Score.EdgeQuality,
		} {
			if v < 0 || v > 1 {
				t.Errorf("%s: %s = %g, want within [0,1]", alt.Name, name, v)
			}
		}
	}
}

func TestAnalyzeManualModeScoresUsedWavelet(t *testing.T) {
	signal := testutil.DeterministicSine(0.1, 4, 1, 256)

	res, err := Analyze(signal, Config{SampleRate: 4, Wavelet: MexicanHat})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if res.WaveletUsed != MexicanHat {
		t.Errorf("WaveletUsed = %q, want %q", res.WaveletUsed, MexicanHat)
	}

	if res.Alternatives != nil {
		t.Errorf("Alternatives = %v, want nil in manual mode", res.Alternatives)
	}

	if res.SelectionScore.Total <= 0 {
		t.Errorf("SelectionScore.Total = %g, want > 0 for a live signal", res.SelectionScore.Total)
	}
}

func TestAnalyzeUnknownWavelet(t *testing.T) {
	_, err := Analyze([]float64{1, 2, 3}, Config{Wavelet: "sym9"})
	if !errors.Is(err, ErrUnknownWavelet) {
		t.Fatalf("expected ErrUnknownWavelet, got %v", err)
	}
}

func TestAnalyzeEmpty(t *testing.T) {
	if _, err := Analyze(nil, Config{}); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestAnalyzeShortInputs(t *testing.T) {
	for _, n := range []int{1, 2, 3, 5, 7} {
		signal := testutil.DeterministicSine(0.2, 1, 1, n)

		res, err := Analyze(signal, Config{})
		if err != nil {
			t.Fatalf("n=%d: Analyze failed: %v", n, err)
		}

		for s := range res.Coefficients {
			if len(res.Coefficients[s]) != n {
				t.Fatalf("n=%d: row length %d", n, len(res.Coefficients[s]))
			}

			testutil.RequireFinite(t, res.Coefficients[s])
		}
	}
}

func TestAnalyzeHighFrequencyCompletes(t *testing.T) {
	signal := make([]float64, 128)
	for i := range signal {
		signal[i] = 1
		if i%2 == 1 {
			signal[i] = -1
		}
	}

	res, err := Analyze(signal, Config{SampleRate: 1})
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	for s := range res.Coefficients {
		testutil.RequireFinite(t, res.Coefficients[s])
	}
}

func TestCatalog(t *testing.T) {
	got := Catalog()

	wantOrder := []string{Morlet, MexicanHat, Paul, Haar, DB2, DB4}
	if len(got) != len(wantOrder) {
		t.Fatalf("catalog has %d entries, want %d", len(got), len(wantOrder))
	}

	for i, info := range got {
		if info.Name != wantOrder[i] {
			t.Errorf("entry %d = %q, want %q", i, info.Name, wantOrder[i])
		}

		wantOrth := info.Name == Haar || info.Name == DB2 || info.Name == DB4
		if info.Orthogonal != wantOrth {
			t.Errorf("%s: Orthogonal = %t, want %t", info.Name, info.Orthogonal, wantOrth)
		}
	}

	got[0].Name = "mutated"

	if fresh := Catalog(); fresh[0].Name != Morlet {
		t.Error("Catalog must return an independent copy")
	}
}

func TestKernelZeroMeanUnitEnergy(t *testing.T) {
	for _, info := range Catalog() {
		k := kernelForScale(info.Name, 8)

		var sum complex128
		energy := 0.0

		for _, v := range k {
			sum += v
			energy += real(v)*real(v) + imag(v)*imag(v)
		}

		if math.Abs(real(sum)) > 1e-9 || math.Abs(imag(sum)) > 1e-9 {
			t.Errorf("%s: kernel mean %v, want 0", info.Name, sum)
		}

		if math.Abs(energy-1) > 1e-9 {
			t.Errorf("%s: kernel energy %g, want 1", info.Name, energy)
		}
	}
}
