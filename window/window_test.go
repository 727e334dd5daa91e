package window

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestGenerateAllTypes(t *testing.T) {
	types := []Type{
		TypeRectangular,
		TypeHann,
		TypeHamming,
		TypeBlackman,
		TypeTukey,
	}

	for _, typ := range types {
		w := Generate(typ, 64)
		if len(w) != 64 {
			t.Fatalf("type=%v len=%d, want 64", typ, len(w))
		}

		for i, v := range w {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("type=%v coefficient[%d] invalid: %v", typ, i, v)
			}
			if v < -1e-12 || v > 1+1e-12 {
				t.Fatalf("type=%v coefficient[%d] out of range: %v", typ, i, v)
			}
		}
	}
}

func TestHannKnownValues(t *testing.T) {
	w := Generate(TypeHann, 5)

	want := []float64{0, 0.5, 1, 0.5, 0}
	for i := range want {
		if !almostEqual(w[i], want[i], 1e-12) {
			t.Errorf("w[%d]: got %g, want %g", i, w[i], want[i])
		}
	}
}

func TestHammingEndpoints(t *testing.T) {
	w := Generate(TypeHamming, 33)

	if !almostEqual(w[0], 0.08, 1e-12) {
		t.Errorf("w[0]: got %g, want 0.08", w[0])
	}
	if !almostEqual(w[16], 1, 1e-12) {
		t.Errorf("center: got %g, want 1", w[16])
	}
	if !almostEqual(w[32], 0.08, 1e-12) {
		t.Errorf("w[32]: got %g, want 0.08", w[32])
	}
}

func TestTukeyLimits(t *testing.T) {
	rect := Generate(TypeRectangular, 32)
	hann := Generate(TypeHann, 32)

	zero := Generate(TypeTukey, 32, WithAlpha(0))
	one := Generate(TypeTukey, 32, WithAlpha(1))

	for i := range rect {
		if !almostEqual(zero[i], rect[i], 1e-12) {
			t.Fatalf("alpha=0 should be rectangular at %d: %g vs %g", i, zero[i], rect[i])
		}
		if !almostEqual(one[i], hann[i], 1e-12) {
			t.Fatalf("alpha=1 should be Hann at %d: %g vs %g", i, one[i], hann[i])
		}
	}
}

func TestPeriodicDiffersFromSymmetric(t *testing.T) {
	a := Generate(TypeHann, 16)

	b := Generate(TypeHann, 16, WithPeriodic())
	if len(a) != 16 || len(b) != 16 {
		t.Fatalf("unexpected lengths: %d %d", len(a), len(b))
	}

	if almostEqual(a[15], b[15], 1e-12) {
		t.Fatal("expected different end coefficient for periodic form")
	}
}

func TestApplyMatchesGenerate(t *testing.T) {
	buf := make([]float64, 32)
	for i := range buf {
		buf[i] = float64(i%7) - 3
	}

	want := make([]float64, len(buf))
	coeffs := Generate(TypeBlackman, len(buf))
	for i := range want {
		want[i] = buf[i] * coeffs[i]
	}

	Apply(TypeBlackman, buf)

	for i := range buf {
		if !almostEqual(buf[i], want[i], 1e-12) {
			t.Fatalf("Apply mismatch at %d: got %g, want %g", i, buf[i], want[i])
		}
	}
}

func TestApplyCoefficientsMismatch(t *testing.T) {
	_, err := ApplyCoefficients(make([]float64, 8), make([]float64, 4))
	if !errors.Is(err, errMismatchedLength) {
		t.Fatalf("expected length mismatch error, got %v", err)
	}
}

func TestCoherentGain(t *testing.T) {
	if g := CoherentGain(Generate(TypeRectangular, 64)); !almostEqual(g, 1, 1e-12) {
		t.Errorf("rectangular gain: got %g, want 1", g)
	}

	// Hann coherent gain approaches 0.5 for long windows.
	if g := CoherentGain(Generate(TypeHann, 4096, WithPeriodic())); !almostEqual(g, 0.5, 1e-3) {
		t.Errorf("hann gain: got %g, want ~0.5", g)
	}

	if g := CoherentGain(nil); g != 0 {
		t.Errorf("empty gain: got %g, want 0", g)
	}
}

func TestGenerateZeroLength(t *testing.T) {
	if w := Generate(TypeHann, 0); w != nil {
		t.Fatalf("expected nil for zero length, got %v", w)
	}
}
