package polyroot

import (
	"math"
	"math/cmplx"
	"sort"
	"testing"
)

func almostEqual(valA, valB, tol float64) bool {
	if valA == valB {
		return true
	}

	diff := math.Abs(valA - valB)
	if tol > 0 && tol < 1 {
		mag := math.Max(math.Abs(valA), math.Abs(valB))
		if mag > 1 {
			return diff/mag < tol
		}
	}

	return diff < tol
}

func TestDurandKerner_Quadratic(t *testing.T) {
	// z^2 - 3z + 2 = (z-1)(z-2), roots at 1 and 2
	coeff := []complex128{1, -3, 2}

	roots, err := DurandKerner(coeff)
	if err != nil {
		t.Fatal(err)
	}

	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}

	r := [2]float64{real(roots[0]), real(roots[1])}
	if r[0] > r[1] {
		r[0], r[1] = r[1], r[0]
	}

	if !almostEqual(r[0], 1.0, 1e-10) || !almostEqual(r[1], 2.0, 1e-10) {
		t.Errorf("expected roots {1,2}, got {%v, %v}", r[0], r[1])
	}
}

func TestDurandKerner_ConjugatePair(t *testing.T) {
	// z^2 - 2*0.9*cos(0.3)*z + 0.81 has roots 0.9*e^{+-0.3i}.
	wantMag := 0.9
	wantArg := 0.3
	coeff := []complex128{
		1,
		complex(-2*wantMag*math.Cos(wantArg), 0),
		complex(wantMag*wantMag, 0),
	}

	roots, err := DurandKerner(coeff)
	if err != nil {
		t.Fatal(err)
	}

	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}

	for i, r := range roots {
		if !almostEqual(cmplx.Abs(r), wantMag, 1e-9) {
			t.Errorf("root %d magnitude: got %v, want %v", i, cmplx.Abs(r), wantMag)
		}

		if !almostEqual(math.Abs(cmplx.Phase(r)), wantArg, 1e-9) {
			t.Errorf("root %d phase: got %v, want +-%v", i, cmplx.Phase(r), wantArg)
		}
	}
}

func TestDurandKerner_Quartic(t *testing.T) {
	// (z^2 - 1)(z^2 - 4) = z^4 - 5z^2 + 4, roots: -2, -1, 1, 2
	coeff := []complex128{1, 0, -5, 0, 4}

	roots, err := DurandKerner(coeff)
	if err != nil {
		t.Fatal(err)
	}

	if len(roots) != 4 {
		t.Fatalf("expected 4 roots, got %d", len(roots))
	}

	for i, r := range roots {
		val := PolyEval(coeff, r)
		if cmplx.Abs(val) > 1e-8 {
			t.Errorf("root %d: p(%v) = %v, expected ~0", i, r, val)
		}
	}
}

func TestDurandKerner_ClusteredRoots(t *testing.T) {
	// (z - 0.9)^2 * (z - 0.8)^2 - two double roots
	r1, r2 := 0.9, 0.8
	c4 := complex(1, 0)
	c3 := complex(-2*(r1+r2), 0)
	c2 := complex(r1*r1+4*r1*r2+r2*r2, 0)
	c1 := complex(-2*r1*r2*(r1+r2), 0)
	c0 := complex(r1*r1*r2*r2, 0)
	coeff := []complex128{c4, c3, c2, c1, c0}

	roots, err := DurandKerner(coeff)
	if err != nil {
		t.Fatal(err)
	}

	for i, r := range roots {
		val := PolyEval(coeff, r)
		if cmplx.Abs(val) > 1e-6 {
			t.Errorf("clustered root %d: p(%v) = %v, expected ~0", i, r, val)
		}
	}
}

func TestDurandKerner_UnitCircleRoots(t *testing.T) {
	// z^4 - 1, roots: 1, -1, i, -i
	coeff := []complex128{1, 0, 0, 0, -1}

	roots, err := DurandKerner(coeff)
	if err != nil {
		t.Fatal(err)
	}

	for i, r := range roots {
		if !almostEqual(cmplx.Abs(r), 1.0, 1e-8) {
			t.Errorf("root %d: |r|=%v, expected 1.0", i, cmplx.Abs(r))
		}

		val := PolyEval(coeff, r)
		if cmplx.Abs(val) > 1e-7 {
			t.Errorf("root %d: p(r) = %v, expected ~0", i, val)
		}
	}
}

func TestRoots_RealCoefficients(t *testing.T) {
	// z^3 - 6z^2 + 11z - 6 = (z-1)(z-2)(z-3)
	roots, err := Roots([]float64{1, -6, 11, -6})
	if err != nil {
		t.Fatal(err)
	}

	if len(roots) != 3 {
		t.Fatalf("expected 3 roots, got %d", len(roots))
	}

	got := make([]float64, len(roots))

	for i, r := range roots {
		if math.Abs(imag(r)) > 1e-9 {
			t.Errorf("root %d should be real, got %v", i, r)
		}

		got[i] = real(r)
	}

	sort.Float64s(got)

	want := []float64{1, 2, 3}
	for i := range want {
		if !almostEqual(got[i], want[i], 1e-8) {
			t.Errorf("root %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDurandKerner_Degenerate(t *testing.T) {
	if _, err := DurandKerner([]complex128{1}); err == nil {
		t.Error("expected error for constant polynomial")
	}

	if _, err := DurandKerner([]complex128{0, 1, 2}); err == nil {
		t.Error("expected error for zero leading coefficient")
	}

	if _, err := DurandKerner(nil); err == nil {
		t.Error("expected error for empty coefficients")
	}
}

func TestPolyEval(t *testing.T) {
	// p(z) = 2z^3 - 3z + 5, p(2) = 16 - 6 + 5 = 15
	coeff := []complex128{2, 0, -3, 5}

	val := PolyEval(coeff, 2)
	if !almostEqual(real(val), 15, 1e-12) || !almostEqual(imag(val), 0, 1e-12) {
		t.Errorf("PolyEval: expected 15, got %v", val)
	}
}
