package gain

import (
	"math"
	"testing"
)

func TestGammaRoundTrip(t *testing.T) {
	// Gamma curves are steep near v=0 (derivative of v^(1/gamma) blows
	// up there), which amplifies piecewise-linear quantisation error far
	// beyond the table's nominal 1/N spacing; the round-trip invariant
	// is only meaningful away from that singular region.
	p, err := NewGamma(2.2, 4096)
	if err != nil {
		t.Fatalf("NewGamma: %v", err)
	}
	for _, v := range []float64{0.2, 0.35, 0.5, 0.65, 0.8, 0.95, 1} {
		got := p.ApplyInverse(p.ApplyForward(v))
		if math.Abs(got-v) > 0.01 {
			t.Errorf("round trip at %v: got %v, tolerance exceeded", v, got)
		}
	}
}

func TestIdentityPairIsNoop(t *testing.T) {
	p := Identity()
	if p.ApplyForward(0.37) != 0.37 {
		t.Errorf("identity forward should pass through")
	}
	if p.ApplyInverse(0.61) != 0.61 {
		t.Errorf("identity inverse should pass through")
	}
}

func TestSRGBRoundTrip(t *testing.T) {
	p, err := NewSRGB(4096)
	if err != nil {
		t.Fatalf("NewSRGB: %v", err)
	}
	for _, v := range []float64{0, 0.02, 0.2, 0.5, 0.8, 1} {
		got := p.ApplyInverse(p.ApplyForward(v))
		if math.Abs(got-v) > 0.002 {
			t.Errorf("round trip at %v: got %v", v, got)
		}
	}
}

func TestNewTableRejectsZeroPrecision(t *testing.T) {
	if _, err := NewTable(0, func(v float64) float64 { return v }); err == nil {
		t.Fatal("expected error for zero precision")
	}
}

func TestEMORMonotonic(t *testing.T) {
	p, err := NewEMOR([]float64{0.4, -0.9, 0.2}, 1024)
	if err != nil {
		t.Fatalf("NewEMOR: %v", err)
	}
	prevF, prevI := -1.0, -1.0
	for i := 0; i <= 100; i++ {
		v := float64(i) / 100
		f := p.ApplyForward(v)
		inv := p.ApplyInverse(v)
		if f < prevF {
			t.Fatalf("forward curve not monotonic at v=%v: %v < %v", v, f, prevF)
		}
		if inv < prevI {
			t.Fatalf("inverse curve not monotonic at v=%v: %v < %v", v, inv, prevI)
		}
		prevF, prevI = f, inv
	}
}

func TestNewEMORRejectsEmptyCoeffs(t *testing.T) {
	if _, err := NewEMOR(nil, 1024); err == nil {
		t.Fatal("expected error for empty coefficient vector")
	}
}
