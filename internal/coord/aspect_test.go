package coord

import (
	"math"
	"testing"
)

func TestReconcileScaleIdentityWhenUnchanged(t *testing.T) {
	k := ReconcileScale(1.5, 1.0, 1.5, 1.0)
	if math.Abs(k-1) > 1e-12 {
		t.Errorf("expected k=1 for identical param/input, got %v", k)
	}
}

func TestScaleCoefficientDegreeZeroIsUnscaled(t *testing.T) {
	got := ScaleCoefficient(0.3, 0, 2.0)
	if got != 0.3 {
		t.Errorf("degree-0 coefficient should be invariant to k, got %v", got)
	}
}

func TestPixelNormalizedRoundTrip(t *testing.T) {
	width, height := 100, 60
	for _, px := range []struct{ x, y int }{{0, 0}, {99, 59}, {50, 30}} {
		p := NormalizedFromPixel(px.x, px.y, width, height)
		xs, ys := PixelFromNormalized(p, width, height)
		if math.Abs(xs-float64(px.x)) > 1e-9 || math.Abs(ys-float64(px.y)) > 1e-9 {
			t.Errorf("round trip (%d,%d) -> (%v,%v)", px.x, px.y, xs, ys)
		}
	}
}
