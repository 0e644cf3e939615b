package transform

import (
	"context"
	"math"
	"testing"

	"github.com/anvik/lenscorrect/internal/colour"
	"github.com/anvik/lenscorrect/internal/gain"
	"github.com/anvik/lenscorrect/internal/geom"
	"github.com/anvik/lenscorrect/internal/interp"
	"github.com/anvik/lenscorrect/internal/raster"
)

func newSquareBuffer(t *testing.T, n int, fn func(x, y int) (r, g, b uint8)) *raster.Buffer[uint8] {
	t.Helper()
	buf, err := raster.NewBuffer[uint8](raster.RGB8Packed, n, n)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	wv, err := raster.NewWriteView(buf)
	if err != nil {
		t.Fatalf("NewWriteView: %v", err)
	}
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			r, g, b := fn(x, y)
			wv.Set(x, y, raster.R, r)
			wv.Set(x, y, raster.G, g)
			wv.Set(x, y, raster.B, b)
		}
	}
	return buf
}

// Scenario 1: identity transform — empty queues, nearest, O=1.
func TestDriverIdentityTransform(t *testing.T) {
	n := 4
	src := newSquareBuffer(t, n, func(x, y int) (uint8, uint8, uint8) {
		return uint8(x * 16), uint8(y * 16), uint8((x + y) * 8)
	})
	readView, err := raster.NewReadView(src)
	if err != nil {
		t.Fatalf("NewReadView: %v", err)
	}
	dst, err := raster.NewBuffer[uint8](raster.RGB8Packed, n, n)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	writeView, err := raster.NewWriteView(dst)
	if err != nil {
		t.Fatalf("NewWriteView: %v", err)
	}

	nn := interp.NewNearest(readView, 0)
	drv, err := New[uint8](readView, writeView, nn, geom.NewQueue(), colour.NewQueue(), gain.Identity(), 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := drv.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	out, err := raster.NewReadView(dst)
	if err != nil {
		t.Fatalf("NewReadView: %v", err)
	}
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			for _, c := range []raster.Channel{raster.R, raster.G, raster.B} {
				got := out.At(x, y, c)
				want := readView.At(x, y, c)
				if got != want {
					t.Errorf("(%d,%d) ch=%d: got %d, want %d", x, y, c, got, want)
				}
			}
		}
	}
}

// Scenario 2: PTLens with d=1 and all other coefficients zero is the
// identity geometric transform.
func TestDriverPTLensIdentityCoefficients(t *testing.T) {
	n := 20
	src := newSquareBuffer(t, n, func(x, y int) (uint8, uint8, uint8) {
		return uint8((x * 37) % 251), uint8((y * 53) % 251), uint8(((x + y) * 11) % 251)
	})
	readView, err := raster.NewReadView(src)
	if err != nil {
		t.Fatalf("NewReadView: %v", err)
	}
	dst, err := raster.NewBuffer[uint8](raster.RGB8Packed, n, n)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	writeView, err := raster.NewWriteView(dst)
	if err != nil {
		t.Fatalf("NewWriteView: %v", err)
	}

	one := 1.0
	model, err := geom.NewPTLens(3, []geom.PTLensCoeffs{
		{A: 0, B: 0, C: 0, D: &one},
		{A: 0, B: 0, C: 0, D: &one},
		{A: 0, B: 0, C: 0, D: &one},
	}, 0, 0)
	if err != nil {
		t.Fatalf("NewPTLens: %v", err)
	}
	q := geom.NewQueue()
	q.Add(model)

	bl := interp.NewBilinear(readView, 0)
	drv, err := New[uint8](readView, writeView, bl, q, colour.NewQueue(), gain.Identity(), 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := drv.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	out, err := raster.NewReadView(dst)
	if err != nil {
		t.Fatalf("NewReadView: %v", err)
	}
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			for _, c := range []raster.Channel{raster.R, raster.G, raster.B} {
				got := int(out.At(x, y, c))
				want := int(readView.At(x, y, c))
				if diff := got - want; diff > 1 || diff < -1 {
					t.Errorf("(%d,%d) ch=%d: got %d, want %d (diff %d)", x, y, c, got, want, diff)
				}
			}
		}
	}
}

// Scenario 5: vignetting compensation brightens the corners relative to
// the centre, matching the closed-form gain ratio within 0.5%.
func TestDriverVignettingCompensationBrightensCorners(t *testing.T) {
	n := 65 // odd so the centre pixel sits at exact normalised (0,0)
	buf, err := raster.NewBuffer[uint16](raster.RGB16Packed, n, n)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	wv, err := raster.NewWriteView(buf)
	if err != nil {
		t.Fatalf("NewWriteView: %v", err)
	}
	// Kept well under 1/gain so the corner's compensated output never
	// clips against the [0,1] accumulator clamp.
	mid := uint16(19661) // 0.3 of full scale, rounded
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			wv.Set(x, y, raster.R, mid)
			wv.Set(x, y, raster.G, mid)
			wv.Set(x, y, raster.B, mid)
		}
	}
	readView, err := raster.NewReadView(buf)
	if err != nil {
		t.Fatalf("NewReadView: %v", err)
	}
	dst, err := raster.NewBuffer[uint16](raster.RGB16Packed, n, n)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	writeView, err := raster.NewWriteView(dst)
	if err != nil {
		t.Fatalf("NewWriteView: %v", err)
	}

	c := -0.3
	vm, err := colour.NewVignetting(3, []colour.VignettingCoeffs{{A: 0, B: 0, C: c}}, 0, 0)
	if err != nil {
		t.Fatalf("NewVignetting: %v", err)
	}
	cq := colour.NewQueue()
	cq.Add(vm)

	bl := interp.NewBilinear(readView, 0)
	drv, err := New[uint16](readView, writeView, bl, geom.NewQueue(), cq, gain.Identity(), 1)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := drv.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	out, err := raster.NewReadView(dst)
	if err != nil {
		t.Fatalf("NewReadView: %v", err)
	}
	centre := float64(out.At(n/2, n/2, raster.R))
	corner := float64(out.At(0, 0, raster.R))
	gotRatio := corner / centre

	aspect := 1.0
	rCorner2 := aspect*aspect + 1 // normalised corner at (-A,-1): r^2 = A^2+1
	wantRatio := 1 / (1 + c*rCorner2)

	if math.Abs(gotRatio-wantRatio)/wantRatio > 0.005 {
		t.Errorf("corner/centre ratio = %v, want ~%v", gotRatio, wantRatio)
	}
	if corner <= centre {
		t.Errorf("expected corner (%v) brighter than centre (%v)", corner, centre)
	}
}

// Scenario 6: Lanczos with support 1 matches bilinear within 1 LSB at
// 16-bit storage.
func TestDriverLanczosSupportOneMatchesBilinear(t *testing.T) {
	n := 12
	buf, err := raster.NewBuffer[uint16](raster.RGB16Packed, n, n)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	wv, err := raster.NewWriteView(buf)
	if err != nil {
		t.Fatalf("NewWriteView: %v", err)
	}
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			v := uint16((x*7 + y*13) % 60000)
			wv.Set(x, y, raster.R, v)
			wv.Set(x, y, raster.G, v)
			wv.Set(x, y, raster.B, v)
		}
	}
	readView, err := raster.NewReadView(buf)
	if err != nil {
		t.Fatalf("NewReadView: %v", err)
	}

	k, err := geom.NewScaler(3, []float64{1.1, 1.1, 1.1}, 0.1, -0.05)
	if err != nil {
		t.Fatalf("NewScaler: %v", err)
	}
	q := geom.NewQueue()
	q.Add(k)

	runWith := func(interpolator interp.Interpolator[uint16]) *raster.Buffer[uint16] {
		dst, err := raster.NewBuffer[uint16](raster.RGB16Packed, n, n)
		if err != nil {
			t.Fatalf("NewBuffer: %v", err)
		}
		writeView, err := raster.NewWriteView(dst)
		if err != nil {
			t.Fatalf("NewWriteView: %v", err)
		}
		drv, err := New[uint16](readView, writeView, interpolator, q.Clone(), colour.NewQueue(), gain.Identity(), 1)
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if err := drv.Run(context.Background()); err != nil {
			t.Fatalf("Run: %v", err)
		}
		return dst
	}

	bilinearOut := runWith(interp.NewBilinear(readView, 0))
	lz, err := interp.NewLanczos(readView, 0, 1, 2048)
	if err != nil {
		t.Fatalf("NewLanczos: %v", err)
	}
	lanczosOut := runWith(lz)

	bilinearView, _ := raster.NewReadView(bilinearOut)
	lanczosView, _ := raster.NewReadView(lanczosOut)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			for _, c := range []raster.Channel{raster.R, raster.G, raster.B} {
				a := int(bilinearView.At(x, y, c))
				b := int(lanczosView.At(x, y, c))
				if diff := a - b; diff > 1 || diff < -1 {
					t.Errorf("(%d,%d) ch=%d: bilinear=%d lanczos=%d diff=%d", x, y, c, a, b, diff)
				}
			}
		}
	}
}
