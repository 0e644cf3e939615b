package interp

import (
	"math"
	"testing"

	"github.com/anvik/lenscorrect/internal/raster"
)

// writeRamp fills every channel with a horizontal ramp 0..255 so that
// midpoint-mean and exact-at-integer invariants have a non-trivial
// function to check against.
func writeRamp(t *testing.T, buf *raster.Buffer[uint8]) {
	t.Helper()
	w, h := buf.Width(), buf.Height()
	wv, err := raster.NewWriteView(buf)
	if err != nil {
		t.Fatalf("NewWriteView: %v", err)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := float64(x) * 255 / float64(w-1)
			wv.Set(x, y, raster.R, uint8(v))
			wv.Set(x, y, raster.G, uint8(v))
			wv.Set(x, y, raster.B, uint8(v))
		}
	}
}

func TestBilinearExactAtIntegerSamplePoints(t *testing.T) {
	buf, err := raster.NewBuffer[uint8](raster.RGB8Packed, 4, 4)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	writeRamp(t, buf)
	view, err := raster.NewReadView(buf)
	if err != nil {
		t.Fatalf("NewReadView: %v", err)
	}
	bl := NewBilinear(view, 0)

	for ix := 0; ix < 4; ix++ {
		xn := float64(ix)*(2.0/3.0) - 1 // normalised x for W-1=3
		got := bl.Sample(xn, -1, raster.R)
		want := float64(view.At(ix, 0, raster.R))
		if math.Abs(got-want) > 1e-6 {
			t.Errorf("ix=%d: got %v, want %v", ix, got, want)
		}
	}
}

func TestBilinearMidpointIsMeanOfFourNeighbours(t *testing.T) {
	buf, err := raster.NewBuffer[uint8](raster.RGB8Packed, 2, 2)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	wv, err := raster.NewWriteView(buf)
	if err != nil {
		t.Fatalf("NewWriteView: %v", err)
	}
	wv.Set(0, 0, raster.R, 10)
	wv.Set(1, 0, raster.R, 20)
	wv.Set(0, 1, raster.R, 30)
	wv.Set(1, 1, raster.R, 40)
	view, err := raster.NewReadView(buf)
	if err != nil {
		t.Fatalf("NewReadView: %v", err)
	}
	bl := NewBilinear(view, 0)

	// Sample-space midpoint (0.5,0.5) corresponds to normalised (0,0)
	// for this 2x2 buffer.
	got := bl.Sample(0, 0, raster.R)
	want := (10.0 + 20 + 30 + 40) / 4
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestNearestSamplesCentrePixel(t *testing.T) {
	buf, err := raster.NewBuffer[uint8](raster.RGB8Packed, 3, 3)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	writeRamp(t, buf)
	view, err := raster.NewReadView(buf)
	if err != nil {
		t.Fatalf("NewReadView: %v", err)
	}
	nn := NewNearest(view, 0)

	// Normalised (0,-1) maps to sample-space centre ((W-1)/2, 0) = (1,0).
	got := nn.Sample(0, -1, raster.R)
	want := float64(view.At(1, 0, raster.R))
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestNearestOutOfFrameReturnsNull(t *testing.T) {
	buf, err := raster.NewBuffer[uint8](raster.RGB8Packed, 3, 3)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	view, err := raster.NewReadView(buf)
	if err != nil {
		t.Fatalf("NewReadView: %v", err)
	}
	nn := NewNearest(view, -1)
	got := nn.Sample(50, 50, raster.R)
	if got != -1 {
		t.Errorf("got %v, want null -1", got)
	}
}

func TestLanczosSupportOneMatchesBilinearWithinOneLSB(t *testing.T) {
	buf, err := raster.NewBuffer[uint8](raster.RGB8Packed, 6, 6)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	writeRamp(t, buf)
	view, err := raster.NewReadView(buf)
	if err != nil {
		t.Fatalf("NewReadView: %v", err)
	}
	bl := NewBilinear(view, 0)
	lz, err := NewLanczos(view, 0, 1, 2048)
	if err != nil {
		t.Fatalf("NewLanczos: %v", err)
	}

	for i := 0; i < 20; i++ {
		xn := -1 + 2*float64(i)/19
		got := lz.Sample(xn, 0.3, raster.R)
		want := bl.Sample(xn, 0.3, raster.R)
		if math.Abs(got-want) > 1.0 {
			t.Errorf("x=%v: lanczos(support=1)=%v, bilinear=%v, diff too large", xn, got, want)
		}
	}
}

func TestLanczosRejectsInvalidSupport(t *testing.T) {
	buf, err := raster.NewBuffer[uint8](raster.RGB8Packed, 4, 4)
	if err != nil {
		t.Fatalf("NewBuffer: %v", err)
	}
	view, err := raster.NewReadView(buf)
	if err != nil {
		t.Fatalf("NewReadView: %v", err)
	}
	if _, err := NewLanczos(view, 0, 0, 0); err != nil {
		t.Errorf("support/resolution 0 should default, got error: %v", err)
	}
	if _, err := NewLanczos(view, 0, -1, 1024); err == nil {
		t.Error("expected error for negative support")
	}
}

func TestLanczosTableEvalZeroOutsideSupport(t *testing.T) {
	table := buildLanczosTable(2, 1024)
	if got := table.eval(2.5); got != 0 {
		t.Errorf("eval(2.5) = %v, want 0 (outside support 2)", got)
	}
	if got := table.eval(0); got != 1 {
		t.Errorf("eval(0) = %v, want 1", got)
	}
}

func TestActiveKernelIsSet(t *testing.T) {
	switch ActiveKernel {
	case KernelScalar, KernelAVX2Capable, KernelNEONCapable:
	default:
		t.Errorf("unexpected ActiveKernel value: %v", ActiveKernel)
	}
}
