package raster

import (
	"fmt"

	"github.com/anvik/lenscorrect/internal/lcerr"
)

// Sample is the set of sample storage types a Buffer can be instantiated
// over (spec §3's closed sample-type set).
type Sample interface {
	~uint8 | ~uint16 | ~uint32
}

// Buffer owns a sample array for one pixel layout. It is the sole owner
// of the backing storage; views never allocate, they only address into
// an existing Buffer.
//
// Grounded on the teacher's renderer buffer ownership
// (internal/fit/renderer_cpu.go: canvas *image.NRGBA, reused across
// Render calls) generalised from a single fixed NRGBA layout to the
// closed set of layouts in Layout.
type Buffer[S Sample] struct {
	layout Layout
	width  int
	height int
	pix    []S
}

// NewBuffer allocates a zero-filled buffer for width x height pixels in
// the given layout. Returns lcerr.InvalidConfiguration for non-positive
// dimensions, and lcerr.LayoutMismatch for an unsupported layout or a
// layout whose sample type does not match S.
func NewBuffer[S Sample](layout Layout, width, height int) (*Buffer[S], error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("buffer dimensions must be positive, got %dx%d: %w", width, height, lcerr.InvalidConfiguration)
	}
	if !layout.Valid() {
		return nil, fmt.Errorf("unsupported layout %s: %w", layout, lcerr.LayoutMismatch)
	}
	if !sampleMatches[S](layout.Sample) {
		return nil, fmt.Errorf("sample type mismatch for layout %s: %w", layout, lcerr.LayoutMismatch)
	}
	n := width * height * layout.Channels
	return &Buffer[S]{
		layout: layout,
		width:  width,
		height: height,
		pix:    make([]S, n),
	}, nil
}

func sampleMatches[S Sample](st SampleType) bool {
	var zero S
	switch any(zero).(type) {
	case uint8:
		return st == U8
	case uint16:
		return st == U16
	case uint32:
		return st == U32
	default:
		return false
	}
}

// Layout returns the buffer's pixel layout.
func (b *Buffer[S]) Layout() Layout { return b.layout }

// Width returns the buffer width in pixels.
func (b *Buffer[S]) Width() int { return b.width }

// Height returns the buffer height in pixels.
func (b *Buffer[S]) Height() int { return b.height }

// Aspect returns width/height, the default aspect ratio (spec §4.1:
// "default to W/H").
func (b *Buffer[S]) Aspect() float64 { return float64(b.width) / float64(b.height) }

// Pix exposes the raw sample slice for view construction. Callers must
// not resize it; in-place writes are the only supported mutation.
func (b *Buffer[S]) Pix() []S { return b.pix }

// planeSize returns the number of samples in one channel plane.
func (b *Buffer[S]) planeSize() int { return b.width * b.height }
