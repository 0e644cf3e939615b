package raster

import (
	"fmt"

	"github.com/anvik/lenscorrect/internal/lcerr"
)

// offsets holds the per-channel base sample offsets plus the strides
// derived once from a Layout (spec §4.1: "derive, from S alone,
// {stride_x, stride_y, offset_R, offset_G, offset_B, offset_A}").
type offsets struct {
	strideX int
	strideY int
	chBase  [4]int // indexed by Channel; channel A unused for 3-channel layouts
	plane   int     // plane size for planar layouts, 0 for packed
}

func deriveOffsets(layout Layout, width, height int) offsets {
	o := offsets{}
	if layout.Interleave == Packed {
		o.strideX = layout.Channels
		o.strideY = width * layout.Channels
		for c := 0; c < layout.Channels; c++ {
			o.chBase[c] = c
		}
	} else {
		o.strideX = 1
		o.strideY = width
		o.plane = width * height
		for c := 0; c < layout.Channels; c++ {
			o.chBase[c] = c * o.plane
		}
	}
	return o
}

func (o offsets) index(x, y int, c Channel) int {
	return o.chBase[int(c)] + y*o.strideY + x*o.strideX
}

// ReadView is a non-owning, read-only reference to a Buffer's samples,
// restricted to a region of interest and annotated with the parent
// window it tiles (spec §3, §4.1).
type ReadView[S Sample] struct {
	pix    []S
	layout Layout
	width  int
	height int
	off    offsets
	roi    Rect
	parent Rect
	aspect float64 // 0 means "use width/height default"
}

// NewReadView wraps a Buffer for reading, with the ROI defaulted to the
// whole buffer and the parent window defaulted to (0,0)+(W,H).
func NewReadView[S Sample](buf *Buffer[S]) (*ReadView[S], error) {
	roi := Rect{0, 0, buf.Width(), buf.Height()}
	return NewReadViewROI(buf, roi)
}

// NewReadViewROI wraps a Buffer for reading over the given ROI.
func NewReadViewROI[S Sample](buf *Buffer[S], roi Rect) (*ReadView[S], error) {
	if !roi.withinBounds(buf.Width(), buf.Height()) {
		return nil, fmt.Errorf("roi %s outside view bounds %dx%d: %w", roi, buf.Width(), buf.Height(), lcerr.InvalidConfiguration)
	}
	return &ReadView[S]{
		pix:    buf.Pix(),
		layout: buf.Layout(),
		width:  buf.Width(),
		height: buf.Height(),
		off:    deriveOffsets(buf.Layout(), buf.Width(), buf.Height()),
		roi:    roi,
		parent: Rect{0, 0, roi.W, roi.H},
	}, nil
}

// Layout returns the layout of the buffer this view addresses.
func (v *ReadView[S]) Layout() Layout { return v.layout }

// Width and Height return the full buffer's dimensions (not the ROI).
func (v *ReadView[S]) Width() int  { return v.width }
func (v *ReadView[S]) Height() int { return v.height }

// ROI returns the view's region of interest.
func (v *ReadView[S]) ROI() Rect { return v.roi }

// ParentWindow returns the rectangle this view occupies within a larger
// virtual frame (spec §3: "to let a view act as a tile of a larger
// virtual frame").
func (v *ReadView[S]) ParentWindow() Rect { return v.parent }

// SetParentWindow overrides the parent-window rectangle.
func (v *ReadView[S]) SetParentWindow(r Rect) { v.parent = r }

// Aspect returns the aspect ratio used by model math for this view:
// an explicit override if set, otherwise width/height (spec §4.1).
func (v *ReadView[S]) Aspect() float64 {
	if v.aspect != 0 {
		return v.aspect
	}
	return float64(v.width) / float64(v.height)
}

// SetAspect overrides the default width/height aspect (non-square pixel
// pipelines; spec §4.1).
func (v *ReadView[S]) SetAspect(a float64) { v.aspect = a }

// MinMax returns the storable sample range for this view's layout.
func (v *ReadView[S]) MinMax() (min, max uint32) { return 0, v.layout.Sample.Max() }

// At returns the exact sample at integer (x,y) for channel c. No bounds
// checking is performed; callers must keep (x,y) inside the buffer.
func (v *ReadView[S]) At(x, y int, c Channel) S {
	return v.pix[v.off.index(x, y, c)]
}

// Cursor constructs a read cursor positioned at (x,y).
func (v *ReadView[S]) Cursor(x, y int) *ReadCursor[S] {
	return &ReadCursor[S]{view: v, x: x, y: y}
}

// ReadCursor is a single-pixel addressing cursor over a ReadView. It
// performs no bounds checking on advance (spec §4.1): the driver is
// responsible for keeping it inside the ROI.
type ReadCursor[S Sample] struct {
	view *ReadView[S]
	x, y int
}

func (c *ReadCursor[S]) AdvanceX()        { c.x++ }
func (c *ReadCursor[S]) AdvanceXBy(k int) { c.x += k }
func (c *ReadCursor[S]) RetreatX()        { c.x-- }
func (c *ReadCursor[S]) AdvanceY()        { c.y++ }
func (c *ReadCursor[S]) RetreatY()        { c.y-- }
func (c *ReadCursor[S]) SetPixelOffset(x, y int) {
	c.x, c.y = x, y
}
func (c *ReadCursor[S]) Read(ch Channel) S { return c.view.At(c.x, c.y, ch) }

// WriteView is a non-owning, writable reference to a Buffer's samples,
// with the same ROI/parent-window machinery as ReadView (spec §3, §4.1).
type WriteView[S Sample] struct {
	pix    []S
	layout Layout
	width  int
	height int
	off    offsets
	roi    Rect
	parent Rect
}

// NewWriteView wraps a Buffer for writing, ROI defaulted to the whole
// buffer.
func NewWriteView[S Sample](buf *Buffer[S]) (*WriteView[S], error) {
	roi := Rect{0, 0, buf.Width(), buf.Height()}
	return NewWriteViewROI(buf, roi)
}

// NewWriteViewROI wraps a Buffer for writing over the given ROI.
func NewWriteViewROI[S Sample](buf *Buffer[S], roi Rect) (*WriteView[S], error) {
	if !roi.withinBounds(buf.Width(), buf.Height()) {
		return nil, fmt.Errorf("roi %s outside view bounds %dx%d: %w", roi, buf.Width(), buf.Height(), lcerr.InvalidConfiguration)
	}
	return &WriteView[S]{
		pix:    buf.Pix(),
		layout: buf.Layout(),
		width:  buf.Width(),
		height: buf.Height(),
		off:    deriveOffsets(buf.Layout(), buf.Width(), buf.Height()),
		roi:    roi,
		parent: Rect{0, 0, roi.W, roi.H},
	}, nil
}

func (v *WriteView[S]) Layout() Layout { return v.layout }
func (v *WriteView[S]) Width() int     { return v.width }
func (v *WriteView[S]) Height() int    { return v.height }

// ROI returns the view's region of interest.
func (v *WriteView[S]) ROI() Rect { return v.roi }

// SetROI changes the region of interest. Changing the ROI never mutates
// the underlying samples (spec §4.1 invariant).
func (v *WriteView[S]) SetROI(r Rect) error {
	if !r.withinBounds(v.width, v.height) {
		return fmt.Errorf("roi %s outside view bounds %dx%d: %w", r, v.width, v.height, lcerr.InvalidConfiguration)
	}
	v.roi = r
	return nil
}

// ParentWindow returns the rectangle this view occupies within a larger
// virtual frame.
func (v *WriteView[S]) ParentWindow() Rect { return v.parent }

// SetParentWindow overrides the parent-window rectangle.
func (v *WriteView[S]) SetParentWindow(r Rect) { v.parent = r }

// MinMax returns the storable sample range for this view's layout.
func (v *WriteView[S]) MinMax() (min, max uint32) { return 0, v.layout.Sample.Max() }

// Set writes one sample at integer (x,y) for channel c. No bounds
// checking is performed.
func (v *WriteView[S]) Set(x, y int, c Channel, val S) {
	v.pix[v.off.index(x, y, c)] = val
}

// Cursor constructs a write cursor positioned at (x,y).
func (v *WriteView[S]) Cursor(x, y int) *WriteCursor[S] {
	return &WriteCursor[S]{view: v, x: x, y: y}
}

// WriteCursor is a single-pixel addressing cursor over a WriteView.
type WriteCursor[S Sample] struct {
	view *WriteView[S]
	x, y int
}

func (c *WriteCursor[S]) AdvanceX()        { c.x++ }
func (c *WriteCursor[S]) AdvanceXBy(k int) { c.x += k }
func (c *WriteCursor[S]) RetreatX()        { c.x-- }
func (c *WriteCursor[S]) AdvanceY()        { c.y++ }
func (c *WriteCursor[S]) RetreatY()        { c.y-- }
func (c *WriteCursor[S]) SetPixelOffset(x, y int) {
	c.x, c.y = x, y
}
func (c *WriteCursor[S]) Write(ch Channel, val S) { c.view.Set(c.x, c.y, ch, val) }

// WriteTuple writes a per-channel value tuple at integer (x,y), rounding
// each channel half-away-from-zero before quantisation into S (spec
// §4.1: "rounding is half-away-from-zero before quantisation"). This
// spec's closed sample-type set is unsigned-only (§3), so the
// signed-rounding subtlety noted in spec §9(c) does not arise: see
// DESIGN.md Open Question (c).
func (v *WriteView[S]) WriteTuple(x, y int, values [4]float64, nChannels int) {
	for c := 0; c < nChannels; c++ {
		v.Set(x, y, Channel(c), S(roundHalfAwayFromZero(values[c])))
	}
}

func roundHalfAwayFromZero(v float64) float64 {
	if v >= 0 {
		return float64(int64(v + 0.5))
	}
	return float64(int64(v - 0.5))
}
