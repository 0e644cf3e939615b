package interp

import (
	"github.com/anvik/lenscorrect/internal/coord"
	"github.com/anvik/lenscorrect/internal/raster"
)

// Interpolator reconstructs a sample value at an arbitrary normalised
// destination coordinate from a source raster view (spec §4.4).
type Interpolator[S raster.Sample] interface {
	// Sample returns the reconstructed value, in the view's native
	// [0, max] sample range, for channel c at normalised coordinate
	// (x, y). Points mapping outside the source raster return the
	// configured null value.
	Sample(x, y float64, c raster.Channel) float64
}

// base holds the fields every interpolator needs: the source view, its
// dimensions/aspect, and the null value returned for out-of-frame
// samples (spec §4.4: "An interpolator carries a read-view reference,
// image width/height, aspect, and a null-value constant").
type base[S raster.Sample] struct {
	view   *raster.ReadView[S]
	width  int
	height int
	aspect float64
	null   float64
}

func newBase[S raster.Sample](view *raster.ReadView[S], null float64) base[S] {
	return base[S]{
		view:   view,
		width:  view.Width(),
		height: view.Height(),
		aspect: view.Aspect(),
		null:   null,
	}
}

// sampleSpace converts a normalised destination coordinate to sample
// space, per spec §4.4: xs = (x+A)(W-1)/(2A), ys = (y+1)(H-1)/2.
func (b base[S]) sampleSpace(x, y float64) (xs, ys float64) {
	return coord.PixelFromNormalized(coord.Point{X: x, Y: y}, b.width, b.height)
}

// inBounds reports whether a sample-space coordinate falls inside
// [0,W]x[0,H] (spec §4.4: "Points outside [0,W]×[0,H] return the null
// value").
func (b base[S]) inBounds(xs, ys float64) bool {
	return xs >= 0 && xs <= float64(b.width) && ys >= 0 && ys <= float64(b.height)
}

// clampEdge clamp-replicates an integer coordinate into [0, n-1], used
// for the bilinear/Lanczos right/bottom edge handling (spec §4.4:
// "right/bottom edges clamp-replicate" / "Samples outside the image
// clamp to edge").
func clampEdge(v, n int) int {
	if v < 0 {
		return 0
	}
	if v > n-1 {
		return n - 1
	}
	return v
}
