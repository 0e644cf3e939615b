package interp

import (
	"math"

	"github.com/anvik/lenscorrect/internal/raster"
)

// Nearest is the nearest-neighbour reconstruction kernel (spec §4.4):
// samples at (floor(xs+1/2), floor(ys+1/2)).
type Nearest[S raster.Sample] struct {
	base[S]
}

// NewNearest builds a nearest-neighbour interpolator over view, returning
// null for out-of-frame destination coordinates.
func NewNearest[S raster.Sample](view *raster.ReadView[S], null float64) *Nearest[S] {
	return &Nearest[S]{base: newBase(view, null)}
}

func (n *Nearest[S]) Sample(x, y float64, c raster.Channel) float64 {
	xs, ys := n.sampleSpace(x, y)
	if !n.inBounds(xs, ys) {
		return n.null
	}
	ix := int(math.Floor(xs + 0.5))
	iy := int(math.Floor(ys + 0.5))
	ix = clampEdge(ix, n.width)
	iy = clampEdge(iy, n.height)
	return float64(n.view.At(ix, iy, c))
}
