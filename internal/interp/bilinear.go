package interp

import (
	"math"

	"github.com/anvik/lenscorrect/internal/raster"
)

// Bilinear is the bilinear reconstruction kernel (spec §4.4): the four
// neighbours around (xs,ys) are read, edges clamp-replicate, and two
// horizontal lerps feed a vertical lerp. Arithmetic is done in float64
// regardless of the storage sample type.
type Bilinear[S raster.Sample] struct {
	base[S]
}

// NewBilinear builds a bilinear interpolator over view.
func NewBilinear[S raster.Sample](view *raster.ReadView[S], null float64) *Bilinear[S] {
	return &Bilinear[S]{base: newBase(view, null)}
}

func (bl *Bilinear[S]) Sample(x, y float64, c raster.Channel) float64 {
	xs, ys := bl.sampleSpace(x, y)
	if !bl.inBounds(xs, ys) {
		return bl.null
	}
	x0 := int(math.Floor(xs))
	y0 := int(math.Floor(ys))
	fx := xs - float64(x0)
	fy := ys - float64(y0)

	x0c := clampEdge(x0, bl.width)
	x1c := clampEdge(x0+1, bl.width)
	y0c := clampEdge(y0, bl.height)
	y1c := clampEdge(y0+1, bl.height)

	v00 := float64(bl.view.At(x0c, y0c, c))
	v10 := float64(bl.view.At(x1c, y0c, c))
	v01 := float64(bl.view.At(x0c, y1c, c))
	v11 := float64(bl.view.At(x1c, y1c, c))

	top := v00 + (v10-v00)*fx
	bottom := v01 + (v11-v01)*fx
	return top + (bottom-top)*fy
}
