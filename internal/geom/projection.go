package geom

import (
	"fmt"
	"math"

	"github.com/anvik/lenscorrect/internal/coord"
	"github.com/anvik/lenscorrect/internal/lcerr"
)

// Projection identifies a lens-projection family (spec §4.2.3).
type Projection int

const (
	Rectilinear Projection = iota
	EquidistantFisheye
	EquisolidFisheye
	StereographicFisheye
	OrthographicFisheye
)

func (p Projection) String() string {
	switch p {
	case Rectilinear:
		return "rectilinear"
	case EquidistantFisheye:
		return "equidistant-fisheye"
	case EquisolidFisheye:
		return "equisolid-fisheye"
	case StereographicFisheye:
		return "stereographic-fisheye"
	case OrthographicFisheye:
		return "orthographic-fisheye"
	default:
		return "unknown"
	}
}

// forward maps an angle-from-axis theta to an image-plane radius r,
// given a focal length f.
func (p Projection) forward(theta, f float64) (r float64, ok bool) {
	switch p {
	case Rectilinear:
		if theta >= math.Pi/2 {
			return 0, false
		}
		return f * math.Tan(theta), true
	case EquidistantFisheye:
		return f * theta, true
	case EquisolidFisheye:
		return 2 * f * math.Sin(theta/2), true
	case StereographicFisheye:
		return 2 * f * math.Tan(theta/2), true
	case OrthographicFisheye:
		if theta > math.Pi/2 {
			return 0, false
		}
		return f * math.Sin(theta), true
	default:
		return 0, false
	}
}

// inverse maps an image-plane radius r back to an angle-from-axis theta,
// given a focal length f.
func (p Projection) inverse(r, f float64) (theta float64, ok bool) {
	switch p {
	case Rectilinear:
		return math.Atan(r / f), true
	case EquidistantFisheye:
		return r / f, true
	case EquisolidFisheye:
		v := r / (2 * f)
		if v < -1 || v > 1 {
			return 0, false
		}
		return 2 * math.Asin(v), true
	case StereographicFisheye:
		return 2 * math.Atan(r/(2*f)), true
	case OrthographicFisheye:
		v := r / f
		if v < -1 || v > 1 {
			return 0, false
		}
		return math.Asin(v), true
	default:
		return 0, false
	}
}

// projectionParams converts destination coordinates from one lens
// projection to another via the intermediate spherical (phi, theta)
// representation (spec §4.2.3). The conversion is monochrome — there is
// no per-channel variant of a projection change.
type projectionParams struct {
	src, dst     Projection
	srcF, dstF   float64
	aspect       float64
}

// NewProjectionConversion builds a geometry-conversion model. srcFocal
// and dstFocal are focal lengths in the same normalised units as the
// image coordinate system; aspect is used to size the out-of-frame
// sentinel (spec §4.2.3: "any coordinate magnitude > 2·aspect").
func NewProjectionConversion(src, dst Projection, srcFocal, dstFocal, aspect float64) (Model, error) {
	if srcFocal <= 0 || dstFocal <= 0 {
		return Model{}, fmt.Errorf("focal lengths must be positive: %w", lcerr.InvalidConfiguration)
	}
	if aspect <= 0 {
		return Model{}, fmt.Errorf("aspect must be positive: %w", lcerr.InvalidConfiguration)
	}
	return Model{kind: kindProjection, projection: projectionParams{
		src: src, dst: dst, srcF: srcFocal, dstF: dstFocal, aspect: aspect,
	}}, nil
}

func (p projectionParams) sentinel() coord.Point {
	s := 3 * p.aspect
	return coord.Point{X: s, Y: s}
}

func (p projectionParams) apply(in coord.Tuple) coord.Tuple {
	out := coord.Tuple{Lanes: in.Lanes}
	for i := 0; i < in.Lanes; i++ {
		out.P[i] = p.convert(in.P[i])
	}
	return out
}

func (p projectionParams) convert(d coord.Point) coord.Point {
	rd := math.Hypot(d.X, d.Y)
	phi := math.Atan2(d.Y, d.X)

	theta, ok := p.dst.inverse(rd, p.dstF)
	if !ok {
		return p.sentinel()
	}
	rs, ok := p.src.forward(theta, p.srcF)
	if !ok {
		return p.sentinel()
	}
	return coord.Point{X: rs * math.Cos(phi), Y: rs * math.Sin(phi)}
}
