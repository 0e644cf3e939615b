package geom

import (
	"fmt"
	"math"

	"github.com/anvik/lenscorrect/internal/coord"
	"github.com/anvik/lenscorrect/internal/lcerr"
)

// ptlensParams holds one set of PTLens coefficients per channel lane
// (spec §4.2.1), plus the shared centre shift, which is a sensor
// parameter and is never subjected to coefficient rescaling (spec §3).
type ptlensParams struct {
	lanes  int
	a      [4]float64
	b      [4]float64
	c      [4]float64
	d      [4]float64
	x0, y0 float64
}

// PTLensCoeffs is one channel's (a,b,c,d) distortion coefficient set. If
// D is nil, it defaults to 1-(a+b+c), preserving the corner radius (spec
// §4.2.1).
type PTLensCoeffs struct {
	A, B, C float64
	D       *float64
}

// NewPTLens builds a PTLens geometric model. coeffs holds one entry per
// active lane; passing a single entry applies the same distortion to
// every lane (spec §4.2: "default is equal parameters on all channels").
// centreX, centreY are in normalised coordinates and are not rescaled by
// parameter-coordinate reconciliation.
func NewPTLens(lanes int, coeffs []PTLensCoeffs, centreX, centreY float64) (Model, error) {
	if lanes != 1 && lanes != 3 && lanes != 4 {
		return Model{}, fmt.Errorf("invalid lane count %d: %w", lanes, lcerr.InvalidConfiguration)
	}
	if len(coeffs) != 1 && len(coeffs) != lanes {
		return Model{}, fmt.Errorf("ptlens coefficient count %d does not match lanes %d: %w", len(coeffs), lanes, lcerr.InvalidConfiguration)
	}

	p := ptlensParams{lanes: lanes, x0: centreX, y0: centreY}
	for i := 0; i < lanes; i++ {
		cf := coeffs[0]
		if len(coeffs) == lanes {
			cf = coeffs[i]
		}
		d := cf.D
		var dVal float64
		if d != nil {
			dVal = *d
		} else {
			dVal = 1 - (cf.A + cf.B + cf.C)
		}
		p.a[i], p.b[i], p.c[i], p.d[i] = cf.A, cf.B, cf.C, dVal
	}
	return Model{kind: kindPTLens, ptlens: p}, nil
}

// Reconcile rescales the model's stored coefficients for a change of
// calibration coordinate system (spec §3: "Parameter-coordinate
// reconciliation"). It returns a new Model; it never mutates the input
// coordinates the model is later applied to.
func (m Model) Reconcile(paramAspect, paramCrop, inputAspect, inputCrop float64) Model {
	if m.kind != kindPTLens {
		return m
	}
	k := coord.ReconcileScale(paramAspect, paramCrop, inputAspect, inputCrop)
	out := m
	for i := 0; i < m.ptlens.lanes; i++ {
		out.ptlens.a[i] = coord.ScaleCoefficient(m.ptlens.a[i], 3, k)
		out.ptlens.b[i] = coord.ScaleCoefficient(m.ptlens.b[i], 2, k)
		out.ptlens.c[i] = coord.ScaleCoefficient(m.ptlens.c[i], 1, k)
		out.ptlens.d[i] = coord.ScaleCoefficient(m.ptlens.d[i], 0, k)
	}
	return out
}

func (p ptlensParams) apply(in coord.Tuple) coord.Tuple {
	out := coord.Tuple{Lanes: in.Lanes}
	for i := 0; i < in.Lanes; i++ {
		lane := i
		if p.lanes == 1 {
			lane = 0
		}
		out.P[i] = p.evalLane(lane, in.P[i])
	}
	return out
}

func (p ptlensParams) evalLane(lane int, in coord.Point) coord.Point {
	dx := in.X - p.x0
	dy := in.Y - p.y0
	r := math.Hypot(dx, dy)
	if r == 0 {
		return coord.Point{X: p.x0, Y: p.y0}
	}
	a, b, c, d := p.a[lane], p.b[lane], p.c[lane], p.d[lane]
	rPrime := (((a*r+b)*r+c)*r + d) * r
	cosPhi := dx / r
	sinPhi := dy / r
	return coord.Point{
		X: cosPhi*rPrime + p.x0,
		Y: sinPhi*rPrime + p.y0,
	}
}
