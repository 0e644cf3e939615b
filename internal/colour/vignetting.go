package colour

import (
	"fmt"
	"math"

	"github.com/anvik/lenscorrect/internal/coord"
	"github.com/anvik/lenscorrect/internal/lcerr"
)

// VignettingCoeffs is one channel's vignetting polynomial coefficient
// set (spec §4.3): g = 1 / (1 + c*r^2 + b*r^4 + a*r^6).
type VignettingCoeffs struct {
	A, B, C float64
}

// vignettingParams holds one VignettingCoeffs per lane plus a shared
// centre (spec §4.3).
type vignettingParams struct {
	lanes  int
	a, b, c [4]float64
	x0, y0 float64
}

// NewVignetting builds a vignetting colour model. coeffs holds one entry
// per active lane, or a single entry to apply to every lane.
func NewVignetting(lanes int, coeffs []VignettingCoeffs, centreX, centreY float64) (Model, error) {
	if lanes != 1 && lanes != 3 && lanes != 4 {
		return Model{}, fmt.Errorf("invalid lane count %d: %w", lanes, lcerr.InvalidConfiguration)
	}
	if len(coeffs) != 1 && len(coeffs) != lanes {
		return Model{}, fmt.Errorf("vignetting coefficient count %d does not match lanes %d: %w", len(coeffs), lanes, lcerr.InvalidConfiguration)
	}
	p := vignettingParams{lanes: lanes, x0: centreX, y0: centreY}
	for i := 0; i < lanes; i++ {
		cf := coeffs[0]
		if len(coeffs) == lanes {
			cf = coeffs[i]
		}
		p.a[i], p.b[i], p.c[i] = cf.A, cf.B, cf.C
	}
	return Model{kind: kindVignetting, vignetting: p}, nil
}

// NewVignettingHugin builds a vignetting model from Hugin-calibrated
// coefficients, applying the additional 1/sqrt(1+aspect^2)^n parameter
// scaling (n = the power of r the coefficient multiplies: 6 for a, 4 for
// b, 2 for c) before storing them, so Hugin's calibration coordinate
// system matches this engine's internal one (spec §4.3).
func NewVignettingHugin(lanes int, coeffs []VignettingCoeffs, centreX, centreY, aspect float64) (Model, error) {
	if aspect <= 0 {
		return Model{}, fmt.Errorf("aspect must be positive: %w", lcerr.InvalidConfiguration)
	}
	k := 1 / math.Sqrt(1+aspect*aspect)
	scaled := make([]VignettingCoeffs, len(coeffs))
	for i, cf := range coeffs {
		scaled[i] = VignettingCoeffs{
			A: coord.ScaleCoefficient(cf.A, 6, k),
			B: coord.ScaleCoefficient(cf.B, 4, k),
			C: coord.ScaleCoefficient(cf.C, 2, k),
		}
	}
	return NewVignetting(lanes, scaled, centreX, centreY)
}

func (p vignettingParams) apply(src coord.Tuple) coord.Gains {
	out := coord.Gains{Lanes: src.Lanes}
	for i := 0; i < src.Lanes; i++ {
		lane := i
		if p.lanes == 1 {
			lane = 0
		}
		dx := src.P[i].X - p.x0
		dy := src.P[i].Y - p.y0
		r2 := dx*dx + dy*dy
		r4 := r2 * r2
		r6 := r4 * r2
		out.V[i] = 1 / (1 + p.c[lane]*r2 + p.b[lane]*r4 + p.a[lane]*r6)
	}
	return out
}
