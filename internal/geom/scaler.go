package geom

import (
	"fmt"

	"github.com/anvik/lenscorrect/internal/coord"
	"github.com/anvik/lenscorrect/internal/lcerr"
)

// scalerParams holds one scale factor per channel lane plus a shared
// centre (spec §4.2.2): "(x,y) ↦ ((x−x0)/k + x0, (y−y0)/k + y0),
// per-channel k. Used both for overall image scaling and for simple
// linear TCA."
type scalerParams struct {
	lanes  int
	k      [4]float64
	x0, y0 float64
}

// NewScaler builds a scaler geometric model. k holds one scale factor
// per active lane, or a single entry to apply the same scale to every
// lane (e.g. the auto-scaler's uniform image scale). Passing distinct
// per-channel k values implements linear transverse chromatic
// aberration.
func NewScaler(lanes int, k []float64, centreX, centreY float64) (Model, error) {
	if lanes != 1 && lanes != 3 && lanes != 4 {
		return Model{}, fmt.Errorf("invalid lane count %d: %w", lanes, lcerr.InvalidConfiguration)
	}
	if len(k) != 1 && len(k) != lanes {
		return Model{}, fmt.Errorf("scaler coefficient count %d does not match lanes %d: %w", len(k), lanes, lcerr.InvalidConfiguration)
	}
	for _, kv := range k {
		if kv == 0 {
			return Model{}, fmt.Errorf("scaler factor must be non-zero: %w", lcerr.InvalidConfiguration)
		}
	}
	p := scalerParams{lanes: lanes, x0: centreX, y0: centreY}
	for i := 0; i < lanes; i++ {
		if len(k) == lanes {
			p.k[i] = k[i]
		} else {
			p.k[i] = k[0]
		}
	}
	return Model{kind: kindScaler, scaler: p}, nil
}

func (p scalerParams) apply(in coord.Tuple) coord.Tuple {
	out := coord.Tuple{Lanes: in.Lanes}
	for i := 0; i < in.Lanes; i++ {
		lane := i
		if p.lanes == 1 {
			lane = 0
		}
		k := p.k[lane]
		out.P[i] = coord.Point{
			X: (in.P[i].X-p.x0)/k + p.x0,
			Y: (in.P[i].Y-p.y0)/k + p.y0,
		}
	}
	return out
}
