// Package autoscale implements the auto-scaler (spec §4.7): a bracket
// and bisection search for the minimal uniform scale that, applied to a
// geometric queue's output coordinates, keeps every destination boundary
// point mapped to a source point inside the frame.
//
// Grounded on the teacher's iterative-loop idiom, internal/fit/convergence.go
// (ConvergenceTracker): a small stateful procedure logging its progress
// at each step via log/slog and returning a result once a threshold
// condition is met, generalised here from "cost plateaued" to "bisection
// interval narrow enough".
package autoscale

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/anvik/lenscorrect/internal/coord"
	"github.com/anvik/lenscorrect/internal/geom"
	"github.com/anvik/lenscorrect/internal/lcerr"
)

// Result is the outcome of a FindScale search.
type Result struct {
	Scale   float64
	Success bool
}

const bracketIterations = 10

// FindScale searches for the scale s* described in spec §4.7. lanes is
// the channel lane count the queue operates over; aspect is the
// destination image's aspect ratio; n is both the per-edge boundary
// sample count and the bisection precision/depth parameter.
//
// The additional scale is modelled as a uniform post-scale of the
// queue's output coordinate (spec §4.7: "the resulting scale is
// appended to the transform's geometric queue by the caller"), matching
// how the caller is expected to realise it — a geom.Scaler model added
// after every other model in the queue. See DESIGN.md for this reading
// of an otherwise ambiguous sentence.
func FindScale(queue *geom.Queue, lanes int, aspect float64, n int) (Result, error) {
	if n < 2 {
		return Result{}, fmt.Errorf("auto-scaler boundary sample count must be >= 2, got %d: %w", n, lcerr.InvalidConfiguration)
	}
	boundary := boundaryPoints(n, aspect)
	work := queue.Clone()

	step := func(s float64) float64 {
		return stepAt(work, lanes, boundary, s)
	}

	lo, hi, ok := bracket(step)
	if !ok {
		slog.Warn("auto-scaler failed to bracket a solution", "aspect", aspect, "n", n)
		return Result{Success: false}, nil
	}
	slog.Debug("auto-scaler bracketed", "lo", lo, "hi", hi)

	for i := 0; i < n; i++ {
		mid := (lo + hi) / 2
		f := step(mid)
		if f >= 1 {
			lo = mid
		} else {
			hi = mid
		}
		slog.Debug("auto-scaler bisecting", "iteration", i, "lo", lo, "hi", hi, "step", f)
		if math.Abs(hi-lo)*10*float64(n) < math.Abs(mid) {
			break
		}
	}

	result := (lo + hi) / 2
	slog.Info("auto-scaler converged", "scale", result)
	return Result{Scale: result, Success: true}, nil
}

// bracket implements spec §4.7 step 3: starting at s=1, halve repeatedly
// if step(1) < 1, else double, capped at bracketIterations, returning the
// interval [lo,hi] with step(lo) >= 1 >= step(hi) (lo < hi since step is
// monotonically non-increasing in s by construction).
func bracket(step func(float64) float64) (lo, hi float64, ok bool) {
	s0 := 1.0
	f0 := step(s0)
	if f0 < 1 {
		prev := s0
		s := s0
		for i := 0; i < bracketIterations; i++ {
			s /= 2
			if step(s) >= 1 {
				return s, prev, true
			}
			prev = s
		}
		return 0, 0, false
	}
	prev := s0
	s := s0
	for i := 0; i < bracketIterations; i++ {
		s *= 2
		if step(s) < 1 {
			return prev, s, true
		}
		prev = s
	}
	return 0, 0, false
}

// stepAt evaluates step(s) = sqrt(min_boundary f(s)) across the sampled
// boundary points (spec §4.7 steps 1-2).
func stepAt(queue *geom.Queue, lanes int, boundary []coord.Point, s float64) float64 {
	minF := math.Inf(1)
	for _, p := range boundary {
		rd2 := p.X*p.X + p.Y*p.Y
		tuple := queue.Evaluate(lanes, p)

		maxR2 := 0.0
		for i := 0; i < lanes; i++ {
			x, y := tuple.P[i].X, tuple.P[i].Y
			if r2 := x*x + y*y; r2 > maxR2 {
				maxR2 = r2
			}
		}
		rs2 := s * s * maxR2
		if rs2 == 0 {
			continue
		}
		if f := rd2 / rs2; f < minF {
			minF = f
		}
	}
	return math.Sqrt(minF)
}

// boundaryPoints samples n equally spaced points along each of the four
// edges of the destination rectangle [-aspect,aspect] x [-1,1].
func boundaryPoints(n int, aspect float64) []coord.Point {
	pts := make([]coord.Point, 0, 4*n)
	for i := 0; i < n; i++ {
		t := -1 + 2*float64(i)/float64(n-1)
		pts = append(pts,
			coord.Point{X: t * aspect, Y: -1}, // top edge
			coord.Point{X: t * aspect, Y: 1},  // bottom edge
			coord.Point{X: -aspect, Y: t},     // left edge
			coord.Point{X: aspect, Y: t},      // right edge
		)
	}
	return pts
}
