package transform

import (
	"context"
	"fmt"

	"github.com/anvik/lenscorrect/internal/colour"
	"github.com/anvik/lenscorrect/internal/coord"
	"github.com/anvik/lenscorrect/internal/gain"
	"github.com/anvik/lenscorrect/internal/geom"
	"github.com/anvik/lenscorrect/internal/interp"
	"github.com/anvik/lenscorrect/internal/lcerr"
	"github.com/anvik/lenscorrect/internal/raster"
)

// Driver is the image transform driver (spec §4.6): a destination scan
// that, for every output pixel, oversamples a regular grid of sub-pixel
// positions, feeds each through the geometric queue to find a source
// coordinate, weights the channel readings by the colour queue's gain,
// integrates in linear light, and re-encodes and quantises the result.
type Driver[S raster.Sample] struct {
	read       *raster.ReadView[S]
	write      *raster.WriteView[S]
	interp     interp.Interpolator[S]
	geomQueue  *geom.Queue
	colourQueue *colour.Queue
	gainPair   gain.Pair
	oversample int
	lanes      int
	srcMax     float64
	dstMax     float64
}

// New builds a transform driver. The read and write views must address
// layouts with the same channel count (the lane count the geometric and
// colour queues operate over); oversample must be >= 1.
func New[S raster.Sample](
	read *raster.ReadView[S],
	write *raster.WriteView[S],
	interpolator interp.Interpolator[S],
	geomQueue *geom.Queue,
	colourQueue *colour.Queue,
	gainPair gain.Pair,
	oversample int,
) (*Driver[S], error) {
	if oversample < 1 {
		return nil, fmt.Errorf("oversample must be >= 1, got %d: %w", oversample, lcerr.InvalidConfiguration)
	}
	if read.Layout().Channels != write.Layout().Channels {
		return nil, fmt.Errorf("read/write channel count mismatch (%d vs %d): %w",
			read.Layout().Channels, write.Layout().Channels, lcerr.LayoutMismatch)
	}
	if geomQueue == nil {
		geomQueue = geom.NewQueue()
	}
	if colourQueue == nil {
		colourQueue = colour.NewQueue()
	}
	_, srcMax := read.MinMax()
	_, dstMax := write.MinMax()
	return &Driver[S]{
		read:        read,
		write:       write,
		interp:      interpolator,
		geomQueue:   geomQueue,
		colourQueue: colourQueue,
		gainPair:    gainPair,
		oversample:  oversample,
		lanes:       write.Layout().Channels,
		srcMax:      float64(srcMax),
		dstMax:      float64(dstMax),
	}, nil
}

// Run executes the transform over the write view's current ROI,
// dispatching one row task per destination row to a bounded worker pool
// (spec §4.6, §5). It never fails mid-stream: out-of-frame source
// samples resolve to the interpolator's configured null value rather
// than raising an error.
func (d *Driver[S]) Run(ctx context.Context) error {
	roi := d.write.ROI()
	parent := d.write.ParentWindow()
	pw, ph := parent.W, parent.H
	if pw < 2 || ph < 2 {
		return fmt.Errorf("parent window %dx%d too small for transform: %w", pw, ph, lcerr.InvalidConfiguration)
	}
	aspect := d.read.Aspect()
	sx := 2 * aspect / float64(pw-1)
	sy := 2.0 / float64(ph-1)
	o := d.oversample
	invOO := 1.0 / float64(o*o)

	runRowPool(ctx, roi.Y0, roi.Y1(), func(j int) {
		for i := roi.X0; i < roi.X1(); i++ {
			d.emitPixel(i, j, parent.X0, parent.Y0, aspect, sx, sy, invOO)
		}
	})
	return nil
}

func (d *Driver[S]) emitPixel(i, j, pox, poy int, aspect, sx, sy, invOO float64) {
	acc := coord.Zero(d.lanes)
	o := d.oversample

	for v := 0; v < o; v++ {
		syOff := (float64(v)+0.5)/float64(o) - 0.5
		yd := (float64(j+poy) + syOff) * sy - 1
		for u := 0; u < o; u++ {
			sxOff := (float64(u)+0.5)/float64(o) - 0.5
			xd := (float64(i+pox) + sxOff) * sx - aspect

			srcTuple := d.geomQueue.Evaluate(d.lanes, coord.Point{X: xd, Y: yd})
			gains := d.colourQueue.Evaluate(srcTuple)

			for c := 0; c < d.lanes; c++ {
				p := srcTuple.P[c]
				raw := d.interp.Sample(p.X, p.Y, raster.Channel(c))
				norm := raw / d.srcMax
				lin := d.gainPair.ApplyForward(norm)
				acc.V[c] += lin * gains.V[c]
			}
		}
	}

	acc = acc.Scale(invOO).Clamp01()

	var out [4]float64
	for c := 0; c < d.lanes; c++ {
		out[c] = d.gainPair.ApplyInverse(acc.V[c]) * d.dstMax
	}
	d.write.WriteTuple(i, j, out, d.lanes)
}
