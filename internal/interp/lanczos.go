package interp

import (
	"fmt"
	"math"

	"github.com/anvik/lenscorrect/internal/lcerr"
	"github.com/anvik/lenscorrect/internal/raster"
)

const (
	defaultLanczosSupport    = 2
	defaultLanczosResolution = 1024
)

func sinc(t float64) float64 {
	if t == 0 {
		return 1
	}
	return math.Sin(math.Pi*t) / (math.Pi * t)
}

// lanczosTable is the once-built 1D kernel lookup table, tabulated over
// [0, N*R) and bilinearly interpolated at evaluation time (spec §4.4).
type lanczosTable struct {
	support    int
	resolution int
	values     []float64 // length support*resolution + 1
}

func buildLanczosTable(support, resolution int) *lanczosTable {
	n := support * resolution
	values := make([]float64, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(resolution)
		if t >= float64(support) {
			values[i] = 0
		} else if support == 1 {
			// Support 1 falls back to the triangle (bilinear) kernel.
			values[i] = 1 - t
		} else {
			values[i] = sinc(t) * sinc(t/float64(support))
		}
	}
	return &lanczosTable{support: support, resolution: resolution, values: values}
}

// eval evaluates L(t) = sinc(t)*sinc(t/N) for |t|<N, zero elsewhere (the
// triangle 1-|t| when N=1), by bilinear interpolation of the precomputed
// table.
func (lt *lanczosTable) eval(t float64) float64 {
	at := math.Abs(t)
	if at >= float64(lt.support) {
		return 0
	}
	pos := at * float64(lt.resolution)
	i := int(pos)
	if i >= len(lt.values)-1 {
		return lt.values[len(lt.values)-1]
	}
	frac := pos - float64(i)
	return lt.values[i] + (lt.values[i+1]-lt.values[i])*frac
}

// Lanczos is the windowed-sinc reconstruction kernel (spec §4.4). The 2D
// kernel is the outer product of two 1D kernels; samples outside the
// image clamp to edge.
type Lanczos[S raster.Sample] struct {
	base[S]
	table *lanczosTable
}

// NewLanczos builds a Lanczos interpolator with the given integer
// support (>=1, default 2 if 0) and sample-table resolution (default
// 1024 if 0). Support and resolution may only be set at construction
// (spec §4.4: "may be changed only before the first transform call").
func NewLanczos[S raster.Sample](view *raster.ReadView[S], null float64, support, resolution int) (*Lanczos[S], error) {
	if support == 0 {
		support = defaultLanczosSupport
	}
	if resolution == 0 {
		resolution = defaultLanczosResolution
	}
	if support < 1 {
		return nil, fmt.Errorf("lanczos support must be >= 1, got %d: %w", support, lcerr.InvalidConfiguration)
	}
	if resolution < 1 {
		return nil, fmt.Errorf("lanczos resolution must be >= 1, got %d: %w", resolution, lcerr.InvalidConfiguration)
	}
	return &Lanczos[S]{
		base:  newBase(view, null),
		table: buildLanczosTable(support, resolution),
	}, nil
}

func (l *Lanczos[S]) Sample(x, y float64, c raster.Channel) float64 {
	xs, ys := l.sampleSpace(x, y)
	if !l.inBounds(xs, ys) {
		return l.null
	}
	support := l.table.support
	x0 := int(math.Floor(xs))
	y0 := int(math.Floor(ys))

	var sum, weightSum float64
	for dy := -support + 1; dy <= support; dy++ {
		yi := y0 + dy
		wy := l.table.eval(ys - float64(yi))
		if wy == 0 {
			continue
		}
		yiC := clampEdge(yi, l.height)
		for dx := -support + 1; dx <= support; dx++ {
			xi := x0 + dx
			wx := l.table.eval(xs - float64(xi))
			if wx == 0 {
				continue
			}
			xiC := clampEdge(xi, l.width)
			w := wx * wy
			sum += w * float64(l.view.At(xiC, yiC, c))
			weightSum += w
		}
	}
	if weightSum == 0 {
		return l.null
	}
	return sum / weightSum
}
