// Package gain implements the OETF/EOTF transfer-function pair (spec
// §4.5): forward (scene-linearisation) and inverse (re-encoding)
// functions, precomputed as piecewise-linear lookup tables so that
// per-pixel evaluation during a transform is a single multiply-add.
//
// Grounded on the deepteams-webp example's sharpyuv/gamma.go, which
// precomputes a gamma<->linear table pair once behind a sync.Once guard
// and evaluates them by table lookup + linear interpolation. This
// package generalises that pattern from a single hard-coded sRGB table
// to any TransferFunc (generic gamma, sRGB, EMOR/inverse-EMOR).
package gain

import "fmt"

// defaultPrecision is the default table sample count N (spec §3: "a
// default N=1024").
const defaultPrecision = 1024

// Table is a piecewise-linear lookup table over [0,1]: for segment i,
// evaluation is a[i]*v + b[i] with i = floor(N*v) (spec §3).
type Table struct {
	n int
	a []float64
	b []float64
}

// NewTable precomputes a piecewise-linear table of n segments
// approximating fn over [0,1].
func NewTable(n int, fn func(float64) float64) (*Table, error) {
	if n <= 0 {
		return nil, fmt.Errorf("table precision must be positive, got %d: %w", n, ErrInvalidPrecision)
	}
	t := &Table{n: n, a: make([]float64, n), b: make([]float64, n)}
	step := 1.0 / float64(n)
	prevY := fn(0)
	for i := 0; i < n; i++ {
		x0 := float64(i) * step
		x1 := x0 + step
		y0 := prevY
		y1 := fn(x1)
		slope := (y1 - y0) / step
		t.a[i] = slope
		t.b[i] = y0 - slope*x0
		prevY = y1
	}
	return t, nil
}

// Eval evaluates the table at v, clamping v into [0,1] first.
func (t *Table) Eval(v float64) float64 {
	if v < 0 {
		v = 0
	} else if v > 1 {
		v = 1
	}
	i := int(float64(t.n) * v)
	if i >= t.n {
		i = t.n - 1
	}
	return t.a[i]*v + t.b[i]
}

// N returns the table's segment count.
func (t *Table) N() int { return t.n }

// Pair bundles a forward (g) and inverse (g^-1) table, installed on the
// transform together (spec §4.5).
type Pair struct {
	Forward *Table
	Inverse *Table
}

// Identity returns a gain pair that passes values through unchanged,
// used when gamma is disabled (spec §4.5: "Disabling gamma
// short-circuits both calls to identity").
func Identity() Pair {
	return Pair{}
}

// ApplyForward evaluates the forward (scene-linearisation) function, or
// the identity if no table was installed.
func (p Pair) ApplyForward(v float64) float64 {
	if p.Forward == nil {
		return v
	}
	return p.Forward.Eval(v)
}

// ApplyInverse evaluates the inverse (re-encoding) function, or the
// identity if no table was installed.
func (p Pair) ApplyInverse(v float64) float64 {
	if p.Inverse == nil {
		return v
	}
	return p.Inverse.Eval(v)
}

// NewPair builds a Pair of precomputed tables at the given precision
// from a forward/inverse function pair.
func NewPair(precision int, forward, inverse func(float64) float64) (Pair, error) {
	if precision <= 0 {
		precision = defaultPrecision
	}
	fwd, err := NewTable(precision, forward)
	if err != nil {
		return Pair{}, err
	}
	inv, err := NewTable(precision, inverse)
	if err != nil {
		return Pair{}, err
	}
	return Pair{Forward: fwd, Inverse: inv}, nil
}
