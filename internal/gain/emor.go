package gain

import (
	"fmt"
	"math"

	"github.com/anvik/lenscorrect/internal/lcerr"
)

// emorBasisForward and emorBasisInverse are the fixed basis curves the
// EMOR/inverse-EMOR coefficient vector is combined with (spec §4.5: "an
// Empirical Model of Response using a fixed set of basis curves plus a
// coefficient vector"). Basis 0 is always the identity mean-response
// curve; bases 1..K are smooth, endpoint-anchored (h(0)=0, h(1)=0)
// functions so that an arbitrary coefficient vector cannot move the
// curve's endpoints off [0,1].
//
// The real Grossberg/Nayar EMOR basis is calibration data this
// engine's retrieved reference pack does not contain, so this uses a
// generic damped-sine basis family instead — see DESIGN.md Open
// Question (a) for why the forward and inverse curves are independently
// monotonised rather than built as a literal functional inverse of one
// another.
func emorBasisForward(k int, v float64) float64 {
	if k == 0 {
		return v
	}
	return math.Sin(float64(k)*math.Pi*v) / float64(k)
}

func emorBasisInverse(k int, v float64) float64 {
	if k == 0 {
		return v
	}
	return (1 - math.Cos(2*float64(k)*math.Pi*v)) / (2 * float64(k))
}

func emorEval(coeffs []float64, basis func(int, float64) float64, v float64) float64 {
	out := basis(0, v)
	for k, c := range coeffs {
		out += c * basis(k+1, v)
	}
	return out
}

// monotoniseClampToPrevious enforces non-decreasing output by clamping
// each sample to the previous sample whenever the raw evaluation would
// decrease (spec §4.5: "monotonicity is enforced by clamping each sample
// to the previous sample when the polynomial output would decrease").
func monotoniseClampToPrevious(n int, raw func(float64) float64) func(float64) float64 {
	samples := make([]float64, n+1)
	prev := raw(0)
	samples[0] = prev
	for i := 1; i <= n; i++ {
		v := float64(i) / float64(n)
		y := raw(v)
		if y < prev {
			y = prev
		}
		samples[i] = y
		prev = y
	}
	return func(v float64) float64 {
		if v < 0 {
			v = 0
		} else if v > 1 {
			v = 1
		}
		pos := v * float64(n)
		i := int(pos)
		if i >= n {
			return samples[n]
		}
		frac := pos - float64(i)
		return samples[i] + (samples[i+1]-samples[i])*frac
	}
}

// NewEMOR builds an EMOR/inverse-EMOR transfer-function pair from a
// single coefficient vector (spec §4.5, spec §6's --emor-params). The
// forward and inverse curves are each independently clamped monotonic
// (DESIGN.md Open Question (a)): the inverse is not guaranteed to be a
// numerically exact functional inverse of the forward curve.
func NewEMOR(coeffs []float64, precision int) (Pair, error) {
	if len(coeffs) == 0 {
		return Pair{}, fmt.Errorf("emor coefficient vector must be non-empty: %w", lcerr.InvalidConfiguration)
	}
	if precision <= 0 {
		precision = defaultPrecision
	}
	forwardRaw := func(v float64) float64 { return emorEval(coeffs, emorBasisForward, v) }
	inverseRaw := func(v float64) float64 { return emorEval(coeffs, emorBasisInverse, v) }

	monoForward := monotoniseClampToPrevious(precision, forwardRaw)
	monoInverse := monotoniseClampToPrevious(precision, inverseRaw)

	fwd, err := NewTable(precision, monoForward)
	if err != nil {
		return Pair{}, err
	}
	inv, err := NewTable(precision, monoInverse)
	if err != nil {
		return Pair{}, err
	}
	return Pair{Forward: fwd, Inverse: inv}, nil
}
