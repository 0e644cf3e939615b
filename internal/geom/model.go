// Package geom implements the geometric correction model queue (spec
// §4.2): per-channel coordinate warps (PTLens distortion, linear
// scaling/TCA, lens-projection conversion) composed left to right into a
// single destination-to-source coordinate mapping.
package geom

import "github.com/anvik/lenscorrect/internal/coord"

// kind tags which concrete model a Model value holds. Grounded on the
// teacher's internal/fit/renderer/backend.go Backend enum + factory
// (NewRendererForBackend): a small closed tag selecting which concrete
// implementation a generic call site dispatches to, generalised here
// from "rendering backend" to "geometric model kind" (spec §9: "Replace
// with a tagged variant of concrete model records plus a uniform 'apply'
// operation").
type kind int

const (
	kindPTLens kind = iota
	kindScaler
	kindProjection
)

// Model is a tagged-variant geometric correction functor. Exactly one of
// the payload fields is meaningful, selected by kind. Model is a value
// type: copying it is a structural copy of the whole payload, which is
// what Queue.Add relies on for its "deep-clones on add" ownership rule
// (spec §3).
type Model struct {
	kind       kind
	ptlens     ptlensParams
	scaler     scalerParams
	projection projectionParams
}

// Apply maps a destination coordinate to a per-channel source coordinate
// tuple (spec §4.2). lanes selects how many channels are active (1, 3 or
// 4); for the monochrome case (lanes==1) every per-channel coefficient
// set must already agree (enforced by the constructors' default of equal
// parameters across channels).
func (m Model) Apply(in coord.Tuple) coord.Tuple {
	switch m.kind {
	case kindPTLens:
		return m.ptlens.apply(in)
	case kindScaler:
		return m.scaler.apply(in)
	case kindProjection:
		return m.projection.apply(in)
	default:
		return in
	}
}
