// Package colour implements the colour correction model queue (spec
// §4.3): per-channel multiplicative gains evaluated at the source
// coordinate tuple the geometric queue produced, composed by
// element-wise multiplication.
package colour

import "github.com/anvik/lenscorrect/internal/coord"

// kind tags which concrete colour model a Model value holds, following
// the same tagged-variant idiom as internal/geom.Model (grounded on the
// teacher's renderer backend factory, internal/fit/renderer/backend.go).
type kind int

const (
	kindVignetting kind = iota
)

// Model is a tagged-variant colour correction functor.
type Model struct {
	kind       kind
	vignetting vignettingParams
}

// Apply evaluates the model's per-channel gain at a source coordinate
// tuple (spec §4.3).
func (m Model) Apply(src coord.Tuple) coord.Gains {
	switch m.kind {
	case kindVignetting:
		return m.vignetting.apply(src)
	default:
		return coord.Ones(src.Lanes)
	}
}
