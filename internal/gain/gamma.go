package gain

import (
	"fmt"
	"math"

	"github.com/anvik/lenscorrect/internal/lcerr"
)

// NewGamma builds a generic-gamma transfer-function pair: forward v^gamma
// (scene-linearisation), inverse v^(1/gamma) (re-encoding) (spec §4.5).
func NewGamma(gamma float64, precision int) (Pair, error) {
	if gamma <= 0 {
		return Pair{}, fmt.Errorf("gamma must be positive, got %v: %w", gamma, lcerr.InvalidConfiguration)
	}
	forward := func(v float64) float64 { return math.Pow(v, gamma) }
	inverse := func(v float64) float64 { return math.Pow(v, 1/gamma) }
	return NewPair(precision, forward, inverse)
}
