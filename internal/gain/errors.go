package gain

import (
	"fmt"

	"github.com/anvik/lenscorrect/internal/lcerr"
)

// ErrInvalidPrecision wraps lcerr.InvalidConfiguration for a zero or
// negative table precision (spec §7: "zero precision").
var ErrInvalidPrecision = fmt.Errorf("table precision must be positive: %w", lcerr.InvalidConfiguration)
