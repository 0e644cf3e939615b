// Package lcerr defines the error kinds shared across the correction engine.
package lcerr

import "errors"

// Sentinel error kinds. Every error the engine returns wraps exactly one
// of these via fmt.Errorf("...: %w", kind) so callers can classify a
// failure with errors.Is regardless of which package raised it.
var (
	// InvalidConfiguration marks a malformed coefficient vector, negative
	// support, zero precision, out-of-bounds ROI, or non-positive
	// dimension. Always raised at construction or at the mutator call
	// that made the configuration invalid, never from inside a transform.
	InvalidConfiguration = errors.New("invalid configuration")

	// LayoutMismatch marks an unsupported or inconsistent storage layout.
	LayoutMismatch = errors.New("layout mismatch")

	// IOError wraps a failure reported by the external raster codec
	// collaborator. The engine never originates this kind itself.
	IOError = errors.New("io error")
)
