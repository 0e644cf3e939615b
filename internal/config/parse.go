package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/anvik/lenscorrect/internal/lcerr"
)

var validate = validator.New()

// Validate runs struct-tag validation over an Options value, wrapping
// the first failing field into an lcerr.InvalidConfiguration error.
func Validate(opts Options) error {
	if err := validate.Struct(opts); err != nil {
		return fmt.Errorf("invalid options: %s: %w", err, lcerr.InvalidConfiguration)
	}
	if opts.HasSubRect && (opts.SubRectW <= 0 || opts.SubRectH <= 0) {
		return fmt.Errorf("sub-rect width/height must be positive: %w", lcerr.InvalidConfiguration)
	}
	return nil
}

// ParseFloats splits a colon-separated list of floats, e.g. "1.2:-0.3:0",
// as used by --ptlens, --tca, --vignetting and --centre-shift.
func ParseFloats(s string) ([]float64, error) {
	parts := strings.Split(s, ":")
	out := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid numeric value %q: %w", p, lcerr.InvalidConfiguration)
		}
		out[i] = v
	}
	return out, nil
}

// ParseChannelCoeffs parses a "a:b:c[:d]" argument into a ChannelCoeffs
// value (spec §6: "--ptlens a:b:c[:d]").
func ParseChannelCoeffs(s string) (ChannelCoeffs, error) {
	vals, err := ParseFloats(s)
	if err != nil {
		return ChannelCoeffs{}, err
	}
	if len(vals) != 3 && len(vals) != 4 {
		return ChannelCoeffs{}, fmt.Errorf("expected 3 or 4 colon-separated coefficients, got %d: %w", len(vals), lcerr.InvalidConfiguration)
	}
	cc := ChannelCoeffs{A: vals[0], B: vals[1], C: vals[2]}
	if len(vals) == 4 {
		d := vals[3]
		cc.D = &d
	}
	return cc, nil
}

// ParsePerChannelCoeffs parses the --ptlens-r / --ptlens-b form, which
// always carries exactly four coefficients (no default-d shorthand).
func ParsePerChannelCoeffs(s string) (ChannelCoeffs, error) {
	vals, err := ParseFloats(s)
	if err != nil {
		return ChannelCoeffs{}, err
	}
	if len(vals) != 4 {
		return ChannelCoeffs{}, fmt.Errorf("expected 4 colon-separated coefficients, got %d: %w", len(vals), lcerr.InvalidConfiguration)
	}
	d := vals[3]
	return ChannelCoeffs{A: vals[0], B: vals[1], C: vals[2], D: &d}, nil
}

// ParseSubRect parses "x0:y0:w:h" into integer rectangle components
// (spec §6: "--sub-rect x0:y0:w:h").
func ParseSubRect(s string) (x0, y0, w, h int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 4 {
		return 0, 0, 0, 0, fmt.Errorf("expected x0:y0:w:h, got %q: %w", s, lcerr.InvalidConfiguration)
	}
	ints := make([]int, 4)
	for i, p := range parts {
		v, convErr := strconv.Atoi(strings.TrimSpace(p))
		if convErr != nil {
			return 0, 0, 0, 0, fmt.Errorf("invalid integer %q in sub-rect: %w", p, lcerr.InvalidConfiguration)
		}
		ints[i] = v
	}
	return ints[0], ints[1], ints[2], ints[3], nil
}
