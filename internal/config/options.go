// Package config holds the engine's external options record (spec §6)
// and its struct-tag validation, grounded on the codeninja55-go-radx
// example's use of github.com/go-playground/validator/v10 for
// declarative struct validation — the only repo in the retrieved set
// that validates option/config structs this way.
package config

// ChannelCoeffs is one channel's PTLens distortion (or TCA) coefficient
// set, as parsed from a "a:b:c[:d]" CLI argument (spec §6).
type ChannelCoeffs struct {
	A, B, C float64
	D       *float64
}

// VignettingCoeffs mirrors colour.VignettingCoeffs without importing the
// colour package, keeping config free of domain-package dependencies.
type VignettingCoeffs struct {
	A, B, C float64
}

// Options is the engine's options record (spec §6: "the core accepts an
// equivalent options record" to the informative CLI surface).
type Options struct {
	InputPath  string `validate:"required"`
	OutputPath string `validate:"required"`
	Verbose    bool

	// Geometric correction.
	PTLens     []ChannelCoeffs // --ptlens a:b:c[:d]
	PTLensR    []ChannelCoeffs // --ptlens-r a:b:c:d
	PTLensB    []ChannelCoeffs // --ptlens-b a:b:c:d
	TCAKr      float64         // --tca kr:kb
	TCAKb      float64
	HasTCA     bool
	Vignetting *VignettingCoeffs // --vignetting a:b:c

	ParamAspect float64 `validate:"omitempty,gt=0"`
	ParamCrop   float64 `validate:"omitempty,gt=0"`
	ImageCrop   float64 `validate:"omitempty,gt=0"`

	// Scale: an explicit value takes precedence; AutoScale requests the
	// bisection search in internal/autoscale (spec §4.7).
	Scale     float64 `validate:"omitempty,gt=0"`
	AutoScale bool

	SubRectX0, SubRectY0, SubRectW, SubRectH int
	HasSubRect                              bool

	GainFunc   string    `validate:"omitempty,oneof=srgb gamma emor invemor"`
	Gamma      float64   `validate:"omitempty,gt=0"`
	EmorParams []float64 // --emor-params h1:h2:...

	Interpolation  string `validate:"omitempty,oneof=nn bilin lanczos"`
	LanczosSupport int    `validate:"omitempty,gte=1"`
	Oversample     int    `validate:"required,gte=1"`

	CentreShiftX, CentreShiftY float64
}

// Default returns an Options value with the engine's defaults filled in,
// matching the CLI flag defaults described in spec §6.
func Default() Options {
	return Options{
		GainFunc:       "srgb",
		Interpolation:  "bilin",
		LanczosSupport: 2,
		Oversample:     1,
		ParamAspect:    1,
		ParamCrop:      1,
		ImageCrop:      1,
	}
}
