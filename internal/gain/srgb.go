package gain

import "math"

// sRGB companding constants (IEC 61966-2-1).
const (
	srgbThreshold  = 0.0031308
	srgbLinThresh  = 0.04045
	srgbAlpha      = 0.055
	srgbLinSlope   = 12.92
	srgbGamma      = 2.4
)

func srgbToLinear(v float64) float64 {
	if v <= srgbLinThresh {
		return v / srgbLinSlope
	}
	return math.Pow((v+srgbAlpha)/(1+srgbAlpha), srgbGamma)
}

func linearToSrgb(v float64) float64 {
	if v <= srgbThreshold {
		return v * srgbLinSlope
	}
	return (1+srgbAlpha)*math.Pow(v, 1/srgbGamma) - srgbAlpha
}

// NewSRGB builds the standard sRGB companding curve transfer-function
// pair (spec §4.5: "sRGB piecewise (standard companding curve)").
func NewSRGB(precision int) (Pair, error) {
	return NewPair(precision, srgbToLinear, linearToSrgb)
}
