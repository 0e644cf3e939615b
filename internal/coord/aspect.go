package coord

import "math"

// HalfDiagonal returns the half-diagonal length, in the normalised
// coordinate system, of a sensor described by an aspect ratio and a crop
// factor: d = sqrt(1 + a^2) / c (spec §3).
func HalfDiagonal(aspect, crop float64) float64 {
	return math.Sqrt(1+aspect*aspect) / crop
}

// ReconcileScale computes the coefficient rescale factor k = d_input /
// d_param (spec §3: "Parameter-coordinate reconciliation"), to be applied
// to a lens model's stored coefficients — never to the input coordinates
// — whenever either the parameter or the input aspect/crop changes.
func ReconcileScale(paramAspect, paramCrop, inputAspect, inputCrop float64) float64 {
	dParam := HalfDiagonal(paramAspect, paramCrop)
	dInput := HalfDiagonal(inputAspect, inputCrop)
	return dInput / dParam
}

// ScaleCoefficient rescales a single polynomial coefficient at degree n
// in the radius by k^n (spec §3: "each model coefficient at polynomial
// degree n in the radius scales by k^n").
func ScaleCoefficient(coeff float64, degree int, k float64) float64 {
	return coeff * math.Pow(k, float64(degree))
}

// NormalizedFromPixel converts an integer pixel position in a width x
// height raster to the normalised signed coordinate system: the image
// centre at the origin, short half-axis spanning [-1,+1], long half-axis
// spanning [-A,+A] with A = width/height (spec §3, §6).
//
// Per spec §9 Open Question (b), the conversion uses (W-1)/(H-1) so that
// integer pixel positions map exactly to integer sample-space
// coordinates under the inverse conversion used by the interpolators.
func NormalizedFromPixel(x, y, width, height int) Point {
	aspect := float64(width) / float64(height)
	sx := 2 * aspect / float64(width-1)
	sy := 2.0 / float64(height-1)
	return Point{
		X: float64(x)*sx - aspect,
		Y: float64(y)*sy - 1,
	}
}

// PixelFromNormalized is the inverse of NormalizedFromPixel; it is used
// by the interpolators to convert a destination-space coordinate back to
// sample space (spec §4.4).
func PixelFromNormalized(p Point, width, height int) (xs, ys float64) {
	aspect := float64(width) / float64(height)
	xs = (p.X + aspect) * float64(width-1) / (2 * aspect)
	ys = (p.Y + 1) * float64(height-1) / 2
	return xs, ys
}
