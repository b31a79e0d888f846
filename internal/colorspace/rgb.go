package colorspace

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/pixelcore/internal/pixel"
)

// SRGBWhitePoint is the XYZ of sRGB white under the same matrix VectorToXyz
// uses. It sits close to, but not exactly on, IlluminantD65; adapting from
// it keeps white neutral under every illuminant.
var SRGBWhitePoint = VectorToXyz(pixel.Splat(1))

// VectorToXyz converts the RGB channels of a normalized sRGB vector to XYZ
// under D65. Alpha is ignored.
func VectorToXyz(v pixel.Vector) CieXyz {
	x, y, z := colorful.Color{R: float64(v.R), G: float64(v.G), B: float64(v.B)}.Xyz()
	return CieXyz{X: x, Y: y, Z: z}
}

// XyzToVector converts a D65 XYZ color to a normalized sRGB vector with the
// given alpha. Out-of-gamut results are left unclamped; the pixel format
// saturates them when the vector is packed.
func XyzToVector(c CieXyz, alpha float32) pixel.Vector {
	rgb := colorful.Xyz(c.X, c.Y, c.Z)
	return pixel.Vector{R: float32(rgb.R), G: float32(rgb.G), B: float32(rgb.B), A: alpha}
}

// VectorToHunterLab converts a normalized sRGB vector to HunterLab
// relative to wp, adapting from the sRGB white first.
func VectorToHunterLab(v pixel.Vector, wp CieXyz) HunterLab {
	return XyzToHunterLab(Adapt(VectorToXyz(v), SRGBWhitePoint, wp), wp)
}

// HunterLabToVector converts a HunterLab color to a normalized sRGB vector
// with the given alpha.
func HunterLabToVector(lab HunterLab, alpha float32) pixel.Vector {
	c := Adapt(HunterLabToXyz(lab), lab.WhitePoint, SRGBWhitePoint)
	return XyzToVector(c, alpha)
}

// VectorToHunterLab converts v using the converter's cached coefficients.
func (c *HunterLabConverter) VectorToHunterLab(v pixel.Vector) HunterLab {
	return c.FromXyz(Adapt(VectorToXyz(v), SRGBWhitePoint, c.wp))
}

// HunterLabToVector converts lab using the converter's cached
// coefficients.
func (c *HunterLabConverter) HunterLabToVector(lab HunterLab, alpha float32) pixel.Vector {
	return XyzToVector(Adapt(c.ToXyz(lab), c.wp, SRGBWhitePoint), alpha)
}
