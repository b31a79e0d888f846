package colorspace

import "math"

// HunterLab is a color in the Hunter 1948 L, a, b space, tied to the
// whitepoint it was computed against.
type HunterLab struct {
	L, A, B float64

	// WhitePoint is the reference white of the conversion that produced
	// the color.
	WhitePoint CieXyz
}

// ComputeKa returns the Ka coefficient of the HunterLab formulas for the
// given whitepoint. Illuminant C uses the tabulated constant 175; any other
// whitepoint, including one that is merely close to C, uses the general
// approximation.
func ComputeKa(wp CieXyz) float64 {
	if wp == IlluminantC {
		return 175
	}
	return 100 * (175 / 198.04) * (wp.X + wp.Y)
}

// ComputeKb returns the Kb coefficient of the HunterLab formulas for the
// given whitepoint. Illuminant C uses the tabulated constant 70.
func ComputeKb(wp CieXyz) float64 {
	if wp == IlluminantC {
		return 70
	}
	return 100 * (70 / 218.11) * (wp.Y + wp.Z)
}

// XyzToHunterLab converts an XYZ color to HunterLab relative to wp.
//
// A color with zero (or negative) luminance maps to L = a = b = 0, where the
// chromatic terms of the formula are undefined.
func XyzToHunterLab(c CieXyz, wp CieXyz) HunterLab {
	return hunterLab(c, wp, ComputeKa(wp), ComputeKb(wp))
}

// HunterLabToXyz converts a HunterLab color back to XYZ using the
// whitepoint stored in the color.
func HunterLabToXyz(lab HunterLab) CieXyz {
	wp := lab.WhitePoint
	return xyz(lab, wp, ComputeKa(wp), ComputeKb(wp))
}

// HunterLabConverter converts many colors against one whitepoint, computing
// Ka and Kb once. A converter is immutable and safe for concurrent use.
type HunterLabConverter struct {
	wp     CieXyz
	ka, kb float64
}

// NewHunterLabConverter returns a converter bound to wp.
func NewHunterLabConverter(wp CieXyz) *HunterLabConverter {
	return &HunterLabConverter{wp: wp, ka: ComputeKa(wp), kb: ComputeKb(wp)}
}

// WhitePoint returns the converter's reference white.
func (c *HunterLabConverter) WhitePoint() CieXyz {
	return c.wp
}

// FromXyz converts an XYZ color to HunterLab.
func (c *HunterLabConverter) FromXyz(v CieXyz) HunterLab {
	return hunterLab(v, c.wp, c.ka, c.kb)
}

// ToXyz converts a HunterLab color to XYZ. The color is interpreted against
// the converter's whitepoint regardless of lab.WhitePoint.
func (c *HunterLabConverter) ToXyz(lab HunterLab) CieXyz {
	return xyz(lab, c.wp, c.ka, c.kb)
}

func hunterLab(c, wp CieXyz, ka, kb float64) HunterLab {
	yr := c.Y / wp.Y
	if !(yr > 0) {
		return HunterLab{WhitePoint: wp}
	}
	sy := math.Sqrt(yr)
	return HunterLab{
		L:          100 * sy,
		A:          ka * ((c.X/wp.X - yr) / sy),
		B:          kb * ((yr - c.Z/wp.Z) / sy),
		WhitePoint: wp,
	}
}

func xyz(lab HunterLab, wp CieXyz, ka, kb float64) CieXyz {
	l := lab.L / 100
	yr := l * l
	sy := math.Abs(l)
	return CieXyz{
		X: (lab.A/ka*sy + yr) * wp.X,
		Y: yr * wp.Y,
		Z: (lab.B/kb*sy - yr) * -wp.Z,
	}
}
