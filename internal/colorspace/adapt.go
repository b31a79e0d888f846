package colorspace

// Bradford cone-response matrix and its exact inverse.
var (
	bradford = [3][3]float64{
		{0.8951, 0.2664, -0.1614},
		{-0.7502, 1.7135, 0.0367},
		{0.0389, -0.0685, 1.0296},
	}
	bradfordInv = invert(bradford)
)

// Adapt maps an XYZ color seen under whitepoint from to the color that
// looks the same under whitepoint to, using the Bradford transform.
// When from and to are identical the color is returned unchanged.
func Adapt(c CieXyz, from, to CieXyz) CieXyz {
	if from == to {
		return c
	}
	src := mul(bradford, from)
	dst := mul(bradford, to)
	lms := mul(bradford, c)
	lms = CieXyz{
		X: lms.X * dst.X / src.X,
		Y: lms.Y * dst.Y / src.Y,
		Z: lms.Z * dst.Z / src.Z,
	}
	return mul(bradfordInv, lms)
}

func mul(m [3][3]float64, v CieXyz) CieXyz {
	return CieXyz{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// invert returns the inverse of a non-singular 3x3 matrix.
func invert(m [3][3]float64) [3][3]float64 {
	a, b, c := m[0][0], m[0][1], m[0][2]
	d, e, f := m[1][0], m[1][1], m[1][2]
	g, h, i := m[2][0], m[2][1], m[2][2]
	det := a*(e*i-f*h) - b*(d*i-f*g) + c*(d*h-e*g)
	return [3][3]float64{
		{(e*i - f*h) / det, (c*h - b*i) / det, (b*f - c*e) / det},
		{(f*g - d*i) / det, (a*i - c*g) / det, (c*d - a*f) / det},
		{(d*h - e*g) / det, (b*g - a*h) / det, (a*e - b*d) / det},
	}
}
