package pixel

import "image/color"

// Vector is a color in normalized form: four float32 channels in R, G, B, A
// order. Standard formats produce values in [0,1]; formats with a wider
// gamut may produce values outside that range.
//
// Vector is a plain value. All arithmetic shared between pixel formats is
// done on Vectors, never on raw encodings.
type Vector struct {
	R, G, B, A float32
}

// Splat returns a Vector with every channel set to v.
func Splat(v float32) Vector {
	return Vector{R: v, G: v, B: v, A: v}
}

// Add returns v + o, channel by channel.
func (v Vector) Add(o Vector) Vector {
	return Vector{R: v.R + o.R, G: v.G + o.G, B: v.B + o.B, A: v.A + o.A}
}

// Sub returns v - o, channel by channel.
func (v Vector) Sub(o Vector) Vector {
	return Vector{R: v.R - o.R, G: v.G - o.G, B: v.B - o.B, A: v.A - o.A}
}

// Scale multiplies every channel by s.
func (v Vector) Scale(s float32) Vector {
	return Vector{R: v.R * s, G: v.G * s, B: v.B * s, A: v.A * s}
}

// DistanceSquared returns the squared Euclidean distance between v and o
// over all four channels.
//
// The sum is accumulated in float64. Formats such as RGBAF32 report
// extremes of ±MaxFloat32, whose squared difference overflows float32.
func (v Vector) DistanceSquared(o Vector) float64 {
	dr := float64(v.R) - float64(o.R)
	dg := float64(v.G) - float64(o.G)
	db := float64(v.B) - float64(o.B)
	da := float64(v.A) - float64(o.A)
	return dr*dr + dg*dg + db*db + da*da
}

// Lerp interpolates linearly from v (t = 0) to o (t = 1).
// The result is exactly v at t = 0 and exactly o at t = 1.
func (v Vector) Lerp(o Vector, t float32) Vector {
	s := 1 - t
	return Vector{
		R: v.R*s + o.R*t,
		G: v.G*s + o.G*t,
		B: v.B*s + o.B*t,
		A: v.A*s + o.A*t,
	}
}

// Premultiply returns v with RGB multiplied by alpha.
func (v Vector) Premultiply() Vector {
	return Vector{R: v.R * v.A, G: v.G * v.A, B: v.B * v.A, A: v.A}
}

// Unpremultiply divides RGB by alpha. A zero alpha yields all-zero RGB.
func (v Vector) Unpremultiply() Vector {
	if v.A == 0 {
		return Vector{}
	}
	return Vector{R: v.R / v.A, G: v.G / v.A, B: v.B / v.A, A: v.A}
}

// PremultipliedLerp interpolates between two straight-alpha colors in
// premultiplied space and returns the straight-alpha result.
func PremultipliedLerp(from, to Vector, t float32) Vector {
	return from.Premultiply().Lerp(to.Premultiply(), t).Unpremultiply()
}

// Luminance returns the ITU-R BT.601 luma of the RGB channels.
func (v Vector) Luminance() float32 {
	return float32(0.299*float64(v.R) + 0.587*float64(v.G) + 0.114*float64(v.B))
}

// VectorFromColor normalizes any standard library color. The color is read
// through its alpha-premultiplied RGBA method and un-premultiplied.
func VectorFromColor(c color.Color) Vector {
	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	return Vector{
		R: float32(n.R) / 0xffff,
		G: float32(n.G) / 0xffff,
		B: float32(n.B) / 0xffff,
		A: float32(n.A) / 0xffff,
	}
}
