// Package pixel defines the normalized-color contract every pixel format
// implements, and the concrete formats shipped with pixelcore.
//
// A format is any comparable value type P that converts itself to a Vector
// and packs a Vector back into a P. Everything above this package (buffers,
// brushes, diffusers) is written generically over that contract, so the
// compiler specializes the hot loops for each concrete format.
//
// # Round Trips
//
// For every representable value p of a format,
//
//	p.FromVector(p.Vector()) == p
//
// The conversion routines add no rounding of their own beyond the native
// precision of the encoding.
//
// # Packing Rules
//
// FromVector is total: it never fails and never panics. Each format states
// how it saturates out-of-range input:
//   - RGBA8, BGRA8, Gray8: clamp to [0,1], NaN becomes 0, round to 8 bits.
//   - RGBA64: clamp to [0,1], NaN becomes 0, round to 16 bits.
//   - RGBAF32: stores channels unclamped, NaN becomes 0.
package pixel

import (
	"image/color"
	"math"
)

// Pixel is the constraint satisfied by every pixel format.
//
// FromVector is called on the zero value and must not depend on the
// receiver's contents.
type Pixel[P any] interface {
	comparable
	color.Color

	// Vector converts the pixel to normalized form.
	Vector() Vector

	// FromVector packs v using the format's saturation rule.
	FromVector(v Vector) P
}

// Pack packs v into the format P.
func Pack[P Pixel[P]](v Vector) P {
	var zero P
	return zero.FromVector(v)
}

// FromColor converts any standard library color into the format P.
func FromColor[P Pixel[P]](c color.Color) P {
	if p, ok := c.(P); ok {
		return p
	}
	return Pack[P](VectorFromColor(c))
}

// Model returns a color.Model converting to the format P.
func Model[P Pixel[P]]() color.Model {
	return color.ModelFunc(func(c color.Color) color.Color {
		return FromColor[P](c)
	})
}

// Extremes returns the normalized form of the largest and smallest values
// the format P can represent. They are found by packing vectors of
// ±MaxFloat32 through the format's own saturation rule and converting back.
func Extremes[P Pixel[P]]() (hi, lo Vector) {
	hi = Pack[P](Splat(math.MaxFloat32)).Vector()
	lo = Pack[P](Splat(-math.MaxFloat32)).Vector()
	return hi, lo
}

// clampUnit saturates v to [0,1]. NaN maps to 0.
func clampUnit(v float32) float64 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return float64(v)
}

func pack8(v float32) uint8 {
	return uint8(clampUnit(v)*0xff + 0.5)
}

func pack16(v float32) uint16 {
	return uint16(clampUnit(v)*0xffff + 0.5)
}

func unpack8(b uint8) float32 {
	return float32(b) / 0xff
}

func unpack16(b uint16) float32 {
	return float32(b) / 0xffff
}
