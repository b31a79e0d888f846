package pixel

import (
	"image/color"
	"math"
)

// RGBA8 is 8 bits per channel, straight (non-premultiplied) alpha.
type RGBA8 struct {
	R, G, B, A uint8
}

// Vector implements Pixel.
func (p RGBA8) Vector() Vector {
	return Vector{R: unpack8(p.R), G: unpack8(p.G), B: unpack8(p.B), A: unpack8(p.A)}
}

// FromVector implements Pixel.
func (RGBA8) FromVector(v Vector) RGBA8 {
	return RGBA8{R: pack8(v.R), G: pack8(v.G), B: pack8(v.B), A: pack8(v.A)}
}

// RGBA implements color.Color.
func (p RGBA8) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: p.R, G: p.G, B: p.B, A: p.A}.RGBA()
}

// BGRA8 is RGBA8 with the channels stored blue first, as used by many
// windowing systems.
type BGRA8 struct {
	B, G, R, A uint8
}

// Vector implements Pixel.
func (p BGRA8) Vector() Vector {
	return Vector{R: unpack8(p.R), G: unpack8(p.G), B: unpack8(p.B), A: unpack8(p.A)}
}

// FromVector implements Pixel.
func (BGRA8) FromVector(v Vector) BGRA8 {
	return BGRA8{B: pack8(v.B), G: pack8(v.G), R: pack8(v.R), A: pack8(v.A)}
}

// RGBA implements color.Color.
func (p BGRA8) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: p.R, G: p.G, B: p.B, A: p.A}.RGBA()
}

// RGBA64 is 16 bits per channel, straight alpha.
type RGBA64 struct {
	R, G, B, A uint16
}

// Vector implements Pixel.
func (p RGBA64) Vector() Vector {
	return Vector{R: unpack16(p.R), G: unpack16(p.G), B: unpack16(p.B), A: unpack16(p.A)}
}

// FromVector implements Pixel.
func (RGBA64) FromVector(v Vector) RGBA64 {
	return RGBA64{R: pack16(v.R), G: pack16(v.G), B: pack16(v.B), A: pack16(v.A)}
}

// RGBA implements color.Color.
func (p RGBA64) RGBA() (r, g, b, a uint32) {
	return color.NRGBA64{R: p.R, G: p.G, B: p.B, A: p.A}.RGBA()
}

// Gray8 is an opaque 8-bit luminance value.
//
// It normalizes to (Y, Y, Y, 1). Packing takes the BT.601 luma of the RGB
// channels and discards alpha.
type Gray8 struct {
	Y uint8
}

// Vector implements Pixel.
func (p Gray8) Vector() Vector {
	y := unpack8(p.Y)
	return Vector{R: y, G: y, B: y, A: 1}
}

// FromVector implements Pixel.
func (Gray8) FromVector(v Vector) Gray8 {
	return Gray8{Y: pack8(v.Luminance())}
}

// RGBA implements color.Color.
func (p Gray8) RGBA() (r, g, b, a uint32) {
	return color.Gray{Y: p.Y}.RGBA()
}

// RGBAF32 stores normalized channels directly as float32, straight alpha.
//
// Values are not clamped, so its representable extremes are ±MaxFloat32.
// NaN channels are stored as 0.
type RGBAF32 struct {
	R, G, B, A float32
}

// Vector implements Pixel.
func (p RGBAF32) Vector() Vector {
	return Vector{R: p.R, G: p.G, B: p.B, A: p.A}
}

// FromVector implements Pixel.
func (RGBAF32) FromVector(v Vector) RGBAF32 {
	return RGBAF32{R: finite(v.R), G: finite(v.G), B: finite(v.B), A: finite(v.A)}
}

// RGBA implements color.Color. Channels are saturated to [0,1] and
// premultiplied on the way out.
func (p RGBAF32) RGBA() (r, g, b, a uint32) {
	af := clampUnit(p.A)
	a = uint32(af*0xffff + 0.5)
	r = uint32(clampUnit(p.R)*af*0xffff + 0.5)
	g = uint32(clampUnit(p.G)*af*0xffff + 0.5)
	b = uint32(clampUnit(p.B)*af*0xffff + 0.5)
	return r, g, b, a
}

func finite(v float32) float32 {
	if math.IsNaN(float64(v)) {
		return 0
	}
	return v
}
