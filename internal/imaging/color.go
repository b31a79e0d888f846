package imaging

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/pixelcore/internal/colorspace"
	"github.com/ironsheep/pixelcore/internal/pixel"
)

// DefaultIlluminant is the HunterLab reference white used when a caller
// names none.
const DefaultIlluminant = "C"

// RGBAColor represents an RGBA color with 8-bit, non-premultiplied components.
type RGBAColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"` // 0 = fully transparent, 255 = opaque
}

// XYZColor is a CIE 1931 XYZ tristimulus value relative to D65, Y in [0,1].
type XYZColor struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HunterLabColor is a Hunter 1948 L, a, b value.
type HunterLabColor struct {
	L          float64 `json:"l"`
	A          float64 `json:"a"`
	B          float64 `json:"b"`
	Illuminant string  `json:"illuminant"`
}

// ColorResult contains a color value in multiple representations.
type ColorResult struct {
	Hex       string         `json:"hex"` // "#rrggbb", alpha excluded
	RGBA      RGBAColor      `json:"rgba"`
	XYZ       XYZColor       `json:"xyz"`
	HunterLab HunterLabColor `json:"hunter_lab"`
}

// Describer converts normalized colors into ColorResults under one
// HunterLab reference white.
type Describer struct {
	illuminant string
	conv       *colorspace.HunterLabConverter
}

// NewDescriber returns a Describer for the named illuminant. An empty name
// selects DefaultIlluminant.
func NewDescriber(illuminant string) (*Describer, error) {
	if illuminant == "" {
		illuminant = DefaultIlluminant
	}
	wp, err := colorspace.LookupIlluminant(illuminant)
	if err != nil {
		return nil, err
	}
	return &Describer{
		illuminant: strings.ToUpper(strings.TrimSpace(illuminant)),
		conv:       colorspace.NewHunterLabConverter(wp),
	}, nil
}

// Describe converts v.
func (d *Describer) Describe(v pixel.Vector) ColorResult {
	c := pixel.Pack[pixel.RGBA8](v)
	// Derive the color spaces from the 8-bit value so every field agrees.
	q := c.Vector()
	xyz := colorspace.VectorToXyz(q)
	lab := d.conv.VectorToHunterLab(q)

	return ColorResult{
		Hex:       colorful.Color{R: float64(q.R), G: float64(q.G), B: float64(q.B)}.Hex(),
		RGBA:      RGBAColor{R: c.R, G: c.G, B: c.B, A: c.A},
		XYZ:       XYZColor{X: xyz.X, Y: xyz.Y, Z: xyz.Z},
		HunterLab: HunterLabColor{L: lab.L, A: lab.A, B: lab.B, Illuminant: d.illuminant},
	}
}

// FromHunterLab converts a HunterLab value under the describer's
// illuminant back to a color. inGamut reports whether the value was inside
// sRGB before the RGB channels were clamped.
func (d *Describer) FromHunterLab(l, a, b float64, alpha float32) (res ColorResult, inGamut bool) {
	v := d.conv.HunterLabToVector(colorspace.HunterLab{L: l, A: a, B: b, WhitePoint: d.conv.WhitePoint()}, alpha)
	inGamut = inUnit(v.R) && inUnit(v.G) && inUnit(v.B)
	return d.Describe(v), inGamut
}

func inUnit(v float32) bool {
	const tol = 1e-4
	return v >= -tol && v <= 1+tol
}

// SampleColor extracts the color at a pixel coordinate.
//
// Coordinates are 0-based relative to the image's top-left pixel. It returns
// an error if (x, y) is outside the image.
func (d *Describer) SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	bounds := img.Bounds()
	if x < 0 || x >= bounds.Dx() || y < 0 || y >= bounds.Dy() {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds %dx%d", x, y, bounds.Dx(), bounds.Dy())
	}

	res := d.Describe(pixel.VectorFromColor(img.At(bounds.Min.X+x, bounds.Min.Y+y)))
	return &res, nil
}

// LabeledPoint represents a pixel coordinate with an optional descriptive label.
type LabeledPoint struct {
	X     int
	Y     int
	Label string
}

// LabeledColorResult combines a color sample with its location and optional label.
type LabeledColorResult struct {
	Label string      `json:"label,omitempty"`
	X     int         `json:"x"`
	Y     int         `json:"y"`
	Color ColorResult `json:"color"`
}

// MultiColorResult contains color samples from multiple points, in input order.
type MultiColorResult struct {
	Samples []LabeledColorResult `json:"samples"`
}

// SampleColors samples every point. Any point outside the image fails the
// whole call and no partial result is returned.
func (d *Describer) SampleColors(img image.Image, points []LabeledPoint) (*MultiColorResult, error) {
	results := make([]LabeledColorResult, 0, len(points))

	for _, p := range points {
		color, err := d.SampleColor(img, p.X, p.Y)
		if err != nil {
			return nil, fmt.Errorf("failed to sample point (%d,%d): %w", p.X, p.Y, err)
		}
		results = append(results, LabeledColorResult{
			Label: p.Label,
			X:     p.X,
			Y:     p.Y,
			Color: *color,
		})
	}

	return &MultiColorResult{Samples: results}, nil
}

// ParseColor parses "#rgb", "#rrggbb" or "#rrggbbaa" (the leading '#' is
// optional) into a normalized color.
func ParseColor(s string) (pixel.Vector, error) {
	hex := strings.TrimSpace(s)
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}

	alpha := float32(1)
	if len(hex) == 9 {
		a, err := strconv.ParseUint(hex[7:], 16, 8)
		if err != nil {
			return pixel.Vector{}, fmt.Errorf("invalid color %q: bad alpha", s)
		}
		alpha = float32(a) / 255
		hex = hex[:7]
	}

	if len(hex) != 4 && len(hex) != 7 {
		return pixel.Vector{}, fmt.Errorf("invalid color %q: want #rgb, #rrggbb or #rrggbbaa", s)
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return pixel.Vector{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return pixel.Vector{R: float32(c.R), G: float32(c.G), B: float32(c.B), A: alpha}, nil
}
