package dither

import (
	"github.com/ironsheep/pixelcore/internal/logging"
	"github.com/ironsheep/pixelcore/internal/pixbuf"
	"github.com/ironsheep/pixelcore/internal/pixel"
)

// Binary reduces every pixel to lower or upper. Pixels whose luminance is
// at least threshold become upper; the error is diffused with d.
func Binary[P pixel.Pixel[P]](acc *pixbuf.Accessor[P], d Diffuser[P], threshold float32, lower, upper P) {
	w, h := acc.Width(), acc.Height()
	logging.Logger().Debug("binary dither", "width", w, "height", h, "threshold", threshold)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			src := acc.At(x, y)
			out := lower
			if src.Vector().Luminance() >= threshold {
				out = upper
			}
			d.Dither(acc, src, out, x, y, w, h, true)
		}
	}
}

// Palette reduces every pixel to its nearest palette entry, then diffuses
// the error with d.
func Palette[P pixel.Pixel[P]](acc *pixbuf.Accessor[P], d Diffuser[P], palette []P) error {
	if len(palette) == 0 {
		return ErrEmptyPalette
	}
	w, h := acc.Width(), acc.Height()
	logging.Logger().Debug("palette dither", "width", w, "height", h, "colors", len(palette))

	vectors := make([]pixel.Vector, len(palette))
	for i, p := range palette {
		vectors[i] = p.Vector()
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			src := acc.At(x, y)
			out := palette[nearest(vectors, src.Vector())]
			acc.Set(x, y, out)
			d.Dither(acc, src, out, x, y, w, h, false)
		}
	}
	return nil
}

func nearest(palette []pixel.Vector, v pixel.Vector) int {
	best, bestDist := 0, palette[0].DistanceSquared(v)
	for i := 1; i < len(palette); i++ {
		if d := palette[i].DistanceSquared(v); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
