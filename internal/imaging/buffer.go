package imaging

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/pixelcore/internal/pixbuf"
	"github.com/ironsheep/pixelcore/internal/pixel"
)

// ToBuffer copies any decoded image into a new pixel buffer of format P.
//
// The buffer's (0,0) is the image's top-left pixel regardless of the source
// bounds. 16-bit sources (*image.RGBA64, *image.NRGBA64, *image.Gray16) are
// read at full depth so wide formats keep their precision; everything else
// is normalized to non-premultiplied 8-bit RGBA first.
func ToBuffer[P pixel.Pixel[P]](img image.Image) (*pixbuf.Image[P], error) {
	switch img.(type) {
	case *image.RGBA64, *image.NRGBA64, *image.Gray16:
		return toBufferDeep[P](img)
	}

	src := imaging.Clone(img)
	w, h := src.Bounds().Dx(), src.Bounds().Dy()

	buf, err := pixbuf.New[P](w, h)
	if err != nil {
		return nil, err
	}
	err = buf.With(func(acc *pixbuf.Accessor[P]) error {
		for y := 0; y < h; y++ {
			row := acc.Row(y, 0, w)
			off := y * src.Stride
			for x := range row {
				s := src.Pix[off+4*x : off+4*x+4 : off+4*x+4]
				row[x] = pixel.Pack[P](pixel.RGBA8{R: s[0], G: s[1], B: s[2], A: s[3]}.Vector())
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return buf, nil
}

func toBufferDeep[P pixel.Pixel[P]](img image.Image) (*pixbuf.Image[P], error) {
	b := img.Bounds()
	buf, err := pixbuf.New[P](b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	err = buf.With(func(acc *pixbuf.Accessor[P]) error {
		for y := 0; y < acc.Height(); y++ {
			row := acc.Row(y, 0, acc.Width())
			for x := range row {
				row[x] = pixel.Pack[P](pixel.VectorFromColor(img.At(b.Min.X+x, b.Min.Y+y)))
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// FromBuffer renders buf as a non-premultiplied 8-bit RGBA image.
func FromBuffer[P pixel.Pixel[P]](buf *pixbuf.Image[P]) *image.NRGBA {
	dst := imaging.New(buf.Width(), buf.Height(), color.Transparent)
	acc := buf.Lock()
	defer acc.Release()

	for y := 0; y < acc.Height(); y++ {
		off := y * dst.Stride
		for x, p := range acc.Row(y, 0, acc.Width()) {
			c := pixel.Pack[pixel.RGBA8](p.Vector())
			copy(dst.Pix[off+4*x:off+4*x+4], []uint8{c.R, c.G, c.B, c.A})
		}
	}
	return dst
}
