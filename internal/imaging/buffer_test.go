package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/pixelcore/internal/pixbuf"
	"github.com/ironsheep/pixelcore/internal/pixel"
)

func TestToBuffer(t *testing.T) {
	src := imaging.New(3, 2, color.NRGBA{10, 20, 30, 255})
	src.SetNRGBA(2, 1, color.NRGBA{200, 100, 50, 128})

	buf, err := ToBuffer[pixel.RGBA8](src)
	if err != nil {
		t.Fatalf("ToBuffer failed: %v", err)
	}
	if buf.Width() != 3 || buf.Height() != 2 {
		t.Fatalf("dimensions: got %dx%d, want 3x2", buf.Width(), buf.Height())
	}
	if got := buf.At(0, 0); got != (pixel.RGBA8{R: 10, G: 20, B: 30, A: 255}) {
		t.Errorf("At(0,0): got %v", got)
	}
	if got := buf.At(2, 1); got != (pixel.RGBA8{R: 200, G: 100, B: 50, A: 128}) {
		t.Errorf("At(2,1): got %v", got)
	}
}

func TestToBuffer_PremultipliedAndOffsetSource(t *testing.T) {
	// image.RGBA stores premultiplied values; half-transparent red is (128,0,0,128).
	src := image.NewRGBA(image.Rect(5, 5, 7, 6))
	src.SetRGBA(5, 5, color.RGBA{128, 0, 0, 128})

	buf, err := ToBuffer[pixel.RGBA8](src)
	if err != nil {
		t.Fatalf("ToBuffer failed: %v", err)
	}
	if got := buf.At(0, 0); got != (pixel.RGBA8{R: 255, A: 128}) {
		t.Errorf("At(0,0): got %v, want straight-alpha red", got)
	}
	if buf.Bounds() != image.Rect(0, 0, 2, 1) {
		t.Errorf("Bounds: got %v", buf.Bounds())
	}
}

func TestToBuffer_OtherFormats(t *testing.T) {
	src := imaging.New(1, 1, color.NRGBA{255, 0, 51, 255})

	f, err := ToBuffer[pixel.RGBAF32](src)
	if err != nil {
		t.Fatal(err)
	}
	if got := f.At(0, 0).(pixel.RGBAF32); got != (pixel.RGBAF32{R: 1, G: 0, B: 0.2, A: 1}) {
		t.Errorf("RGBAF32: got %v", got)
	}

	g, err := ToBuffer[pixel.BGRA8](src)
	if err != nil {
		t.Fatal(err)
	}
	if got := g.At(0, 0); got != (pixel.BGRA8{B: 51, G: 0, R: 255, A: 255}) {
		t.Errorf("BGRA8: got %v", got)
	}
}

func TestToBuffer_DeepSourceKeepsPrecision(t *testing.T) {
	src := image.NewNRGBA64(image.Rect(2, 3, 4, 4))
	src.SetNRGBA64(3, 3, color.NRGBA64{R: 0x1234, G: 0xfedc, B: 0x0101, A: 0x8001})

	wide, err := ToBuffer[pixel.RGBA64](src)
	if err != nil {
		t.Fatal(err)
	}
	if got := wide.At(1, 0); got != (pixel.RGBA64{R: 0x1234, G: 0xfedc, B: 0x0101, A: 0x8001}) {
		t.Errorf("RGBA64: got %v, want the 16-bit source value", got)
	}

	f, err := ToBuffer[pixel.RGBAF32](src)
	if err != nil {
		t.Fatal(err)
	}
	if got := f.At(1, 0).(pixel.RGBAF32); got.R != float32(0x1234)/0xffff {
		t.Errorf("RGBAF32: got R=%v, want %v", got.R, float32(0x1234)/0xffff)
	}

	// 8-bit formats still round to the nearest 8-bit value.
	b, err := ToBuffer[pixel.RGBA8](src)
	if err != nil {
		t.Fatal(err)
	}
	if got := b.At(1, 0); got != (pixel.RGBA8{R: 0x12, G: 0xfe, B: 0x01, A: 0x80}) {
		t.Errorf("RGBA8: got %v", got)
	}

	if _, err := ToBuffer[pixel.RGBA64](image.NewRGBA64(image.Rect(0, 0, 3, 0))); !errors.Is(err, pixbuf.ErrInvalidDimensions) {
		t.Errorf("empty 16-bit image: got %v, want ErrInvalidDimensions", err)
	}
}

func TestToBuffer_Empty(t *testing.T) {
	if _, err := ToBuffer[pixel.RGBA8](image.NewNRGBA(image.Rect(0, 0, 0, 3))); !errors.Is(err, pixbuf.ErrInvalidDimensions) {
		t.Errorf("empty image: got %v, want ErrInvalidDimensions", err)
	}
}

func TestFromBuffer_RoundTrip(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			src.SetNRGBA(x, y, color.NRGBA{uint8(x * 60), uint8(y * 100), 7, uint8(255 - x)})
		}
	}

	buf, err := ToBuffer[pixel.RGBA64](src)
	if err != nil {
		t.Fatal(err)
	}
	out := FromBuffer(buf)
	if !bytes.Equal(out.Pix, src.Pix) {
		t.Errorf("round trip changed pixels:\n got %v\nwant %v", out.Pix, src.Pix)
	}
}

func TestEncodePNG(t *testing.T) {
	src := imaging.New(6, 4, color.NRGBA{0, 128, 255, 255})
	out := filepath.Join(t.TempDir(), "out.png")

	res, err := EncodePNG(src, out)
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}
	if res.Width != 6 || res.Height != 4 || res.MimeType != "image/png" || res.SavedTo != out {
		t.Errorf("unexpected result: %+v", res)
	}

	data, err := base64.StdEncoding.DecodeString(res.ImageBase64)
	if err != nil {
		t.Fatalf("base64: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if r, g, b, _ := decoded.At(5, 3).RGBA(); r != 0 || g>>8 != 128 || b>>8 != 255 {
		t.Errorf("decoded pixel: got (%d,%d,%d)", r>>8, g>>8, b>>8)
	}

	if _, err := os.Stat(out); err != nil {
		t.Errorf("output file not written: %v", err)
	}
}

func TestEncodePNG_NoSave(t *testing.T) {
	res, err := EncodePNG(imaging.New(1, 1, color.Black), "")
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}
	if res.SavedTo != "" {
		t.Errorf("SavedTo: got %q, want empty", res.SavedTo)
	}
}
