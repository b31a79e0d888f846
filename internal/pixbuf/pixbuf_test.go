package pixbuf

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/ironsheep/pixelcore/internal/pixel"
)

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}

// released reports whether the image lock is free.
func released[P pixel.Pixel[P]](img *Image[P]) bool {
	if img.mu.TryLock() {
		img.mu.Unlock()
		return true
	}
	return false
}

func TestNew(t *testing.T) {
	img, err := New[pixel.RGBA8](4, 3)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if img.Width() != 4 || img.Height() != 3 {
		t.Errorf("dimensions: got %dx%d, want 4x3", img.Width(), img.Height())
	}
	if img.Bounds() != image.Rect(0, 0, 4, 3) {
		t.Errorf("Bounds: got %v", img.Bounds())
	}
}

func TestNew_InvalidDimensions(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"zero width", 0, 5},
		{"zero height", 5, 0},
		{"negative", -1, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New[pixel.Gray8](tt.w, tt.h); !errors.Is(err, ErrInvalidDimensions) {
				t.Errorf("New(%d,%d): got %v, want ErrInvalidDimensions", tt.w, tt.h, err)
			}
			if _, err := Wrap(make([]pixel.Gray8, 10), tt.w, tt.h); !errors.Is(err, ErrInvalidDimensions) {
				t.Errorf("Wrap(%d,%d): got %v, want ErrInvalidDimensions", tt.w, tt.h, err)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	pix := make([]pixel.RGBA8, 6)
	img, err := Wrap(pix, 3, 2)
	if err != nil {
		t.Fatalf("Wrap failed: %v", err)
	}

	acc := img.Lock()
	acc.Set(2, 1, pixel.RGBA8{R: 9, A: 255})
	acc.Release()

	// The borrowed slice sees the write (no copy).
	if pix[5] != (pixel.RGBA8{R: 9, A: 255}) {
		t.Errorf("backing slice not updated: %v", pix[5])
	}

	if _, err := Wrap(pix, 4, 2); !errors.Is(err, ErrDataTooSmall) {
		t.Errorf("Wrap with short slice: got %v, want ErrDataTooSmall", err)
	}
}

func TestAccessor_GetSet(t *testing.T) {
	img, _ := New[pixel.RGBA64](5, 5)
	acc := img.Lock()
	defer acc.Release()

	p := pixel.RGBA64{R: 1, G: 2, B: 3, A: 4}
	acc.Set(4, 4, p)
	if got := acc.At(4, 4); got != p {
		t.Errorf("At: got %v, want %v", got, p)
	}
	if got := acc.At(0, 0); got != (pixel.RGBA64{}) {
		t.Errorf("At(0,0): got %v, want zero", got)
	}
	if acc.Bounds() != image.Rect(0, 0, 5, 5) {
		t.Errorf("Bounds: got %v", acc.Bounds())
	}
}

func TestAccessor_Row(t *testing.T) {
	img, _ := New[pixel.Gray8](4, 2)
	acc := img.Lock()
	defer acc.Release()

	row := acc.Row(1, 1, 3)
	if len(row) != 3 {
		t.Fatalf("Row length: got %d, want 3", len(row))
	}
	for i := range row {
		row[i] = pixel.Gray8{Y: uint8(10 * (i + 1))}
	}
	for x, want := range []uint8{0, 10, 20, 30} {
		if got := acc.At(x, 1).Y; got != want {
			t.Errorf("At(%d,1): got %d, want %d", x, got, want)
		}
	}
	if got := acc.At(0, 0).Y; got != 0 {
		t.Errorf("row 0 modified: %d", got)
	}

	// A row view is capped so appends cannot spill into the next row.
	if cap(acc.Row(0, 0, 2)) != 2 {
		t.Error("Row capacity not capped to the span")
	}
}

func TestAccessor_BoundsPanics(t *testing.T) {
	img, _ := New[pixel.RGBA8](3, 3)
	acc := img.Lock()
	defer acc.Release()

	mustPanic(t, "At(-1,0)", func() { acc.At(-1, 0) })
	mustPanic(t, "At(3,0)", func() { acc.At(3, 0) })
	mustPanic(t, "At(0,3)", func() { acc.At(0, 3) })
	mustPanic(t, "Set(0,-1)", func() { acc.Set(0, -1, pixel.RGBA8{}) })
	mustPanic(t, "Row past end", func() { acc.Row(0, 1, 3) })
	mustPanic(t, "Row negative length", func() { acc.Row(0, 1, -1) })
	mustPanic(t, "Row bad y", func() { acc.Row(3, 0, 1) })
}

func TestAccessor_Release(t *testing.T) {
	img, _ := New[pixel.RGBA8](2, 2)
	acc := img.Lock()
	if released(img) {
		t.Fatal("image not locked while accessor held")
	}
	acc.Release()
	acc.Release()
	if !released(img) {
		t.Fatal("image still locked after Release")
	}
	mustPanic(t, "At after release", func() { acc.At(0, 0) })

	// A new accessor can be taken once the first is released.
	second := img.Lock()
	second.Set(1, 1, pixel.RGBA8{A: 1})
	second.Release()
}

func TestWith_ReleasesOnError(t *testing.T) {
	img, _ := New[pixel.RGBA8](2, 2)
	sentinel := errors.New("boom")
	err := img.With(func(acc *Accessor[pixel.RGBA8]) error {
		acc.Set(0, 0, pixel.RGBA8{R: 1})
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Errorf("With: got %v, want sentinel error", err)
	}
	if !released(img) {
		t.Error("With left the image locked after an error")
	}
}

func TestWith_ReleasesOnPanic(t *testing.T) {
	img, _ := New[pixel.RGBA8](2, 2)
	func() {
		defer func() { _ = recover() }()
		_ = img.With(func(acc *Accessor[pixel.RGBA8]) error {
			acc.At(5, 5)
			return nil
		})
	}()
	if !released(img) {
		t.Error("With left the image locked after a panic")
	}
}

func TestImage_ImplementsImage(t *testing.T) {
	img, _ := New[pixel.RGBA8](2, 1)
	img.Fill(pixel.RGBA8{R: 255, A: 255})

	var _ image.Image = img

	r, g, b, a := img.At(1, 0).RGBA()
	if r != 0xffff || g != 0 || b != 0 || a != 0xffff {
		t.Errorf("At(1,0).RGBA: got (%d,%d,%d,%d)", r, g, b, a)
	}
	if got := img.At(2, 0); got != (pixel.RGBA8{}) {
		t.Errorf("At outside bounds: got %v, want zero", got)
	}
	if got := img.ColorModel().Convert(color.White); got != (pixel.RGBA8{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("ColorModel.Convert(white): got %v", got)
	}
	if !released(img) {
		t.Error("Fill left the image locked")
	}
}
