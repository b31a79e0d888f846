package dither

import (
	"errors"
	"math"
	"testing"

	"github.com/ironsheep/pixelcore/internal/pixbuf"
	"github.com/ironsheep/pixelcore/internal/pixel"
)

var (
	black = pixel.RGBA8{A: 255}
	white = pixel.RGBA8{R: 255, G: 255, B: 255, A: 255}
)

func gray(v uint8) pixel.RGBA8 { return pixel.RGBA8{R: v, G: v, B: v, A: 255} }

func floydSteinberg(t *testing.T) *Matrix[pixel.RGBA8] {
	t.Helper()
	m, err := NewMatrix[pixel.RGBA8]([][]float32{{0, 0, 7}, {3, 5, 1}}, 16)
	if err != nil {
		t.Fatalf("NewMatrix: %v", err)
	}
	return m
}

func filled(t *testing.T, w, h int, p pixel.RGBA8) *pixbuf.Image[pixel.RGBA8] {
	t.Helper()
	img, err := pixbuf.New[pixel.RGBA8](w, h)
	if err != nil {
		t.Fatalf("pixbuf.New: %v", err)
	}
	img.Fill(p)
	return img
}

func TestNewMatrix_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		weights [][]float32
		divisor float32
	}{
		{"empty", nil, 1},
		{"empty row", [][]float32{{}}, 1},
		{"ragged", [][]float32{{0, 1}, {1}}, 2},
		{"zero divisor", [][]float32{{0, 1}}, 0},
		{"negative divisor", [][]float32{{0, 1}}, -4},
		{"NaN divisor", [][]float32{{0, 1}}, float32(math.NaN())},
		{"NaN weight", [][]float32{{0, float32(math.NaN())}}, 1},
		{"no forward weight", [][]float32{{0, 0}, {1, 1}}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewMatrix[pixel.RGBA8](tt.weights, tt.divisor); !errors.Is(err, ErrInvalidMatrix) {
				t.Errorf("got %v, want ErrInvalidMatrix", err)
			}
		})
	}
}

func TestMatrix_DistributesError(t *testing.T) {
	img := filled(t, 3, 2, gray(100))
	acc := img.Lock()
	defer acc.Release()

	floydSteinberg(t).Dither(acc, gray(100), black, 1, 0, 3, 2, true)

	want := [2][3]uint8{
		{100, 0, 144}, // 100 + 100*7/16
		{119, 131, 106},
	}
	for y := range want {
		for x, v := range want[y] {
			if got := acc.At(x, y); got != gray(v) {
				t.Errorf("pixel (%d,%d): got %v, want %v", x, y, got, gray(v))
			}
		}
	}
}

func TestMatrix_ReplaceFlag(t *testing.T) {
	m := floydSteinberg(t)

	img := filled(t, 2, 2, gray(100))
	acc := img.Lock()
	m.Dither(acc, gray(100), black, 0, 0, 2, 2, false)
	if got := acc.At(0, 0); got != gray(100) {
		t.Errorf("replace=false altered the pixel: %v", got)
	}
	if got := acc.At(1, 0); got != gray(144) {
		t.Errorf("replace=false neighbor: got %v, want %v", got, gray(144))
	}
	acc.Release()

	img = filled(t, 2, 2, gray(100))
	acc = img.Lock()
	defer acc.Release()
	m.Dither(acc, gray(100), black, 0, 0, 2, 2, true)
	if got := acc.At(0, 0); got != black {
		t.Errorf("replace=true: got %v, want %v", got, black)
	}
}

func TestMatrix_EdgesAreSkipped(t *testing.T) {
	m := floydSteinberg(t)

	cases := []struct {
		name string
		x, y int
	}{
		{"top left", 0, 0},
		{"top right", 2, 0},
		{"bottom left", 0, 2},
		{"bottom right", 2, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			img := filled(t, 3, 3, gray(100))
			acc := img.Lock()
			defer acc.Release()
			m.Dither(acc, gray(100), black, tc.x, tc.y, 3, 3, true)
			if got := acc.At(tc.x, tc.y); got != black {
				t.Errorf("pixel itself: got %v, want %v", got, black)
			}
		})
	}

	// Bottom-left diffusion from (1,0) reaches column 0 of the next row.
	img := filled(t, 3, 3, gray(100))
	acc := img.Lock()
	defer acc.Release()
	m.Dither(acc, gray(100), black, 1, 0, 3, 3, true)
	if got := acc.At(0, 1); got != gray(119) {
		t.Errorf("column 0 neighbor: got %v, want %v", got, gray(119))
	}
}

func TestMatrix_AreaSmallerThanBuffer(t *testing.T) {
	img := filled(t, 4, 2, gray(100))
	acc := img.Lock()
	defer acc.Release()

	// Diffusing inside a 2x1 area leaves the rest of the buffer alone.
	floydSteinberg(t).Dither(acc, gray(100), black, 0, 0, 2, 1, true)
	if got := acc.At(1, 0); got != gray(144) {
		t.Errorf("in-area neighbor: got %v, want %v", got, gray(144))
	}
	for _, p := range [][2]int{{0, 1}, {1, 1}, {2, 0}} {
		if got := acc.At(p[0], p[1]); got != gray(100) {
			t.Errorf("pixel %v outside area changed: %v", p, got)
		}
	}
}

func TestMatrix_Saturates(t *testing.T) {
	img := filled(t, 2, 1, gray(250))
	acc := img.Lock()
	defer acc.Release()

	// A large positive error cannot push the neighbor past white.
	m, err := NewMatrix[pixel.RGBA8]([][]float32{{0, 1}}, 1)
	if err != nil {
		t.Fatal(err)
	}
	m.Dither(acc, white, black, 0, 0, 2, 1, true)
	if got := acc.At(1, 0); got != white {
		t.Errorf("got %v, want %v", got, white)
	}
}

func TestBinary(t *testing.T) {
	const size = 16
	img := filled(t, size, size, gray(128))
	acc := img.Lock()
	defer acc.Release()

	Binary[pixel.RGBA8](acc, floydSteinberg(t), 0.5, black, white)

	whites := 0
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			switch acc.At(x, y) {
			case white:
				whites++
			case black:
			default:
				t.Fatalf("pixel (%d,%d) is %v, neither black nor white", x, y, acc.At(x, y))
			}
		}
	}
	// Mid gray dithers to roughly half white.
	if frac := float64(whites) / (size * size); frac < 0.4 || frac > 0.6 {
		t.Errorf("white fraction %.2f, want about 0.5", frac)
	}
}

func TestPalette(t *testing.T) {
	red := pixel.RGBA8{R: 255, A: 255}
	palette := []pixel.RGBA8{black, white, red}

	img, _ := pixbuf.New[pixel.RGBA8](8, 8)
	_ = img.With(func(acc *pixbuf.Accessor[pixel.RGBA8]) error {
		for y := 0; y < 8; y++ {
			for x := 0; x < 8; x++ {
				acc.Set(x, y, pixel.RGBA8{R: uint8(x * 32), G: uint8(y * 16), B: 40, A: 255})
			}
		}
		return nil
	})

	acc := img.Lock()
	defer acc.Release()
	if err := Palette[pixel.RGBA8](acc, floydSteinberg(t), palette); err != nil {
		t.Fatalf("Palette: %v", err)
	}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			got := acc.At(x, y)
			if got != black && got != white && got != red {
				t.Fatalf("pixel (%d,%d) = %v is not a palette color", x, y, got)
			}
		}
	}

	if err := Palette[pixel.RGBA8](acc, floydSteinberg(t), nil); !errors.Is(err, ErrEmptyPalette) {
		t.Errorf("empty palette: got %v, want ErrEmptyPalette", err)
	}
}

func TestNearest(t *testing.T) {
	palette := []pixel.Vector{{A: 1}, {R: 1, G: 1, B: 1, A: 1}}
	if got := nearest(palette, pixel.Vector{R: 0.2, G: 0.2, B: 0.2, A: 1}); got != 0 {
		t.Errorf("dark gray: got %d, want 0", got)
	}
	if got := nearest(palette, pixel.Vector{R: 0.8, G: 0.8, B: 0.8, A: 1}); got != 1 {
		t.Errorf("light gray: got %d, want 1", got)
	}
}
