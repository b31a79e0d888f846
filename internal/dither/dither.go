// Package dither spreads quantization error to neighboring pixels.
//
// A Diffuser is called once per pixel, in row-major order, after that pixel
// was quantized. It adds weighted fractions of the quantization error to
// pixels not yet visited. Because every call reads pixels written by earlier
// calls, a dithering pass is sequential: do not split one pass across
// goroutines.
package dither

import (
	"errors"
	"fmt"
	"math"

	"github.com/ironsheep/pixelcore/internal/pixbuf"
	"github.com/ironsheep/pixelcore/internal/pixel"
)

var (
	// ErrInvalidMatrix is returned by NewMatrix for unusable weights.
	ErrInvalidMatrix = errors.New("dither: invalid diffusion matrix")

	// ErrEmptyPalette is returned by Palette when there is nothing to
	// quantize to.
	ErrEmptyPalette = errors.New("dither: empty palette")
)

// Diffuser propagates the error made by quantizing one pixel.
type Diffuser[P pixel.Pixel[P]] interface {
	// Dither records that the pixel at (x, y) was quantized from source to
	// transformed and spreads the difference over neighbors inside
	// [0,width) x [0,height). Neighbors outside that area are skipped.
	// When replace is true the pixel itself is set to transformed first;
	// otherwise it is left as the caller wrote it.
	Dither(acc *pixbuf.Accessor[P], source, transformed P, x, y, width, height int, replace bool)
}

// Matrix is a Diffuser driven by a weight table. Row 0 is the current row;
// the current pixel sits immediately left of the first non-zero weight in
// row 0, so entries before it (and the current pixel itself) must be zero.
type Matrix[P pixel.Pixel[P]] struct {
	weights [][]float32
	offset  int
}

// NewMatrix builds a Matrix from integer-style coefficients and their
// divisor. Floyd-Steinberg, for instance, is
//
//	NewMatrix[P]([][]float32{{0, 0, 7}, {3, 5, 1}}, 16)
func NewMatrix[P pixel.Pixel[P]](coefficients [][]float32, divisor float32) (*Matrix[P], error) {
	if len(coefficients) == 0 || len(coefficients[0]) == 0 {
		return nil, fmt.Errorf("%w: no coefficients", ErrInvalidMatrix)
	}
	if !(divisor > 0) || math.IsInf(float64(divisor), 0) {
		return nil, fmt.Errorf("%w: divisor %v must be positive", ErrInvalidMatrix, divisor)
	}

	width := len(coefficients[0])
	weights := make([][]float32, len(coefficients))
	for y, row := range coefficients {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d entries, want %d", ErrInvalidMatrix, y, len(row), width)
		}
		weights[y] = make([]float32, width)
		for x, c := range row {
			if math.IsNaN(float64(c)) || math.IsInf(float64(c), 0) {
				return nil, fmt.Errorf("%w: coefficient (%d,%d) is %v", ErrInvalidMatrix, x, y, c)
			}
			weights[y][x] = c / divisor
		}
	}

	offset := -2
	for x, w := range weights[0] {
		if w != 0 {
			offset = x - 1
			break
		}
	}
	if offset == -2 {
		return nil, fmt.Errorf("%w: first row has no non-zero coefficient", ErrInvalidMatrix)
	}
	return &Matrix[P]{weights: weights, offset: offset}, nil
}

// Dither implements Diffuser.
func (m *Matrix[P]) Dither(acc *pixbuf.Accessor[P], source, transformed P, x, y, width, height int, replace bool) {
	if replace {
		acc.Set(x, y, transformed)
	}

	diff := source.Vector().Sub(transformed.Vector())
	for row, weights := range m.weights {
		ny := y + row
		if ny < 0 || ny >= height {
			continue
		}
		for col, w := range weights {
			if w == 0 {
				continue
			}
			nx := x + col - m.offset
			if nx < 0 || nx >= width {
				continue
			}
			p := acc.At(nx, ny)
			acc.Set(nx, ny, p.FromVector(p.Vector().Add(diff.Scale(w))))
		}
	}
}
