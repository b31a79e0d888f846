// Package pixbuf provides a rectangular, row-major pixel store generic over
// the pixel format, and the scoped accessor through which it is edited.
//
// # Acquisition
//
// Pixels are read and written only through an Accessor. An Image hands out
// one Accessor at a time: Lock blocks until any previous Accessor has been
// released. Release must run on every exit path, so callers either pair
// Lock with a deferred Release or use With, which also releases when the
// callback panics:
//
//	acc := img.Lock()
//	defer acc.Release()
//
// # Bounds
//
// Coordinates are 0-based with (0,0) at the top-left. Every access is
// bounds-checked; an out-of-range coordinate is a caller bug and panics,
// exactly as out-of-range slice indexing does.
//
// # Thread Safety
//
// One Accessor may be shared by goroutines that touch disjoint pixels, for
// example disjoint row ranges. Accessors do no locking of their own.
package pixbuf

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/ironsheep/pixelcore/internal/pixel"
)

// Common errors for buffer construction.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("pixbuf: invalid dimensions")

	// ErrDataTooSmall is returned when a borrowed slice holds fewer than
	// width*height pixels.
	ErrDataTooSmall = errors.New("pixbuf: data slice too small")
)

// Image owns (or borrows) a contiguous row-major store of pixels of format
// P. Image implements image.Image so it can be handed to encoders and the
// standard draw package directly; those reads are not synchronized with
// Accessors.
type Image[P pixel.Pixel[P]] struct {
	mu     sync.Mutex
	pix    []P
	width  int
	height int
}

// New allocates a zeroed image.
func New[P pixel.Pixel[P]](width, height int) (*Image[P], error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return &Image[P]{
		pix:    make([]P, width*height),
		width:  width,
		height: height,
	}, nil
}

// Wrap borrows pix as the backing store of a width x height image without
// copying. The caller must keep pix alive, and must not write to it while an
// Accessor is held.
func Wrap[P pixel.Pixel[P]](pix []P, width, height int) (*Image[P], error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if len(pix) < width*height {
		return nil, fmt.Errorf("%w: have %d pixels, need %d", ErrDataTooSmall, len(pix), width*height)
	}
	return &Image[P]{
		pix:    pix[:width*height],
		width:  width,
		height: height,
	}, nil
}

// Width returns the width in pixels.
func (img *Image[P]) Width() int { return img.width }

// Height returns the height in pixels.
func (img *Image[P]) Height() int { return img.height }

// Lock acquires the image and returns its Accessor. It blocks while another
// Accessor is outstanding.
func (img *Image[P]) Lock() *Accessor[P] {
	img.mu.Lock()
	return &Accessor[P]{
		img:    img,
		pix:    img.pix,
		width:  img.width,
		height: img.height,
	}
}

// With acquires the image, runs fn and releases the Accessor on the way
// out, whether fn returns normally, returns an error, or panics.
func (img *Image[P]) With(fn func(acc *Accessor[P]) error) error {
	acc := img.Lock()
	defer acc.Release()
	return fn(acc)
}

// Fill sets every pixel to p.
func (img *Image[P]) Fill(p P) {
	acc := img.Lock()
	defer acc.Release()
	for i := range acc.pix {
		acc.pix[i] = p
	}
}

// ColorModel implements image.Image.
func (img *Image[P]) ColorModel() color.Model {
	return pixel.Model[P]()
}

// Bounds implements image.Image.
func (img *Image[P]) Bounds() image.Rectangle {
	return image.Rect(0, 0, img.width, img.height)
}

// At implements image.Image. Points outside the image return the zero P.
func (img *Image[P]) At(x, y int) color.Color {
	if x < 0 || x >= img.width || y < 0 || y >= img.height {
		var zero P
		return zero
	}
	return img.pix[y*img.width+x]
}
