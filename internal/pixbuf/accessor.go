package pixbuf

import (
	"fmt"
	"image"
	"sync"

	"github.com/ironsheep/pixelcore/internal/pixel"
)

// Accessor is a mutable, bounds-checked view of an Image held between Lock
// and Release. Writes go straight to the backing store.
type Accessor[P pixel.Pixel[P]] struct {
	img *Image[P]

	pix    []P
	width  int
	height int

	once sync.Once
}

// Width returns the width of the view in pixels.
func (a *Accessor[P]) Width() int { return a.width }

// Height returns the height of the view in pixels.
func (a *Accessor[P]) Height() int { return a.height }

// Bounds returns the rectangle (0,0)-(Width,Height).
func (a *Accessor[P]) Bounds() image.Rectangle {
	return image.Rect(0, 0, a.width, a.height)
}

// At returns the pixel at (x, y).
func (a *Accessor[P]) At(x, y int) P {
	a.check(x, y)
	return a.pix[y*a.width+x]
}

// Set stores p at (x, y).
func (a *Accessor[P]) Set(x, y int, p P) {
	a.check(x, y)
	a.pix[y*a.width+x] = p
}

// Row returns the n pixels of row y starting at column x. The slice aliases
// the backing store: writes through it modify the image.
func (a *Accessor[P]) Row(y, x, n int) []P {
	if n < 0 || x < 0 || x+n > a.width || y < 0 || y >= a.height {
		panic(fmt.Sprintf("pixbuf: row span [%d,%d) of row %d outside %dx%d", x, x+n, y, a.width, a.height))
	}
	i := y*a.width + x
	return a.pix[i : i+n : i+n]
}

// Release returns the image to its owner. Release is idempotent; any use of
// the Accessor afterwards panics.
func (a *Accessor[P]) Release() {
	a.once.Do(func() {
		a.pix = nil
		a.width, a.height = 0, 0
		a.img.mu.Unlock()
	})
}

func (a *Accessor[P]) check(x, y int) {
	if a.pix == nil {
		panic("pixbuf: accessor used after release")
	}
	if x < 0 || x >= a.width || y < 0 || y >= a.height {
		panic(fmt.Sprintf("pixbuf: coordinates (%d,%d) outside %dx%d", x, y, a.width, a.height))
	}
}
