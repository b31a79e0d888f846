// Package brush defines how paint is composited onto a pixel buffer.
//
// A Brush is an immutable description of a paint intent. It produces an
// Applicator bound to one Accessor and one region; the Applicator computes
// result colors for single pixels (ColorAt) or composites a whole scanline
// span weighted by per-pixel coverage (Apply). Applicators are short-lived:
// create one per drawing operation and Release it afterwards.
//
// # Regions
//
// An Applicator never touches pixels outside the region it was bound to.
// Two Applicators bound to disjoint regions of the same Accessor can run on
// different goroutines without synchronization. Binding a region that is not
// inside the Accessor, or asking for a coordinate outside the bound region,
// is a caller bug and panics.
//
// # Drivers
//
// Fill, FillParallel, FillMask and FillPolygon are minimal rendering drivers:
// they walk a rectangle, a coverage mask or a rasterized polygon and feed the
// Applicator.
package brush

import (
	"fmt"
	"image"

	"github.com/ironsheep/pixelcore/internal/pixbuf"
	"github.com/ironsheep/pixelcore/internal/pixel"
)

// Epsilon is the coverage at or below which Apply leaves a pixel alone.
const Epsilon = 0.001

// Applicator composites a brush onto the pixels of one bound region.
type Applicator[P pixel.Pixel[P]] interface {
	// ColorAt returns the color the brush produces at (x, y) over the
	// pixel currently stored there. It does not write.
	ColorAt(x, y int) P

	// Apply composites the brush over the span of row y that starts at
	// column x, one pixel per entry of coverage. Each entry is an opacity
	// in [0,1]; values above 1 are treated as 1.
	Apply(coverage []float32, x, y int)

	// Release frees whatever the applicator holds. The applicator must not
	// be used afterwards.
	Release()
}

// Brush produces Applicators.
type Brush[P pixel.Pixel[P]] interface {
	// NewApplicator binds the brush to acc and region. region must lie
	// inside acc.Bounds().
	NewApplicator(acc *pixbuf.Accessor[P], region image.Rectangle) Applicator[P]
}

func checkRegion(region, bounds image.Rectangle) {
	if !region.In(bounds) {
		panic(fmt.Sprintf("brush: region %v outside buffer %v", region, bounds))
	}
}

func checkPoint(x, y int, region image.Rectangle) {
	if !(image.Point{X: x, Y: y}).In(region) {
		panic(fmt.Sprintf("brush: pixel (%d,%d) outside applicator region %v", x, y, region))
	}
}

func checkSpan(n, x, y int, region image.Rectangle) {
	if y < region.Min.Y || y >= region.Max.Y || x < region.Min.X || x+n > region.Max.X {
		panic(fmt.Sprintf("brush: span [%d,%d) of row %d outside applicator region %v", x, x+n, y, region))
	}
}
