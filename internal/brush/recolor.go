package brush

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/ironsheep/pixelcore/internal/pixbuf"
	"github.com/ironsheep/pixelcore/internal/pixel"
)

// ErrInvalidThreshold is returned for recolor thresholds outside [0,1].
var ErrInvalidThreshold = errors.New("brush: threshold must be within [0,1]")

// Recolor replaces colors close to a source color with a target color.
//
// Closeness is the squared distance between normalized colors, compared to
// the threshold scaled by the squared distance between the format's own
// representable extremes. Pixels inside the threshold are blended toward
// the target with a linear falloff: an exact match becomes the target, a
// pixel right at the threshold is left almost untouched.
type Recolor[P pixel.Pixel[P]] struct {
	source    P
	target    P
	threshold float32
}

// NewRecolor returns a recolor brush. threshold is a fraction in [0,1] of
// the format's full color distance; 0 matches nothing.
func NewRecolor[P pixel.Pixel[P]](source, target P, threshold float32) (*Recolor[P], error) {
	if !(threshold >= 0 && threshold <= 1) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidThreshold, threshold)
	}
	return &Recolor[P]{source: source, target: target, threshold: threshold}, nil
}

// Source returns the color being replaced.
func (b *Recolor[P]) Source() P { return b.source }

// Target returns the replacement color.
func (b *Recolor[P]) Target() P { return b.target }

// Threshold returns the configured threshold in [0,1].
func (b *Recolor[P]) Threshold() float32 { return b.threshold }

// NewApplicator implements Brush.
func (b *Recolor[P]) NewApplicator(acc *pixbuf.Accessor[P], region image.Rectangle) Applicator[P] {
	checkRegion(region, acc.Bounds())

	hi, lo := pixel.Extremes[P]()
	return &recolorApplicator[P]{
		acc:       acc,
		region:    region,
		source:    b.source.Vector(),
		target:    b.target.Vector(),
		threshold: hi.DistanceSquared(lo) * float64(b.threshold),
	}
}

type recolorApplicator[P pixel.Pixel[P]] struct {
	acc    *pixbuf.Accessor[P]
	region image.Rectangle

	source, target pixel.Vector

	// threshold is in squared-distance units.
	threshold float64
}

// recolor blends bg toward the target. It reports false when bg is farther
// from the source than the threshold.
func (a *recolorApplicator[P]) recolor(bg pixel.Vector) (pixel.Vector, bool) {
	if !(a.threshold > 0) || math.IsInf(a.threshold, 0) {
		return bg, false
	}
	d := bg.DistanceSquared(a.source)
	if d > a.threshold {
		return bg, false
	}
	amount := float32((a.threshold - d) / a.threshold)
	return pixel.PremultipliedLerp(bg, a.target, amount), true
}

// ColorAt implements Applicator. It returns the recolored pixel at (x,y)
// without writing it.
func (a *recolorApplicator[P]) ColorAt(x, y int) P {
	checkPoint(x, y, a.region)
	p := a.acc.At(x, y)
	v, ok := a.recolor(p.Vector())
	if !ok {
		return p
	}
	return p.FromVector(v)
}

// Apply implements Applicator.
func (a *recolorApplicator[P]) Apply(coverage []float32, x, y int) {
	checkSpan(len(coverage), x, y, a.region)
	row := a.acc.Row(y, x, len(coverage))
	for i, opacity := range coverage {
		if !(opacity > Epsilon) {
			continue
		}
		if opacity > 1 {
			opacity = 1
		}
		bg := row[i].Vector()
		src, ok := a.recolor(bg)
		if !ok {
			// Compositing bg over itself is a no-op.
			continue
		}
		row[i] = row[i].FromVector(pixel.PremultipliedLerp(bg, src, opacity))
	}
}

// Release implements Applicator. A recolor applicator holds nothing to free.
func (a *recolorApplicator[P]) Release() {}
