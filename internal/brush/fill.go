package brush

import (
	"image"
	"image/draw"
	"math"
	"sync"

	"github.com/anthonynsimon/bild/parallel"
	"golang.org/x/image/math/f32"
	"golang.org/x/image/vector"

	"github.com/ironsheep/pixelcore/internal/logging"
	"github.com/ironsheep/pixelcore/internal/pixbuf"
	"github.com/ironsheep/pixelcore/internal/pixel"
)

// Options control how shape coverage is computed.
type Options struct {
	// Antialias keeps fractional edge coverage. When false every pixel is
	// either fully covered or untouched, split at half coverage.
	Antialias bool
}

// DefaultOptions enables antialiasing.
var DefaultOptions = Options{Antialias: true}

// Fill walks region, clipped to the buffer, writing the brush color of
// every pixel.
func Fill[P pixel.Pixel[P]](acc *pixbuf.Accessor[P], b Brush[P], region image.Rectangle) {
	region = region.Intersect(acc.Bounds())
	if region.Empty() {
		return
	}
	logging.Logger().Debug("brush fill", "region", region)
	fillBand(acc, b, region)
}

// FillParallel is Fill split into disjoint horizontal bands, one applicator
// per band, processed concurrently. workers <= 0 uses one band per CPU.
func FillParallel[P pixel.Pixel[P]](acc *pixbuf.Accessor[P], b Brush[P], region image.Rectangle, workers int) {
	region = region.Intersect(acc.Bounds())
	if region.Empty() {
		return
	}
	logging.Logger().Debug("brush parallel fill", "region", region, "rows", region.Dy(), "workers", workers)

	band := func(start, end int) {
		fillBand(acc, b, image.Rect(region.Min.X, region.Min.Y+start, region.Max.X, region.Min.Y+end))
	}

	switch {
	case workers <= 0:
		parallel.Line(region.Dy(), band)
	case workers == 1:
		band(0, region.Dy())
	default:
		rows := region.Dy()
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			start, end := i*rows/workers, (i+1)*rows/workers
			if start == end {
				continue
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				band(start, end)
			}()
		}
		wg.Wait()
	}
}

func fillBand[P pixel.Pixel[P]](acc *pixbuf.Accessor[P], b Brush[P], r image.Rectangle) {
	a := b.NewApplicator(acc, r)
	defer a.Release()

	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := acc.Row(y, r.Min.X, r.Dx())
		for i := range row {
			row[i] = a.ColorAt(r.Min.X+i, y)
		}
	}
}

// FillMask applies b through a coverage mask whose origin is placed at
// offset in buffer coordinates. Mask pixels falling outside the buffer are
// ignored.
func FillMask[P pixel.Pixel[P]](acc *pixbuf.Accessor[P], b Brush[P], mask *image.Alpha, offset image.Point) {
	placed := mask.Bounds().Add(offset)
	region := placed.Intersect(acc.Bounds())
	if region.Empty() {
		return
	}
	logging.Logger().Debug("brush mask fill", "region", region)

	a := b.NewApplicator(acc, region)
	defer a.Release()

	coverage := make([]float32, region.Dx())
	mx := region.Min.X - offset.X
	for y := region.Min.Y; y < region.Max.Y; y++ {
		for i := range coverage {
			coverage[i] = float32(mask.AlphaAt(mx+i, y-offset.Y).A) / 255
		}
		a.Apply(coverage, region.Min.X, y)
	}
}

// FillPolygon rasterizes the closed polygon through points and applies b
// to it. Fewer than three points draw nothing.
func FillPolygon[P pixel.Pixel[P]](acc *pixbuf.Accessor[P], b Brush[P], points []f32.Vec2, opts Options) {
	if len(points) < 3 {
		return
	}
	r := polygonBounds(points).Intersect(acc.Bounds())
	if r.Empty() {
		return
	}

	mask := rasterize(points, r, opts)
	FillMask(acc, b, mask, r.Min)
}

// polygonBounds returns the smallest integer rectangle containing points.
func polygonBounds(points []f32.Vec2) image.Rectangle {
	minX, minY := float64(points[0][0]), float64(points[0][1])
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = math.Min(minX, float64(p[0]))
		minY = math.Min(minY, float64(p[1]))
		maxX = math.Max(maxX, float64(p[0]))
		maxY = math.Max(maxY, float64(p[1]))
	}
	return image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX)), int(math.Ceil(maxY)))
}

// rasterize renders the polygon's coverage over r into a mask whose origin
// corresponds to r.Min.
func rasterize(points []f32.Vec2, r image.Rectangle, opts Options) *image.Alpha {
	ox, oy := float32(r.Min.X), float32(r.Min.Y)

	z := vector.NewRasterizer(r.Dx(), r.Dy())
	z.DrawOp = draw.Src
	z.MoveTo(points[0][0]-ox, points[0][1]-oy)
	for _, p := range points[1:] {
		z.LineTo(p[0]-ox, p[1]-oy)
	}
	z.ClosePath()

	mask := image.NewAlpha(image.Rect(0, 0, r.Dx(), r.Dy()))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	if !opts.Antialias {
		for i, a := range mask.Pix {
			if a >= 128 {
				mask.Pix[i] = 255
			} else {
				mask.Pix[i] = 0
			}
		}
	}
	return mask
}
