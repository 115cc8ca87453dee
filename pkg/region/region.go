// Package region models the on-screen visual regions that get exported.
//
// A [Region] has a fixed logical size (CSS pixels for browser pages, design
// units for drawn panels) and is displayed at some on-screen scale. The
// export engine only ever sees the device-pixel [Rect] a region currently
// occupies and asks it to rasterize itself at a multiple of that rect.
//
// Regions are borrowed: a [Viewport] owns their attachment, and a region
// that has been unmounted reports REGION_UNAVAILABLE from every call.
package region

import (
	"context"
	"image"
	"image/color"
	"math"
)

// Rect is a region's rendered bounding box in device pixels.
type Rect struct {
	X, Y float64
	W, H float64
}

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool {
	return !(r.W > 0) || !(r.H > 0)
}

// Scaled returns the pixel size of the rect multiplied by s, rounded.
func (r Rect) Scaled(s float64) (w, h int) {
	return int(math.Round(r.W * s)), int(math.Round(r.H * s))
}

// Region is a renderable area that can be measured and rasterized.
//
// Implementations must not mutate layout when measured or captured, and
// must render deterministically: the same region captured twice at the
// same scale yields the same pixels.
type Region interface {
	// ID is the panel identifier, e.g. "slide-3" or "sleeve/art".
	ID() string

	// Bounds returns the region's current bounding box in device pixels at
	// its on-screen scale.
	Bounds(ctx context.Context) (Rect, error)

	// Capture rasterizes the region at scale times its current bounds,
	// with every transparent area composited over bg.
	Capture(ctx context.Context, scale float64, bg color.NRGBA) (image.Image, error)
}
