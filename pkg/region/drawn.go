package region

import (
	"context"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/microprint/pkg/errors"
)

// PaintFunc renders a region's content. ratio is the number of device
// pixels per logical unit; the returned image should be the logical size
// times ratio.
type PaintFunc func(ctx context.Context, ratio float64, bg color.NRGBA) (image.Image, error)

// Option configures a Drawn region.
type Option func(*Drawn)

// WithScale sets the on-screen scale (device pixels per logical unit).
// The default is 1.
func WithScale(s float64) Option {
	return func(d *Drawn) { d.scale = s }
}

// WithViewport binds the region's availability to v.
func WithViewport(v *Viewport) Option {
	return func(d *Drawn) { d.viewport = v }
}

// Drawn is a region produced by a paint function, such as a carousel slide
// or a packaging panel.
type Drawn struct {
	id       string
	w, h     float64
	scale    float64
	viewport *Viewport
	paint    PaintFunc
}

// New creates a region of logical size w x h that renders with paint.
func New(id string, w, h float64, paint PaintFunc, opts ...Option) *Drawn {
	d := &Drawn{id: id, w: w, h: h, scale: 1, paint: paint}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ID implements Region.
func (d *Drawn) ID() string { return d.id }

// Bounds implements Region.
func (d *Drawn) Bounds(ctx context.Context) (Rect, error) {
	if err := d.viewport.check(d.id); err != nil {
		return Rect{}, err
	}
	return Rect{W: d.w * d.scale, H: d.h * d.scale}, nil
}

// Capture implements Region.
func (d *Drawn) Capture(ctx context.Context, scale float64, bg color.NRGBA) (image.Image, error) {
	if err := d.viewport.check(d.id); err != nil {
		return nil, err
	}
	if d.paint == nil {
		return nil, errors.New(errors.ErrCodeBackendUnavailable, "region %q has no renderer", d.id)
	}
	return d.paint(ctx, d.scale*scale, bg)
}

// FromImage creates a region that displays img at its native size. Captures
// resample the image with a Lanczos filter. It is mostly useful for tests
// and for pre-rendered artwork.
func FromImage(id string, img image.Image, opts ...Option) *Drawn {
	b := img.Bounds()
	paint := func(_ context.Context, ratio float64, bg color.NRGBA) (image.Image, error) {
		w, h := Rect{W: float64(b.Dx()), H: float64(b.Dy())}.Scaled(ratio)
		if w < 1 || h < 1 {
			return image.NewNRGBA(image.Rect(0, 0, max(w, 0), max(h, 0))), nil
		}
		src := img
		if w != b.Dx() || h != b.Dy() {
			src = imaging.Resize(img, w, h, imaging.Lanczos)
		}
		return imaging.Overlay(imaging.New(w, h, bg), src, image.Point{}, 1.0), nil
	}
	return New(id, float64(b.Dx()), float64(b.Dy()), paint, opts...)
}
