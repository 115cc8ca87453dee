package browser

import (
	"bytes"
	"context"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/matzehuels/microprint/pkg/errors"
	"github.com/matzehuels/microprint/pkg/region"
)

// Element is a DOM element addressed by a CSS selector. The selector is
// resolved on every call, so an element that leaves the page becomes
// unavailable instead of stale.
type Element struct {
	page     *Page
	selector string
}

var _ region.Region = (*Element)(nil)

// Element returns the region for the first element matching selector.
func (p *Page) Element(selector string) *Element {
	return &Element{page: p, selector: selector}
}

// ID implements region.Region.
func (e *Element) ID() string { return e.selector }

func (e *Element) find(ctx context.Context) (*rod.Element, error) {
	els, err := e.page.page.Context(ctx).Elements(e.selector)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRegionUnavailable, err, "query %s", e.selector)
	}
	if len(els) == 0 {
		return nil, errors.New(errors.ErrCodeRegionUnavailable, "no element matches %q on %s", e.selector, e.page.url)
	}
	return els.First(), nil
}

// Bounds implements region.Region. The rectangle is in device pixels.
func (e *Element) Bounds(ctx context.Context) (region.Rect, error) {
	el, err := e.find(ctx)
	if err != nil {
		return region.Rect{}, err
	}
	shape, err := el.Shape()
	if err != nil {
		return region.Rect{}, errors.Wrap(errors.ErrCodeRegionUnavailable, err, "measure %s", e.selector)
	}
	box := shape.Box()
	if box == nil {
		return region.Rect{}, errors.New(errors.ErrCodeRegionUnavailable, "%s is not rendered", e.selector)
	}
	m, err := e.page.metrics(ctx)
	if err != nil {
		return region.Rect{}, err
	}
	return region.Rect{
		X: box.X * m.ratio,
		Y: box.Y * m.ratio,
		W: box.Width * m.ratio,
		H: box.Height * m.ratio,
	}, nil
}

// Capture implements region.Region. It screenshots the element with the
// device scale factor raised by scale and restores the page afterwards.
func (e *Element) Capture(ctx context.Context, scale float64, bg color.NRGBA) (image.Image, error) {
	if !(scale > 0) {
		return nil, errors.New(errors.ErrCodeEmptyCapture, "capture scale %v", scale)
	}
	el, err := e.find(ctx)
	if err != nil {
		return nil, err
	}
	m, err := e.page.metrics(ctx)
	if err != nil {
		return nil, err
	}

	page := e.page.page.Context(ctx)
	err = proto.EmulationSetDeviceMetricsOverride{
		Width:             m.width,
		Height:            m.height,
		DeviceScaleFactor: m.ratio * scale,
	}.Call(page)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeBackendUnavailable, err, "set device scale")
	}
	defer func() { _ = proto.EmulationClearDeviceMetricsOverride{}.Call(page) }()

	err = proto.EmulationSetDefaultBackgroundColorOverride{
		Color: &proto.DOMRGBA{R: int(bg.R), G: int(bg.G), B: int(bg.B)},
	}.Call(page)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeBackendUnavailable, err, "set background")
	}
	defer func() { _ = proto.EmulationSetDefaultBackgroundColorOverride{}.Call(page) }()

	data, err := el.Context(ctx).Screenshot(proto.PageCaptureScreenshotFormatPng, 0)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeBackendUnavailable, err, "screenshot %s", e.selector)
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeEmptyCapture, err, "decode screenshot of %s", e.selector)
	}
	e.page.logger.Debug("captured element", "selector", e.selector,
		"size", img.Bounds().Size(), "device_scale", m.ratio*scale)
	return img, nil
}
