package export

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/microprint/pkg/errors"
	"github.com/matzehuels/microprint/pkg/observability"
	"github.com/matzehuels/microprint/pkg/printspec"
	"github.com/matzehuels/microprint/pkg/region"
)

// DefaultMaxPixels caps the target buffer at 120 megapixels, enough for an
// A2 poster at 300 dpi.
const DefaultMaxPixels = 120_000_000

// FontGate is the font readiness barrier awaited before every capture.
type FontGate interface {
	Ready(ctx context.Context) error
}

// Artifact is the result of one successful export.
type Artifact struct {
	ID       string
	Panel    string
	Spec     printspec.OutputSpec
	Filename string

	// Width and Height are the final pixel dimensions.
	Width  int
	Height int

	// CaptureScale and CaptureSize describe the intermediate capture.
	CaptureScale float64
	CaptureSize  image.Point

	PNG      []byte
	Duration time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for per-export diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithFontGate sets the readiness barrier. Without one the engine captures
// immediately.
func WithFontGate(g FontGate) Option {
	return func(e *Engine) { e.fonts = g }
}

// WithMaxPixels limits the target buffer size. Larger targets fail with
// BACKEND_UNAVAILABLE before anything is captured.
func WithMaxPixels(n int) Option {
	return func(e *Engine) { e.maxPixels = n }
}

// Engine exports regions to PNG. It holds configuration only and may be
// shared between goroutines.
type Engine struct {
	logger    *log.Logger
	fonts     FontGate
	maxPixels int
}

// NewEngine creates an export engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{maxPixels: DefaultMaxPixels}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = log.Default()
	}
	return e
}

// ExportRegion captures r and returns a PNG of exactly spec.Pixels().
func (e *Engine) ExportRegion(ctx context.Context, r region.Region, spec printspec.OutputSpec) (art *Artifact, err error) {
	start := time.Now()
	if r == nil {
		return nil, errors.New(errors.ErrCodeRegionUnavailable, "no region to export")
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}

	panel := r.ID()
	exportID := uuid.NewString()
	logger := e.logger.With("export_id", exportID, "panel", panel, "spec", spec.String())
	hooks := observability.Export()
	hooks.OnExportStart(ctx, panel, spec.String())

	defer func() {
		if rec := recover(); rec != nil {
			art, err = nil, errors.Wrap(errors.ErrCodeUnknown, fmt.Errorf("panic: %v", rec), "export %s", panel)
		}
		duration := time.Since(start)
		size := 0
		if art != nil {
			art.Duration = duration
			size = len(art.PNG)
		}
		if err != nil {
			logger.Error("export failed", "code", errors.GetCode(err), "duration", duration, "err", err)
		} else {
			logger.Info("exported", "target", fmt.Sprintf("%dx%d", art.Width, art.Height),
				"capture_scale", fmt.Sprintf("%.4f", art.CaptureScale), "bytes", size, "duration", duration)
		}
		hooks.OnExportComplete(ctx, panel, spec.String(), size, duration, err)
	}()

	if e.fonts != nil {
		if err := e.fonts.Ready(ctx); err != nil {
			return nil, classify(err, "await fonts")
		}
	}

	rect, err := r.Bounds(ctx)
	if err != nil {
		return nil, classify(err, "measure %s", panel)
	}
	if rect.Empty() {
		return nil, errors.New(errors.ErrCodeEmptyCapture, "region %s has no area (%vx%v)", panel, rect.W, rect.H)
	}

	targetW, targetH := spec.Pixels()
	if e.exceedsLimit(float64(targetW), float64(targetH)) {
		return nil, errors.New(errors.ErrCodeBackendUnavailable,
			"target %dx%d exceeds the %d pixel buffer limit", targetW, targetH, e.maxPixels)
	}

	scale := CaptureScale(rect, targetW, targetH, spec.AuthoritativeAxis(rect.W, rect.H))
	if cw, ch := rect.W*scale, rect.H*scale; e.exceedsLimit(cw, ch) {
		return nil, errors.New(errors.ErrCodeBackendUnavailable,
			"capture %.0fx%.0f exceeds the %d pixel buffer limit", cw, ch, e.maxPixels)
	}
	logger.Debug("capturing", "rect", fmt.Sprintf("%.1fx%.1f", rect.W, rect.H),
		"target", fmt.Sprintf("%dx%d", targetW, targetH), "capture_scale", scale)

	bg := spec.BackgroundColor()
	captured, err := r.Capture(ctx, scale, bg)
	if err != nil {
		return nil, classify(err, "capture %s", panel)
	}
	if captured == nil || captured.Bounds().Empty() {
		return nil, errors.New(errors.ErrCodeEmptyCapture, "capture of %s produced an empty bitmap", panel)
	}
	cb := captured.Bounds()
	hooks.OnCapture(ctx, panel, cb.Dx(), cb.Dy(), scale)

	out := Resample(captured, targetW, targetH, bg)
	data, err := EncodePNG(out, spec.DPI)
	if err != nil {
		return nil, classify(err, "encode %s", panel)
	}

	name := spec.Filename
	if name == "" {
		name = printspec.Filename(panel, "", spec)
	}

	return &Artifact{
		ID:           exportID,
		Panel:        panel,
		Spec:         spec,
		Filename:     name,
		Width:        targetW,
		Height:       targetH,
		CaptureScale: scale,
		CaptureSize:  image.Pt(cb.Dx(), cb.Dy()),
		PNG:          data,
	}, nil
}

// exceedsLimit reports whether a w x h buffer is over the pixel cap. The
// product is taken in float64 so huge sides cannot wrap around.
func (e *Engine) exceedsLimit(w, h float64) bool {
	return e.maxPixels > 0 && w*h > float64(e.maxPixels)
}

// Export runs ExportRegion and hands the result to d. Nothing is delivered
// when the export fails.
func (e *Engine) Export(ctx context.Context, r region.Region, spec printspec.OutputSpec, d Deliverer) (*Artifact, error) {
	art, err := e.ExportRegion(ctx, r, spec)
	if err != nil {
		return nil, err
	}
	if err := d.Deliver(ctx, art.Filename, art.PNG); err != nil {
		e.logger.Error("delivery failed", "export_id", art.ID, "panel", art.Panel, "file", art.Filename, "err", err)
		if errors.GetCode(err) == "" {
			err = errors.Wrap(errors.ErrCodeDeliveryFailed, err, "deliver %s", art.Filename)
		}
		return nil, err
	}
	return art, nil
}

// CaptureScale returns the factor that maps rect onto the target along axis.
func CaptureScale(rect region.Rect, targetW, targetH int, axis printspec.Axis) float64 {
	if axis == printspec.AxisHeight {
		return float64(targetH) / rect.H
	}
	return float64(targetW) / rect.W
}

// classify keeps the engine codes intact and maps anything else to UNKNOWN.
func classify(err error, format string, args ...any) error {
	if errors.IsExportFailure(err) {
		return err
	}
	return errors.Wrap(errors.ErrCodeUnknown, err, format, args...)
}
