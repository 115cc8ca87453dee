// Package sleeve draws the clamshell packaging sleeve.
//
// The sleeve is a 90 mm wide strip folded around the box. Unfolded from
// the top it reads art panel, side, nutrition panel, side:
//
//	+-----------+  0 mm
//	|    art    |
//	+-----------+  130 mm
//	|   side    |
//	+-----------+  165 mm
//	| nutrition |
//	+-----------+  295 mm
//	|   side    |
//	+-----------+  330 mm
//
// Panels are laid out in millimetres with tdewolff/canvas and rasterized
// at whatever resolution the capture asks for. Bleed extends the outer
// backgrounds; text and rules stay inside the trim box.
package sleeve

import (
	"context"
	"image"
	"image/color"
	"sort"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"

	"github.com/matzehuels/microprint/pkg/errors"
	"github.com/matzehuels/microprint/pkg/fonts"
	"github.com/matzehuels/microprint/pkg/region"
)

// Panel identifies one part of the sleeve.
type Panel string

// Sleeve panels. Full is the whole unfolded strip.
const (
	Full      Panel = "sleeve"
	Art       Panel = "sleeve/art"
	Nutrition Panel = "sleeve/nutrition"
	Side      Panel = "sleeve/side"
)

// Trim sizes in millimetres.
const (
	WidthMM     = 90.0
	ArtMM       = 130.0
	NutritionMM = 130.0
	SideMM      = 35.0
	LengthMM    = ArtMM + SideMM + NutritionMM + SideMM
)

var trimHeights = map[Panel]float64{
	Full:      LengthMM,
	Art:       ArtMM,
	Nutrition: NutritionMM,
	Side:      SideMM,
}

// Panels returns every panel id in sorted order.
func Panels() []Panel {
	out := make([]Panel, 0, len(trimHeights))
	for p := range trimHeights {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Option configures a Sleeve.
type Option func(*Sleeve)

// WithBleed extends every panel by mm on all sides.
func WithBleed(mm float64) Option {
	return func(s *Sleeve) { s.bleed = mm }
}

// WithPhoto sets the cover photo of the art panel. Without one the panel
// draws a generated sprout pattern.
func WithPhoto(img image.Image) Option {
	return func(s *Sleeve) { s.photo = img }
}

// Sleeve lays out the packaging panels.
type Sleeve struct {
	fonts *fonts.Registry
	bleed float64
	photo image.Image
}

// New creates a sleeve layout.
func New(reg *fonts.Registry, opts ...Option) *Sleeve {
	s := &Sleeve{fonts: reg}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Size returns the panel size including bleed.
func (s *Sleeve) Size(p Panel) (w, h float64, err error) {
	th, ok := trimHeights[p]
	if !ok {
		return 0, 0, errors.New(errors.ErrCodeNotFound, "unknown sleeve panel %q", p)
	}
	return WidthMM + 2*s.bleed, th + 2*s.bleed, nil
}

// Region returns panel p as a region measured in millimetres. Use
// region.WithScale to set the on-screen pixels per millimetre.
func (s *Sleeve) Region(p Panel, opts ...region.Option) (*region.Drawn, error) {
	w, h, err := s.Size(p)
	if err != nil {
		return nil, err
	}
	paint := func(ctx context.Context, dpmm float64, bg color.NRGBA) (image.Image, error) {
		return s.Draw(p, dpmm, bg)
	}
	return region.New(string(p), w, h, paint, opts...), nil
}

// Draw rasterizes panel p at dpmm pixels per millimetre.
func (s *Sleeve) Draw(p Panel, dpmm float64, bg color.NRGBA) (image.Image, error) {
	if !(dpmm > 0) {
		return nil, errors.New(errors.ErrCodeEmptyCapture, "%s: resolution %v px/mm", p, dpmm)
	}
	c, err := s.Canvas(p, dpmm, bg)
	if err != nil {
		return nil, err
	}
	return rasterizer.Draw(c, canvas.DPMM(dpmm), canvas.DefaultColorSpace), nil
}

// Canvas builds the vector layout of panel p. dpmm only sets the
// resolution of embedded raster artwork.
func (s *Sleeve) Canvas(p Panel, dpmm float64, bg color.NRGBA) (*canvas.Canvas, error) {
	w, h, err := s.Size(p)
	if err != nil {
		return nil, err
	}

	c := canvas.New(w, h)
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)
	pn := pen{ctx: ctx, fonts: s.fonts}
	pn.rect(0, 0, w, h, bg)

	b := s.bleed
	switch p {
	case Art:
		s.drawArt(pn, frame{b, b, WidthMM, ArtMM, b, b}, dpmm)
	case Nutrition:
		s.drawNutrition(pn, frame{b, b, WidthMM, NutritionMM, b, b}, dpmm)
	case Side:
		s.drawSide(pn, frame{b, b, WidthMM, SideMM, b, b})
	case Full:
		y := b
		s.drawArt(pn, frame{b, y, WidthMM, ArtMM, b, 0}, dpmm)
		y += ArtMM
		s.drawSide(pn, frame{b, y, WidthMM, SideMM, 0, 0})
		y += SideMM
		s.drawNutrition(pn, frame{b, y, WidthMM, NutritionMM, 0, 0}, dpmm)
		y += NutritionMM
		s.drawSide(pn, frame{b, y, WidthMM, SideMM, 0, b})
	}
	return c, nil
}

// frame is a panel's trim box plus how far its background extends past
// the top and bottom edges. Backgrounds always extend sideways by the
// bleed, which equals x.
type frame struct {
	x, y, w, h float64
	top, bot   float64
}

// bg returns the background box.
func (f frame) bg() (x, y, w, h float64) {
	return 0, f.y - f.top, f.w + 2*f.x, f.h + f.top + f.bot
}
