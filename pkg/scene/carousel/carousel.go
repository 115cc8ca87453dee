// Package carousel draws the Instagram carousel slides.
//
// Every slide is 1080x1080 logical pixels. The renderer draws them at any
// device ratio, so a preview at 0.4x and a print capture at 2.5x come from
// the same layout code.
package carousel

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/skip2/go-qrcode"

	"github.com/matzehuels/microprint/pkg/content"
	"github.com/matzehuels/microprint/pkg/errors"
	"github.com/matzehuels/microprint/pkg/fonts"
	"github.com/matzehuels/microprint/pkg/printspec"
	"github.com/matzehuels/microprint/pkg/region"
)

const (
	size = content.SlideSize
	pad  = 64.0
)

// ID returns the panel id of slide n, e.g. "slide-3".
func ID(n int) string { return fmt.Sprintf("slide-%d", n) }

// Filename returns the download name of a slide.
func Filename(s content.Slide) string { return printspec.SlideFilename(s.Number, s.Title) }

// Renderer draws slides with the fonts of a registry.
type Renderer struct {
	fonts *fonts.Registry
}

// New creates a slide renderer.
func New(reg *fonts.Registry) *Renderer {
	return &Renderer{fonts: reg}
}

// Region returns slide s as an exportable region.
func (r *Renderer) Region(s content.Slide, opts ...region.Option) *region.Drawn {
	return region.New(ID(s.Number), size, size, r.PaintFunc(s), opts...)
}

// PaintFunc returns the paint function for slide s.
func (r *Renderer) PaintFunc(s content.Slide) region.PaintFunc {
	return func(ctx context.Context, ratio float64, bg color.NRGBA) (image.Image, error) {
		if ratio <= 0 {
			return nil, errors.New(errors.ErrCodeEmptyCapture, "slide %d: ratio %v", s.Number, ratio)
		}
		return r.Draw(s, ratio, bg)
	}
}

// Draw renders slide s at ratio device pixels per logical pixel.
func (r *Renderer) Draw(s content.Slide, ratio float64, bg color.NRGBA) (image.Image, error) {
	p := newPainter(r.fonts, size, ratio)
	defer p.close()
	p.clear(bg)

	switch s.Kind {
	case content.SlideCover:
		drawCover(p)
	case content.SlideWhat:
		drawWhat(p)
	case content.SlideCompare:
		if s.Vegetable == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "slide %d: comparison without vegetable", s.Number)
		}
		drawCompare(p, *s.Vegetable)
	case content.SlideSummary:
		drawSummary(p)
	case content.SlideCTA:
		if err := drawCTA(p); err != nil {
			return nil, err
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "slide %d: unknown kind %d", s.Number, s.Kind)
	}
	return p.image(), nil
}

// header draws the farm name and the gold rule shared by the inner slides
// and returns the y below the rule.
func header(p *painter, nameColor color.Color, gap float64) float64 {
	p.useFace(fonts.Italic, 32)
	p.text(content.Farm, pad, pad+20, 0, 0.35, nameColor)
	p.roundRect(pad, pad+48, 64, 4, 2, content.Gold)
	return pad + 52 + gap
}

func drawCover(p *painter) {
	p.gradient(content.HeroGradient, 0, 0, size, size)

	p.useFace(fonts.Body, 36)
	leadSpans := []span{
		{content.CoverLead, content.Mint},
		{content.CoverHighlight, content.Gold},
		{content.CoverTail, content.Mint},
	}
	leadLines := len(p.lines(content.CoverLead+content.CoverHighlight+content.CoverTail, 700))

	const nameH, ruleGap, titleH, titleGap, leadLH, hintGap, hintH = 62.0, 40.0, 90.0, 24.0, 58.0, 48.0, 36.0
	total := nameH + 16 + ruleGap + titleH + titleGap + float64(leadLines)*leadLH + hintGap + hintH
	y := (size - total) / 2

	p.useFace(fonts.Italic, 52)
	p.text(content.Farm, size/2, y+nameH/2, 0.5, 0.35, content.GoldLight)
	y += nameH + 16
	p.roundRect(size/2-48, y, 96, 4, 2, content.Gold)
	y += ruleGap

	p.useFace(fonts.Display, 72)
	p.text(content.CoverTitle, size/2, y+titleH/2, 0.5, 0.35, content.Paper)
	y += titleH + titleGap

	p.useFace(fonts.Body, 36)
	y = p.richParagraph(leadSpans, size/2, y, 700, leadLH)
	y += hintGap

	p.useFace(fonts.Body, 28)
	p.text(content.SwipeHint, size/2, y+hintH/2, 0.5, 0.35, content.Mint)
}

func drawWhat(p *painter) {
	p.rect(0, 0, size, size, content.Cream)
	y := header(p, content.GreenForest, 40)

	p.useFace(fonts.Display, 56)
	y = p.paragraph(content.WhatTitle, pad, y, size-2*pad, 68, gg.AlignLeft, content.GreenDark)
	y += 32

	const iconD, gap, textLH = 64.0, 32.0, 40.0
	textX := pad + iconD + 24
	textW := size - pad - textX

	p.useFace(fonts.Body, 30)
	heights := make([]float64, len(content.Facts))
	block := 0.0
	for i, f := range content.Facts {
		n := float64(len(p.lines(f.Text, textW)))
		heights[i] = max(n*textLH, iconD)
		block += heights[i]
	}
	block += gap * float64(len(content.Facts)-1)
	y += max(0, (size-pad-y-block)/2)

	for i, f := range content.Facts {
		p.icon(f.Icon, pad+iconD/2, y+iconD/2, iconD)
		p.useFace(fonts.Body, 30)
		p.paragraph(f.Text, textX, y+max(0, (iconD-textLH)/2-8), textW, textLH, gg.AlignLeft, content.Ink)
		y += heights[i] + gap
	}
}

func drawCompare(p *painter, v content.Vegetable) {
	p.gradient(content.DarkGradient, 0, 0, size, size)
	y := header(p, content.GoldLight, 32)

	p.useFace(fonts.Display, 48)
	y = p.paragraph("Microverdes vs "+v.Name, pad, y, size-2*pad, 60, gg.AlignLeft, content.Paper)
	y += 8
	p.useFace(fonts.Body, 26)
	p.text(content.ServingNote, pad, y+16, 0, 0.35, content.MintMuted)
	y += 32 + 40

	const cardH, gap, footH = 150.0, 32.0, 60.0
	n := float64(len(v.Highlights))
	block := n*cardH + (n-1)*gap
	y += max(0, (size-pad-footH-y-block)/2)

	cardFill := content.WithAlpha(content.GreenDark, 0.6)
	for _, h := range v.Highlights {
		p.roundRect(pad, y, size-2*pad, cardH, 16, cardFill)
		p.strokeRoundRect(pad, y, size-2*pad, cardH, 16, 1, content.GreenEdge)
		p.icon(h.Icon, pad+32+36, y+cardH/2, 72)

		tx := pad + 32 + 72 + 24
		p.useFace(fonts.Body, 30)
		p.text(h.Label, tx, y+cardH/2-24, 0, 0.35, content.Paper)
		p.useFace(fonts.Display, 40)
		p.text(h.Micro, tx, y+cardH/2+26, 0, 0.35, content.Gold)
		y += cardH + gap
	}

	p.useFace(fonts.Body, 22)
	p.text(content.SourceNote, size/2, size-pad-12, 0.5, 0.35, content.MintFaint)
}

func drawSummary(p *painter) {
	p.rect(0, 0, size, size, content.Cream)
	y := header(p, content.GreenForest, 32)

	p.useFace(fonts.Display, 48)
	y = p.paragraph(content.SummaryTitle, pad, y, size-2*pad, 60, gg.AlignLeft, content.GreenDark)
	y += 40

	const gap = 24.0
	cols, rows := 2.0, float64((len(content.Reasons)+1)/2)
	cardW := (size - 2*pad - gap) / cols
	cardH := (size - pad - y - gap*(rows-1)) / rows
	shadow := content.WithAlpha(content.GreenNight, 0.08)

	for i, r := range content.Reasons {
		cx := pad + float64(i%2)*(cardW+gap)
		cy := y + float64(i/2)*(cardH+gap)
		p.roundRect(cx, cy+4, cardW, cardH, 16, shadow)
		p.roundRect(cx, cy, cardW, cardH, 16, content.White)

		top := cy + (cardH-220)/2
		p.icon(r.Icon, cx+cardW/2, top+40, 80)
		p.useFace(fonts.Display, 28)
		p.text(r.Title, cx+cardW/2, top+112, 0.5, 0.35, content.GreenDark)
		p.useFace(fonts.Body, 22)
		p.paragraph(r.Desc, cx+32, top+140, cardW-64, 30, gg.AlignCenter, content.InkMuted)
	}
}

func drawCTA(p *painter) error {
	p.gradient(content.HeroGradient, 0, 0, size, size)

	p.useFace(fonts.Body, 30)
	bodyLines := float64(len(p.lines(content.CTABody, 700)))

	const nameH, titleLH, bodyLH, btnH, qr = 62.0, 68.0, 44.0, 88.0, 160.0
	total := nameH + 24 + 4 + 48 + 2*titleLH + 24 + bodyLines*bodyLH + 40 + btnH + 32 + 36 + 32 + qr
	y := (size - total) / 2

	p.useFace(fonts.Italic, 52)
	p.text(content.Farm, size/2, y+nameH/2, 0.5, 0.35, content.GoldLight)
	y += nameH + 24
	p.roundRect(size/2-48, y, 96, 4, 2, content.Gold)
	y += 4 + 48

	p.useFace(fonts.Display, 56)
	y = p.paragraph(content.CTATitle, pad, y, size-2*pad, titleLH, gg.AlignCenter, content.Paper)
	y += 24

	p.useFace(fonts.Body, 30)
	y = p.paragraph(content.CTABody, (size-700)/2, y, 700, bodyLH, gg.AlignCenter, content.Mint)
	y += 40

	p.useFace(fonts.Display, 32)
	btnW := p.measure(content.CTAButton) + 96 + 56
	bx := (size - btnW) / 2
	p.roundRect(bx, y, btnW, btnH, 16, content.Gold)
	p.icon(content.Icon{Mark: "@", Color: content.GreenDeep}, bx+48+20, y+btnH/2, 40)
	p.useFace(fonts.Display, 32)
	p.text(content.CTAButton, bx+48+56, y+btnH/2, 0, 0.35, content.GreenDeep)
	y += btnH + 32

	p.useFace(fonts.Body, 26)
	p.text(content.Instagram, size/2, y+18, 0.5, 0.35, content.MintMuted)
	y += 36 + 32

	code, err := qrcode.New(content.InstagramURL, qrcode.Medium)
	if err != nil {
		return errors.Wrap(errors.ErrCodeUnknown, err, "qr code")
	}
	code.BackgroundColor = content.Paper
	code.ForegroundColor = content.GreenDeep
	p.roundRect(size/2-qr/2-12, y-12, qr+24, qr+24, 12, content.Paper)
	p.picture(code.Image(256), size/2-qr/2, y, qr, qr, imaging.NearestNeighbor)
	return nil
}
