package sleeve

import (
	"image"
	"image/color"
	"strings"

	"github.com/tdewolff/canvas"

	"github.com/matzehuels/microprint/pkg/fonts"
)

// pen wraps a canvas context whose origin is the top left corner and whose
// unit is the millimetre.
type pen struct {
	ctx   *canvas.Context
	fonts *fonts.Registry
}

func (p pen) face(role fonts.Role, pt float64, c color.Color) *canvas.FontFace {
	return p.fonts.Family(role).Face(pt, c, canvas.FontRegular, canvas.FontNormal)
}

func (p pen) width(role fonts.Role, pt float64, s string) float64 {
	return p.face(role, pt, color.Black).TextWidth(s)
}

// text draws s with its top edge at y. x is the left edge, center or right
// edge depending on align. It returns the line height.
func (p pen) text(role fonts.Role, pt float64, c color.Color, s string, x, y float64, align canvas.TextAlign) float64 {
	face := p.face(role, pt, c)
	m := face.Metrics()
	p.ctx.DrawText(x, y+m.Ascent, canvas.NewTextLine(face, s, align))
	return m.LineHeight
}

// wrap splits s into lines no wider than width.
func (p pen) wrap(role fonts.Role, pt float64, s string, width float64) []string {
	face := p.face(role, pt, color.Black)
	var lines []string
	line := ""
	for _, word := range strings.Fields(s) {
		next := word
		if line != "" {
			next = line + " " + word
		}
		if line != "" && face.TextWidth(next) > width {
			lines = append(lines, line)
			line = word
			continue
		}
		line = next
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

func (p pen) fill(c color.Color) {
	p.ctx.SetFillColor(c)
	p.ctx.SetStrokeColor(canvas.Transparent)
}

func (p pen) stroke(c color.Color, w float64) {
	p.ctx.SetFillColor(canvas.Transparent)
	p.ctx.SetStrokeColor(c)
	p.ctx.SetStrokeWidth(w)
}

func (p pen) rect(x, y, w, h float64, c color.Color) {
	p.fill(c)
	p.ctx.DrawPath(x, y, canvas.Rectangle(w, h))
}

func (p pen) roundRect(x, y, w, h, r float64, c color.Color) {
	p.fill(c)
	p.ctx.DrawPath(x, y, canvas.RoundedRectangle(w, h, r))
}

func (p pen) strokeRoundRect(x, y, w, h, r, lw float64, c color.Color) {
	p.stroke(c, lw)
	p.ctx.DrawPath(x, y, canvas.RoundedRectangle(w, h, r))
}

func (p pen) line(x1, y1, x2, y2, lw float64, c color.Color) {
	p.stroke(c, lw)
	path := &canvas.Path{}
	path.MoveTo(0, 0)
	path.LineTo(x2-x1, y2-y1)
	p.ctx.DrawPath(x1, y1, path)
}

func (p pen) ellipse(cx, cy, rx, ry, rot float64, c color.Color) {
	p.fill(c)
	p.ctx.DrawPath(cx, cy, canvas.Ellipse(rx, ry).Transform(canvas.Identity.Rotate(rot)))
}

// image draws img stretched over the box.
func (p pen) image(img image.Image, x, y, w float64) {
	if img == nil || img.Bounds().Dx() == 0 {
		return
	}
	p.ctx.DrawImage(x, y, img, canvas.DPMM(float64(img.Bounds().Dx())/w))
}
