package carousel

import (
	"image"
	"image/color"
	"math"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/microprint/pkg/content"
	"github.com/matzehuels/microprint/pkg/fonts"
)

// painter draws in logical slide units onto a device-pixel gg context.
//
// Coordinates are multiplied by s before they reach gg, and faces are
// built at the scaled size. Scaling the context instead would stretch
// glyph bitmaps rasterized at the logical size.
type painter struct {
	dc    *gg.Context
	s     float64
	fonts *fonts.Registry
	faces []font.Face
}

func newPainter(reg *fonts.Registry, size, ratio float64) *painter {
	px := int(math.Round(size * ratio))
	return &painter{dc: gg.NewContext(px, px), s: ratio, fonts: reg}
}

func (p *painter) close() {
	for _, f := range p.faces {
		f.Close()
	}
	p.faces = nil
}

func (p *painter) image() image.Image { return p.dc.Image() }

func (p *painter) useFace(role fonts.Role, px float64) {
	f := p.fonts.Face(role, px*p.s)
	p.faces = append(p.faces, f)
	p.dc.SetFontFace(f)
}

func (p *painter) clear(c color.Color) {
	p.dc.SetColor(c)
	p.dc.Clear()
}

func (p *painter) rect(x, y, w, h float64, c color.Color) {
	p.dc.SetColor(c)
	p.dc.DrawRectangle(x*p.s, y*p.s, w*p.s, h*p.s)
	p.dc.Fill()
}

func (p *painter) roundRect(x, y, w, h, r float64, c color.Color) {
	p.dc.SetColor(c)
	p.dc.DrawRoundedRectangle(x*p.s, y*p.s, w*p.s, h*p.s, r*p.s)
	p.dc.Fill()
}

func (p *painter) strokeRoundRect(x, y, w, h, r, lw float64, c color.Color) {
	p.dc.SetColor(c)
	p.dc.SetLineWidth(lw * p.s)
	p.dc.DrawRoundedRectangle(x*p.s, y*p.s, w*p.s, h*p.s, r*p.s)
	p.dc.Stroke()
}

func (p *painter) circle(cx, cy, r float64, c color.Color) {
	p.dc.SetColor(c)
	p.dc.DrawCircle(cx*p.s, cy*p.s, r*p.s)
	p.dc.Fill()
}

// gradient fills a rectangle with a vertical ramp.
func (p *painter) gradient(g content.Gradient, x, y, w, h float64) {
	grad := gg.NewLinearGradient(0, y*p.s, 0, (y+h)*p.s)
	for _, stop := range g {
		grad.AddColorStop(stop.At, stop.Color)
	}
	p.dc.SetFillStyle(grad)
	p.dc.DrawRectangle(x*p.s, y*p.s, w*p.s, h*p.s)
	p.dc.Fill()
}

// text draws a single line anchored at (x, y). ax/ay follow gg: 0,0 puts
// the baseline start at the point, 0.5,0.5 centers the text on it.
func (p *painter) text(s string, x, y, ax, ay float64, c color.Color) {
	p.dc.SetColor(c)
	p.dc.DrawStringAnchored(s, x*p.s, y*p.s, ax, ay)
}

// measure returns the logical width of s in the current face.
func (p *painter) measure(s string) float64 {
	w, _ := p.dc.MeasureString(s)
	return w / p.s
}

// lines wraps s to width in the current face. Explicit newlines are kept.
func (p *painter) lines(s string, width float64) []string {
	var out []string
	for _, para := range strings.Split(s, "\n") {
		out = append(out, p.dc.WordWrap(para, width*p.s)...)
	}
	return out
}

// paragraph draws wrapped text with its first line top at y and returns
// the y just below the last line.
func (p *painter) paragraph(s string, x, y, width, lineHeight float64, align gg.Align, c color.Color) float64 {
	p.dc.SetColor(c)
	for _, line := range p.lines(s, width) {
		ax, lx := 0.0, x
		switch align {
		case gg.AlignCenter:
			ax, lx = 0.5, x+width/2
		case gg.AlignRight:
			ax, lx = 1, x+width
		}
		p.dc.DrawStringAnchored(line, lx*p.s, (y+lineHeight/2)*p.s, ax, 0.35)
		y += lineHeight
	}
	return y
}

// span is a run of words sharing a color.
type span struct {
	text  string
	color color.Color
}

// richParagraph wraps colored spans word by word and centers every line
// on cx. It returns the y below the last line.
func (p *painter) richParagraph(spans []span, cx, y, width, lineHeight float64) float64 {
	type word struct {
		text  string
		color color.Color
		w     float64
	}
	var words []word
	for _, sp := range spans {
		for _, f := range strings.Fields(sp.text) {
			words = append(words, word{f, sp.color, p.measure(f)})
		}
	}
	space := p.measure(" ")

	var line []word
	flush := func() {
		if len(line) == 0 {
			return
		}
		total := -space
		for _, w := range line {
			total += w.w + space
		}
		x := cx - total/2
		for _, w := range line {
			p.text(w.text, x, y+lineHeight/2, 0, 0.35, w.color)
			x += w.w + space
		}
		line = line[:0]
		y += lineHeight
	}

	used := 0.0
	for _, w := range words {
		if len(line) > 0 && used+space+w.w > width {
			flush()
			used = 0
		}
		if len(line) > 0 {
			used += space
		}
		used += w.w
		line = append(line, w)
	}
	flush()
	return y
}

// icon draws a round badge of diameter d centered on (cx, cy).
func (p *painter) icon(ic content.Icon, cx, cy, d float64) {
	p.circle(cx, cy, d/2, ic.Color)
	size := d * 0.5
	if len([]rune(ic.Mark)) > 1 {
		size = d * 0.4
	}
	p.useFace(fonts.Display, size)
	p.text(ic.Mark, cx, cy, 0.5, 0.35, content.White)
}

// picture draws img into a logical box, resampling to the device size.
func (p *painter) picture(img image.Image, x, y, w, h float64, filter imaging.ResampleFilter) {
	pw, ph := int(math.Round(w*p.s)), int(math.Round(h*p.s))
	if pw < 1 || ph < 1 {
		return
	}
	if b := img.Bounds(); b.Dx() != pw || b.Dy() != ph {
		img = imaging.Resize(img, pw, ph, filter)
	}
	p.dc.DrawImage(img, int(math.Round(x*p.s)), int(math.Round(y*p.s)))
}
