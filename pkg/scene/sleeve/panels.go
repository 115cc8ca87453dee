package sleeve

import (
	"image"
	"image/color"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/skip2/go-qrcode"
	"github.com/tdewolff/canvas"

	"github.com/matzehuels/microprint/pkg/content"
	"github.com/matzehuels/microprint/pkg/fonts"
)

// =============================================================================
// Art panel
// =============================================================================

func (s *Sleeve) drawArt(pn pen, f frame, dpmm float64) {
	bx, by, bw, bh := f.bg()
	pw, ph := px(bw, dpmm), px(bh, dpmm)

	if s.photo != nil {
		pn.image(imaging.Fill(s.photo, pw, ph, imaging.Center, imaging.Lanczos), bx, by, bw)
	} else {
		drawSprouts(pn, bx, by, bw, bh)
	}
	pn.image(gradientImage(content.PhotoShade, max(1, pw/8), max(2, ph/8)), bx, by, bw)

	cx := f.x + f.w/2
	title := []string{content.Product}
	if pn.width(fonts.Italic, 22, content.Product) > f.w-12 {
		title = splitTitle(content.Product)
	}

	// Content block sits on the bottom edge of the trim box.
	const ruleGap, titleLH = 2.5, 8.6
	y := f.y + f.h - 6 - 6.5 - 4 - 2.5 - 0.5 - ruleGap - float64(len(title))*titleLH - ruleGap - 0.5
	pn.roundRect(cx-15, y, 30, 0.5, 0.25, content.Gold)
	y += 0.5 + ruleGap
	for _, line := range title {
		pn.text(fonts.Italic, 22, content.GoldLight, line, cx, y, canvas.Center)
		y += titleLH
	}
	y += ruleGap - 1
	pn.roundRect(cx-15, y, 30, 0.5, 0.25, content.Gold)
	y += 0.5 + 2.5

	y += pn.text(fonts.Body, 7, content.Gold, spaced(strings.ToUpper(content.Tagline)), cx, y, canvas.Center)

	label := content.Badge
	pillW := pn.width(fonts.Body, 6, label) + 9
	pillY := y + 1.5
	pn.roundRect(cx-pillW/2, pillY, pillW, 5, 2.5, content.WithAlpha(content.Gold, 0.12))
	pn.strokeRoundRect(cx-pillW/2, pillY, pillW, 5, 2.5, 0.2, content.WithAlpha(content.Gold, 0.5))
	pn.ellipse(cx-pillW/2+3, pillY+2.5, 0.9, 0.9, 0, content.Mint)
	pn.text(fonts.Body, 6, content.GoldLight, label, cx+1.5, pillY+1.1, canvas.Center)
}

// drawSprouts paints a field of sunflower shoots seen from above.
func drawSprouts(pn pen, x, y, w, h float64) {
	pn.rect(x, y, w, h, content.HSL(95, 35, 22))
	rng := rand.New(rand.NewPCG(0x6769726173736f6c, 0x6d6963726f))
	leaf := []color.NRGBA{content.HSL(96, 55, 38), content.HSL(100, 60, 45), content.HSL(88, 50, 52), content.HSL(105, 45, 32)}

	n := int(w * h / 9)
	for i := 0; i < n; i++ {
		cx := x + rng.Float64()*w
		cy := y + rng.Float64()*h
		rot := rng.Float64() * 180
		c := leaf[rng.IntN(len(leaf))]
		size := 1.6 + rng.Float64()*1.6
		rad := rot * math.Pi / 180
		dx, dy := math.Cos(rad)*size*0.9, math.Sin(rad)*size*0.9
		pn.ellipse(cx-dx, cy-dy, size, size*0.55, rot, c)
		pn.ellipse(cx+dx, cy+dy, size, size*0.55, rot, content.Blend(c, content.GoldLight, 0.12))
		pn.ellipse(cx, cy, 0.35, 0.35, 0, content.HSL(60, 30, 80))
	}
}

// splitTitle breaks the product name before its last two words.
func splitTitle(s string) []string {
	words := strings.Fields(s)
	if len(words) < 3 {
		return []string{s}
	}
	cut := len(words) - 2
	return []string{strings.Join(words[:cut], " "), strings.Join(words[cut:], " ")}
}

// spaced puts a space between letters for tracked-out captions.
func spaced(s string) string {
	r := []rune(s)
	out := make([]string, len(r))
	for i, c := range r {
		out[i] = string(c)
	}
	return strings.Join(out, " ")
}

// =============================================================================
// Side connector
// =============================================================================

func (s *Sleeve) drawSide(pn pen, f frame) {
	bx, by, bw, bh := f.bg()
	s.fillGradient(pn, content.PanelGradient, bx, by, bw, bh)

	pn.text(fonts.Italic, 9, content.GoldLight, content.Product, f.x+f.w/2, f.y+f.h/2-1.9, canvas.Center)

	edge := content.WithAlpha(content.Gold, 0.5)
	pn.rect(bx, f.y, bw, 0.3, edge)
	pn.rect(bx, f.y+f.h-0.3, bw, 0.3, edge)
}

// =============================================================================
// Nutrition panel
// =============================================================================

func (s *Sleeve) drawNutrition(pn pen, f frame, dpmm float64) {
	bx, by, bw, bh := f.bg()
	pn.rect(bx, by, bw, bh, content.Cream)
	stripe := content.WithAlpha(content.CreamDark, 0.6)
	for d := -bh; d < bw; d += 3 {
		pn.line(bx+d, by+bh, bx+d+bh, by, 0.15, stripe)
	}

	// Header bar.
	const headerH = 12.0
	s.fillGradient(pn, content.PanelGradient, bx, by, bw, f.y-by+headerH)
	pn.text(fonts.Italic, 10, content.GoldLight, content.Product, f.x+4, f.y+2.2, canvas.Left)
	pn.text(fonts.Body, 5, content.WithAlpha(content.Gold, 0.8), spaced(strings.ToUpper(content.Tagline)), f.x+4, f.y+7.4, canvas.Left)
	s.fillGradient(pn, content.GoldGradient, bx, f.y+headerH, bw, 0.7)

	top := f.y + headerH + 0.7 + 2
	const stripH = 6.0
	bottom := f.y + f.h - stripH - 1.5
	colW := (f.w - 4 - 3) / 2
	left := f.x + 2
	right := left + colW + 3

	s.nutritionTable(pn, left, top, colW, bottom, dpmm)
	pn.line(left+colW+1.5, top, left+colW+1.5, bottom, 0.15, content.WithAlpha(content.GreenDeep, 0.15))
	s.comparisonChart(pn, right, top, colW, bottom)

	// Storage strip.
	sy := f.y + f.h - stripH
	pn.rect(bx, sy, bw, f.y+f.h+f.bot-sy, content.WithAlpha(content.GreenDeep, 0.08))
	pn.line(bx, sy, bx+bw, sy, 0.15, content.WithAlpha(content.GreenDeep, 0.1))
	notes := content.StorageNotes
	aligns := []canvas.TextAlign{canvas.Left, canvas.Center, canvas.Right}
	xs := []float64{f.x + 3, f.x + f.w/2, f.x + f.w - 3}
	for i, note := range notes {
		if i >= len(aligns) {
			break
		}
		pn.text(fonts.Body, 4.2, content.Muted, note, xs[i], sy+2, aligns[i])
	}
}

func (s *Sleeve) nutritionTable(pn pen, x, y, w, bottom, dpmm float64) {
	heading(pn, "Informação Nutricional", x, y, w)
	y += 4.2
	y += pn.text(fonts.Body, 5.5, content.Muted, "Porção de 50g · Por 100g", x, y, canvas.Left)
	pn.text(fonts.Body, 5, content.Muted, "%VD*", x+w, y, canvas.Right)
	y += 2.6

	const rowH = 4.6
	for i, row := range content.NutritionTable {
		pn.text(fonts.Body, 6.5, content.GreenDeep, row.Nutrient, x, y+0.8, canvas.Left)
		pn.text(fonts.Display, 6.5, content.GreenDeep, row.Amount(), x+w-6, y+0.8, canvas.Right)
		pn.text(fonts.Body, 5.5, content.Muted, row.DailyValue, x+w, y+1.1, canvas.Right)
		if i < len(content.NutritionTable)-1 {
			pn.line(x, y+rowH, x+w, y+rowH, 0.1, content.WithAlpha(content.GreenDeep, 0.1))
		}
		y += rowH
	}
	y += 1
	for _, line := range pn.wrap(fonts.Body, 4.5, content.DailyValueFtn, w) {
		y += pn.text(fonts.Body, 4.5, content.Muted, line, x, y, canvas.Left)
	}

	// Order code under the table.
	const qr = 13.0
	if bottom-y < qr+1 {
		return
	}
	code, err := qrcode.New(content.InstagramURL, qrcode.Medium)
	if err != nil {
		return
	}
	code.BackgroundColor = content.Cream
	code.ForegroundColor = content.GreenDeep
	code.DisableBorder = true
	qy := bottom - qr
	side := max(px(qr, dpmm), 21)
	pn.image(imaging.Resize(code.Image(side*4), side, side, imaging.NearestNeighbor), x, qy, qr)
	pn.text(fonts.Display, 5, content.GreenDeep, "Peça pelo Instagram", x+qr+2, qy+3, canvas.Left)
	pn.text(fonts.Body, 5, content.Muted, content.Instagram, x+qr+2, qy+6.5, canvas.Left)
}

func (s *Sleeve) comparisonChart(pn pen, x, y, w, bottom float64) {
	heading(pn, "Comparativo × Alface", x, y, w)
	y += 4.6

	pn.roundRect(x, y+0.3, 2.5, 1.5, 0.3, content.Gold)
	pn.text(fonts.Display, 5, content.GreenDeep, "Microverdes", x+3.3, y, canvas.Left)
	lx := x + 3.3 + pn.width(fonts.Display, 5, "Microverdes") + 3
	pn.roundRect(lx, y+0.3, 2.5, 1.5, 0.3, content.WithAlpha(content.Muted, 0.4))
	pn.text(fonts.Body, 5, content.Muted, "Alface", lx+3.3, y, canvas.Left)
	y += 3.6

	const valueW, barH, rowH = 8.0, 1.8, 9.4
	track := w - valueW - 1
	for _, c := range content.Comparisons {
		sf, lt := c.BarFractions()
		pn.text(fonts.Display, 5.5, content.GreenDeep, strings.ToUpper(c.Label), x, y, canvas.Left)
		pn.text(fonts.Display, 5, content.GoldDark, content.FormatNumber(c.Ratio())+"×", x+w, y+0.2, canvas.Right)

		by := y + 3
		pn.roundRect(x, by, track, barH, barH/2, content.CreamDark)
		s.fillGradient(pn, content.GoldGradient, x, by, track*sf, barH)
		pn.text(fonts.Body, 4.5, content.GreenDeep, content.FormatNumber(c.Sunflower)+c.Unit, x+w, by-0.2, canvas.Right)

		by += barH + 0.8
		pn.roundRect(x, by, track, barH, barH/2, content.CreamDark)
		pn.roundRect(x, by, track*lt, barH, barH/2, content.WithAlpha(content.Muted, 0.4))
		pn.text(fonts.Body, 4.5, content.Muted, content.FormatNumber(c.Lettuce)+c.Unit, x+w, by-0.2, canvas.Right)
		y += rowH
	}

	// Key stats along the bottom of the column.
	const statH, gap = 9.0, 1.0
	n := float64(len(content.KeyStats))
	sw := (w - gap*(n-1)) / n
	sy := max(y+1, bottom-statH)
	for i, st := range content.KeyStats {
		sx := x + float64(i)*(sw+gap)
		pn.roundRect(sx, sy, sw, statH, 0.8, content.WithAlpha(content.GreenForest, 0.06))
		pn.strokeRoundRect(sx, sy, sw, statH, 0.8, 0.15, content.WithAlpha(content.GreenDeep, 0.15))
		pn.text(fonts.Italic, 11, content.GoldDark, st.Stat, sx+sw/2, sy+0.6, canvas.Center)
		pn.text(fonts.Body, 4.5, content.GreenDeep, st.Desc, sx+sw/2, sy+6, canvas.Center)
	}
}

func heading(pn pen, s string, x, y, w float64) {
	pn.text(fonts.Display, 6.5, content.GreenDeep, strings.ToUpper(s), x, y, canvas.Left)
	pn.rect(x, y+3.2, w, 0.5, content.GreenDeep)
}

// =============================================================================
// Raster helpers
// =============================================================================

// fillGradient draws a vertical gradient into a box as an embedded image.
func (s *Sleeve) fillGradient(pn pen, g content.Gradient, x, y, w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	pn.image(gradientImage(g, 4, max(2, int(h*4))), x, y, w)
}

// gradientImage renders a vertical gradient of w x h pixels.
func gradientImage(g content.Gradient, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		c := g.At((float64(y) + 0.5) / float64(h))
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func px(mm, dpmm float64) int {
	return max(1, int(math.Round(mm*dpmm)))
}
