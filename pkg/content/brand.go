package content

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Brand identity.
const (
	Farm          = "Fazenda Princezinha"
	Instagram     = "@fazendaprincezinha"
	InstagramURL  = "https://instagram.com/fazendaprincezinha"
	Product       = "microverdes de girassol"
	ProductSlug   = "girassol"
	Tagline       = "sem agrotóxicos"
	Badge         = "Cultivado com amor"
	SourceNote    = "*Fonte: Journal of Agricultural and Food Chemistry"
	ServingNote   = "Comparação por porção de 100g"
	SwipeHint     = "Deslize para saber mais →"
	DailyValueFtn = "*% Valores Diários com base numa dieta de 2.000 kcal."
)

// HSL converts CSS-style hsl() components (degrees, percent, percent) to an
// opaque color.
func HSL(h, s, l float64) color.NRGBA {
	r, g, b := colorful.Hsl(h, s/100, l/100).Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

// WithAlpha returns c with its alpha set to a (0..1).
func WithAlpha(c color.NRGBA, a float64) color.NRGBA {
	c.A = uint8(a*255 + 0.5)
	return c
}

// Blend mixes two colors in RGB; t=0 is a, t=1 is b.
func Blend(a, b color.NRGBA, t float64) color.NRGBA {
	ca, _ := colorful.MakeColor(opaque(a))
	cb, _ := colorful.MakeColor(opaque(b))
	r, g, bl := ca.BlendRgb(cb, t).Clamped().RGB255()
	alpha := float64(a.A) + (float64(b.A)-float64(a.A))*t
	return color.NRGBA{R: r, G: g, B: bl, A: uint8(alpha + 0.5)}
}

func opaque(c color.NRGBA) color.NRGBA {
	c.A = 0xff
	return c
}

// Palette of the brand, as used across slides and packaging.
var (
	GreenNight  = HSL(142, 52, 10)
	GreenDeep   = HSL(142, 52, 14)
	GreenDark   = HSL(142, 52, 18)
	GreenForest = HSL(142, 52, 22)
	GreenMoss   = HSL(142, 45, 30)
	GreenEdge   = HSL(142, 45, 32)
	Mint        = HSL(142, 38, 78)
	MintMuted   = HSL(142, 38, 70)
	MintFaint   = HSL(142, 38, 60)
	Gold        = HSL(42, 95, 52)
	GoldLight   = HSL(48, 100, 78)
	GoldDark    = HSL(36, 85, 38)
	Cream       = HSL(55, 60, 95)
	CreamDark   = HSL(50, 40, 86)
	Paper       = HSL(60, 20, 97)
	Ink         = HSL(140, 30, 16)
	InkMuted    = HSL(140, 20, 40)
	Muted       = HSL(140, 10, 46)
	White       = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Gradient is a vertical color ramp with stops at positions 0..1.
type Gradient []GradientStop

// GradientStop is one color of a Gradient.
type GradientStop struct {
	At    float64
	Color color.NRGBA
}

// At returns the gradient color at t (0 top, 1 bottom).
func (g Gradient) At(t float64) color.NRGBA {
	if len(g) == 0 {
		return color.NRGBA{}
	}
	if t <= g[0].At {
		return g[0].Color
	}
	for i := 1; i < len(g); i++ {
		if t <= g[i].At {
			span := g[i].At - g[i-1].At
			if span <= 0 {
				return g[i].Color
			}
			return Blend(g[i-1].Color, g[i].Color, (t-g[i-1].At)/span)
		}
	}
	return g[len(g)-1].Color
}

// Named gradients.
var (
	// HeroGradient backs the cover and call to action slides.
	HeroGradient = Gradient{{0, GreenDeep}, {0.6, GreenForest}, {1, GreenMoss}}
	// DarkGradient backs the comparison slides.
	DarkGradient = Gradient{{0, GreenDeep}, {1, GreenForest}}
	// PanelGradient backs the side connectors and the nutrition header.
	PanelGradient = Gradient{{0, GreenForest}, {1, GreenDeep}}
	// GoldGradient fills rules and bars.
	GoldGradient = Gradient{{0, GoldLight}, {1, Gold}}
	// PhotoShade darkens the art panel photo towards the bottom.
	PhotoShade = Gradient{
		{0, WithAlpha(HSL(142, 52, 12), 0.1)},
		{0.5, WithAlpha(HSL(142, 52, 12), 0.5)},
		{1, WithAlpha(GreenNight, 0.9)},
	}
)
