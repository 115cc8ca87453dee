package content

import "image/color"

// SlideSize is the logical edge length of an Instagram slide.
const SlideSize = 1080

// Icon stands in for the emoji the brand uses. It is drawn as a round
// badge with a short mark, which renders identically on every machine.
type Icon struct {
	Mark  string
	Color color.NRGBA
}

// Icons used across the carousel.
var (
	IconCitrus     = Icon{"C", HSL(30, 95, 55)}
	IconSparkle    = Icon{"E", HSL(48, 95, 60)}
	IconCarrot     = Icon{"β", HSL(24, 90, 52)}
	IconHeart      = Icon{"K", HSL(142, 60, 42)}
	IconShield     = Icon{"A", HSL(210, 60, 50)}
	IconGem        = Icon{"P", HSL(280, 45, 55)}
	IconSeedling   = Icon{"7", HSL(110, 55, 45)}
	IconMicroscope = Icon{"40", HSL(200, 55, 45)}
	IconPlate      = Icon{"+", HSL(15, 70, 55)}
	IconGlobe      = Icon{"0", HSL(190, 60, 42)}
	IconMuscle     = Icon{"50", HSL(15, 75, 50)}
	IconLeaf       = Icon{"%", HSL(120, 45, 40)}
	IconBolt       = Icon{"!", HSL(45, 100, 50)}
	IconEarth      = Icon{"∞", HSL(170, 50, 38)}
)

// Highlight is a nutrient where microgreens beat the mature plant.
type Highlight struct {
	Label string
	Micro string
	Icon  Icon
}

// Vegetable is a mature leafy green the microgreens are compared with.
type Vegetable struct {
	Key        string
	Name       string
	Highlights []Highlight
}

// Vegetables in slide order.
var Vegetables = []Vegetable{
	{
		Key:  "rucula",
		Name: "Rúcula",
		Highlights: []Highlight{
			{"Vitamina C", "40x mais", IconCitrus},
			{"Vitamina E", "10x mais", IconSparkle},
			{"Betacaroteno", "8x mais", IconCarrot},
		},
	},
	{
		Key:  "alface",
		Name: "Alface",
		Highlights: []Highlight{
			{"Vitamina C", "50x mais", IconCitrus},
			{"Vitamina K", "20x mais", IconHeart},
			{"Antioxidantes", "6x mais", IconShield},
		},
	},
	{
		Key:  "espinafre",
		Name: "Espinafre",
		Highlights: []Highlight{
			{"Vitamina C", "5x mais", IconCitrus},
			{"Vitamina E", "12x mais", IconSparkle},
			{"Polifenóis", "4x mais", IconGem},
		},
	},
}

// Fact is a bullet on the "what are microgreens" slide.
type Fact struct {
	Icon Icon
	Text string
}

// Facts about microgreens.
var Facts = []Fact{
	{IconSeedling, "Plantas colhidas entre 7 a 14 dias após a germinação"},
	{IconMicroscope, "Concentram até 40x mais nutrientes que a planta adulta"},
	{IconPlate, "Sabor intenso e textura delicada"},
	{IconGlobe, "Cultivo sustentável, sem agrotóxicos"},
}

// Reason is a card on the summary slide.
type Reason struct {
	Icon  Icon
	Title string
	Desc  string
}

// Reasons to choose microgreens.
var Reasons = []Reason{
	{IconMuscle, "Mais nutritivos", "Até 50x mais vitaminas e minerais"},
	{IconLeaf, "100% natural", "Sem agrotóxicos, sem aditivos"},
	{IconBolt, "Sabor intenso", "Transformam qualquer prato"},
	{IconEarth, "Sustentáveis", "Menos água, menos terra, menos tempo"},
}

// Slide kinds.
const (
	SlideCover = iota
	SlideWhat
	SlideCompare
	SlideSummary
	SlideCTA
)

// Slide describes one carousel slide.
type Slide struct {
	Number int
	Title  string
	Kind   int
	// Vegetable is set for comparison slides.
	Vegetable *Vegetable
}

// Slides returns the carousel in order. Numbers start at 1.
func Slides() []Slide {
	slides := []Slide{
		{Number: 1, Title: "Capa", Kind: SlideCover},
		{Number: 2, Title: "O que são?", Kind: SlideWhat},
	}
	for i := range Vegetables {
		v := &Vegetables[i]
		slides = append(slides, Slide{Number: len(slides) + 1, Title: "vs " + v.Name, Kind: SlideCompare, Vegetable: v})
	}
	slides = append(slides,
		Slide{Number: len(slides) + 1, Title: "Resumo", Kind: SlideSummary},
		Slide{Number: len(slides) + 2, Title: "CTA", Kind: SlideCTA},
	)
	return slides
}

// Cover copy.
const (
	CoverTitle     = "Microverdes"
	CoverLead      = "O superalimento que entrega "
	CoverHighlight = "até 50x mais nutrientes"
	CoverTail      = " que as verduras tradicionais"
)

// Call to action copy.
const (
	CTATitle  = "Experimente nossos\nMicroverdes!"
	CTABody   = "Direto da nossa fazenda para a sua mesa, com todo o cuidado e frescor que você merece."
	CTAButton = "Peça pelo nosso Instagram"
)

// Headings of the inner slides.
const (
	WhatTitle    = "O que são\nMicroverdes?"
	SummaryTitle = "Resumo: por que escolher Microverdes?"
)
