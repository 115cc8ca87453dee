// Package scene is the layout provider: it names every exportable panel of
// the brand material and hands out regions for them.
//
// Panel ids are "slide-1" through "slide-7" for the Instagram carousel and
// "sleeve", "sleeve/art", "sleeve/nutrition" and "sleeve/side" for the
// packaging. Slides are measured in pixels of their 1080x1080 design size,
// sleeve panels in millimetres.
package scene

import (
	"image"
	"strings"
	"sync"

	"github.com/matzehuels/microprint/pkg/content"
	"github.com/matzehuels/microprint/pkg/errors"
	"github.com/matzehuels/microprint/pkg/fonts"
	"github.com/matzehuels/microprint/pkg/printspec"
	"github.com/matzehuels/microprint/pkg/region"
	"github.com/matzehuels/microprint/pkg/scene/carousel"
	"github.com/matzehuels/microprint/pkg/scene/sleeve"
)

// Kind groups panels by the material they belong to.
type Kind string

const (
	KindSlide  Kind = "slide"
	KindSleeve Kind = "sleeve"
)

// Default preset names per panel.
const (
	PresetPost      = "post"
	PresetSleeve    = "sleeve"
	PresetArt       = "panel-art"
	PresetNutrition = "panel-nutrition"
	PresetSide      = "panel-side"
)

// Entry describes one panel in the catalog.
type Entry struct {
	ID     string
	Title  string
	Kind   Kind
	Preset string

	slide *content.Slide
	panel sleeve.Panel
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithBleed sets the sleeve bleed in millimetres.
func WithBleed(mm float64) Option {
	return func(c *Catalog) { c.bleed = mm }
}

// WithPhoto sets the sleeve cover photo.
func WithPhoto(img image.Image) Option {
	return func(c *Catalog) { c.photo = img }
}

// WithViewport binds every region handed out to v.
func WithViewport(v *region.Viewport) Option {
	return func(c *Catalog) { c.viewport = v }
}

// Catalog maps panel ids to regions.
type Catalog struct {
	fonts    *fonts.Registry
	slides   *carousel.Renderer
	bleed    float64
	photo    image.Image
	viewport *region.Viewport

	mu      sync.Mutex
	sleeves map[float64]*sleeve.Sleeve

	entries []Entry
	byID    map[string]int
}

// NewCatalog builds the catalog over the fonts of reg.
func NewCatalog(reg *fonts.Registry, opts ...Option) *Catalog {
	c := &Catalog{
		fonts:   reg,
		slides:  carousel.New(reg),
		sleeves: make(map[float64]*sleeve.Sleeve),
		byID:    make(map[string]int),
	}
	for _, opt := range opts {
		opt(c)
	}

	for _, s := range content.Slides() {
		c.add(Entry{ID: carousel.ID(s.Number), Title: s.Title, Kind: KindSlide, Preset: PresetPost, slide: &s})
	}
	titles := map[sleeve.Panel]string{
		sleeve.Full:      "Luva completa",
		sleeve.Art:       "Painel frontal",
		sleeve.Nutrition: "Painel nutricional",
		sleeve.Side:      "Lateral",
	}
	presets := map[sleeve.Panel]string{
		sleeve.Full:      PresetSleeve,
		sleeve.Art:       PresetArt,
		sleeve.Nutrition: PresetNutrition,
		sleeve.Side:      PresetSide,
	}
	for _, p := range sleeve.Panels() {
		c.add(Entry{ID: string(p), Title: titles[p], Kind: KindSleeve, Preset: presets[p], panel: p})
	}
	return c
}

func (c *Catalog) add(e Entry) {
	c.byID[e.ID] = len(c.entries)
	c.entries = append(c.entries, e)
}

// IDs returns every panel id, slides first.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.entries))
	for i, e := range c.entries {
		ids[i] = e.ID
	}
	return ids
}

// Entries returns a copy of the catalog entries.
func (c *Catalog) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// Lookup returns the entry for id.
func (c *Catalog) Lookup(id string) (Entry, error) {
	if err := errors.ValidatePanelID(id); err != nil {
		return Entry{}, err
	}
	i, ok := c.byID[id]
	if !ok {
		return Entry{}, errors.New(errors.ErrCodeNotFound, "unknown panel %q", id)
	}
	return c.entries[i], nil
}

// Match returns the ids matching a pattern. A pattern is an exact id, a
// prefix ending in "*" such as "slide-*", or "all".
func (c *Catalog) Match(pattern string) ([]string, error) {
	if pattern == "all" || pattern == "*" {
		return c.IDs(), nil
	}
	prefix, wildcard := strings.CutSuffix(pattern, "*")
	if !wildcard {
		e, err := c.Lookup(pattern)
		if err != nil {
			return nil, err
		}
		return []string{e.ID}, nil
	}
	var ids []string
	for _, e := range c.entries {
		if strings.HasPrefix(e.ID, prefix) {
			ids = append(ids, e.ID)
		}
	}
	if len(ids) == 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "no panel matches %q", pattern)
	}
	return ids, nil
}

// Region returns panel id shown at previewScale device pixels per logical
// unit. The scale only changes what Bounds reports; exported artifacts do
// not depend on it.
func (c *Catalog) Region(id string, previewScale float64) (*region.Drawn, error) {
	return c.region(id, previewScale, c.bleed)
}

// RegionFor is like Region but lays sleeve panels out with the bleed of
// spec, so the region's aspect ratio matches the artifact.
func (c *Catalog) RegionFor(id string, previewScale float64, spec printspec.OutputSpec) (*region.Drawn, error) {
	return c.region(id, previewScale, spec.BleedMM)
}

func (c *Catalog) region(id string, previewScale, bleed float64) (*region.Drawn, error) {
	e, err := c.Lookup(id)
	if err != nil {
		return nil, err
	}
	if !(previewScale > 0) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "preview scale must be positive, got %v", previewScale)
	}
	opts := []region.Option{region.WithScale(previewScale)}
	if c.viewport != nil {
		opts = append(opts, region.WithViewport(c.viewport))
	}
	if e.slide != nil {
		return c.slides.Region(*e.slide, opts...), nil
	}
	return c.sleeveFor(bleed).Region(e.panel, opts...)
}

func (c *Catalog) sleeveFor(bleed float64) *sleeve.Sleeve {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.sleeves[bleed]
	if !ok {
		opts := []sleeve.Option{sleeve.WithBleed(bleed)}
		if c.photo != nil {
			opts = append(opts, sleeve.WithPhoto(c.photo))
		}
		s = sleeve.New(c.fonts, opts...)
		c.sleeves[bleed] = s
	}
	return s
}

// LogicalSize returns the design size of panel id: pixels for slides,
// millimetres for sleeve panels.
func (c *Catalog) LogicalSize(id string) (w, h float64, err error) {
	e, err := c.Lookup(id)
	if err != nil {
		return 0, 0, err
	}
	if e.slide != nil {
		return content.SlideSize, content.SlideSize, nil
	}
	return c.sleeveFor(c.bleed).Size(e.panel)
}

// Filename returns the download name of panel id exported with spec.
//
//	slide-3-vs-rucula.png
//	sleeve-art-girassol-90x130mm-300dpi.png
func (c *Catalog) Filename(id string, spec printspec.OutputSpec) (string, error) {
	e, err := c.Lookup(id)
	if err != nil {
		return "", err
	}
	if e.slide != nil {
		return carousel.Filename(*e.slide), nil
	}
	return printspec.Filename(strings.ReplaceAll(e.ID, "/", "-"), content.ProductSlug, spec), nil
}

// Resolve returns the region and download name for exporting panel id with
// spec. It satisfies pipeline.Provider.
func (c *Catalog) Resolve(id string, previewScale float64, spec printspec.OutputSpec) (region.Region, string, error) {
	r, err := c.RegionFor(id, previewScale, spec)
	if err != nil {
		return nil, "", err
	}
	name, err := c.Filename(id, spec)
	if err != nil {
		return nil, "", err
	}
	return r, name, nil
}
