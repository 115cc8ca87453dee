// Package config loads microprint.toml.
//
// A missing file is not an error: every key has a default, and the
// built-in presets cover the carousel and the sleeve.
//
//	output_dir = "out"
//	background = "#ffffff"
//	fit = "auto"
//
//	[fonts]
//	display = "/usr/share/fonts/Poppins-Bold.ttf"
//
//	[[preset]]
//	name = "post"
//	size = "91.4x91.4mm@300dpi"
//	panels = "slide-*"
package config

import (
	"image/color"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/microprint/pkg/errors"
	"github.com/matzehuels/microprint/pkg/fonts"
	"github.com/matzehuels/microprint/pkg/printspec"
)

// FileName is the config file name inside the config directory.
const FileName = "microprint.toml"

// Config is the decoded configuration.
type Config struct {
	OutputDir    string   `toml:"output_dir"`
	Background   string   `toml:"background"`
	Fit          string   `toml:"fit"`
	Photo        string   `toml:"photo"`
	PreviewWidth int      `toml:"preview_width"`
	Fonts        Fonts    `toml:"fonts"`
	Presets      []Preset `toml:"preset"`
}

// Fonts maps font roles to TTF files. Empty entries use the embedded fonts.
type Fonts struct {
	Body    string `toml:"body"`
	Display string `toml:"display"`
	Italic  string `toml:"italic"`
}

// Preset names a size expression and the panels it applies to by default.
type Preset struct {
	Name   string `toml:"name"`
	Size   string `toml:"size"`
	Panels string `toml:"panels"`
}

// DefaultPresets are always available. File presets with the same name
// replace them.
var DefaultPresets = []Preset{
	{Name: "post", Size: "91.4x91.4mm@300dpi", Panels: "slide-*"},
	{Name: "sleeve", Size: "96x336mm@300dpi+3mm", Panels: "sleeve"},
	{Name: "panel-art", Size: "90x130mm@300dpi", Panels: "sleeve/art"},
	{Name: "panel-nutrition", Size: "90x130mm@300dpi", Panels: "sleeve/nutrition"},
	{Name: "panel-side", Size: "90x35mm@300dpi", Panels: "sleeve/side"},
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		OutputDir:    "out",
		Background:   "#ffffff",
		Fit:          "auto",
		PreviewWidth: 432,
		Presets:      append([]Preset(nil), DefaultPresets...),
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/microprint/microprint.toml, falling
// back to ~/.config.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "microprint", FileName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "microprint", FileName), nil
}

// Load reads the file at p over the defaults. A missing file yields the
// defaults.
func Load(p string) (*Config, error) {
	cfg := Default()
	if p == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(p)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", p)
	}
	return Parse(data)
}

// Parse decodes TOML data over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	var file Config
	md, err := toml.Decode(string(data), &file)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	cfg.merge(&file)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) merge(f *Config) {
	if f.OutputDir != "" {
		c.OutputDir = f.OutputDir
	}
	if f.Background != "" {
		c.Background = f.Background
	}
	if f.Fit != "" {
		c.Fit = f.Fit
	}
	if f.Photo != "" {
		c.Photo = f.Photo
	}
	if f.PreviewWidth != 0 {
		c.PreviewWidth = f.PreviewWidth
	}
	if f.Fonts.Body != "" {
		c.Fonts.Body = f.Fonts.Body
	}
	if f.Fonts.Display != "" {
		c.Fonts.Display = f.Fonts.Display
	}
	if f.Fonts.Italic != "" {
		c.Fonts.Italic = f.Fonts.Italic
	}
	for _, p := range f.Presets {
		replaced := false
		for i := range c.Presets {
			if c.Presets[i].Name == p.Name {
				c.Presets[i] = p
				replaced = true
				break
			}
		}
		if !replaced {
			c.Presets = append(c.Presets, p)
		}
	}
}

// Validate checks every value that is parsed lazily.
func (c *Config) Validate() error {
	if _, err := c.BackgroundColor(); err != nil {
		return err
	}
	if _, err := printspec.ParseAxis(c.Fit); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "fit")
	}
	if c.PreviewWidth < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "preview_width cannot be negative")
	}
	seen := make(map[string]bool, len(c.Presets))
	for _, p := range c.Presets {
		if p.Name == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "preset without a name")
		}
		if seen[p.Name] {
			return errors.New(errors.ErrCodeInvalidConfig, "duplicate preset %q", p.Name)
		}
		seen[p.Name] = true
		if _, err := printspec.Parse(p.Size); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "preset %q", p.Name)
		}
		if _, err := path.Match(p.Panels, ""); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "preset %q panels", p.Name)
		}
	}
	return nil
}

// Spec returns the output spec of the named preset with the configured
// background and fit applied.
func (c *Config) Spec(name string) (printspec.OutputSpec, error) {
	for _, p := range c.Presets {
		if p.Name == name {
			return c.apply(p.Size)
		}
	}
	return printspec.OutputSpec{}, errors.New(errors.ErrCodeNotFound, "unknown preset %q", name)
}

// SpecFor returns the spec of the first preset whose panel pattern
// matches id, and that preset's name.
func (c *Config) SpecFor(id string) (printspec.OutputSpec, string, error) {
	for _, p := range c.Presets {
		if ok, _ := path.Match(p.Panels, id); ok {
			spec, err := c.apply(p.Size)
			return spec, p.Name, err
		}
	}
	return printspec.OutputSpec{}, "", errors.New(errors.ErrCodeNotFound, "no preset for panel %q", id)
}

// SpecFromSize parses a size expression and applies background and fit.
func (c *Config) SpecFromSize(expr string) (printspec.OutputSpec, error) {
	return c.apply(expr)
}

func (c *Config) apply(expr string) (printspec.OutputSpec, error) {
	spec, err := printspec.Parse(expr)
	if err != nil {
		return printspec.OutputSpec{}, err
	}
	bg, err := c.BackgroundColor()
	if err != nil {
		return printspec.OutputSpec{}, err
	}
	axis, err := printspec.ParseAxis(c.Fit)
	if err != nil {
		return printspec.OutputSpec{}, err
	}
	return spec.WithBackground(bg).WithAxis(axis), nil
}

// BackgroundColor parses the background as #rgb or #rrggbb.
func (c *Config) BackgroundColor() (color.NRGBA, error) {
	return ParseHex(c.Background)
}

// FontPaths returns the configured TTF files by role.
func (c *Config) FontPaths() map[fonts.Role]string {
	paths := make(map[fonts.Role]string)
	for role, p := range map[fonts.Role]string{
		fonts.Body:    c.Fonts.Body,
		fonts.Display: c.Fonts.Display,
		fonts.Italic:  c.Fonts.Italic,
	} {
		if p != "" {
			paths[role] = p
		}
	}
	return paths
}

// ParseHex parses "#rgb" or "#rrggbb" into an opaque color. The leading
// "#" is optional.
func ParseHex(s string) (color.NRGBA, error) {
	h := strings.TrimSpace(s)
	if !strings.HasPrefix(h, "#") {
		h = "#" + h
	}
	if len(h) != 4 && len(h) != 7 {
		return color.NRGBA{}, errors.New(errors.ErrCodeInvalidConfig, "invalid color %q (want #rrggbb)", s)
	}
	c, err := colorful.Hex(h)
	if err != nil {
		return color.NRGBA{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid color %q (want #rrggbb)", s)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}
