package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/microprint/pkg/errors"
	"github.com/matzehuels/microprint/pkg/fonts"
	"github.com/matzehuels/microprint/pkg/printspec"
)

func TestDefaultPresets(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}
	tests := []struct {
		panel  string
		preset string
		w, h   int
	}{
		{"slide-1", "post", 1080, 1080},
		{"slide-7", "post", 1080, 1080},
		{"sleeve", "sleeve", 1134, 3969},
		{"sleeve/art", "panel-art", 1063, 1535},
		{"sleeve/side", "panel-side", 1063, 413},
	}
	for _, tt := range tests {
		spec, name, err := cfg.SpecFor(tt.panel)
		if err != nil {
			t.Fatalf("SpecFor(%q): %v", tt.panel, err)
		}
		if name != tt.preset {
			t.Errorf("SpecFor(%q) preset = %q, want %q", tt.panel, name, tt.preset)
		}
		if w, h := spec.Pixels(); w != tt.w || h != tt.h {
			t.Errorf("SpecFor(%q) = %dx%d px, want %dx%d", tt.panel, w, h, tt.w, tt.h)
		}
	}
	if _, _, err := cfg.SpecFor("poster"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("SpecFor(poster) = %v, want NOT_FOUND", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OutputDir != "out" || len(cfg.Presets) != len(DefaultPresets) {
		t.Errorf("Load(missing) = %+v, want defaults", cfg)
	}
}

func TestLoad(t *testing.T) {
	p := filepath.Join(t.TempDir(), FileName)
	data := `
output_dir = "prints"
background = "#f5f0e1"
fit = "height"

[fonts]
display = "/fonts/Display.ttf"

[[preset]]
name = "post"
size = "3.6x3.6in@600"
panels = "slide-*"

[[preset]]
name = "story"
size = "90x160mm"
panels = "slide-1"
`
	if err := os.WriteFile(p, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(p)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OutputDir != "prints" {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
	if len(cfg.Presets) != len(DefaultPresets)+1 {
		t.Errorf("got %d presets, want %d", len(cfg.Presets), len(DefaultPresets)+1)
	}

	spec, err := cfg.Spec("post")
	if err != nil {
		t.Fatal(err)
	}
	if w, h := spec.Pixels(); w != 2160 || h != 2160 {
		t.Errorf("post = %dx%d, want 2160x2160", w, h)
	}
	if want := (color.NRGBA{R: 0xf5, G: 0xf0, B: 0xe1, A: 0xff}); spec.Background != want {
		t.Errorf("Background = %v, want %v", spec.Background, want)
	}
	if spec.Axis != printspec.AxisHeight {
		t.Errorf("Axis = %v, want height", spec.Axis)
	}

	paths := cfg.FontPaths()
	if len(paths) != 1 || paths[fonts.Display] != "/fonts/Display.ttf" {
		t.Errorf("FontPaths = %v", paths)
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", `output_dir = `},
		{"unknown key", `colour = "red"`},
		{"bad background", `background = "green"`},
		{"bad fit", `fit = "diagonal"`},
		{"bad preset size", "[[preset]]\nname = \"x\"\nsize = \"big\"\npanels = \"*\""},
		{"unnamed preset", "[[preset]]\nsize = \"10x10mm\"\npanels = \"*\""},
		{"bad glob", "[[preset]]\nname = \"x\"\nsize = \"10x10mm\"\npanels = \"[\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Parse(%q) = %v, want INVALID_CONFIG", tt.data, err)
			}
		})
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
		ok   bool
	}{
		{"#ffffff", color.NRGBA{255, 255, 255, 255}, true},
		{"#123", color.NRGBA{0x11, 0x22, 0x33, 255}, true},
		{"0a1b2c", color.NRGBA{0x0a, 0x1b, 0x2c, 255}, true},
		{"#12", color.NRGBA{}, false},
		{"#gggggg", color.NRGBA{}, false},
	}
	for _, tt := range tests {
		got, err := ParseHex(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("ParseHex(%q) error = %v, want ok=%v", tt.in, err, tt.ok)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseHex(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSpecFromSize(t *testing.T) {
	cfg := Default()
	spec, err := cfg.SpecFromSize("50x50mm@150")
	if err != nil {
		t.Fatal(err)
	}
	if spec.BackgroundColor() != printspec.White {
		t.Errorf("background = %v", spec.BackgroundColor())
	}
	if _, err := cfg.SpecFromSize("50mm"); !errors.Is(err, errors.ErrCodeInvalidSpec) {
		t.Errorf("SpecFromSize(50mm) = %v, want INVALID_SPEC", err)
	}
}
