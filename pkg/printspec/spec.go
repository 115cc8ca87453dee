package printspec

import (
	"fmt"
	"image/color"
	"math"
	"strconv"

	"github.com/matzehuels/microprint/pkg/errors"
)

// MMPerInch converts between physical units and DPI.
const MMPerInch = 25.4

// DefaultDPI is used when a size expression omits the resolution.
const DefaultDPI = 300.0

// Axis selects which output dimension drives the capture scale.
type Axis int

const (
	// AxisAuto picks the longer side of the region.
	AxisAuto Axis = iota
	AxisWidth
	AxisHeight
)

// String returns the config spelling of the axis.
func (a Axis) String() string {
	switch a {
	case AxisWidth:
		return "width"
	case AxisHeight:
		return "height"
	default:
		return "auto"
	}
}

// ParseAxis parses "auto", "width" or "height".
func ParseAxis(s string) (Axis, error) {
	switch s {
	case "", "auto":
		return AxisAuto, nil
	case "width", "w":
		return AxisWidth, nil
	case "height", "h":
		return AxisHeight, nil
	}
	return AxisAuto, errors.New(errors.ErrCodeInvalidSpec, "invalid axis: %q (must be one of: auto, width, height)", s)
}

// White is the default artifact background.
var White = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

// OutputSpec describes one requested artifact. It is a value type: the
// With* helpers return modified copies.
type OutputSpec struct {
	// WidthMM and HeightMM are the full artifact size, bleed included.
	WidthMM  float64 `json:"width_mm" toml:"width_mm"`
	HeightMM float64 `json:"height_mm" toml:"height_mm"`

	DPI float64 `json:"dpi" toml:"dpi"`

	// BleedMM is the symmetric margin inside WidthMM/HeightMM that lies
	// outside the trim line. Only layout providers read it.
	BleedMM float64 `json:"bleed_mm,omitempty" toml:"bleed_mm"`

	Filename string `json:"filename,omitempty" toml:"filename"`

	// Background fills the capture and the final buffer. The zero value
	// means White; alpha is always forced to opaque.
	Background color.NRGBA `json:"-" toml:"-"`

	Axis Axis `json:"-" toml:"-"`
}

// Validate checks the physical parameters and, if set, the file name.
func (s OutputSpec) Validate() error {
	if !(s.WidthMM > 0) || math.IsInf(s.WidthMM, 0) {
		return errors.New(errors.ErrCodeInvalidSpec, "width must be positive, got %vmm", s.WidthMM)
	}
	if !(s.HeightMM > 0) || math.IsInf(s.HeightMM, 0) {
		return errors.New(errors.ErrCodeInvalidSpec, "height must be positive, got %vmm", s.HeightMM)
	}
	if !(s.DPI > 0) || math.IsInf(s.DPI, 0) {
		return errors.New(errors.ErrCodeInvalidSpec, "dpi must be positive, got %v", s.DPI)
	}
	if s.BleedMM < 0 || math.IsNaN(s.BleedMM) {
		return errors.New(errors.ErrCodeInvalidSpec, "bleed cannot be negative, got %vmm", s.BleedMM)
	}
	if 2*s.BleedMM >= s.WidthMM || 2*s.BleedMM >= s.HeightMM {
		return errors.New(errors.ErrCodeInvalidSpec, "bleed %vmm leaves no trim area in %s", s.BleedMM, s.Size())
	}
	if w, h := s.Pixels(); w < 1 || h < 1 {
		return errors.New(errors.ErrCodeInvalidSpec, "%s rounds to %dx%d px", s, w, h)
	}
	if s.Filename != "" {
		if err := errors.ValidateFilename(s.Filename); err != nil {
			return err
		}
	}
	return nil
}

// Pixels returns the exact artifact dimensions in device pixels.
// The result depends on the spec alone.
func (s OutputSpec) Pixels() (w, h int) {
	return PixelsFor(s.WidthMM, s.DPI), PixelsFor(s.HeightMM, s.DPI)
}

// PixelsFor converts a physical length to pixels at dpi, rounding to nearest.
func PixelsFor(mm, dpi float64) int {
	return int(math.Round(mm / MMPerInch * dpi))
}

// TrimMM returns the size inside the bleed.
func (s OutputSpec) TrimMM() (w, h float64) {
	return s.WidthMM - 2*s.BleedMM, s.HeightMM - 2*s.BleedMM
}

// BackgroundColor returns the opaque fill color for this spec.
func (s OutputSpec) BackgroundColor() color.NRGBA {
	if s.Background == (color.NRGBA{}) {
		return White
	}
	bg := s.Background
	bg.A = 0xff
	return bg
}

// AuthoritativeAxis resolves AxisAuto against a measured region size.
func (s OutputSpec) AuthoritativeAxis(regionW, regionH float64) Axis {
	if s.Axis != AxisAuto {
		return s.Axis
	}
	if regionH > regionW {
		return AxisHeight
	}
	return AxisWidth
}

// WithFilename returns a copy of s with the given file name.
func (s OutputSpec) WithFilename(name string) OutputSpec {
	s.Filename = name
	return s
}

// WithBackground returns a copy of s with the given background.
func (s OutputSpec) WithBackground(c color.NRGBA) OutputSpec {
	s.Background = c
	return s
}

// WithAxis returns a copy of s with the given authoritative axis.
func (s OutputSpec) WithAxis(a Axis) OutputSpec {
	s.Axis = a
	return s
}

// Size formats the physical size, e.g. "91.4x91.4mm".
func (s OutputSpec) Size() string {
	return fmt.Sprintf("%sx%smm", formatFloat(s.WidthMM), formatFloat(s.HeightMM))
}

// String formats the spec in the size expression syntax accepted by Parse.
func (s OutputSpec) String() string {
	out := fmt.Sprintf("%s@%sdpi", s.Size(), formatFloat(s.DPI))
	if s.BleedMM > 0 {
		out += fmt.Sprintf("+%smm", formatFloat(s.BleedMM))
	}
	return out
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
