package printspec

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/matzehuels/microprint/pkg/errors"
)

var (
	sizeLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t]+`},
		{Name: "Number", Pattern: `\d+(?:\.\d+)?|\.\d+`},
		{Name: "Ident", Pattern: `[A-Za-z]+`},
		{Name: "Symbol", Pattern: `[@+×*]`},
	})

	sizeParser = participle.MustBuild[sizeExpr](
		participle.Lexer(sizeLexer),
		participle.Elide("Whitespace"),
		participle.CaseInsensitive("Ident"),
	)
)

// sizeExpr is the grammar of a size expression:
//
//	91.4x91.4mm
//	96 x 336 mm @ 300 dpi + 3 mm bleed
//	3.6x3.6in@600
type sizeExpr struct {
	Width  float64    `parser:"@Number"`
	Height float64    `parser:"('x' | '×' | '*') @Number"`
	Unit   string     `parser:"@('mm' | 'cm' | 'in')?"`
	DPI    *float64   `parser:"( '@' @Number 'dpi'? )?"`
	Bleed  *bleedExpr `parser:"( '+' @@ )?"`
}

type bleedExpr struct {
	Value float64 `parser:"@Number"`
	Unit  string  `parser:"@('mm' | 'cm' | 'in')? 'bleed'?"`
}

// Parse parses a size expression into an OutputSpec.
// The unit defaults to millimetres and the resolution to DefaultDPI. A
// bleed without a unit uses the size's unit.
func Parse(expr string) (OutputSpec, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return OutputSpec{}, errors.New(errors.ErrCodeInvalidSpec, "size expression cannot be empty")
	}

	parsed, err := sizeParser.ParseString("", expr)
	if err != nil {
		return OutputSpec{}, errors.Wrap(errors.ErrCodeInvalidSpec, err, "parse size %q", expr)
	}

	unit := strings.ToLower(parsed.Unit)
	spec := OutputSpec{
		WidthMM:  toMM(parsed.Width, unit),
		HeightMM: toMM(parsed.Height, unit),
		DPI:      DefaultDPI,
	}
	if parsed.DPI != nil {
		spec.DPI = *parsed.DPI
	}
	if parsed.Bleed != nil {
		bleedUnit := strings.ToLower(parsed.Bleed.Unit)
		if bleedUnit == "" {
			bleedUnit = unit
		}
		spec.BleedMM = toMM(parsed.Bleed.Value, bleedUnit)
	}

	if err := spec.Validate(); err != nil {
		return OutputSpec{}, err
	}
	return spec, nil
}

// MustParse is like Parse but panics on error. It is meant for built-in presets.
func MustParse(expr string) OutputSpec {
	spec, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return spec
}

func toMM(v float64, unit string) float64 {
	switch unit {
	case "cm":
		return v * 10
	case "in":
		return v * MMPerInch
	default:
		return v
	}
}
