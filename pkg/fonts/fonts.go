// Package fonts loads the typefaces used by the slide and sleeve layouts
// and provides the readiness barrier the export engine waits on.
//
// The Go fonts are embedded as defaults so a fresh checkout renders
// without any font files. Configured TTF paths replace them per role.
package fonts

import (
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// Role names the purpose a font is used for.
type Role string

const (
	// Body is used for running text and table cells.
	Body Role = "body"
	// Display is used for titles, numbers and badges.
	Display Role = "display"
	// Italic is used for taglines and footnotes.
	Italic Role = "italic"
)

// Roles lists every role in load order.
var Roles = []Role{Body, Display, Italic}

// Embedded returns the built-in TTF data for a role.
func Embedded(role Role) []byte {
	switch role {
	case Display:
		return gobold.TTF
	case Italic:
		return goitalic.TTF
	default:
		return goregular.TTF
	}
}
