package printspec

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Filename builds the descriptive artifact name used for print exports:
//
//	sleeve-girassol-96x336mm-300dpi.png
func Filename(kind, product string, s OutputSpec) string {
	parts := []string{Slug(kind)}
	if p := Slug(product); p != "" {
		parts = append(parts, p)
	}
	parts = append(parts, s.Size(), fmt.Sprintf("%sdpi", formatFloat(s.DPI)))
	return strings.Join(parts, "-") + ".png"
}

// SlideFilename builds the carousel slide name, e.g. "slide-3-vs-rucula.png".
// n is 1-based.
func SlideFilename(n int, title string) string {
	if slug := Slug(title); slug != "" {
		return fmt.Sprintf("slide-%d-%s.png", n, slug)
	}
	return fmt.Sprintf("slide-%d.png", n)
}

// Slug lowercases s, strips diacritics and joins words with dashes.
// Anything that is not a letter or digit separates words.
func Slug(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plain, _, err := transform.String(t, s)
	if err != nil {
		plain = s
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(plain) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
