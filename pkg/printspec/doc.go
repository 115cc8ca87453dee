// Package printspec describes print artifacts: physical size, resolution,
// bleed and file name.
//
// # Pixel Dimensions
//
// An [OutputSpec] maps to device pixels with
//
//	round(width_mm / 25.4 * dpi) x round(height_mm / 25.4 * dpi)
//
// and nothing else. How large a region happens to be on screen never
// enters the calculation, which is what lets the export engine promise
// exact dimensions.
//
//	spec := printspec.OutputSpec{WidthMM: 336, HeightMM: 96, DPI: 300}
//	w, h := spec.Pixels() // 3969, 1134
//
// # Size Expressions
//
// [Parse] reads the compact form used by presets and the CLI:
//
//	91.4x91.4mm@300dpi        Instagram post print
//	96x336mm@300dpi+3mm       sleeve with 3 mm bleed
//	3.6 x 3.6 in @ 600        inches, dpi keyword optional
//
// The width and height always include the bleed. [OutputSpec.TrimMM] is the
// size left after the press cuts the bleed away.
//
// # File Names
//
// [Filename] and [SlideFilename] produce the descriptive names the
// artifacts are delivered under. [Slug] strips diacritics so that
// "vs Rúcula" becomes "vs-rucula".
package printspec
