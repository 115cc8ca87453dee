// Package pkg holds the libraries behind the microprint CLI.
//
// # Overview
//
// Microprint turns brand artwork into PNGs whose pixel size follows from
// physical millimetres and DPI alone, whatever size the artwork happens to
// be shown at. The packages fall into four groups:
//
//  1. Specs: [printspec] (sizes, presets, file names) and [config]
//  2. Regions: [region] and the artwork in [scene], [content] and [fonts]
//  3. Export: [export] (engine, resampling, PNG, delivery) and [pipeline]
//     (batches and the busy guard)
//  4. Capture backends: [browser] for DOM elements in headless Chrome
//
// # Data Flow
//
//	OutputSpec ──┐
//	             ▼
//	Region ─► Bounds ─► capture scale ─► Capture ─► Resample ─► PNG (pHYs) ─► Deliverer
//	             ▲
//	FontGate.Ready
//
// # Quick Start
//
//	reg := fonts.Default()
//	cat := scene.NewCatalog(reg)
//	spec := printspec.MustParse("91.4x91.4mm@300dpi")
//
//	r, name, _ := cat.Resolve("slide-1", 1, spec)
//	eng := export.NewEngine(export.WithFontGate(reg))
//	art, err := eng.Export(ctx, r, spec.WithFilename(name), export.NewFileDeliverer("out"))
//	// art.Width, art.Height == 1080, 1080
//
// Errors carry a [errors.Code]; engine failures are one of
// REGION_UNAVAILABLE, EMPTY_CAPTURE, BACKEND_UNAVAILABLE or UNKNOWN.
package pkg
