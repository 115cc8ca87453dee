// Package export turns on-screen regions into print-accurate PNG files.
//
// # Algorithm
//
// [Engine.ExportRegion] runs one export end to end:
//
//  1. Wait for the font readiness barrier.
//  2. Measure the region in device pixels at its current on-screen scale.
//  3. Compute the target size round(mm / 25.4 * dpi) for both axes.
//  4. Derive a capture scale along the authoritative axis so the capture
//     lands on the target resolution.
//  5. Capture the region at that scale over an opaque background.
//  6. Resample the capture onto a buffer of exactly the target size.
//  7. Encode the buffer as PNG with a pHYs chunk carrying the DPI.
//
// The on-screen scale only affects the intermediate capture. Step 6 always
// normalizes to the target, so output dimensions depend on the
// [printspec.OutputSpec] alone.
//
// # Errors
//
// Every failure carries one of four codes from pkg/errors:
// REGION_UNAVAILABLE, EMPTY_CAPTURE, BACKEND_UNAVAILABLE or UNKNOWN. Panics
// inside a capture are recovered and reported as UNKNOWN.
//
// # Delivery
//
// [Engine.Export] hands the encoded bytes to a [Deliverer]. [FileDeliverer]
// writes through a temporary file and a rename, so a failed export never
// leaves a partial file behind.
//
// The engine keeps no state between calls. Guarding against concurrent
// exports of the same region is up to the caller.
package export
