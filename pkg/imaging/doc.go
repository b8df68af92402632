// Package imaging implements the pixel analysis at the heart of cliptrim:
// content-bound detection, border normalization and change-detection
// fingerprints.
//
// All functions are pure: inputs are never mutated and every transform
// returns a fresh image, so callers can freely share image values across
// goroutine boundaries.
//
// # Border Normalization
//
// [NormalizeBorder] finds the foreground content of an image, measured
// against the background color sampled at the top-left pixel, and repaints
// it onto a fresh canvas with a fixed border width:
//
//	out := imaging.NormalizeBorder(img, 10, 30)
//
// A uniform image has no content and passes through unchanged. The
// operation is idempotent: normalizing an already normalized image
// reproduces it pixel for pixel.
//
// # Change Detection
//
// [FingerprintOf] digests the canonical opaque pixels of an image.
// Fingerprints are cheap to compare and stable across in-memory encodings,
// which lets the monitor loop skip clipboard images it has already
// processed:
//
//	if imaging.FingerprintOf(img) == last {
//	    return // already seen
//	}
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package imaging
