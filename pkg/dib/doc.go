// Package dib converts images to and from the headerless device-independent
// bitmap payload that the Windows clipboard exchanges under CF_DIB.
//
// The payload is a standard BMP file with the 14-byte file header removed:
// a BITMAPINFOHEADER, optional channel masks and palette, then the pixel
// array. [Encode] always produces an uncompressed bottom-up 24-bit payload
// from the image's canonical opaque form; [Decode] additionally accepts the
// 32-bit variants that screenshot tools and browsers place on the
// clipboard.
//
// # Usage
//
//	payload, err := dib.Encode(img)   // for SetClipboardData(CF_DIB, ...)
//	img, err := dib.Decode(payload)   // from GetClipboardData(CF_DIB)
//
// Errors are classified as [ErrInvalidPayload] for truncated or malformed
// data and [ErrUnsupportedFormat] for valid bitmap variants outside the
// codec's scope.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package dib
