package imaging

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"image"
	"image/color"
)

// Fingerprint is a digest over an image's canonical pixel bytes, used purely
// for equality comparison between clipboard reads. It is not security
// sensitive; the negligible collision risk is accepted for this use.
type Fingerprint [sha256.Size]byte

// IsZero reports whether the fingerprint is unset.
func (f Fingerprint) IsZero() bool {
	return f == Fingerprint{}
}

// String returns the full hex encoding of the digest.
func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:])
}

// Short returns the first eight hex characters, for compact log output.
func (f Fingerprint) Short() string {
	return hex.EncodeToString(f[:4])
}

// FingerprintOf computes the fingerprint of an image over its canonical
// opaque form, so two in-memory representations that differ only in pixel
// layout or alpha encoding fingerprint identically when their color
// channels match. The digest covers width and height followed by row-major
// RGB triplets; geometry is included so equal pixel streams of different
// shapes cannot collide.
func FingerprintOf(m image.Image) Fingerprint {
	flat := Flatten(m)
	b := flat.Bounds()

	h := sha256.New()
	var dims [8]byte
	binary.LittleEndian.PutUint32(dims[0:4], uint32(b.Dx()))
	binary.LittleEndian.PutUint32(dims[4:8], uint32(b.Dy()))
	h.Write(dims[:])

	row := make([]byte, 3*b.Dx())
	for y := 0; y < b.Dy(); y++ {
		i := 0
		o := flat.PixOffset(0, y)
		for x := 0; x < b.Dx(); x++ {
			row[i] = flat.Pix[o]
			row[i+1] = flat.Pix[o+1]
			row[i+2] = flat.Pix[o+2]
			i += 3
			o += 4
		}
		h.Write(row)
	}

	var fp Fingerprint
	h.Sum(fp[:0])
	return fp
}

// Flatten converts an image to its canonical opaque form: an *image.RGBA
// with zero-origin bounds, every alpha byte forced to full opacity and
// color channels taken from the non-premultiplied representation. The alpha
// channel is dropped, not composited; transparent regions keep whatever
// color values they carried.
func Flatten(m image.Image) *image.RGBA {
	b := m.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))

	for y := 0; y < b.Dy(); y++ {
		o := out.PixOffset(0, y)
		for x := 0; x < b.Dx(); x++ {
			px := color.NRGBAModel.Convert(m.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			out.Pix[o] = px.R
			out.Pix[o+1] = px.G
			out.Pix[o+2] = px.B
			out.Pix[o+3] = 0xFF
			o += 4
		}
	}
	return out
}
