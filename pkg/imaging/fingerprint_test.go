package imaging

import (
	"image"
	"image/color"
	"testing"
)

func TestFingerprintOf_Reflexive(t *testing.T) {
	m := uniformNRGBA(12, 8, white)
	fillRect(m, image.Rect(3, 2, 7, 5), red)

	a := FingerprintOf(m)
	b := FingerprintOf(m)
	if a != b {
		t.Errorf("FingerprintOf() = %v and %v for the same image", a, b)
	}
	if a.IsZero() {
		t.Error("fingerprint of a real image reported IsZero")
	}
}

func TestFingerprintOf_DistinctPixels(t *testing.T) {
	a := uniformNRGBA(10, 10, white)
	b := uniformNRGBA(10, 10, white)
	b.SetNRGBA(9, 9, color.NRGBA{R: 254, G: 255, B: 255, A: 0xFF})

	if FingerprintOf(a) == FingerprintOf(b) {
		t.Error("one-channel pixel difference produced equal fingerprints")
	}
}

// The same visible pixels must fingerprint identically regardless of the
// in-memory representation: straight vs premultiplied alpha, grayscale, or
// shifted sub-image bounds.
func TestFingerprintOf_EncodingInvariant(t *testing.T) {
	base := uniformNRGBA(9, 7, color.NRGBA{R: 180, G: 180, B: 180, A: 0xFF})
	fillRect(base, image.Rect(2, 2, 6, 5), black)
	want := FingerprintOf(base)

	t.Run("premultiplied RGBA", func(t *testing.T) {
		rgba := image.NewRGBA(base.Bounds())
		for y := 0; y < 7; y++ {
			for x := 0; x < 9; x++ {
				rgba.Set(x, y, base.NRGBAAt(x, y))
			}
		}
		if got := FingerprintOf(rgba); got != want {
			t.Errorf("FingerprintOf(RGBA) = %v, want %v", got, want)
		}
	})

	t.Run("shifted bounds", func(t *testing.T) {
		shifted := image.NewNRGBA(image.Rect(100, 50, 109, 57))
		for y := 0; y < 7; y++ {
			for x := 0; x < 9; x++ {
				shifted.SetNRGBA(100+x, 50+y, base.NRGBAAt(x, y))
			}
		}
		if got := FingerprintOf(shifted); got != want {
			t.Errorf("FingerprintOf(shifted) = %v, want %v", got, want)
		}
	})

	t.Run("grayscale", func(t *testing.T) {
		gray := image.NewGray(base.Bounds())
		for y := 0; y < 7; y++ {
			for x := 0; x < 9; x++ {
				if base.NRGBAAt(x, y) == black {
					gray.SetGray(x, y, color.Gray{Y: 0})
				} else {
					gray.SetGray(x, y, color.Gray{Y: 180})
				}
			}
		}
		if got := FingerprintOf(gray); got != want {
			t.Errorf("FingerprintOf(gray) = %v, want %v", got, want)
		}
	})
}

// Equal pixel streams with different geometry must not collide; the digest
// includes width and height ahead of the pixel bytes.
func TestFingerprintOf_DimensionsMatter(t *testing.T) {
	wide := uniformNRGBA(8, 2, red)
	tall := uniformNRGBA(2, 8, red)
	square := uniformNRGBA(4, 4, red)

	if FingerprintOf(wide) == FingerprintOf(tall) {
		t.Error("8x2 and 2x8 images fingerprint equally")
	}
	if FingerprintOf(wide) == FingerprintOf(square) {
		t.Error("8x2 and 4x4 images fingerprint equally")
	}
}

func TestFingerprint_Encoding(t *testing.T) {
	var zero Fingerprint
	if !zero.IsZero() {
		t.Error("zero fingerprint IsZero() = false")
	}
	if len(zero.String()) != 64 {
		t.Errorf("String() length = %d, want 64", len(zero.String()))
	}
	if got := zero.Short(); got != "00000000" {
		t.Errorf("Short() = %q, want %q", got, "00000000")
	}
}

func TestFlatten_DropsAlphaKeepsChannels(t *testing.T) {
	m := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	m.SetNRGBA(0, 0, color.NRGBA{R: 10, G: 20, B: 30, A: 0})
	m.SetNRGBA(1, 0, color.NRGBA{R: 40, G: 50, B: 60, A: 0xFF})

	flat := Flatten(m)

	got0 := flat.RGBAAt(0, 0)
	if got0 != (color.RGBA{R: 10, G: 20, B: 30, A: 0xFF}) {
		t.Errorf("transparent pixel flattened to %v, want channels kept and opaque", got0)
	}
	got1 := flat.RGBAAt(1, 0)
	if got1 != (color.RGBA{R: 40, G: 50, B: 60, A: 0xFF}) {
		t.Errorf("opaque pixel flattened to %v", got1)
	}
}
