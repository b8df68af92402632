package imaging

import (
	"image"
	"image/color"
)

// BackgroundColor samples the background reference color from the top-left
// pixel of the image. Border detection deliberately trusts this single
// corner sample: images whose border color varies per row are classified
// against the top-left color only.
func BackgroundColor(m image.Image) color.NRGBA {
	min := m.Bounds().Min
	return color.NRGBAModel.Convert(m.At(min.X, min.Y)).(color.NRGBA)
}

// FindContentBox returns the minimal rectangle enclosing every pixel whose
// color differs from the background by more than tolerance (0-255). The
// rectangle is right- and bottom-exclusive in the image's own coordinate
// space. The second return is false when no such pixel exists, i.e. the
// image is uniformly the background color within tolerance; callers must
// treat that as "no content, pass the image through unchanged".
func FindContentBox(m image.Image, background color.NRGBA, tolerance int) (image.Rectangle, bool) {
	b := m.Bounds()
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X, b.Min.Y
	found := false

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if lumaDistance(m.At(x, y), background) <= tolerance {
				continue
			}
			if x < minX {
				minX = x
			}
			if x >= maxX {
				maxX = x + 1
			}
			if y < minY {
				minY = y
			}
			if y >= maxY {
				maxY = y + 1
			}
			found = true
		}
	}

	if !found {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX, maxY), true
}

// lumaDistance reduces the per-channel difference between a pixel and the
// background color to a single luminance scalar using ITU-R 601 integer
// weights. Semi-transparent pixels are composited over the background first
// so the comparison sees the colors a viewer would; a fully transparent
// pixel is therefore never foreground.
func lumaDistance(c color.Color, background color.NRGBA) int {
	px := color.NRGBAModel.Convert(c).(color.NRGBA)
	r, g, b := composite(px, background)
	dr := absDiff(r, background.R)
	dg := absDiff(g, background.G)
	db := absDiff(b, background.B)
	return (299*dr + 587*dg + 114*db) / 1000
}

// composite alpha-blends px over an opaque backdrop of the background color.
// NormalizeBorder repaints content through this same blend, so a pixel is
// always stored at the value it was classified by.
func composite(px, background color.NRGBA) (uint8, uint8, uint8) {
	switch px.A {
	case 0xFF:
		return px.R, px.G, px.B
	case 0x00:
		return background.R, background.G, background.B
	}
	a := uint32(px.A)
	na := 0xFF - a
	r := uint8((uint32(px.R)*a + uint32(background.R)*na + 0x7F) / 0xFF)
	g := uint8((uint32(px.G)*a + uint32(background.G)*na + 0x7F) / 0xFF)
	b := uint8((uint32(px.B)*a + uint32(background.B)*na + 0x7F) / 0xFF)
	return r, g, b
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
