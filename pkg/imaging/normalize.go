package imaging

import (
	"image"
	"image/color"
	"image/draw"
)

// NormalizeBorder re-crops and re-pads an image so that exactly padding
// pixels of background surround the detected content on every side. Images
// with excess border are trimmed, images with too little border are
// extended; the result carries a canonical border width regardless of what
// the input had.
//
// The background color is sampled from the image's top-left pixel. When no
// content is found (the image is a single uniform color within tolerance)
// the input is returned as-is. The input is never mutated; a processed
// result is a freshly allocated opaque image of size
// (content width + 2*padding) x (content height + 2*padding) with the
// content composited at offset (padding, padding), respecting per-pixel
// transparency.
func NormalizeBorder(m image.Image, padding, tolerance int) image.Image {
	if padding < 0 {
		padding = 0
	}

	background := BackgroundColor(m)
	box, ok := FindContentBox(m, background, tolerance)
	if !ok {
		return m
	}

	content := box.Size()
	canvas := image.NewRGBA(image.Rect(0, 0, content.X+2*padding, content.Y+2*padding))
	fill := color.RGBA{R: background.R, G: background.G, B: background.B, A: 0xFF}
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(fill), image.Point{}, draw.Src)

	// Content pixels are repainted through the same composite FindContentBox
	// classified them with, so each is stored at exactly the value its
	// foreground test saw and a second pass reclassifies it identically.
	for y := 0; y < content.Y; y++ {
		o := canvas.PixOffset(padding, padding+y)
		for x := 0; x < content.X; x++ {
			px := color.NRGBAModel.Convert(m.At(box.Min.X+x, box.Min.Y+y)).(color.NRGBA)
			r, g, b := composite(px, background)
			canvas.Pix[o] = r
			canvas.Pix[o+1] = g
			canvas.Pix[o+2] = b
			canvas.Pix[o+3] = 0xFF
			o += 4
		}
	}

	return canvas
}
