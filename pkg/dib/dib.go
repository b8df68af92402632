package dib

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/bmp"

	"github.com/bft-labs/cliptrim/pkg/imaging"
)

// Codec errors, comparable with errors.Is.
var (
	// ErrInvalidPayload means the payload is truncated or structurally broken.
	ErrInvalidPayload = errors.New("dib: invalid payload")

	// ErrUnsupportedFormat means the payload is a valid bitmap variant this
	// codec does not handle (palettized, RLE-compressed, exotic masks).
	ErrUnsupportedFormat = errors.New("dib: unsupported format")
)

const (
	// fileHeaderSize is the length of the BITMAPFILEHEADER that a .bmp file
	// carries in front of the payload and the clipboard omits.
	fileHeaderSize = 14

	// infoHeaderSize is the length of the core BITMAPINFOHEADER.
	infoHeaderSize = 40

	compressionRGB       = 0
	compressionBitfields = 3
)

// Standard little-endian channel masks for 32-bit BGRA/BGRX pixel data.
const (
	maskRed   = 0x00FF0000
	maskGreen = 0x0000FF00
	maskBlue  = 0x000000FF
)

// Encode serializes an image into the clipboard's device-independent bitmap
// payload: the BMP encoding of the image with the leading file header
// stripped, leaving the info header and pixel array. The image is flattened
// to its canonical opaque form first, so the payload is always an
// uncompressed bottom-up 24-bit bitmap.
func Encode(m image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, imaging.Flatten(m)); err != nil {
		return nil, fmt.Errorf("dib: encode: %w", err)
	}
	return buf.Bytes()[fileHeaderSize:], nil
}

// Decode parses a headerless device-independent bitmap payload: a
// BITMAPINFOHEADER (or one of its extended versions) followed by optional
// channel masks, optional palette and the pixel array.
//
// 24-bit and 32-bit uncompressed images are supported, bottom-up or
// top-down. 32-bit BI_BITFIELDS data is accepted when the masks are the
// standard BGRA layout. The fourth byte of a 32-bit pixel is reserved
// padding, not alpha; screenshot producers routinely leave it zero, so the
// decoded image is always fully opaque.
func Decode(payload []byte) (image.Image, error) {
	if len(payload) < infoHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidPayload, len(payload))
	}

	headerSize := int(binary.LittleEndian.Uint32(payload[0:4]))
	if headerSize < infoHeaderSize || headerSize > len(payload) {
		return nil, fmt.Errorf("%w: header size %d", ErrInvalidPayload, headerSize)
	}

	width := int(int32(binary.LittleEndian.Uint32(payload[4:8])))
	height := int(int32(binary.LittleEndian.Uint32(payload[8:12])))
	planes := binary.LittleEndian.Uint16(payload[12:14])
	bpp := binary.LittleEndian.Uint16(payload[14:16])
	compression := binary.LittleEndian.Uint32(payload[16:20])
	clrUsed := int(binary.LittleEndian.Uint32(payload[32:36]))

	topDown := false
	if height < 0 {
		topDown = true
		height = -height
	}
	if width <= 0 || height == 0 || planes != 1 {
		return nil, fmt.Errorf("%w: %dx%d, %d planes", ErrInvalidPayload, width, height, planes)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("%w: %d bits per pixel", ErrUnsupportedFormat, bpp)
	}

	offset := headerSize
	switch compression {
	case compressionRGB:
	case compressionBitfields:
		if bpp != 32 {
			return nil, fmt.Errorf("%w: bitfields with %d bpp", ErrUnsupportedFormat, bpp)
		}
		// A core info header is followed by three mask dwords; extended
		// headers carry the masks at the same position inside the header.
		if len(payload) < infoHeaderSize+12 {
			return nil, fmt.Errorf("%w: truncated channel masks", ErrInvalidPayload)
		}
		masks := payload[infoHeaderSize : infoHeaderSize+12]
		if headerSize == infoHeaderSize {
			offset += 12
		}
		r := binary.LittleEndian.Uint32(masks[0:4])
		g := binary.LittleEndian.Uint32(masks[4:8])
		b := binary.LittleEndian.Uint32(masks[8:12])
		if r != maskRed || g != maskGreen || b != maskBlue {
			return nil, fmt.Errorf("%w: channel masks %08x/%08x/%08x", ErrUnsupportedFormat, r, g, b)
		}
	default:
		return nil, fmt.Errorf("%w: compression %d", ErrUnsupportedFormat, compression)
	}
	offset += clrUsed * 4

	pixelBytes := int(bpp) / 8
	stride := (width*pixelBytes + 3) &^ 3
	if offset < 0 || offset > len(payload) || stride <= 0 || height > (len(payload)-offset)/stride {
		return nil, fmt.Errorf("%w: pixel array truncated (%d byte payload)", ErrInvalidPayload, len(payload))
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		srcY := y
		if !topDown {
			srcY = height - 1 - y
		}
		row := payload[offset+srcY*stride:]
		for x := 0; x < width; x++ {
			i := x * pixelBytes
			img.SetNRGBA(x, y, color.NRGBA{
				R: row[i+2],
				G: row[i+1],
				B: row[i],
				A: 0xFF,
			})
		}
	}
	return img, nil
}
