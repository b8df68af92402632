package domain

import "image"

// ContentKind classifies what the clipboard held at the moment of a read.
type ContentKind int

const (
	// ContentImage means the clipboard holds a decodable raster image.
	ContentImage ContentKind = iota

	// ContentText means the clipboard holds non-empty text.
	ContentText

	// ContentCleared means the clipboard is empty or holds empty text.
	// Both signal that the clipboard was cleared since the last read.
	ContentCleared

	// ContentUnsupported means the clipboard holds a format this system
	// does not consume (file lists, audio, vendor-specific formats).
	ContentUnsupported
)

// String returns a human-readable representation of the content kind.
func (k ContentKind) String() string {
	switch k {
	case ContentImage:
		return "image"
	case ContentText:
		return "text"
	case ContentCleared:
		return "cleared"
	case ContentUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// Snapshot is a point-in-time view of the clipboard contents.
// Kind selects which payload field is meaningful: Image for ContentImage,
// Text for ContentText, neither for ContentCleared and ContentUnsupported.
type Snapshot struct {
	Kind  ContentKind
	Image image.Image
	Text  string
}

// ImageSnapshot wraps a decoded raster image.
func ImageSnapshot(img image.Image) Snapshot {
	return Snapshot{Kind: ContentImage, Image: img}
}

// TextSnapshot wraps clipboard text. Empty text is classified as a cleared
// clipboard, which callers use to reset their change-detection baseline.
func TextSnapshot(text string) Snapshot {
	if text == "" {
		return Snapshot{Kind: ContentCleared}
	}
	return Snapshot{Kind: ContentText, Text: text}
}
