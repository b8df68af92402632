package ports

import (
	"context"
	"image"

	"github.com/bft-labs/cliptrim/internal/domain"
)

// Clipboard provides access to the operating system clipboard.
// The clipboard is a process-wide exclusive resource: implementations must
// serialize access internally so that a read never overlaps a write from
// this process, and must release the platform handle even on failure.
type Clipboard interface {
	// Read returns a snapshot of the current clipboard contents.
	// The snapshot distinguishes raster images, non-empty text, a cleared
	// clipboard (empty or empty text) and unsupported formats.
	// Returns domain.ErrClipboardBusy when another process holds the
	// clipboard open; the caller should retry on its next poll tick.
	Read(ctx context.Context) (domain.Snapshot, error)

	// WriteImage replaces the clipboard contents with the given image,
	// encoded in the platform's native bitmap transfer format.
	// The write is all-or-nothing: on error the previous clipboard
	// contents are left in place.
	WriteImage(ctx context.Context, img image.Image) error

	// Close releases any resources held by the clipboard backend.
	Close() error
}
