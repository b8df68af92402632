//go:build !windows

package clipboard

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"sync"

	xclipboard "golang.design/x/clipboard"

	"github.com/bft-labs/cliptrim/internal/domain"
	"github.com/bft-labs/cliptrim/internal/ports"
	"github.com/bft-labs/cliptrim/pkg/imaging"
)

// Clipboard implements ports.Clipboard using golang.design/x/clipboard.
type Clipboard struct {
	mu     sync.Mutex
	logger ports.Logger
}

// New creates a clipboard adapter and connects to the system clipboard.
func New(logger ports.Logger) (*Clipboard, error) {
	if err := xclipboard.Init(); err != nil {
		return nil, fmt.Errorf("init clipboard: %w", err)
	}
	return &Clipboard{logger: logger}, nil
}

// Read returns a snapshot of the current clipboard contents.
func (c *Clipboard) Read(ctx context.Context) (domain.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if data := xclipboard.Read(xclipboard.FmtImage); len(data) > 0 {
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			c.logger.Debug("undecodable clipboard image", ports.Err(err))
			return domain.Snapshot{Kind: domain.ContentUnsupported}, nil
		}
		return domain.ImageSnapshot(img), nil
	}

	if data := xclipboard.Read(xclipboard.FmtText); len(data) > 0 {
		return domain.TextSnapshot(string(data)), nil
	}

	// The library exposes only image and text; anything else reads empty
	// on both and maps to cleared.
	return domain.Snapshot{Kind: domain.ContentCleared}, nil
}

// WriteImage replaces the clipboard contents with the image as PNG.
// Flattening first keeps the read-back pixels identical to what the
// fingerprint saw.
func (c *Clipboard) WriteImage(ctx context.Context, m image.Image) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var buf bytes.Buffer
	if err := png.Encode(&buf, imaging.Flatten(m)); err != nil {
		return fmt.Errorf("encode image: %w", err)
	}
	xclipboard.Write(xclipboard.FmtImage, buf.Bytes())
	return nil
}

// Close releases nothing; the library holds no per-instance resources.
func (c *Clipboard) Close() error {
	return nil
}
