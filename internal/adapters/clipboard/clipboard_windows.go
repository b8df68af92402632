//go:build windows

package clipboard

import (
	"context"
	"fmt"
	"image"
	"runtime"
	"sync"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/bft-labs/cliptrim/internal/domain"
	"github.com/bft-labs/cliptrim/internal/ports"
	"github.com/bft-labs/cliptrim/pkg/dib"
)

const (
	cfUnicodeText = 13
	cfDIB         = 8

	gmemMoveable = 0x0002
)

// Contended opens are retried with doubling delays before the iteration
// gives up and reports the clipboard as busy.
const (
	openAttempts  = 5
	openBaseDelay = time.Millisecond
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procOpenClipboard              = user32.NewProc("OpenClipboard")
	procCloseClipboard             = user32.NewProc("CloseClipboard")
	procEmptyClipboard             = user32.NewProc("EmptyClipboard")
	procCountClipboardFormats      = user32.NewProc("CountClipboardFormats")
	procIsClipboardFormatAvailable = user32.NewProc("IsClipboardFormatAvailable")
	procGetClipboardData           = user32.NewProc("GetClipboardData")
	procSetClipboardData           = user32.NewProc("SetClipboardData")

	procGlobalAlloc  = kernel32.NewProc("GlobalAlloc")
	procGlobalFree   = kernel32.NewProc("GlobalFree")
	procGlobalLock   = kernel32.NewProc("GlobalLock")
	procGlobalUnlock = kernel32.NewProc("GlobalUnlock")
	procGlobalSize   = kernel32.NewProc("GlobalSize")
)

// Clipboard implements ports.Clipboard using the Win32 clipboard API.
type Clipboard struct {
	mu     sync.Mutex
	logger ports.Logger
}

// New creates a Windows clipboard adapter.
func New(logger ports.Logger) (*Clipboard, error) {
	return &Clipboard{logger: logger}, nil
}

// Read returns a snapshot of the current clipboard contents.
func (c *Clipboard) Read(ctx context.Context) (domain.Snapshot, error) {
	var snap domain.Snapshot
	err := c.withOpen(ctx, func() error {
		count, _, _ := procCountClipboardFormats.Call()
		if count == 0 {
			snap = domain.Snapshot{Kind: domain.ContentCleared}
			return nil
		}

		if formatAvailable(cfDIB) {
			payload, err := clipboardBytes(cfDIB)
			if err != nil {
				return err
			}
			img, err := dib.Decode(payload)
			if err != nil {
				// Present but undecodable raster data is skipped, not
				// retried every tick.
				c.logger.Debug("undecodable DIB payload", ports.Err(err))
				snap = domain.Snapshot{Kind: domain.ContentUnsupported}
				return nil
			}
			snap = domain.ImageSnapshot(img)
			return nil
		}

		if formatAvailable(cfUnicodeText) {
			text, err := clipboardText()
			if err != nil {
				return err
			}
			snap = domain.TextSnapshot(text)
			return nil
		}

		snap = domain.Snapshot{Kind: domain.ContentUnsupported}
		return nil
	})
	return snap, err
}

// WriteImage replaces the clipboard contents with the image as CF_DIB.
func (c *Clipboard) WriteImage(ctx context.Context, m image.Image) error {
	payload, err := dib.Encode(m)
	if err != nil {
		return err
	}

	return c.withOpen(ctx, func() error {
		return setClipboardBytes(cfDIB, payload)
	})
}

// Close releases nothing; the lazy DLL handles are process-wide.
func (c *Clipboard) Close() error {
	return nil
}

// withOpen runs fn between OpenClipboard and CloseClipboard. The clipboard
// binds to the opening thread, so the goroutine is pinned for the duration.
func (c *Clipboard) withOpen(ctx context.Context, fn func() error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := openClipboard(ctx); err != nil {
		return err
	}
	defer procCloseClipboard.Call()

	return fn()
}

// openClipboard retries contended opens; another process holding the
// clipboard is routine and brief.
func openClipboard(ctx context.Context) error {
	delay := openBaseDelay
	for attempt := 1; ; attempt++ {
		if r, _, _ := procOpenClipboard.Call(0); r != 0 {
			return nil
		}
		if attempt == openAttempts {
			return fmt.Errorf("%w: open failed after %d attempts", domain.ErrClipboardBusy, attempt)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
}

func formatAvailable(format uintptr) bool {
	r, _, _ := procIsClipboardFormatAvailable.Call(format)
	return r != 0
}

// clipboardBytes copies the global memory block behind a clipboard format
// into Go-owned memory.
func clipboardBytes(format uintptr) ([]byte, error) {
	h, _, errno := procGetClipboardData.Call(format)
	if h == 0 {
		return nil, fmt.Errorf("GetClipboardData(%d): %v", format, errno)
	}

	p, _, errno := procGlobalLock.Call(h)
	if p == 0 {
		return nil, fmt.Errorf("GlobalLock: %v", errno)
	}
	defer procGlobalUnlock.Call(h)

	size, _, errno := procGlobalSize.Call(h)
	if size == 0 {
		return nil, fmt.Errorf("GlobalSize: %v", errno)
	}

	data := make([]byte, size)
	copy(data, unsafe.Slice((*byte)(unsafe.Pointer(p)), size))
	return data, nil
}

// clipboardText reads CF_UNICODETEXT and converts it to a Go string.
func clipboardText() (string, error) {
	h, _, errno := procGetClipboardData.Call(cfUnicodeText)
	if h == 0 {
		return "", fmt.Errorf("GetClipboardData(text): %v", errno)
	}

	p, _, errno := procGlobalLock.Call(h)
	if p == 0 {
		return "", fmt.Errorf("GlobalLock: %v", errno)
	}
	defer procGlobalUnlock.Call(h)

	size, _, _ := procGlobalSize.Call(h)
	if size < 2 {
		return "", nil
	}

	// UTF16ToString stops at the first NUL.
	return windows.UTF16ToString(unsafe.Slice((*uint16)(unsafe.Pointer(p)), size/2)), nil
}

// setClipboardBytes replaces the clipboard contents with a copy of data. The
// global allocation is prepared before EmptyClipboard so an allocation
// failure leaves the previous contents in place; ownership of the allocation
// passes to the system only when SetClipboardData succeeds.
func setClipboardBytes(format uintptr, data []byte) error {
	h, err := newGlobalPayload(data)
	if err != nil {
		return err
	}

	if r, _, errno := procEmptyClipboard.Call(); r == 0 {
		procGlobalFree.Call(h)
		return fmt.Errorf("EmptyClipboard: %v", errno)
	}

	if r, _, errno := procSetClipboardData.Call(format, h); r == 0 {
		procGlobalFree.Call(h)
		return fmt.Errorf("SetClipboardData: %v", errno)
	}
	return nil
}

// newGlobalPayload copies data into an unlocked moveable global allocation
// suitable for SetClipboardData. The caller owns the handle until the
// clipboard takes it.
func newGlobalPayload(data []byte) (uintptr, error) {
	h, _, errno := procGlobalAlloc.Call(gmemMoveable, uintptr(len(data)))
	if h == 0 {
		return 0, fmt.Errorf("GlobalAlloc(%d bytes): %v", len(data), errno)
	}

	p, _, errno := procGlobalLock.Call(h)
	if p == 0 {
		procGlobalFree.Call(h)
		return 0, fmt.Errorf("GlobalLock: %v", errno)
	}
	copy(unsafe.Slice((*byte)(unsafe.Pointer(p)), len(data)), data)
	procGlobalUnlock.Call(h)

	return h, nil
}
