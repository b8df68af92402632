package cliptrim

import "github.com/bft-labs/cliptrim/internal/domain"

// Errors returned by the public API, re-exported from the domain layer so
// callers can match them with errors.Is.
var (
	// ErrAlreadyRunning is returned by Start() on a running instance.
	ErrAlreadyRunning = domain.ErrAlreadyRunning

	// ErrNotRunning is returned by Stop(), Pause() and Resume() on a
	// stopped instance.
	ErrNotRunning = domain.ErrNotRunning

	// ErrShutdownTimeout is returned by Stop() when the monitor goroutine
	// does not exit within the shutdown timeout.
	ErrShutdownTimeout = domain.ErrShutdownTimeout

	// ErrInvalidConfig is returned by New() and Reconfigure() when
	// validation fails.
	ErrInvalidConfig = domain.ErrInvalidConfig

	// ErrClipboardBusy marks transient cycle errors caused by another
	// process holding the clipboard open.
	ErrClipboardBusy = domain.ErrClipboardBusy
)
