package domain

import "errors"

// Domain errors represent error conditions in the cliptrim domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrAlreadyRunning is returned when Start() is called on a running instance.
	ErrAlreadyRunning = errors.New("cliptrim: already running")

	// ErrNotRunning is returned when Stop() or Pause() is called on a stopped instance.
	ErrNotRunning = errors.New("cliptrim: not running")

	// ErrShutdownTimeout is returned when graceful shutdown times out.
	ErrShutdownTimeout = errors.New("cliptrim: shutdown timeout")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("cliptrim: invalid configuration")

	// ErrClipboardBusy is returned when the clipboard is held open by another
	// process. Transient: the monitor retries on the next poll tick.
	ErrClipboardBusy = errors.New("cliptrim: clipboard busy")

	// ErrUnsupportedFormat is returned when the clipboard holds a bitmap
	// variant this system cannot decode.
	ErrUnsupportedFormat = errors.New("cliptrim: unsupported bitmap format")

	// ErrInvalidPayload is returned when a clipboard bitmap payload is
	// truncated or structurally malformed.
	ErrInvalidPayload = errors.New("cliptrim: invalid bitmap payload")
)
