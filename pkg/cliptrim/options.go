package cliptrim

import (
	"time"

	"github.com/bft-labs/cliptrim/internal/app"
	"github.com/bft-labs/cliptrim/internal/domain"
	"github.com/bft-labs/cliptrim/internal/ports"
	"github.com/bft-labs/cliptrim/pkg/log"
)

// Logger is the interface for structured logging.
// Implementations from github.com/bft-labs/cliptrim/pkg/log can be used
// directly, or bring your own.
type Logger = log.Logger

// LogField represents a structured log field.
type LogField = log.Field

// Clipboard is the clipboard backend interface. The platform backend is
// used unless a custom one is injected with WithClipboard.
type Clipboard = ports.Clipboard

// Re-export the snapshot types referenced by Clipboard so custom backends
// can be implemented outside this module.
type (
	// Snapshot is a point-in-time view of the clipboard contents.
	Snapshot = domain.Snapshot

	// ContentKind classifies what a snapshot holds.
	ContentKind = domain.ContentKind
)

// Snapshot content kinds.
const (
	ContentImage       = domain.ContentImage
	ContentText        = domain.ContentText
	ContentCleared     = domain.ContentCleared
	ContentUnsupported = domain.ContentUnsupported
)

// Snapshot constructors for custom Clipboard implementations.
var (
	// ImageSnapshot wraps a decoded raster image.
	ImageSnapshot = domain.ImageSnapshot

	// TextSnapshot wraps clipboard text; empty text means cleared.
	TextSnapshot = domain.TextSnapshot
)

// Option configures optional behavior of Cliptrim.
type Option func(*options)

// options holds the optional configuration for a Cliptrim instance.
type options struct {
	clipboard       ports.Clipboard
	logger          ports.Logger
	eventHandler    EventHandler
	plugins         []Plugin
	shutdownTimeout time.Duration
}

// defaultOptions returns options with sensible defaults.
func defaultOptions() options {
	return options{
		clipboard:       nil,
		logger:          &noopLogger{},
		eventHandler:    nil,
		plugins:         nil,
		shutdownTimeout: app.ShutdownTimeout,
	}
}

// WithClipboard sets a custom clipboard backend.
// If not provided, the operating system clipboard is used. Cliptrim takes
// ownership of the backend and closes it during Stop().
func WithClipboard(clipboard Clipboard) Option {
	return func(o *options) {
		o.clipboard = clipboard
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithEventHandler sets a handler for cliptrim events.
// Events are called synchronously from the monitor goroutine.
// If not provided, no events are emitted.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		o.eventHandler = handler
	}
}

// WithPlugin registers a plugin to be initialized when Cliptrim starts.
// Plugins are initialized in registration order and shut down in reverse
// order. Use this for custom plugins. For built-in plugins, use specific
// options like WithConfigWatcher() or WithLogCleanup().
func WithPlugin(plugin Plugin) Option {
	return func(o *options) {
		o.plugins = append(o.plugins, plugin)
	}
}

// WithShutdownTimeout overrides how long Stop() waits for the monitor
// goroutine to exit before forcing shutdown. Default: 30 seconds.
func WithShutdownTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.shutdownTimeout = d
		}
	}
}

// noopLogger discards all log messages.
type noopLogger struct{}

func (noopLogger) Debug(msg string, fields ...ports.Field) {}
func (noopLogger) Info(msg string, fields ...ports.Field)  {}
func (noopLogger) Warn(msg string, fields ...ports.Field)  {}
func (noopLogger) Error(msg string, fields ...ports.Field) {}
