package cliptrim

import "time"

// State represents the lifecycle state of a Cliptrim instance.
type State int

const (
	// StateStopped means the instance is not running.
	StateStopped State = iota
	// StateStarting means Start() was called and plugins are initializing.
	StateStarting
	// StateRunning means the clipboard monitor loop is active.
	StateRunning
	// StatePaused means the loop is alive but skipping clipboard checks.
	StatePaused
	// StateStopping means Stop() was called and shutdown is in progress.
	StateStopping
	// StateCrashed means the monitor exited with an unrecoverable error.
	StateCrashed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StateStarting:
		return "Starting"
	case StateRunning:
		return "Running"
	case StatePaused:
		return "Paused"
	case StateStopping:
		return "Stopping"
	case StateCrashed:
		return "Crashed"
	default:
		return "Unknown"
	}
}

// CanStart reports whether Start() is allowed from this state.
func (s State) CanStart() bool {
	return s == StateStopped || s == StateCrashed
}

// CanStop reports whether Stop() is allowed from this state.
func (s State) CanStop() bool {
	return s == StateRunning || s == StatePaused || s == StateStarting
}

// IsRunning reports whether the monitor loop is actively polling.
// Paused counts as not running.
func (s State) IsRunning() bool {
	return s == StateRunning
}

// StateChangeEvent is emitted on every lifecycle state transition.
type StateChangeEvent struct {
	Previous State
	Current  State
	Reason   string
}

// NormalizedEvent is emitted each time a clipboard image is normalized
// and written back.
type NormalizedEvent struct {
	// Width and Height are the dimensions of the normalized image.
	Width  int
	Height int

	// Duration is the time spent analyzing, normalizing and writing.
	Duration time.Duration
}

// CycleErrorEvent is emitted when a poll cycle fails.
type CycleErrorEvent struct {
	Error error

	// Retryable indicates the monitor will try again on the next tick.
	Retryable bool
}

// EventHandler receives notifications about cliptrim operations.
// All methods are called synchronously from the monitor goroutine;
// implementations should return quickly to avoid blocking polling.
type EventHandler interface {
	// OnStateChange is called when the lifecycle state changes.
	OnStateChange(event StateChangeEvent)

	// OnNormalized is called after a normalized image was written back
	// to the clipboard.
	OnNormalized(event NormalizedEvent)

	// OnCycleError is called when a poll cycle fails.
	OnCycleError(event CycleErrorEvent)
}

// BaseEventHandler provides no-op implementations of all EventHandler
// methods. Embed it to implement only the events you care about.
type BaseEventHandler struct{}

// OnStateChange is a no-op.
func (BaseEventHandler) OnStateChange(StateChangeEvent) {}

// OnNormalized is a no-op.
func (BaseEventHandler) OnNormalized(NormalizedEvent) {}

// OnCycleError is a no-op.
func (BaseEventHandler) OnCycleError(CycleErrorEvent) {}
