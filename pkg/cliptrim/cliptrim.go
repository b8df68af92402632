package cliptrim

import (
	"context"
	"fmt"
	"sync"
	"time"

	clipboardAdapter "github.com/bft-labs/cliptrim/internal/adapters/clipboard"
	logAdapter "github.com/bft-labs/cliptrim/internal/adapters/log"
	"github.com/bft-labs/cliptrim/internal/app"
	"github.com/bft-labs/cliptrim/internal/domain"
	"github.com/bft-labs/cliptrim/internal/ports"
	"github.com/bft-labs/cliptrim/pkg/dib"
	"github.com/bft-labs/cliptrim/pkg/imaging"
	"github.com/bft-labs/cliptrim/pkg/log"
)

// Cliptrim is a clipboard border normalizer that can be embedded in other
// applications. Use New() to create an instance, then Start() to begin
// watching the clipboard.
type Cliptrim struct {
	config    Config
	opts      options
	lifecycle *app.Lifecycle
	monitor   *app.Monitor
	clipboard ports.Clipboard
	logger    ports.Logger

	// Plugin support
	plugins []Plugin

	mu     sync.RWMutex
	ctx    context.Context
	cancel context.CancelFunc

	// done is closed when the monitor goroutine of the current run exits.
	// teardownOnce guards plugin shutdown and clipboard close so the
	// once-mode completion path and Stop() run them exactly once per run.
	done         chan struct{}
	teardownOnce *sync.Once
}

// New creates a new Cliptrim instance with the given configuration.
// The instance is created in StateStopped; call Start() to begin polling.
// Returns an error if configuration is invalid.
func New(cfg Config, opts ...Option) (*Cliptrim, error) {
	// Set defaults
	cfg.SetDefaults()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Validate module version compatibility
	if err := validateModuleVersions(); err != nil {
		return nil, err
	}

	// Apply options
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	// Create logger
	var logger ports.Logger
	if o.logger != nil {
		logger = o.logger
	} else {
		logger = logAdapter.NewNoopLogger()
	}

	// Create event emitter wrapper
	var emitter eventEmitterWrapper
	if o.eventHandler != nil {
		emitter = eventEmitterWrapper{handler: o.eventHandler}
	}

	// Create lifecycle manager
	lifecycle := app.NewLifecycle(logger, &emitter)

	// Create the clipboard backend unless one was injected
	backend := o.clipboard
	if backend == nil {
		b, err := clipboardAdapter.New(logger)
		if err != nil {
			return nil, fmt.Errorf("clipboard backend: %w", err)
		}
		backend = b
	}

	// Create the monitor
	settings := app.Settings{
		Padding:      cfg.Padding,
		Tolerance:    cfg.Tolerance,
		PollInterval: cfg.PollInterval,
		Once:         cfg.Once,
	}
	monitor := app.NewMonitor(settings, backend, logger, &emitter)

	return &Cliptrim{
		config:    cfg,
		opts:      o,
		lifecycle: lifecycle,
		monitor:   monitor,
		clipboard: backend,
		logger:    logger,
		plugins:   o.plugins,
	}, nil
}

// Start begins clipboard monitoring in the background.
// Returns immediately after starting the monitor goroutine.
// Returns an error if already running or if a plugin fails to initialize.
// The provided context bounds the lifetime of the monitoring run.
func (c *Cliptrim) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.lifecycle.CanStart() {
		return domain.ErrAlreadyRunning
	}

	// Transition to starting
	if err := c.lifecycle.TransitionTo(app.StateStarting, "Start() called"); err != nil {
		return err
	}

	// Create cancellable context
	runCtx, cancel := context.WithCancel(ctx)
	c.ctx = runCtx
	c.cancel = cancel
	c.lifecycle.SetCancel(cancel)

	// Initialize plugins
	pluginCfg := PluginConfig{
		ConfigPath:   c.config.ConfigPath,
		Padding:      c.config.Padding,
		Tolerance:    c.config.Tolerance,
		Logger:       c.logger,
		Reconfigurer: c,
	}
	for _, p := range c.plugins {
		if err := p.Initialize(runCtx, pluginCfg); err != nil {
			c.logger.Error("plugin initialization failed",
				ports.String("plugin", p.Name()),
				ports.Err(err))
			cancel()
			_ = c.lifecycle.TransitionTo(app.StateCrashed, "plugin init failed: "+p.Name())
			return err
		}
		c.logger.Info("plugin initialized", ports.String("plugin", p.Name()))
	}

	c.done = make(chan struct{})
	c.teardownOnce = &sync.Once{}
	done := c.done

	// Start the monitor in a goroutine
	c.lifecycle.AddWorker()
	go func() {
		defer c.lifecycle.WorkerDone()
		defer close(done)

		// Transition to running
		if err := c.lifecycle.TransitionTo(app.StateRunning, "monitor starting"); err != nil {
			c.logger.Error("failed to transition to running", ports.Err(err))
			return
		}

		// Run the monitor loop
		err := c.monitor.Run(runCtx)

		// Handle completion. A nil error means once mode finished its
		// single pass; tear down without an explicit Stop() call.
		if err == nil {
			_ = c.lifecycle.TransitionTo(app.StateStopping, "single pass complete")
			cancel()
			c.teardown()
			_ = c.lifecycle.TransitionTo(app.StateStopped, "single pass complete")
			return
		}
		if err != context.Canceled {
			c.logger.Error("monitor error", ports.Err(err))
			// Release anything tied to the run context; plugins stay
			// initialized so a restart can reuse them.
			cancel()
			_ = c.lifecycle.TransitionTo(app.StateCrashed, err.Error())
		}
	}()

	return nil
}

// Stop gracefully shuts down the monitor.
// Waits up to the shutdown timeout for the monitor goroutine, then shuts
// down plugins in reverse order and closes the clipboard backend.
// Returns nil on graceful shutdown, ErrShutdownTimeout if forced.
func (c *Cliptrim) Stop() error {
	c.mu.Lock()

	if !c.lifecycle.CanStop() {
		c.mu.Unlock()
		return domain.ErrNotRunning
	}

	// Transition to stopping
	if err := c.lifecycle.TransitionTo(app.StateStopping, "Stop() called"); err != nil {
		c.mu.Unlock()
		return err
	}

	// Cancel the context. A paused monitor observes this directly: the
	// pause gate waits on the context as well as on Resume.
	if c.cancel != nil {
		c.cancel()
	}

	timeout := c.opts.shutdownTimeout
	c.mu.Unlock()

	// Wait for the monitor goroutine with timeout
	err := c.lifecycle.WaitWithTimeout(timeout)

	// Shutdown plugins and close the clipboard backend
	c.teardown()

	// Transition to stopped
	if err != nil {
		_ = c.lifecycle.TransitionTo(app.StateCrashed, "shutdown timeout")
	} else {
		_ = c.lifecycle.TransitionTo(app.StateStopped, "graceful shutdown")
	}

	return err
}

// Pause suspends clipboard polling without stopping the monitor goroutine.
// Pausing an already paused instance is a no-op. Returns ErrNotRunning if
// the instance is not active.
func (c *Cliptrim) Pause() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.lifecycle.State() {
	case app.StatePaused:
		return nil
	case app.StateRunning:
		if err := c.lifecycle.TransitionTo(app.StatePaused, "Pause() called"); err != nil {
			return err
		}
		c.monitor.Pause()
		return nil
	default:
		return domain.ErrNotRunning
	}
}

// Resume restarts clipboard polling after a Pause.
// Resuming a running instance is a no-op. Returns ErrNotRunning if the
// instance is not active.
func (c *Cliptrim) Resume() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.lifecycle.State() {
	case app.StateRunning:
		return nil
	case app.StatePaused:
		if err := c.lifecycle.TransitionTo(app.StateRunning, "Resume() called"); err != nil {
			return err
		}
		c.monitor.Resume()
		return nil
	default:
		return domain.ErrNotRunning
	}
}

// TogglePause flips between Running and Paused and reports whether the
// instance is paused afterwards. Returns ErrNotRunning if the instance is
// not active.
func (c *Cliptrim) TogglePause() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.lifecycle.State() {
	case app.StateRunning:
		if err := c.lifecycle.TransitionTo(app.StatePaused, "TogglePause() called"); err != nil {
			return false, err
		}
		c.monitor.Pause()
		return true, nil
	case app.StatePaused:
		if err := c.lifecycle.TransitionTo(app.StateRunning, "TogglePause() called"); err != nil {
			return true, err
		}
		c.monitor.Resume()
		return false, nil
	default:
		return false, domain.ErrNotRunning
	}
}

// Reconfigure applies new padding and tolerance settings to the monitor.
// Safe to call in any state; the settings take effect on the next poll
// cycle. Implements the Reconfigurer interface handed to plugins.
func (c *Cliptrim) Reconfigure(padding, tolerance int) error {
	cfg := c.config
	cfg.Padding = padding
	cfg.Tolerance = tolerance
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.monitor.Reconfigure(padding, tolerance)
	return nil
}

// Status returns the current lifecycle state.
// Safe to call concurrently from any goroutine.
func (c *Cliptrim) Status() State {
	return convertState(c.lifecycle.State())
}

// Done returns a channel that is closed when the monitor goroutine of the
// current run exits, whether through Stop(), once-mode completion or a
// crash. Returns nil before the first Start().
func (c *Cliptrim) Done() <-chan struct{} {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.done
}

// teardown shuts down plugins in reverse order and closes the clipboard
// backend. Runs at most once per Start().
func (c *Cliptrim) teardown() {
	once := c.teardownOnce
	if once == nil {
		return
	}
	once.Do(func() {
		shutdownCtx := context.Background()
		for i := len(c.plugins) - 1; i >= 0; i-- {
			p := c.plugins[i]
			if err := p.Shutdown(shutdownCtx); err != nil {
				c.logger.Error("plugin shutdown failed",
					ports.String("plugin", p.Name()),
					ports.Err(err))
			} else {
				c.logger.Info("plugin shutdown complete", ports.String("plugin", p.Name()))
			}
		}
		if err := c.clipboard.Close(); err != nil {
			c.logger.Error("clipboard close failed", ports.Err(err))
		}
	})
}

// eventEmitterWrapper adapts EventHandler to the internal emitter interfaces.
type eventEmitterWrapper struct {
	handler EventHandler
}

func (e *eventEmitterWrapper) OnStateChange(previous, current app.State, reason string) {
	if e.handler == nil {
		return
	}
	e.handler.OnStateChange(StateChangeEvent{
		Previous: convertState(previous),
		Current:  convertState(current),
		Reason:   reason,
	})
}

func (e *eventEmitterWrapper) OnNormalized(width, height int, duration time.Duration) {
	if e.handler == nil {
		return
	}
	e.handler.OnNormalized(NormalizedEvent{
		Width:    width,
		Height:   height,
		Duration: duration,
	})
}

func (e *eventEmitterWrapper) OnCycleError(err error, retryable bool) {
	if e.handler == nil {
		return
	}
	e.handler.OnCycleError(CycleErrorEvent{
		Error:     err,
		Retryable: retryable,
	})
}

func convertState(s app.State) State {
	switch s {
	case app.StateStopped:
		return StateStopped
	case app.StateStarting:
		return StateStarting
	case app.StateRunning:
		return StateRunning
	case app.StatePaused:
		return StatePaused
	case app.StateStopping:
		return StateStopping
	case app.StateCrashed:
		return StateCrashed
	default:
		return StateStopped
	}
}

// validateModuleVersions checks that all module versions are compatible.
// Returns an error if any module version is below its minimum compatible version.
func validateModuleVersions() error {
	modules := map[string]struct {
		version    string
		minVersion string
	}{
		"imaging": {imaging.Version, imaging.MinCompatibleVersion},
		"dib":     {dib.Version, dib.MinCompatibleVersion},
		"log":     {log.Version, log.MinCompatibleVersion},
	}

	for name, m := range modules {
		if !isVersionCompatible(m.version, m.minVersion) {
			return fmt.Errorf("module %s version %s is below minimum compatible version %s",
				name, m.version, m.minVersion)
		}
	}

	return nil
}

// isVersionCompatible checks if version >= minVersion using semantic versioning.
// Assumes versions are in format "major.minor.patch".
func isVersionCompatible(version, minVersion string) bool {
	// Parse versions (simplified semver comparison)
	var vMajor, vMinor, vPatch int
	var mMajor, mMinor, mPatch int

	_, _ = fmt.Sscanf(version, "%d.%d.%d", &vMajor, &vMinor, &vPatch)
	_, _ = fmt.Sscanf(minVersion, "%d.%d.%d", &mMajor, &mMinor, &mPatch)

	if vMajor != mMajor {
		return vMajor > mMajor
	}
	if vMinor != mMinor {
		return vMinor > mMinor
	}
	return vPatch >= mPatch
}
