// Package configwatcher provides config file monitoring for cliptrim.
// When enabled, it watches the instance's TOML configuration file and applies
// padding and tolerance changes to the running monitor without a restart.
package configwatcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/bft-labs/cliptrim/pkg/cliptrim"
)

// Plugin implements config file watching.
// It monitors the configuration file the instance was started from and
// pushes changed settings through the Reconfigurer. Settings the file does
// not mention keep their current values, so a file edited to contain only
// `padding` leaves the tolerance untouched.
type Plugin struct {
	mu sync.RWMutex

	// Configuration
	debounceDelay time.Duration

	// Runtime state
	configPath   string
	padding      int
	tolerance    int
	logger       cliptrim.Logger
	reconfigurer cliptrim.Reconfigurer
	cancel       context.CancelFunc
	wg           sync.WaitGroup
	debounce     *time.Timer
}

// Config holds configuration options for the config watcher plugin.
type Config struct {
	// DebounceDelay is the delay to wait after a file change before
	// reloading. Editors often emit several events per save.
	// Default: 100 milliseconds
	DebounceDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DebounceDelay: 100 * time.Millisecond,
	}
}

// New creates a new config watcher plugin with the given configuration.
func New(cfg Config) *Plugin {
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 100 * time.Millisecond
	}

	return &Plugin{
		debounceDelay: cfg.DebounceDelay,
	}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "configwatcher"
}

// Initialize sets up the plugin and starts the file watcher.
func (p *Plugin) Initialize(ctx context.Context, cfg cliptrim.PluginConfig) error {
	p.mu.Lock()
	p.configPath = cfg.ConfigPath
	p.padding = cfg.Padding
	p.tolerance = cfg.Tolerance
	p.logger = cfg.Logger
	p.reconfigurer = cfg.Reconfigurer
	p.mu.Unlock()

	if p.configPath == "" {
		p.logger.Warn("Config watcher disabled: no config file in use")
		return nil
	}

	// Create cancellable context for the watcher loop
	watchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.logger.Info("Config watcher plugin initialized")

	// Start watcher loop
	p.wg.Add(1)
	go p.watchLoop(watchCtx)

	return nil
}

// Shutdown stops the config watcher.
func (p *Plugin) Shutdown(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
	return nil
}

// fileSettings mirrors the tunable keys of the configuration file.
// Pointers distinguish absent keys from explicit zero values.
type fileSettings struct {
	Padding   *int `toml:"padding"`
	Tolerance *int `toml:"tolerance"`
}

// watchLoop watches the config file's directory for changes.
// The directory is watched rather than the file itself: editors replace
// files on save, which drops a watch registered on the file.
func (p *Plugin) watchLoop(ctx context.Context) {
	defer p.wg.Done()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		p.logger.Error("Config watcher: failed to create watcher")
		return
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(p.configPath)); err != nil {
		p.logger.Error("Config watcher: failed to watch directory")
		return
	}

	target := filepath.Base(p.configPath)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			p.debounceReload(ctx, p.debounceDelay)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			_ = err // logged as generic error
			p.logger.Error("Config watcher: watcher error")
		}
	}
}

func (p *Plugin) debounceReload(ctx context.Context, delay time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.debounce != nil {
		p.debounce.Stop()
	}

	p.debounce = time.AfterFunc(delay, func() {
		p.reload(ctx)
	})
}

// reload re-parses the config file and applies changed settings.
// Read, parse and validation failures keep the current settings.
func (p *Plugin) reload(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	data, err := os.ReadFile(p.configPath)
	if err != nil {
		p.logger.Warn("Config watcher: cannot read config file")
		return
	}

	var fs fileSettings
	if err := toml.Unmarshal(data, &fs); err != nil {
		p.logger.Warn("Config watcher: invalid config file, keeping previous settings")
		return
	}

	p.mu.Lock()
	padding := p.padding
	tolerance := p.tolerance
	if fs.Padding != nil {
		padding = *fs.Padding
	}
	if fs.Tolerance != nil {
		tolerance = *fs.Tolerance
	}
	changed := padding != p.padding || tolerance != p.tolerance
	p.mu.Unlock()

	if !changed {
		return
	}

	if err := p.reconfigurer.Reconfigure(padding, tolerance); err != nil {
		p.logger.Warn("Config watcher: rejected settings, keeping previous values")
		return
	}

	p.mu.Lock()
	p.padding = padding
	p.tolerance = tolerance
	p.mu.Unlock()

	p.logger.Info("Config watcher: applied configuration update")
}

// Ensure Plugin implements cliptrim.Plugin.
var _ cliptrim.Plugin = (*Plugin)(nil)
