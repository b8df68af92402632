// Package logcleanup provides automatic log file retention for cliptrim.
// When enabled, it periodically removes the oldest log files from the log
// directory so only a bounded number remain.
package logcleanup

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/bft-labs/cliptrim/pkg/cliptrim"
)

// Plugin implements log file retention.
// It periodically lists *.log files in the configured directory and removes
// the oldest ones until only Keep remain. The file currently being written
// has the newest modification time, so it is never removed.
type Plugin struct {
	mu sync.RWMutex

	// Configuration
	dir            string
	checkInterval  time.Duration
	keep           int
	runImmediately bool

	// Runtime state
	logger cliptrim.Logger
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Config holds configuration options for the log cleanup plugin.
type Config struct {
	// Dir is the directory holding the log files to manage.
	// Empty disables the plugin.
	Dir string

	// CheckInterval is how often to re-check the log directory.
	// Default: 24 hours
	CheckInterval time.Duration

	// Keep is the number of most recent log files to retain.
	// Default: 10
	Keep int

	// RunImmediately if true, runs a sweep on startup.
	RunImmediately bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		CheckInterval:  24 * time.Hour,
		Keep:           10,
		RunImmediately: true,
	}
}

// New creates a new log cleanup plugin with the given configuration.
func New(cfg Config) *Plugin {
	if cfg.CheckInterval <= 0 {
		cfg.CheckInterval = 24 * time.Hour
	}
	if cfg.Keep <= 0 {
		cfg.Keep = 10
	}

	return &Plugin{
		dir:            cfg.Dir,
		checkInterval:  cfg.CheckInterval,
		keep:           cfg.Keep,
		runImmediately: cfg.RunImmediately,
	}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "logcleanup"
}

// Initialize sets up the plugin and starts the sweep loop.
func (p *Plugin) Initialize(ctx context.Context, cfg cliptrim.PluginConfig) error {
	p.mu.Lock()
	p.logger = cfg.Logger
	p.mu.Unlock()

	if p.dir == "" {
		p.logger.Warn("Log cleanup disabled: no log directory configured")
		return nil
	}

	// Create cancellable context for the sweep loop
	sweepCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.logger.Info("Log cleanup plugin initialized")

	// Start sweep loop
	p.wg.Add(1)
	go p.sweepLoop(sweepCtx)

	return nil
}

// Shutdown stops the sweep loop.
func (p *Plugin) Shutdown(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
	return nil
}

// sweepLoop runs periodic retention sweeps.
func (p *Plugin) sweepLoop(ctx context.Context) {
	defer p.wg.Done()

	if p.runImmediately {
		p.sweepOnce(ctx)
	}

	ticker := time.NewTicker(p.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.sweepOnce(ctx)
		}
	}
}

// sweepOnce performs a single retention sweep.
func (p *Plugin) sweepOnce(ctx context.Context) {
	p.mu.RLock()
	dir := p.dir
	keep := p.keep
	p.mu.RUnlock()

	files, err := logFilesByAge(dir)
	if err != nil {
		p.logger.Error("Log cleanup: list failed")
		return
	}
	if len(files) <= keep {
		return
	}

	removed := 0
	for _, f := range files[:len(files)-keep] {
		if ctx.Err() != nil {
			return
		}
		if err := os.Remove(f.path); err != nil {
			p.logger.Error("Log cleanup: remove failed")
			continue
		}
		removed++
	}

	if removed > 0 {
		p.logger.Info("Log cleanup completed")
	}
}

// logFile pairs a log file path with its modification time.
type logFile struct {
	path    string
	modTime time.Time
}

// logFilesByAge returns the *.log files in dir sorted oldest first.
func logFilesByAge(dir string) ([]logFile, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []logFile
	for _, e := range ents {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".log") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, err
		}
		files = append(files, logFile{
			path:    filepath.Join(dir, e.Name()),
			modTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].modTime.Before(files[j].modTime)
	})
	return files, nil
}

// Ensure Plugin implements cliptrim.Plugin.
var _ cliptrim.Plugin = (*Plugin)(nil)
