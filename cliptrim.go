// Package cliptrim provides a background normalizer for images on the clipboard.
//
// Example usage:
//
//	cfg := cliptrim.DefaultConfig()
//	cfg.Padding = 10
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//	if err := cliptrim.Run(context.Background(), cfg); err != nil {
//	    log.Fatal(err)
//	}
package cliptrim

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bft-labs/cliptrim/internal/cliconfig"
	lib "github.com/bft-labs/cliptrim/pkg/cliptrim"
	logAdapter "github.com/bft-labs/cliptrim/pkg/log"
	"github.com/bft-labs/cliptrim/plugins/logcleanup"
)

// Config holds the configuration for the clipboard monitor.
// Use DefaultConfig() to get a Config with sensible defaults.
type Config = cliconfig.Config

// Run starts the clipboard monitor with the given configuration.
// It blocks until the context is cancelled or an unrecoverable error occurs.
// Use cfg.Once = true to process the current clipboard image and exit.
//
// For lifecycle control (pause, resume, live reconfiguration) use the
// pkg/cliptrim library instead.
func Run(ctx context.Context, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, _, err := cliconfig.SetupLogging(cfg)
	if err != nil {
		return err
	}

	cleanupCfg := logcleanup.DefaultConfig()
	cleanupCfg.Dir = cfg.LogDir
	cleanupCfg.Keep = cfg.LogKeep

	ct, err := lib.New(lib.Config{
		Padding:      cfg.Padding,
		Tolerance:    cfg.Tolerance,
		PollInterval: cfg.PollInterval,
		Once:         cfg.Once,
	},
		lib.WithLogger(logAdapter.NewZerologAdapterWithLogger(log)),
		logcleanup.WithLogCleanup(cleanupCfg),
	)
	if err != nil {
		return err
	}

	if err := ct.Start(ctx); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
	case <-ct.Done():
		if ct.Status() == lib.StateCrashed {
			return fmt.Errorf("monitor crashed")
		}
	}

	if err := ct.Stop(); err != nil && !errors.Is(err, lib.ErrNotRunning) {
		return err
	}
	return nil
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return cliconfig.DefaultConfig()
}

// Logger returns the package-level zerolog logger used by the monitor.
func Logger() zerolog.Logger {
	return cliconfig.Logger()
}
