package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/cliptrim/internal/cliconfig"
	"github.com/bft-labs/cliptrim/pkg/cliptrim"
	logAdapter "github.com/bft-labs/cliptrim/pkg/log"
	"github.com/bft-labs/cliptrim/plugins/configwatcher"
	"github.com/bft-labs/cliptrim/plugins/logcleanup"
)

const helpBanner = `
  _____  _       _____  _____   _______  _____   _____  __  __
 / ____|| |     |_   _||  __ \ |__   __||  __ \ |_   _||  \/  |
| |     | |       | |  | |__) |   | |   | |__) |  | |  | \  / |
| |     | |       | |  |  ___/    | |   |  _  /   | |  | |\/| |
| |____ | |____  _| |_ | |        | |   | | \ \  _| |_ | |  | |
 \_____||______||_____||_|        |_|   |_|  \_\|_____||_|  |_|
`

const helpDescription = `
Keep clipboard screenshots tidy: excess background is cropped away and the
content is re-padded with a uniform border, in place.

Highlights:
  - Watches the clipboard in the background and rewrites images as they arrive.
  - Crops the detected content and pads it to a fixed border width.
  - Never loops: normalized images are fingerprinted and skipped on later polls.
  - Configure via file, env, or flags; padding and tolerance hot-reload while running.
`

var longHelp = strings.TrimSpace(helpBanner) + "\n\n" + strings.TrimSpace(helpDescription)

var exampleUsage = strings.TrimSpace(`
  cliptrim --padding 10 --tolerance 30
  cliptrim --config $HOME/.cliptrim/config.toml --once
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	log := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "cliptrim",
		Short:   "Normalize the border around images on the clipboard",
		Long:    longHelp,
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load config file first (default $HOME/.cliptrim/config.toml), then apply flag overrides
			// Determine config path
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			// Build set of changed flags
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			// Watch only a config file that was actually loaded
			watchPath := ""
			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
				watchPath = cfgFile
			}

			// Apply environment variables (CLIPTRIM_*)
			// These override file config but are overridden by flags (checked via changed map)
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			// Validate configuration
			if err := cfg.Validate(); err != nil {
				return err
			}

			// Switch to the configured logger (console plus optional log file)
			log, _, err := cliconfig.SetupLogging(cfg)
			if err != nil {
				return err
			}

			log.Info().Interface("config", cfg).Msg("configuration")

			// Convert cliconfig.Config to cliptrim.Config
			libCfg := cliptrim.Config{
				Padding:      cfg.Padding,
				Tolerance:    cfg.Tolerance,
				PollInterval: cfg.PollInterval,
				Once:         cfg.Once,
				ConfigPath:   watchPath,
			}

			// Create zerolog adapter for the library
			zerologAdapter := logAdapter.NewZerologAdapterWithLogger(log)

			// Log retention follows the CLI logging settings
			cleanupCfg := logcleanup.DefaultConfig()
			cleanupCfg.Dir = cfg.LogDir
			cleanupCfg.Keep = cfg.LogKeep

			ct, err := cliptrim.New(libCfg,
				cliptrim.WithLogger(zerologAdapter),
				// Hot-reload padding/tolerance from the config file
				configwatcher.WithConfigWatcher(configwatcher.DefaultConfig()),
				// Bound the number of log files on disk
				logcleanup.WithLogCleanup(cleanupCfg),
			)
			if err != nil {
				return fmt.Errorf("create cliptrim: %w", err)
			}

			// Setup signal handling for graceful shutdown
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			// Start cliptrim
			if err := ct.Start(ctx); err != nil {
				return fmt.Errorf("start cliptrim: %w", err)
			}

			// Wait for signal or completion (once mode or crash)
			select {
			case <-sigCh:
				log.Info().Msg("received signal, stopping...")
			case <-ct.Done():
				if ct.Status() == cliptrim.StateCrashed {
					return fmt.Errorf("cliptrim crashed")
				}
			}

			// Graceful shutdown; after a once-mode run the monitor has
			// already stopped itself
			if err := ct.Stop(); err != nil && !errors.Is(err, cliptrim.ErrNotRunning) {
				return fmt.Errorf("stop cliptrim: %w", err)
			}
			return nil
		},
	}

	// Flags
	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.cliptrim/config.toml)")
	root.Flags().IntVar(&cfg.Padding, "padding", cfg.Padding, "border width in pixels around the detected content")
	root.Flags().IntVar(&cfg.Tolerance, "tolerance", cfg.Tolerance, "luma distance from the background color still treated as background (0-255)")
	root.Flags().DurationVar(&cfg.PollInterval, "poll", cfg.PollInterval, "clipboard poll interval")
	root.Flags().BoolVar(&cfg.Once, "once", cfg.Once, "process the current clipboard image and exit")

	root.Flags().StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "directory for log files (empty disables file logging)")
	root.Flags().IntVar(&cfg.LogKeep, "log-keep", cfg.LogKeep, "number of log files to keep")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (trace, debug, info, warn, error)")
	root.Flags().BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable debug logging")

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("cliptrim")
		os.Exit(1)
	}
}
