package logcleanup

import "github.com/bft-labs/cliptrim/pkg/cliptrim"

// WithLogCleanup returns a cliptrim Option that enables automatic log file
// retention. When enabled, the plugin periodically removes the oldest *.log
// files from the configured directory so only Keep remain.
//
// Usage:
//
//	ct, err := cliptrim.New(cfg,
//	    logcleanup.WithLogCleanup(logcleanup.Config{
//	        Dir:            "/var/log/cliptrim",
//	        CheckInterval:  24 * time.Hour,
//	        Keep:           10,
//	        RunImmediately: true,
//	    }),
//	)
func WithLogCleanup(cfg Config) cliptrim.Option {
	plugin := New(cfg)
	return cliptrim.WithPlugin(plugin)
}

// WithDefaultLogCleanup returns a cliptrim Option that enables log cleanup
// for the given directory with default settings (check every 24h, keep the
// 10 newest files, sweep immediately on startup).
//
// Usage:
//
//	ct, err := cliptrim.New(cfg, logcleanup.WithDefaultLogCleanup(dir))
func WithDefaultLogCleanup(dir string) cliptrim.Option {
	cfg := DefaultConfig()
	cfg.Dir = dir
	return WithLogCleanup(cfg)
}
