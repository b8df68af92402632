package configwatcher

import "github.com/bft-labs/cliptrim/pkg/cliptrim"

// WithConfigWatcher returns a cliptrim Option that enables config file
// watching. When enabled, the plugin monitors the instance's configuration
// file and applies padding and tolerance changes at runtime.
//
// Usage:
//
//	ct, err := cliptrim.New(cfg,
//	    configwatcher.WithConfigWatcher(configwatcher.Config{
//	        DebounceDelay: 100 * time.Millisecond,
//	    }),
//	)
func WithConfigWatcher(cfg Config) cliptrim.Option {
	plugin := New(cfg)
	return cliptrim.WithPlugin(plugin)
}

// WithDefaultConfigWatcher returns a cliptrim Option that enables config
// watching with default settings (debounce 100ms).
//
// Usage:
//
//	ct, err := cliptrim.New(cfg, configwatcher.WithDefaultConfigWatcher())
func WithDefaultConfigWatcher() cliptrim.Option {
	return WithConfigWatcher(DefaultConfig())
}
