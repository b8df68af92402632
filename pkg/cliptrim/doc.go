// Package cliptrim provides an embeddable clipboard border normalizer.
//
// Cliptrim watches the operating system clipboard for raster images and
// rewrites each new image so the uniform-color border around its content is
// exactly the configured padding wide. It can be used as a standalone CLI
// application or embedded as a library in other Go programs.
//
// # Basic Usage
//
// To embed cliptrim in your application:
//
//	cfg := cliptrim.Config{
//	    Padding:   10,
//	    Tolerance: 30,
//	}
//
//	ct, err := cliptrim.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	if err := ct.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	// ... run until shutdown signal ...
//
//	if err := ct.Stop(); err != nil {
//	    log.Printf("shutdown error: %v", err)
//	}
//
// # Configuration
//
// Create a [Config] with the desired Padding and Tolerance; both accept zero
// (trim the border entirely, exact background match). [Config.SetDefaults]
// fills the poll interval. With Once set, Start processes the clipboard a
// single time and the instance stops itself; watch [Cliptrim.Done] for
// completion.
//
// # Event Handling
//
// To receive notifications about cliptrim operations, implement [EventHandler]
// and pass it via [WithEventHandler]:
//
//	handler := &myEventHandler{}
//	ct, err := cliptrim.New(cfg, cliptrim.WithEventHandler(handler))
//
// Events are called synchronously from the monitor goroutine. Implementations
// should return quickly to avoid blocking polling.
//
// # Dependency Injection
//
// For testing, you can inject custom implementations of external dependencies:
//
//	ct, err := cliptrim.New(cfg,
//	    cliptrim.WithClipboard(fakeClipboard),
//	    cliptrim.WithLogger(customLogger),
//	)
//
// # Lifecycle States
//
// A Cliptrim instance can be in one of six states: [StateStopped],
// [StateStarting], [StateRunning], [StatePaused], [StateStopping], or
// [StateCrashed]. Use [Cliptrim.Status] to query the current state and
// [Cliptrim.Pause], [Cliptrim.Resume] or [Cliptrim.TogglePause] to suspend
// polling without tearing the instance down.
//
// # Plugins
//
// Cliptrim supports optional plugins for extended functionality:
//
//	import "github.com/bft-labs/cliptrim/plugins/configwatcher"
//	import "github.com/bft-labs/cliptrim/plugins/logcleanup"
//
//	ct, err := cliptrim.New(cfg,
//	    configwatcher.WithConfigWatcher(configwatcher.DefaultConfig()),
//	    logcleanup.WithLogCleanup(logcleanup.DefaultConfig()),
//	)
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// Use [ModuleVersions] to get versions of all sub-modules and [CompatibilityMatrix]
// to check minimum compatible versions. See version.go for details.
package cliptrim
