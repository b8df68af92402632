package cliptrim

import "context"

// Plugin extends Cliptrim with optional functionality.
// Plugins are initialized in registration order when Start() is called and
// shut down in reverse order during Stop(). An initialization error aborts
// startup.
type Plugin interface {
	// Name returns a unique identifier for the plugin.
	Name() string

	// Initialize is called during Start() with the runtime wiring.
	Initialize(ctx context.Context, cfg PluginConfig) error

	// Shutdown is called during Stop() in reverse registration order.
	Shutdown(ctx context.Context) error
}

// PluginConfig carries the runtime wiring handed to each plugin at startup.
type PluginConfig struct {
	// ConfigPath is the TOML configuration file in use. Empty when the
	// instance was configured purely in code.
	ConfigPath string

	// Padding and Tolerance are the effective settings at startup.
	Padding   int
	Tolerance int

	// Logger is the instance logger.
	Logger Logger

	// Reconfigurer applies new settings to the running monitor.
	Reconfigurer Reconfigurer
}

// Reconfigurer applies runtime setting changes to a running instance.
// *Cliptrim implements it.
type Reconfigurer interface {
	Reconfigure(padding, tolerance int) error
}

// BasePlugin provides no-op implementations of the Plugin methods.
// Embed it when a plugin only needs some of them, or construct one with
// NewBasePlugin for a named do-nothing plugin.
type BasePlugin struct {
	name string
}

// NewBasePlugin creates a BasePlugin with the given name.
func NewBasePlugin(name string) BasePlugin {
	return BasePlugin{name: name}
}

// Name returns the plugin name, empty for an embedded zero value.
func (p BasePlugin) Name() string { return p.name }

// Initialize is a no-op.
func (BasePlugin) Initialize(context.Context, PluginConfig) error { return nil }

// Shutdown is a no-op.
func (BasePlugin) Shutdown(context.Context) error { return nil }
