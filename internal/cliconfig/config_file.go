package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations and pointers for
// values whose zero is meaningful, to make TOML friendly.
type FileConfig struct {
	Padding      *int   `toml:"padding"`
	Tolerance    *int   `toml:"tolerance"`
	PollInterval string `toml:"poll_interval"`
	Once         *bool  `toml:"once"`
	LogDir       string `toml:"log_dir"`
	LogKeep      *int   `toml:"log_keep"`
	LogLevel     string `toml:"log_level"`
	Debug        *bool  `toml:"debug"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.cliptrim/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".cliptrim", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setInt("padding", fc.Padding, &cfg.Padding)
	s.setInt("tolerance", fc.Tolerance, &cfg.Tolerance)

	if err := s.setDuration("poll", fc.PollInterval, &cfg.PollInterval); err != nil {
		return err
	}

	s.setBool("once", fc.Once, &cfg.Once)

	s.setString("log-dir", fc.LogDir, &cfg.LogDir)
	s.setInt("log-keep", fc.LogKeep, &cfg.LogKeep)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setBool("debug", fc.Debug, &cfg.Debug)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
