package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables.
// Environment variables use the CLIPTRIM_ prefix and override file values
// but not explicitly set flags.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	if err := s.setIntFromString("padding", os.Getenv("CLIPTRIM_PADDING"), &cfg.Padding); err != nil {
		return err
	}
	if err := s.setIntFromString("tolerance", os.Getenv("CLIPTRIM_TOLERANCE"), &cfg.Tolerance); err != nil {
		return err
	}
	if err := s.setDuration("poll", os.Getenv("CLIPTRIM_POLL_INTERVAL"), &cfg.PollInterval); err != nil {
		return err
	}
	s.setBoolFromString("once", os.Getenv("CLIPTRIM_ONCE"), &cfg.Once)

	s.setString("log-dir", os.Getenv("CLIPTRIM_LOG_DIR"), &cfg.LogDir)
	if err := s.setIntFromString("log-keep", os.Getenv("CLIPTRIM_LOG_KEEP"), &cfg.LogKeep); err != nil {
		return err
	}
	s.setString("log-level", os.Getenv("CLIPTRIM_LOG_LEVEL"), &cfg.LogLevel)
	s.setBoolFromString("debug", os.Getenv("CLIPTRIM_DEBUG"), &cfg.Debug)

	return nil
}
