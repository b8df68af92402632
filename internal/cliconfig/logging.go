package cliconfig

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

var logger zerolog.Logger

func init() {
	logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

// Logger returns the package logger.
func Logger() zerolog.Logger {
	return logger
}

// DefaultLogDir returns the default log directory.
// Returns ~/.cliptrim/logs if user home directory is accessible.
func DefaultLogDir() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".cliptrim", "logs")
	}
	return ""
}

// SetupLogging builds the process logger from the configuration.
// Console output goes to stderr. When LogDir is set, a timestamped log file
// named <timestamp>_<hostname>.log is created there and receives the same
// events as JSON. Returns the logger and the log file path, which is empty
// when file logging is disabled.
func SetupLogging(cfg Config) (zerolog.Logger, string, error) {
	level := zerolog.InfoLevel
	if cfg.LogLevel != "" {
		l, err := zerolog.ParseLevel(cfg.LogLevel)
		if err != nil {
			return zerolog.Logger{}, "", fmt.Errorf("parse log-level: %w", err)
		}
		level = l
	}
	if cfg.Debug {
		level = zerolog.DebugLevel
	}

	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}

	var w io.Writer = console
	logPath := ""
	if cfg.LogDir != "" {
		if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
			return zerolog.Logger{}, "", fmt.Errorf("create log dir: %w", err)
		}
		name := fmt.Sprintf("%s_%s.log", time.Now().Format("2006-01-02_15-04-05"), hostname())
		logPath = filepath.Join(cfg.LogDir, name)
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Logger{}, "", fmt.Errorf("open log file: %w", err)
		}
		w = zerolog.MultiLevelWriter(console, f)
	}

	logger = zerolog.New(w).Level(level).With().Timestamp().Logger()
	return logger, logPath, nil
}

func hostname() string {
	if h, err := os.Hostname(); err == nil && h != "" {
		return h
	}
	return "unknown"
}
