package logcleanup

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bft-labs/cliptrim/pkg/cliptrim"
)

func TestPlugin_Name(t *testing.T) {
	plugin := New(DefaultConfig())
	if plugin.Name() != "logcleanup" {
		t.Errorf("Name() = %v, want logcleanup", plugin.Name())
	}
}

func TestPlugin_DefaultsApplied(t *testing.T) {
	plugin := New(Config{})
	if plugin.checkInterval != 24*time.Hour {
		t.Errorf("checkInterval = %v, want 24h", plugin.checkInterval)
	}
	if plugin.keep != 10 {
		t.Errorf("keep = %v, want 10", plugin.keep)
	}
}

func TestPlugin_DisabledWhenDirEmpty(t *testing.T) {
	plugin := New(Config{RunImmediately: true})

	err := plugin.Initialize(context.Background(), cliptrim.PluginConfig{
		Logger: noopLogger{},
	})
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if err := plugin.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown failed: %v", err)
	}
}

func TestSweep_RemovesOldestBeyondKeep(t *testing.T) {
	dir := t.TempDir()

	oldest := createLogFile(t, dir, "2026-01-01_host.log", 5*time.Hour)
	older := createLogFile(t, dir, "2026-01-02_host.log", 4*time.Hour)
	kept1 := createLogFile(t, dir, "2026-01-03_host.log", 3*time.Hour)
	kept2 := createLogFile(t, dir, "2026-01-04_host.log", 2*time.Hour)
	kept3 := createLogFile(t, dir, "2026-01-05_host.log", time.Hour)

	p := New(Config{Dir: dir, Keep: 3})
	p.logger = noopLogger{}
	p.sweepOnce(context.Background())

	if pathExists(oldest) || pathExists(older) {
		t.Fatalf("expected the two oldest log files to be removed")
	}
	for _, path := range []string{kept1, kept2, kept3} {
		if !pathExists(path) {
			t.Fatalf("expected %s to remain", path)
		}
	}
}

func TestSweep_KeepsAllWhenUnderLimit(t *testing.T) {
	dir := t.TempDir()

	a := createLogFile(t, dir, "a.log", 2*time.Hour)
	b := createLogFile(t, dir, "b.log", time.Hour)

	p := New(Config{Dir: dir, Keep: 3})
	p.logger = noopLogger{}
	p.sweepOnce(context.Background())

	if !pathExists(a) || !pathExists(b) {
		t.Fatalf("expected all log files to remain below the keep limit")
	}
}

func TestSweep_IgnoresNonLogFiles(t *testing.T) {
	dir := t.TempDir()

	oldest := createLogFile(t, dir, "old.log", 3*time.Hour)
	newest := createLogFile(t, dir, "new.log", time.Hour)

	note := filepath.Join(dir, "README.txt")
	if err := os.WriteFile(note, []byte("notes"), 0o644); err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(dir, "archive.log")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	p := New(Config{Dir: dir, Keep: 1})
	p.logger = noopLogger{}
	p.sweepOnce(context.Background())

	if pathExists(oldest) {
		t.Fatalf("expected oldest log file to be removed")
	}
	if !pathExists(newest) {
		t.Fatalf("expected newest log file to remain")
	}
	if !pathExists(note) || !pathExists(sub) {
		t.Fatalf("expected non-log entries to remain untouched")
	}
}

func TestPlugin_RunImmediately(t *testing.T) {
	dir := t.TempDir()

	oldest := createLogFile(t, dir, "old.log", 2*time.Hour)
	newest := createLogFile(t, dir, "new.log", time.Hour)

	plugin := New(Config{Dir: dir, Keep: 1, RunImmediately: true})
	if err := plugin.Initialize(context.Background(), cliptrim.PluginConfig{Logger: noopLogger{}}); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer plugin.Shutdown(context.Background())

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if !pathExists(oldest) {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	if pathExists(oldest) {
		t.Fatalf("expected startup sweep to remove oldest log file")
	}
	if !pathExists(newest) {
		t.Fatalf("expected newest log file to remain")
	}
}

func TestPlugin_NoImmediateSweepWhenDisabled(t *testing.T) {
	dir := t.TempDir()

	oldest := createLogFile(t, dir, "old.log", 2*time.Hour)
	createLogFile(t, dir, "new.log", time.Hour)

	plugin := New(Config{Dir: dir, Keep: 1, RunImmediately: false})
	if err := plugin.Initialize(context.Background(), cliptrim.PluginConfig{Logger: noopLogger{}}); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer plugin.Shutdown(context.Background())

	time.Sleep(100 * time.Millisecond)

	if !pathExists(oldest) {
		t.Fatalf("expected no sweep before the first interval elapses")
	}
}

func createLogFile(t *testing.T, dir, name string, age time.Duration) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("log"), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	mt := time.Now().Add(-age)
	if err := os.Chtimes(path, mt, mt); err != nil {
		t.Fatalf("chtimes %s: %v", name, err)
	}
	return path
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// noopLogger implements cliptrim.Logger for testing
type noopLogger struct{}

func (noopLogger) Debug(msg string, fields ...cliptrim.LogField) {}
func (noopLogger) Info(msg string, fields ...cliptrim.LogField)  {}
func (noopLogger) Warn(msg string, fields ...cliptrim.LogField)  {}
func (noopLogger) Error(msg string, fields ...cliptrim.LogField) {}
