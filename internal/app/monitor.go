package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bft-labs/cliptrim/internal/domain"
	"github.com/bft-labs/cliptrim/internal/ports"
	"github.com/bft-labs/cliptrim/pkg/imaging"
)

// Settings contains the tunable parameters of the monitor loop.
// Padding and Tolerance may change at runtime through Reconfigure;
// PollInterval and Once are fixed for the life of the monitor.
type Settings struct {
	Padding      int
	Tolerance    int
	PollInterval time.Duration
	Once         bool
}

// Outcome classifies a completed poll iteration.
type Outcome int

const (
	// OutcomeCleared means the clipboard was empty; duplicate tracking reset.
	OutcomeCleared Outcome = iota
	// OutcomeNoImage means the clipboard held text or unsupported content.
	OutcomeNoImage
	// OutcomeUnchanged means the image was already processed on a prior tick.
	OutcomeUnchanged
	// OutcomeAlreadyNormal means the border already matched the target padding.
	OutcomeAlreadyNormal
	// OutcomeNormalized means the image was rewritten with a normalized border.
	OutcomeNormalized
)

// String returns a human-readable representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeCleared:
		return "cleared"
	case OutcomeNoImage:
		return "no-image"
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeAlreadyNormal:
		return "already-normal"
	case OutcomeNormalized:
		return "normalized"
	default:
		return "unknown"
	}
}

// CycleEventEmitter is called when an iteration normalizes an image or fails.
type CycleEventEmitter interface {
	OnNormalized(width, height int, duration time.Duration)
	OnCycleError(err error, retryable bool)
}

// Monitor orchestrates the clipboard poll loop. It remembers the fingerprint
// of the last image it processed so unchanged clipboard contents cost one
// read and one hash per tick, and so its own writes are not re-processed.
type Monitor struct {
	mu       sync.Mutex
	settings Settings
	last     imaging.Fingerprint

	clipboard ports.Clipboard
	logger    ports.Logger
	emitter   CycleEventEmitter
	gate      *pauseGate
}

// NewMonitor creates a new monitor with the given dependencies.
func NewMonitor(settings Settings, clipboard ports.Clipboard, logger ports.Logger, emitter CycleEventEmitter) *Monitor {
	return &Monitor{
		settings:  settings,
		clipboard: clipboard,
		logger:    logger,
		emitter:   emitter,
		gate:      newPauseGate(),
	}
}

// Reconfigure replaces padding and tolerance. The new values take effect
// from the next iteration. Values must already be validated.
func (m *Monitor) Reconfigure(padding, tolerance int) {
	m.mu.Lock()
	changed := m.settings.Padding != padding || m.settings.Tolerance != tolerance
	m.settings.Padding = padding
	m.settings.Tolerance = tolerance
	m.mu.Unlock()

	if changed {
		m.logger.Info("settings updated",
			ports.Int("padding", padding),
			ports.Int("tolerance", tolerance),
		)
	}
}

// Pause blocks the loop before its next iteration. No-op while paused.
func (m *Monitor) Pause() {
	m.gate.Pause()
}

// Resume releases a paused loop. No-op while running.
func (m *Monitor) Resume() {
	m.gate.Resume()
}

// TogglePause flips the pause gate and reports whether the loop is now paused.
func (m *Monitor) TogglePause() bool {
	return m.gate.Toggle()
}

// Paused reports whether the loop is paused.
func (m *Monitor) Paused() bool {
	return m.gate.Paused()
}

// state returns the current settings and last fingerprint under one lock.
func (m *Monitor) state() (Settings, imaging.Fingerprint) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings, m.last
}

func (m *Monitor) setLast(fp imaging.Fingerprint) {
	m.mu.Lock()
	m.last = fp
	m.mu.Unlock()
}

// Run executes the main poll loop.
// It reads the clipboard, normalizes new images and writes them back.
// Iteration failures are logged and retried on the next tick. Returns when
// the context is canceled, or after a single pass in once mode.
func (m *Monitor) Run(ctx context.Context) error {
	for {
		if err := m.gate.Wait(ctx); err != nil {
			return err
		}

		settings, _ := m.state()

		outcome, err := m.cycle(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if settings.Once {
				return err
			}
			m.logger.Error("poll cycle failed", ports.Err(err))
			if m.emitter != nil {
				m.emitter.OnCycleError(err, true)
			}
		} else {
			m.logger.Debug("poll cycle", ports.String("outcome", outcome.String()))
		}

		if settings.Once {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(settings.PollInterval):
		}
	}
}

// cycle performs one poll iteration. The returned outcome is meaningful
// only when the error is nil; any error is transient.
func (m *Monitor) cycle(ctx context.Context) (Outcome, error) {
	snap, err := m.clipboard.Read(ctx)
	if err != nil {
		return 0, fmt.Errorf("read clipboard: %w", err)
	}

	settings, last := m.state()

	switch snap.Kind {
	case domain.ContentCleared:
		// Empty clipboard forgets the last image, so copying the same
		// image again after a clear is processed fresh.
		if !last.IsZero() {
			m.setLast(imaging.Fingerprint{})
			m.logger.Debug("clipboard cleared, duplicate tracking reset")
		}
		return OutcomeCleared, nil
	case domain.ContentText, domain.ContentUnsupported:
		return OutcomeNoImage, nil
	}

	fp := imaging.FingerprintOf(snap.Image)
	if fp == last {
		return OutcomeUnchanged, nil
	}

	start := time.Now()
	normalized := imaging.NormalizeBorder(snap.Image, settings.Padding, settings.Tolerance)
	normFP := imaging.FingerprintOf(normalized)

	if normFP == fp {
		// Border already at target. Remember the fingerprint so the next
		// tick skips the normalize work.
		m.setLast(fp)
		return OutcomeAlreadyNormal, nil
	}

	if err := m.clipboard.WriteImage(ctx, normalized); err != nil {
		// last stays unchanged so the next tick retries the same image.
		return 0, fmt.Errorf("write clipboard: %w", err)
	}

	// Record the fingerprint of what we wrote: the next tick reads our own
	// write back and skips it as unchanged.
	m.setLast(normFP)

	duration := time.Since(start)
	bounds := normalized.Bounds()
	m.logger.Info("normalized clipboard image",
		ports.Int("width", bounds.Dx()),
		ports.Int("height", bounds.Dy()),
		ports.Duration("duration", duration),
	)
	if m.emitter != nil {
		m.emitter.OnNormalized(bounds.Dx(), bounds.Dy(), duration)
	}

	return OutcomeNormalized, nil
}
