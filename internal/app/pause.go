package app

import (
	"context"
	"sync"
)

// pauseGate gates the poll loop. While closed, Wait blocks until Resume or
// context cancellation. The loop consults the gate only between iterations,
// so pausing never interrupts an in-flight clipboard access.
type pauseGate struct {
	mu      sync.Mutex
	resumed chan struct{} // non-nil while paused, closed on resume
}

func newPauseGate() *pauseGate {
	return &pauseGate{}
}

// Pause closes the gate. No-op if already paused.
func (g *pauseGate) Pause() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.resumed == nil {
		g.resumed = make(chan struct{})
	}
}

// Resume opens the gate and releases waiters. No-op if not paused.
func (g *pauseGate) Resume() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.resumed != nil {
		close(g.resumed)
		g.resumed = nil
	}
}

// Toggle flips the gate and reports whether it is now paused.
func (g *pauseGate) Toggle() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.resumed == nil {
		g.resumed = make(chan struct{})
		return true
	}
	close(g.resumed)
	g.resumed = nil
	return false
}

// Paused reports whether the gate is closed.
func (g *pauseGate) Paused() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.resumed != nil
}

// Wait blocks while the gate is paused.
// Returns the context error if the context ends first.
func (g *pauseGate) Wait(ctx context.Context) error {
	g.mu.Lock()
	ch := g.resumed
	g.mu.Unlock()

	if ch == nil {
		return nil
	}

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
