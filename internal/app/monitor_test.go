package app

import (
	"context"
	"errors"
	"image"
	"image/color"
	"sync"
	"testing"
	"time"

	"github.com/bft-labs/cliptrim/internal/domain"
	"github.com/bft-labs/cliptrim/pkg/imaging"
)

var (
	white = color.NRGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	black = color.NRGBA{A: 0xFF}
)

// bordered builds a white image with a black content block surrounded by
// the given border width.
func bordered(contentW, contentH, border int) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, contentW+2*border, contentH+2*border))
	for y := 0; y < m.Rect.Dy(); y++ {
		for x := 0; x < m.Rect.Dx(); x++ {
			m.SetNRGBA(x, y, white)
		}
	}
	for y := border; y < border+contentH; y++ {
		for x := border; x < border+contentW; x++ {
			m.SetNRGBA(x, y, black)
		}
	}
	return m
}

func imageSnap(m image.Image) domain.Snapshot {
	return domain.Snapshot{Kind: domain.ContentImage, Image: m}
}

// fakeClipboard serves scripted snapshots in order; the last one repeats.
// With echo set, a successful write replaces the served snapshot, which
// mimics a real clipboard handing our own write back on the next read.
type fakeClipboard struct {
	mu       sync.Mutex
	snaps    []domain.Snapshot
	reads    int
	writes   []image.Image
	readErr  error
	writeErr error
	echo     bool
}

func (f *fakeClipboard) Read(ctx context.Context) (domain.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	if f.readErr != nil {
		return domain.Snapshot{}, f.readErr
	}
	if len(f.snaps) == 0 {
		return domain.Snapshot{Kind: domain.ContentCleared}, nil
	}
	s := f.snaps[0]
	if len(f.snaps) > 1 {
		f.snaps = f.snaps[1:]
	}
	return s, nil
}

func (f *fakeClipboard) WriteImage(ctx context.Context, m image.Image) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.writes = append(f.writes, m)
	if f.echo {
		f.snaps = []domain.Snapshot{imageSnap(m)}
	}
	return nil
}

func (f *fakeClipboard) Close() error { return nil }

func (f *fakeClipboard) readCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reads
}

func (f *fakeClipboard) writeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.writes)
}

// captureEmitter records cycle events for testing.
type captureEmitter struct {
	mu         sync.Mutex
	normalized []struct{ w, h int }
	errs       []error
}

func (c *captureEmitter) OnNormalized(width, height int, duration time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.normalized = append(c.normalized, struct{ w, h int }{width, height})
}

func (c *captureEmitter) OnCycleError(err error, retryable bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errs = append(c.errs, err)
}

func testSettings() Settings {
	return Settings{Padding: 5, Tolerance: 30, PollInterval: time.Millisecond}
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestMonitor_Cycle_NormalizesNewImage(t *testing.T) {
	clip := &fakeClipboard{snaps: []domain.Snapshot{imageSnap(bordered(10, 10, 15))}}
	emitter := &captureEmitter{}
	m := NewMonitor(testSettings(), clip, mockLogger{}, emitter)

	outcome, err := m.cycle(context.Background())
	if err != nil {
		t.Fatalf("cycle() error = %v", err)
	}
	if outcome != OutcomeNormalized {
		t.Fatalf("cycle() = %v, want OutcomeNormalized", outcome)
	}
	if clip.writeCount() != 1 {
		t.Fatalf("writes = %d, want 1", clip.writeCount())
	}

	// 10x10 content with padding 5 comes out 20x20.
	got := clip.writes[0].Bounds()
	if got.Dx() != 20 || got.Dy() != 20 {
		t.Errorf("written size = %dx%d, want 20x20", got.Dx(), got.Dy())
	}

	if len(emitter.normalized) != 1 || emitter.normalized[0].w != 20 || emitter.normalized[0].h != 20 {
		t.Errorf("OnNormalized events = %+v, want one 20x20", emitter.normalized)
	}
}

func TestMonitor_Cycle_SkipsOwnWrite(t *testing.T) {
	clip := &fakeClipboard{
		snaps: []domain.Snapshot{imageSnap(bordered(10, 10, 15))},
		echo:  true,
	}
	m := NewMonitor(testSettings(), clip, mockLogger{}, nil)

	outcome, err := m.cycle(context.Background())
	if err != nil || outcome != OutcomeNormalized {
		t.Fatalf("first cycle() = %v, %v, want OutcomeNormalized, nil", outcome, err)
	}

	// The clipboard now serves the image we just wrote.
	outcome, err = m.cycle(context.Background())
	if err != nil {
		t.Fatalf("second cycle() error = %v", err)
	}
	if outcome != OutcomeUnchanged {
		t.Errorf("second cycle() = %v, want OutcomeUnchanged", outcome)
	}
	if clip.writeCount() != 1 {
		t.Errorf("writes = %d, want 1 (own write must not be re-processed)", clip.writeCount())
	}
}

func TestMonitor_Cycle_AlreadyNormal(t *testing.T) {
	// Border is already exactly the target padding.
	clip := &fakeClipboard{snaps: []domain.Snapshot{imageSnap(bordered(10, 10, 5))}}
	m := NewMonitor(testSettings(), clip, mockLogger{}, nil)

	outcome, err := m.cycle(context.Background())
	if err != nil {
		t.Fatalf("cycle() error = %v", err)
	}
	if outcome != OutcomeAlreadyNormal {
		t.Errorf("cycle() = %v, want OutcomeAlreadyNormal", outcome)
	}
	if clip.writeCount() != 0 {
		t.Errorf("writes = %d, want 0", clip.writeCount())
	}

	// The fingerprint was recorded: the same image is now a duplicate.
	outcome, err = m.cycle(context.Background())
	if err != nil || outcome != OutcomeUnchanged {
		t.Errorf("second cycle() = %v, %v, want OutcomeUnchanged, nil", outcome, err)
	}
}

func TestMonitor_Cycle_ClearedResetsTracking(t *testing.T) {
	img := bordered(10, 10, 15)
	clip := &fakeClipboard{snaps: []domain.Snapshot{
		imageSnap(img),
		{Kind: domain.ContentCleared},
		imageSnap(img),
	}}
	m := NewMonitor(testSettings(), clip, mockLogger{}, nil)

	want := []Outcome{OutcomeNormalized, OutcomeCleared, OutcomeNormalized}
	for i, w := range want {
		outcome, err := m.cycle(context.Background())
		if err != nil {
			t.Fatalf("cycle %d error = %v", i, err)
		}
		if outcome != w {
			t.Errorf("cycle %d = %v, want %v", i, outcome, w)
		}
	}
	if clip.writeCount() != 2 {
		t.Errorf("writes = %d, want 2 (clear resets duplicate tracking)", clip.writeCount())
	}
}

func TestMonitor_Cycle_TextKeepsTracking(t *testing.T) {
	img := bordered(10, 10, 15)
	clip := &fakeClipboard{
		snaps: []domain.Snapshot{imageSnap(img)},
		echo:  true,
	}
	m := NewMonitor(testSettings(), clip, mockLogger{}, nil)

	if outcome, _ := m.cycle(context.Background()); outcome != OutcomeNormalized {
		t.Fatalf("first cycle = %v, want OutcomeNormalized", outcome)
	}

	// Someone copies text over our write, then the written image comes back.
	clip.mu.Lock()
	clip.snaps = append([]domain.Snapshot{{Kind: domain.ContentText, Text: "hello"}}, clip.snaps...)
	clip.mu.Unlock()

	if outcome, _ := m.cycle(context.Background()); outcome != OutcomeNoImage {
		t.Fatalf("text cycle = %v, want OutcomeNoImage", outcome)
	}

	// Our earlier write is still remembered after the text interlude.
	if outcome, _ := m.cycle(context.Background()); outcome != OutcomeUnchanged {
		t.Errorf("cycle after text = %v, want OutcomeUnchanged", outcome)
	}
}

func TestMonitor_Cycle_WriteFailureRetriesNextTick(t *testing.T) {
	wantErr := errors.New("clipboard locked")
	clip := &fakeClipboard{
		snaps:    []domain.Snapshot{imageSnap(bordered(10, 10, 15))},
		writeErr: wantErr,
	}
	m := NewMonitor(testSettings(), clip, mockLogger{}, nil)

	_, err := m.cycle(context.Background())
	if !errors.Is(err, wantErr) {
		t.Fatalf("cycle() error = %v, want wrapped %v", err, wantErr)
	}

	// Failure must not mark the image as processed.
	clip.mu.Lock()
	clip.writeErr = nil
	clip.mu.Unlock()

	outcome, err := m.cycle(context.Background())
	if err != nil {
		t.Fatalf("retry cycle() error = %v", err)
	}
	if outcome != OutcomeNormalized {
		t.Errorf("retry cycle() = %v, want OutcomeNormalized", outcome)
	}
	if clip.writeCount() != 1 {
		t.Errorf("writes = %d, want 1", clip.writeCount())
	}
}

func TestMonitor_Cycle_ReadError(t *testing.T) {
	wantErr := errors.New("no clipboard")
	clip := &fakeClipboard{readErr: wantErr}
	m := NewMonitor(testSettings(), clip, mockLogger{}, nil)

	_, err := m.cycle(context.Background())
	if !errors.Is(err, wantErr) {
		t.Errorf("cycle() error = %v, want wrapped %v", err, wantErr)
	}
}

func TestMonitor_Reconfigure(t *testing.T) {
	clip := &fakeClipboard{snaps: []domain.Snapshot{imageSnap(bordered(10, 10, 15))}}
	m := NewMonitor(testSettings(), clip, mockLogger{}, nil)

	m.Reconfigure(2, 30)

	outcome, err := m.cycle(context.Background())
	if err != nil || outcome != OutcomeNormalized {
		t.Fatalf("cycle() = %v, %v, want OutcomeNormalized, nil", outcome, err)
	}

	// 10x10 content with the reconfigured padding 2 comes out 14x14.
	got := clip.writes[0].Bounds()
	if got.Dx() != 14 || got.Dy() != 14 {
		t.Errorf("written size = %dx%d, want 14x14", got.Dx(), got.Dy())
	}
}

func TestMonitor_Run_OnceMode(t *testing.T) {
	settings := testSettings()
	settings.Once = true
	clip := &fakeClipboard{snaps: []domain.Snapshot{imageSnap(bordered(10, 10, 15))}}
	m := NewMonitor(settings, clip, mockLogger{}, nil)

	err := m.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() = %v, want nil", err)
	}
	if clip.readCount() != 1 || clip.writeCount() != 1 {
		t.Errorf("reads = %d, writes = %d, want 1 and 1", clip.readCount(), clip.writeCount())
	}
}

func TestMonitor_Run_OnceModeReturnsError(t *testing.T) {
	settings := testSettings()
	settings.Once = true
	wantErr := errors.New("clipboard locked")
	clip := &fakeClipboard{
		snaps:    []domain.Snapshot{imageSnap(bordered(10, 10, 15))},
		writeErr: wantErr,
	}
	m := NewMonitor(settings, clip, mockLogger{}, nil)

	if err := m.Run(context.Background()); !errors.Is(err, wantErr) {
		t.Errorf("Run() = %v, want wrapped %v", err, wantErr)
	}
}

func TestMonitor_Run_StopsOnCancel(t *testing.T) {
	clip := &fakeClipboard{}
	m := NewMonitor(testSettings(), clip, mockLogger{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- m.Run(ctx)
	}()

	waitFor(t, time.Second, func() bool { return clip.readCount() > 0 })
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Run() = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}

func TestMonitor_Run_PauseStopsPolling(t *testing.T) {
	clip := &fakeClipboard{}
	m := NewMonitor(testSettings(), clip, mockLogger{}, nil)

	m.Pause()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- m.Run(ctx)
	}()

	time.Sleep(30 * time.Millisecond)
	if n := clip.readCount(); n != 0 {
		t.Errorf("reads while paused = %d, want 0", n)
	}

	m.Resume()
	waitFor(t, time.Second, func() bool { return clip.readCount() > 0 })

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}

func TestMonitor_Run_CancelWhilePaused(t *testing.T) {
	clip := &fakeClipboard{}
	m := NewMonitor(testSettings(), clip, mockLogger{}, nil)
	m.Pause()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- m.Run(ctx)
	}()

	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Run() = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run() did not return; pause gate must release on cancel")
	}
}

func TestMonitor_TogglePause(t *testing.T) {
	m := NewMonitor(testSettings(), &fakeClipboard{}, mockLogger{}, nil)

	if !m.TogglePause() {
		t.Error("first TogglePause() = false, want true")
	}
	if !m.Paused() {
		t.Error("Paused() = false after toggle")
	}
	if m.TogglePause() {
		t.Error("second TogglePause() = true, want false")
	}
}

func TestMonitor_Cycle_EmitsCycleError(t *testing.T) {
	clip := &fakeClipboard{readErr: errors.New("no clipboard")}
	emitter := &captureEmitter{}
	m := NewMonitor(testSettings(), clip, mockLogger{}, emitter)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- m.Run(ctx)
	}()

	waitFor(t, time.Second, func() bool {
		emitter.mu.Lock()
		defer emitter.mu.Unlock()
		return len(emitter.errs) > 0
	})

	cancel()
	<-done
}

// Normalizing an already-normalized image is a no-op: the loop converges
// after a single write.
func TestMonitor_Cycle_Idempotent(t *testing.T) {
	clip := &fakeClipboard{
		snaps: []domain.Snapshot{imageSnap(bordered(12, 7, 20))},
		echo:  true,
	}
	m := NewMonitor(testSettings(), clip, mockLogger{}, nil)

	for i := 0; i < 5; i++ {
		if _, err := m.cycle(context.Background()); err != nil {
			t.Fatalf("cycle %d error = %v", i, err)
		}
	}

	if clip.writeCount() != 1 {
		t.Fatalf("writes = %d, want exactly 1", clip.writeCount())
	}

	written := clip.writes[0]
	if imaging.FingerprintOf(imaging.NormalizeBorder(written, 5, 30)) != imaging.FingerprintOf(written) {
		t.Error("written image changes under a second normalization pass")
	}
}
