package sprite

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func newTestSession(t *testing.T, cfg Config, opts ...Option) *Session {
	t.Helper()
	if cfg.OutputDir == "" {
		cfg.OutputDir = t.TempDir()
	}
	if cfg.IdleResetDelay == 0 {
		cfg.IdleResetDelay = 20 * time.Millisecond
	}
	s, err := New(cfg, opts...)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return s
}

func ingestNamed(t *testing.T, s *Session, content []byte, names ...string) {
	t.Helper()
	files := make([]File, 0, len(names))
	for _, n := range names {
		files = append(files, File{Name: n, Content: content})
	}
	if err := s.Ingest(context.Background(), files); err != nil {
		t.Fatalf("Ingest: %v", err)
	}
}

func TestNewValidatesConfig(t *testing.T) {
	if _, err := New(Config{FPS: 99}); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for fps 99, got %v", err)
	}

	// Zero fps takes the default.
	s, err := New(Config{})
	if err != nil {
		t.Fatalf("New with defaults returned error: %v", err)
	}
	if s.config.FPS != 24 {
		t.Fatalf("default fps = %d, want 24", s.config.FPS)
	}
}

func TestIngestOrderAndDimensions(t *testing.T) {
	s := newTestSession(t, Config{FPS: 12})
	ingestNamed(t, s, pngBytes(t, 160, 90), "b.png", "a.png", "c10.png")

	frames := s.Frames()
	want := []string{"a.png", "b.png", "c10.png"}
	for i, name := range want {
		if frames[i].Name != name {
			t.Fatalf("frame %d = %s, want %s", i, frames[i].Name, name)
		}
		if frames[i].Position != i {
			t.Fatalf("frame %d position = %d", i, frames[i].Position)
		}
	}

	if dims := s.CanvasDimensions(); dims.Width != 160 || dims.Height != 90 {
		t.Fatalf("dimensions = %+v, want 160x90", dims)
	}
}

func TestIngestCorruptFirstFileAbortsBatch(t *testing.T) {
	s := newTestSession(t, Config{})

	err := s.Ingest(context.Background(), []File{{Name: "bad.png", Content: []byte("junk")}})
	if !errors.Is(err, ErrProbeFailed) {
		t.Fatalf("expected ErrProbeFailed, got %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("registry changed after probe failure: %d frames", s.Len())
	}
}

func TestDurationScenario(t *testing.T) {
	s := newTestSession(t, Config{FPS: 24})

	content := pngBytes(t, 4, 4)
	names := make([]string, 48)
	for i := range names {
		names[i] = fmt.Sprintf("frame%d.png", i+1)
	}
	ingestNamed(t, s, content, names...)

	if d := s.Duration(); d != 2.00 {
		t.Fatalf("duration = %.2f, want 2.00", d)
	}
}

func TestRemoveToEmptyClampsCursor(t *testing.T) {
	s := newTestSession(t, Config{})
	ingestNamed(t, s, pngBytes(t, 4, 4), "a.png")

	s.Remove(s.Frames()[0].ID)

	if s.Len() != 0 {
		t.Fatalf("expected empty session, len=%d", s.Len())
	}
	if dims := s.CanvasDimensions(); dims.Width != 0 || dims.Height != 0 {
		t.Fatalf("dimensions not reset: %+v", dims)
	}
	if s.Cursor() != 0 {
		t.Fatalf("cursor = %d, want 0", s.Cursor())
	}
}

func TestClearStopsPlayer(t *testing.T) {
	s := newTestSession(t, Config{FPS: 30})
	ingestNamed(t, s, pngBytes(t, 4, 4), "a.png", "b.png")

	if err := s.Play(context.Background()); err != nil {
		t.Fatalf("Play: %v", err)
	}
	s.Clear()

	if s.Playing() {
		t.Fatal("player still running after Clear")
	}
	if s.Len() != 0 || s.Cursor() != 0 {
		t.Fatalf("session not reset: len=%d cursor=%d", s.Len(), s.Cursor())
	}
}

func TestExportEmptyIsNoop(t *testing.T) {
	var statuses []Status
	s := newTestSession(t, Config{}, WithStatusHandler(func(st Status) {
		statuses = append(statuses, st)
	}))

	_, err := s.Export(context.Background())
	if !errors.Is(err, ErrEmptyRegistry) {
		t.Fatalf("expected ErrEmptyRegistry, got %v", err)
	}
	if len(statuses) != 0 {
		t.Fatalf("status changed for empty export: %+v", statuses)
	}
	if st := s.Status(); st.Generating || st.Progress != 0 || st.Message != "" {
		t.Fatalf("status not idle: %+v", st)
	}
}

func TestExportProducesArchive(t *testing.T) {
	out := t.TempDir()

	var statuses []Status
	s := newTestSession(t, Config{FPS: 24, OutputDir: out}, WithStatusHandler(func(st Status) {
		statuses = append(statuses, st)
	}))
	ingestNamed(t, s, pngBytes(t, 32, 32), "frame2.png", "frame10.png", "frame1.png")

	res, err := s.Export(context.Background())
	if err != nil {
		t.Fatalf("Export returned error: %v", err)
	}

	if res.Frames != 3 {
		t.Errorf("result frames = %d, want 3", res.Frames)
	}
	if filepath.Dir(res.Path) != out {
		t.Errorf("archive stored at %s, want under %s", res.Path, out)
	}
	if _, err := os.Stat(res.Path); err != nil {
		t.Fatalf("archive missing: %v", err)
	}

	if len(statuses) == 0 {
		t.Fatal("no status updates emitted")
	}
	last := statuses[len(statuses)-1]
	if last.Generating || last.Progress != 100 {
		t.Fatalf("terminal status = %+v, want complete at 100", last)
	}
	for i := 1; i < len(statuses); i++ {
		if statuses[i].Progress < statuses[i-1].Progress {
			t.Fatalf("progress not monotone: %+v", statuses)
		}
	}

	// Status fades back to idle after the configured delay.
	time.Sleep(100 * time.Millisecond)
	if st := s.Status(); !st.Idle() {
		t.Fatalf("status did not fade to idle: %+v", st)
	}
}

func TestExportRejectsOverlappingRun(t *testing.T) {
	release := make(chan struct{})
	sink := &blockingSink{release: release, stored: make(chan struct{})}

	s := newTestSession(t, Config{}, WithArchiveSink(sink))
	ingestNamed(t, s, pngBytes(t, 4, 4), "a.png")

	done := make(chan error, 1)
	go func() {
		_, err := s.Export(context.Background())
		done <- err
	}()

	// Wait until the first run is inside the sink, then try a second.
	<-sink.stored
	if _, err := s.Export(context.Background()); !errors.Is(err, ErrExportInProgress) {
		t.Fatalf("expected ErrExportInProgress, got %v", err)
	}

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first export failed: %v", err)
	}
}

func TestExportFailureSetsFailureStatus(t *testing.T) {
	sink := &failingSink{}
	s := newTestSession(t, Config{}, WithArchiveSink(sink))
	ingestNamed(t, s, pngBytes(t, 4, 4), "a.png")

	_, err := s.Export(context.Background())
	if !errors.Is(err, ErrEncodeFailed) {
		t.Fatalf("expected ErrEncodeFailed, got %v", err)
	}

	st := s.Status()
	if st.Generating {
		t.Fatal("still generating after failure")
	}
	if st.Message == "" {
		t.Fatal("failure left no status message")
	}

	// A later export may start again once the failed run has ended.
	if _, err := s.Export(context.Background()); !errors.Is(err, ErrEncodeFailed) {
		t.Fatalf("retry expected to reach the sink again, got %v", err)
	}
}

func TestStatusIdle(t *testing.T) {
	if !(Status{}).Idle() {
		t.Error("zero status should be idle")
	}
	busy := []Status{
		{Generating: true},
		{Progress: 50},
		{Message: "export complete"},
	}
	for _, st := range busy {
		if st.Idle() {
			t.Errorf("status %+v should not be idle", st)
		}
	}
}

type blockingSink struct {
	release <-chan struct{}
	stored  chan struct{}
}

func (s *blockingSink) Store(ctx context.Context, name string, blob []byte) (string, error) {
	close(s.stored)
	<-s.release
	return "/out/" + name, nil
}

type failingSink struct{}

func (failingSink) Store(ctx context.Context, name string, blob []byte) (string, error) {
	return "", errors.New("sink unavailable")
}
