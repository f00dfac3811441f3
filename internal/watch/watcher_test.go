package watch

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/animforge/animforge/pkg/log"
	"github.com/animforge/animforge/pkg/sprite"
)

func pngFile(t *testing.T, dir, name string) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func newSession(t *testing.T) *sprite.Session {
	t.Helper()
	s, err := sprite.New(sprite.Config{FPS: 12, OutputDir: t.TempDir()})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	return s
}

func waitForFrames(t *testing.T, s *sprite.Session, n int) {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for s.Len() < n {
		select {
		case <-deadline:
			t.Fatalf("timed out waiting for %d frames, have %d", n, s.Len())
		case <-time.After(20 * time.Millisecond):
		}
	}
}

func TestWatcherIngestsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	pngFile(t, dir, "frame2.png")
	pngFile(t, dir, "frame10.png")
	pngFile(t, dir, "notes.txt")

	s := newSession(t)
	w := New(s, Config{Dir: dir, DebounceDelay: 20 * time.Millisecond}, log.NewNoopLogger())
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	defer w.Stop()

	waitForFrames(t, s, 2)

	frames := s.Frames()
	if frames[0].Name != "frame2.png" || frames[1].Name != "frame10.png" {
		t.Fatalf("order = %v", []string{frames[0].Name, frames[1].Name})
	}
}

func TestWatcherIngestsNewFiles(t *testing.T) {
	dir := t.TempDir()
	s := newSession(t)
	w := New(s, Config{Dir: dir, DebounceDelay: 20 * time.Millisecond}, log.NewNoopLogger())
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	defer w.Stop()

	pngFile(t, dir, "a.png")
	waitForFrames(t, s, 1)

	pngFile(t, dir, "b.png")
	waitForFrames(t, s, 2)
}

func TestWatcherIgnoresRewrites(t *testing.T) {
	dir := t.TempDir()
	s := newSession(t)
	w := New(s, Config{Dir: dir, DebounceDelay: 20 * time.Millisecond}, log.NewNoopLogger())
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	defer w.Stop()

	path := pngFile(t, dir, "a.png")
	waitForFrames(t, s, 1)

	// Rewriting the same file must not produce a duplicate frame.
	if err := os.WriteFile(path, []byte("updated"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}
	time.Sleep(100 * time.Millisecond)
	if s.Len() != 1 {
		t.Fatalf("rewrite duplicated frame: len=%d", s.Len())
	}
}

func TestWatcherStopQuiesces(t *testing.T) {
	dir := t.TempDir()
	s := newSession(t)
	w := New(s, Config{Dir: dir, DebounceDelay: 50 * time.Millisecond}, log.NewNoopLogger())
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	// Stop while a debounce timer may be pending or mid-flush. After
	// Stop returns no ingest may run anymore.
	pngFile(t, dir, "a.png")
	time.Sleep(10 * time.Millisecond)
	w.Stop()

	n := s.Len()
	time.Sleep(200 * time.Millisecond)
	if s.Len() != n {
		t.Fatalf("ingest ran after Stop: len went %d -> %d", n, s.Len())
	}
}

func TestWatcherStartFailsOnMissingDir(t *testing.T) {
	s := newSession(t)
	w := New(s, Config{Dir: filepath.Join(t.TempDir(), "absent")}, log.NewNoopLogger())
	if err := w.Start(context.Background()); err == nil {
		w.Stop()
		t.Fatal("expected error for missing directory")
	}
}
