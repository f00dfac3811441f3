package img

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/animforge/animforge/internal/domain"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestProbePNG(t *testing.T) {
	p := NewProber()

	dims, err := p.Probe(context.Background(), encodePNG(t, 320, 240))
	if err != nil {
		t.Fatalf("Probe returned error: %v", err)
	}
	if dims.Width != 320 || dims.Height != 240 {
		t.Fatalf("expected 320x240, got %dx%d", dims.Width, dims.Height)
	}
}

func TestProbeCorruptBytes(t *testing.T) {
	p := NewProber()

	_, err := p.Probe(context.Background(), []byte("not an image"))
	if err == nil {
		t.Fatal("expected error for corrupt bytes")
	}
	if !errors.Is(err, domain.ErrProbeFailed) {
		t.Fatalf("expected ErrProbeFailed, got %v", err)
	}
}

func TestProbeCanceledContext(t *testing.T) {
	p := NewProber()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := p.Probe(ctx, encodePNG(t, 1, 1)); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
