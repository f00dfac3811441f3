// Package encoder implements the archive encoder: it turns the frame
// registry, canvas dimensions, and playback configuration into a single
// compressed archive containing a JSON manifest plus one raster file per
// frame, reporting fractional progress as each frame is packaged.
package encoder

import (
	"archive/zip"
	"bytes"
	"compress/flate"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/animforge/animforge/internal/domain"
	"github.com/animforge/animforge/internal/ports"
)

// Progress percentages: packaging starts at the baseline, per-frame
// updates ramp linearly to the ceiling, and 100 is reserved for the
// stored archive.
const (
	progressBaseline = 10
	progressCeiling  = 95
)

// DefaultCompressionLevel is the deflate level used when none is
// configured. Level 6 trades speed against size the same way the
// stdlib default does, without recompressing the image payloads
// meaningfully (they are already encoded rasters).
const DefaultCompressionLevel = 6

// ArchiveExt is the file extension of exported archives.
const ArchiveExt = ".fsa"

// Request carries one export run's inputs: a registry snapshot taken at
// encode start plus the session configuration.
type Request struct {
	Frames   []*domain.Frame
	Dims     domain.Dimensions
	FPS      int
	Loop     bool
	Progress ports.ProgressFunc
}

// Result describes a completed export.
type Result struct {
	// Path is where the sink stored the archive.
	Path string

	// Name is the archive filename, embedding canvas size and a
	// generation timestamp.
	Name string

	// Manifest is the metadata object written into the archive.
	Manifest domain.Manifest

	// Bytes is the size of the finished archive blob.
	Bytes int
}

// Encoder assembles archives and hands them to a sink.
type Encoder struct {
	sink   ports.ArchiveSink
	logger ports.Logger
	level  int
}

// New creates an encoder writing finished archives to sink.
// level is the deflate compression level, 1 (fastest) to 9 (smallest).
func New(sink ports.ArchiveSink, level int, logger ports.Logger) *Encoder {
	if level < flate.BestSpeed || level > flate.BestCompression {
		level = DefaultCompressionLevel
	}
	return &Encoder{sink: sink, logger: logger, level: level}
}

// Encode runs one export: manifest construction, frame packaging, archive
// finalization, and storage. Frames are processed strictly in registry
// order, one at a time, so progress updates arrive in index order and at
// most one frame's compressed copy is in flight beyond the source bytes.
//
// An empty frame list returns domain.ErrEmptyRegistry without emitting
// any progress; callers treat this as a no-op, not a failure.
func (e *Encoder) Encode(ctx context.Context, req Request) (*Result, error) {
	if len(req.Frames) == 0 {
		return nil, domain.ErrEmptyRegistry
	}

	progress := req.Progress
	if progress == nil {
		progress = func(int, string) {}
	}

	start := time.Now()
	progress(progressBaseline, "packaging started")

	manifest := buildManifest(req)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	level := e.level
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, level)
	})

	total := len(req.Frames)
	for i, frame := range req.Frames {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrEncodeFailed, err)
		}

		key := imageKey(i)
		if err := addFile(zw, manifest.Images[key], frame.Content); err != nil {
			return nil, fmt.Errorf("%w: frame %s: %v", domain.ErrEncodeFailed, frame.Name, err)
		}

		percent := progressBaseline + (i+1)*(progressCeiling-progressBaseline)/total
		progress(percent, fmt.Sprintf("packaging frame %d/%d", i+1, total))
	}

	spec, err := json.Marshal(manifest)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal manifest: %v", domain.ErrEncodeFailed, err)
	}
	if err := addFile(zw, domain.ManifestFileName, spec); err != nil {
		return nil, fmt.Errorf("%w: manifest: %v", domain.ErrEncodeFailed, err)
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("%w: finalize archive: %v", domain.ErrEncodeFailed, err)
	}

	name := archiveName(req.Dims, time.Now())
	path, err := e.sink.Store(ctx, name, buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("%w: store archive: %v", domain.ErrEncodeFailed, err)
	}

	progress(100, "export complete")

	e.logger.Info("archive exported",
		ports.String("path", path),
		ports.Int("frames", total),
		ports.Int("bytes", buf.Len()),
		ports.Duration("duration", time.Since(start)),
	)

	return &Result{
		Path:     path,
		Name:     name,
		Manifest: manifest,
		Bytes:    buf.Len(),
	}, nil
}

// buildManifest constructs the manifest for one run: a single view-box
// sized sprite whose per-frame entries carry an identity transform and a
// full-canvas layout, with image keys assigned in registry order.
func buildManifest(req Request) domain.Manifest {
	images := make(map[string]string, len(req.Frames))
	frames := make([]domain.SpriteFrame, 0, len(req.Frames))

	for i := range req.Frames {
		key := imageKey(i)
		images[key] = key + ".png"
		frames = append(frames, domain.SpriteFrame{
			Alpha:     1,
			Transform: domain.IdentityMatrix(),
			ImageKey:  key,
			Layout: domain.Layout{
				Width:  req.Dims.Width,
				Height: req.Dims.Height,
			},
		})
	}

	return domain.Manifest{
		Version: domain.ManifestVersion,
		Params: domain.ManifestParams{
			ViewBox: domain.ViewBox{Width: req.Dims.Width, Height: req.Dims.Height},
			FPS:     req.FPS,
			Frames:  len(req.Frames),
			Loop:    req.Loop,
		},
		Images:  images,
		Sprites: []domain.Sprite{{ImageKey: nil, Frames: frames}},
	}
}

// addFile writes one deflate-compressed entry into the archive.
func addFile(zw *zip.Writer, name string, content []byte) error {
	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:   name,
		Method: zip.Deflate,
	})
	if err != nil {
		return err
	}
	_, err = w.Write(content)
	return err
}

// imageKey returns the deterministic key for the frame at index i.
func imageKey(i int) string {
	return fmt.Sprintf("img_%d", i)
}

// archiveName embeds the canvas size and a millisecond timestamp so
// repeated exports in one session never collide.
func archiveName(dims domain.Dimensions, now time.Time) string {
	return fmt.Sprintf("animation_%dx%d_%d%s", dims.Width, dims.Height, now.UnixMilli(), ArchiveExt)
}
