// Package registry implements the ordered frame collection at the center
// of the pipeline. It is the single source of truth read by both the
// playback player and the archive encoder.
//
// The registry maintains two invariants across every mutation:
//
//   - Iteration order always equals the natural sort of frame names.
//   - The registry is non-empty exactly when canvas dimensions are set.
package registry

import (
	"context"
	"crypto/rand"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/animforge/animforge/internal/domain"
	"github.com/animforge/animforge/internal/ports"
	"github.com/animforge/animforge/pkg/natsort"
)

// File is one raw input to Ingest: the original filename plus the
// undecoded image bytes.
type File struct {
	Name    string
	Content []byte
}

// Registry holds the ordered frame records for one editing session.
// All methods are safe for concurrent use.
type Registry struct {
	prober ports.Prober
	alloc  ports.HandleAllocator
	logger ports.Logger

	mu      sync.Mutex
	frames  []*domain.Frame
	dims    domain.Dimensions
	entropy *ulid.MonotonicEntropy
}

// New creates an empty registry.
func New(prober ports.Prober, alloc ports.HandleAllocator, logger ports.Logger) *Registry {
	return &Registry{
		prober:  prober,
		alloc:   alloc,
		logger:  logger,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Ingest merges a batch of files into the registry and re-sorts the whole
// collection in natural name order.
//
// When the registry is empty, the first file of the batch is probed and
// its dimensions become the canvas size for the session. A probe failure
// aborts the entire batch and leaves the registry unchanged.
//
// An empty batch is a no-op.
func (r *Registry) Ingest(ctx context.Context, files []File) error {
	if len(files) == 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	dims := r.dims
	if dims.Zero() {
		probed, err := r.prober.Probe(ctx, files[0].Content)
		if err != nil {
			return fmt.Errorf("probe %s: %w", files[0].Name, err)
		}
		dims = probed
	}

	batch := make([]*domain.Frame, 0, len(files))
	for _, f := range files {
		handle, err := r.alloc.Allocate(f.Name, f.Content)
		if err != nil {
			// Abort the batch: release what this call allocated so far.
			for _, fr := range batch {
				r.releaseHandle(fr)
			}
			return fmt.Errorf("allocate display handle for %s: %w", f.Name, err)
		}
		batch = append(batch, &domain.Frame{
			ID:      ulid.MustNew(ulid.Timestamp(time.Now()), r.entropy).String(),
			Name:    f.Name,
			Content: f.Content,
			Display: handle,
		})
	}

	r.frames = append(r.frames, batch...)
	sort.SliceStable(r.frames, func(i, j int) bool {
		return natsort.Less(r.frames[i].Name, r.frames[j].Name)
	})
	r.dims = dims

	r.logger.Debug("frames ingested",
		ports.Int("batch", len(batch)),
		ports.Int("total", len(r.frames)),
	)
	return nil
}

// Remove releases and deletes the frame with the given id. Removal only
// filters; the remaining frames keep their sorted order. Removing an
// unknown id is a no-op. When the registry becomes empty, the canvas
// dimensions reset to zero.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, f := range r.frames {
		if f.ID != id {
			continue
		}
		r.releaseHandle(f)
		r.frames = append(r.frames[:i], r.frames[i+1:]...)
		break
	}

	if len(r.frames) == 0 {
		r.dims = domain.Dimensions{}
	}
}

// Clear releases every display handle, empties the registry, and resets
// the canvas dimensions.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, f := range r.frames {
		r.releaseHandle(f)
	}
	r.frames = nil
	r.dims = domain.Dimensions{}
}

// Len returns the number of live frames.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

// Frames returns a snapshot of the frames in sorted order.
func (r *Registry) Frames() []*domain.Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Frame, len(r.frames))
	copy(out, r.frames)
	return out
}

// Frame returns the frame at position i, or nil if out of range.
func (r *Registry) Frame(i int) *domain.Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i < 0 || i >= len(r.frames) {
		return nil
	}
	return r.frames[i]
}

// Dimensions returns the current canvas dimensions.
func (r *Registry) Dimensions() domain.Dimensions {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dims
}

// releaseHandle releases a frame's display handle, logging failures.
// Called with r.mu held.
func (r *Registry) releaseHandle(f *domain.Frame) {
	if f.Display == nil {
		return
	}
	if err := f.Display.Release(); err != nil {
		r.logger.Warn("release display handle",
			ports.String("frame", f.Name),
			ports.Err(err),
		)
	}
}
