package sprite

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	fsAdapter "github.com/animforge/animforge/internal/adapters/fs"
	imgAdapter "github.com/animforge/animforge/internal/adapters/img"
	"github.com/animforge/animforge/internal/adapters/mem"
	"github.com/animforge/animforge/internal/domain"
	"github.com/animforge/animforge/internal/encoder"
	"github.com/animforge/animforge/internal/player"
	"github.com/animforge/animforge/internal/ports"
	"github.com/animforge/animforge/internal/registry"
	"github.com/animforge/animforge/pkg/log"
)

// Exported sentinel errors. Callers check these with errors.Is.
var (
	// ErrExportInProgress is returned by Export while a run is active.
	ErrExportInProgress = domain.ErrExportInProgress

	// ErrEmptyRegistry is returned by Export and Play when no frames
	// have been ingested. For Export this marks a no-op, not a failure:
	// no status change occurs and no file is produced.
	ErrEmptyRegistry = domain.ErrEmptyRegistry

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = domain.ErrInvalidConfig

	// ErrProbeFailed is returned by Ingest when the reference image
	// cannot be decoded. The whole batch is discarded.
	ErrProbeFailed = domain.ErrProbeFailed

	// ErrEncodeFailed is returned by Export when archive assembly fails.
	ErrEncodeFailed = domain.ErrEncodeFailed
)

// File is one raw input to Ingest: an original filename plus the
// undecoded image bytes.
type File struct {
	Name    string
	Content []byte
}

// Frame is a read-only view of one registered frame.
type Frame struct {
	// ID is the stable identity used for Remove.
	ID string

	// Name is the original filename.
	Name string

	// Position is the frame's 0-based index in the current sort order.
	Position int

	// DisplayRef is a renderable reference for preview surfaces.
	DisplayRef string
}

// Dimensions is the canvas size shared by all frames in the session.
type Dimensions struct {
	Width  int
	Height int
}

// Status is a read-only snapshot of the current export run.
type Status struct {
	Generating bool
	Progress   int
	Message    string
}

// Idle reports whether no export is running and no status is displayed.
func (s Status) Idle() bool {
	return !s.Generating && s.Progress == 0 && s.Message == ""
}

// ExportResult describes a completed export.
type ExportResult struct {
	// Path is the location of the stored archive.
	Path string

	// Name is the archive filename.
	Name string

	// Frames is the number of frames packaged.
	Frames int

	// Bytes is the size of the archive blob.
	Bytes int
}

// Session is one editing session: the frame registry, the preview player,
// the export encoder, and the generation status, held behind a single
// owned instance rather than ambient state. All methods are safe for
// concurrent use.
type Session struct {
	config Config
	logger ports.Logger

	reg    *registry.Registry
	player *player.Player
	enc    *encoder.Encoder

	statusHandler func(Status)

	mu        sync.Mutex
	status    domain.Status
	idleTimer *time.Timer
}

// New creates a session with the given configuration.
// The session starts empty, with the player stopped and status idle.
func New(cfg Config, opts ...Option) (*Session, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.NewNoopLogger()
	}
	if o.prober == nil {
		o.prober = imgAdapter.NewProber()
	}
	if o.alloc == nil {
		o.alloc = mem.NewHandleAllocator()
	}
	if o.sink == nil {
		o.sink = fsAdapter.NewArchiveSink(cfg.OutputDir)
	}

	reg := registry.New(o.prober, o.alloc, o.logger)

	return &Session{
		config:        cfg,
		logger:        o.logger,
		reg:           reg,
		player:        player.New(reg, cfg.FPS, o.logger),
		enc:           encoder.New(o.sink, cfg.CompressionLevel, o.logger),
		statusHandler: o.statusHandler,
	}, nil
}

// Ingest merges a batch of files into the registry in natural name order.
// The first batch into an empty session probes the first file for the
// canvas dimensions; a probe failure discards the whole batch.
func (s *Session) Ingest(ctx context.Context, files []File) error {
	batch := make([]registry.File, 0, len(files))
	for _, f := range files {
		batch = append(batch, registry.File{Name: f.Name, Content: f.Content})
	}
	return s.reg.Ingest(ctx, batch)
}

// Remove deletes the frame with the given id and releases its display
// handle. Removing an unknown id is a no-op. When the last frame is
// removed, the canvas dimensions reset and the preview cursor clamps
// to zero.
func (s *Session) Remove(id string) {
	s.reg.Remove(id)
	if s.reg.Len() == 0 {
		s.player.Rewind()
	}
}

// Clear stops the player, releases every display handle, and empties the
// session. The player timer is torn down before the registry is mutated.
func (s *Session) Clear() {
	if err := s.player.Stop(); err != nil && !errors.Is(err, domain.ErrNotRunning) {
		s.logger.Warn("stop player on clear", ports.Err(err))
	}
	s.reg.Clear()
	s.player.Rewind()
}

// Frames returns the registered frames in their current sort order.
func (s *Session) Frames() []Frame {
	records := s.reg.Frames()
	out := make([]Frame, 0, len(records))
	for i, r := range records {
		f := Frame{ID: r.ID, Name: r.Name, Position: i}
		if r.Display != nil {
			f.DisplayRef = r.Display.Ref()
		}
		out = append(out, f)
	}
	return out
}

// Len returns the number of registered frames.
func (s *Session) Len() int {
	return s.reg.Len()
}

// CanvasDimensions returns the session's canvas size, zero when empty.
func (s *Session) CanvasDimensions() Dimensions {
	d := s.reg.Dimensions()
	return Dimensions{Width: d.Width, Height: d.Height}
}

// Duration returns the playback duration in seconds at the configured
// frame rate.
func (s *Session) Duration() float64 {
	return float64(s.reg.Len()) / float64(s.config.FPS)
}

// Play starts the preview player. Refused when the session is empty.
func (s *Session) Play(ctx context.Context) error {
	return s.player.Start(ctx)
}

// Pause stops the preview player.
func (s *Session) Pause() error {
	return s.player.Stop()
}

// SetRate changes the preview frame rate, taking effect on the next tick
// when running. The exported rate is fixed by Config.FPS.
func (s *Session) SetRate(fps int) error {
	return s.player.SetRate(fps)
}

// Cursor returns the current preview cursor.
func (s *Session) Cursor() int {
	return s.player.Cursor()
}

// Rewind resets the preview cursor to the first frame.
func (s *Session) Rewind() {
	s.player.Rewind()
}

// Playing reports whether the preview player is running.
func (s *Session) Playing() bool {
	return s.player.State() == player.StateRunning
}

// OnTick registers a callback invoked after every preview cursor advance.
func (s *Session) OnTick(fn func(cursor int)) {
	s.player.OnTick(fn)
}

// Status returns a snapshot of the current export status.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Status{
		Generating: s.status.Generating,
		Progress:   s.status.Progress,
		Message:    s.status.Message,
	}
}

// Export runs the archive encoder over the current registry.
//
// An empty session is a no-op: ErrEmptyRegistry is returned without any
// status change and no file is produced. A second export requested while
// one is running is rejected with ErrExportInProgress; overlapping runs
// are never started. On failure the status shows a failure message, no
// partial file is left behind, and the error is returned. In every
// terminal case the status fades back to idle after IdleResetDelay.
func (s *Session) Export(ctx context.Context) (*ExportResult, error) {
	if s.reg.Len() == 0 {
		return nil, domain.ErrEmptyRegistry
	}

	s.mu.Lock()
	if s.status.Generating {
		s.mu.Unlock()
		return nil, domain.ErrExportInProgress
	}
	if s.idleTimer != nil {
		s.idleTimer.Stop()
		s.idleTimer = nil
	}
	s.status = domain.Status{Generating: true}
	s.mu.Unlock()

	req := encoder.Request{
		Frames: s.reg.Frames(),
		Dims:   s.reg.Dimensions(),
		FPS:    s.config.FPS,
		Loop:   s.config.Loop,
		Progress: func(percent int, message string) {
			s.setStatus(domain.Status{Generating: true, Progress: percent, Message: message})
		},
	}

	res, err := s.enc.Encode(ctx, req)
	if err != nil {
		s.setStatus(domain.Status{Message: fmt.Sprintf("export failed: %v", err)})
		s.scheduleIdleReset()
		return nil, err
	}

	s.setStatus(domain.Status{Progress: 100, Message: "export complete"})
	s.scheduleIdleReset()

	return &ExportResult{
		Path:   res.Path,
		Name:   res.Name,
		Frames: res.Manifest.Params.Frames,
		Bytes:  res.Bytes,
	}, nil
}

// setStatus records a status snapshot and notifies the handler.
func (s *Session) setStatus(st domain.Status) {
	s.mu.Lock()
	s.status = st
	handler := s.statusHandler
	s.mu.Unlock()

	if handler != nil {
		handler(Status{Generating: st.Generating, Progress: st.Progress, Message: st.Message})
	}
}

// scheduleIdleReset fades the status back to idle after the configured
// delay. A new export cancels the pending reset.
func (s *Session) scheduleIdleReset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.idleTimer != nil {
		s.idleTimer.Stop()
	}
	s.idleTimer = time.AfterFunc(s.config.IdleResetDelay, func() {
		s.setStatus(domain.Status{})
	})
}
