// Package player implements the preview playback scheduler: a two-state
// machine driving a cursor through the frame registry at a configurable
// rate. It is used only for interactive preview and is independent of
// export.
package player

import (
	"context"
	"sync"
	"time"

	"github.com/animforge/animforge/internal/domain"
	"github.com/animforge/animforge/internal/ports"
	"github.com/animforge/animforge/internal/registry"
)

// State represents the playback state of the player.
type State int

const (
	StateStopped State = iota
	StateRunning
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StateRunning:
		return "Running"
	default:
		return "Unknown"
	}
}

// Player advances a preview cursor through the registry at the configured
// frame rate. All methods are safe for concurrent use.
type Player struct {
	reg    *registry.Registry
	logger ports.Logger

	mu     sync.Mutex
	state  State
	cursor int
	fps    int
	onTick func(cursor int)
	rateCh chan time.Duration
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a stopped player over the given registry.
func New(reg *registry.Registry, fps int, logger ports.Logger) *Player {
	return &Player{
		reg:    reg,
		fps:    fps,
		logger: logger,
	}
}

// OnTick registers a callback invoked after every cursor advance with the
// new cursor position. Must be set before Start.
func (p *Player) OnTick(fn func(cursor int)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onTick = fn
}

// Start transitions Stopped to Running. It refuses to start over an empty
// registry and when already running.
func (p *Player) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == StateRunning {
		return domain.ErrAlreadyRunning
	}
	if p.reg.Len() == 0 {
		return domain.ErrEmptyRegistry
	}

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.rateCh = make(chan time.Duration, 1)
	p.state = StateRunning

	p.wg.Add(1)
	go p.run(runCtx, interval(p.fps), p.rateCh)

	p.logger.Debug("player started", ports.Int("fps", p.fps))
	return nil
}

// Stop transitions Running to Stopped and cancels the timer. The timer is
// fully torn down before Stop returns, so callers may mutate the registry
// destructively afterwards without a dangling tick observing stale state.
func (p *Player) Stop() error {
	p.mu.Lock()
	if p.state != StateRunning {
		p.mu.Unlock()
		return domain.ErrNotRunning
	}
	p.state = StateStopped
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()

	cancel()
	p.wg.Wait()

	p.logger.Debug("player stopped")
	return nil
}

// SetRate changes the frame rate. While running, the timer is recreated
// with the new period on the next scheduling opportunity; no stop/start
// cycle is required.
func (p *Player) SetRate(fps int) error {
	if fps < 1 || fps > 60 {
		return domain.ErrInvalidConfig
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.fps = fps
	if p.state != StateRunning {
		return nil
	}

	// Replace any pending rate change rather than queueing behind it.
	select {
	case <-p.rateCh:
	default:
	}
	p.rateCh <- interval(fps)
	return nil
}

// State returns the current playback state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Cursor returns the current preview cursor.
func (p *Player) Cursor() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cursor
}

// Rewind resets the preview cursor to the first frame.
func (p *Player) Rewind() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cursor = 0
}

// run is the timer loop. It owns the ticker and exits when ctx is canceled.
func (p *Player) run(ctx context.Context, period time.Duration, rateCh <-chan time.Duration) {
	defer p.wg.Done()

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case d := <-rateCh:
			ticker.Stop()
			ticker = time.NewTicker(d)
		case <-ticker.C:
			p.advance()
		}
	}
}

// advance moves the cursor one frame forward, wrapping past the last
// frame. A registry emptied mid-run clamps the cursor to zero.
func (p *Player) advance() {
	n := p.reg.Len()

	p.mu.Lock()
	if n == 0 {
		p.cursor = 0
		p.mu.Unlock()
		return
	}
	p.cursor = (p.cursor + 1) % n
	cursor := p.cursor
	onTick := p.onTick
	p.mu.Unlock()

	if onTick != nil {
		onTick(cursor)
	}
}

// interval converts a frame rate to the timer period.
func interval(fps int) time.Duration {
	return time.Second / time.Duration(fps)
}
