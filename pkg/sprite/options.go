package sprite

import (
	"github.com/animforge/animforge/internal/ports"
	"github.com/animforge/animforge/pkg/log"
)

// Logger is the structured logging interface accepted by WithLogger.
type Logger = log.Logger

// Option configures optional behavior of a Session.
type Option func(*options)

// options holds the optional configuration for a Session.
type options struct {
	logger        ports.Logger
	prober        ports.Prober
	alloc         ports.HandleAllocator
	sink          ports.ArchiveSink
	statusHandler func(Status)
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithProber sets a custom dimension prober.
// If not provided, the stdlib image decoder is used.
func WithProber(p ports.Prober) Option {
	return func(o *options) {
		o.prober = p
	}
}

// WithHandleAllocator sets a custom display-handle allocator.
// If not provided, handles are allocated in memory.
func WithHandleAllocator(a ports.HandleAllocator) Option {
	return func(o *options) {
		o.alloc = a
	}
}

// WithArchiveSink sets a custom destination for exported archives.
// If not provided, archives are written to Config.OutputDir.
func WithArchiveSink(s ports.ArchiveSink) Option {
	return func(o *options) {
		o.sink = s
	}
}

// WithStatusHandler sets a handler invoked after every status change
// during an export run. The handler is called synchronously from the
// exporting goroutine.
func WithStatusHandler(fn func(Status)) Option {
	return func(o *options) {
		o.statusHandler = fn
	}
}
