// Package ports defines the interfaces (ports) that connect the
// application layer to infrastructure adapters.
//
// In Clean Architecture / Hexagonal Architecture, ports are the boundaries
// between the application core and the outside world. They define what the
// application needs from external systems without specifying how those
// needs are fulfilled.
//
// # Port Interfaces
//
//   - [Prober]: Decodes an image header to obtain canvas dimensions
//   - [HandleAllocator]: Creates revocable display handles for preview
//   - [ArchiveSink]: Persists a finished archive blob
//   - [Logger]: Structured logging abstraction
//
// # Usage
//
// The application layer (registry, player, encoder) depends only on these
// interfaces. Infrastructure adapters (internal/adapters) implement them
// with concrete implementations (stdlib image decoders, the file system,
// in-memory fakes for tests).
package ports
