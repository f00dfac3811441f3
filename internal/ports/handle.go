package ports

import "github.com/animforge/animforge/internal/domain"

// HandleAllocator creates display handles for ingested frames.
// The registry owns each handle it allocates and releases it when the
// frame is removed or the registry is cleared.
type HandleAllocator interface {
	// Allocate creates a display handle for the given frame content.
	// name is the original filename, used for diagnostics only.
	Allocate(name string, content []byte) (domain.DisplayHandle, error)
}
