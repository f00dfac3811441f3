package ports

import "context"

// ArchiveSink persists a finished archive blob under the given filename.
// Implementations must write atomically: on error no partial file may be
// left behind for the caller to offer as a download.
type ArchiveSink interface {
	// Store writes blob under name and returns the full path of the
	// stored archive.
	Store(ctx context.Context, name string, blob []byte) (string, error)
}
