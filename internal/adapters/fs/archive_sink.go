// Package fs implements the file-system adapters: preview display
// handles backed by temp files and an atomic archive sink.
package fs

import (
	"context"
	"os"
	"path/filepath"
)

// ArchiveSink implements ports.ArchiveSink using an output directory.
type ArchiveSink struct {
	dir string
}

// NewArchiveSink creates a sink storing archives under dir.
func NewArchiveSink(dir string) *ArchiveSink {
	return &ArchiveSink{dir: dir}
}

// Store writes blob atomically under name and returns the stored path.
// Uses atomic write (write to temp file, then rename) so a failed export
// never leaves a partial archive behind.
func (s *ArchiveSink) Store(ctx context.Context, name string, blob []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"

	if err := os.WriteFile(tmp, blob, 0o600); err != nil {
		return "", err
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", err
	}

	return path, nil
}
