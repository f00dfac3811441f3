package fs

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/animforge/animforge/internal/domain"
)

// HandleAllocator implements ports.HandleAllocator by materializing each
// frame into a preview file. The handle reference is the file path;
// Release deletes the file.
type HandleAllocator struct {
	dir string

	mu  sync.Mutex
	seq int
}

// NewHandleAllocator creates an allocator writing preview files under dir.
func NewHandleAllocator(dir string) *HandleAllocator {
	return &HandleAllocator{dir: dir}
}

// Allocate writes content to a preview file and returns its handle.
func (a *HandleAllocator) Allocate(name string, content []byte) (domain.DisplayHandle, error) {
	if err := os.MkdirAll(a.dir, 0o700); err != nil {
		return nil, err
	}

	a.mu.Lock()
	a.seq++
	n := a.seq
	a.mu.Unlock()

	// Sequence prefix keeps paths unique when the same filename is
	// ingested twice.
	path := filepath.Join(a.dir, fmt.Sprintf("preview-%d-%s", n, filepath.Base(name)))
	if err := os.WriteFile(path, content, 0o600); err != nil {
		return nil, err
	}

	return &fileHandle{path: path}, nil
}

type fileHandle struct {
	path string
	once sync.Once
	err  error
}

func (h *fileHandle) Ref() string {
	return h.path
}

func (h *fileHandle) Release() error {
	h.once.Do(func() {
		if err := os.Remove(h.path); err != nil && !os.IsNotExist(err) {
			h.err = err
		}
	})
	return h.err
}
