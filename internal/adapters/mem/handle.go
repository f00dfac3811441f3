// Package mem provides in-memory implementations of the display-handle
// port. It is the default allocator for library sessions and the fake
// used by tests that assert handle lifecycle.
package mem

import (
	"sync"

	"github.com/animforge/animforge/internal/domain"
)

// HandleAllocator implements ports.HandleAllocator without touching the
// file system. Each handle holds its reference string only; Release is
// tracked so ownership bugs surface in tests.
type HandleAllocator struct {
	mu        sync.Mutex
	allocated int
	released  int
}

// NewHandleAllocator creates a new in-memory allocator.
func NewHandleAllocator() *HandleAllocator {
	return &HandleAllocator{}
}

// Allocate creates a handle whose reference names the frame.
func (a *HandleAllocator) Allocate(name string, content []byte) (domain.DisplayHandle, error) {
	a.mu.Lock()
	a.allocated++
	a.mu.Unlock()
	return &handle{alloc: a, ref: "mem://" + name}, nil
}

// Live returns the number of handles allocated and not yet released.
func (a *HandleAllocator) Live() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.allocated - a.released
}

type handle struct {
	alloc *HandleAllocator
	ref   string

	once sync.Once
}

func (h *handle) Ref() string {
	return h.ref
}

func (h *handle) Release() error {
	h.once.Do(func() {
		h.alloc.mu.Lock()
		h.alloc.released++
		h.alloc.mu.Unlock()
	})
	return nil
}
