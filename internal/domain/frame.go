package domain

// Frame represents a single still image in the animation sequence.
// A frame is the atomic unit ingested into the registry and written
// into the exported archive.
type Frame struct {
	// ID is an opaque unique token assigned at ingestion time.
	// It is the stable identity used for removal.
	ID string

	// Name is the original filename. It is used only as the sort key.
	Name string

	// Content holds the raw bytes of the source image. The registry owns
	// these bytes exclusively until archive assembly.
	Content []byte

	// Display is the revocable handle used for on-screen rendering.
	// It must be released when the frame leaves the registry.
	Display DisplayHandle
}

// DisplayHandle is a transient resource usable for preview rendering.
// The registry owns each handle until the frame is removed or the
// registry is cleared, at which point Release must be called.
type DisplayHandle interface {
	// Ref returns a renderable reference, such as a file path or URL.
	Ref() string

	// Release frees the underlying resource. Safe to call once.
	Release() error
}

// Dimensions is the pixel size shared by every frame in one session.
// It is set from the first ingested frame and reset to zero exactly
// when the registry becomes empty.
type Dimensions struct {
	Width  int
	Height int
}

// Zero reports whether no dimensions have been established.
func (d Dimensions) Zero() bool {
	return d.Width == 0 && d.Height == 0
}
