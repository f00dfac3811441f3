package ports

import (
	"context"

	"github.com/animforge/animforge/internal/domain"
)

// Prober infers the pixel dimensions of an image from its raw bytes.
// Implementations decode only the header, not the full pixel data.
// The probe runs once per session, on the first frame of the first
// ingested batch; its result becomes the canvas size for every frame.
type Prober interface {
	// Probe returns the dimensions of the image encoded in content.
	// Returns an error wrapping domain.ErrProbeFailed if the bytes are
	// not a decodable image.
	Probe(ctx context.Context, content []byte) (domain.Dimensions, error)
}
