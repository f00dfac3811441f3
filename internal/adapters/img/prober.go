// Package img implements the dimension prober using the standard library
// image decoders. PNG, JPEG, and GIF are registered; only the header is
// decoded, never the full pixel data.
package img

import (
	"bytes"
	"context"
	"fmt"
	"image"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/animforge/animforge/internal/domain"
)

// Prober implements ports.Prober with image.DecodeConfig.
type Prober struct{}

// NewProber creates a new stdlib-backed prober.
func NewProber() *Prober {
	return &Prober{}
}

// Probe decodes the image header in content and returns its dimensions.
func (p *Prober) Probe(ctx context.Context, content []byte) (domain.Dimensions, error) {
	if err := ctx.Err(); err != nil {
		return domain.Dimensions{}, err
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(content))
	if err != nil {
		return domain.Dimensions{}, fmt.Errorf("%w: %v", domain.ErrProbeFailed, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return domain.Dimensions{}, fmt.Errorf("%w: %s image has empty bounds", domain.ErrProbeFailed, format)
	}

	return domain.Dimensions{Width: cfg.Width, Height: cfg.Height}, nil
}
