// Package export renders stored projects to standard image formats.
package export

import (
	"fmt"
	"image/png"
	"io"

	"github.com/just-abdullah-dev/pixel-art/internal/engine"
	"github.com/just-abdullah-dev/pixel-art/internal/models"
)

// PNG flattens one frame of the project and writes it as a PNG. The
// frame's layers go through the same compositor as interactive
// rendering, so the exported image matches the on-screen canvas
// exactly.
func PNG(w io.Writer, p *models.Project, frameIndex int) error {
	if frameIndex < 0 || frameIndex >= len(p.Frames) {
		return fmt.Errorf("frame index %d out of range (project has %d frames)", frameIndex, len(p.Frames))
	}
	img := engine.Flatten(p.Frames[frameIndex].Layers, p.Width, p.Height)
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// CurrentFramePNG exports the frame the project's editing cursor is on.
func CurrentFramePNG(w io.Writer, p *models.Project) error {
	return PNG(w, p, p.CurrentFrameIndex)
}
