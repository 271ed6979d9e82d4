package models

import (
	"fmt"

	"github.com/google/uuid"
)

// Transparent is the sentinel color for an empty pixel. A cell holding
// this value contributes nothing when layers are flattened.
const Transparent = "transparent"

// Frame durations are in milliseconds. The timeline refuses anything
// shorter than MinFrameDuration.
const (
	MinFrameDuration     = 50
	DefaultFrameDuration = 100
)

// Pixel is a single cell of a layer grid: a color string such as
// "#ff0000", or Transparent.
type Pixel struct {
	Color string `json:"color"`
}

// Layer is one paintable grid of a frame. Pixels is row-major
// ([y][x]) and its dimensions always equal the owning project's
// width and height.
type Layer struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Pixels  [][]Pixel `json:"pixels"`
	Visible bool      `json:"visible"`
	Opacity float64   `json:"opacity"`
}

// Frame is an ordered stack of layers (bottom to top paint order)
// shown for Duration milliseconds during playback.
type Frame struct {
	ID       string  `json:"id"`
	Layers   []Layer `json:"layers"`
	Duration int     `json:"duration"`
}

// Project is the full document: fixed dimensions, at least one frame,
// and the editing cursors into the frame/layer lists. ID is empty
// until the project has been persisted.
type Project struct {
	ID                string  `json:"id,omitempty"`
	Name              string  `json:"name"`
	Width             int     `json:"width"`
	Height            int     `json:"height"`
	Frames            []Frame `json:"frames"`
	CurrentFrameIndex int     `json:"currentFrameIndex"`
	CurrentLayerIndex int     `json:"currentLayerIndex"`
}

// ProjectSummary is the listing view of a stored project, without the
// pixel data.
type ProjectSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
}

// NewEmptyPixels builds a height×width grid of transparent pixels.
func NewEmptyPixels(width, height int) [][]Pixel {
	pixels := make([][]Pixel, height)
	for y := range pixels {
		row := make([]Pixel, width)
		for x := range row {
			row[x] = Pixel{Color: Transparent}
		}
		pixels[y] = row
	}
	return pixels
}

// NewLayer creates a fully transparent, visible layer at full opacity.
func NewLayer(width, height int, name string) Layer {
	return Layer{
		ID:      uuid.NewString(),
		Name:    name,
		Pixels:  NewEmptyPixels(width, height),
		Visible: true,
		Opacity: 1,
	}
}

// NewFrame creates a frame holding a single empty layer.
func NewFrame(width, height int) Frame {
	return Frame{
		ID:       uuid.NewString(),
		Layers:   []Layer{NewLayer(width, height, "Layer 1")},
		Duration: DefaultFrameDuration,
	}
}

// NewProject creates an unsaved project with one frame and one layer.
func NewProject(name string, width, height int) *Project {
	return &Project{
		Name:              name,
		Width:             width,
		Height:            height,
		Frames:            []Frame{NewFrame(width, height)},
		CurrentFrameIndex: 0,
		CurrentLayerIndex: 0,
	}
}

// ClampOpacity forces an opacity value into [0, 1].
func ClampOpacity(opacity float64) float64 {
	if opacity < 0 {
		return 0
	}
	if opacity > 1 {
		return 1
	}
	return opacity
}

// CurrentFrame returns a pointer to the frame the editing cursor is on.
func (p *Project) CurrentFrame() *Frame {
	return &p.Frames[p.CurrentFrameIndex]
}

// CurrentLayer returns a pointer to the layer the editing cursor is on.
func (p *Project) CurrentLayer() *Layer {
	return &p.Frames[p.CurrentFrameIndex].Layers[p.CurrentLayerIndex]
}

// InBounds reports whether a cell coordinate lies inside the project
// grid.
func (p *Project) InBounds(x, y int) bool {
	return x >= 0 && x < p.Width && y >= 0 && y < p.Height
}

// Validate checks the structural invariants of an inbound project
// document: positive dimensions, at least one frame, at least one
// layer per frame, every layer grid matching the project dimensions,
// valid frame durations, and editing cursors that point at existing
// entries. Opacity is clamped rather than rejected.
func (p *Project) Validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("invalid dimensions %dx%d", p.Width, p.Height)
	}
	if len(p.Frames) == 0 {
		return fmt.Errorf("project must have at least one frame")
	}
	for fi := range p.Frames {
		frame := &p.Frames[fi]
		if len(frame.Layers) == 0 {
			return fmt.Errorf("frame %d must have at least one layer", fi)
		}
		if frame.Duration < MinFrameDuration {
			return fmt.Errorf("frame %d duration %dms is below the %dms minimum", fi, frame.Duration, MinFrameDuration)
		}
		for li := range frame.Layers {
			layer := &frame.Layers[li]
			if len(layer.Pixels) != p.Height {
				return fmt.Errorf("frame %d layer %d has %d rows, want %d", fi, li, len(layer.Pixels), p.Height)
			}
			for y, row := range layer.Pixels {
				if len(row) != p.Width {
					return fmt.Errorf("frame %d layer %d row %d has %d cells, want %d", fi, li, y, len(row), p.Width)
				}
			}
			layer.Opacity = ClampOpacity(layer.Opacity)
		}
	}
	if p.CurrentFrameIndex < 0 || p.CurrentFrameIndex >= len(p.Frames) {
		return fmt.Errorf("current frame index %d out of range", p.CurrentFrameIndex)
	}
	if p.CurrentLayerIndex < 0 || p.CurrentLayerIndex >= len(p.Frames[p.CurrentFrameIndex].Layers) {
		return fmt.Errorf("current layer index %d out of range", p.CurrentLayerIndex)
	}
	return nil
}

// Clone returns a snapshot of the project sharing pixel row storage
// with the original. Rows are treated as immutable values: every pixel
// mutation goes through engine.ApplyUpdates, which copies a row before
// writing to it, so a clone is never changed by later edits. Cloning
// is O(frames + layers + rows), not O(pixels).
func (p *Project) Clone() *Project {
	cp := *p
	cp.Frames = make([]Frame, len(p.Frames))
	for i, frame := range p.Frames {
		cf := frame
		cf.Layers = make([]Layer, len(frame.Layers))
		for j, layer := range frame.Layers {
			cl := layer
			cl.Pixels = make([][]Pixel, len(layer.Pixels))
			copy(cl.Pixels, layer.Pixels)
			cf.Layers[j] = cl
		}
		cp.Frames[i] = cf
	}
	return &cp
}
