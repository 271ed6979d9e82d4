// Package editor implements the local editing path: it ties a live
// project to its undo history and turns tool gestures into applied
// cell updates. One Editor serves one project and is driven by a
// single gesture at a time, so it needs no internal locking.
package editor

import (
	"errors"
	"fmt"

	"github.com/just-abdullah-dev/pixel-art/internal/engine"
	"github.com/just-abdullah-dev/pixel-art/internal/history"
	"github.com/just-abdullah-dev/pixel-art/internal/models"
)

var (
	ErrOutOfBounds     = errors.New("cell is outside the canvas")
	ErrLastLayer       = errors.New("a frame must keep at least one layer")
	ErrLastFrame       = errors.New("a project must keep at least one frame")
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrNoActiveStroke  = errors.New("no stroke in progress")
	ErrShortDuration   = fmt.Errorf("frame duration must be at least %dms", models.MinFrameDuration)
)

// Editor owns a project, its history, and the active tool state.
type Editor struct {
	project *models.Project
	history *history.History

	tool  engine.Tool
	color string

	// active gesture
	drawing       bool
	anchorX       int
	anchorY       int
	strokeTouched bool // a point tool changed something since the press
}

// New wraps a project in an editor. The history's first entry is the
// project as given.
func New(p *models.Project) *Editor {
	return &Editor{
		project: p,
		history: history.New(p),
		tool:    engine.ToolPencil,
		color:   "#000000",
	}
}

// Project returns the live project.
func (e *Editor) Project() *models.Project { return e.project }

// History exposes the underlying snapshot stack.
func (e *Editor) History() *history.History { return e.history }

// SetTool selects the active tool.
func (e *Editor) SetTool(t engine.Tool) { e.tool = t }

// SetColor selects the active color.
func (e *Editor) SetColor(c string) { e.color = c }

// Color returns the active color. The eyedropper updates it in place.
func (e *Editor) Color() string { return e.color }

// BeginStroke starts a gesture at the pressed cell and returns the
// updates it applied immediately. Point tools paint the first cell,
// the fill tool floods from the anchor, and the eyedropper picks the
// cell's color into the active color. Commit-on-release tools only
// remember the anchor here.
func (e *Editor) BeginStroke(x, y int) ([]engine.CellUpdate, error) {
	if !e.project.InBounds(x, y) {
		return nil, ErrOutOfBounds
	}
	e.drawing = true
	e.anchorX, e.anchorY = x, y
	e.strokeTouched = false

	switch e.tool {
	case engine.ToolPencil, engine.ToolEraser:
		updates := engine.PlotPoint(e.tool, x, y, e.color)
		e.applyToCurrentLayer(updates)
		e.strokeTouched = true
		return updates, nil
	case engine.ToolFill:
		updates := engine.FloodFill(e.project.CurrentLayer().Pixels, x, y, e.color)
		e.applyToCurrentLayer(updates)
		e.strokeTouched = len(updates) > 0
		return updates, nil
	case engine.ToolEyedropper:
		if c, ok := engine.PickColor(e.project.CurrentLayer().Pixels, x, y); ok {
			e.color = c
		}
		return nil, nil
	}
	return nil, nil
}

// MoveStroke reports an intermediate position while the input device
// is held down. Only point tools paint incrementally; everything else
// waits for release. Positions outside the grid are ignored.
func (e *Editor) MoveStroke(x, y int) ([]engine.CellUpdate, error) {
	if !e.drawing {
		return nil, ErrNoActiveStroke
	}
	if !e.project.InBounds(x, y) {
		return nil, nil
	}
	if e.tool != engine.ToolPencil && e.tool != engine.ToolEraser {
		return nil, nil
	}
	updates := engine.PlotPoint(e.tool, x, y, e.color)
	e.applyToCurrentLayer(updates)
	e.strokeTouched = true
	return updates, nil
}

// EndStroke finishes the gesture at the released cell. Commit-on-
// release tools compute and apply their full update set from the
// anchor and release positions; point-tool and fill gestures are
// coalesced into a single history entry here. Returns the updates
// applied at release time.
func (e *Editor) EndStroke(x, y int) ([]engine.CellUpdate, error) {
	if !e.drawing {
		return nil, ErrNoActiveStroke
	}
	e.drawing = false

	switch e.tool {
	case engine.ToolLine, engine.ToolRectangle, engine.ToolCircle:
		if !e.project.InBounds(x, y) {
			// Released off-canvas: the gesture is abandoned.
			return nil, nil
		}
		updates := engine.Stroke(e.project.CurrentLayer().Pixels, e.tool, e.anchorX, e.anchorY, x, y, e.color)
		e.applyToCurrentLayer(updates)
		if len(updates) > 0 {
			e.history.Record(e.project)
		}
		return updates, nil
	default:
		if e.strokeTouched {
			e.history.Record(e.project)
		}
		return nil, nil
	}
}

// ApplyRemotePixel applies a peer's pixel change to the named layer of
// the current frame. Remote edits bypass the local history: undo only
// ever reverts the local user's own actions.
func (e *Editor) ApplyRemotePixel(layerIndex, x, y int, color string) error {
	frame := e.project.CurrentFrame()
	if layerIndex < 0 || layerIndex >= len(frame.Layers) {
		return ErrIndexOutOfRange
	}
	if !e.project.InBounds(x, y) {
		return ErrOutOfBounds
	}
	updates := []engine.CellUpdate{{X: x, Y: y, Color: color}}
	frame.Layers[layerIndex] = engine.ApplyUpdates(frame.Layers[layerIndex], updates)
	return nil
}

// Undo reverts to the previous snapshot, reporting false when there is
// nothing to undo.
func (e *Editor) Undo() bool {
	p, ok := e.history.Undo()
	if !ok {
		return false
	}
	e.project = p
	return true
}

// Redo re-applies the next snapshot, reporting false when there is
// nothing to redo.
func (e *Editor) Redo() bool {
	p, ok := e.history.Redo()
	if !ok {
		return false
	}
	e.project = p
	return true
}

// AddLayer appends an empty layer on top of the current frame's stack
// and selects it.
func (e *Editor) AddLayer() {
	frame := e.project.CurrentFrame()
	name := fmt.Sprintf("Layer %d", len(frame.Layers)+1)
	frame.Layers = append(frame.Layers, models.NewLayer(e.project.Width, e.project.Height, name))
	e.project.CurrentLayerIndex = len(frame.Layers) - 1
	e.history.Record(e.project)
}

// DeleteLayer removes the layer at index from the current frame. The
// last remaining layer cannot be deleted.
func (e *Editor) DeleteLayer(index int) error {
	frame := e.project.CurrentFrame()
	if index < 0 || index >= len(frame.Layers) {
		return ErrIndexOutOfRange
	}
	if len(frame.Layers) == 1 {
		return ErrLastLayer
	}
	frame.Layers = append(frame.Layers[:index], frame.Layers[index+1:]...)
	if e.project.CurrentLayerIndex > len(frame.Layers)-1 {
		e.project.CurrentLayerIndex = len(frame.Layers) - 1
	}
	e.history.Record(e.project)
	return nil
}

// AddFrame appends a new single-layer frame and selects it.
func (e *Editor) AddFrame() {
	e.project.Frames = append(e.project.Frames, models.NewFrame(e.project.Width, e.project.Height))
	e.project.CurrentFrameIndex = len(e.project.Frames) - 1
	e.project.CurrentLayerIndex = 0
	e.history.Record(e.project)
}

// DeleteFrame removes the frame at index. The last remaining frame
// cannot be deleted.
func (e *Editor) DeleteFrame(index int) error {
	if index < 0 || index >= len(e.project.Frames) {
		return ErrIndexOutOfRange
	}
	if len(e.project.Frames) == 1 {
		return ErrLastFrame
	}
	e.project.Frames = append(e.project.Frames[:index], e.project.Frames[index+1:]...)
	if e.project.CurrentFrameIndex > len(e.project.Frames)-1 {
		e.project.CurrentFrameIndex = len(e.project.Frames) - 1
	}
	e.clampLayerIndex()
	e.history.Record(e.project)
	return nil
}

// SelectFrame moves the frame cursor. Navigation is not recorded in
// the history.
func (e *Editor) SelectFrame(index int) error {
	if index < 0 || index >= len(e.project.Frames) {
		return ErrIndexOutOfRange
	}
	e.project.CurrentFrameIndex = index
	e.clampLayerIndex()
	return nil
}

// SelectLayer moves the layer cursor within the current frame.
func (e *Editor) SelectLayer(index int) error {
	if index < 0 || index >= len(e.project.CurrentFrame().Layers) {
		return ErrIndexOutOfRange
	}
	e.project.CurrentLayerIndex = index
	return nil
}

// RenameLayer sets the display name of a layer in the current frame.
func (e *Editor) RenameLayer(index int, name string) error {
	frame := e.project.CurrentFrame()
	if index < 0 || index >= len(frame.Layers) {
		return ErrIndexOutOfRange
	}
	frame.Layers[index].Name = name
	e.history.Record(e.project)
	return nil
}

// SetLayerVisible toggles a layer's visibility.
func (e *Editor) SetLayerVisible(index int, visible bool) error {
	frame := e.project.CurrentFrame()
	if index < 0 || index >= len(frame.Layers) {
		return ErrIndexOutOfRange
	}
	frame.Layers[index].Visible = visible
	e.history.Record(e.project)
	return nil
}

// SetLayerOpacity sets a layer's opacity, clamped to [0, 1].
func (e *Editor) SetLayerOpacity(index int, opacity float64) error {
	frame := e.project.CurrentFrame()
	if index < 0 || index >= len(frame.Layers) {
		return ErrIndexOutOfRange
	}
	frame.Layers[index].Opacity = models.ClampOpacity(opacity)
	e.history.Record(e.project)
	return nil
}

// SetFrameDuration sets a frame's playback duration in milliseconds.
func (e *Editor) SetFrameDuration(index, duration int) error {
	if index < 0 || index >= len(e.project.Frames) {
		return ErrIndexOutOfRange
	}
	if duration < models.MinFrameDuration {
		return ErrShortDuration
	}
	e.project.Frames[index].Duration = duration
	e.history.Record(e.project)
	return nil
}

func (e *Editor) applyToCurrentLayer(updates []engine.CellUpdate) {
	if len(updates) == 0 {
		return
	}
	frame := e.project.CurrentFrame()
	i := e.project.CurrentLayerIndex
	frame.Layers[i] = engine.ApplyUpdates(frame.Layers[i], updates)
}

func (e *Editor) clampLayerIndex() {
	max := len(e.project.CurrentFrame().Layers) - 1
	if e.project.CurrentLayerIndex > max {
		e.project.CurrentLayerIndex = max
	}
}
