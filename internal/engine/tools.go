package engine

import (
	"math"

	"github.com/just-abdullah-dev/pixel-art/internal/models"
)

// Tool identifies a drawing tool. The zero value is not a valid tool.
type Tool string

const (
	ToolPencil     Tool = "pencil"
	ToolEraser     Tool = "eraser"
	ToolFill       Tool = "fill"
	ToolEyedropper Tool = "eyedropper"
	ToolLine       Tool = "line"
	ToolRectangle  Tool = "rectangle"
	ToolCircle     Tool = "circle"
)

// CellUpdate is one cell write produced by a tool. Updates describe a
// change; they are applied separately (see ApplyUpdates) so the same
// set can drive the local grid, the history, and the wire.
type CellUpdate struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Color string `json:"color"`
}

// PlotPoint computes the single-cell update for a point tool. The
// eraser always writes the transparent sentinel regardless of the
// active color.
func PlotPoint(tool Tool, x, y int, color string) []CellUpdate {
	if tool == ToolEraser {
		color = models.Transparent
	}
	return []CellUpdate{{X: x, Y: y, Color: color}}
}

// PickColor reads the color under the eyedropper. It reports false for
// out-of-range or transparent cells, which callers treat as a no-op.
func PickColor(pixels [][]models.Pixel, x, y int) (string, bool) {
	if y < 0 || y >= len(pixels) || x < 0 || x >= len(pixels[y]) {
		return "", false
	}
	c := pixels[y][x].Color
	if c == "" || c == models.Transparent {
		return "", false
	}
	return c, true
}

// FloodFill computes the updates for a 4-connected fill anchored at
// (x, y). The capture color is whatever the anchor holds at call time;
// filling a region with its own color is a no-op. The traversal is an
// explicit stack with a visited set, so depth is bounded by the region
// size and never by the call stack.
func FloodFill(pixels [][]models.Pixel, x, y int, fillColor string) []CellUpdate {
	height := len(pixels)
	if height == 0 {
		return nil
	}
	width := len(pixels[0])
	if x < 0 || x >= width || y < 0 || y >= height {
		return nil
	}

	capture := pixels[y][x].Color
	if capture == "" {
		capture = models.Transparent
	}
	if capture == fillColor {
		return nil
	}

	type cell struct{ x, y int }
	stack := []cell{{x, y}}
	visited := make(map[cell]bool)
	var updates []CellUpdate

	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited[c] {
			continue
		}
		if c.x < 0 || c.x >= width || c.y < 0 || c.y >= height {
			continue
		}
		current := pixels[c.y][c.x].Color
		if current == "" {
			current = models.Transparent
		}
		if current != capture {
			continue
		}

		visited[c] = true
		updates = append(updates, CellUpdate{X: c.x, Y: c.y, Color: fillColor})

		stack = append(stack,
			cell{c.x + 1, c.y},
			cell{c.x - 1, c.y},
			cell{c.x, c.y + 1},
			cell{c.x, c.y - 1},
		)
	}
	return updates
}

// Line computes Bresenham's line from (x0, y0) to (x1, y1), both
// endpoints included. The error term starts at dx-dy so the discrete
// cell set is reproducible bit-for-bit.
func Line(x0, y0, x1, y1 int, color string) []CellUpdate {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	sx := 1
	if x0 >= x1 {
		sx = -1
	}
	sy := 1
	if y0 >= y1 {
		sy = -1
	}
	err := dx - dy

	x, y := x0, y0
	var updates []CellUpdate
	for {
		updates = append(updates, CellUpdate{X: x, Y: y, Color: color})
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
	return updates
}

// Rectangle computes the border of the axis-aligned bounding box of
// the two corners, inclusive. The interior is untouched.
func Rectangle(x0, y0, x1, y1 int, color string) []CellUpdate {
	minX, maxX := minMax(x0, x1)
	minY, maxY := minMax(y0, y1)

	var updates []CellUpdate
	for x := minX; x <= maxX; x++ {
		updates = append(updates, CellUpdate{X: x, Y: minY, Color: color})
		updates = append(updates, CellUpdate{X: x, Y: maxY, Color: color})
	}
	for y := minY; y <= maxY; y++ {
		updates = append(updates, CellUpdate{X: minX, Y: y, Color: color})
		updates = append(updates, CellUpdate{X: maxX, Y: y, Color: color})
	}
	return updates
}

// Circle computes the midpoint circle centered on the anchor with
// radius equal to the rounded distance to the release cell, plotted
// through the eight octant reflections. Cells may repeat where octants
// meet; applying updates is idempotent so repeats are harmless.
func Circle(x0, y0, x1, y1 int, color string) []CellUpdate {
	fdx := float64(x1 - x0)
	fdy := float64(y1 - y0)
	radius := int(math.Round(math.Sqrt(fdx*fdx + fdy*fdy)))

	x := radius
	y := 0
	err := 0

	var updates []CellUpdate
	for x >= y {
		updates = append(updates,
			CellUpdate{X: x0 + x, Y: y0 + y, Color: color},
			CellUpdate{X: x0 + y, Y: y0 + x, Color: color},
			CellUpdate{X: x0 - y, Y: y0 + x, Color: color},
			CellUpdate{X: x0 - x, Y: y0 + y, Color: color},
			CellUpdate{X: x0 - x, Y: y0 - y, Color: color},
			CellUpdate{X: x0 - y, Y: y0 - x, Color: color},
			CellUpdate{X: x0 + y, Y: y0 - x, Color: color},
			CellUpdate{X: x0 + x, Y: y0 - y, Color: color},
		)
		if err <= 0 {
			y++
			err += 2*y + 1
		}
		if err > 0 {
			x--
			err -= 2*x + 1
		}
	}
	return updates
}

// Stroke computes the full update set for a committed gesture from the
// anchor (x0, y0) to the release cell (x1, y1). Point tools resolve to
// the release cell only; callers feed intermediate positions through
// PlotPoint while the gesture is active. The eyedropper produces no
// updates (see PickColor).
func Stroke(pixels [][]models.Pixel, tool Tool, x0, y0, x1, y1 int, color string) []CellUpdate {
	switch tool {
	case ToolPencil, ToolEraser:
		return PlotPoint(tool, x1, y1, color)
	case ToolFill:
		return FloodFill(pixels, x0, y0, color)
	case ToolLine:
		return Line(x0, y0, x1, y1, color)
	case ToolRectangle:
		return Rectangle(x0, y0, x1, y1, color)
	case ToolCircle:
		return Circle(x0, y0, x1, y1, color)
	}
	return nil
}

// ApplyUpdates writes a set of cell updates onto a layer and returns
// the resulting layer. The input layer is never modified: the outer
// pixel slice is copied and each touched row is copied before its
// first write, so any snapshot sharing rows with the input stays
// intact. Out-of-bounds updates are skipped.
func ApplyUpdates(layer models.Layer, updates []CellUpdate) models.Layer {
	if len(updates) == 0 {
		return layer
	}

	out := layer
	out.Pixels = make([][]models.Pixel, len(layer.Pixels))
	copy(out.Pixels, layer.Pixels)

	copied := make(map[int]bool)
	for _, u := range updates {
		if u.Y < 0 || u.Y >= len(out.Pixels) {
			continue
		}
		row := out.Pixels[u.Y]
		if u.X < 0 || u.X >= len(row) {
			continue
		}
		if !copied[u.Y] {
			fresh := make([]models.Pixel, len(row))
			copy(fresh, row)
			out.Pixels[u.Y] = fresh
			copied[u.Y] = true
		}
		out.Pixels[u.Y][u.X] = models.Pixel{Color: u.Color}
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func minMax(a, b int) (int, int) {
	if a < b {
		return a, b
	}
	return b, a
}
