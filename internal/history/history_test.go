package history_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/just-abdullah-dev/pixel-art/internal/engine"
	"github.com/just-abdullah-dev/pixel-art/internal/history"
	"github.com/just-abdullah-dev/pixel-art/internal/models"
)

func paintedProject(t *testing.T, color string) *models.Project {
	t.Helper()
	p := models.NewProject("test", 4, 4)
	layer := p.CurrentLayer()
	*layer = engine.ApplyUpdates(*layer, []engine.CellUpdate{{X: 0, Y: 0, Color: color}})
	return p
}

func TestUndoRestoresPriorState(t *testing.T) {
	p := models.NewProject("test", 4, 4)
	h := history.New(p)

	layer := p.CurrentLayer()
	*layer = engine.ApplyUpdates(*layer, []engine.CellUpdate{{X: 1, Y: 1, Color: "#ff0000"}})
	h.Record(p)

	restored, ok := h.Undo()
	require.True(t, ok)
	require.Equal(t, models.Transparent, restored.CurrentLayer().Pixels[1][1].Color)
}

func TestRedoRestoresRecordedState(t *testing.T) {
	p := models.NewProject("test", 4, 4)
	h := history.New(p)

	layer := p.CurrentLayer()
	*layer = engine.ApplyUpdates(*layer, []engine.CellUpdate{{X: 1, Y: 1, Color: "#ff0000"}})
	h.Record(p)

	_, ok := h.Undo()
	require.True(t, ok)

	redone, ok := h.Redo()
	require.True(t, ok)
	require.Equal(t, "#ff0000", redone.CurrentLayer().Pixels[1][1].Color)
}

func TestUndoAtBoundaryIsNoop(t *testing.T) {
	h := history.New(models.NewProject("test", 2, 2))
	_, ok := h.Undo()
	require.False(t, ok)
	require.False(t, h.CanUndo())
}

func TestRedoAtBoundaryIsNoop(t *testing.T) {
	h := history.New(models.NewProject("test", 2, 2))
	_, ok := h.Redo()
	require.False(t, ok)
	require.False(t, h.CanRedo())
}

func TestRecordAfterUndoDiscardsRedoTail(t *testing.T) {
	p := models.NewProject("test", 4, 4)
	h := history.New(p)

	h.Record(paintedProject(t, "#111111"))
	h.Record(paintedProject(t, "#222222"))

	_, ok := h.Undo()
	require.True(t, ok)
	require.True(t, h.CanRedo())

	h.Record(paintedProject(t, "#333333"))
	require.False(t, h.CanRedo(), "recording truncates the redo tail")

	restored, ok := h.Undo()
	require.True(t, ok)
	require.Equal(t, "#111111", restored.CurrentLayer().Pixels[0][0].Color)
}

func TestSnapshotsAreIsolatedFromLaterEdits(t *testing.T) {
	p := models.NewProject("test", 4, 4)
	h := history.New(p)

	// Mutate the live project after recording; the snapshot must not see it.
	layer := p.CurrentLayer()
	*layer = engine.ApplyUpdates(*layer, []engine.CellUpdate{{X: 2, Y: 2, Color: "#ff0000"}})

	restored, ok := func() (*models.Project, bool) {
		h.Record(p)
		layer := p.CurrentLayer()
		*layer = engine.ApplyUpdates(*layer, []engine.CellUpdate{{X: 2, Y: 2, Color: "#00ff00"}})
		return h.Undo()
	}()
	require.True(t, ok)
	require.Equal(t, models.Transparent, restored.CurrentLayer().Pixels[2][2].Color,
		"initial snapshot still shows the empty grid")

	redone, ok := h.Redo()
	require.True(t, ok)
	require.Equal(t, "#ff0000", redone.CurrentLayer().Pixels[2][2].Color,
		"recorded snapshot keeps its value despite the later green write")
}

func TestLimitEvictsOldest(t *testing.T) {
	h := history.New(models.NewProject("test", 2, 2))
	h.SetLimit(3)

	h.Record(paintedProject(t, "#111111"))
	h.Record(paintedProject(t, "#222222"))
	h.Record(paintedProject(t, "#333333"))
	require.Equal(t, 3, h.Len())

	// Walk all the way back: the initial snapshot is gone.
	_, ok := h.Undo()
	require.True(t, ok)
	oldest, ok := h.Undo()
	require.True(t, ok)
	require.Equal(t, "#111111", oldest.CurrentLayer().Pixels[0][0].Color)
	_, ok = h.Undo()
	require.False(t, ok)
}
