// Package history keeps the linear undo/redo stack for a project.
// Snapshots are value copies that share unchanged pixel rows with the
// live project (see models.Project.Clone), so recording is cheap even
// on large grids with long histories.
package history

import (
	"github.com/just-abdullah-dev/pixel-art/internal/models"
)

// History is a snapshot stack plus a cursor into it. The entry at the
// cursor is the state the editor currently shows. It is not safe for
// concurrent use; callers serialize access the same way they serialize
// edits to the project itself.
type History struct {
	snapshots []*models.Project
	index     int
	limit     int
}

// New starts a history whose first entry is a snapshot of the given
// project.
func New(initial *models.Project) *History {
	return &History{
		snapshots: []*models.Project{initial.Clone()},
		index:     0,
	}
}

// SetLimit bounds the stack to at most n snapshots, evicting the
// oldest on overflow. Zero (the default) means unbounded.
func (h *History) SetLimit(n int) {
	h.limit = n
}

// Record snapshots the project as the new head: any redo entries past
// the cursor are discarded, the snapshot is appended, and the cursor
// advances to it.
func (h *History) Record(p *models.Project) {
	h.snapshots = append(h.snapshots[:h.index+1], p.Clone())
	h.index = len(h.snapshots) - 1

	if h.limit > 0 && len(h.snapshots) > h.limit {
		drop := len(h.snapshots) - h.limit
		h.snapshots = append([]*models.Project(nil), h.snapshots[drop:]...)
		h.index -= drop
	}
}

// Undo steps the cursor back one entry and returns that snapshot. It
// reports false, leaving everything untouched, when already at the
// oldest entry. The returned project is a clone; mutating it never
// affects the stored snapshot.
func (h *History) Undo() (*models.Project, bool) {
	if h.index == 0 {
		return nil, false
	}
	h.index--
	return h.snapshots[h.index].Clone(), true
}

// Redo steps the cursor forward one entry and returns that snapshot,
// reporting false at the newest entry.
func (h *History) Redo() (*models.Project, bool) {
	if h.index >= len(h.snapshots)-1 {
		return nil, false
	}
	h.index++
	return h.snapshots[h.index].Clone(), true
}

// CanUndo reports whether Undo would succeed.
func (h *History) CanUndo() bool { return h.index > 0 }

// CanRedo reports whether Redo would succeed.
func (h *History) CanRedo() bool { return h.index < len(h.snapshots)-1 }

// Len returns the number of stored snapshots.
func (h *History) Len() int { return len(h.snapshots) }
