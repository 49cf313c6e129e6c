package editor

import (
	"github.com/example/pikshare/internal/history"
	"github.com/example/pikshare/internal/shape"
)

// Model is the committed shape list, the selection and the undo history.
// It is not safe for concurrent use.
type Model struct {
	shapes   []shape.Shape
	selected int
	hist     *history.Stack
}

// NewModel returns an empty model keeping at most limit undo steps.
func NewModel(limit int) *Model {
	return &Model{selected: -1, hist: history.New(limit)}
}

// Shapes returns a copy of the shape list in paint order.
func (m *Model) Shapes() []shape.Shape { return shape.CloneList(m.shapes) }

// Len returns the number of committed shapes.
func (m *Model) Len() int { return len(m.shapes) }

// At returns the shape at index i.
func (m *Model) At(i int) (shape.Shape, bool) {
	if i < 0 || i >= len(m.shapes) {
		return shape.Shape{}, false
	}
	return m.shapes[i], true
}

// Selected returns the selected index or -1.
func (m *Model) Selected() int { return m.selected }

// Select marks shape i as selected. Out of range indexes clear the
// selection.
func (m *Model) Select(i int) {
	if i < 0 || i >= len(m.shapes) {
		i = -1
	}
	m.selected = i
}

// Snapshot records the current list as an undo step and drops the redo
// stack.
func (m *Model) Snapshot() { m.hist.Push(m.shapes) }

// Commit appends s after normalizing it. Shapes below the size threshold
// are rejected. The caller is expected to have taken a snapshot.
func (m *Model) Commit(s shape.Shape) bool {
	if !s.ValidSize() {
		return false
	}
	m.shapes = append(m.shapes, s.Normalize())
	return true
}

// Undo restores the previous snapshot and clears the selection.
func (m *Model) Undo() bool {
	prev, ok := m.hist.Undo(m.shapes)
	if !ok {
		return false
	}
	m.shapes = prev
	m.selected = -1
	return true
}

// Redo mirrors Undo.
func (m *Model) Redo() bool {
	next, ok := m.hist.Redo(m.shapes)
	if !ok {
		return false
	}
	m.shapes = next
	m.selected = -1
	return true
}

// Clear removes every shape as one undoable step. An empty list is left
// alone.
func (m *Model) Clear() bool {
	if len(m.shapes) == 0 {
		return false
	}
	m.Snapshot()
	m.shapes = nil
	m.selected = -1
	return true
}

// DeleteSelected removes the selected shape as one undoable step.
func (m *Model) DeleteSelected() bool {
	i := m.selected
	if i < 0 || i >= len(m.shapes) {
		return false
	}
	m.Snapshot()
	m.shapes = append(m.shapes[:i:i], m.shapes[i+1:]...)
	m.selected = -1
	return true
}

// Reset empties the list, the selection and both history stacks.
func (m *Model) Reset() {
	m.shapes = nil
	m.selected = -1
	m.hist.Reset()
}

// History returns the undo and redo depth.
func (m *Model) History() (undo, redo int) { return m.hist.Depth() }

// HistoryLimit is the most undo steps kept, or 0 for no bound.
func (m *Model) HistoryLimit() int { return m.hist.Limit() }

// CanUndo and CanRedo report whether Undo or Redo would change anything.
func (m *Model) CanUndo() bool { return m.hist.CanUndo() }
func (m *Model) CanRedo() bool { return m.hist.CanRedo() }

// replace overwrites shape i in place during a gesture.
func (m *Model) replace(i int, s shape.Shape) {
	if i >= 0 && i < len(m.shapes) {
		m.shapes[i] = s
	}
}
