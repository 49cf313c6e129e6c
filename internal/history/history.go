// Package history keeps bounded undo and redo stacks of shape list
// snapshots.
package history

import "github.com/example/pikshare/internal/shape"

// DefaultLimit is the undo depth used when none is configured.
const DefaultLimit = 100

// Stack holds deep copies of shape lists. The zero value is usable and
// unbounded; use New for a bounded stack.
type Stack struct {
	undo  [][]shape.Shape
	redo  [][]shape.Shape
	limit int
}

// New returns a stack that keeps at most limit undo snapshots. A limit of
// zero or less means unbounded.
func New(limit int) *Stack {
	return &Stack{limit: limit}
}

// Push records current as the state to return to on the next Undo and
// clears the redo stack.
func (s *Stack) Push(current []shape.Shape) {
	s.undo = append(s.undo, shape.CloneList(current))
	if s.limit > 0 && len(s.undo) > s.limit {
		drop := len(s.undo) - s.limit
		s.undo = append([][]shape.Shape(nil), s.undo[drop:]...)
	}
	s.redo = nil
}

// Undo pops the most recent snapshot. current is pushed onto the redo
// stack. ok is false when there is nothing to undo.
func (s *Stack) Undo(current []shape.Shape) (prev []shape.Shape, ok bool) {
	if len(s.undo) == 0 {
		return nil, false
	}
	prev = s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]
	s.redo = append(s.redo, shape.CloneList(current))
	return shape.CloneList(prev), true
}

// Redo mirrors Undo.
func (s *Stack) Redo(current []shape.Shape) (next []shape.Shape, ok bool) {
	if len(s.redo) == 0 {
		return nil, false
	}
	next = s.redo[len(s.redo)-1]
	s.redo = s.redo[:len(s.redo)-1]
	s.undo = append(s.undo, shape.CloneList(current))
	return shape.CloneList(next), true
}

// Reset empties both stacks.
func (s *Stack) Reset() {
	s.undo = nil
	s.redo = nil
}

// CanUndo and CanRedo report whether the stacks hold anything.
func (s *Stack) CanUndo() bool { return len(s.undo) > 0 }
func (s *Stack) CanRedo() bool { return len(s.redo) > 0 }

// Depth returns the number of undo and redo snapshots.
func (s *Stack) Depth() (undo, redo int) {
	return len(s.undo), len(s.redo)
}

// Limit returns the configured undo depth.
func (s *Stack) Limit() int { return s.limit }
