package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/pikshare/internal/shape"
)

func rect(x float64) shape.Shape {
	return shape.Shape{Kind: shape.Rectangle, X: x, Y: 0, W: 10, H: 10}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	s := New(0)
	var list []shape.Shape

	s.Push(list)
	list = append(list, rect(1))

	prev, ok := s.Undo(list)
	require.True(t, ok)
	assert.Empty(t, prev)

	next, ok := s.Redo(prev)
	require.True(t, ok)
	assert.Equal(t, []shape.Shape{rect(1)}, next)
}

func TestPushClearsRedo(t *testing.T) {
	s := New(0)
	list := []shape.Shape{}
	s.Push(list)
	list = append(list, rect(1))
	list, _ = s.Undo(list)
	require.True(t, s.CanRedo())

	s.Push(list)
	assert.False(t, s.CanRedo())
	_, ok := s.Redo(list)
	assert.False(t, ok)
}

func TestEmptyStacksAreNoops(t *testing.T) {
	var s Stack
	_, ok := s.Undo(nil)
	assert.False(t, ok)
	_, ok = s.Redo(nil)
	assert.False(t, ok)
}

func TestSnapshotsAreDeepCopies(t *testing.T) {
	s := New(0)
	list := []shape.Shape{rect(1)}
	s.Push(list)
	list[0].X = 50

	prev, ok := s.Undo(list)
	require.True(t, ok)
	assert.Equal(t, 1.0, prev[0].X)
}

func TestLimitDropsOldest(t *testing.T) {
	s := New(2)
	for i := 0; i < 5; i++ {
		s.Push([]shape.Shape{rect(float64(i))})
	}
	undo, _ := s.Depth()
	assert.Equal(t, 2, undo)

	prev, _ := s.Undo(nil)
	assert.Equal(t, 4.0, prev[0].X)
	prev, _ = s.Undo(prev)
	assert.Equal(t, 3.0, prev[0].X)
	_, ok := s.Undo(prev)
	assert.False(t, ok)
}

func TestReset(t *testing.T) {
	s := New(0)
	s.Push(nil)
	s.Reset()
	assert.False(t, s.CanUndo())
	assert.False(t, s.CanRedo())
}
