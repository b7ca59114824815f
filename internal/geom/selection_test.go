package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectionGesture(t *testing.T) {
	var s Selection

	assert.False(t, s.Dragging())
	assert.True(t, s.Rect().Empty())

	// Moves before a press are ignored.
	s.Update(Point{X: 50, Y: 50})
	assert.True(t, s.Rect().Empty())

	s.Begin(Point{X: 100, Y: 100})
	assert.True(t, s.Dragging())

	s.Update(Point{X: 150, Y: 130})
	assert.Equal(t, Rect{X: 100, Y: 100, W: 50, H: 30}, s.Rect())

	// Dragging up and left of the anchor still normalises.
	s.Update(Point{X: 60, Y: 80})
	assert.Equal(t, Rect{X: 60, Y: 80, W: 40, H: 20}, s.Rect())

	s.End(Point{X: 200, Y: 200})
	assert.False(t, s.Dragging())
	assert.Equal(t, Rect{X: 100, Y: 100, W: 100, H: 100}, s.Rect())

	// The rectangle persists after release for a later export.
	assert.Equal(t, Rect{X: 100, Y: 100, W: 100, H: 100}, s.Rect())

	// A new press discards it.
	s.Begin(Point{X: 10, Y: 10})
	assert.True(t, s.Rect().Empty())
}

func TestSelectionClear(t *testing.T) {
	var s Selection
	s.Begin(Point{X: 10, Y: 10})
	s.End(Point{X: 40, Y: 40})

	s.Clear()
	assert.False(t, s.Dragging())
	assert.True(t, s.Rect().Empty())
}

func TestSelectionEndWithoutBegin(t *testing.T) {
	var s Selection
	s.End(Point{X: 40, Y: 40})
	assert.True(t, s.Rect().Empty())
	assert.False(t, s.Dragging())
}

func TestSelectionClickIsDegenerate(t *testing.T) {
	var s Selection
	s.Begin(Point{X: 30, Y: 30})
	s.End(Point{X: 30, Y: 31})
	assert.True(t, s.Rect().Degenerate())
}
