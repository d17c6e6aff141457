package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiffClients(t *testing.T) {
	added, removed := DiffClients([]WindowID{1, 2, 3}, []WindowID{3, 4, 1, 5})
	assert.Equal(t, []WindowID{4, 5}, added)
	assert.Equal(t, []WindowID{2}, removed)

	added, removed = DiffClients(nil, nil)
	assert.Empty(t, added)
	assert.Empty(t, removed)
}

func TestGeometryEvent(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 300, Height: 200}
	assert.Equal(t, EventReorder, GeometryEvent(r, r))
	moved := r
	moved.X++
	assert.Equal(t, EventLocationChange, GeometryEvent(r, moved))
}

func TestFocusEvents(t *testing.T) {
	assert.Nil(t, FocusEvents(7, 7))

	events := FocusEvents(7, 9)
	if assert.Len(t, events, 2) {
		assert.Equal(t, WindowID(7), events[0].Window.ID)
		assert.False(t, events[0].Active)
		assert.Equal(t, WindowID(9), events[1].Window.ID)
		assert.True(t, events[1].Active)
	}

	events = FocusEvents(0, 9)
	if assert.Len(t, events, 1) {
		assert.True(t, events[0].Active)
	}
	events = FocusEvents(9, 0)
	if assert.Len(t, events, 1) {
		assert.False(t, events[0].Active)
	}
}

func TestMinimizeAndVisibilityEvents(t *testing.T) {
	kind, ok := MinimizeEvent(false, true)
	assert.True(t, ok)
	assert.Equal(t, EventMinimizeStart, kind)
	kind, ok = MinimizeEvent(true, false)
	assert.True(t, ok)
	assert.Equal(t, EventMinimizeEnd, kind)
	_, ok = MinimizeEvent(true, true)
	assert.False(t, ok)

	kind, ok = VisibilityEvent(false, true)
	assert.True(t, ok)
	assert.Equal(t, EventShow, kind)
	kind, ok = VisibilityEvent(true, false)
	assert.True(t, ok)
	assert.Equal(t, EventHide, kind)
	_, ok = VisibilityEvent(false, false)
	assert.False(t, ok)
}

func TestEventKindString(t *testing.T) {
	assert.Equal(t, "minimize_start", EventMinimizeStart.String())
	assert.Equal(t, "event(99)", EventKind(99).String())
}
