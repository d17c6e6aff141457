package platform

import (
	"context"
	"fmt"

	"github.com/1broseidon/winborder/internal/border"
)

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Window contains metadata and geometry for a top-level window.
type Window struct {
	ID        WindowID
	Title     string
	Class     string
	Frame     Rect
	Visible   bool
	Minimized bool
}

// EventKind enumerates window events delivered to a Handler.
type EventKind int

const (
	// EventCreated announces a newly managed window; Window is filled in.
	EventCreated EventKind = iota
	EventLocationChange
	EventReorder
	EventShow
	EventHide
	EventMinimizeStart
	EventMinimizeEnd
	EventFocusChanged
	EventDestroyed
	// EventRetitled fires when a window's title or class changes so window
	// rules can be re-evaluated.
	EventRetitled
)

var eventNames = [...]string{
	EventCreated:        "created",
	EventLocationChange: "location_change",
	EventReorder:        "reorder",
	EventShow:           "show",
	EventHide:           "hide",
	EventMinimizeStart:  "minimize_start",
	EventMinimizeEnd:    "minimize_end",
	EventFocusChanged:   "focus_changed",
	EventDestroyed:      "destroyed",
	EventRetitled:       "retitled",
}

func (k EventKind) String() string {
	if int(k) < len(eventNames) {
		return eventNames[k]
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// Event is one window-system notification.
type Event struct {
	Kind   EventKind
	Window Window
	// Active is set for EventFocusChanged.
	Active bool
}

// Handler receives events on the window system's event goroutine. It must
// not block.
type Handler func(Event)

// WindowSystem abstracts the desktop the daemon decorates.
type WindowSystem interface {
	// Windows lists the managed top-level windows eligible for a border.
	Windows() ([]Window, error)
	// Window re-reads a single window.
	Window(id WindowID) (Window, error)
	ActiveWindow() (WindowID, error)
	// Watch registers h and starts tracking windows. Call once before Run.
	Watch(h Handler) error
	// Run processes events until ctx is cancelled.
	Run(ctx context.Context) error
	// DPI of the primary display.
	DPI() float64
	// Surfaces creates border overlays on this window system.
	Surfaces() border.SurfaceFactory
}
