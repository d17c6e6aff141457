// Package border owns the per-window overlay lifecycle: one actor goroutine
// per tracked window, fed by an unbounded mailbox, and a registry that
// guarantees at most one live actor per window.
package border

import (
	"fmt"
	"math"
)

// WindowID identifies a tracked top-level window (the X11 client window).
type WindowID uint32

func (id WindowID) String() string {
	return fmt.Sprintf("0x%x", uint32(id))
}

// Rect is a screen rectangle in physical pixels.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Inflate grows the rect by d on every side.
func (r Rect) Inflate(d int) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, Width: r.Width + 2*d, Height: r.Height + 2*d}
}

// Stroke describes the outline drawn inside a surface: Width pixels wide,
// centred Width/2 inside the surface edge, with corner Radius measured on
// that centre line.
type Stroke struct {
	Width  float64
	Radius float64
}

const baseDPI = 96

// Metrics resolves the logical border settings against a display DPI.
// The sentinel radius -1 selects the default rounding of 8 logical pixels
// plus half the stroke.
func Metrics(s Settings, dpi float64) (stroke Stroke, pad int) {
	if dpi <= 0 {
		dpi = baseDPI
	}
	scale := dpi / baseDPI
	width := float64(s.Width) * scale
	offset := float64(s.Offset) * scale

	var radius float64
	switch {
	case s.Radius == -1:
		radius = 8*scale + width/2
	case s.Radius > 0:
		radius = s.Radius * scale
	}

	pad = int(math.Round(width + offset))
	if pad < 0 {
		pad = 0
	}
	return Stroke{Width: width, Radius: radius}, pad
}

// OverlayRect returns the surface rectangle for a tracked window frame.
func OverlayRect(frame Rect, pad int) Rect {
	return frame.Inflate(pad)
}
