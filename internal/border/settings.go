package border

import (
	"time"

	"github.com/1broseidon/winborder/internal/animation"
	"github.com/1broseidon/winborder/internal/colors"
)

// Settings is the effective configuration of one border after window rules
// have been applied.
type Settings struct {
	// Width and Offset are in logical pixels. Offset moves the outline away
	// from the window frame; negative values overlap it.
	Width  int
	Offset int
	// Radius is in logical pixels; -1 selects the default rounding.
	Radius float64

	ActiveColor   colors.Spec
	InactiveColor colors.Spec

	InitializeDelay time.Duration
	UnminimizeDelay time.Duration

	Animations animation.Settings
}

const (
	DefaultWidth           = 4
	DefaultOffset          = -1
	DefaultRadius          = -1
	DefaultInitializeDelay = 250 * time.Millisecond
	DefaultUnminimizeDelay = 200 * time.Millisecond
)

// DefaultSettings mirrors the built-in global config section.
func DefaultSettings() Settings {
	return Settings{
		Width:           DefaultWidth,
		Offset:          DefaultOffset,
		Radius:          DefaultRadius,
		ActiveColor:     colors.SolidSpec(colors.AccentToken),
		InactiveColor:   colors.SolidSpec("#595959"),
		InitializeDelay: DefaultInitializeDelay,
		UnminimizeDelay: DefaultUnminimizeDelay,
		Animations:      animation.Settings{FPS: animation.DefaultFPS},
	}
}

func (s Settings) colorFor(active bool) colors.Spec {
	if active {
		return s.ActiveColor
	}
	return s.InactiveColor
}
