// Package animation holds the time-based effects a border runs: the fade
// used for show/hide and the continuous spiral rotation of gradient paints.
package animation

import (
	"fmt"
	"strings"
	"time"

	"github.com/1broseidon/winborder/internal/easing"
)

// Kind names an animation type as written in the config file.
type Kind string

const (
	Spiral        Kind = "spiral"
	ReverseSpiral Kind = "reverse_spiral"
	Fade          Kind = "fade"
)

// ParseKind accepts the config spelling of a kind. Dashes and underscores
// are interchangeable.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_"))
	switch k {
	case Spiral, ReverseSpiral, Fade:
		return k, nil
	default:
		return "", fmt.Errorf("unknown animation type %q (expected spiral, reverse_spiral or fade)", s)
	}
}

// Params configures one animation.
type Params struct {
	Kind     Kind
	Duration time.Duration
	Easing   easing.Curve
}

const (
	DefaultFPS          = 60
	DefaultFadeDuration = 200 * time.Millisecond
	DefaultSpinDuration = 1800 * time.Millisecond
)

// Settings is the full animation setup of a border.
type Settings struct {
	FPS int
	// Fade is nil when show/hide should be immediate.
	Fade     *Params
	Active   []Params
	Inactive []Params
}

// FrameInterval returns the ticker period for FPS.
func (s Settings) FrameInterval() time.Duration {
	fps := s.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}
	return time.Second / time.Duration(fps)
}

// Continuous returns the animations that run for as long as the border is
// in the given focus state.
func (s Settings) Continuous(active bool) []Params {
	if active {
		return s.Active
	}
	return s.Inactive
}
