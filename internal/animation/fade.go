package animation

import (
	"time"

	"github.com/1broseidon/winborder/internal/easing"
)

// Fader interpolates opacity between two values. A fader that is
// interrupted is restarted from whatever value it reached.
type Fader struct {
	duration time.Duration
	curve    easing.Curve

	from, to float32
	start    time.Time
	running  bool
}

// NewFader returns a fader for p. A nil p gives a fader that jumps to the
// target immediately.
func NewFader(p *Params) *Fader {
	f := &Fader{curve: easing.Linear}
	if p != nil {
		f.duration = p.Duration
		f.curve = p.Easing
	}
	return f
}

// Start begins a fade from the current value towards to.
func (f *Fader) Start(now time.Time, from, to float32) {
	f.from, f.to = from, to
	f.start = now
	f.running = f.duration > 0 && from != to
}

// Running reports whether a fade is in progress.
func (f *Fader) Running() bool {
	return f.running
}

// Target is the value the current or last fade ends at.
func (f *Fader) Target() float32 {
	return f.to
}

// Value returns the opacity at now and whether the fade has finished.
func (f *Fader) Value(now time.Time) (float32, bool) {
	if !f.running {
		return f.to, true
	}
	elapsed := now.Sub(f.start)
	if elapsed >= f.duration {
		f.running = false
		return f.to, true
	}
	if elapsed < 0 {
		elapsed = 0
	}
	progress := f.curve.Evaluate(float32(elapsed) / float32(f.duration))
	return f.from + (f.to-f.from)*progress, false
}
