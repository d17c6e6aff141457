package animation

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/f64"

	"github.com/1broseidon/winborder/internal/easing"
)

func TestParseKind(t *testing.T) {
	k, err := ParseKind("Reverse-Spiral")
	require.NoError(t, err)
	assert.Equal(t, ReverseSpiral, k)

	_, err = ParseKind("wobble")
	assert.Error(t, err)
}

func TestFrameInterval(t *testing.T) {
	assert.Equal(t, time.Second/60, Settings{}.FrameInterval())
	assert.Equal(t, time.Second/30, Settings{FPS: 30}.FrameInterval())
}

func TestFader(t *testing.T) {
	f := NewFader(&Params{Kind: Fade, Duration: 100 * time.Millisecond, Easing: easing.Linear})
	t0 := time.Unix(100, 0)

	f.Start(t0, 0, 1)
	require.True(t, f.Running())

	v, done := f.Value(t0.Add(50 * time.Millisecond))
	assert.False(t, done)
	assert.InDelta(t, 0.5, v, 1e-6)

	// retarget from the midpoint
	f.Start(t0.Add(50*time.Millisecond), v, 0)
	v, done = f.Value(t0.Add(100 * time.Millisecond))
	assert.False(t, done)
	assert.InDelta(t, 0.25, v, 1e-6)

	v, done = f.Value(t0.Add(time.Second))
	assert.True(t, done)
	assert.Equal(t, float32(0), v)
	assert.False(t, f.Running())
}

func TestFader_NoFadeIsImmediate(t *testing.T) {
	f := NewFader(nil)
	f.Start(time.Now(), 0, 1)
	assert.False(t, f.Running())
	v, done := f.Value(time.Now())
	assert.True(t, done)
	assert.Equal(t, float32(1), v)
}

func TestSpiralAngle(t *testing.T) {
	start := time.Unix(0, 0)
	p := Params{Kind: Spiral, Duration: time.Second}

	assert.InDelta(t, math.Pi/2, SpiralAngle(p, start, start.Add(250*time.Millisecond)), 1e-6)
	assert.InDelta(t, math.Pi, SpiralAngle(p, start, start.Add(1500*time.Millisecond)), 1e-6, "wraps every turn")

	p.Kind = ReverseSpiral
	assert.InDelta(t, -math.Pi/2, SpiralAngle(p, start, start.Add(250*time.Millisecond)), 1e-6)

	assert.Equal(t, 0.0, SpiralAngle(Params{Kind: Spiral}, start, start.Add(time.Second)))
}

func TestRotationAndInvert(t *testing.T) {
	m := Rotation(math.Pi/2, 10, 10)

	x, y := Apply(m, 20, 10)
	assert.InDelta(t, 10, x, 1e-9)
	assert.InDelta(t, 20, y, 1e-9)

	cx, cy := Apply(m, 10, 10)
	assert.InDelta(t, 10, cx, 1e-9, "centre is fixed")
	assert.InDelta(t, 10, cy, 1e-9)

	bx, by := Apply(Invert(m), x, y)
	assert.InDelta(t, 20, bx, 1e-9)
	assert.InDelta(t, 10, by, 1e-9)

	assert.Equal(t, Identity, Invert(f64.Aff3{}))
}
