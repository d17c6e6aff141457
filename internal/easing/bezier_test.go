package easing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_RejectsOutOfRangeX(t *testing.T) {
	for _, pts := range [][4]float32{
		{-0.1, 0, 0.5, 1},
		{0.5, 0, 1.1, 1},
		{2, 0, 0, 1},
	} {
		_, err := Build(pts[0], pts[1], pts[2], pts[3])
		assert.ErrorIs(t, err, ErrInvalidControlPoint, "%v", pts)
	}

	_, err := Build(0.5, -2, 0.5, 3)
	assert.NoError(t, err, "y may overshoot")
}

func TestEvaluate_LinearShortcut(t *testing.T) {
	c, err := Build(0.3, 0.3, 0.7, 0.7)
	require.NoError(t, err)
	for _, x := range []float32{0, 0.123, 0.5, 0.999, 1} {
		assert.Equal(t, x, c.Evaluate(x))
	}
	assert.Equal(t, float32(0.37), Linear.Evaluate(0.37))
}

func TestEvaluate_EndpointsUnchanged(t *testing.T) {
	c, err := Build(0.42, 0, 0.58, 1)
	require.NoError(t, err)
	assert.Equal(t, float32(0), c.Evaluate(0))
	assert.Equal(t, float32(1), c.Evaluate(1))
}

func TestEvaluate_EaseInOutIsSymmetric(t *testing.T) {
	c := MustParse("ease-in-out")
	assert.InDelta(t, 0.5, c.Evaluate(0.5), 1e-3)
	for _, x := range []float32{0.1, 0.25, 0.4} {
		assert.InDelta(t, 1-c.Evaluate(1-x), c.Evaluate(x), 5e-3, "x=%g", x)
	}
	assert.Less(t, c.Evaluate(0.2), float32(0.2), "slow start")
	assert.Greater(t, c.Evaluate(0.8), float32(0.8), "slow finish")
}

func TestEvaluate_Monotonic(t *testing.T) {
	c := MustParse("ease")
	prev := float32(0)
	for i := 1; i <= 100; i++ {
		y := c.Evaluate(float32(i) / 100)
		assert.GreaterOrEqual(t, y+5e-3, prev, "step %d", i)
		prev = y
	}
}

func TestParse(t *testing.T) {
	for _, name := range Names() {
		c, err := Parse(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, c.String())
	}

	c, err := Parse("cubic-bezier(0.1, 0.7, 1.0, 0.1)")
	require.NoError(t, err)
	x1, y1, x2, y2 := c.ControlPoints()
	assert.Equal(t, [4]float32{0.1, 0.7, 1, 0.1}, [4]float32{x1, y1, x2, y2})

	c, err = Parse("")
	require.NoError(t, err)
	assert.Equal(t, Linear, c)

	for _, bad := range []string{"bounce", "cubic-bezier(1,2,3)", "cubic-bezier(0,0,1,1", "cubic-bezier(a,0,1,1)"} {
		_, err := Parse(bad)
		assert.Error(t, err, bad)
	}

	_, err = Parse("cubic-bezier(1.5, 0, 0.5, 1)")
	assert.ErrorIs(t, err, ErrInvalidControlPoint)
}
