package colors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func assertPoint(t *testing.T, want, got [2]float32, msg string) {
	t.Helper()
	assert.InDelta(t, want[0], got[0], 1e-5, "%s x", msg)
	assert.InDelta(t, want[1], got[1], 1e-5, "%s y", msg)
}

func TestAngleToCoordinates_KnownAngles(t *testing.T) {
	tests := []struct {
		deg        float32
		start, end [2]float32
	}{
		{0, [2]float32{0, 0.5}, [2]float32{1, 0.5}},
		{90, [2]float32{0.5, 1}, [2]float32{0.5, 0}},
		{-90, [2]float32{0.5, 0}, [2]float32{0.5, 1}},
		{180, [2]float32{1, 0.5}, [2]float32{0, 0.5}},
		{-540, [2]float32{1, 0.5}, [2]float32{0, 0.5}},
		{45, [2]float32{0, 1}, [2]float32{1, 0}},
		{360, [2]float32{0, 0.5}, [2]float32{1, 0.5}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%gdeg", tt.deg), func(t *testing.T) {
			start, end := AngleToCoordinates(tt.deg)
			assertPoint(t, tt.start, start, "start")
			assertPoint(t, tt.end, end, "end")
		})
	}
}

func TestAngleToCoordinates_StaysInUnitSquare(t *testing.T) {
	for deg := float32(-1080); deg <= 1080; deg += 0.5 {
		start, end := AngleToCoordinates(deg)
		for _, p := range [][2]float32{start, end} {
			if p[0] < 0 || p[0] > 1 || p[1] < 0 || p[1] > 1 {
				t.Fatalf("%gdeg: point %v outside unit square", deg, p)
			}
		}
	}
}

func TestAngleToCoordinates_EndpointsOnEdge(t *testing.T) {
	onEdge := func(p [2]float32) bool {
		const eps = 1e-4
		near := func(a, b float32) bool { return a-b < eps && b-a < eps }
		return near(p[0], 0) || near(p[0], 1) || near(p[1], 0) || near(p[1], 1)
	}
	for deg := float32(-360); deg <= 360; deg += 7.5 {
		start, end := AngleToCoordinates(deg)
		assert.True(t, onEdge(start), "%gdeg start %v", deg, start)
		assert.True(t, onEdge(end), "%gdeg end %v", deg, end)
	}
}
