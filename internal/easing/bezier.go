// Package easing builds cubic-bezier timing curves of the kind used by CSS
// transitions.
package easing

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidControlPoint is returned when an x control coordinate lies
// outside [0,1], which would make the curve non-invertible in x.
var ErrInvalidControlPoint = errors.New("easing: control point x must be in [0,1]")

const (
	maxIterations = 10
	tolerance     = 1e-4
)

// Curve maps animation progress in [0,1] to eased progress. The zero value
// behaves like Linear.
type Curve struct {
	x1, y1, x2, y2 float32
	name           string
}

// Linear is the identity curve.
var Linear = Curve{x1: 0, y1: 0, x2: 1, y2: 1, name: "linear"}

// Build returns the cubic-bezier curve with endpoints (0,0) and (1,1) and
// control points (x1,y1), (x2,y2).
func Build(x1, y1, x2, y2 float32) (Curve, error) {
	for _, x := range [...]float32{x1, x2} {
		if !(x >= 0 && x <= 1) {
			return Curve{}, fmt.Errorf("%w: got %g", ErrInvalidControlPoint, x)
		}
	}
	if isNaN(y1) || isNaN(y2) {
		return Curve{}, fmt.Errorf("%w: y is NaN", ErrInvalidControlPoint)
	}
	return Curve{x1: x1, y1: y1, x2: x2, y2: y2}, nil
}

// ControlPoints returns (x1, y1, x2, y2).
func (c Curve) ControlPoints() (x1, y1, x2, y2 float32) {
	return c.x1, c.y1, c.x2, c.y2
}

func (c Curve) String() string {
	if c.name != "" {
		return c.name
	}
	return fmt.Sprintf("cubic-bezier(%g, %g, %g, %g)", c.x1, c.y1, c.x2, c.y2)
}

// Evaluate returns the eased value for progress x. The curve is inverted in
// x by bisection on the bezier parameter t.
func (c Curve) Evaluate(x float32) float32 {
	if c.x1 == c.y1 && c.x2 == c.y2 {
		return x
	}
	if x == 0 || x == 1 {
		return x
	}

	t := x
	t0, t1 := float32(0), float32(1)
	var px, py float32
	for i := 0; i < maxIterations; i++ {
		px, py = c.point(t)
		residual := px - x
		if abs(residual) < tolerance {
			break
		}
		if residual > 0 {
			t1 = t
		} else {
			t0 = t
		}
		t = (t0 + t1) / 2
	}
	return py
}

// point evaluates the curve at parameter t using de Casteljau's algorithm.
func (c Curve) point(t float32) (x, y float32) {
	// first level
	ax, ay := lerp(0, c.x1, t), lerp(0, c.y1, t)
	bx, by := lerp(c.x1, c.x2, t), lerp(c.y1, c.y2, t)
	cx, cy := lerp(c.x2, 1, t), lerp(c.y2, 1, t)

	// second level
	dx, dy := lerp(ax, bx, t), lerp(ay, by, t)
	ex, ey := lerp(bx, cx, t), lerp(by, cy, t)

	return lerp(dx, ex, t), lerp(dy, ey, t)
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

func abs(v float32) float32 {
	return float32(math.Abs(float64(v)))
}

func isNaN(v float32) bool {
	return v != v
}
