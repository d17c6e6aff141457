package animation

import (
	"math"
	"time"

	"golang.org/x/image/math/f64"
)

// Identity is the identity affine transform.
var Identity = f64.Aff3{1, 0, 0, 0, 1, 0}

// SpiralAngle returns the rotation in radians of a spiral animation that
// started at start. One full turn takes p.Duration; the progress within a
// turn is shaped by p.Easing. Reverse spirals turn the other way.
func SpiralAngle(p Params, start, now time.Time) float64 {
	if p.Duration <= 0 {
		return 0
	}
	elapsed := now.Sub(start)
	if elapsed < 0 {
		elapsed = 0
	}
	turn := float32(elapsed%p.Duration) / float32(p.Duration)
	angle := float64(p.Easing.Evaluate(turn)) * 2 * math.Pi
	if p.Kind == ReverseSpiral {
		angle = -angle
	}
	return angle
}

// Rotation returns the transform rotating by angle radians around (cx, cy).
func Rotation(angle, cx, cy float64) f64.Aff3 {
	sin, cos := math.Sincos(angle)
	return f64.Aff3{
		cos, -sin, cx - cos*cx + sin*cy,
		sin, cos, cy - sin*cx - cos*cy,
	}
}

// Apply maps (x, y) through m.
func Apply(m f64.Aff3, x, y float64) (float64, float64) {
	return m[0]*x + m[1]*y + m[2], m[3]*x + m[4]*y + m[5]
}

// Invert returns the inverse of m, or Identity when m is singular.
func Invert(m f64.Aff3) f64.Aff3 {
	det := m[0]*m[4] - m[1]*m[3]
	if det == 0 {
		return Identity
	}
	inv := 1 / det
	a := m[4] * inv
	b := -m[1] * inv
	d := -m[3] * inv
	e := m[0] * inv
	return f64.Aff3{
		a, b, -(a*m[2] + b*m[5]),
		d, e, -(d*m[2] + e*m[5]),
	}
}
