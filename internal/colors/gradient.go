package colors

import "math"

// AngleToCoordinates converts a gradient angle into start/end points in the
// unit square (top-left origin).
//
// The angle is treated as a line through the centre (0.5, 0.5); the
// endpoints are where that line leaves the square. The slope is negated
// because y grows downwards.
func AngleToCoordinates(degrees float32) (start, end [2]float32) {
	bucket := float32(math.Mod(math.Abs(float64(degrees)), 360))

	var m float32
	switch bucket {
	case 90, 270:
		// Vertical line; keep the slope finite so the edge formulas below
		// still work.
		m = math.MaxFloat32
		if degrees < 0 {
			m = -m
		}
	default:
		m = float32(math.Tan(-float64(degrees) * math.Pi / 180))
	}

	// y = mx + b through (0.5, 0.5)
	b := -m*0.5 + 0.5

	var xs, xe float32
	switch {
	case bucket < 90:
		xs, xe = 0, 1
	case bucket < 270:
		xs, xe = 1, 0
	default:
		xs, xe = 0, 1
	}

	return clampPoint(edgePoint(m, b, xs)), clampPoint(edgePoint(m, b, xe))
}

// edgePoint evaluates the line at x and, when the result leaves the square
// vertically, moves to the intersection with the top (y=1) or bottom (y=0)
// edge instead.
func edgePoint(m, b, x float32) [2]float32 {
	y := m*x + b
	switch {
	case y >= 0 && y <= 1:
		return [2]float32{x, y}
	case y > 1:
		return [2]float32{(1 - b) / m, 1}
	default:
		return [2]float32{-b / m, 0}
	}
}

func clampPoint(p [2]float32) [2]float32 {
	return [2]float32{clamp01(p[0]), clamp01(p[1])}
}
