// Package render draws border outlines onto X11 override-redirect windows.
package render

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/1broseidon/winborder/internal/border"
)

// kappa places cubic control points for a quarter circle.
const kappa = 0.5522847498

// RingMask rasterizes the outline of a w×h surface: a rounded rectangle
// ring s.Width pixels wide whose outer edge touches the surface bounds.
// Coverage is anti-aliased.
func RingMask(w, h int, s border.Stroke) *image.Alpha {
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	if w <= 0 || h <= 0 || s.Width <= 0 {
		return mask
	}

	fw, fh := float32(w), float32(h)
	sw := float32(s.Width)
	if half := float32(math.Min(float64(w), float64(h))) / 2; sw > half {
		sw = half
	}

	outerR := float32(s.Radius) + sw/2
	innerR := float32(s.Radius) - sw/2
	if s.Radius <= 0 {
		outerR, innerR = 0, 0
	}
	if innerR < 0 {
		innerR = 0
	}

	z := vector.NewRasterizer(w, h)
	z.DrawOp = draw.Src
	roundRect(z, 0, 0, fw, fh, outerR, true)
	if fw-2*sw > 0 && fh-2*sw > 0 {
		// Opposite winding cancels coverage inside the ring.
		roundRect(z, sw, sw, fw-sw, fh-sw, innerR, false)
	}
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask
}

// roundRect appends a closed rounded rectangle path. Clockwise is in screen
// coordinates (y down).
func roundRect(z *vector.Rasterizer, x0, y0, x1, y1, r float32, clockwise bool) {
	if limit := min(x1-x0, y1-y0) / 2; r > limit {
		r = limit
	}
	k := r * kappa

	if clockwise {
		z.MoveTo(x0+r, y0)
		z.LineTo(x1-r, y0)
		if r > 0 {
			z.CubeTo(x1-r+k, y0, x1, y0+r-k, x1, y0+r)
		}
		z.LineTo(x1, y1-r)
		if r > 0 {
			z.CubeTo(x1, y1-r+k, x1-r+k, y1, x1-r, y1)
		}
		z.LineTo(x0+r, y1)
		if r > 0 {
			z.CubeTo(x0+r-k, y1, x0, y1-r+k, x0, y1-r)
		}
		z.LineTo(x0, y0+r)
		if r > 0 {
			z.CubeTo(x0, y0+r-k, x0+r-k, y0, x0+r, y0)
		}
		z.ClosePath()
		return
	}

	z.MoveTo(x0+r, y0)
	if r > 0 {
		z.CubeTo(x0+r-k, y0, x0, y0+r-k, x0, y0+r)
	}
	z.LineTo(x0, y1-r)
	if r > 0 {
		z.CubeTo(x0, y1-r+k, x0+r-k, y1, x0+r, y1)
	}
	z.LineTo(x1-r, y1)
	if r > 0 {
		z.CubeTo(x1-r+k, y1, x1, y1-r+k, x1, y1-r)
	}
	z.LineTo(x1, y0+r)
	if r > 0 {
		z.CubeTo(x1, y0+r-k, x1-r+k, y0, x1-r, y0)
	}
	z.ClosePath()
}
