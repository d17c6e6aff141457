package render

import (
	"image"

	"golang.org/x/image/math/f64"

	"github.com/1broseidon/winborder/internal/animation"
	"github.com/1broseidon/winborder/internal/colors"
)

// Shade fills dst with p wherever mask has coverage. Gradient positions are
// computed in unit-square space after mapping each pixel centre through
// inv, the inverse of the paint transform. dst receives premultiplied
// RGBA; pixels outside the mask are cleared.
func Shade(dst *image.RGBA, mask *image.Alpha, p colors.Paint, inv f64.Aff3) {
	b := dst.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())

	solid := p.Kind != colors.PaintGradient || len(p.Stops) == 0
	var sx, sy, dx, dy, lenSq float64
	if !solid {
		sx, sy = float64(p.Start[0])*w, float64(p.Start[1])*h
		dx = float64(p.End[0])*w - sx
		dy = float64(p.End[1])*h - sy
		lenSq = dx*dx + dy*dy
		if lenSq == 0 {
			solid = true
		}
	}
	base := p.Color
	if solid && p.Kind == colors.PaintGradient && len(p.Stops) > 0 {
		base = p.Stops[0].Color
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			i := dst.PixOffset(x, y)
			cov := mask.AlphaAt(x, y).A
			if cov == 0 {
				dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2], dst.Pix[i+3] = 0, 0, 0, 0
				continue
			}

			c := base
			if !solid {
				px, py := animation.Apply(inv, float64(x-b.Min.X)+0.5, float64(y-b.Min.Y)+0.5)
				t := ((px-sx)*dx + (py-sy)*dy) / lenSq
				c = p.At(float32(t))
			}

			a := clampUnit(c.A) * float32(cov) / 255
			dst.Pix[i] = to8(clampUnit(c.R) * a)
			dst.Pix[i+1] = to8(clampUnit(c.G) * a)
			dst.Pix[i+2] = to8(clampUnit(c.B) * a)
			dst.Pix[i+3] = to8(a)
		}
	}
}

func clampUnit(v float32) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

func to8(v float32) uint8 {
	return uint8(v*255 + 0.5)
}
