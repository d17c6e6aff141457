package border

import (
	"golang.org/x/image/math/f64"

	"github.com/1broseidon/winborder/internal/colors"
)

// Paint is a brush created by a Surface. Opacity multiplies the paint's own
// alpha; Transform maps surface pixel coordinates before shading.
type Paint interface {
	SetOpacity(opacity float32)
	Opacity() float32
	SetTransform(m f64.Aff3)
	Transform() f64.Aff3
}

// Surface is the rendering target of one border. It is only ever touched
// from the owning actor's goroutine.
type Surface interface {
	CreateSolidPaint(c colors.RGBA) (Paint, error)
	CreateGradientPaint(p colors.Paint) (Paint, error)
	// Resize moves the surface to r, in screen coordinates.
	Resize(r Rect) error
	// Draw clears the surface and strokes the outline with p.
	Draw(p Paint, s Stroke) error
	Show() error
	Hide() error
	// Raise restacks the surface directly above its tracked window.
	Raise() error
	Close() error
}

// SurfaceFactory creates the surface for a tracked window.
type SurfaceFactory interface {
	NewSurface(id WindowID) (Surface, error)
}

// SurfaceFactoryFunc adapts a function to SurfaceFactory.
type SurfaceFactoryFunc func(id WindowID) (Surface, error)

func (f SurfaceFactoryFunc) NewSurface(id WindowID) (Surface, error) {
	return f(id)
}

func createPaint(s Surface, p colors.Paint) (Paint, error) {
	if p.Kind == colors.PaintGradient {
		return s.CreateGradientPaint(p)
	}
	return s.CreateSolidPaint(p.Color)
}
