// Package colors turns declarative border color settings into paint
// descriptors that a renderer can consume directly.
package colors

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBA is a straight (non-premultiplied) color with channels in [0,1].
type RGBA struct {
	R float32 `json:"r"`
	G float32 `json:"g"`
	B float32 `json:"b"`
	A float32 `json:"a"`
}

var (
	// White is the fallback for unparseable hex tokens.
	White = RGBA{R: 1, G: 1, B: 1, A: 1}
	// Black is the fallback for unparseable rgb()/rgba() tokens and a failed
	// accent lookup.
	Black = RGBA{A: 1}
)

// Hex formats the color as #rrggbb, or #rrggbbaa when it is not opaque.
func (c RGBA) Hex() string {
	hex := colorful.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}.Clamped().Hex()
	if c.A >= 1 {
		return hex
	}
	return fmt.Sprintf("%s%02x", hex, uint8(clamp01(c.A)*255+0.5))
}

// Scale multiplies the alpha channel by f.
func (c RGBA) Scale(f float32) RGBA {
	c.A *= f
	return c
}

// Lerp interpolates between a and b.
func Lerp(a, b RGBA, t float32) RGBA {
	return RGBA{
		R: a.R + (b.R-a.R)*t,
		G: a.G + (b.G-a.G)*t,
		B: a.B + (b.B-a.B)*t,
		A: a.A + (b.A-a.A)*t,
	}
}

// Stop is a resolved gradient stop.
type Stop struct {
	Position float32 `json:"position"`
	Color    RGBA    `json:"color"`
}

// PaintKind discriminates Paint.
type PaintKind int

const (
	PaintSolid PaintKind = iota
	PaintGradient
)

func (k PaintKind) String() string {
	switch k {
	case PaintSolid:
		return "solid"
	case PaintGradient:
		return "gradient"
	default:
		return "unknown"
	}
}

// Paint is the renderer-ready form of a Spec. Solid paints only use Color;
// gradient paints use Stops, Start and End (unit-square coordinates with a
// top-left origin).
type Paint struct {
	Kind  PaintKind  `json:"kind"`
	Color RGBA       `json:"color,omitempty"`
	Stops []Stop     `json:"stops,omitempty"`
	Start [2]float32 `json:"start,omitempty"`
	End   [2]float32 `json:"end,omitempty"`
}

// DefaultPaint is used when a spec cannot be resolved at all.
var DefaultPaint = SolidPaint(White)

// SolidPaint returns a solid paint of c.
func SolidPaint(c RGBA) Paint {
	return Paint{Kind: PaintSolid, Color: c}
}

// At returns the paint color at gradient parameter t, where t=0 is Start and
// t=1 is End. Solid paints ignore t.
func (p Paint) At(t float32) RGBA {
	if p.Kind == PaintSolid || len(p.Stops) == 0 {
		return p.Color
	}
	t = clamp01(t)
	first := p.Stops[0]
	if t <= first.Position {
		return first.Color
	}
	for i := 1; i < len(p.Stops); i++ {
		next := p.Stops[i]
		if t <= next.Position {
			prev := p.Stops[i-1]
			span := next.Position - prev.Position
			if span <= 0 {
				return next.Color
			}
			return Lerp(prev.Color, next.Color, (t-prev.Position)/span)
		}
	}
	return p.Stops[len(p.Stops)-1].Color
}

// Describe renders a short human-readable summary.
func (p Paint) Describe() string {
	if p.Kind == PaintSolid {
		return "solid " + p.Color.Hex()
	}
	hexes := make([]string, len(p.Stops))
	for i, s := range p.Stops {
		hexes[i] = fmt.Sprintf("%s@%.2f", s.Color.Hex(), s.Position)
	}
	return fmt.Sprintf("gradient [%s] (%.2f,%.2f)->(%.2f,%.2f)",
		strings.Join(hexes, " "), p.Start[0], p.Start[1], p.End[0], p.End[1])
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
