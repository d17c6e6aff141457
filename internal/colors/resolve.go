package colors

import (
	"log/slog"
	"strings"
	"sync"
)

// Resolver turns a Spec into a Paint. It is safe for concurrent use; each
// border actor resolves on its own goroutine.
type Resolver struct {
	accent AccentSource
	logger *slog.Logger

	mu       sync.Mutex
	reported map[string]struct{}
}

// NewResolver creates a resolver. A nil accent source reports black; a nil
// logger uses slog.Default().
func NewResolver(accent AccentSource, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		accent:   accent,
		logger:   logger,
		reported: make(map[string]struct{}),
	}
}

// Resolve builds the paint for spec in the active or inactive state. It
// never fails: bad tokens fall back per token and an unusable gradient
// falls back to DefaultPaint.
func (r *Resolver) Resolve(spec Spec, active bool) Paint {
	if spec.Gradient == nil {
		return SolidPaint(r.Color(spec.Solid, active))
	}

	g := spec.Gradient
	switch len(g.Colors) {
	case 0:
		r.reportOnce("empty-gradient", "gradient has no colors, using default paint")
		return DefaultPaint
	case 1:
		return SolidPaint(r.Color(g.Colors[0], active))
	}

	var start, end [2]float32
	if c := g.Direction.Coordinates; c != nil {
		start, end = c.Start, c.End
	} else {
		deg, err := ParseAngle(g.Direction.Angle)
		if err != nil {
			r.reportOnce("angle:"+g.Direction.Angle, "unusable gradient direction, using default paint",
				"direction", g.Direction.Angle, "error", err)
			return DefaultPaint
		}
		start, end = AngleToCoordinates(deg)
	}

	// The accent is looked up once so every stop sees the same value.
	var accent *RGBA
	stops := make([]Stop, len(g.Colors))
	last := float32(len(g.Colors) - 1)
	for i, token := range g.Colors {
		var c RGBA
		if isAccent(token) {
			if accent == nil {
				a := r.accentColor(active)
				accent = &a
			}
			c = *accent
		} else {
			c = r.parseToken(token)
		}
		stops[i] = Stop{Position: float32(i) / last, Color: c}
	}

	return Paint{Kind: PaintGradient, Stops: stops, Start: start, End: end}
}

// Color resolves a single color token.
func (r *Resolver) Color(token string, active bool) RGBA {
	if isAccent(token) {
		return r.accentColor(active)
	}
	return r.parseToken(token)
}

func (r *Resolver) parseToken(token string) RGBA {
	if IsRGBFunc(token) {
		c, err := ParseRGB(token)
		if err != nil {
			r.reportOnce("rgb:"+token, "invalid rgb color, using black", "color", token, "error", err)
			return Black
		}
		return c
	}
	c, err := ParseHex(token)
	if err != nil {
		r.reportOnce("hex:"+token, "invalid hex color, using white", "color", token, "error", err)
		return White
	}
	return c
}

func (r *Resolver) accentColor(active bool) RGBA {
	if r.accent == nil {
		return Black
	}
	red, green, blue, err := r.accent.AccentColor()
	if err != nil {
		r.reportOnce("accent:"+err.Error(), "accent color unavailable, using black", "error", err)
		return Black
	}
	return AccentColor(red, green, blue, active)
}

// reportOnce logs a warning the first time key is seen.
func (r *Resolver) reportOnce(key, msg string, args ...any) {
	r.mu.Lock()
	_, seen := r.reported[key]
	if !seen {
		r.reported[key] = struct{}{}
	}
	r.mu.Unlock()
	if !seen {
		r.logger.Warn(msg, args...)
	}
}

func isAccent(token string) bool {
	return strings.EqualFold(strings.TrimSpace(token), AccentToken)
}
