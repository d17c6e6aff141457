package colors

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	ErrInvalidHex   = errors.New("invalid hex color")
	ErrInvalidRGB   = errors.New("invalid rgb color")
	ErrInvalidAngle = errors.New("invalid gradient angle")
)

// ParseHex parses #RGB, #RGBA, #RRGGBB and #RRGGBBAA. The leading '#' is
// optional. Shorthand nibbles are duplicated, so #abc is #aabbcc.
func ParseHex(s string) (RGBA, error) {
	digits := strings.TrimPrefix(strings.TrimSpace(s), "#")

	var short bool
	switch len(digits) {
	case 3, 4:
		short = true
	case 6, 8:
	default:
		return RGBA{}, fmt.Errorf("%w: %q has %d digits", ErrInvalidHex, s, len(digits))
	}

	width := 2
	if short {
		width = 1
	}
	channels := [4]float32{1, 1, 1, 1}
	for i := 0; i*width < len(digits); i++ {
		chunk := digits[i*width : (i+1)*width]
		n, err := strconv.ParseUint(chunk, 16, 8)
		if err != nil {
			return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
		}
		if short {
			n = n<<4 | n
		}
		channels[i] = float32(n) / 255
	}
	return RGBA{R: channels[0], G: channels[1], B: channels[2], A: channels[3]}, nil
}

// ParseRGB parses rgb(r, g, b) and rgba(r, g, b, a). The color channels are
// integers in [0,255]; alpha is a float clamped to [0,1].
func ParseRGB(s string) (RGBA, error) {
	trimmed := strings.ToLower(strings.TrimSpace(s))

	var body string
	switch {
	case strings.HasPrefix(trimmed, "rgba(") && strings.HasSuffix(trimmed, ")"):
		body = trimmed[len("rgba(") : len(trimmed)-1]
	case strings.HasPrefix(trimmed, "rgb(") && strings.HasSuffix(trimmed, ")"):
		body = trimmed[len("rgb(") : len(trimmed)-1]
	default:
		return RGBA{}, fmt.Errorf("%w: %q", ErrInvalidRGB, s)
	}

	parts := strings.Split(body, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return RGBA{}, fmt.Errorf("%w: %q needs 3 or 4 components", ErrInvalidRGB, s)
	}

	var channels [3]float32
	for i := 0; i < 3; i++ {
		n, err := strconv.Atoi(strings.TrimSpace(parts[i]))
		if err != nil || n < 0 || n > 255 {
			return RGBA{}, fmt.Errorf("%w: component %q out of range", ErrInvalidRGB, strings.TrimSpace(parts[i]))
		}
		channels[i] = float32(n) / 255
	}

	alpha := float32(1)
	if len(parts) == 4 {
		a, err := strconv.ParseFloat(strings.TrimSpace(parts[3]), 32)
		if err != nil || math.IsNaN(a) {
			return RGBA{}, fmt.Errorf("%w: alpha %q", ErrInvalidRGB, strings.TrimSpace(parts[3]))
		}
		alpha = clamp01(float32(a))
	}
	return RGBA{R: channels[0], G: channels[1], B: channels[2], A: alpha}, nil
}

// IsRGBFunc reports whether token uses the rgb()/rgba() notation.
func IsRGBFunc(token string) bool {
	t := strings.ToLower(strings.TrimSpace(token))
	return strings.HasPrefix(t, "rgb(") || strings.HasPrefix(t, "rgba(")
}

// ParseAngle parses "<degrees>deg", e.g. "90deg" or "-45.5 deg".
func ParseAngle(s string) (float32, error) {
	trimmed := strings.TrimSpace(s)
	num, ok := strings.CutSuffix(trimmed, "deg")
	if !ok {
		return 0, fmt.Errorf("%w: %q must end in deg", ErrInvalidAngle, s)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(num), 32)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAngle, s)
	}
	return float32(v), nil
}
