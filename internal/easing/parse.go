package easing

import (
	"fmt"
	"strconv"
	"strings"
)

// Named CSS timing functions.
var presets = map[string][4]float32{
	"ease":        {0.25, 0.1, 0.25, 1},
	"ease-in":     {0.42, 0, 1, 1},
	"ease-out":    {0, 0, 0.58, 1},
	"ease-in-out": {0.42, 0, 0.58, 1},
}

// Names lists the accepted preset names.
func Names() []string {
	return []string{"linear", "ease", "ease-in", "ease-out", "ease-in-out"}
}

// Parse accepts a preset name or "cubic-bezier(x1, y1, x2, y2)". An empty
// string is linear.
func Parse(s string) (Curve, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch name {
	case "", "linear":
		return Linear, nil
	}
	if p, ok := presets[name]; ok {
		c, err := Build(p[0], p[1], p[2], p[3])
		if err != nil {
			return Curve{}, err
		}
		c.name = name
		return c, nil
	}

	body, ok := strings.CutPrefix(name, "cubic-bezier(")
	if !ok {
		return Curve{}, fmt.Errorf("unknown easing %q", s)
	}
	body, ok = strings.CutSuffix(body, ")")
	if !ok {
		return Curve{}, fmt.Errorf("easing %q: missing closing parenthesis", s)
	}
	parts := strings.Split(body, ",")
	if len(parts) != 4 {
		return Curve{}, fmt.Errorf("easing %q: cubic-bezier takes 4 numbers", s)
	}
	var v [4]float32
	for i, part := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(part), 32)
		if err != nil {
			return Curve{}, fmt.Errorf("easing %q: %w", s, err)
		}
		v[i] = float32(f)
	}
	c, err := Build(v[0], v[1], v[2], v[3])
	if err != nil {
		return Curve{}, fmt.Errorf("easing %q: %w", s, err)
	}
	return c, nil
}

// MustParse is Parse for package-level defaults.
func MustParse(s string) Curve {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}
