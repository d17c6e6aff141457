package colors

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// AccentToken selects the desktop accent color.
const AccentToken = "accent"

// Spec is a color setting as written in the config file. Exactly one of
// Solid or Gradient is set.
//
// In YAML a scalar is a solid token and a mapping is a gradient:
//
//	active_color: accent
//	active_color: "#ff000080"
//	active_color:
//	  colors: ["#89b4fa", "#cba6f7"]
//	  direction: 45deg
type Spec struct {
	Solid    string
	Gradient *GradientSpec
}

// GradientSpec lists the gradient colors (at least one) and its direction.
type GradientSpec struct {
	Colors    []string  `yaml:"colors" json:"colors"`
	Direction Direction `yaml:"direction" json:"direction"`
}

// Direction is either an angle string ("90deg") or explicit unit-square
// coordinates.
type Direction struct {
	Angle       string
	Coordinates *Coordinates
}

// Coordinates are gradient endpoints in the unit square, top-left origin.
type Coordinates struct {
	Start [2]float32 `yaml:"start" json:"start"`
	End   [2]float32 `yaml:"end" json:"end"`
}

// SolidSpec returns a solid spec for token.
func SolidSpec(token string) Spec {
	return Spec{Solid: token}
}

// GradientOf returns a gradient spec.
func GradientOf(dir Direction, colors ...string) Spec {
	return Spec{Gradient: &GradientSpec{Colors: colors, Direction: dir}}
}

// AngleDirection returns a direction from an angle string such as "45deg".
func AngleDirection(angle string) Direction {
	return Direction{Angle: angle}
}

// CoordinateDirection returns a direction from explicit endpoints.
func CoordinateDirection(start, end [2]float32) Direction {
	return Direction{Coordinates: &Coordinates{Start: start, End: end}}
}

// ParseSpec decodes a color spec from YAML text: a bare token such as
// "accent" or "#89b4fa", or a flow mapping such as
// {colors: [red, blue], direction: 90deg}.
func ParseSpec(text string) (Spec, error) {
	text = strings.TrimSpace(text)
	// A leading '#' would start a YAML comment.
	if strings.HasPrefix(text, "#") {
		return SolidSpec(text), nil
	}
	var s Spec
	if err := yaml.Unmarshal([]byte(text), &s); err != nil {
		return Spec{}, fmt.Errorf("invalid color spec: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Spec{}, err
	}
	return s, nil
}

// IsZero reports whether nothing was configured.
func (s Spec) IsZero() bool {
	return s.Solid == "" && s.Gradient == nil
}

func (s Spec) String() string {
	if s.Gradient == nil {
		return s.Solid
	}
	return fmt.Sprintf("gradient%v %s", s.Gradient.Colors, s.Gradient.Direction)
}

func (d Direction) String() string {
	if d.Coordinates != nil {
		return fmt.Sprintf("[%g,%g]->[%g,%g]",
			d.Coordinates.Start[0], d.Coordinates.Start[1], d.Coordinates.End[0], d.Coordinates.End[1])
	}
	return d.Angle
}

// Validate checks structural problems that cannot be recovered by falling
// back to a default color. Token syntax is not checked here; bad tokens fall
// back at resolve time.
func (s Spec) Validate() error {
	if s.Gradient == nil {
		if s.Solid == "" {
			return fmt.Errorf("color must not be empty")
		}
		return nil
	}
	if len(s.Gradient.Colors) == 0 {
		return fmt.Errorf("gradient needs at least one color")
	}
	d := s.Gradient.Direction
	if d.Coordinates == nil && d.Angle == "" {
		return fmt.Errorf("gradient direction is required")
	}
	return nil
}

func (s *Spec) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*s = Spec{Solid: value.Value}
		return nil
	case yaml.MappingNode:
		if err := checkKeys(value, "colors", "direction"); err != nil {
			return err
		}
		var g GradientSpec
		if err := value.Decode(&g); err != nil {
			return err
		}
		*s = Spec{Gradient: &g}
		return nil
	default:
		return fmt.Errorf("line %d: color must be a string or a gradient mapping", value.Line)
	}
}

func (s Spec) MarshalYAML() (interface{}, error) {
	if s.Gradient != nil {
		return s.Gradient, nil
	}
	return s.Solid, nil
}

func (d *Direction) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*d = Direction{Angle: value.Value}
		return nil
	case yaml.MappingNode:
		if err := checkKeys(value, "start", "end"); err != nil {
			return err
		}
		var c Coordinates
		if err := value.Decode(&c); err != nil {
			return err
		}
		*d = Direction{Coordinates: &c}
		return nil
	default:
		return fmt.Errorf("line %d: direction must be an angle string or {start, end}", value.Line)
	}
}

func (d Direction) MarshalYAML() (interface{}, error) {
	if d.Coordinates != nil {
		return d.Coordinates, nil
	}
	return d.Angle, nil
}

// checkKeys rejects unknown mapping keys; Node.Decode does not honor the
// decoder's KnownFields setting.
func checkKeys(node *yaml.Node, allowed ...string) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		ok := false
		for _, a := range allowed {
			if key == a {
				ok = true
				break
			}
		}
		if !ok {
			return fmt.Errorf("line %d: field %s not found, expected one of %v", node.Content[i].Line, key, allowed)
		}
	}
	return nil
}
