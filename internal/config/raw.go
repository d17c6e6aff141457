package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/winborder/internal/colors"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		// Not present.
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

// Millis is a duration written either as integer milliseconds or as a Go
// duration string:
//
//	initialize_delay: 250
//	initialize_delay: 250ms
type Millis time.Duration

func (m Millis) Duration() time.Duration { return time.Duration(m) }

func (m *Millis) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: duration must be milliseconds or a duration string", value.Line)
	}
	s := strings.TrimSpace(value.Value)
	var d time.Duration
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		d = time.Duration(n) * time.Millisecond
	} else {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("line %d: invalid duration %q", value.Line, s)
		}
		d = parsed
	}
	if d < 0 {
		return fmt.Errorf("line %d: duration %q must not be negative", value.Line, s)
	}
	*m = Millis(d)
	return nil
}

func (m Millis) MarshalYAML() (interface{}, error) {
	return time.Duration(m).String(), nil
}

type RawFade struct {
	Duration *Millis `yaml:"duration,omitempty"`
	Easing   *string `yaml:"easing,omitempty"`
}

type RawAnimation struct {
	Type     string  `yaml:"type"`
	Duration *Millis `yaml:"duration,omitempty"`
	Easing   *string `yaml:"easing,omitempty"`
}

type RawAnimations struct {
	FPS      *int           `yaml:"fps,omitempty"`
	Fade     *RawFade       `yaml:"fade,omitempty"`
	Active   []RawAnimation `yaml:"active,omitempty"`
	Inactive []RawAnimation `yaml:"inactive,omitempty"`
}

// RawBorder holds the border fields shared by the global section and
// window rules. Nil fields inherit.
type RawBorder struct {
	BorderWidth     *int           `yaml:"border_width,omitempty"`
	BorderOffset    *int           `yaml:"border_offset,omitempty"`
	BorderRadius    *float64       `yaml:"border_radius,omitempty"`
	ActiveColor     *colors.Spec   `yaml:"active_color,omitempty"`
	InactiveColor   *colors.Spec   `yaml:"inactive_color,omitempty"`
	InitializeDelay *Millis        `yaml:"initialize_delay,omitempty"`
	UnminimizeDelay *Millis        `yaml:"unminimize_delay,omitempty"`
	Animations      *RawAnimations `yaml:"animations,omitempty"`
}

type RawWindowRule struct {
	Match     string `yaml:"match"`
	Strategy  string `yaml:"strategy,omitempty"`
	Pattern   string `yaml:"pattern"`
	Enabled   *bool  `yaml:"enabled,omitempty"`
	RawBorder `yaml:",inline"`
}

type RawConfig struct {
	Include        IncludeList     `yaml:"include,omitempty"`
	LogLevel       *string         `yaml:"log_level,omitempty"`
	AccentFallback *string         `yaml:"accent_fallback,omitempty"`
	ReloadHotkey   *string         `yaml:"reload_hotkey,omitempty"`
	ToggleHotkey   *string         `yaml:"toggle_hotkey,omitempty"`
	Global         *RawBorder      `yaml:"global,omitempty"`
	WindowRules    []RawWindowRule `yaml:"window_rules,omitempty"`
}

// merge applies overlay on top of c. Window rules from both are kept, the
// overlay's after c's, so rules in a main file are tried after its includes.
func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c

	if overlay.LogLevel != nil {
		out.LogLevel = overlay.LogLevel
	}
	if overlay.AccentFallback != nil {
		out.AccentFallback = overlay.AccentFallback
	}
	if overlay.ReloadHotkey != nil {
		out.ReloadHotkey = overlay.ReloadHotkey
	}
	if overlay.ToggleHotkey != nil {
		out.ToggleHotkey = overlay.ToggleHotkey
	}
	if overlay.Global != nil {
		if out.Global == nil {
			out.Global = &RawBorder{}
		}
		merged := mergeRawBorder(*out.Global, *overlay.Global)
		out.Global = &merged
	}
	if len(overlay.WindowRules) > 0 {
		rules := make([]RawWindowRule, 0, len(out.WindowRules)+len(overlay.WindowRules))
		rules = append(rules, out.WindowRules...)
		out.WindowRules = append(rules, overlay.WindowRules...)
	}

	return out
}

func mergeRawBorder(base RawBorder, overlay RawBorder) RawBorder {
	out := base
	if overlay.BorderWidth != nil {
		out.BorderWidth = overlay.BorderWidth
	}
	if overlay.BorderOffset != nil {
		out.BorderOffset = overlay.BorderOffset
	}
	if overlay.BorderRadius != nil {
		out.BorderRadius = overlay.BorderRadius
	}
	if overlay.ActiveColor != nil {
		out.ActiveColor = overlay.ActiveColor
	}
	if overlay.InactiveColor != nil {
		out.InactiveColor = overlay.InactiveColor
	}
	if overlay.InitializeDelay != nil {
		out.InitializeDelay = overlay.InitializeDelay
	}
	if overlay.UnminimizeDelay != nil {
		out.UnminimizeDelay = overlay.UnminimizeDelay
	}
	if overlay.Animations != nil {
		out.Animations = overlay.Animations
	}
	return out
}
