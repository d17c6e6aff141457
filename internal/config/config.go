package config

import (
	"fmt"
	"strings"

	"github.com/1broseidon/winborder/internal/animation"
	"github.com/1broseidon/winborder/internal/border"
	"github.com/1broseidon/winborder/internal/colors"
)

const (
	DefaultLogLevel       = "info"
	DefaultAccentFallback = "#3584e4"
)

// Config is the effective daemon configuration.
type Config struct {
	LogLevel       string
	AccentFallback string
	ReloadHotkey   string
	ToggleHotkey   string

	Global border.Settings
	Rules  []WindowRule

	// Warnings collects recoverable problems found while building the
	// config, such as an easing curve replaced by linear.
	Warnings []string
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel:       DefaultLogLevel,
		AccentFallback: DefaultAccentFallback,
		Global:         border.DefaultSettings(),
	}
}

// AccentFallbackRGB returns the configured fallback accent. An unparsable
// value yields the built-in default.
func (c *Config) AccentFallbackRGB() [3]uint8 {
	rgba, err := colors.ParseHex(c.AccentFallback)
	if err != nil {
		rgba, _ = colors.ParseHex(DefaultAccentFallback)
	}
	return [3]uint8{to8(rgba.R), to8(rgba.G), to8(rgba.B)}
}

func to8(v float32) uint8 {
	return uint8(v*255 + 0.5)
}

// Validate checks cross-field invariants of an effective config.
func (c *Config) Validate() error {
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return &ValidationError{Path: "log_level", Err: err}
	}
	if _, err := colors.ParseHex(c.AccentFallback); err != nil {
		return &ValidationError{Path: "accent_fallback", Err: err}
	}
	if err := validateSettings(c.Global); err != nil {
		return &ValidationError{Path: "global", Err: err}
	}
	for i := range c.Rules {
		if err := validateSettings(c.Rules[i].Settings); err != nil {
			return &ValidationError{Path: fmt.Sprintf("window_rules.%d", i), Err: err}
		}
	}
	return nil
}

func validateSettings(s border.Settings) error {
	if s.Width < 0 {
		return fmt.Errorf("border_width must be >= 0")
	}
	if s.Radius < 0 && s.Radius != border.DefaultRadius {
		return fmt.Errorf("border_radius must be >= 0 or -1")
	}
	if err := s.ActiveColor.Validate(); err != nil {
		return fmt.Errorf("active_color: %w", err)
	}
	if err := s.InactiveColor.Validate(); err != nil {
		return fmt.Errorf("inactive_color: %w", err)
	}
	return nil
}

// LogLevels lists the accepted log_level values.
var LogLevels = []string{"debug", "info", "warning", "error"}

// ParseLogLevel normalizes a log_level value. "warn" is accepted as an alias.
func ParseLogLevel(s string) (string, error) {
	level := strings.ToLower(strings.TrimSpace(s))
	if level == "warn" {
		level = "warning"
	}
	for _, known := range LogLevels {
		if level == known {
			return level, nil
		}
	}
	return "", fmt.Errorf("unknown log level %q (expected %s)", s, strings.Join(LogLevels, ", "))
}

// Document renders the effective config in file form.
func (c *Config) Document() RawConfig {
	logLevel := c.LogLevel
	accent := c.AccentFallback
	reload := c.ReloadHotkey
	toggle := c.ToggleHotkey
	global := rawFromSettings(c.Global)

	doc := RawConfig{
		LogLevel:       &logLevel,
		AccentFallback: &accent,
		ReloadHotkey:   &reload,
		ToggleHotkey:   &toggle,
		Global:         &global,
	}
	for _, rule := range c.Rules {
		enabled := rule.Enabled
		doc.WindowRules = append(doc.WindowRules, RawWindowRule{
			Match:     string(rule.Match),
			Strategy:  string(rule.Strategy),
			Pattern:   rule.Pattern,
			Enabled:   &enabled,
			RawBorder: rawFromSettings(rule.Settings),
		})
	}
	return doc
}

func rawFromSettings(s border.Settings) RawBorder {
	width, offset, radius := s.Width, s.Offset, s.Radius
	active, inactive := s.ActiveColor, s.InactiveColor
	initDelay, unminDelay := Millis(s.InitializeDelay), Millis(s.UnminimizeDelay)
	anims := rawFromAnimations(s.Animations)
	return RawBorder{
		BorderWidth:     &width,
		BorderOffset:    &offset,
		BorderRadius:    &radius,
		ActiveColor:     &active,
		InactiveColor:   &inactive,
		InitializeDelay: &initDelay,
		UnminimizeDelay: &unminDelay,
		Animations:      &anims,
	}
}

func rawFromAnimations(a animation.Settings) RawAnimations {
	fps := a.FPS
	out := RawAnimations{FPS: &fps}
	if a.Fade != nil {
		d := Millis(a.Fade.Duration)
		e := a.Fade.Easing.String()
		out.Fade = &RawFade{Duration: &d, Easing: &e}
	}
	convert := func(list []animation.Params) []RawAnimation {
		var raw []RawAnimation
		for _, p := range list {
			d := Millis(p.Duration)
			e := p.Easing.String()
			raw = append(raw, RawAnimation{Type: string(p.Kind), Duration: &d, Easing: &e})
		}
		return raw
	}
	out.Active = convert(a.Active)
	out.Inactive = convert(a.Inactive)
	return out
}
