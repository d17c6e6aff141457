package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/1broseidon/winborder/internal/animation"
	"github.com/1broseidon/winborder/internal/border"
	"github.com/1broseidon/winborder/internal/easing"
)

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()
	warn := func(path, msg string) {
		cfg.Warnings = append(cfg.Warnings, path+": "+msg)
	}

	if raw.LogLevel != nil {
		level, err := ParseLogLevel(*raw.LogLevel)
		if err != nil {
			return nil, &ValidationError{Path: "log_level", Err: err}
		}
		cfg.LogLevel = level
	}
	if raw.AccentFallback != nil {
		cfg.AccentFallback = strings.TrimSpace(*raw.AccentFallback)
	}
	if raw.ReloadHotkey != nil {
		cfg.ReloadHotkey = strings.TrimSpace(*raw.ReloadHotkey)
	}
	if raw.ToggleHotkey != nil {
		cfg.ToggleHotkey = strings.TrimSpace(*raw.ToggleHotkey)
	}

	if raw.Global != nil {
		if err := applyBorder(&cfg.Global, *raw.Global, "global", warn); err != nil {
			return nil, err
		}
	}

	for i, r := range raw.WindowRules {
		path := fmt.Sprintf("window_rules.%d", i)
		rule, err := buildRule(cfg.Global, r, path, warn)
		if err != nil {
			return nil, err
		}
		cfg.Rules = append(cfg.Rules, rule)
	}

	return cfg, nil
}

func buildRule(global border.Settings, r RawWindowRule, path string, warn func(path, msg string)) (WindowRule, error) {
	kind, err := parseMatchKind(r.Match)
	if err != nil {
		return WindowRule{}, &ValidationError{Path: path + ".match", Err: err}
	}
	strategy, err := parseStrategy(r.Strategy)
	if err != nil {
		return WindowRule{}, &ValidationError{Path: path + ".strategy", Err: err}
	}
	if r.Pattern == "" {
		return WindowRule{}, &ValidationError{Path: path + ".pattern", Err: errors.New("pattern is required")}
	}

	rule := WindowRule{
		Match:    kind,
		Strategy: strategy,
		Pattern:  r.Pattern,
		Enabled:  true,
		Settings: global,
	}
	if r.Enabled != nil {
		rule.Enabled = *r.Enabled
	}
	if strategy == StrategyRegex {
		re, err := regexp.Compile(r.Pattern)
		if err != nil {
			return WindowRule{}, &ValidationError{Path: path + ".pattern", Err: err}
		}
		rule.re = re
	}
	if err := applyBorder(&rule.Settings, r.RawBorder, path, warn); err != nil {
		return WindowRule{}, err
	}
	return rule, nil
}

// applyBorder overlays the set fields of rb onto dst. An animations block
// replaces the inherited animations as a whole.
func applyBorder(dst *border.Settings, rb RawBorder, path string, warn func(path, msg string)) error {
	if rb.BorderWidth != nil {
		if *rb.BorderWidth < 0 {
			return &ValidationError{Path: path + ".border_width", Err: errors.New("must be >= 0")}
		}
		dst.Width = *rb.BorderWidth
	}
	if rb.BorderOffset != nil {
		dst.Offset = *rb.BorderOffset
	}
	if rb.BorderRadius != nil {
		r := *rb.BorderRadius
		if r < 0 && r != border.DefaultRadius {
			return &ValidationError{Path: path + ".border_radius", Err: errors.New("must be >= 0 or -1")}
		}
		dst.Radius = r
	}
	if rb.ActiveColor != nil {
		if err := rb.ActiveColor.Validate(); err != nil {
			return &ValidationError{Path: path + ".active_color", Err: err}
		}
		dst.ActiveColor = *rb.ActiveColor
	}
	if rb.InactiveColor != nil {
		if err := rb.InactiveColor.Validate(); err != nil {
			return &ValidationError{Path: path + ".inactive_color", Err: err}
		}
		dst.InactiveColor = *rb.InactiveColor
	}
	if rb.InitializeDelay != nil {
		dst.InitializeDelay = rb.InitializeDelay.Duration()
	}
	if rb.UnminimizeDelay != nil {
		dst.UnminimizeDelay = rb.UnminimizeDelay.Duration()
	}
	if rb.Animations != nil {
		anims, err := buildAnimations(*rb.Animations, path+".animations", warn)
		if err != nil {
			return err
		}
		dst.Animations = anims
	}
	return nil
}

func buildAnimations(raw RawAnimations, path string, warn func(path, msg string)) (animation.Settings, error) {
	out := animation.Settings{FPS: animation.DefaultFPS}
	if raw.FPS != nil {
		if *raw.FPS < 1 || *raw.FPS > 240 {
			return out, &ValidationError{Path: path + ".fps", Err: errors.New("must be between 1 and 240")}
		}
		out.FPS = *raw.FPS
	}

	if raw.Fade != nil {
		fade := animation.Params{
			Kind:     animation.Fade,
			Duration: animation.DefaultFadeDuration,
			Easing:   curve(raw.Fade.Easing, path+".fade.easing", warn),
		}
		if raw.Fade.Duration != nil {
			fade.Duration = raw.Fade.Duration.Duration()
		}
		if fade.Duration <= 0 {
			return out, &ValidationError{Path: path + ".fade.duration", Err: errors.New("must be positive")}
		}
		out.Fade = &fade
	}

	var err error
	if out.Active, err = buildContinuous(raw.Active, path+".active", warn); err != nil {
		return out, err
	}
	if out.Inactive, err = buildContinuous(raw.Inactive, path+".inactive", warn); err != nil {
		return out, err
	}
	return out, nil
}

func buildContinuous(raw []RawAnimation, path string, warn func(path, msg string)) ([]animation.Params, error) {
	var out []animation.Params
	for i, r := range raw {
		itemPath := fmt.Sprintf("%s.%d", path, i)
		kind, err := animation.ParseKind(r.Type)
		if err != nil {
			return nil, &ValidationError{Path: itemPath + ".type", Err: err}
		}
		if kind == animation.Fade {
			return nil, &ValidationError{Path: itemPath + ".type", Err: errors.New("fade is configured under animations.fade")}
		}
		p := animation.Params{
			Kind:     kind,
			Duration: animation.DefaultSpinDuration,
			Easing:   curve(r.Easing, itemPath+".easing", warn),
		}
		if r.Duration != nil {
			p.Duration = r.Duration.Duration()
		}
		if p.Duration <= 0 {
			return nil, &ValidationError{Path: itemPath + ".duration", Err: errors.New("must be positive")}
		}
		out = append(out, p)
	}
	return out, nil
}

// curve parses an easing name. Unusable curves fall back to linear with a
// warning instead of failing the whole config.
func curve(s *string, path string, warn func(path, msg string)) easing.Curve {
	if s == nil {
		return easing.Linear
	}
	c, err := easing.Parse(*s)
	if err != nil {
		warn(path, fmt.Sprintf("%v; using linear", err))
		return easing.Linear
	}
	return c
}
