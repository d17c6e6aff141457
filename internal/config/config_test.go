package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/winborder/internal/animation"
	"github.com/1broseidon/winborder/internal/border"
	"github.com/1broseidon/winborder/internal/easing"
)

func writeConfig(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.Global.Width != border.DefaultWidth || cfg.Global.Radius != border.DefaultRadius {
		t.Fatalf("unexpected default geometry: %+v", cfg.Global)
	}
	if got := cfg.AccentFallbackRGB(); got != [3]uint8{0x35, 0x84, 0xe4} {
		t.Fatalf("unexpected accent fallback %v", got)
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.LogLevel != DefaultLogLevel {
		t.Fatalf("expected default log level, got %q", res.Config.LogLevel)
	}
	if len(res.Files) != 0 {
		t.Fatalf("expected no files, got %v", res.Files)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "# empty\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Global.InitializeDelay != border.DefaultInitializeDelay {
		t.Fatalf("expected default initialize delay, got %v", res.Config.Global.InitializeDelay)
	}
}

func TestLoadFromPath_StrictUnknownKeyErrors(t *testing.T) {
	cases := map[string]string{
		"top level": "unknown_key: 1\n",
		"global":    "global:\n  border_colour: red\n",
		"gradient":  "global:\n  active_color:\n    colors: [red]\n    direction: 0deg\n    bogus: 1\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), "config.yaml", data)
			_, err := LoadFromPath(path)
			if err == nil {
				t.Fatalf("expected error for unknown key")
			}
			if !strings.Contains(err.Error(), "not found") {
				t.Fatalf("expected unknown field error, got %v", err)
			}
			if !strings.Contains(err.Error(), path) {
				t.Fatalf("expected error to include file path, got %v", err)
			}
		})
	}
}

func TestLoadFromPath_GlobalSettings(t *testing.T) {
	data := strings.Join([]string{
		"log_level: WARN",
		"accent_fallback: \"#ff8800\"",
		"reload_hotkey: Mod4-Mod1-b",
		"global:",
		"  border_width: 3",
		"  border_offset: 2",
		"  border_radius: 0",
		"  active_color:",
		"    colors: [\"#89b4fa\", accent]",
		"    direction: 45deg",
		"  inactive_color:",
		"    colors: [\"#000\", \"#fff\"]",
		"    direction:",
		"      start: [0, 0]",
		"      end: [1, 1]",
		"  initialize_delay: 100",
		"  unminimize_delay: 1.5s",
		"",
	}, "\n")
	path := writeConfig(t, t.TempDir(), "config.yaml", data)

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config
	if cfg.LogLevel != "warning" {
		t.Fatalf("expected warn alias to normalize, got %q", cfg.LogLevel)
	}
	if cfg.AccentFallbackRGB() != [3]uint8{0xff, 0x88, 0x00} {
		t.Fatalf("unexpected accent fallback %v", cfg.AccentFallbackRGB())
	}
	if cfg.ReloadHotkey != "Mod4-Mod1-b" {
		t.Fatalf("unexpected reload hotkey %q", cfg.ReloadHotkey)
	}
	g := cfg.Global
	if g.Width != 3 || g.Offset != 2 || g.Radius != 0 {
		t.Fatalf("unexpected geometry %+v", g)
	}
	if g.ActiveColor.Gradient == nil || g.ActiveColor.Gradient.Direction.Angle != "45deg" {
		t.Fatalf("expected angle gradient, got %v", g.ActiveColor)
	}
	if len(g.ActiveColor.Gradient.Colors) != 2 || g.ActiveColor.Gradient.Colors[1] != "accent" {
		t.Fatalf("unexpected gradient colors %v", g.ActiveColor.Gradient.Colors)
	}
	coords := g.InactiveColor.Gradient.Direction.Coordinates
	if coords == nil || coords.End != [2]float32{1, 1} {
		t.Fatalf("expected coordinate direction, got %v", g.InactiveColor)
	}
	if g.InitializeDelay != 100*time.Millisecond {
		t.Fatalf("expected integer milliseconds, got %v", g.InitializeDelay)
	}
	if g.UnminimizeDelay != 1500*time.Millisecond {
		t.Fatalf("expected duration string, got %v", g.UnminimizeDelay)
	}
}

func TestLoadFromPath_NegativeDurationRejected(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "global:\n  initialize_delay: -5\n")
	if _, err := LoadFromPath(path); err == nil || !strings.Contains(err.Error(), "negative") {
		t.Fatalf("expected negative duration error, got %v", err)
	}
}

func TestLoadFromPath_EmptyGradientHasSourceContext(t *testing.T) {
	data := "global:\n  active_color:\n    colors: []\n    direction: 90deg\n"
	path := writeConfig(t, t.TempDir(), "config.yaml", data)

	_, err := LoadFromPath(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if verr.Path != "global.active_color" {
		t.Fatalf("unexpected path %q", verr.Path)
	}
	if !strings.Contains(err.Error(), path+":3:") {
		t.Fatalf("expected file:line prefix, got %v", err)
	}
}

func TestLoadFromPath_Animations(t *testing.T) {
	data := strings.Join([]string{
		"global:",
		"  animations:",
		"    fps: 30",
		"    fade:",
		"      duration: 150",
		"      easing: ease-in-out",
		"    active:",
		"      - type: spiral",
		"        duration: 2s",
		"        easing: bounce",
		"    inactive:",
		"      - type: reverse-spiral",
		"",
	}, "\n")
	path := writeConfig(t, t.TempDir(), "config.yaml", data)

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	a := res.Config.Global.Animations
	if a.FPS != 30 {
		t.Fatalf("expected fps 30, got %d", a.FPS)
	}
	if a.Fade == nil || a.Fade.Duration != 150*time.Millisecond || a.Fade.Easing.String() != "ease-in-out" {
		t.Fatalf("unexpected fade %+v", a.Fade)
	}
	if len(a.Active) != 1 || a.Active[0].Kind != animation.Spiral || a.Active[0].Duration != 2*time.Second {
		t.Fatalf("unexpected active animations %+v", a.Active)
	}
	if a.Active[0].Easing != easing.Linear {
		t.Fatalf("expected unknown easing to fall back to linear")
	}
	if len(res.Config.Warnings) != 1 || !strings.Contains(res.Config.Warnings[0], "global.animations.active.0.easing") {
		t.Fatalf("expected one easing warning, got %v", res.Config.Warnings)
	}
	if len(a.Inactive) != 1 || a.Inactive[0].Kind != animation.ReverseSpiral || a.Inactive[0].Duration != animation.DefaultSpinDuration {
		t.Fatalf("unexpected inactive animations %+v", a.Inactive)
	}
}

func TestLoadFromPath_FadeInContinuousListRejected(t *testing.T) {
	data := "global:\n  animations:\n    active:\n      - type: fade\n"
	path := writeConfig(t, t.TempDir(), "config.yaml", data)
	_, err := LoadFromPath(path)
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Path != "global.animations.active.0.type" {
		t.Fatalf("expected validation error on type, got %v", err)
	}
}

func TestLoadFromPath_WindowRules(t *testing.T) {
	data := strings.Join([]string{
		"global:",
		"  border_width: 4",
		"  inactive_color: \"#595959\"",
		"  animations:",
		"    active:",
		"      - type: spiral",
		"window_rules:",
		"  - match: class",
		"    pattern: FIREFOX",
		"    border_width: 2",
		"  - match: title",
		"    strategy: contains",
		"    pattern: picture-in-picture",
		"    enabled: false",
		"  - match: class",
		"    strategy: regex",
		"    pattern: ^kitty|^Alacritty$",
		"    active_color: \"#ff0000\"",
		"    animations:",
		"      fps: 24",
		"  - match: class",
		"    pattern: firefox",
		"    border_width: 9",
		"",
	}, "\n")
	path := writeConfig(t, t.TempDir(), "config.yaml", data)

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config
	if len(cfg.Rules) != 4 {
		t.Fatalf("expected 4 rules, got %d", len(cfg.Rules))
	}

	s, enabled := cfg.SettingsFor("Mozilla Firefox", "firefox")
	if !enabled || s.Width != 2 {
		t.Fatalf("expected first matching rule to win, got width %d enabled %v", s.Width, enabled)
	}
	if s.InactiveColor.Solid != "#595959" || len(s.Animations.Active) != 1 {
		t.Fatalf("expected unset fields to inherit global, got %+v", s)
	}

	if _, enabled := cfg.SettingsFor("Picture-in-Picture", "firefox-pip"); enabled {
		t.Fatalf("expected contains rule to disable the border")
	}

	s, enabled = cfg.SettingsFor("shell", "kitty")
	if !enabled || s.ActiveColor.Solid != "#ff0000" {
		t.Fatalf("expected regex rule, got %+v", s)
	}
	if s.Animations.FPS != 24 || len(s.Animations.Active) != 0 {
		t.Fatalf("expected rule animations to replace global ones, got %+v", s.Animations)
	}
	if _, enabled := cfg.SettingsFor("shell", "xkitty"); !enabled {
		t.Fatalf("expected anchored regex not to match")
	}

	s, enabled = cfg.SettingsFor("editor", "code")
	if !enabled || s.Width != 4 {
		t.Fatalf("expected global settings without a rule, got %+v", s)
	}
}

func TestLoadFromPath_InvalidRuleHasSourceContext(t *testing.T) {
	data := strings.Join([]string{
		"window_rules:",
		"  - match: class",
		"    pattern: a",
		"  - match: role",
		"    pattern: b",
		"",
	}, "\n")
	path := writeConfig(t, t.TempDir(), "config.yaml", data)

	_, err := LoadFromPath(path)
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Path != "window_rules.1.match" {
		t.Fatalf("expected match validation error, got %v", err)
	}
	if verr.Source.Line != 4 {
		t.Fatalf("expected source line 4, got %+v", verr.Source)
	}
}

func TestLoadFromPath_BadRegexRejected(t *testing.T) {
	data := "window_rules:\n  - match: title\n    strategy: regex\n    pattern: \"(\"\n"
	path := writeConfig(t, t.TempDir(), "config.yaml", data)
	_, err := LoadFromPath(path)
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Path != "window_rules.0.pattern" {
		t.Fatalf("expected pattern validation error, got %v", err)
	}
}

func TestLoadFromPath_IncludeDirectoryOrderAndMainOverrides(t *testing.T) {
	dir := t.TempDir()

	// config.d loaded first, in sorted order.
	configD := filepath.Join(dir, "config.d")
	if err := os.MkdirAll(configD, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeConfig(t, configD, "10-base.yaml", "global:\n  border_width: 5\nwindow_rules:\n  - match: class\n    pattern: a\n")
	writeConfig(t, configD, "20-override.yaml", "global:\n  border_width: 6\n  border_offset: 3\n")

	// Main file overrides includes.
	main := strings.Join([]string{
		"include:",
		"  - config.d",
		"global:",
		"  border_width: 7",
		"window_rules:",
		"  - match: class",
		"    pattern: b",
		"",
	}, "\n")
	path := writeConfig(t, dir, "config.yaml", main)

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Global.Width != 7 || res.Config.Global.Offset != 3 {
		t.Fatalf("expected width 7 offset 3, got %+v", res.Config.Global)
	}
	if len(res.Config.Rules) != 2 || res.Config.Rules[0].Pattern != "a" || res.Config.Rules[1].Pattern != "b" {
		t.Fatalf("expected included rules first, got %+v", res.Config.Rules)
	}
	if len(res.Files) != 3 {
		t.Fatalf("expected 3 loaded files, got %v", res.Files)
	}
}

func TestLoadFromPath_IncludeMissingPathHasContext(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "include:\n  - missing.yaml\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "include") || !strings.Contains(err.Error(), "missing.yaml") {
		t.Fatalf("expected include error, got %v", err)
	}
	if !strings.Contains(err.Error(), path+":") {
		t.Fatalf("expected error to include file:line:col prefix, got %v", err)
	}
}

func TestLoadFromPath_IncludeCycleDetection(t *testing.T) {
	dir := t.TempDir()
	a := writeConfig(t, dir, "a.yaml", "include: b.yaml\n")
	writeConfig(t, dir, "b.yaml", "include: a.yaml\n")

	_, err := LoadFromPath(a)
	if err == nil {
		t.Fatalf("expected cycle error")
	}
	if !strings.Contains(err.Error(), "include cycle") {
		t.Fatalf("expected cycle error, got %v", err)
	}
}

func TestExplain(t *testing.T) {
	data := strings.Join([]string{
		"global:",
		"  border_width: 6",
		"window_rules:",
		"  - match: class",
		"    pattern: code",
		"",
	}, "\n")
	path := writeConfig(t, t.TempDir(), "config.yaml", data)
	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	val, src, err := Explain(res, "global.border_width")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if val != 6 || src.Kind != SourceFile || src.Line != 2 {
		t.Fatalf("unexpected explain result %#v %+v", val, src)
	}

	val, src, err = Explain(res, "window_rules.0.border_width")
	if err != nil {
		t.Fatalf("explain rule: %v", err)
	}
	if val != 6 || src.Line != 2 {
		t.Fatalf("expected rule width inherited from global, got %#v %+v", val, src)
	}

	val, src, err = Explain(res, "global.initialize_delay")
	if err != nil {
		t.Fatalf("explain delay: %v", err)
	}
	if val != "250ms" || src.Kind != SourceDefault {
		t.Fatalf("unexpected default explain %#v %+v", val, src)
	}

	if _, _, err := Explain(res, "global.nope"); err == nil {
		t.Fatalf("expected unknown path error")
	}
}

func TestDocumentReparses(t *testing.T) {
	data := strings.Join([]string{
		"global:",
		"  active_color:",
		"    colors: [red, blue]",
		"    direction: {start: [0, 0.5], end: [1, 0.5]}",
		"  animations:",
		"    fade: {duration: 120ms, easing: \"cubic-bezier(0.1, 0.7, 1, 0.1)\"}",
		"window_rules:",
		"  - match: title",
		"    strategy: contains",
		"    pattern: vim",
		"    enabled: false",
		"",
	}, "\n")
	cfg, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	out, err := yaml.Marshal(cfg.Document())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	again, err := Parse(out)
	if err != nil {
		t.Fatalf("reparse: %v\n%s", err, out)
	}
	if again.Global.ActiveColor.String() != cfg.Global.ActiveColor.String() {
		t.Fatalf("active color changed: %s vs %s", again.Global.ActiveColor, cfg.Global.ActiveColor)
	}
	if again.Global.Animations.Fade.Easing != cfg.Global.Animations.Fade.Easing {
		t.Fatalf("fade easing changed: %s", again.Global.Animations.Fade.Easing)
	}
	if len(again.Rules) != 1 || again.Rules[0].Enabled {
		t.Fatalf("rules changed: %+v", again.Rules)
	}
}
