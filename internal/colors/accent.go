package colors

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// AccentSource reports the desktop accent color as 8-bit RGB.
type AccentSource interface {
	AccentColor() (r, g, b uint8, err error)
}

// StaticAccent always reports the same color.
type StaticAccent struct {
	R, G, B uint8
}

func (s StaticAccent) AccentColor() (uint8, uint8, uint8, error) {
	return s.R, s.G, s.B, nil
}

// AccentColor converts an 8-bit accent color into the active or inactive
// border color. The inactive variant is a desaturated, darker version
// derived from the active channels.
func AccentColor(r, g, b uint8, active bool) RGBA {
	red := float32(r) / 255
	green := float32(g) / 255
	blue := float32(b) / 255
	if active {
		return RGBA{R: red, G: green, B: blue, A: 1}
	}
	avg := (red + green + blue) / 3
	return RGBA{
		R: avg/1.5 + red/10,
		G: avg/1.5 + green/10,
		B: avg/1.5 + blue/10,
		A: 1,
	}
}

// gnomeAccents maps org.gnome.desktop.interface accent-color names to the
// libadwaita palette.
var gnomeAccents = map[string][3]uint8{
	"blue":   {0x35, 0x84, 0xe4},
	"teal":   {0x21, 0x90, 0xa4},
	"green":  {0x3a, 0x94, 0x4a},
	"yellow": {0xc8, 0x88, 0x00},
	"orange": {0xed, 0x5b, 0x00},
	"red":    {0xe6, 0x2d, 0x42},
	"pink":   {0xd5, 0x61, 0x99},
	"purple": {0x91, 0x41, 0xac},
	"slate":  {0x6f, 0x83, 0x96},
}

// GSettingsAccent reads the GNOME accent-color setting. Results are cached
// for TTL so focus changes do not spawn a process each time. When gsettings
// is missing or reports an unknown name the Fallback color is used.
type GSettingsAccent struct {
	Fallback [3]uint8
	TTL      time.Duration
	Logger   *slog.Logger

	// run executes gsettings; replaced in tests.
	run func(ctx context.Context) (string, error)

	mu      sync.Mutex
	cached  [3]uint8
	expires time.Time
}

func NewGSettingsAccent(fallback [3]uint8, logger *slog.Logger) *GSettingsAccent {
	if logger == nil {
		logger = slog.Default()
	}
	return &GSettingsAccent{
		Fallback: fallback,
		TTL:      5 * time.Second,
		Logger:   logger,
		run:      runGSettings,
	}
}

func (g *GSettingsAccent) AccentColor() (uint8, uint8, uint8, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if time.Now().Before(g.expires) {
		return g.cached[0], g.cached[1], g.cached[2], nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	rgb := g.Fallback
	out, err := g.run(ctx)
	if err == nil {
		name := strings.Trim(strings.TrimSpace(out), "'\"")
		known, ok := gnomeAccents[name]
		if !ok {
			err = fmt.Errorf("unknown accent-color %q", name)
		} else {
			rgb = known
		}
	}

	if err != nil && g.Logger != nil {
		g.Logger.Debug("gsettings accent-color failed, using fallback", "error", err)
	}
	g.cached = rgb
	g.expires = time.Now().Add(g.TTL)
	return rgb[0], rgb[1], rgb[2], nil
}

// SetFallback replaces the fallback color and drops the cached value.
func (g *GSettingsAccent) SetFallback(rgb [3]uint8) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Fallback = rgb
	g.expires = time.Time{}
}

func runGSettings(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, "gsettings", "get", "org.gnome.desktop.interface", "accent-color")
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return "", err
	}
	return stdout.String(), nil
}
