package x11

import (
	"fmt"
	"math"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
)

// Monitor represents a physical display
type Monitor struct {
	ID       int
	Name     string
	X        int
	Y        int
	Width    int
	Height   int
	MmWidth  int
	MmHeight int
	Primary  bool
}

// DPI returns the monitor's horizontal resolution in dots per inch, or 0
// when the output does not report a physical size.
func (m Monitor) DPI() float64 {
	return dpiFromMM(m.Width, m.MmWidth)
}

// GetMonitors retrieves all active monitors using XRandR
func (c *Connection) GetMonitors() ([]Monitor, error) {
	// Initialize RandR if not already done
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var primary randr.Output
	if reply, err := randr.GetOutputPrimary(c.XUtil.Conn(), c.Root).Reply(); err == nil {
		primary = reply.Output
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}

		// Skip disabled CRTCs
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		mon := Monitor{
			ID:      i,
			Name:    fmt.Sprintf("Monitor%d", i),
			X:       int(crtcInfo.X),
			Y:       int(crtcInfo.Y),
			Width:   int(crtcInfo.Width),
			Height:  int(crtcInfo.Height),
			Primary: crtcInfo.Outputs[0] == primary,
		}
		outputInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply()
		if err == nil {
			mon.Name = string(outputInfo.Name)
			mon.MmWidth = int(outputInfo.MmWidth)
			mon.MmHeight = int(outputInfo.MmHeight)
		}
		monitors = append(monitors, mon)
	}

	return monitors, nil
}

// DPI estimates the display resolution used to scale logical border sizes.
// The primary RandR output wins; otherwise the core screen dimensions are
// used. Implausible values fall back to 96.
func (c *Connection) DPI() float64 {
	if monitors, err := c.GetMonitors(); err == nil {
		for _, m := range monitors {
			if m.Primary {
				if dpi := m.DPI(); plausibleDPI(dpi) {
					return dpi
				}
			}
		}
	}

	screen := c.XUtil.Screen()
	if dpi := screenDPI(screen); plausibleDPI(dpi) {
		return dpi
	}
	return 96
}

func screenDPI(screen *xproto.ScreenInfo) float64 {
	if screen == nil {
		return 0
	}
	return dpiFromMM(int(screen.WidthInPixels), int(screen.WidthInMillimeters))
}

func dpiFromMM(px, mm int) float64 {
	if px <= 0 || mm <= 0 {
		return 0
	}
	return math.Round(float64(px) * 25.4 / float64(mm))
}

// plausibleDPI rejects the bogus sizes some projectors and virtual outputs
// report.
func plausibleDPI(dpi float64) bool {
	return dpi >= 48 && dpi <= 480
}
