package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/1broseidon/winborder/internal/border"
	"github.com/1broseidon/winborder/internal/colors"
	"github.com/1broseidon/winborder/internal/config"
	"github.com/1broseidon/winborder/internal/ipc"
)

var (
	accentColor = lipgloss.Color("#3584e4")
	mutedColor  = lipgloss.Color("#8a8a8a")

	labelStyle  = lipgloss.NewStyle().Foreground(mutedColor).Width(12)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#3a944a"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#c88800"))
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e62d42"))
)

func field(w io.Writer, label string, value any) {
	fmt.Fprintf(w, "%s %v\n", labelStyle.Render(label), value)
}

func renderStatus(w io.Writer, st *ipc.StatusData) {
	enabled := okStyle.Render("on")
	if !st.Enabled {
		enabled = warnStyle.Render("off")
	}
	field(w, "daemon", okStyle.Render("running"))
	field(w, "borders", enabled)
	field(w, "windows", fmt.Sprintf("%d (%d visible)", st.Borders, st.Visible))
	field(w, "rules", st.Rules)
	field(w, "dpi", fmt.Sprintf("%.0f", st.DPI))
	field(w, "log level", st.LogLevel)
	field(w, "config", st.ConfigPath)
	field(w, "uptime", (time.Duration(st.UptimeSeconds) * time.Second).String())
	for _, warning := range st.Warnings {
		field(w, "warning", warnStyle.Render(warning))
	}
}

func renderBorders(w io.Writer, snaps []border.Snapshot) {
	if len(snaps) == 0 {
		fmt.Fprintln(w, "no borders")
		return
	}
	rows := make([][]string, 0, len(snaps))
	for _, s := range snaps {
		flags := make([]string, 0, 3)
		if s.Active {
			flags = append(flags, "active")
		}
		if s.Minimized {
			flags = append(flags, "minimized")
		}
		if s.Initializing {
			flags = append(flags, "initializing")
		}
		rows = append(rows, []string{
			s.ID.String(),
			s.State.String(),
			strings.Join(flags, ","),
			fmt.Sprintf("%dx%d+%d+%d", s.Frame.Width, s.Frame.Height, s.Frame.X, s.Frame.Y),
			fmt.Sprintf("%.2f", s.Opacity),
			s.Paint,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(mutedColor)).
		Headers("WINDOW", "STATE", "FLAGS", "FRAME", "OPACITY", "PAINT").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	fmt.Fprintln(w, t.Render())
}

// renderPaint prints a resolved paint with a swatch per color.
func renderPaint(w io.Writer, p colors.Paint) {
	swatch := func(c colors.RGBA) string {
		hex := c.Hex()
		if len(hex) > 7 {
			hex = hex[:7]
		}
		return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("    ") + " " + c.Hex()
	}

	field(w, "kind", p.Kind.String())
	if p.Kind == colors.PaintSolid {
		field(w, "color", swatch(p.Color))
		return
	}
	field(w, "start", fmt.Sprintf("(%.3f, %.3f)", p.Start[0], p.Start[1]))
	field(w, "end", fmt.Sprintf("(%.3f, %.3f)", p.End[0], p.End[1]))
	for _, stop := range p.Stops {
		field(w, fmt.Sprintf("stop %.2f", stop.Position), swatch(stop.Color))
	}
}

func formatSource(src config.Source) string {
	switch src.Kind {
	case config.SourceFile:
		if src.File == "" {
			return "file"
		}
		if src.Line > 0 {
			return fmt.Sprintf("file:%s:%d:%d", src.File, src.Line, src.Column)
		}
		return "file:" + src.File
	case config.SourceDefault:
		if src.Name != "" {
			return "default:" + src.Name
		}
		return "default"
	default:
		return string(src.Kind)
	}
}
