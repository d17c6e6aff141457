// Package logging builds the process-wide slog logger on top of
// charmbracelet/log.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	clog "github.com/charmbracelet/log"
	"golang.org/x/term"
)

// Format selects how records are rendered.
type Format string

const (
	FormatAuto   Format = "auto"
	FormatText   Format = "text"
	FormatLogfmt Format = "logfmt"
	FormatJSON   Format = "json"
)

// Options configures New.
type Options struct {
	Level  string
	Format Format
	Prefix string
}

// New returns a logger writing to w and the level variable that gates it.
// Changing the variable affects every logger derived with With.
func New(w io.Writer, opts Options) (*slog.Logger, *slog.LevelVar, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}
	formatter, err := formatterFor(w, opts.Format)
	if err != nil {
		return nil, nil, err
	}

	base := clog.NewWithOptions(w, clog.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Level:           clog.DebugLevel,
		Prefix:          opts.Prefix,
		Formatter:       formatter,
	})

	lv := new(slog.LevelVar)
	lv.Set(level)
	return slog.New(&levelHandler{level: lv, next: base}), lv, nil
}

// ParseLevel maps a config log_level to a slog level. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

func formatterFor(w io.Writer, f Format) (clog.Formatter, error) {
	switch f {
	case FormatText:
		return clog.TextFormatter, nil
	case FormatLogfmt:
		return clog.LogfmtFormatter, nil
	case FormatJSON:
		return clog.JSONFormatter, nil
	case "", FormatAuto:
		if IsTerminal(w) {
			return clog.TextFormatter, nil
		}
		return clog.LogfmtFormatter, nil
	default:
		return clog.TextFormatter, fmt.Errorf("unknown log format %q", f)
	}
}

// IsTerminal reports whether w is a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

type levelHandler struct {
	level *slog.LevelVar
	next  slog.Handler
}

func (h *levelHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return l >= h.level.Level() && h.next.Enabled(ctx, l)
}

func (h *levelHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.next.Handle(ctx, r)
}

func (h *levelHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelHandler{level: h.level, next: h.next.WithAttrs(attrs)}
}

func (h *levelHandler) WithGroup(name string) slog.Handler {
	return &levelHandler{level: h.level, next: h.next.WithGroup(name)}
}
