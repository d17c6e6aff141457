package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/winborder/internal/border"
	"github.com/1broseidon/winborder/internal/colors"
)

func (s *Server) handleBorderStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ BorderStatusInput) (*mcpsdk.CallToolResult, BorderStatusOutput, error) {
	st, err := s.daemon.GetStatus()
	if err != nil {
		s.logger.Debug("border_status: daemon unreachable", "error", err)
		return nil, BorderStatusOutput{Running: false, Error: err.Error()}, nil
	}
	return nil, BorderStatusOutput{
		Running:       st.DaemonRunning,
		Enabled:       st.Enabled,
		Borders:       st.Borders,
		Visible:       st.Visible,
		Rules:         st.Rules,
		DPI:           st.DPI,
		LogLevel:      st.LogLevel,
		ConfigPath:    st.ConfigPath,
		UptimeSeconds: st.UptimeSeconds,
		Warnings:      st.Warnings,
	}, nil
}

func (s *Server) handleListBorders(_ context.Context, _ *mcpsdk.CallToolRequest, args ListBordersInput) (*mcpsdk.CallToolResult, ListBordersOutput, error) {
	snaps, err := s.daemon.ListBorders()
	if err != nil {
		return nil, ListBordersOutput{}, err
	}
	out := ListBordersOutput{Borders: make([]BorderInfo, 0, len(snaps))}
	for _, snap := range snaps {
		if args.VisibleOnly && snap.State != border.StateVisible {
			continue
		}
		out.Borders = append(out.Borders, borderInfo(snap))
	}
	return nil, out, nil
}

func borderInfo(snap border.Snapshot) BorderInfo {
	return BorderInfo{
		Window:          snap.ID.String(),
		State:           snap.State.String(),
		Active:          snap.Active,
		Minimized:       snap.Minimized,
		Initializing:    snap.Initializing,
		X:               snap.Frame.X,
		Y:               snap.Frame.Y,
		Width:           snap.Frame.Width,
		Height:          snap.Frame.Height,
		Opacity:         float64(snap.Opacity),
		Paint:           snap.Paint,
		SurfaceFailures: snap.SurfaceFailures,
	}
}

func (s *Server) handleReloadConfig(_ context.Context, _ *mcpsdk.CallToolRequest, _ ReloadConfigInput) (*mcpsdk.CallToolResult, ReloadConfigOutput, error) {
	res, err := s.daemon.Reload()
	if err != nil {
		return nil, ReloadConfigOutput{}, err
	}
	s.logger.Info("reload_config", "kept", res.Kept, "created", res.Created, "destroyed", res.Destroyed)
	return nil, ReloadConfigOutput{
		Kept:      res.Kept,
		Created:   res.Created,
		Destroyed: res.Destroyed,
		Warnings:  res.Warnings,
	}, nil
}

func (s *Server) handleResolveColor(_ context.Context, _ *mcpsdk.CallToolRequest, args ResolveColorInput) (*mcpsdk.CallToolResult, ResolveColorOutput, error) {
	spec, err := colors.ParseSpec(args.Color)
	if err != nil {
		return nil, ResolveColorOutput{}, fmt.Errorf("color %q: %w", args.Color, err)
	}
	return nil, describePaint(s.resolver.Resolve(spec, !args.Inactive)), nil
}

func describePaint(p colors.Paint) ResolveColorOutput {
	out := ResolveColorOutput{
		Kind:        p.Kind.String(),
		Description: p.Describe(),
	}
	if p.Kind == colors.PaintSolid {
		out.Color = p.Color.Hex()
		return out
	}
	out.Stops = make([]StopInfo, len(p.Stops))
	for i, stop := range p.Stops {
		out.Stops[i] = StopInfo{Position: float64(stop.Position), Color: stop.Color.Hex()}
	}
	out.Start = []float64{float64(p.Start[0]), float64(p.Start[1])}
	out.End = []float64{float64(p.End[0]), float64(p.End[1])}
	return out
}
