//go:build linux

package main

import (
	"log/slog"

	"github.com/1broseidon/winborder/internal/platform"
)

func openWindowSystem(logger *slog.Logger) (platform.WindowSystem, func(), error) {
	ws, err := platform.NewLinuxSystemFromDisplay(logger)
	if err != nil {
		return nil, nil, err
	}
	return ws, ws.Disconnect, nil
}
