//go:build !linux

package main

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/1broseidon/winborder/internal/platform"
)

func openWindowSystem(*slog.Logger) (platform.WindowSystem, func(), error) {
	return nil, nil, fmt.Errorf("the border daemon is not supported on %s", runtime.GOOS)
}
