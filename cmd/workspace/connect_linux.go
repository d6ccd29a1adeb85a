//go:build linux

package main

import (
	"log/slog"

	"github.com/1broseidon/workspace-launcher/internal/platform"
	"github.com/1broseidon/workspace-launcher/internal/sessionenv"
)

// connectDisplay opens the X11 backend, first recovering DISPLAY and friends
// when the process was started outside the graphical session.
func connectDisplay() (platform.Backend, func(), error) {
	if err := sessionenv.Apply(); err != nil {
		return nil, nil, err
	}
	backend, err := platform.NewLinuxBackendFromDisplay()
	if err != nil {
		return nil, nil, err
	}
	slog.Debug("connected to X11 display")
	return backend, backend.Disconnect, nil
}
