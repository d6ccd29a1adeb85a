//go:build !linux

package main

import (
	"fmt"
	"runtime"

	"github.com/1broseidon/workspace-launcher/internal/platform"
)

func connectDisplay() (platform.Backend, func(), error) {
	return nil, nil, fmt.Errorf("window placement is not supported on %s", runtime.GOOS)
}
