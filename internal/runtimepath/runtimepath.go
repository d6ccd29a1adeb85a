package runtimepath

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

var runUserBase = "/run/user"

// Dir returns the per-user runtime directory. Priority:
// 1) XDG_RUNTIME_DIR (if set)
// 2) /run/user/<uid> (if present)
//
// Nothing is created; with neither available Dir returns an error wrapping
// os.ErrNotExist.
func Dir() (string, error) {
	if runtimeDir := os.Getenv("XDG_RUNTIME_DIR"); runtimeDir != "" {
		return runtimeDir, nil
	}

	runUserDir := filepath.Join(runUserBase, strconv.Itoa(os.Getuid()))
	info, err := os.Stat(runUserDir)
	if err != nil {
		return "", fmt.Errorf("no runtime dir: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("no runtime dir: %s is not a directory: %w", runUserDir, os.ErrNotExist)
	}
	return runUserDir, nil
}

// SessionBusAddress returns the D-Bus address of the user bus socket in the
// runtime directory, or "" when there is no such socket.
func SessionBusAddress() string {
	dir, err := Dir()
	if err != nil {
		return ""
	}
	path := filepath.Join(dir, "bus")
	if info, err := os.Stat(path); err != nil || info.Mode()&os.ModeSocket == 0 {
		return ""
	}
	return "unix:path=" + path
}
