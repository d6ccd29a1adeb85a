package launcher

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
)

// LaunchError reports a process that could not be started.
type LaunchError struct {
	Argv []string
	Err  error
}

func (e *LaunchError) Error() string {
	if len(e.Argv) == 0 {
		return fmt.Sprintf("launch failed: %v", e.Err)
	}
	return fmt.Sprintf("launch %s: %v", shellJoin(e.Argv), e.Err)
}

func (e *LaunchError) Unwrap() error { return e.Err }

// Spawner starts a process without waiting for it to exit.
type Spawner interface {
	Spawn(argv []string) (pid int, err error)
}

// ExecSpawner starts processes with os/exec in their own session so they
// outlive the launcher.
type ExecSpawner struct {
	// Dir is the working directory; empty means the user's home.
	Dir    string
	Logger *slog.Logger
}

// Spawn starts argv and reaps it in the background.
func (s ExecSpawner) Spawn(argv []string) (int, error) {
	if len(argv) == 0 {
		return 0, fmt.Errorf("empty command")
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = s.Dir
	if cmd.Dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cmd.Dir = home
		}
	}
	detach(cmd)

	if err := cmd.Start(); err != nil {
		return 0, err
	}

	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	pid := cmd.Process.Pid
	go func() {
		if err := cmd.Wait(); err != nil {
			logger.Debug("launched process exited", "pid", pid, "error", err)
		}
	}()
	return pid, nil
}
