// Package workspace runs a named template end to end: it loads the template,
// detects the monitors, drives the launch scheduler and reports the outcome.
package workspace

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/1broseidon/workspace-launcher/internal/config"
	"github.com/1broseidon/workspace-launcher/internal/launcher"
	"github.com/1broseidon/workspace-launcher/internal/monitor"
	"github.com/1broseidon/workspace-launcher/internal/platform"
	"github.com/1broseidon/workspace-launcher/internal/position"
	"github.com/1broseidon/workspace-launcher/internal/template"
)

// ConnectFunc opens the window system. The returned func releases it.
type ConnectFunc func() (platform.Backend, func(), error)

// Notifier posts a best-effort desktop notification.
type Notifier interface {
	Send(summary, body string)
}

// Launcher is shared by the CLI and the MCP server.
type Launcher struct {
	Config   *config.Config
	Store    *template.Store
	Connect  ConnectFunc
	Spawner  launcher.Spawner
	Notifier Notifier
	Logger   *slog.Logger
}

func (l *Launcher) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.Default()
	}
	return l.Logger
}

// Result is the outcome of Launch.
type Result struct {
	Template *template.Template
	Report   *launcher.Report
}

// Launch runs the named template. Template errors and registry-level errors
// (no monitors, unknown monitor) are returned; per-window failures are in
// the report.
func (l *Launcher) Launch(ctx context.Context, name string) (*Result, error) {
	tmpl, err := l.Store.Load(name)
	if err != nil {
		return nil, err
	}

	backend, release, err := l.Connect()
	if err != nil {
		return nil, err
	}
	defer release()

	reg, err := monitor.Detect(backend)
	if err != nil {
		return nil, err
	}

	sched := launcher.NewScheduler(reg, backend, l.Spawner, launcher.Options{
		KittyCommand:     l.Config.KittyCommand,
		Shell:            l.Config.Shell,
		DiscoveryTimeout: l.Config.DiscoveryTimeout,
		PollInterval:     l.Config.PollInterval,
	}, l.logger().With("template", tmpl.Name))

	report, err := sched.Run(ctx, tmpl.Specs())
	if err != nil {
		return nil, err
	}

	if l.Notifier != nil {
		l.Notifier.Send("Workspace loaded",
			fmt.Sprintf("%s: %d/%d windows placed", tmpl.Name, report.Positioned(), report.Total()))
	}
	return &Result{Template: tmpl, Report: report}, nil
}

// Monitors detects the connected monitors.
func (l *Launcher) Monitors() ([]monitor.Monitor, error) {
	reg, err := l.registry()
	if err != nil {
		return nil, err
	}
	return reg.Monitors(), nil
}

// Resolve computes where position lands on the named monitor (default primary).
func (l *Launcher) Resolve(pos, monitorName string) (monitor.Monitor, platform.Rect, error) {
	reg, err := l.registry()
	if err != nil {
		return monitor.Monitor{}, platform.Rect{}, err
	}
	if monitorName == "" {
		monitorName = monitor.PrimaryAlias
	}
	mon, err := reg.Resolve(monitorName)
	if err != nil {
		return monitor.Monitor{}, platform.Rect{}, err
	}
	rect, err := position.Resolve(pos, mon)
	if err != nil {
		return mon, platform.Rect{}, err
	}
	return mon, rect, nil
}

func (l *Launcher) registry() (*monitor.Registry, error) {
	backend, release, err := l.Connect()
	if err != nil {
		return nil, err
	}
	defer release()
	return monitor.Detect(backend)
}
