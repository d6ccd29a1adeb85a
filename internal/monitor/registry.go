// Package monitor builds the immutable set of connected monitors for one run
// and resolves template monitor references against it.
package monitor

import (
	"fmt"
	"strings"

	"github.com/1broseidon/workspace-launcher/internal/platform"
)

// PrimaryAlias names whichever monitor is primary.
const PrimaryAlias = "primary"

// Monitor is one physical display.
type Monitor struct {
	Name    string
	Width   int
	Height  int
	X       int
	Y       int
	Primary bool
}

// String renders the monitor as NAME WxH+X+Y.
func (m Monitor) String() string {
	return fmt.Sprintf("%s %dx%d+%d+%d", m.Name, m.Width, m.Height, m.X, m.Y)
}

// NoMonitorsError reports that the display query yielded no connected monitors.
type NoMonitorsError struct{}

func (NoMonitorsError) Error() string { return "no connected monitors detected" }

// UnknownMonitorError reports a monitor reference that matches no monitor.
type UnknownMonitorError struct {
	Name  string
	Known []string
}

func (e *UnknownMonitorError) Error() string {
	if len(e.Known) == 0 {
		return fmt.Sprintf("unknown monitor %q", e.Name)
	}
	return fmt.Sprintf("unknown monitor %q (available: %s, %s)", e.Name, strings.Join(e.Known, ", "), PrimaryAlias)
}

// Registry is the read-only monitor set detected once per run. It is safe for
// concurrent use because nothing mutates it after Detect returns.
type Registry struct {
	monitors []Monitor
	byName   map[string]int
	primary  int
}

// Detect queries the display once and builds a registry. The first monitor
// flagged primary wins; without one, the first detected monitor is primary.
func Detect(query platform.DisplayQuery) (*Registry, error) {
	outputs, err := query.Outputs()
	if err != nil {
		return nil, fmt.Errorf("failed to query monitors: %w", err)
	}

	monitors := make([]Monitor, 0, len(outputs))
	for _, o := range outputs {
		if o.Bounds.Width <= 0 || o.Bounds.Height <= 0 {
			continue
		}
		monitors = append(monitors, Monitor{
			Name:    o.Name,
			Width:   o.Bounds.Width,
			Height:  o.Bounds.Height,
			X:       o.Bounds.X,
			Y:       o.Bounds.Y,
			Primary: o.Primary,
		})
	}
	return New(monitors)
}

// New builds a registry from an explicit monitor list. Names must be unique
// and at most one monitor may be primary.
func New(monitors []Monitor) (*Registry, error) {
	if len(monitors) == 0 {
		return nil, NoMonitorsError{}
	}

	r := &Registry{
		monitors: make([]Monitor, len(monitors)),
		byName:   make(map[string]int, len(monitors)),
		primary:  -1,
	}
	copy(r.monitors, monitors)

	for i, m := range r.monitors {
		if m.Name == "" {
			return nil, fmt.Errorf("monitor %d has no name", i)
		}
		if m.Name == PrimaryAlias {
			return nil, fmt.Errorf("monitor name %q is reserved", PrimaryAlias)
		}
		if _, dup := r.byName[m.Name]; dup {
			return nil, fmt.Errorf("duplicate monitor name %q", m.Name)
		}
		r.byName[m.Name] = i
		if m.Primary {
			if r.primary >= 0 {
				// Keep the first primary; a second flag is a display-server quirk.
				r.monitors[i].Primary = false
				continue
			}
			r.primary = i
		}
	}
	if r.primary < 0 {
		r.primary = 0
	}
	return r, nil
}

// Monitors returns a copy of the monitors in detection order.
func (r *Registry) Monitors() []Monitor {
	out := make([]Monitor, len(r.monitors))
	copy(out, r.monitors)
	return out
}

// Primary returns the monitor the "primary" alias resolves to.
func (r *Registry) Primary() Monitor {
	return r.monitors[r.primary]
}

// IsPrimary reports whether name refers to the monitor the alias resolves to,
// including the fallback-to-first case.
func (r *Registry) IsPrimary(name string) bool {
	idx, ok := r.byName[name]
	return ok && idx == r.primary
}

// Resolve returns the monitor with the exact name, or the primary monitor for
// the "primary" alias.
func (r *Registry) Resolve(name string) (Monitor, error) {
	if name == PrimaryAlias {
		return r.Primary(), nil
	}
	if idx, ok := r.byName[name]; ok {
		return r.monitors[idx], nil
	}
	known := make([]string, 0, len(r.monitors))
	for _, m := range r.monitors {
		known = append(known, m.Name)
	}
	return Monitor{}, &UnknownMonitorError{Name: name, Known: known}
}
