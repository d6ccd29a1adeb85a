// Package template reads workspace templates: YAML files that name an ordered
// list of windows to launch.
package template

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/workspace-launcher/internal/launcher"
	"github.com/1broseidon/workspace-launcher/internal/monitor"
)

const (
	DefaultMonitor  = monitor.PrimaryAlias
	DefaultPosition = "full"
)

// Template is one workspace definition.
type Template struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Icon        string   `yaml:"icon"`
	Shortcut    bool     `yaml:"shortcut"`
	Windows     []Window `yaml:"windows"`
}

// Window is a window entry as written in a template file.
type Window struct {
	Type        string   `yaml:"type"`
	Title       string   `yaml:"title"`
	Command     string   `yaml:"command"`
	WindowClass string   `yaml:"window_class"`
	Monitor     string   `yaml:"monitor"`
	Position    Position `yaml:"position"`
	// Desktop is 1-based; omitted leaves the window where the WM puts it.
	Desktop *int `yaml:"desktop"`
}

// Position is a position string. In YAML it may also be written as a mapping
// of monitor-relative pixels {x, y, width, height}.
type Position string

func (p *Position) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var s string
		if err := node.Decode(&s); err != nil {
			return err
		}
		*p = Position(s)
		return nil
	case yaml.MappingNode:
		var m struct {
			X      *int `yaml:"x"`
			Y      *int `yaml:"y"`
			Width  *int `yaml:"width"`
			Height *int `yaml:"height"`
		}
		if err := node.Decode(&m); err != nil {
			return err
		}
		var parts []string
		for _, f := range []struct {
			key string
			v   *int
		}{{"x", m.X}, {"y", m.Y}, {"w", m.Width}, {"h", m.Height}} {
			if f.v != nil {
				parts = append(parts, fmt.Sprintf("%s:%d", f.key, *f.v))
			}
		}
		*p = Position(strings.Join(parts, " "))
		return nil
	default:
		return fmt.Errorf("line %d: position must be a string or a mapping of x/y/width/height", node.Line)
	}
}

// ValidationError reports an invalid template field.
type ValidationError struct {
	Template string
	Path     string
	Err      error
}

func (e *ValidationError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("template %q: %v", e.Template, e.Err)
	}
	return fmt.Sprintf("template %q: %s: %v", e.Template, e.Path, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Parse decodes and validates a template. fallbackName is used when the
// file has no name field.
func Parse(data []byte, fallbackName string) (*Template, error) {
	var t Template
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil && err != io.EOF {
		return nil, &ValidationError{Template: fallbackName, Err: err}
	}
	if strings.TrimSpace(t.Name) == "" {
		t.Name = fallbackName
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate checks window types, commands and desktop numbers. Monitor and
// position values are checked at launch against the detected monitors.
func (t *Template) Validate() error {
	if len(t.Windows) == 0 {
		return &ValidationError{Template: t.Name, Path: "windows", Err: fmt.Errorf("at least one window is required")}
	}
	for i, w := range t.Windows {
		path := fmt.Sprintf("windows[%d]", i)
		kind, err := launcher.ParseKind(w.Type)
		if err != nil {
			return &ValidationError{Template: t.Name, Path: path + ".type", Err: err}
		}
		if kind == launcher.KindApp && strings.TrimSpace(w.Command) == "" {
			return &ValidationError{Template: t.Name, Path: path + ".command", Err: fmt.Errorf("command is required for app windows")}
		}
		if w.Desktop != nil && *w.Desktop < 1 {
			return &ValidationError{Template: t.Name, Path: path + ".desktop", Err: fmt.Errorf("desktop must be >= 1 (got %d)", *w.Desktop)}
		}
	}
	return nil
}

// Specs converts the template's windows into launch specs, filling in the
// default monitor and position and converting desktops to 0-based indexes.
func (t *Template) Specs() []launcher.WindowSpec {
	specs := make([]launcher.WindowSpec, 0, len(t.Windows))
	for _, w := range t.Windows {
		kind, _ := launcher.ParseKind(w.Type)
		spec := launcher.WindowSpec{
			Kind:        kind,
			Title:       strings.TrimSpace(w.Title),
			Command:     strings.TrimSpace(w.Command),
			WindowClass: strings.TrimSpace(w.WindowClass),
			Monitor:     strings.TrimSpace(w.Monitor),
			Position:    strings.TrimSpace(string(w.Position)),
		}
		if spec.Monitor == "" {
			spec.Monitor = DefaultMonitor
		}
		if spec.Position == "" {
			spec.Position = DefaultPosition
		}
		if w.Desktop != nil {
			d := *w.Desktop - 1
			spec.Desktop = &d
		}
		specs = append(specs, spec)
	}
	return specs
}
