// Package shortcuts keeps application-menu .desktop entries in sync with the
// templates that ask for one.
package shortcuts

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/1broseidon/workspace-launcher/internal/template"
)

const (
	filePrefix  = "workspace-"
	fileSuffix  = ".desktop"
	markerKey   = "X-Workspace-Launcher-Template"
	DefaultIcon = "preferences-desktop-display"
)

// Shortcut is a .desktop entry previously written by Sync.
type Shortcut struct {
	Template string
	Name     string
	Path     string
}

// Result summarises a Sync.
type Result struct {
	Written []string
	Removed []string
	// Skipped maps template names that failed to load to the reason.
	Skipped map[string]error
}

// Sync writes a shortcut for every template with shortcut: true and removes
// shortcuts this tool wrote for templates that no longer ask for one. Files
// without the marker key are never touched.
func Sync(store *template.Store, dir, exe string, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}
	entries, err := store.List()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create shortcuts directory: %w", err)
	}

	res := &Result{Skipped: map[string]error{}}
	want := make(map[string]struct{})
	for _, e := range entries {
		tmpl, err := store.Load(e.Name)
		if err != nil {
			res.Skipped[e.Name] = err
			logger.Warn("skipping template", "template", e.Name, "error", err)
			continue
		}
		if !tmpl.Shortcut {
			continue
		}

		path := filepath.Join(dir, filePrefix+e.Name+fileSuffix)
		if err := os.WriteFile(path, []byte(render(e.Name, tmpl, exe)), 0644); err != nil {
			return res, fmt.Errorf("failed to write shortcut: %w", err)
		}
		want[path] = struct{}{}
		res.Written = append(res.Written, path)
		logger.Debug("wrote shortcut", "template", e.Name, "path", path)
	}

	existing, err := List(dir)
	if err != nil {
		return res, err
	}
	for _, s := range existing {
		if _, keep := want[s.Path]; keep {
			continue
		}
		if err := os.Remove(s.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return res, fmt.Errorf("failed to remove stale shortcut: %w", err)
		}
		res.Removed = append(res.Removed, s.Path)
		logger.Debug("removed shortcut", "template", s.Template, "path", s.Path)
	}
	return res, nil
}

// List returns the shortcuts in dir that carry this tool's marker, sorted by
// template name. A missing directory yields no shortcuts.
func List(dir string) ([]Shortcut, error) {
	matches, err := filepath.Glob(filepath.Join(dir, filePrefix+"*"+fileSuffix))
	if err != nil {
		return nil, err
	}

	var out []Shortcut
	for _, path := range matches {
		fields, err := readEntry(path)
		if err != nil {
			continue
		}
		name, ok := fields[markerKey]
		if !ok {
			continue
		}
		out = append(out, Shortcut{Template: name, Name: fields["Name"], Path: path})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Template < out[j].Template })
	return out, nil
}

func render(name string, tmpl *template.Template, exe string) string {
	icon := strings.TrimSpace(tmpl.Icon)
	if icon == "" {
		icon = DefaultIcon
	}
	display := strings.TrimSpace(tmpl.Name)
	if display == "" {
		display = name
	}

	var b strings.Builder
	b.WriteString("[Desktop Entry]\n")
	b.WriteString("Type=Application\n")
	fmt.Fprintf(&b, "Name=Workspace: %s\n", escapeValue(display))
	if d := strings.TrimSpace(tmpl.Description); d != "" {
		fmt.Fprintf(&b, "Comment=%s\n", escapeValue(d))
	}
	fmt.Fprintf(&b, "Exec=%s %s\n", quoteExecArg(exe), quoteExecArg(name))
	fmt.Fprintf(&b, "Icon=%s\n", escapeValue(icon))
	b.WriteString("Terminal=false\n")
	b.WriteString("Categories=Utility;\n")
	fmt.Fprintf(&b, "%s=%s\n", markerKey, name)
	return b.String()
}

// readEntry parses the key=value lines of the [Desktop Entry] group.
func readEntry(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fields := make(map[string]string)
	inEntry := false
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(line, "[") {
			inEntry = line == "[Desktop Entry]"
			continue
		}
		if !inEntry || line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		k = strings.TrimSpace(k)
		if _, dup := fields[k]; !dup {
			fields[k] = strings.TrimSpace(v)
		}
	}
	return fields, sc.Err()
}

func escapeValue(s string) string {
	r := strings.NewReplacer("\\", `\\`, "\n", `\n`, "\t", `\t`, "\r", `\r`)
	return r.Replace(s)
}

// quoteExecArg quotes an Exec argument when it contains reserved characters.
func quoteExecArg(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\n\"'\\><~|&;$*?#()`=%") {
		return s
	}
	r := strings.NewReplacer(`\`, `\\\\`, `"`, `\\"`, "`", "\\\\`", "$", `\\$`, "%", "%%")
	return `"` + r.Replace(s) + `"`
}
