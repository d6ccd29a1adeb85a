package template

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// NotFoundError reports a template name with no matching file.
type NotFoundError struct {
	Name string
	Dir  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("template %q not found in %s", e.Name, e.Dir)
}

// Entry describes a template file without fully parsing it.
type Entry struct {
	Name        string
	Path        string
	Description string
	ModTime     time.Time
}

// Store is a directory of template files.
type Store struct {
	Dir string
}

func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

var extensions = []string{".yml", ".yaml"}

// List returns the .yml and .yaml templates in the directory sorted by name.
// A missing directory is reported as an error wrapping fs.ErrNotExist.
func (s *Store) List() ([]Entry, error) {
	dirEntries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read templates directory: %w", err)
	}

	seen := make(map[string]struct{})
	var out []Entry
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		ext := filepath.Ext(de.Name())
		if ext != ".yml" && ext != ".yaml" {
			continue
		}
		name := strings.TrimSuffix(de.Name(), ext)
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		path := filepath.Join(s.Dir, de.Name())
		entry := Entry{Name: name, Path: path}
		if info, err := de.Info(); err == nil {
			entry.ModTime = info.ModTime()
		}
		if f, err := os.Open(path); err == nil {
			entry.Description, _ = ExtractField(f, "description")
			f.Close()
		}
		out = append(out, entry)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Path finds the file for name, trying name.yml, name.yaml and then name
// itself.
func (s *Store) Path(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsRune(name, filepath.Separator) {
		return "", &NotFoundError{Name: name, Dir: s.Dir}
	}

	candidates := make([]string, 0, len(extensions)+1)
	for _, ext := range extensions {
		candidates = append(candidates, name+ext)
	}
	candidates = append(candidates, name)

	for _, c := range candidates {
		path := filepath.Join(s.Dir, c)
		info, err := os.Stat(path)
		if err == nil && !info.IsDir() {
			return path, nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
	}
	return "", &NotFoundError{Name: name, Dir: s.Dir}
}

// Load reads and validates the named template.
func (s *Store) Load(name string) (*Template, error) {
	path, err := s.Path(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template %q: %w", name, err)
	}
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return Parse(data, stem)
}

// ExtractField scans r for the first top-level "key: value" line and returns
// its value with surrounding quotes removed.
func ExtractField(r io.Reader, key string) (string, bool) {
	prefix := key + ":"
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, prefix) {
			continue
		}
		v := strings.TrimSpace(strings.TrimPrefix(line, prefix))
		if len(v) >= 2 && (v[0] == '"' || v[0] == '\'') && v[len(v)-1] == v[0] {
			v = v[1 : len(v)-1]
		}
		return v, true
	}
	return "", false
}
