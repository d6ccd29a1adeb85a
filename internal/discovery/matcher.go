package discovery

import (
	"fmt"
	"strings"

	"github.com/1broseidon/workspace-launcher/internal/platform"
)

// Matcher decides whether a newly appeared window belongs to a launch.
type Matcher interface {
	Match(w platform.Window) bool
	fmt.Stringer
}

// ClassTitleMatcher matches on WM_CLASS and/or a title substring. Empty
// fields are not checked; a matcher with both fields empty matches any window.
type ClassTitleMatcher struct {
	Class string
	Title string
}

// Match implements Matcher.
func (m ClassTitleMatcher) Match(w platform.Window) bool {
	if m.Class != "" && !wmClassesMatch(w.Class, m.Class) && !wmClassesMatch(w.Instance, m.Class) {
		return false
	}
	if m.Title != "" && !strings.Contains(w.Title, m.Title) {
		return false
	}
	return true
}

func (m ClassTitleMatcher) String() string {
	switch {
	case m.Class != "" && m.Title != "":
		return fmt.Sprintf("class=%q title~%q", m.Class, m.Title)
	case m.Class != "":
		return fmt.Sprintf("class=%q", m.Class)
	case m.Title != "":
		return fmt.Sprintf("title~%q", m.Title)
	default:
		return "any"
	}
}

// wmClassesMatch compares WM_CLASS values case-insensitively, treating a
// reverse-domain class (com.mitchellh.ghostty) as equal to its last segment.
func wmClassesMatch(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == b {
		return true
	}
	if a == "" || b == "" {
		return false
	}
	return lastSegment(a) == lastSegment(b) && (strings.Contains(a, ".") || strings.Contains(b, "."))
}

func lastSegment(s string) string {
	if i := strings.LastIndex(s, "."); i >= 0 {
		return s[i+1:]
	}
	return s
}
