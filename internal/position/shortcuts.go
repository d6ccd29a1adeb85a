package position

import "sort"

// shortcuts maps named layouts to canonical position strings.
var shortcuts = map[string]string{
	"full":             "tl w:100% h:100%",
	"left":             "tl w:50% h:100%",
	"right":            "tr w:50% h:100%",
	"top":              "tl w:100% h:50%",
	"bottom":           "bl w:100% h:50%",
	"top-left":         "tl w:50% h:50%",
	"top-right":        "tr w:50% h:50%",
	"bottom-left":      "bl w:50% h:50%",
	"bottom-right":     "br w:50% h:50%",
	"left-third":       "tl w:1/3 h:100%",
	"center-third":     "x:1/3 w:1/3 h:100%",
	"right-third":      "x:2/3 w:1/3 h:100%",
	"top-third":        "tl w:100% h:1/3",
	"middle-third":     "y:1/3 w:100% h:1/3",
	"bottom-third":     "y:2/3 w:100% h:1/3",
	"left-two-thirds":  "tl w:2/3 h:100%",
	"right-two-thirds": "x:1/3 w:2/3 h:100%",
}

// Expand returns the canonical position string for a shortcut name.
func Expand(name string) (string, bool) {
	canonical, ok := shortcuts[name]
	return canonical, ok
}

// Shortcut is a named alias with its expansion.
type Shortcut struct {
	Name      string
	Canonical string
}

// Shortcuts lists every shortcut sorted by name.
func Shortcuts() []Shortcut {
	out := make([]Shortcut, 0, len(shortcuts))
	for name, canonical := range shortcuts {
		out = append(out, Shortcut{Name: name, Canonical: canonical})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
