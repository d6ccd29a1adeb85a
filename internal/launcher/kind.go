package launcher

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/1broseidon/workspace-launcher/internal/discovery"
)

// Kind names how a window spec is launched and recognised.
type Kind string

const (
	KindKitty Kind = "kitty"
	KindApp   Kind = "app"
)

// DefaultKittyTitle is used when a kitty spec sets no title.
const DefaultKittyTitle = "Kitty"

// ParseKind validates a kind name from a template.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindKitty, KindApp:
		return k, nil
	case "":
		return "", fmt.Errorf("window type is empty (expected %s or %s)", KindKitty, KindApp)
	default:
		return "", fmt.Errorf("unknown window type %q (expected %s or %s)", s, KindKitty, KindApp)
	}
}

// variant carries the per-kind command construction and window predicate.
// The set of implementations is closed: kittyVariant and appVariant.
type variant interface {
	argv(spec WindowSpec) ([]string, error)
	matcher(spec WindowSpec, argv []string) discovery.Matcher
}

type kittyVariant struct {
	command string
	shell   string
}

func (k kittyVariant) argv(spec WindowSpec) ([]string, error) {
	base, err := splitCommand(k.command)
	if err != nil {
		return nil, fmt.Errorf("kitty_command: %w", err)
	}
	if len(base) == 0 {
		return nil, fmt.Errorf("kitty_command is empty")
	}

	argv := base
	if class := strings.TrimSpace(spec.WindowClass); class != "" {
		argv = append(argv, "--class", class)
	}
	argv = append(argv, "--title", kittyTitle(spec))
	cmd := strings.TrimSpace(spec.Command)
	if cmd == "" {
		return argv, nil
	}
	// Keep the terminal open on an interactive shell once the command exits.
	return append(argv, "-e", k.shell, "-c", cmd+"; exec "+k.shell), nil
}

func (k kittyVariant) matcher(spec WindowSpec, argv []string) discovery.Matcher {
	return discovery.ClassTitleMatcher{Class: kittyClass(spec, argv), Title: kittyTitle(spec)}
}

// kittyClass is the WM_CLASS kitty will set: the template window_class, else
// the last --class (or --name, which kitty uses for the instance) given on
// the kitty command line, else "kitty". Arguments after -e belong to the
// child command and are ignored.
func kittyClass(spec WindowSpec, argv []string) string {
	if class := strings.TrimSpace(spec.WindowClass); class != "" {
		return class
	}
	var class, name string
	for i := 1; i < len(argv); i++ {
		arg := argv[i]
		if arg == "-e" || arg == "--" {
			break
		}
		for _, flag := range []struct {
			key string
			dst *string
		}{{"--class", &class}, {"--name", &name}} {
			switch {
			case arg == flag.key && i+1 < len(argv):
				*flag.dst = argv[i+1]
			case strings.HasPrefix(arg, flag.key+"="):
				*flag.dst = strings.TrimPrefix(arg, flag.key+"=")
			}
		}
	}
	switch {
	case class != "":
		return class
	case name != "":
		return name
	}
	return "kitty"
}

func kittyTitle(spec WindowSpec) string {
	if t := strings.TrimSpace(spec.Title); t != "" {
		return t
	}
	return DefaultKittyTitle
}

type appVariant struct{}

func (appVariant) argv(spec WindowSpec) ([]string, error) {
	argv, err := splitCommand(spec.Command)
	if err != nil {
		return nil, err
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("app command is empty")
	}
	return argv, nil
}

func (appVariant) matcher(spec WindowSpec, argv []string) discovery.Matcher {
	class := strings.TrimSpace(spec.WindowClass)
	if class == "" && len(argv) > 0 {
		class = filepath.Base(argv[0])
	}
	return discovery.ClassTitleMatcher{Class: class, Title: strings.TrimSpace(spec.Title)}
}
