package main

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// style decorates status output with glyphs and colour on terminals only.
type style struct {
	tty bool
}

func styleFor(w io.Writer) style {
	f, ok := w.(*os.File)
	if !ok || os.Getenv("NO_COLOR") != "" {
		return style{}
	}
	return style{tty: term.IsTerminal(int(f.Fd()))}
}

func (s style) ok() string {
	if s.tty {
		return "\033[32m✓\033[0m"
	}
	return "ok"
}

func (s style) fail() string {
	if s.tty {
		return "\033[31m✗\033[0m"
	}
	return "FAIL"
}

func (s style) bold(text string) string {
	if s.tty {
		return "\033[1m" + text + "\033[0m"
	}
	return text
}

func (s style) dim(text string) string {
	if s.tty {
		return "\033[2m" + text + "\033[0m"
	}
	return text
}

func rectString(x, y, w, h int) string {
	return fmt.Sprintf("%dx%d%+d%+d", w, h, x, y)
}
