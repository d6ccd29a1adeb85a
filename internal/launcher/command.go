package launcher

import (
	"fmt"
	"strings"
)

func shellJoin(argv []string) string {
	parts := make([]string, 0, len(argv))
	for _, a := range argv {
		parts = append(parts, shellQuote(a))
	}
	return strings.Join(parts, " ")
}

func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t\r\n'\"\\$`(){}[]*?!;|&<>") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// splitCommand tokenizes a command line honouring single quotes, double
// quotes and backslash escapes. No expansion is performed.
func splitCommand(s string) ([]string, error) {
	var (
		out      []string
		buf      strings.Builder
		inSingle bool
		inDouble bool
		escaped  bool
		quoted   bool
	)

	flush := func() {
		if buf.Len() == 0 && !quoted {
			return
		}
		out = append(out, buf.String())
		buf.Reset()
		quoted = false
	}

	for _, r := range s {
		switch {
		case escaped:
			buf.WriteRune(r)
			escaped = false
		case !inSingle && r == '\\':
			escaped = true
		case !inDouble && r == '\'':
			inSingle = !inSingle
			quoted = true
		case !inSingle && r == '"':
			inDouble = !inDouble
			quoted = true
		case !inSingle && !inDouble && (r == ' ' || r == '\t' || r == '\n' || r == '\r'):
			flush()
		default:
			buf.WriteRune(r)
		}
	}

	if escaped {
		return nil, fmt.Errorf("unfinished escape in command %q", s)
	}
	if inSingle || inDouble {
		return nil, fmt.Errorf("unterminated quote in command %q", s)
	}
	flush()
	return out, nil
}
