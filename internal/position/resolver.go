// Package position turns compact position strings such as "tr w:1/3 h:50%"
// or shortcuts such as "right-third" into pixel rectangles on a monitor.
//
// Grammar: an optional leading anchor (tl, tr, bl, br, c; default tl)
// followed by any of x:V y:V w:V h:V, where V is a percentage (50%), a
// fraction of integers (2/3) or a pixel count (800). Omitted keys default to
// w:100% h:100% x:0 y:0.
package position

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/1broseidon/workspace-launcher/internal/monitor"
	"github.com/1broseidon/workspace-launcher/internal/platform"
)

// Anchor is the reference point a position resolves against.
type Anchor string

const (
	AnchorTopLeft     Anchor = "tl"
	AnchorTopRight    Anchor = "tr"
	AnchorBottomLeft  Anchor = "bl"
	AnchorBottomRight Anchor = "br"
	AnchorCenter      Anchor = "c"
)

func parseAnchor(tok string) (Anchor, bool) {
	switch a := Anchor(tok); a {
	case AnchorTopLeft, AnchorTopRight, AnchorBottomLeft, AnchorBottomRight, AnchorCenter:
		return a, true
	}
	return "", false
}

// InvalidPositionError reports a malformed or unsatisfiable position string.
type InvalidPositionError struct {
	Position string
	Reason   string
}

func (e *InvalidPositionError) Error() string {
	return fmt.Sprintf("invalid position %q: %s", e.Position, e.Reason)
}

// Spec is a parsed position string; unset values are nil.
type Spec struct {
	Anchor Anchor
	X      *Value
	Y      *Value
	W      *Value
	H      *Value
}

// Parse expands shortcuts and parses the grammar without resolving against a monitor.
func Parse(position string) (Spec, error) {
	src := strings.TrimSpace(position)
	if canonical, ok := Expand(src); ok {
		src = canonical
	}

	spec := Spec{Anchor: AnchorTopLeft}
	invalid := func(format string, args ...any) (Spec, error) {
		return Spec{}, &InvalidPositionError{Position: position, Reason: fmt.Sprintf(format, args...)}
	}

	// An anchor may appear anywhere; the last one wins.
	for _, tok := range strings.Fields(src) {
		key, raw, hasValue := strings.Cut(tok, ":")
		if !hasValue {
			anchor, ok := parseAnchor(tok)
			if !ok {
				return invalid("unknown anchor or shortcut %q", tok)
			}
			spec.Anchor = anchor
			continue
		}

		var slot **Value
		switch key {
		case "x":
			slot = &spec.X
		case "y":
			slot = &spec.Y
		case "w":
			slot = &spec.W
		case "h":
			slot = &spec.H
		default:
			return invalid("unknown key %q", key)
		}
		if *slot != nil {
			return invalid("duplicate key %q", key)
		}
		v, err := ParseValue(raw)
		if err != nil {
			return invalid("%s: %v", key, err)
		}
		*slot = &v
	}
	return spec, nil
}

// Resolve computes the absolute screen rectangle for a position string on a
// monitor. It is pure: equal inputs always yield an equal Rect.
func Resolve(position string, mon monitor.Monitor) (platform.Rect, error) {
	spec, err := Parse(position)
	if err != nil {
		return platform.Rect{}, err
	}

	w := valueOr(spec.W, mon.Width, mon.Width)
	h := valueOr(spec.H, mon.Height, mon.Height)
	if w <= 0 || h <= 0 {
		return platform.Rect{}, &InvalidPositionError{
			Position: position,
			Reason:   fmt.Sprintf("width and height must be positive (got %dx%d on %s)", w, h, mon.Name),
		}
	}
	rawX := valueOr(spec.X, mon.Width, 0)
	rawY := valueOr(spec.Y, mon.Height, 0)

	x, y := rawX, rawY
	switch spec.Anchor {
	case AnchorTopRight:
		x = mon.Width - rawX - w
	case AnchorBottomLeft:
		y = mon.Height - rawY - h
	case AnchorBottomRight:
		x = mon.Width - rawX - w
		y = mon.Height - rawY - h
	case AnchorCenter:
		x = (mon.Width-w)/2 + rawX
		y = (mon.Height-h)/2 + rawY
	}

	w = min(w, mon.Width)
	h = min(h, mon.Height)
	x = clamp(x, 0, mon.Width-w)
	y = clamp(y, 0, mon.Height-h)

	return platform.Rect{
		X:      mon.X + x,
		Y:      mon.Y + y,
		Width:  w,
		Height: h,
	}, nil
}

// ValueKind distinguishes the accepted value forms.
type ValueKind int

const (
	ValuePixels ValueKind = iota
	ValuePercent
	ValueFraction
)

// Value is one x/y/w/h operand.
type Value struct {
	Kind    ValueKind
	Pixels  int
	Percent float64
	Num     int
	Den     int
}

// ParseValue parses "NN%", "A/B" or an integer pixel count.
func ParseValue(s string) (Value, error) {
	switch {
	case s == "":
		return Value{}, fmt.Errorf("empty value")
	case strings.HasSuffix(s, "%"):
		p, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil || math.IsNaN(p) || math.IsInf(p, 0) {
			return Value{}, fmt.Errorf("bad percentage %q", s)
		}
		return Value{Kind: ValuePercent, Percent: p}, nil
	case strings.Contains(s, "/"):
		a, b, _ := strings.Cut(s, "/")
		num, err1 := strconv.Atoi(a)
		den, err2 := strconv.Atoi(b)
		if err1 != nil || err2 != nil {
			return Value{}, fmt.Errorf("bad fraction %q", s)
		}
		if den == 0 {
			return Value{}, fmt.Errorf("zero denominator in %q", s)
		}
		return Value{Kind: ValueFraction, Num: num, Den: den}, nil
	default:
		px, err := strconv.Atoi(s)
		if err != nil {
			return Value{}, fmt.Errorf("bad pixel value %q", s)
		}
		return Value{Kind: ValuePixels, Pixels: px}, nil
	}
}

// maxPixels bounds every operand; X11 coordinates are 16-bit, so anything
// larger is clamped to the monitor anyway.
const maxPixels = 1 << 20

// PixelsOf scales the value against total, rounding to the nearest pixel.
// Results are limited to ±maxPixels.
func (v Value) PixelsOf(total int) int {
	switch v.Kind {
	case ValuePercent:
		return roundPixels(float64(total) * v.Percent / 100)
	case ValueFraction:
		return roundPixels(float64(total) * float64(v.Num) / float64(v.Den))
	default:
		return clamp(v.Pixels, -maxPixels, maxPixels)
	}
}

func roundPixels(f float64) int {
	return int(math.Round(math.Max(-maxPixels, math.Min(maxPixels, f))))
}

func valueOr(v *Value, total, def int) int {
	if v == nil {
		return def
	}
	return v.PixelsOf(total)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
