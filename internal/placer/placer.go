// Package placer applies a resolved rectangle and optional virtual desktop to
// a discovered window.
package placer

import (
	"fmt"
	"log/slog"

	"github.com/1broseidon/workspace-launcher/internal/platform"
)

// PlacementError reports a window that could not be positioned, typically
// because it closed between discovery and placement.
type PlacementError struct {
	Window platform.WindowID
	Op     string
	Err    error
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("placing window 0x%x: %s: %v", uint32(e.Window), e.Op, e.Err)
}

func (e *PlacementError) Unwrap() error { return e.Err }

// Placer issues move/resize and desktop requests through a WindowController.
type Placer struct {
	ctl    platform.WindowController
	logger *slog.Logger
}

// New creates a Placer.
func New(ctl platform.WindowController, logger *slog.Logger) *Placer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Placer{ctl: ctl, logger: logger}
}

// Place moves the window onto rect and, when desktop is non-nil, onto that
// 0-based virtual desktop. Re-applying the same rect is a no-op visually:
// every request is absolute.
func (p *Placer) Place(handle platform.WindowID, rect platform.Rect, desktop *int) error {
	if rect.Width <= 0 || rect.Height <= 0 {
		return &PlacementError{Window: handle, Op: "validate", Err: fmt.Errorf("non-positive size %dx%d", rect.Width, rect.Height)}
	}
	if _, err := p.ctl.Geometry(handle); err != nil {
		return &PlacementError{Window: handle, Op: "lookup", Err: err}
	}

	if desktop != nil {
		if err := p.ctl.SetDesktop(handle, *desktop); err != nil {
			return &PlacementError{Window: handle, Op: "set desktop", Err: err}
		}
	}

	// Maximized windows ignore move/resize requests on most window managers.
	if err := p.ctl.Unmaximize(handle); err != nil {
		p.logger.Debug("unmaximize failed", "window", fmt.Sprintf("0x%x", uint32(handle)), "error", err)
	}

	target := rect
	if ext, err := p.ctl.FrameExtents(handle); err == nil {
		target = compensate(rect, ext)
	}

	if err := p.ctl.MoveResize(handle, target); err != nil {
		return &PlacementError{Window: handle, Op: "move/resize", Err: err}
	}
	return nil
}

// compensate grows the requested geometry by client-side shadow extents so
// the visible part of the window lands exactly on rect.
func compensate(rect platform.Rect, ext platform.Extents) platform.Rect {
	return platform.Rect{
		X:      rect.X - ext.Left,
		Y:      rect.Y - ext.Top,
		Width:  rect.Width + ext.Left + ext.Right,
		Height: rect.Height + ext.Top + ext.Bottom,
	}
}
