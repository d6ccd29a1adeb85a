//go:build linux

package platform

import (
	"fmt"

	"github.com/1broseidon/workspace-launcher/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
)

// LinuxBackend wraps an X11 connection behind the platform Backend interface.
type LinuxBackend struct {
	conn *x11.Connection
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection) *LinuxBackend {
	return &LinuxBackend{conn: conn}
}

// NewLinuxBackendFromDisplay creates a new Linux backend by opening a fresh X11 connection.
func NewLinuxBackendFromDisplay() (*LinuxBackend, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &LinuxBackend{conn: conn}, nil
}

// Disconnect closes the underlying X11 connection.
func (b *LinuxBackend) Disconnect() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

// Outputs returns all connected outputs with their geometry and primary flag.
func (b *LinuxBackend) Outputs() ([]Output, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}

	monitors, err := conn.GetMonitors()
	if err != nil {
		return nil, err
	}

	outputs := make([]Output, 0, len(monitors))
	for _, m := range monitors {
		outputs = append(outputs, Output{
			Name: m.Name,
			Bounds: Rect{
				X:      m.X,
				Y:      m.Y,
				Width:  m.Width,
				Height: m.Height,
			},
			Primary: m.Primary,
		})
	}
	return outputs, nil
}

// ListWindows lists normal top-level windows in client-list order.
func (b *LinuxBackend) ListWindows() ([]Window, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}

	clients, err := conn.ListClients()
	if err != nil {
		return nil, err
	}

	windows := make([]Window, 0, len(clients))
	for _, c := range clients {
		windows = append(windows, Window{
			ID:       WindowID(c.ID),
			PID:      c.PID,
			Class:    c.Class,
			Instance: c.Instance,
			Title:    c.Title,
		})
	}
	return windows, nil
}

// Geometry returns the current root-relative geometry of a window.
func (b *LinuxBackend) Geometry(windowID WindowID) (Rect, error) {
	conn, err := b.connection()
	if err != nil {
		return Rect{}, err
	}

	x, y, w, h, err := conn.WindowGeometry(xproto.Window(windowID))
	if err != nil {
		return Rect{}, fmt.Errorf("window 0x%x: %w", uint32(windowID), err)
	}
	return Rect{X: x, Y: y, Width: w, Height: h}, nil
}

// MoveResize moves and resizes a window to the specified bounds.
func (b *LinuxBackend) MoveResize(windowID WindowID, bounds Rect) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}

	return conn.MoveResizeWindow(
		xproto.Window(windowID),
		bounds.X,
		bounds.Y,
		bounds.Width,
		bounds.Height,
	)
}

// Unmaximize clears horizontal/vertical maximized states.
func (b *LinuxBackend) Unmaximize(windowID WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.UnmaximizeWindow(xproto.Window(windowID))
}

// FrameExtents returns client-side decoration sizes (zeros when absent).
func (b *LinuxBackend) FrameExtents(windowID WindowID) (Extents, error) {
	conn, err := b.connection()
	if err != nil {
		return Extents{}, err
	}

	left, right, top, bottom, err := conn.GetGTKFrameExtents(xproto.Window(windowID))
	if err != nil {
		return Extents{}, err
	}
	return Extents{Left: left, Right: right, Top: top, Bottom: bottom}, nil
}

// SetDesktop moves a window to a 0-based virtual desktop.
func (b *LinuxBackend) SetDesktop(windowID WindowID, desktop int) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}

	if count, err := conn.GetDesktopCount(); err == nil && desktop >= count {
		return fmt.Errorf("desktop %d out of range (%d desktops)", desktop+1, count)
	}
	return conn.SetWindowDesktop(xproto.Window(windowID), desktop)
}

func (b *LinuxBackend) connection() (*x11.Connection, error) {
	if b == nil || b.conn == nil {
		return nil, fmt.Errorf("x11 backend connection is nil")
	}
	return b.conn, nil
}
