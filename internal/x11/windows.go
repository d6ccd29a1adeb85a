package x11

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xprop"
)

// Client is a top-level window from the EWMH client list.
type Client struct {
	ID       xproto.Window
	PID      int
	Instance string
	Class    string
	Title    string
}

// ListClients returns all managed top-level windows in _NET_CLIENT_LIST order
// (initial mapping order, oldest first). Non-normal windows such as docks and
// desktops are skipped.
func (c *Connection) ListClients() ([]Client, error) {
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return nil, fmt.Errorf("failed to get client list: %w", err)
	}

	out := make([]Client, 0, len(clients))
	for _, win := range clients {
		if !c.IsNormalWindow(win) {
			continue
		}
		client := Client{ID: win, Title: c.WindowTitle(win)}
		if wmClass, err := icccm.WmClassGet(c.XUtil, win); err == nil {
			client.Instance = strings.TrimSpace(wmClass.Instance)
			client.Class = strings.TrimSpace(wmClass.Class)
		}
		if pid, err := ewmh.WmPidGet(c.XUtil, win); err == nil {
			client.PID = int(pid)
		}
		out = append(out, client)
	}
	return out, nil
}

// WindowTitle returns _NET_WM_NAME, falling back to WM_NAME.
func (c *Connection) WindowTitle(windowID xproto.Window) string {
	title, err := ewmh.WmNameGet(c.XUtil, windowID)
	if err == nil {
		title = strings.TrimSpace(title)
		if title != "" {
			return title
		}
	}

	title, err = icccm.WmNameGet(c.XUtil, windowID)
	if err == nil {
		return strings.TrimSpace(title)
	}
	return ""
}

// WindowGeometry returns the window's root-relative geometry. It fails when
// the window no longer exists.
func (c *Connection) WindowGeometry(windowID xproto.Window) (x, y, width, height int, err error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
	if err != nil {
		return 0, 0, 0, 0, err
	}

	translate, err := xproto.TranslateCoordinates(
		c.XUtil.Conn(),
		windowID,
		c.Root,
		0, 0,
	).Reply()
	if err != nil {
		return 0, 0, 0, 0, err
	}

	return int(translate.DstX), int(translate.DstY), int(geom.Width), int(geom.Height), nil
}

// MoveResizeWindow moves and resizes a window to the specified geometry.
// The EWMH request goes through the window manager; when it cannot be sent,
// a checked ConfigureWindow is issued directly and its error returned.
func (c *Connection) MoveResizeWindow(windowID xproto.Window, x, y, width, height int) error {
	err := ewmh.MoveresizeWindow(
		c.XUtil,
		windowID,
		x, y, width, height,
	)
	if err == nil {
		return nil
	}

	mask := uint16(xproto.ConfigWindowX | xproto.ConfigWindowY | xproto.ConfigWindowWidth | xproto.ConfigWindowHeight)
	values := []uint32{uint32(int32(x)), uint32(int32(y)), uint32(width), uint32(height)}
	if cerr := xproto.ConfigureWindowChecked(c.XUtil.Conn(), windowID, mask, values).Check(); cerr != nil {
		return fmt.Errorf("moveresize window 0x%x: %v; configure fallback: %w", uint32(windowID), err, cerr)
	}
	return nil
}

// UnmaximizeWindow removes maximized state from a window
func (c *Connection) UnmaximizeWindow(windowID xproto.Window) error {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return err
	}

	for _, state := range states {
		switch state {
		case "_NET_WM_STATE_MAXIMIZED_HORZ", "_NET_WM_STATE_MAXIMIZED_VERT":
			if err := ewmh.WmStateReq(c.XUtil, windowID, ewmh.StateRemove, state); err != nil {
				return err
			}
		}
	}
	return nil
}

// GetGTKFrameExtents returns the client-side decoration (shadow) sizes GTK
// windows advertise in _GTK_FRAME_EXTENTS. Windows without the property
// report zeros.
func (c *Connection) GetGTKFrameExtents(windowID xproto.Window) (left, right, top, bottom int, err error) {
	vals, err := xprop.PropValNums(xprop.GetProperty(c.XUtil, windowID, "_GTK_FRAME_EXTENTS"))
	if err != nil || len(vals) != 4 {
		return 0, 0, 0, 0, nil
	}
	return int(vals[0]), int(vals[1]), int(vals[2]), int(vals[3]), nil
}

// IsNormalWindow checks if a window is a normal application window
func (c *Connection) IsNormalWindow(windowID xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		// If we can't determine type, assume it's normal
		return true
	}

	for _, t := range types {
		if t == "_NET_WM_WINDOW_TYPE_NORMAL" {
			return true
		}
		// Reject desktop, dock, splash, etc.
		if t == "_NET_WM_WINDOW_TYPE_DESKTOP" ||
			t == "_NET_WM_WINDOW_TYPE_DOCK" ||
			t == "_NET_WM_WINDOW_TYPE_SPLASH" ||
			t == "_NET_WM_WINDOW_TYPE_NOTIFICATION" {
			return false
		}
	}

	// If no specific type is set, assume it's normal
	return len(types) == 0
}
