package platform

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Output describes one connected display as reported by the window system.
type Output struct {
	Name    string
	Bounds  Rect
	Primary bool
}

// Window contains identifying attributes of a top-level window.
type Window struct {
	ID    WindowID
	PID   int
	Class string
	// Instance is the first WM_CLASS field (res_name).
	Instance string
	Title    string
}

// Extents are client-side decoration sizes around a window's visible area.
type Extents struct {
	Left   int
	Right  int
	Top    int
	Bottom int
}

// DisplayQuery reports the connected outputs.
type DisplayQuery interface {
	Outputs() ([]Output, error)
}

// WindowLister returns the currently open top-level windows in stacking
// (mapping) order, oldest first.
type WindowLister interface {
	ListWindows() ([]Window, error)
}

// WindowController moves, resizes and relocates windows.
type WindowController interface {
	Geometry(windowID WindowID) (Rect, error)
	MoveResize(windowID WindowID, bounds Rect) error
	Unmaximize(windowID WindowID) error
	FrameExtents(windowID WindowID) (Extents, error)
	SetDesktop(windowID WindowID, desktop int) error
}

// Backend abstracts the window-system operations the launcher consumes.
type Backend interface {
	DisplayQuery
	WindowLister
	WindowController
}
