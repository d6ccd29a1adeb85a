package placer

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/workspace-launcher/internal/platform"
)

// fakeWM models windows whose geometry is set by MoveResize, minus frame extents.
type fakeWM struct {
	geometry  map[platform.WindowID]platform.Rect
	desktops  map[platform.WindowID]int
	extents   map[platform.WindowID]platform.Extents
	maximized map[platform.WindowID]bool
	moves     []platform.Rect
	moveErr   error
}

func newFakeWM(ids ...platform.WindowID) *fakeWM {
	wm := &fakeWM{
		geometry:  map[platform.WindowID]platform.Rect{},
		desktops:  map[platform.WindowID]int{},
		extents:   map[platform.WindowID]platform.Extents{},
		maximized: map[platform.WindowID]bool{},
	}
	for _, id := range ids {
		wm.geometry[id] = platform.Rect{Width: 100, Height: 100}
	}
	return wm
}

func (f *fakeWM) Geometry(id platform.WindowID) (platform.Rect, error) {
	r, ok := f.geometry[id]
	if !ok {
		return platform.Rect{}, errors.New("BadWindow")
	}
	return r, nil
}

func (f *fakeWM) MoveResize(id platform.WindowID, r platform.Rect) error {
	if _, ok := f.geometry[id]; !ok {
		return errors.New("BadWindow")
	}
	if f.moveErr != nil {
		return f.moveErr
	}
	f.moves = append(f.moves, r)
	f.geometry[id] = r
	return nil
}

func (f *fakeWM) Unmaximize(id platform.WindowID) error {
	f.maximized[id] = false
	return nil
}

func (f *fakeWM) FrameExtents(id platform.WindowID) (platform.Extents, error) {
	return f.extents[id], nil
}

func (f *fakeWM) SetDesktop(id platform.WindowID, desktop int) error {
	if desktop > 3 {
		return errors.New("desktop out of range")
	}
	f.desktops[id] = desktop
	return nil
}

func TestPlace_MovesAndAssignsDesktop(t *testing.T) {
	wm := newFakeWM(0x10)
	wm.maximized[0x10] = true
	p := New(wm, nil)

	desktop := 2
	rect := platform.Rect{X: 1920, Y: 0, Width: 640, Height: 1080}
	require.NoError(t, p.Place(0x10, rect, &desktop))

	assert.Equal(t, rect, wm.geometry[0x10])
	assert.Equal(t, 2, wm.desktops[0x10])
	assert.False(t, wm.maximized[0x10])
}

func TestPlace_NoDesktopLeavesDesktopAlone(t *testing.T) {
	wm := newFakeWM(0x10)
	p := New(wm, nil)

	require.NoError(t, p.Place(0x10, platform.Rect{Width: 10, Height: 10}, nil))
	_, assigned := wm.desktops[0x10]
	assert.False(t, assigned)
}

func TestPlace_Idempotent(t *testing.T) {
	wm := newFakeWM(0x10)
	p := New(wm, nil)
	rect := platform.Rect{X: 560, Y: 240, Width: 800, Height: 600}

	require.NoError(t, p.Place(0x10, rect, nil))
	first := wm.geometry[0x10]
	require.NoError(t, p.Place(0x10, rect, nil))

	assert.Equal(t, first, wm.geometry[0x10])
	require.Len(t, wm.moves, 2)
	assert.Equal(t, wm.moves[0], wm.moves[1])
}

func TestPlace_CompensatesFrameExtents(t *testing.T) {
	wm := newFakeWM(0x10)
	wm.extents[0x10] = platform.Extents{Left: 26, Right: 26, Top: 23, Bottom: 29}
	p := New(wm, nil)

	require.NoError(t, p.Place(0x10, platform.Rect{X: 0, Y: 0, Width: 960, Height: 1080}, nil))
	assert.Equal(t, platform.Rect{X: -26, Y: -23, Width: 1012, Height: 1132}, wm.geometry[0x10])
}

func TestPlace_ClosedWindow(t *testing.T) {
	wm := newFakeWM()
	p := New(wm, nil)

	err := p.Place(0x99, platform.Rect{Width: 10, Height: 10}, nil)
	require.Error(t, err)

	var pe *PlacementError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, platform.WindowID(0x99), pe.Window)
	assert.Equal(t, "lookup", pe.Op)
	assert.Empty(t, wm.moves)
}

func TestPlace_DesktopFailure(t *testing.T) {
	wm := newFakeWM(0x10)
	p := New(wm, nil)

	desktop := 9
	err := p.Place(0x10, platform.Rect{Width: 10, Height: 10}, &desktop)
	var pe *PlacementError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "set desktop", pe.Op)
}

func TestPlace_RejectsEmptyRect(t *testing.T) {
	wm := newFakeWM(0x10)
	err := New(wm, nil).Place(0x10, platform.Rect{}, nil)
	var pe *PlacementError
	assert.True(t, errors.As(err, &pe))
}

func TestPlace_MoveResizeFailure(t *testing.T) {
	wm := newFakeWM(0x10)
	wm.moveErr = errors.New("BadValue")
	p := New(wm, nil)

	err := p.Place(0x10, platform.Rect{Width: 10, Height: 10}, nil)
	var pe *PlacementError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "move/resize", pe.Op)
	assert.ErrorContains(t, err, "BadValue")
	assert.Equal(t, platform.Rect{Width: 100, Height: 100}, wm.geometry[0x10])
}
