package launcher

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/workspace-launcher/internal/discovery"
	"github.com/1broseidon/workspace-launcher/internal/monitor"
	"github.com/1broseidon/workspace-launcher/internal/placer"
	"github.com/1broseidon/workspace-launcher/internal/platform"
	"github.com/1broseidon/workspace-launcher/internal/position"
)

// fakeDesktop is both the window system and the process spawner: spawning
// a command opens the window that command would open.
type fakeDesktop struct {
	mu       sync.Mutex
	next     platform.WindowID
	windows  []platform.Window
	geometry map[platform.WindowID]platform.Rect
	desktops map[platform.WindowID]int
	spawned  [][]string

	// onSpawn opens windows for argv. Defaults to openFor.
	onSpawn func(argv []string)
}

func newFakeDesktop() *fakeDesktop {
	d := &fakeDesktop{
		next:     0x100,
		geometry: map[platform.WindowID]platform.Rect{},
		desktops: map[platform.WindowID]int{},
	}
	d.onSpawn = d.openFor
	return d
}

func (d *fakeDesktop) open(class, title string) platform.WindowID {
	d.mu.Lock()
	defer d.mu.Unlock()
	id := d.next
	d.next++
	d.windows = append(d.windows, platform.Window{ID: id, Class: class, Instance: class, Title: title})
	d.geometry[id] = platform.Rect{Width: 200, Height: 100}
	return id
}

// openFor mimics what the real command would show: kitty sets its title from
// --title and its class from --class, apps use the executable name as class.
// "ghost" never opens a window.
func (d *fakeDesktop) openFor(argv []string) {
	if filepath.Base(argv[0]) == "ghost" {
		return
	}
	if argv[0] == "kitty" {
		class, title := "kitty", ""
		for i := 1; i+1 < len(argv) && argv[i] != "-e"; i++ {
			switch argv[i] {
			case "--title":
				title = argv[i+1]
			case "--class":
				class = argv[i+1]
			}
		}
		d.open(class, title)
		return
	}
	d.open(filepath.Base(argv[0]), filepath.Base(argv[0])+" window")
}

func (d *fakeDesktop) Spawn(argv []string) (int, error) {
	if argv[0] == "missing" {
		return 0, exec.ErrNotFound
	}
	d.mu.Lock()
	d.spawned = append(d.spawned, argv)
	pid := 1000 + len(d.spawned)
	d.mu.Unlock()

	go d.onSpawn(argv)
	return pid, nil
}

func (d *fakeDesktop) spawnCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.spawned)
}

func (d *fakeDesktop) Outputs() ([]platform.Output, error) { return nil, nil }

func (d *fakeDesktop) ListWindows() ([]platform.Window, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]platform.Window, len(d.windows))
	copy(out, d.windows)
	return out, nil
}

func (d *fakeDesktop) Geometry(id platform.WindowID) (platform.Rect, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	r, ok := d.geometry[id]
	if !ok {
		return platform.Rect{}, errors.New("BadWindow")
	}
	return r, nil
}

func (d *fakeDesktop) MoveResize(id platform.WindowID, r platform.Rect) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.geometry[id] = r
	return nil
}

func (d *fakeDesktop) Unmaximize(platform.WindowID) error { return nil }

func (d *fakeDesktop) FrameExtents(platform.WindowID) (platform.Extents, error) {
	return platform.Extents{}, nil
}

func (d *fakeDesktop) SetDesktop(id platform.WindowID, desktop int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.desktops[id] = desktop
	return nil
}

func (d *fakeDesktop) geometryOf(id platform.WindowID) platform.Rect {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.geometry[id]
}

func testRegistry(t *testing.T) *monitor.Registry {
	t.Helper()
	reg, err := monitor.New([]monitor.Monitor{
		{Name: "DP-1", Width: 1920, Height: 1080, X: 0, Y: 0, Primary: true},
		{Name: "HDMI-1", Width: 2560, Height: 1440, X: 1920, Y: 0},
	})
	require.NoError(t, err)
	return reg
}

func testScheduler(t *testing.T, d *fakeDesktop) *Scheduler {
	t.Helper()
	return NewScheduler(testRegistry(t), d, d, Options{
		DiscoveryTimeout: 300 * time.Millisecond,
		PollInterval:     5 * time.Millisecond,
	}, nil)
}

func intPtr(v int) *int { return &v }

func TestRun_PositionsWindows(t *testing.T) {
	d := newFakeDesktop()
	s := testScheduler(t, d)

	report, err := s.Run(context.Background(), []WindowSpec{
		{Kind: KindKitty, Title: "editor", Command: "nvim", Monitor: "primary", Position: "left"},
		{Kind: KindApp, Command: "firefox --new-window", Monitor: "HDMI-1", Position: "right-third", Desktop: intPtr(1)},
	})
	require.NoError(t, err)

	assert.Len(t, report.RunID, 26)
	assert.Equal(t, 2, report.Total())
	assert.Equal(t, 2, report.Positioned())
	assert.Equal(t, 0, report.Failed())
	assert.False(t, report.FinishedAt.Before(report.StartedAt))

	results := report.Results()
	require.Len(t, results, 2)

	kitty := results[0]
	assert.Equal(t, StatePositioned, kitty.State)
	assert.Equal(t, platform.Rect{X: 0, Y: 0, Width: 960, Height: 1080}, d.geometryOf(kitty.Window))

	app := results[1]
	assert.Equal(t, StatePositioned, app.State)
	want := platform.Rect{X: 1920 + 1707, Y: 0, Width: 853, Height: 1440}
	assert.Equal(t, want, app.Rect)
	assert.Equal(t, want, d.geometryOf(app.Window))
	assert.Equal(t, 1, d.desktops[app.Window])
	assert.NotZero(t, app.PID)
	assert.False(t, app.FinishedAt.Before(app.SpawnedAt))
}

func TestRun_KittyCustomClass(t *testing.T) {
	d := newFakeDesktop()
	s := NewScheduler(testRegistry(t), d, d, Options{
		KittyCommand:     "kitty --class dev",
		DiscoveryTimeout: 300 * time.Millisecond,
		PollInterval:     5 * time.Millisecond,
	}, nil)

	report, err := s.Run(context.Background(), []WindowSpec{
		{Kind: KindKitty, Title: "shell", Monitor: "primary", Position: "left"},
		{Kind: KindKitty, Title: "notes", WindowClass: "notes", Monitor: "primary", Position: "right"},
	})
	require.NoError(t, err)
	require.Equal(t, 2, report.Positioned(), "results: %+v", report.Results())

	results := report.Results()
	assert.Equal(t, platform.Rect{X: 0, Y: 0, Width: 960, Height: 1080}, d.geometryOf(results[0].Window))
	assert.Equal(t, platform.Rect{X: 960, Y: 0, Width: 960, Height: 1080}, d.geometryOf(results[1].Window))
	assert.Equal(t, []string{"kitty", "--class", "dev", "--class", "notes", "--title", "notes"}, d.spawned[1])
}

func TestRun_UnknownMonitorSpawnsNothing(t *testing.T) {
	d := newFakeDesktop()
	s := testScheduler(t, d)

	report, err := s.Run(context.Background(), []WindowSpec{
		{Kind: KindKitty, Title: "a", Monitor: "primary", Position: "full"},
		{Kind: KindApp, Command: "code", Monitor: "DVI-9", Position: "full"},
	})
	require.Error(t, err)
	assert.Nil(t, report)

	var unknown *monitor.UnknownMonitorError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "DVI-9", unknown.Name)
	assert.Zero(t, d.spawnCount())
}

func TestRun_SameKindSerialized(t *testing.T) {
	d := newFakeDesktop()
	s := testScheduler(t, d)

	report, err := s.Run(context.Background(), []WindowSpec{
		{Kind: KindKitty, Title: "one", Monitor: "primary", Position: "left"},
		{Kind: KindKitty, Title: "two", Monitor: "primary", Position: "right"},
		{Kind: KindKitty, Title: "three", Monitor: "HDMI-1", Position: "full"},
	})
	require.NoError(t, err)
	require.Equal(t, 3, report.Positioned())

	results := report.Results()
	for i := 1; i < len(results); i++ {
		prev, cur := results[i-1], results[i]
		assert.False(t, cur.SpawnedAt.Before(prev.FinishedAt),
			"job %d spawned at %v before job %d finished at %v", cur.Index, cur.SpawnedAt, prev.Index, prev.FinishedAt)
	}
	assert.Equal(t, "one", results[0].Spec.Title)
	assert.Equal(t, "three", results[2].Spec.Title)
}

func TestRun_KindsRunConcurrently(t *testing.T) {
	d := newFakeDesktop()
	appSpawned := make(chan struct{})
	var once sync.Once
	// The kitty window only appears once the app has been spawned, which can
	// only happen if the app lane runs while the kitty lane is discovering.
	d.onSpawn = func(argv []string) {
		if argv[0] == "kitty" {
			select {
			case <-appSpawned:
			case <-time.After(time.Second):
				return
			}
		} else {
			once.Do(func() { close(appSpawned) })
		}
		d.openFor(argv)
	}
	s := testScheduler(t, d)

	report, err := s.Run(context.Background(), []WindowSpec{
		{Kind: KindKitty, Title: "shell", Monitor: "primary", Position: "left"},
		{Kind: KindApp, Command: "code", Monitor: "primary", Position: "right"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, report.Positioned())
	assert.Zero(t, report.Failed())
}

func TestRun_FailureIsolation(t *testing.T) {
	d := newFakeDesktop()
	s := testScheduler(t, d)

	report, err := s.Run(context.Background(), []WindowSpec{
		{Kind: KindApp, Command: "ghost", Monitor: "primary", Position: "left"},
		{Kind: KindApp, Command: "code", Monitor: "primary", Position: "right"},
		{Kind: KindKitty, Title: "logs", Monitor: "HDMI-1", Position: "full"},
	})
	require.NoError(t, err)

	results := report.Results()
	require.Len(t, results, 3)
	assert.Equal(t, StateFailed, results[0].State)
	assert.True(t, discovery.IsNotFound(results[0].Err))
	assert.Equal(t, StatePositioned, results[1].State)
	assert.Equal(t, StatePositioned, results[2].State)
	assert.Equal(t, 1, report.Failed())
}

func TestRun_InvalidPositionFailsOnlyItsJob(t *testing.T) {
	d := newFakeDesktop()
	s := testScheduler(t, d)

	report, err := s.Run(context.Background(), []WindowSpec{
		{Kind: KindApp, Command: "code", Monitor: "primary", Position: "zz w:1/0"},
		{Kind: KindApp, Command: "slack", Monitor: "primary", Position: "full"},
	})
	require.NoError(t, err)

	results := report.Results()
	require.Len(t, results, 2)
	var invalid *position.InvalidPositionError
	assert.True(t, errors.As(results[0].Err, &invalid))
	assert.Equal(t, StateFailed, results[0].State)
	assert.True(t, results[0].SpawnedAt.IsZero())
	assert.Equal(t, StatePositioned, results[1].State)
	assert.Equal(t, 1, d.spawnCount())
}

func TestRun_LaunchError(t *testing.T) {
	d := newFakeDesktop()
	s := testScheduler(t, d)

	report, err := s.Run(context.Background(), []WindowSpec{
		{Kind: KindApp, Command: "missing --flag", Monitor: "primary", Position: "full"},
		{Kind: KindApp, Command: "'unterminated", Monitor: "primary", Position: "full"},
	})
	require.NoError(t, err)

	for _, r := range report.Results() {
		var le *LaunchError
		require.True(t, errors.As(r.Err, &le), "job %d: %v", r.Index, r.Err)
		assert.Equal(t, StateFailed, r.State)
	}
	assert.True(t, errors.Is(report.Results()[0].Err, exec.ErrNotFound))
}

func TestRun_IgnoresPreexistingWindows(t *testing.T) {
	d := newFakeDesktop()
	old := d.open("kitty", "notes")
	s := testScheduler(t, d)

	report, err := s.Run(context.Background(), []WindowSpec{
		{Kind: KindKitty, Title: "notes", Monitor: "primary", Position: "top"},
	})
	require.NoError(t, err)

	results := report.Results()
	require.Equal(t, StatePositioned, results[0].State)
	assert.NotEqual(t, old, results[0].Window)
	assert.Equal(t, platform.Rect{Width: 200, Height: 100}, d.geometryOf(old))
}

func TestRun_PlacementFailure(t *testing.T) {
	d := newFakeDesktop()
	// The window closes before it can be placed.
	d.onSpawn = func(argv []string) {
		d.mu.Lock()
		defer d.mu.Unlock()
		d.windows = append(d.windows, platform.Window{ID: d.next, Class: filepath.Base(argv[0])})
		d.next++
	}
	s := testScheduler(t, d)

	report, err := s.Run(context.Background(), []WindowSpec{
		{Kind: KindApp, Command: "flaky", Monitor: "primary", Position: "full"},
	})
	require.NoError(t, err)

	var pe *placer.PlacementError
	assert.True(t, errors.As(report.Results()[0].Err, &pe))
}

func TestRun_CanceledContextFailsRemainingJobs(t *testing.T) {
	d := newFakeDesktop()
	s := testScheduler(t, d)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := s.Run(ctx, []WindowSpec{
		{Kind: KindApp, Command: "code", Monitor: "primary", Position: "full"},
	})
	require.NoError(t, err)
	assert.ErrorIs(t, report.Results()[0].Err, context.Canceled)
	assert.Zero(t, d.spawnCount())
}
