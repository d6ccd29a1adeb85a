package shortcuts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/workspace-launcher/internal/template"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestSync(t *testing.T) {
	templates := t.TempDir()
	apps := filepath.Join(t.TempDir(), "applications")

	write(t, filepath.Join(templates, "dev.yml"), `name: Development
description: Editor and browser
icon: code
shortcut: true
windows:
  - type: kitty
`)
	write(t, filepath.Join(templates, "chat.yml"), "shortcut: true\nwindows:\n  - type: app\n    command: slack\n")
	write(t, filepath.Join(templates, "plain.yml"), "windows:\n  - type: kitty\n")
	write(t, filepath.Join(templates, "broken.yml"), "windows: [\n")

	require.NoError(t, os.MkdirAll(apps, 0o755))
	stale := filepath.Join(apps, "workspace-old.desktop")
	write(t, stale, "[Desktop Entry]\nName=Workspace: old\nX-Workspace-Launcher-Template=old\n")
	foreign := filepath.Join(apps, "workspace-foreign.desktop")
	write(t, foreign, "[Desktop Entry]\nName=Someone else's\n")

	res, err := Sync(template.NewStore(templates), apps, "/usr/local/bin/workspace", nil)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		filepath.Join(apps, "workspace-chat.desktop"),
		filepath.Join(apps, "workspace-dev.desktop"),
	}, res.Written)
	assert.Equal(t, []string{stale}, res.Removed)
	assert.Contains(t, res.Skipped, "broken")

	assert.NoFileExists(t, stale)
	assert.FileExists(t, foreign)

	data, err := os.ReadFile(filepath.Join(apps, "workspace-dev.desktop"))
	require.NoError(t, err)
	assert.Equal(t, `[Desktop Entry]
Type=Application
Name=Workspace: Development
Comment=Editor and browser
Exec=/usr/local/bin/workspace dev
Icon=code
Terminal=false
Categories=Utility;
X-Workspace-Launcher-Template=dev
`, string(data))

	data, err = os.ReadFile(filepath.Join(apps, "workspace-chat.desktop"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Icon=preferences-desktop-display\n")
	assert.Contains(t, string(data), "Name=Workspace: chat\n")
}

func TestSync_Idempotent(t *testing.T) {
	templates := t.TempDir()
	apps := t.TempDir()
	write(t, filepath.Join(templates, "dev.yml"), "shortcut: true\nwindows:\n  - type: kitty\n")

	store := template.NewStore(templates)
	_, err := Sync(store, apps, "workspace", nil)
	require.NoError(t, err)
	res, err := Sync(store, apps, "workspace", nil)
	require.NoError(t, err)

	assert.Len(t, res.Written, 1)
	assert.Empty(t, res.Removed)
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "workspace-b.desktop"), "[Desktop Entry]\nName=Workspace: B\nX-Workspace-Launcher-Template=b\n")
	write(t, filepath.Join(dir, "workspace-a.desktop"), "[Desktop Entry]\nName=Workspace: A\nX-Workspace-Launcher-Template=a\n")
	write(t, filepath.Join(dir, "workspace-x.desktop"), "[Desktop Entry]\nName=Unrelated\n")
	write(t, filepath.Join(dir, "firefox.desktop"), "[Desktop Entry]\nX-Workspace-Launcher-Template=nope\n")

	got, err := List(dir)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, Shortcut{Template: "a", Name: "Workspace: A", Path: filepath.Join(dir, "workspace-a.desktop")}, got[0])
	assert.Equal(t, "b", got[1].Template)

	got, err = List(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestQuoteExecArg(t *testing.T) {
	assert.Equal(t, "/usr/bin/workspace", quoteExecArg("/usr/bin/workspace"))
	assert.Equal(t, `"/opt/my apps/workspace"`, quoteExecArg("/opt/my apps/workspace"))
	assert.Equal(t, `"100%%"`, quoteExecArg("100%"))
}
