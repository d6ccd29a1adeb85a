package launcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/workspace-launcher/internal/discovery"
)

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" Kitty ")
	require.NoError(t, err)
	assert.Equal(t, KindKitty, k)

	k, err = ParseKind("app")
	require.NoError(t, err)
	assert.Equal(t, KindApp, k)

	_, err = ParseKind("")
	assert.Error(t, err)
	_, err = ParseKind("terminal")
	assert.ErrorContains(t, err, `"terminal"`)
}

func TestKittyVariant(t *testing.T) {
	v := kittyVariant{command: "kitty", shell: "zsh"}

	tests := []struct {
		name  string
		spec  WindowSpec
		argv  []string
		title string
	}{
		{
			name:  "command keeps shell open",
			spec:  WindowSpec{Title: "Logs", Command: "tail -f /var/log/syslog"},
			argv:  []string{"kitty", "--title", "Logs", "-e", "zsh", "-c", "tail -f /var/log/syslog; exec zsh"},
			title: "Logs",
		},
		{
			name:  "no command",
			spec:  WindowSpec{Title: "Scratch"},
			argv:  []string{"kitty", "--title", "Scratch"},
			title: "Scratch",
		},
		{
			name:  "default title",
			spec:  WindowSpec{Command: "htop"},
			argv:  []string{"kitty", "--title", "Kitty", "-e", "zsh", "-c", "htop; exec zsh"},
			title: "Kitty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			argv, err := v.argv(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.argv, argv)
			assert.Equal(t, discovery.ClassTitleMatcher{Class: "kitty", Title: tt.title}, v.matcher(tt.spec, argv))
		})
	}
}

func TestKittyVariant_CommandWithArgs(t *testing.T) {
	v := kittyVariant{command: "kitty -o 'font_size=14'", shell: "bash"}
	argv, err := v.argv(WindowSpec{Title: "x"})
	require.NoError(t, err)
	assert.Equal(t, []string{"kitty", "-o", "font_size=14", "--title", "x"}, argv)

	_, err = kittyVariant{shell: "bash"}.argv(WindowSpec{})
	assert.Error(t, err)
}

func TestKittyVariant_Class(t *testing.T) {
	tests := []struct {
		name    string
		command string
		spec    WindowSpec
		argv    []string
		class   string
	}{
		{
			name:    "window_class passed to kitty",
			command: "kitty",
			spec:    WindowSpec{Title: "notes", WindowClass: "notes"},
			argv:    []string{"kitty", "--class", "notes", "--title", "notes"},
			class:   "notes",
		},
		{
			name:    "class from kitty_command",
			command: "kitty --class dev",
			spec:    WindowSpec{Title: "shell"},
			argv:    []string{"kitty", "--class", "dev", "--title", "shell"},
			class:   "dev",
		},
		{
			name:    "equals form",
			command: "kitty --class=dev -o font_size=12",
			spec:    WindowSpec{Title: "shell"},
			argv:    []string{"kitty", "--class=dev", "-o", "font_size=12", "--title", "shell"},
			class:   "dev",
		},
		{
			name:    "name when no class",
			command: "kitty --name scratch",
			spec:    WindowSpec{Title: "shell"},
			argv:    []string{"kitty", "--name", "scratch", "--title", "shell"},
			class:   "scratch",
		},
		{
			name:    "window_class beats kitty_command",
			command: "kitty --class dev",
			spec:    WindowSpec{Title: "shell", WindowClass: "ops"},
			argv:    []string{"kitty", "--class", "dev", "--class", "ops", "--title", "shell"},
			class:   "ops",
		},
		{
			name:    "child command flags ignored",
			command: "kitty",
			spec:    WindowSpec{Title: "shell", Command: "app --class other"},
			argv:    []string{"kitty", "--title", "shell", "-e", "bash", "-c", "app --class other; exec bash"},
			class:   "kitty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := kittyVariant{command: tt.command, shell: "bash"}
			argv, err := v.argv(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.argv, argv)
			assert.Equal(t, tt.class, v.matcher(tt.spec, argv).(discovery.ClassTitleMatcher).Class)
		})
	}
}

func TestAppVariant(t *testing.T) {
	v := appVariant{}

	argv, err := v.argv(WindowSpec{Command: `/usr/bin/code --new-window "my project"`})
	require.NoError(t, err)
	assert.Equal(t, []string{"/usr/bin/code", "--new-window", "my project"}, argv)
	assert.Equal(t, discovery.ClassTitleMatcher{Class: "code"}, v.matcher(WindowSpec{}, argv))

	m := v.matcher(WindowSpec{WindowClass: "Google-chrome", Title: "Gmail"}, []string{"google-chrome-stable"})
	assert.Equal(t, discovery.ClassTitleMatcher{Class: "Google-chrome", Title: "Gmail"}, m)

	_, err = v.argv(WindowSpec{Command: "   "})
	assert.Error(t, err)
}

func TestSplitCommand(t *testing.T) {
	tests := []struct {
		in      string
		want    []string
		wantErr bool
	}{
		{in: "firefox", want: []string{"firefox"}},
		{in: "  code   --wait ", want: []string{"code", "--wait"}},
		{in: `echo "a b" 'c d'`, want: []string{"echo", "a b", "c d"}},
		{in: `echo a\ b`, want: []string{"echo", "a b"}},
		{in: `echo ""`, want: []string{"echo", ""}},
		{in: `echo 'it"s'`, want: []string{"echo", `it"s`}},
		{in: "", want: nil},
		{in: `echo "open`, wantErr: true},
		{in: `echo \`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := splitCommand(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShellJoin(t *testing.T) {
	assert.Equal(t, `kitty --title 'my shell' -c 'it'\''s'`, shellJoin([]string{"kitty", "--title", "my shell", "-c", "it's"}))
	assert.Equal(t, "''", shellQuote(""))
}
