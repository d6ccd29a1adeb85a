package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/1broseidon/workspace-launcher/internal/config"
	"github.com/1broseidon/workspace-launcher/internal/launcher"
	"github.com/1broseidon/workspace-launcher/internal/notify"
	"github.com/1broseidon/workspace-launcher/internal/template"
	"github.com/1broseidon/workspace-launcher/internal/workspace"
)

var version = "dev"

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// usageError marks errors caused by bad invocation rather than bad input.
type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

// app carries everything a command needs; tests replace the collaborators.
type app struct {
	stdout io.Writer
	stderr io.Writer

	opts struct {
		configPath    string
		verbose       bool
		list          bool
		monitors      bool
		syncShortcuts bool
		listShortcuts bool
		resolve       string
		monitor       string
		timeout       string
	}

	cfg    *config.Config
	logger *slog.Logger

	connect  workspace.ConnectFunc
	spawner  launcher.Spawner
	notifier workspace.Notifier
	exe      func() (string, error)
}

func main() {
	a := &app{
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		connect: connectDisplay,
		exe:     os.Executable,
	}
	os.Exit(a.execute(os.Args[1:]))
}

func (a *app) execute(args []string) int {
	root := a.newRootCmd()
	root.SetArgs(args)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := root.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}

	fmt.Fprintf(a.stderr, "Error: %v\n", err)
	var ue *usageError
	if errors.As(err, &ue) {
		fmt.Fprintln(a.stderr, "Run 'workspace --help' for usage.")
		return exitUsage
	}
	return exitFailure
}

func (a *app) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "workspace [template]",
		Short: "Open a multi-monitor workspace from a YAML template",
		Long: `workspace opens the windows declared in a template and places each one on
its monitor at the requested position.

Templates live in ~/.config/workspace-launcher/templates/ (templates_dir in
config.yaml). Running workspace without arguments lists them.

Position syntax:
  "[anchor] [x:val] [y:val] [w:val] [h:val]"

  Anchors: tl (top-left, default), tr, bl, br, c (center); may appear
           anywhere in the string, the last one wins
  Values:  50% (percentage), 1/3 (fraction), 800 (pixels)

Shortcuts: full, left, right, top, bottom, top-left, top-right,
           bottom-left, bottom-right, left-third, center-third, right-third,
           top-third, middle-third, bottom-third, left-two-thirds,
           right-two-thirds`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return usageErrorf("expected at most one template name, got %d arguments", len(args))
			}
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		RunE: a.runRoot,
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&a.opts.configPath, "config", "", "Path to config file (default: ~/.config/workspace-launcher/config.yaml)")
	pf.BoolVarP(&a.opts.verbose, "verbose", "v", false, "Enable debug logging")

	f := root.Flags()
	f.BoolVarP(&a.opts.list, "list", "l", false, "List available templates")
	f.BoolVarP(&a.opts.monitors, "monitors", "m", false, "List detected monitors")
	f.BoolVar(&a.opts.syncShortcuts, "sync-shortcuts", false, "Write .desktop shortcuts for templates with shortcut: true")
	f.BoolVar(&a.opts.listShortcuts, "list-shortcuts", false, "List installed template shortcuts")
	f.StringVar(&a.opts.resolve, "resolve", "", "Print the rectangle a position string resolves to")
	f.StringVar(&a.opts.monitor, "monitor", "", "Monitor for --resolve (default: primary)")
	f.StringVar(&a.opts.timeout, "timeout", "", "Override discovery_timeout for this run (e.g. 15s)")

	root.AddCommand(a.newMCPCmd())
	return root
}

// setup loads config and installs the logger.
func (a *app) setup() error {
	path := a.opts.configPath
	if path == "" {
		var err error
		if path, err = config.DefaultConfigPath(); err != nil {
			return err
		}
	}
	res, err := config.LoadFromPath(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.cfg = res.Config

	level := a.cfg.SlogLevel()
	if a.opts.verbose {
		level = slog.LevelDebug
	}
	a.logger = slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(a.logger)

	if a.spawner == nil {
		a.spawner = launcher.ExecSpawner{Logger: a.logger}
	}
	if a.notifier == nil {
		a.notifier = notify.New(a.cfg.Notifications, a.logger)
	}
	return nil
}

func (a *app) runRoot(cmd *cobra.Command, args []string) error {
	modes := 0
	for _, on := range []bool{a.opts.list, a.opts.monitors, a.opts.syncShortcuts, a.opts.listShortcuts, a.opts.resolve != "", len(args) == 1} {
		if on {
			modes++
		}
	}
	if modes > 1 {
		return usageErrorf("choose one of: a template name, --list, --monitors, --sync-shortcuts, --list-shortcuts, --resolve")
	}
	if a.opts.monitor != "" && a.opts.resolve == "" {
		return usageErrorf("--monitor is only valid with --resolve")
	}
	if a.opts.timeout != "" && len(args) == 0 {
		return usageErrorf("--timeout is only valid when launching a template")
	}

	switch {
	case a.opts.monitors:
		return a.runMonitors()
	case a.opts.syncShortcuts:
		return a.runSyncShortcuts()
	case a.opts.listShortcuts:
		return a.runListShortcuts()
	case a.opts.resolve != "":
		return a.runResolve(a.opts.resolve, a.opts.monitor)
	case len(args) == 1:
		return a.runLaunch(cmd.Context(), args[0])
	default:
		return a.runList()
	}
}

func (a *app) store() *template.Store {
	return template.NewStore(a.cfg.TemplatesDir)
}

func (a *app) launcher() *workspace.Launcher {
	return &workspace.Launcher{
		Config:   a.cfg,
		Store:    a.store(),
		Connect:  a.connect,
		Spawner:  a.spawner,
		Notifier: a.notifier,
		Logger:   a.logger,
	}
}
