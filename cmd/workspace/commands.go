package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/1broseidon/workspace-launcher/internal/launcher"
	"github.com/1broseidon/workspace-launcher/internal/shortcuts"
)

func (a *app) runList() error {
	store := a.store()
	entries, err := store.List()
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(a.stdout, "Templates directory not found: %s\n", store.Dir)
		return nil
	}
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.stdout, "No templates available.")
		fmt.Fprintf(a.stdout, "Create one in: %s/my-template.yml\n", store.Dir)
		return nil
	}

	st := styleFor(a.stdout)
	fmt.Fprintln(a.stdout, "Available templates:")
	fmt.Fprintln(a.stdout)
	for _, e := range entries {
		desc := e.Description
		if desc == "" {
			desc = "No description"
		}
		fmt.Fprintf(a.stdout, "  %-20s %s", st.bold(e.Name), desc)
		if !e.ModTime.IsZero() {
			fmt.Fprintf(a.stdout, " %s", st.dim("(modified "+humanize.Time(e.ModTime)+")"))
		}
		fmt.Fprintln(a.stdout)
	}
	return nil
}

func (a *app) runMonitors() error {
	mons, err := a.launcher().Monitors()
	if err != nil {
		return err
	}
	st := styleFor(a.stdout)
	fmt.Fprintln(a.stdout, "Detected monitors:")
	fmt.Fprintln(a.stdout)
	for _, m := range mons {
		marker := ""
		if m.Primary {
			marker = " (primary)"
		}
		fmt.Fprintf(a.stdout, "  %s%s\n", st.bold(m.Name), marker)
		fmt.Fprintf(a.stdout, "    Position: %d,%d  Size: %dx%d\n", m.X, m.Y, m.Width, m.Height)
	}
	return nil
}

func (a *app) runResolve(pos, monitorName string) error {
	mon, rect, err := a.launcher().Resolve(pos, monitorName)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "%s on %s: %s (x=%d y=%d w=%d h=%d)\n",
		pos, mon.Name, rectString(rect.X, rect.Y, rect.Width, rect.Height),
		rect.X, rect.Y, rect.Width, rect.Height)
	return nil
}

func (a *app) runLaunch(ctx context.Context, name string) error {
	if a.opts.timeout != "" {
		d, err := time.ParseDuration(a.opts.timeout)
		if err != nil || d <= 0 {
			return usageErrorf("invalid --timeout %q", a.opts.timeout)
		}
		a.cfg.DiscoveryTimeout = d
	}

	fmt.Fprintf(a.stdout, "Loading workspace: %s\n", name)
	res, err := a.launcher().Launch(ctx, name)
	if err != nil {
		return err
	}

	st := styleFor(a.stdout)
	report := res.Report
	for _, j := range report.Results() {
		label := j.Spec.Title
		if label == "" {
			label = j.Spec.Command
		}
		if label == "" {
			label = string(j.Spec.Kind)
		}
		if j.State == launcher.StatePositioned {
			fmt.Fprintf(a.stdout, "  %s %s %s\n", st.ok(), label,
				st.dim(fmt.Sprintf("%s %s", j.Spec.Monitor, rectString(j.Rect.X, j.Rect.Y, j.Rect.Width, j.Rect.Height))))
			continue
		}
		fmt.Fprintf(a.stdout, "  %s %s: %v\n", st.fail(), label, j.Err)
	}
	fmt.Fprintf(a.stdout, "Workspace loaded: %d/%d windows placed in %s\n",
		report.Positioned(), report.Total(), report.Duration().Round(100*time.Millisecond))
	return nil
}

func (a *app) runSyncShortcuts() error {
	exe, err := a.exe()
	if err != nil {
		return fmt.Errorf("failed to locate executable: %w", err)
	}
	res, err := shortcuts.Sync(a.store(), a.cfg.ShortcutsDir, exe, a.logger)
	if err != nil {
		return err
	}
	for _, p := range res.Written {
		fmt.Fprintf(a.stdout, "wrote   %s\n", p)
	}
	for _, p := range res.Removed {
		fmt.Fprintf(a.stdout, "removed %s\n", p)
	}
	skipped := make([]string, 0, len(res.Skipped))
	for name := range res.Skipped {
		skipped = append(skipped, name)
	}
	sort.Strings(skipped)
	for _, name := range skipped {
		fmt.Fprintf(a.stderr, "skipped %s: %v\n", name, res.Skipped[name])
	}
	fmt.Fprintf(a.stdout, "Shortcuts synced: %d written, %d removed\n", len(res.Written), len(res.Removed))
	return nil
}

func (a *app) runListShortcuts() error {
	list, err := shortcuts.List(a.cfg.ShortcutsDir)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintf(a.stdout, "No template shortcuts in %s\n", a.cfg.ShortcutsDir)
		return nil
	}
	for _, s := range list {
		fmt.Fprintf(a.stdout, "  %-20s %s\n", s.Template, s.Path)
	}
	return nil
}
