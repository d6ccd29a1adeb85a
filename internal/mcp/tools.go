package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/workspace-launcher/internal/launcher"
	"github.com/1broseidon/workspace-launcher/internal/platform"
)

func (s *Server) handleListTemplates(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListTemplatesInput) (*mcpsdk.CallToolResult, ListTemplatesOutput, error) {
	store := s.launcher.Store
	entries, err := store.List()
	if err != nil {
		return nil, ListTemplatesOutput{}, err
	}

	out := ListTemplatesOutput{Directory: store.Dir, Templates: make([]TemplateInfo, 0, len(entries))}
	for _, e := range entries {
		info := TemplateInfo{Name: e.Name, Description: e.Description}
		if tmpl, err := store.Load(e.Name); err != nil {
			info.Error = err.Error()
		} else {
			info.Title = tmpl.Name
			info.Windows = len(tmpl.Windows)
			info.Shortcut = tmpl.Shortcut
		}
		out.Templates = append(out.Templates, info)
	}
	return nil, out, nil
}

func (s *Server) handleListMonitors(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListMonitorsInput) (*mcpsdk.CallToolResult, ListMonitorsOutput, error) {
	mons, err := s.launcher.Monitors()
	if err != nil {
		return nil, ListMonitorsOutput{}, err
	}
	out := ListMonitorsOutput{Monitors: make([]MonitorInfo, 0, len(mons))}
	for _, m := range mons {
		out.Monitors = append(out.Monitors, MonitorInfo{
			Name:    m.Name,
			X:       m.X,
			Y:       m.Y,
			Width:   m.Width,
			Height:  m.Height,
			Primary: m.Primary,
		})
	}
	return nil, out, nil
}

func (s *Server) handleResolvePosition(_ context.Context, _ *mcpsdk.CallToolRequest, args ResolvePositionInput) (*mcpsdk.CallToolResult, ResolvePositionOutput, error) {
	mon, rect, err := s.launcher.Resolve(args.Position, args.Monitor)
	if err != nil {
		return nil, ResolvePositionOutput{}, err
	}
	return nil, ResolvePositionOutput{Monitor: mon.Name, Rect: toRect(rect)}, nil
}

func (s *Server) handleLaunchTemplate(ctx context.Context, _ *mcpsdk.CallToolRequest, args LaunchTemplateInput) (*mcpsdk.CallToolResult, LaunchTemplateOutput, error) {
	if args.Name == "" {
		return nil, LaunchTemplateOutput{}, fmt.Errorf("name is required")
	}
	res, err := s.launcher.Launch(ctx, args.Name)
	if err != nil {
		return nil, LaunchTemplateOutput{}, err
	}

	report := res.Report
	out := LaunchTemplateOutput{
		RunID:      report.RunID,
		Template:   res.Template.Name,
		Positioned: report.Positioned(),
		Failed:     report.Failed(),
		DurationMS: report.Duration().Milliseconds(),
	}
	for _, j := range report.Results() {
		out.Jobs = append(out.Jobs, jobInfo(j))
	}
	s.logger.Info("mcp launch", "template", args.Name, "run", report.RunID,
		"positioned", out.Positioned, "failed", out.Failed)
	return nil, out, nil
}

func jobInfo(j launcher.Job) JobInfo {
	info := JobInfo{
		Index:    j.Index + 1,
		Kind:     string(j.Spec.Kind),
		Title:    j.Spec.Title,
		Command:  j.Spec.Command,
		Monitor:  j.Spec.Monitor,
		Position: j.Spec.Position,
		State:    j.State.String(),
	}
	if j.Rect.Width > 0 {
		r := toRect(j.Rect)
		info.Rect = &r
	}
	if j.Window != 0 {
		info.Window = fmt.Sprintf("0x%x", uint32(j.Window))
	}
	if j.Err != nil {
		info.Error = j.Err.Error()
	}
	return info
}

func toRect(r platform.Rect) Rect {
	return Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}
