package mcp

// ListTemplatesInput is the input for the list_templates tool.
type ListTemplatesInput struct{}

// TemplateInfo describes one template file.
type TemplateInfo struct {
	Name        string `json:"name"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Windows     int    `json:"windows"`
	Shortcut    bool   `json:"shortcut"`
	Error       string `json:"error,omitempty"`
}

// ListTemplatesOutput is the output for the list_templates tool.
type ListTemplatesOutput struct {
	Directory string         `json:"directory"`
	Templates []TemplateInfo `json:"templates"`
}

// ListMonitorsInput is the input for the list_monitors tool.
type ListMonitorsInput struct{}

// MonitorInfo describes a connected monitor.
type MonitorInfo struct {
	Name    string `json:"name"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Primary bool   `json:"primary"`
}

// ListMonitorsOutput is the output for the list_monitors tool.
type ListMonitorsOutput struct {
	Monitors []MonitorInfo `json:"monitors"`
}

// ResolvePositionInput is the input for the resolve_position tool.
type ResolvePositionInput struct {
	Position string `json:"position" jsonschema:"required,Position string: a shortcut (left, right-third, ...) or anchor plus x/y/w/h tokens (e.g. 'c w:800 h:600')"`
	Monitor  string `json:"monitor,omitempty" jsonschema:"Monitor name or 'primary' (default: primary)"`
}

// Rect is an absolute screen rectangle.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ResolvePositionOutput is the output for the resolve_position tool.
type ResolvePositionOutput struct {
	Monitor string `json:"monitor"`
	Rect    Rect   `json:"rect"`
}

// LaunchTemplateInput is the input for the launch_template tool.
type LaunchTemplateInput struct {
	Name string `json:"name" jsonschema:"required,Template name as listed by list_templates"`
}

// JobInfo is the outcome of one window.
type JobInfo struct {
	Index    int    `json:"index"`
	Kind     string `json:"kind"`
	Title    string `json:"title,omitempty"`
	Command  string `json:"command,omitempty"`
	Monitor  string `json:"monitor"`
	Position string `json:"position"`
	State    string `json:"state"`
	Window   string `json:"window,omitempty"`
	Rect     *Rect  `json:"rect,omitempty"`
	Error    string `json:"error,omitempty"`
}

// LaunchTemplateOutput is the output for the launch_template tool.
type LaunchTemplateOutput struct {
	RunID      string    `json:"run_id"`
	Template   string    `json:"template"`
	Positioned int       `json:"positioned"`
	Failed     int       `json:"failed"`
	DurationMS int64     `json:"duration_ms"`
	Jobs       []JobInfo `json:"jobs"`
}
