package mcp

// BorderStatusInput is the input for the border_status tool.
type BorderStatusInput struct{}

// BorderStatusOutput is the output for the border_status tool.
type BorderStatusOutput struct {
	Running       bool     `json:"running"`
	Enabled       bool     `json:"enabled"`
	Borders       int      `json:"borders"`
	Visible       int      `json:"visible"`
	Rules         int      `json:"rules"`
	DPI           float64  `json:"dpi"`
	LogLevel      string   `json:"log_level"`
	ConfigPath    string   `json:"config_path"`
	UptimeSeconds int64    `json:"uptime_seconds"`
	Warnings      []string `json:"warnings,omitempty"`
	Error         string   `json:"error,omitempty"`
}

// ListBordersInput is the input for the list_borders tool.
type ListBordersInput struct {
	VisibleOnly bool `json:"visible_only,omitempty" jsonschema:"When true, only borders currently shown are returned"`
}

// BorderInfo describes one border.
type BorderInfo struct {
	Window          string  `json:"window"`
	State           string  `json:"state"`
	Active          bool    `json:"active"`
	Minimized       bool    `json:"minimized"`
	Initializing    bool    `json:"initializing"`
	X               int     `json:"x"`
	Y               int     `json:"y"`
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	Opacity         float64 `json:"opacity"`
	Paint           string  `json:"paint"`
	SurfaceFailures int     `json:"surface_failures"`
}

// ListBordersOutput is the output for the list_borders tool.
type ListBordersOutput struct {
	Borders []BorderInfo `json:"borders"`
}

// ReloadConfigInput is the input for the reload_config tool.
type ReloadConfigInput struct{}

// ReloadConfigOutput is the output for the reload_config tool.
type ReloadConfigOutput struct {
	Kept      int      `json:"kept"`
	Created   int      `json:"created"`
	Destroyed int      `json:"destroyed"`
	Warnings  []string `json:"warnings,omitempty"`
}

// ResolveColorInput is the input for the resolve_color tool.
type ResolveColorInput struct {
	Color    string `json:"color" jsonschema:"Color setting as written in the config: a token such as accent, #89b4fa or rgb(137,180,250), or a flow mapping such as {colors: [accent, \"#000\"], direction: 45deg}"`
	Inactive bool   `json:"inactive,omitempty" jsonschema:"Resolve for an inactive window (affects the accent color)"`
}

// StopInfo is one gradient stop.
type StopInfo struct {
	Position float64 `json:"position"`
	Color    string  `json:"color"`
}

// ResolveColorOutput is the output for the resolve_color tool.
type ResolveColorOutput struct {
	Kind        string     `json:"kind"`
	Description string     `json:"description"`
	Color       string     `json:"color,omitempty"`
	Stops       []StopInfo `json:"stops,omitempty"`
	Start       []float64  `json:"start,omitempty"`
	End         []float64  `json:"end,omitempty"`
}
