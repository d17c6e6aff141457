package border

import "fmt"

// State is the lifecycle state of a border actor.
type State int

const (
	StateCreated State = iota
	StateVisible
	StateHidden
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateVisible:
		return "visible"
	case StateHidden:
		return "hidden"
	case StateDestroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	switch string(text) {
	case "created":
		*s = StateCreated
	case "visible":
		*s = StateVisible
	case "hidden":
		*s = StateHidden
	case "destroyed":
		*s = StateDestroyed
	default:
		return fmt.Errorf("unknown border state %q", text)
	}
	return nil
}

// Snapshot is a read-only view of an actor published after every batch of
// commands and at teardown.
type Snapshot struct {
	ID              WindowID `json:"id"`
	State           State    `json:"state"`
	Active          bool     `json:"active"`
	Minimized       bool     `json:"minimized"`
	Initializing    bool     `json:"initializing"`
	Frame           Rect     `json:"frame"`
	Opacity         float32  `json:"opacity"`
	Paint           string   `json:"paint"`
	SurfaceFailures int      `json:"surface_failures"`
}
