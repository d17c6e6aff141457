package border

// CommandKind enumerates the messages a border actor accepts.
type CommandKind int

const (
	CmdShow CommandKind = iota
	CmdHide
	CmdLocationChange
	CmdReorder
	CmdFocusChanged
	CmdMinimizeStart
	CmdMinimizeEnd
	CmdReload
	CmdDestroy
)

var commandNames = [...]string{
	CmdShow:           "show",
	CmdHide:           "hide",
	CmdLocationChange: "location_change",
	CmdReorder:        "reorder",
	CmdFocusChanged:   "focus_changed",
	CmdMinimizeStart:  "minimize_start",
	CmdMinimizeEnd:    "minimize_end",
	CmdReload:         "reload",
	CmdDestroy:        "destroy",
}

func (k CommandKind) String() string {
	if int(k) < len(commandNames) {
		return commandNames[k]
	}
	return "unknown"
}

// Command is one mailbox message. Only the field matching Kind is used.
type Command struct {
	Kind     CommandKind
	Frame    Rect
	Active   bool
	Settings *Settings
}

func Show() Command                     { return Command{Kind: CmdShow} }
func Hide() Command                     { return Command{Kind: CmdHide} }
func Reorder() Command                  { return Command{Kind: CmdReorder} }
func MinimizeStart() Command            { return Command{Kind: CmdMinimizeStart} }
func MinimizeEnd() Command              { return Command{Kind: CmdMinimizeEnd} }
func Destroy() Command                  { return Command{Kind: CmdDestroy} }
func LocationChange(frame Rect) Command { return Command{Kind: CmdLocationChange, Frame: frame} }
func FocusChanged(active bool) Command  { return Command{Kind: CmdFocusChanged, Active: active} }

// Reload replaces the border's settings in place.
func Reload(s Settings) Command {
	return Command{Kind: CmdReload, Settings: &s}
}
