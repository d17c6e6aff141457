package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// FrameGeometry returns the on-screen rectangle of a client including the
// window manager frame. Client-side shadows advertised through
// _GTK_FRAME_EXTENTS are excluded so the border hugs the visible window.
func (c *Connection) FrameGeometry(windowID xproto.Window) (x, y, width, height int, err error) {
	win := xwindow.New(c.XUtil, windowID)
	geom, err := win.DecorGeometry()
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("failed to get frame geometry: %w", err)
	}
	x, y, width, height = geom.X(), geom.Y(), geom.Width(), geom.Height()

	left, right, top, bottom := c.GetFrameExtents(windowID)
	x += left
	y += top
	width -= left + right
	height -= top + bottom
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return x, y, width, height, nil
}

// GetFrameExtents returns the client-side decoration sizes (if available)
func (c *Connection) GetFrameExtents(windowID xproto.Window) (left, right, top, bottom int) {
	reply, err := xprop.GetProperty(c.XUtil, windowID, "_GTK_FRAME_EXTENTS")
	if err != nil {
		return 0, 0, 0, 0
	}
	nums, err := xprop.PropValNums(reply, nil)
	if err != nil || len(nums) != 4 {
		return 0, 0, 0, 0
	}
	return int(nums[0]), int(nums[1]), int(nums[2]), int(nums[3])
}

// IsNormalWindow checks if a window is a normal application window
func (c *Connection) IsNormalWindow(windowID xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		// If we can't determine type, assume it's normal
		return true
	}

	for _, t := range types {
		switch t {
		case "_NET_WM_WINDOW_TYPE_NORMAL", "_NET_WM_WINDOW_TYPE_DIALOG":
			return true
		case "_NET_WM_WINDOW_TYPE_DESKTOP",
			"_NET_WM_WINDOW_TYPE_DOCK",
			"_NET_WM_WINDOW_TYPE_SPLASH",
			"_NET_WM_WINDOW_TYPE_NOTIFICATION",
			"_NET_WM_WINDOW_TYPE_TOOLTIP",
			"_NET_WM_WINDOW_TYPE_MENU",
			"_NET_WM_WINDOW_TYPE_DROPDOWN_MENU",
			"_NET_WM_WINDOW_TYPE_POPUP_MENU":
			return false
		}
	}

	// If no specific type is set, assume it's normal
	return len(types) == 0
}

// IsMinimized reports whether the window carries _NET_WM_STATE_HIDDEN.
func (c *Connection) IsMinimized(windowID xproto.Window) bool {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return false
	}
	for _, state := range states {
		if state == "_NET_WM_STATE_HIDDEN" {
			return true
		}
	}
	return false
}

// IsViewable reports whether the window and all its ancestors are mapped.
func (c *Connection) IsViewable(windowID xproto.Window) bool {
	attrs, err := xproto.GetWindowAttributes(c.XUtil.Conn(), windowID).Reply()
	if err != nil {
		return false
	}
	return attrs.MapState == xproto.MapStateViewable
}

func (c *Connection) GetActiveWindow() (xproto.Window, error) {
	return ewmh.ActiveWindowGet(c.XUtil)
}

// ClientList returns the windows managed by the window manager.
func (c *Connection) ClientList() ([]xproto.Window, error) {
	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return nil, fmt.Errorf("failed to get client list: %w", err)
	}
	return clients, nil
}

// TopLevel walks up from a client to the child of the root the window
// manager reparented it into. Unparented clients are their own top level.
func (c *Connection) TopLevel(windowID xproto.Window) (xproto.Window, error) {
	conn := c.XUtil.Conn()
	win := windowID
	for range 16 {
		tree, err := xproto.QueryTree(conn, win).Reply()
		if err != nil {
			return 0, fmt.Errorf("failed to query window tree: %w", err)
		}
		if tree.Parent == tree.Root || tree.Parent == 0 {
			return win, nil
		}
		win = tree.Parent
	}
	return win, nil
}
