package hotkeys

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"

	"github.com/1broseidon/winborder/internal/platform"
	"github.com/1broseidon/winborder/internal/x11"
)

// x11Accessor is an optional interface for window systems that expose X11 internals.
type x11Accessor interface {
	Connection() *x11.Connection
}

// Handler manages global keyboard shortcuts
type Handler struct {
	xu     *xgbutil.XUtil
	root   xproto.Window
	logger *slog.Logger
}

var ignoreModsOnce sync.Once

// ErrUnsupported is returned when the window system cannot grab keys.
var ErrUnsupported = errors.New("global hotkeys are not supported by this window system")

// NewHandler creates a new hotkey handler.
func NewHandler(ws platform.WindowSystem, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{logger: logger}
	if accessor, ok := ws.(x11Accessor); ok && accessor.Connection() != nil {
		h.xu = accessor.Connection().XUtil
		h.root = accessor.Connection().Root
		ignoreModsOnce.Do(func() {
			configureIgnoreMods(h.xu)
		})
	}
	return h
}

// Bind registers an optional hotkey. Empty sequences are skipped and
// failures are logged rather than returned.
func (h *Handler) Bind(name, keySequence string, callback func()) {
	if keySequence == "" {
		return
	}
	if err := h.RegisterFunc(keySequence, callback); err != nil {
		h.logger.Warn("failed to register hotkey", "action", name, "keys", keySequence, "error", err)
		return
	}
	h.logger.Info("hotkey registered", "action", name, "keys", keySequence)
}

// RegisterFunc registers an arbitrary hotkey callback.
func (h *Handler) RegisterFunc(keySequence string, callback func()) error {
	if h.xu == nil {
		return ErrUnsupported
	}
	return keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		callback()
	}).Connect(h.xu, h.root, keySequence, true)
}

func configureIgnoreMods(xu *xgbutil.XUtil) {
	// Always ignore CapsLock.
	caps := uint16(xproto.ModMaskLock)

	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")

	unique := make(map[uint16]struct{})
	add := func(mask uint16) {
		unique[mask] = struct{}{}
	}

	add(0)
	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		add(mask)
	}

	ignore := make([]uint16, 0, len(unique))
	for mask := range unique {
		ignore = append(ignore, mask)
	}

	xevent.IgnoreMods = ignore
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
