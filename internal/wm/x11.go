package wm

import (
	"fmt"
	"strconv"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"

	"winleap/pkg/logger"
)

// X11 is the native directory backend, speaking EWMH/ICCCM over its
// own X connection.
type X11 struct {
	xu   *xgbutil.XUtil
	root xproto.Window
	log  *logger.Logger
}

func NewX11(log *logger.Logger) (*X11, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("%w: cannot open display: %v", ErrEnvironment, err)
	}
	log.Debug("X11 connection established")
	return &X11{xu: xu, root: xu.RootWin(), log: log}, nil
}

func (x *X11) Name() string {
	return "X11"
}

func (x *X11) Windows() ([]Window, error) {
	clients, err := ewmh.ClientListGet(x.xu)
	if err != nil {
		return nil, fmt.Errorf("%w: _NET_CLIENT_LIST: %v", ErrEnvironment, err)
	}

	windows := make([]Window, 0, len(clients))
	for _, id := range clients {
		class, ok := x.windowClass(id)
		if !ok {
			// Windows without WM_CLASS cannot be addressed; skip them.
			continue
		}
		windows = append(windows, Window{
			ID:      FormatWindowID(uint32(id)),
			Class:   class,
			Title:   x.windowTitle(id),
			Desktop: x.windowDesktop(id),
		})
	}
	return windows, nil
}

// windowClass reads WM_CLASS and returns the class component,
// falling back to the instance component.
func (x *X11) windowClass(id xproto.Window) (string, bool) {
	reply, err := icccm.WmClassGet(x.xu, id)
	if err != nil || reply == nil {
		return "", false
	}
	class := reply.Class
	if class == "" {
		class = reply.Instance
	}
	return class, class != ""
}

// windowTitle prefers _NET_WM_NAME (UTF-8), then WM_NAME.
func (x *X11) windowTitle(id xproto.Window) string {
	if title, err := ewmh.WmNameGet(x.xu, id); err == nil && title != "" {
		return title
	}
	if title, err := icccm.WmNameGet(x.xu, id); err == nil && title != "" {
		return title
	}
	return "(untitled)"
}

func (x *X11) windowDesktop(id xproto.Window) int {
	desktop, err := ewmh.WmDesktopGet(x.xu, id)
	if err != nil {
		return -1
	}
	// 0xFFFFFFFF marks a sticky window, visible on every desktop.
	if desktop == 0xFFFFFFFF {
		return -1
	}
	return int(desktop)
}

func (x *X11) ActiveWindow() (string, error) {
	active, err := ewmh.ActiveWindowGet(x.xu)
	if err != nil {
		return "", fmt.Errorf("_NET_ACTIVE_WINDOW: %w", err)
	}
	return FormatWindowID(uint32(active)), nil
}

func (x *X11) CurrentDesktop() (int, error) {
	desktop, err := ewmh.CurrentDesktopGet(x.xu)
	if err != nil {
		return -1, fmt.Errorf("_NET_CURRENT_DESKTOP: %w", err)
	}
	return int(desktop), nil
}

func (x *X11) SwitchDesktop(desktop int) error {
	if err := ewmh.CurrentDesktopReq(x.xu, desktop); err != nil {
		return fmt.Errorf("desktop switch request: %w", err)
	}
	return nil
}

func (x *X11) Activate(w Window) error {
	id, err := ParseWindowID(w.ID)
	if err != nil {
		return err
	}
	// Sends _NET_ACTIVE_WINDOW with a pager source indication.
	if err := ewmh.ActiveWindowReq(x.xu, xproto.Window(id)); err != nil {
		return fmt.Errorf("activate request: %w", err)
	}
	return nil
}

func (x *X11) RaiseAndFocus(w Window) error {
	id, err := ParseWindowID(w.ID)
	if err != nil {
		return err
	}
	win := xproto.Window(id)
	conn := x.xu.Conn()

	var firstErr error
	if err := xproto.MapWindowChecked(conn, win).Check(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("map: %w", err)
	}
	err = xproto.ConfigureWindowChecked(conn, win,
		xproto.ConfigWindowStackMode, []uint32{xproto.StackModeAbove}).Check()
	if err != nil && firstErr == nil {
		firstErr = fmt.Errorf("raise: %w", err)
	}
	err = xproto.SetInputFocusChecked(conn,
		xproto.InputFocusPointerRoot, win, xproto.TimeCurrentTime).Check()
	if err != nil && firstErr == nil {
		firstErr = fmt.Errorf("focus: %w", err)
	}
	return firstErr
}

func (x *X11) Close() error {
	x.xu.Conn().Close()
	return nil
}

// FormatWindowID renders a window ID in the canonical form shared by
// both backends, so IDs from different sources compare equal.
func FormatWindowID(id uint32) string {
	return fmt.Sprintf("0x%08x", id)
}

// ParseWindowID accepts hex (0x-prefixed) and decimal window IDs.
func ParseWindowID(s string) (uint32, error) {
	id, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid window ID %q: %w", s, err)
	}
	return uint32(id), nil
}
