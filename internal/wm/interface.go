package wm

import "errors"

// ErrEnvironment marks failures talking to the windowing system itself
// (no display, broken connection, missing tools). Callers map it to the
// environment exit code.
var ErrEnvironment = errors.New("windowing environment unavailable")

// Window is one managed top-level window as reported by a directory
// backend. ID is opaque but stable for the lifetime of one invocation
// and comparable across calls to the same backend.
type Window struct {
	ID      string
	Class   string // raw WM_CLASS class component
	Title   string // display only, never matched against
	Desktop int    // workspace number, -1 when unknown
}

// Directory is the window-directory capability the dispatch core
// consumes: enumerate windows, read focus/workspace state, and issue
// activation primitives. Backends must preserve the windowing system's
// enumeration order in Windows.
type Directory interface {
	// Name returns the backend name for logging.
	Name() string
	// Windows enumerates managed windows in discovery order. Windows
	// without a resolvable class are omitted, never reported as errors.
	Windows() ([]Window, error)
	// ActiveWindow returns the ID of the currently focused window.
	ActiveWindow() (string, error)
	// CurrentDesktop returns the current workspace number.
	CurrentDesktop() (int, error)
	// SwitchDesktop requests a workspace switch. The request is
	// asynchronous; callers wanting the switch settled must wait.
	SwitchDesktop(desktop int) error
	// Activate sends the cooperative activate-window request.
	Activate(w Window) error
	// RaiseAndFocus maps, raises and focuses the window directly,
	// bypassing window managers that ignore Activate.
	RaiseAndFocus(w Window) error
	// Close releases the backend's resources.
	Close() error
}
