package app

import (
	"errors"

	"winleap/internal/input"
	"winleap/internal/wm"
)

// ErrNotFound covers a mark with no mapping and an application with no
// matching windows in the requested scope.
var ErrNotFound = errors.New("not found")

// Exit codes of the dispatch surface.
const (
	ExitActivated   = 0 // a window was activated
	ExitUser        = 1 // cancelled, not found, or input/config validation failure
	ExitEnvironment = 2 // windowing system unreachable or grab unobtainable
)

// ExitCode maps an error from a dispatch run onto the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitActivated
	case errors.Is(err, wm.ErrEnvironment), errors.Is(err, input.ErrGrabFailed):
		return ExitEnvironment
	default:
		return ExitUser
	}
}

// Silent reports whether an error should be suppressed on stderr.
// A user cancel ends the session quietly.
func Silent(err error) bool {
	return errors.Is(err, input.ErrCancelled)
}
