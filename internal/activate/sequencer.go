// Package activate brings a resolved window to the foreground across
// asynchronous workspace switches.
package activate

import (
	"time"

	"winleap/internal/wm"
	"winleap/pkg/logger"
)

// settleDelay bounds the wait after a workspace switch request.
// Switches are processed asynchronously by the window manager; a focus
// request sent too early is silently dropped.
const settleDelay = 50 * time.Millisecond

// Sequencer executes the activation protocol against a directory
// backend. Every step is best-effort: an earlier failure never stops a
// later step, and the overall operation fails only when no step could
// reach the windowing system at all.
type Sequencer struct {
	dir wm.Directory
	log *logger.Logger
}

func NewSequencer(dir wm.Directory, log *logger.Logger) *Sequencer {
	return &Sequencer{dir: dir, log: log}
}

// Activate runs the activation sequence for one resolved window:
// workspace switch plus settle delay, the cooperative activate
// request, then the direct map/raise/focus fallback for window
// managers that ignore the request (common right after an exclusive
// input grab was released).
func (s *Sequencer) Activate(w wm.Window) error {
	s.log.Debug("Activating window",
		"id", w.ID,
		"class", w.Class,
		"desktop", w.Desktop,
		"title", w.Title)

	attempted, failed := 0, 0

	if w.Desktop >= 0 {
		attempted++
		if err := s.dir.SwitchDesktop(w.Desktop); err != nil {
			failed++
			s.log.Warn("Workspace switch failed", "desktop", w.Desktop, "error", err)
		} else {
			s.log.Debug("Workspace switch requested", "desktop", w.Desktop)
		}
		time.Sleep(settleDelay)
	}

	attempted++
	var lastErr error
	if err := s.dir.Activate(w); err != nil {
		failed++
		lastErr = err
		s.log.Warn("Cooperative activate failed", "id", w.ID, "error", err)
	}

	attempted++
	if err := s.dir.RaiseAndFocus(w); err != nil {
		failed++
		lastErr = err
		s.log.Warn("Raise/focus fallback failed", "id", w.ID, "error", err)
	}

	if failed == attempted {
		return lastErr
	}
	s.log.Debug("Window activated", "id", w.ID)
	return nil
}
