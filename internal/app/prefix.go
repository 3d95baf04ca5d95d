package app

import (
	"fmt"

	"winleap/internal/activate"
	"winleap/internal/input"
	"winleap/internal/match"
	"winleap/internal/prefix"
	"winleap/internal/registry"
	"winleap/internal/wm"
	"winleap/pkg/notify"
)

// RunPrefix is the interactive shortest-unique-prefix mode: grab the
// keyboard, snapshot the window set, assign prefixes and narrow the
// typed buffer until one window remains.
func (a *App) RunPrefix() error {
	kb, err := input.NewKeyboard(a.log)
	if err != nil {
		return err
	}
	defer kb.Close()

	// The grab comes before discovery so no keystroke typed right
	// after the launching hotkey is lost to another listener.
	if err := kb.Grab(); err != nil {
		a.log.Error("Keyboard grab failed", err)
		return err
	}

	dir, err := wm.NewDirectory(a.log)
	if err != nil {
		return err
	}
	defer dir.Close()

	snap, err := registry.Discover(dir, a.log)
	if err != nil {
		return err
	}
	if a.opts.CurrentWorkspace {
		scoped, err := a.scopeFilter(dir, snap.Windows())
		if err != nil {
			return err
		}
		snap = registry.New(scoped)
	}
	if snap.Len() == 0 {
		a.notifier.Show("No windows to dispatch to", notify.Error)
		return fmt.Errorf("%w: no addressable windows", ErrNotFound)
	}

	index := prefix.Build(snap, a.log)
	matcher := match.New(index)
	a.log.Debug("Waiting for input", "entries", index.Len())

	for {
		key, err := kb.Next()
		if err != nil {
			return err
		}

		switch key.Special {
		case input.SpecialEscape:
			matcher.Cancel()
			a.log.Debug("Matching cancelled")
			return input.ErrCancelled

		case input.SpecialBackspace:
			state := matcher.Backspace()
			a.log.Debug("Backspace",
				"buffer", matcher.Buffer(),
				"state", state.String())

		case input.SpecialEnter:
			if matcher.Confirm() == match.Resolved {
				return a.activateTarget(dir, matcher)
			}

		default:
			state := matcher.Append(key.Rune)
			a.log.Debug("Key",
				"key", string(key.Rune),
				"buffer", matcher.Buffer(),
				"candidates", len(matcher.Candidates()),
				"state", state.String())
			if state == match.Resolved {
				return a.activateTarget(dir, matcher)
			}
		}
	}
}

// activateTarget runs the activation sequence for the matcher's
// resolved entry. The keyboard stays grabbed until the invocation
// winds down; the sequencer's direct-focus fallback covers window
// managers that drop requests arriving around the release.
func (a *App) activateTarget(dir wm.Directory, matcher *match.Matcher) error {
	target, ok := matcher.Target()
	if !ok {
		return fmt.Errorf("matcher finished without a target")
	}
	a.log.Debug("Unique match", "sequence", target.Sequence, "id", target.Window.ID)
	return activate.NewSequencer(dir, a.log).Activate(target.Window)
}
