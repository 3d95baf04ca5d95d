package app

import (
	"fmt"

	"winleap/internal/activate"
	"winleap/internal/input"
	"winleap/internal/registry"
	"winleap/internal/resolve"
	"winleap/internal/wm"
	"winleap/pkg/notify"
)

// RunMark is the mark-direct mode: look the mark up in the configured
// table, collect that application's windows in scope and activate one,
// disambiguating multiple instances by explicit selector keys or, with
// Cycle set, by cycling from the focused window.
func (a *App) RunMark(mark int) error {
	class, ok := a.cfg.MarkClass(mark)
	if !ok {
		a.notifier.Show(fmt.Sprintf("No application mapped to mark %d", mark), notify.Error)
		return fmt.Errorf("%w: no mapping for mark %d", ErrNotFound, mark)
	}
	a.log.Debug("Mark resolved", "mark", mark, "class", class)

	dir, err := wm.NewDirectory(a.log)
	if err != nil {
		return err
	}
	defer dir.Close()

	snap, err := registry.Discover(dir, a.log)
	if err != nil {
		return err
	}

	candidates, err := a.scopeFilter(dir, snap.Instances(class))
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		scope := ""
		if a.opts.CurrentWorkspace {
			scope = " on the current workspace"
		}
		a.notifier.Show(fmt.Sprintf("No %s windows%s", class, scope), notify.Error)
		return fmt.Errorf("%w: no windows for %q%s", ErrNotFound, class, scope)
	}
	for i, w := range candidates {
		a.log.Debug("Candidate instance",
			"instance", i+1,
			"id", w.ID,
			"desktop", w.Desktop,
			"title", w.Title)
	}

	target, err := a.resolveInstance(dir, candidates)
	if err != nil {
		return err
	}
	return activate.NewSequencer(dir, a.log).Activate(target)
}

// resolveInstance disambiguates multiple candidate windows. A single
// candidate activates directly, without grabbing the keyboard.
func (a *App) resolveInstance(dir wm.Directory, candidates []wm.Window) (wm.Window, error) {
	if len(candidates) == 1 {
		a.log.Debug("Single instance, immediate activation")
		return candidates[0], nil
	}

	if a.opts.Cycle {
		focused, err := dir.ActiveWindow()
		if err != nil {
			a.log.Warn("Cannot read focused window, using first instance", "error", err)
			focused = ""
		}
		target := resolve.CycleNext(candidates, focused)
		a.log.Debug("Cycle-next resolved", "focused", focused, "target", target.ID)
		return target, nil
	}

	// A selector shortfall fails before the keyboard is ever grabbed.
	keys := a.cfg.InstanceKeys()
	if len(candidates) > len(keys) {
		exhausted := &resolve.SelectorExhaustedError{
			Candidates: len(candidates),
			Keys:       len(keys),
		}
		a.notifier.Show(fmt.Sprintf(
			"Too many windows: %d instances but only %d selector keys",
			exhausted.Candidates, exhausted.Keys), notify.Error)
		return wm.Window{}, exhausted
	}

	a.log.Debug("Multiple instances, entering selection", "count", len(candidates))
	kb, err := input.NewKeyboard(a.log)
	if err != nil {
		return wm.Window{}, err
	}
	defer kb.Close()
	if err := kb.Grab(); err != nil {
		a.log.Error("Keyboard grab failed", err)
		return wm.Window{}, err
	}

	selector := resolve.NewSelector(keys, a.log)
	target, err := selector.Select(candidates, kb)
	if err != nil {
		return wm.Window{}, err
	}
	return target, nil
}
