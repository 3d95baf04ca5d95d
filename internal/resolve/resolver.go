// Package resolve disambiguates multiple windows that share one
// application identity.
package resolve

import (
	"fmt"
	"unicode"

	"winleap/internal/input"
	"winleap/internal/wm"
	"winleap/pkg/logger"
)

// SelectorExhaustedError reports more candidate instances than
// configured selector keys. No partial pairing is attempted.
type SelectorExhaustedError struct {
	Candidates int
	Keys       int
}

func (e *SelectorExhaustedError) Error() string {
	return fmt.Sprintf("%d windows exceed the %d configured selector keys", e.Candidates, e.Keys)
}

// CycleNext resolves to the candidate after the currently focused one
// in discovery order, wrapping past the end. When focus is elsewhere,
// the first candidate wins. Candidates must be non-empty.
func CycleNext(candidates []wm.Window, focusedID string) wm.Window {
	for i, w := range candidates {
		if w.ID == focusedID {
			return candidates[(i+1)%len(candidates)]
		}
	}
	return candidates[0]
}

// Selector implements explicit instance selection: candidates are
// paired 1:1 with the configured selector keys and the session blocks
// until a paired key or the cancel key arrives.
type Selector struct {
	keys []rune
	log  *logger.Logger
}

func NewSelector(keys []rune, log *logger.Logger) *Selector {
	return &Selector{keys: keys, log: log}
}

// Select blocks on the key source until one candidate is chosen.
// Unassigned keys are ignored and the wait continues. Escape returns
// input.ErrCancelled; too many candidates fail up front with
// *SelectorExhaustedError.
func (s *Selector) Select(candidates []wm.Window, events input.Source) (wm.Window, error) {
	if len(candidates) > len(s.keys) {
		return wm.Window{}, &SelectorExhaustedError{
			Candidates: len(candidates),
			Keys:       len(s.keys),
		}
	}

	for i, w := range candidates {
		s.log.Debug("Selector assigned",
			"key", string(s.keys[i]),
			"id", w.ID,
			"desktop", w.Desktop,
			"class", w.Class,
			"title", w.Title)
	}

	for {
		key, err := events.Next()
		if err != nil {
			return wm.Window{}, err
		}
		if key.Special == input.SpecialEscape {
			s.log.Debug("Instance selection cancelled")
			return wm.Window{}, input.ErrCancelled
		}
		if key.Rune == 0 {
			continue
		}

		typed := unicode.ToLower(key.Rune)
		for i := range candidates {
			if typed == s.keys[i] {
				s.log.Debug("Selector chosen", "key", string(typed))
				return candidates[i], nil
			}
		}
		s.log.Debug("Ignored selector key", "key", string(typed))
	}
}
