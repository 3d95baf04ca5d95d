// Package registry snapshots the current window set, grouped by
// normalized application class. A snapshot is immutable for the
// lifetime of one dispatch invocation; a changed window set requires a
// fresh invocation.
package registry

import (
	"strings"

	"winleap/internal/wm"
	"winleap/pkg/logger"
)

// Snapshot holds the discovered windows in enumeration order plus the
// per-class grouping derived from it. Discovery order is the sole
// tiebreak for instance numbering.
type Snapshot struct {
	windows []wm.Window
	groups  map[string][]wm.Window
	classes []string // normalized classes in first-seen order
}

// Normalize maps a raw application class to the identity used for
// grouping and matching: lowercased, with reverse-DNS style app IDs
// (org.kde.dolphin) reduced to their final segment.
func Normalize(class string) string {
	class = strings.ToLower(class)
	if strings.Count(class, ".") >= 2 {
		class = class[strings.LastIndex(class, ".")+1:]
	}
	return class
}

// New builds a snapshot from an already-enumerated window list,
// preserving its order. Windows without a class are skipped.
func New(windows []wm.Window) *Snapshot {
	s := &Snapshot{groups: make(map[string][]wm.Window)}
	for _, w := range windows {
		if w.Class == "" {
			continue
		}
		class := Normalize(w.Class)
		if class == "" {
			continue
		}
		if _, seen := s.groups[class]; !seen {
			s.classes = append(s.classes, class)
		}
		s.groups[class] = append(s.groups[class], w)
		s.windows = append(s.windows, w)
	}
	return s
}

// Discover enumerates the directory backend and builds a snapshot.
func Discover(dir wm.Directory, log *logger.Logger) (*Snapshot, error) {
	windows, err := dir.Windows()
	if err != nil {
		return nil, err
	}

	snap := New(windows)
	for _, w := range snap.windows {
		log.Debug("Discovered window",
			"id", w.ID,
			"class", w.Class,
			"desktop", w.Desktop,
			"title", w.Title)
	}
	log.Debug("Window discovery complete",
		"windows", len(snap.windows),
		"groups", len(snap.classes))
	return snap, nil
}

// Windows returns all snapshot windows in discovery order.
func (s *Snapshot) Windows() []wm.Window {
	return s.windows
}

// Len returns the number of discovered windows.
func (s *Snapshot) Len() int {
	return len(s.windows)
}

// Classes returns the normalized application classes in first-seen order.
func (s *Snapshot) Classes() []string {
	return s.classes
}

// Instances returns the windows of one application class in discovery
// order. The class argument may be raw or normalized.
func (s *Snapshot) Instances(class string) []wm.Window {
	return s.groups[Normalize(class)]
}
