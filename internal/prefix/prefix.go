// Package prefix assigns every discovered window the shortest textual
// sequence that uniquely identifies it among the current window set.
package prefix

import (
	"strconv"
	"strings"

	"winleap/internal/registry"
	"winleap/internal/wm"
	"winleap/pkg/logger"
)

// Entry binds one typed sequence to its target window. Sequences are
// lowercase. Single-instance groups get the bare group prefix;
// multi-instance groups share the group prefix followed by a 1-based
// instance digit in discovery order.
type Entry struct {
	Sequence string
	Class    string // normalized application class
	Instance int    // 1-based position within the group
	Window   wm.Window
}

// Index is the complete prefix assignment for one snapshot.
//
// Known limitation: an instance-suffixed sequence (say "d1") can
// textually collide with another group's independently computed
// minimal prefix; the index does not re-check for this cross-collision
// and matching picks whichever entries happen to share the typed text.
type Index struct {
	entries []Entry
}

// Build computes the shortest-unique-prefix assignment for a snapshot.
// Group prefixes are the smallest L such that no other group's class
// shares the first L characters; a class that is entirely a prefix of
// another class keeps its full length.
func Build(snap *registry.Snapshot, log *logger.Logger) *Index {
	classes := snap.Classes()
	ix := &Index{}

	for _, class := range classes {
		length := groupPrefixLen(class, classes)
		group := snap.Instances(class)
		base := class[:length]

		if len(group) == 1 {
			ix.entries = append(ix.entries, Entry{
				Sequence: base,
				Class:    class,
				Instance: 1,
				Window:   group[0],
			})
			continue
		}
		for i, w := range group {
			ix.entries = append(ix.entries, Entry{
				Sequence: base + strconv.Itoa(i+1),
				Class:    class,
				Instance: i + 1,
				Window:   w,
			})
		}
	}

	for _, e := range ix.entries {
		log.Debug("Prefix assigned",
			"sequence", e.Sequence,
			"class", e.Class,
			"instance", e.Instance,
			"id", e.Window.ID)
	}
	return ix
}

// groupPrefixLen finds the smallest prefix length of class that no
// other class shares. Classes are already normalized lowercase, so the
// comparison is byte-wise.
func groupPrefixLen(class string, classes []string) int {
	for length := 1; length <= len(class); length++ {
		unique := true
		for _, other := range classes {
			if other == class {
				continue
			}
			if len(other) >= length && other[:length] == class[:length] {
				unique = false
				break
			}
		}
		if unique {
			return length
		}
	}
	return len(class)
}

// Entries returns all assignments in group discovery order.
func (ix *Index) Entries() []Entry {
	return ix.entries
}

// Len returns the number of assigned sequences.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Match returns the entries whose sequence starts with buffer,
// case-insensitively, in assignment order.
func (ix *Index) Match(buffer string) []Entry {
	buffer = strings.ToLower(buffer)
	var matches []Entry
	for _, e := range ix.entries {
		if strings.HasPrefix(e.Sequence, buffer) {
			matches = append(matches, e)
		}
	}
	return matches
}
