// Package match implements the modal keystroke matcher that narrows a
// typed buffer against a prefix index until exactly one window remains.
package match

import (
	"unicode"

	"winleap/internal/prefix"
)

// State is the matcher session state.
type State int

const (
	// Idle: empty buffer, nothing typed yet.
	Idle State = iota
	// Accumulating: non-empty buffer matching two or more candidates.
	Accumulating
	// Resolved: terminal, exactly one candidate selected.
	Resolved
	// NoMatch: the buffer matches zero candidates. The buffer is
	// retained; backspace is the way out.
	NoMatch
	// Cancelled: terminal, session abandoned by the user.
	Cancelled
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Accumulating:
		return "accumulating"
	case Resolved:
		return "resolved"
	case NoMatch:
		return "no-match"
	case Cancelled:
		return "cancelled"
	}
	return "unknown"
}

// Matcher narrows the prefix index's candidate set one keystroke at a
// time. The candidate set is recomputed from the buffer on every
// mutation, never cached across them.
type Matcher struct {
	index  *prefix.Index
	buffer []rune
	state  State
	target prefix.Entry
}

func New(index *prefix.Index) *Matcher {
	return &Matcher{index: index, state: Idle}
}

// State returns the current session state.
func (m *Matcher) State() State {
	return m.state
}

// Buffer returns the accumulated input.
func (m *Matcher) Buffer() string {
	return string(m.buffer)
}

// Candidates returns the entries matching the current buffer.
func (m *Matcher) Candidates() []prefix.Entry {
	return m.index.Match(string(m.buffer))
}

// Target returns the resolved entry once the session reached Resolved.
func (m *Matcher) Target() (prefix.Entry, bool) {
	return m.target, m.state == Resolved
}

// Append feeds one typed character into the session. Candidate sets
// only ever narrow as characters are appended. With a single entry in
// the whole index, any first key resolves immediately.
func (m *Matcher) Append(r rune) State {
	if m.terminal() {
		return m.state
	}

	if m.state == Idle && m.index.Len() == 1 {
		m.target = m.index.Entries()[0]
		m.state = Resolved
		return m.state
	}

	m.buffer = append(m.buffer, unicode.ToLower(r))
	candidates := m.Candidates()
	switch len(candidates) {
	case 0:
		m.state = NoMatch
	case 1:
		m.target = candidates[0]
		m.state = Resolved
	default:
		m.state = Accumulating
	}
	return m.state
}

// Backspace removes the last buffered character; a no-op on an empty
// buffer. Removal never resolves a session: a buffer narrowed back to
// one candidate waits for Confirm or a further keystroke.
func (m *Matcher) Backspace() State {
	if m.terminal() {
		return m.state
	}
	if len(m.buffer) > 0 {
		m.buffer = m.buffer[:len(m.buffer)-1]
	}
	if len(m.buffer) == 0 {
		m.state = Idle
		return m.state
	}
	if len(m.Candidates()) == 0 {
		m.state = NoMatch
	} else {
		m.state = Accumulating
	}
	return m.state
}

// Confirm resolves a non-empty buffer that matches exactly one
// candidate; anything else is a no-op.
func (m *Matcher) Confirm() State {
	if m.terminal() || len(m.buffer) == 0 {
		return m.state
	}
	if candidates := m.Candidates(); len(candidates) == 1 {
		m.target = candidates[0]
		m.state = Resolved
	}
	return m.state
}

// Cancel unconditionally ends the session with no selection.
func (m *Matcher) Cancel() State {
	m.state = Cancelled
	return m.state
}

func (m *Matcher) terminal() bool {
	return m.state == Resolved || m.state == Cancelled
}
