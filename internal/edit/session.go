// Package edit tracks the single inline edit a presentation layer may have open.
//
// A Session is either Viewing (no task) or Editing exactly one task. The
// buffer only exists while Editing: Start, Commit and Cancel all discard
// whatever was typed before, so an abandoned edit never leaks into the
// next one.
package edit

import "strings"

type State int

const (
	Viewing State = iota
	Editing
)

func (s State) String() string {
	if s == Editing {
		return "editing"
	}
	return "viewing"
}

type Session struct {
	id     string
	buffer string
	state  State
}

// Start begins editing id with its current text, abandoning any edit in progress.
func (s *Session) Start(id, text string) {
	s.Cancel()
	s.id = id
	s.buffer = text
	s.state = Editing
}

func (s *Session) Active() bool { return s.state == Editing }

func (s *Session) State() State { return s.state }

// EditingID is empty while Viewing.
func (s *Session) EditingID() string { return s.id }

func (s *Session) Buffer() string { return s.buffer }

// SetBuffer is ignored while Viewing.
func (s *Session) SetBuffer(text string) {
	if s.state == Editing {
		s.buffer = text
	}
}

// Commit ends the edit. ok is false when nothing should be written: the
// session was not editing or the buffer is blank.
func (s *Session) Commit() (id, text string, ok bool) {
	if s.state != Editing {
		return "", "", false
	}
	id, text = s.id, strings.TrimSpace(s.buffer)
	s.Cancel()
	if text == "" {
		return id, "", false
	}
	return id, text, true
}

// Cancel ends the edit and drops the buffer.
func (s *Session) Cancel() {
	s.id = ""
	s.buffer = ""
	s.state = Viewing
}
