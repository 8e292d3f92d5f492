// Package editor implements linear undo/redo over a document's editable
// text: a single active branch where a new commit discards any redo future.
package editor

// Session tracks the undo/redo history of one document's corrected content.
//
// All operations are total: out-of-range undo/redo and identical-content
// commits are defined as no-ops, never errors. UI code may therefore call
// them without boundary checks (disabled-button races are harmless).
//
// Session is not safe for concurrent use; each open review controller owns
// exactly one and serializes access to it.
type Session struct {
	history   []string
	cursor    int
	lastSaved string
	dirty     bool
}

// NewSession creates a session whose initial snapshot is the given content.
// The initial snapshot can never be undone past.
func NewSession(content string) *Session {
	return &Session{
		history:   []string{content},
		cursor:    0,
		lastSaved: content,
		dirty:     false,
	}
}

// Commit records newContent as the next snapshot. Committing content equal
// to the current snapshot is a no-op, keeping history free of duplicate
// states. Otherwise any redo tail beyond the cursor is discarded first:
// redoing past the point of a new edit is never possible.
func (s *Session) Commit(newContent string) {
	if newContent == s.history[s.cursor] {
		return
	}
	s.history = append(s.history[:s.cursor+1], newContent)
	s.cursor = len(s.history) - 1
	s.dirty = true
}

// Undo moves the cursor one snapshot back. At the initial snapshot it is
// a no-op.
func (s *Session) Undo() {
	if s.cursor == 0 {
		return
	}
	s.cursor--
	s.dirty = s.history[s.cursor] != s.lastSaved
}

// Redo moves the cursor one snapshot forward. At the newest snapshot it is
// a no-op.
func (s *Session) Redo() {
	if s.cursor == len(s.history)-1 {
		return
	}
	s.cursor++
	s.dirty = s.history[s.cursor] != s.lastSaved
}

// Content returns the snapshot at the cursor.
func (s *Session) Content() string {
	return s.history[s.cursor]
}

// MarkSaved records the current snapshot as the persisted baseline.
// History and cursor are left untouched so undo/redo keep working across
// saves.
func (s *Session) MarkSaved() {
	s.lastSaved = s.history[s.cursor]
	s.dirty = false
}

// Dirty reports whether the current snapshot differs from the last-saved
// baseline.
func (s *Session) Dirty() bool {
	return s.dirty
}

// CanUndo reports whether an undo would change state.
func (s *Session) CanUndo() bool {
	return s.cursor > 0
}

// CanRedo reports whether a redo would change state.
func (s *Session) CanRedo() bool {
	return s.cursor < len(s.history)-1
}

// Depth returns the number of snapshots currently held.
func (s *Session) Depth() int {
	return len(s.history)
}
