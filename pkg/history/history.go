// Package history implements the snapshot-based undo/redo/commit engine
// that underlies every workspace state mutation.
package history

import (
	"errors"
	"fmt"
	"time"

	"github.com/dshills/boardflow/pkg/workspace"
)

// ErrNilMutator is returned by ApplyChange when no mutator is supplied.
var ErrNilMutator = errors.New("nil mutator")

// Mutator receives temporary exclusive write access to a throwaway clone
// of the current snapshot. It must not retain a reference to the clone
// after returning.
type Mutator func(*workspace.Snapshot) error

// Engine owns the ordered snapshot list, the cursor, and the committed
// baseline marker. Invariant: 0 <= commitIndex <= currentIndex < len.
//
// The engine is designed for a single logical owner (the command
// dispatcher); it provides no internal locking.
type Engine struct {
	snapshots    []*workspace.Snapshot
	currentIndex int
	commitIndex  int
}

// Entry is a read-only listing row for one history position.
type Entry struct {
	Index     int
	Label     string
	Timestamp time.Time
	Committed bool
}

// New creates an engine seeded with the given initial snapshot. The
// initial snapshot is cloned; index 0 is never removed.
func New(initial *workspace.Snapshot) *Engine {
	base := initial.Clone()
	base.ID = 0
	if base.Label == "" {
		base.Label = "Initial state"
	}
	if base.Timestamp.IsZero() {
		base.Timestamp = time.Now()
	}

	return &Engine{
		snapshots:    []*workspace.Snapshot{base},
		currentIndex: 0,
		commitIndex:  0,
	}
}

// ApplyChange clones the current snapshot, runs the mutator against the
// clone, and appends the result as the new current snapshot. Any redo
// branch beyond the cursor is discarded first.
//
// The operation is atomic with respect to failure: if the mutator returns
// an error or panics, nothing is appended and the history is unchanged.
func (e *Engine) ApplyChange(label string, mutate Mutator) (err error) {
	if mutate == nil {
		return ErrNilMutator
	}

	next := e.snapshots[e.currentIndex].Clone()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("mutator panic: %v", r)
		}
	}()

	if err := mutate(next); err != nil {
		return fmt.Errorf("applying %q: %w", label, err)
	}

	// Discard the redo branch before appending.
	if e.currentIndex < len(e.snapshots)-1 {
		e.snapshots = e.snapshots[:e.currentIndex+1]
	}

	next.ID = len(e.snapshots)
	next.Label = label
	next.Timestamp = time.Now()
	next.Committed = false

	e.snapshots = append(e.snapshots, next)
	e.currentIndex = len(e.snapshots) - 1

	return nil
}

// Undo moves the cursor back one snapshot. It is a silent no-op at the
// committed baseline: committed history is never re-entered.
func (e *Engine) Undo() bool {
	if !e.CanUndo() {
		return false
	}
	e.currentIndex--
	return true
}

// Redo moves the cursor forward one snapshot. Silent no-op at the end of
// the list.
func (e *Engine) Redo() bool {
	if !e.CanRedo() {
		return false
	}
	e.currentIndex++
	return true
}

// Commit marks the current snapshot as the new non-undoable baseline.
// This is the only operation that advances the commit index.
func (e *Engine) Commit() {
	current := e.snapshots[e.currentIndex]
	if !current.Committed {
		current.Committed = true
		current.Label = current.Label + " (committed)"
	}
	e.commitIndex = e.currentIndex
}

// Jump moves the cursor directly to index. Rejected (silent no-op) when
// index is before the committed baseline or out of bounds.
func (e *Engine) Jump(index int) bool {
	if index < e.commitIndex || index > len(e.snapshots)-1 {
		return false
	}
	e.currentIndex = index
	return true
}

// CanUndo reports whether the cursor can move back without crossing the
// committed baseline.
func (e *Engine) CanUndo() bool {
	return e.currentIndex > e.commitIndex
}

// CanRedo reports whether the cursor can move forward.
func (e *Engine) CanRedo() bool {
	return e.currentIndex < len(e.snapshots)-1
}

// Current returns a deep copy of the snapshot under the cursor. Callers
// may freely inspect or discard it; mutations never reach stored history.
func (e *Engine) Current() *workspace.Snapshot {
	return e.snapshots[e.currentIndex].Clone()
}

// CurrentIndex returns the cursor position.
func (e *Engine) CurrentIndex() int {
	return e.currentIndex
}

// CommitIndex returns the committed baseline position.
func (e *Engine) CommitIndex() int {
	return e.commitIndex
}

// Len returns the number of stored snapshots.
func (e *Engine) Len() int {
	return len(e.snapshots)
}

// Entries returns the history listing, oldest first.
func (e *Engine) Entries() []Entry {
	entries := make([]Entry, len(e.snapshots))
	for i, snap := range e.snapshots {
		entries[i] = Entry{
			Index:     i,
			Label:     snap.Label,
			Timestamp: snap.Timestamp,
			Committed: snap.Committed,
		}
	}
	return entries
}
