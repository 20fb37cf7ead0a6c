package history

import (
	"errors"
	"sync"
	"time"

	"github.com/dshills/listedit/internal/engine/buffer"
)

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// DefaultMaxEntries bounds the undo stack when no size is given.
const DefaultMaxEntries = 1000

// ByteOffset is an alias for buffer.ByteOffset for convenience.
type ByteOffset = buffer.ByteOffset

// Applier applies edits to a buffer.
type Applier interface {
	ApplyEdit(edit buffer.Edit) (buffer.EditResult, error)
}

// Entry is one undo unit.
type Entry struct {
	Name         string
	Edits        []buffer.EditResult
	CursorBefore ByteOffset
	CursorAfter  ByteOffset
	Timestamp    time.Time
}

// History manages undo/redo state for a buffer.
type History struct {
	mu sync.Mutex

	undoStack []*Entry
	redoStack []*Entry

	grouping bool
	group    *Entry

	maxEntries int
}

// New creates a history bounded to maxEntries undo units.
func New(maxEntries int) *History {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &History{maxEntries: maxEntries}
}

// Record adds an applied edit. Outside a group the edit becomes its own
// undo unit with cursorBefore as both cursor positions.
func (h *History) Record(res buffer.EditResult, cursorBefore ByteOffset) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.grouping {
		h.group.Edits = append(h.group.Edits, res)
		return
	}

	h.pushLocked(&Entry{
		Name:         "edit",
		Edits:        []buffer.EditResult{res},
		CursorBefore: cursorBefore,
		CursorAfter:  cursorBefore,
		Timestamp:    time.Now(),
	})
}

// pushLocked adds an entry without acquiring the lock.
func (h *History) pushLocked(e *Entry) {
	h.undoStack = append(h.undoStack, e)
	h.redoStack = nil

	if len(h.undoStack) > h.maxEntries {
		excess := len(h.undoStack) - h.maxEntries
		h.undoStack = h.undoStack[excess:]
	}
}

// BeginGroup starts an undo group. Nested calls are ignored.
func (h *History) BeginGroup(name string, cursor ByteOffset) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.grouping {
		return
	}
	h.grouping = true
	h.group = &Entry{Name: name, CursorBefore: cursor, Timestamp: time.Now()}
}

// EndGroup closes the current group. Empty groups are dropped.
func (h *History) EndGroup(cursor ByteOffset) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.grouping {
		return
	}
	h.grouping = false
	g := h.group
	h.group = nil

	if len(g.Edits) == 0 {
		return
	}
	g.CursorAfter = cursor
	h.pushLocked(g)
}

// CancelGroup discards the current group without recording it.
// Edits already applied stay in the buffer.
func (h *History) CancelGroup() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.grouping = false
	h.group = nil
}

// IsGrouping returns true if currently in a group.
func (h *History) IsGrouping() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.grouping
}

// Undo reverts the last undo unit and returns the cursor to restore.
func (h *History) Undo(buf Applier) (ByteOffset, error) {
	h.mu.Lock()
	if len(h.undoStack) == 0 {
		h.mu.Unlock()
		return 0, ErrNothingToUndo
	}
	e := h.undoStack[len(h.undoStack)-1]
	h.undoStack = h.undoStack[:len(h.undoStack)-1]
	h.mu.Unlock()

	for i := len(e.Edits) - 1; i >= 0; i-- {
		if _, err := buf.ApplyEdit(e.Edits[i].Invert()); err != nil {
			h.mu.Lock()
			h.undoStack = append(h.undoStack, e)
			h.mu.Unlock()
			return 0, err
		}
	}

	h.mu.Lock()
	h.redoStack = append(h.redoStack, e)
	h.mu.Unlock()
	return e.CursorBefore, nil
}

// Redo re-applies the last undone unit and returns the cursor to restore.
func (h *History) Redo(buf Applier) (ByteOffset, error) {
	h.mu.Lock()
	if len(h.redoStack) == 0 {
		h.mu.Unlock()
		return 0, ErrNothingToRedo
	}
	e := h.redoStack[len(h.redoStack)-1]
	h.redoStack = h.redoStack[:len(h.redoStack)-1]
	h.mu.Unlock()

	for _, res := range e.Edits {
		if _, err := buf.ApplyEdit(res.Redo()); err != nil {
			h.mu.Lock()
			h.redoStack = append(h.redoStack, e)
			h.mu.Unlock()
			return 0, err
		}
	}

	h.mu.Lock()
	h.undoStack = append(h.undoStack, e)
	h.mu.Unlock()
	return e.CursorAfter, nil
}

// CanUndo returns true if undo is available.
func (h *History) CanUndo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack) > 0
}

// CanRedo returns true if redo is available.
func (h *History) CanRedo() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack) > 0
}

// UndoCount returns the number of undo units available.
func (h *History) UndoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.undoStack)
}

// RedoCount returns the number of redo units available.
func (h *History) RedoCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.redoStack)
}

// PeekUndo returns the name of the next undo unit.
func (h *History) PeekUndo() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.undoStack) == 0 {
		return "", false
	}
	return h.undoStack[len(h.undoStack)-1].Name, true
}

// Clear removes all undo/redo history.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.undoStack = nil
	h.redoStack = nil
	h.grouping = false
	h.group = nil
}
