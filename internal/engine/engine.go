package engine

import (
	"io"
	"sync"

	"github.com/dshills/listedit/internal/engine/buffer"
	"github.com/dshills/listedit/internal/engine/cursor"
	"github.com/dshills/listedit/internal/engine/history"
)

// Re-export commonly used types for convenience.
type (
	// ByteOffset is a byte position in the buffer.
	ByteOffset = buffer.ByteOffset

	// Point represents a line/column position.
	Point = buffer.Point

	// Range represents a byte range in the buffer.
	Range = buffer.Range

	// Edit represents an edit operation.
	Edit = buffer.Edit

	// EditResult contains information about a completed edit.
	EditResult = buffer.EditResult

	// RevisionID uniquely identifies a buffer revision.
	RevisionID = buffer.RevisionID
)

// Engine is the editing facade over a buffer, its cursor and its history.
type Engine struct {
	// mu serializes mutations so that an edit, its history record and the
	// cursor shift happen together.
	mu sync.Mutex

	buf     *buffer.Buffer
	cur     *cursor.Cursor
	history *history.History
}

// New creates an Engine holding the WithContent text, or an empty buffer.
func New(opts ...Option) *Engine {
	s := collect(opts)
	return assemble(buffer.NewBufferFromString(s.content, buffer.WithTabWidth(s.tabWidth)), s)
}

// NewFromReader creates an Engine from everything r yields. WithContent is
// ignored.
func NewFromReader(r io.Reader, opts ...Option) (*Engine, error) {
	s := collect(opts)
	buf, err := buffer.NewBufferFromReader(r, buffer.WithTabWidth(s.tabWidth))
	if err != nil {
		return nil, err
	}
	return assemble(buf, s), nil
}

func assemble(buf *buffer.Buffer, s settings) *Engine {
	cur := cursor.New(s.cursor)
	cur.Clamp(buf.Len())
	return &Engine{buf: buf, cur: cur, history: history.New(s.maxUndo)}
}

// Read Operations

// Text returns the full buffer content.
func (e *Engine) Text() string { return e.buf.Text() }

// Export returns the content with the original line endings.
func (e *Engine) Export() string { return e.buf.Export() }

// TextRange returns text in the given byte range.
func (e *Engine) TextRange(start, end ByteOffset) string { return e.buf.TextRange(start, end) }

// Len returns the total byte length.
func (e *Engine) Len() ByteOffset { return e.buf.Len() }

// LineCount returns the number of lines.
func (e *Engine) LineCount() uint32 { return e.buf.LineCount() }

// LineText returns the text of a line without its newline.
func (e *Engine) LineText(line uint32) string { return e.buf.LineText(line) }

// LineLen returns the byte length of a line.
func (e *Engine) LineLen(line uint32) int { return e.buf.LineLen(line) }

// LineStartOffset returns the byte offset of the start of a line.
func (e *Engine) LineStartOffset(line uint32) ByteOffset { return e.buf.LineStartOffset(line) }

// LineEndOffset returns the byte offset of the end of a line.
func (e *Engine) LineEndOffset(line uint32) ByteOffset { return e.buf.LineEndOffset(line) }

// OffsetToPoint converts a byte offset to line/column.
func (e *Engine) OffsetToPoint(offset ByteOffset) Point { return e.buf.OffsetToPoint(offset) }

// PointToOffset converts line/column to a byte offset.
func (e *Engine) PointToOffset(p Point) ByteOffset { return e.buf.PointToOffset(p) }

// RuneBefore returns the rune ending at offset and its size.
func (e *Engine) RuneBefore(offset ByteOffset) (rune, int) { return e.buf.RuneBefore(offset) }

// RevisionID returns the current buffer revision.
func (e *Engine) RevisionID() RevisionID { return e.buf.RevisionID() }

// TabWidth returns the buffer tab width.
func (e *Engine) TabWidth() int { return e.buf.TabWidth() }

// Snapshot returns a read-only view of the buffer.
func (e *Engine) Snapshot() *buffer.Snapshot { return e.buf.Snapshot() }

// Write Operations

// Insert inserts text at offset.
func (e *Engine) Insert(offset ByteOffset, text string) (EditResult, error) {
	return e.ApplyEdit(buffer.NewInsert(offset, text))
}

// Delete removes text in [start, end).
func (e *Engine) Delete(start, end ByteOffset) (EditResult, error) {
	return e.ApplyEdit(buffer.NewDelete(start, end))
}

// Replace replaces [start, end) with text.
func (e *Engine) Replace(start, end ByteOffset, text string) (EditResult, error) {
	return e.ApplyEdit(Edit{Range: Range{Start: start, End: end}, NewText: text})
}

// ApplyEdit applies an edit, records it and shifts the cursor.
func (e *Engine) ApplyEdit(edit Edit) (EditResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	before := e.cur.Offset()
	res, err := e.buf.ApplyEdit(edit)
	if err != nil {
		return EditResult{}, err
	}
	e.history.Record(res, before)
	e.cur.Transform(res)
	return res, nil
}

// Undo/Redo

// Undo reverts the last undo unit and restores its cursor.
func (e *Engine) Undo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	off, err := e.history.Undo(e.buf)
	if err != nil {
		return err
	}
	e.cur.MoveTo(off)
	e.cur.Clamp(e.buf.Len())
	return nil
}

// Redo re-applies the last undone unit and restores its cursor.
func (e *Engine) Redo() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	off, err := e.history.Redo(e.buf)
	if err != nil {
		return err
	}
	e.cur.MoveTo(off)
	e.cur.Clamp(e.buf.Len())
	return nil
}

// CanUndo returns true if undo is available.
func (e *Engine) CanUndo() bool { return e.history.CanUndo() }

// CanRedo returns true if redo is available.
func (e *Engine) CanRedo() bool { return e.history.CanRedo() }

// BeginUndoGroup starts grouping edits into one undo unit.
func (e *Engine) BeginUndoGroup(name string) {
	e.history.BeginGroup(name, e.cur.Offset())
}

// EndUndoGroup closes the current undo group.
func (e *Engine) EndUndoGroup() {
	e.history.EndGroup(e.cur.Offset())
}

// CancelUndoGroup drops the current group from history.
func (e *Engine) CancelUndoGroup() {
	e.history.CancelGroup()
}

// IsGrouping reports whether an undo group is open.
func (e *Engine) IsGrouping() bool {
	return e.history.IsGrouping()
}

// Cursor

// Cursor returns the session cursor.
func (e *Engine) Cursor() *cursor.Cursor { return e.cur }

// CursorOffset returns the cursor position.
func (e *Engine) CursorOffset() ByteOffset { return e.cur.Offset() }

// SetCursor moves the cursor, clamped to the buffer.
func (e *Engine) SetCursor(offset ByteOffset) {
	e.cur.MoveTo(offset)
	e.cur.Clamp(e.buf.Len())
}

// SetContent replaces the whole buffer and clears history.
func (e *Engine) SetContent(content string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, err := e.buf.Replace(0, e.buf.Len(), content); err != nil {
		return err
	}
	e.history.Clear()
	e.cur.Clamp(e.buf.Len())
	return nil
}
