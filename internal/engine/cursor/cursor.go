package cursor

import (
	"sync"

	"github.com/dshills/listedit/internal/engine/buffer"
)

// ByteOffset is an alias for buffer.ByteOffset for convenience.
type ByteOffset = buffer.ByteOffset

// Cursor is the single editing point of a buffer.
type Cursor struct {
	mu      sync.RWMutex
	offset  ByteOffset
	goalCol int // -1 when no vertical motion is in progress
}

// New creates a cursor at the given offset.
func New(offset ByteOffset) *Cursor {
	if offset < 0 {
		offset = 0
	}
	return &Cursor{offset: offset, goalCol: -1}
}

// Offset returns the cursor position.
func (c *Cursor) Offset() ByteOffset {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.offset
}

// MoveTo repositions the cursor and forgets the goal column.
func (c *Cursor) MoveTo(offset ByteOffset) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if offset < 0 {
		offset = 0
	}
	c.offset = offset
	c.goalCol = -1
}

// Clamp keeps the cursor within [0, maxOffset].
func (c *Cursor) Clamp(maxOffset ByteOffset) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.offset > maxOffset {
		c.offset = maxOffset
	}
	if c.offset < 0 {
		c.offset = 0
	}
}

// GoalColumn returns the column vertical motion aims for, or -1.
func (c *Cursor) GoalColumn() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.goalCol
}

// MoveVertical repositions the cursor while keeping the goal column.
// If no goal is set, col becomes the goal.
func (c *Cursor) MoveVertical(offset ByteOffset, col int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.goalCol < 0 {
		c.goalCol = col
	}
	c.offset = offset
}

// Transform shifts the cursor to account for an applied edit and forgets
// the goal column. A cursor inside a replaced range moves to the end of the
// new text.
func (c *Cursor) Transform(res buffer.EditResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.offset = TransformOffset(c.offset, res)
	c.goalCol = -1
}

// TransformOffset maps an offset through an applied edit.
func TransformOffset(offset ByteOffset, res buffer.EditResult) ByteOffset {
	switch {
	case offset < res.OldRange.Start:
		return offset
	case offset >= res.OldRange.End && !res.OldRange.IsEmpty():
		return offset + res.Delta
	case res.OldRange.IsEmpty() && offset > res.OldRange.Start:
		return offset + res.Delta
	case res.OldRange.IsEmpty():
		// Insertion exactly at the cursor leaves the cursor before the text.
		return offset
	default:
		return res.NewRange.End
	}
}
