// Package execctx provides the execution context for action handlers.
package execctx

import (
	"errors"

	"github.com/dshills/listedit/internal/engine/buffer"
	"github.com/dshills/listedit/internal/engine/cursor"
)

var (
	// ErrMissingEngine is returned by handlers run without a buffer.
	ErrMissingEngine = errors.New("no engine in execution context")

	// ErrReadOnly is returned for edits to a read-only buffer.
	ErrReadOnly = errors.New("buffer is read-only")
)

// EngineInterface is the text engine as handlers and list editing advice
// see it. Offsets are bytes into LF-normalized text; lines are 0-based.
type EngineInterface interface {
	Insert(offset buffer.ByteOffset, text string) (buffer.EditResult, error)
	Delete(start, end buffer.ByteOffset) (buffer.EditResult, error)
	Replace(start, end buffer.ByteOffset, text string) (buffer.EditResult, error)

	Text() string
	TextRange(start, end buffer.ByteOffset) string
	LineText(line uint32) string
	Len() buffer.ByteOffset
	LineCount() uint32
	RuneBefore(offset buffer.ByteOffset) (rune, int)
	TabWidth() int

	LineStartOffset(line uint32) buffer.ByteOffset
	LineEndOffset(line uint32) buffer.ByteOffset
	OffsetToPoint(offset buffer.ByteOffset) buffer.Point
	PointToOffset(point buffer.Point) buffer.ByteOffset

	Cursor() *cursor.Cursor
	CursorOffset() buffer.ByteOffset
	SetCursor(offset buffer.ByteOffset)

	// Undo history. Edits made between BeginUndoGroup and EndUndoGroup
	// undo as one step.
	Undo() error
	Redo() error
	BeginUndoGroup(name string)
	EndUndoGroup()
	CancelUndoGroup()
	IsGrouping() bool
}

// ExecutionContext carries what a handler may touch while running one
// action.
type ExecutionContext struct {
	Engine   EngineInterface
	FilePath string // empty for scratch buffers
	ReadOnly bool
	Count    int // repeat count, at least 1
}

// New returns a context with a count of 1 and no engine.
func New() *ExecutionContext {
	return &ExecutionContext{Count: 1}
}

// WithEngine sets the engine and returns ctx.
func (ctx *ExecutionContext) WithEngine(engine EngineInterface) *ExecutionContext {
	ctx.Engine = engine
	return ctx
}

// WithCount sets a positive repeat count and returns ctx. Other counts
// are ignored.
func (ctx *ExecutionContext) WithCount(count int) *ExecutionContext {
	if count > 0 {
		ctx.Count = count
	}
	return ctx
}

// GetCount returns the repeat count, treating unset counts as 1.
func (ctx *ExecutionContext) GetCount() int {
	return max(ctx.Count, 1)
}

// Validate reports ErrMissingEngine when no engine is attached.
func (ctx *ExecutionContext) Validate() error {
	if ctx.Engine == nil {
		return ErrMissingEngine
	}
	return nil
}

// ValidateForEdit is Validate plus the read-only check.
func (ctx *ExecutionContext) ValidateForEdit() error {
	if err := ctx.Validate(); err != nil {
		return err
	}
	if ctx.ReadOnly {
		return ErrReadOnly
	}
	return nil
}
