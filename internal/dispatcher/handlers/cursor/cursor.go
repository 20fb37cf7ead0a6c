package cursor

import (
	"unicode/utf8"

	"github.com/dshills/listedit/internal/dispatcher/execctx"
	"github.com/dshills/listedit/internal/dispatcher/handler"
	"github.com/dshills/listedit/internal/engine/buffer"
	"github.com/dshills/listedit/internal/input"
)

// Action names for cursor movements.
const (
	ActionLeft      = "cursor.left"
	ActionRight     = "cursor.right"
	ActionUp        = "cursor.up"
	ActionDown      = "cursor.down"
	ActionLineStart = "cursor.lineStart"
	ActionLineEnd   = "cursor.lineEnd"
)

// Handler implements namespace-based cursor movement handling.
type Handler struct{}

// NewHandler creates a new cursor handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Namespace returns the cursor namespace.
func (h *Handler) Namespace() string {
	return "cursor"
}

// Actions returns the action names served by the handler.
func (h *Handler) Actions() []string {
	return []string{ActionLeft, ActionRight, ActionUp, ActionDown, ActionLineStart, ActionLineEnd}
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionLeft, ActionRight, ActionUp, ActionDown, ActionLineStart, ActionLineEnd:
		return true
	}
	return false
}

// HandleAction processes a cursor action.
func (h *Handler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.Validate(); err != nil {
		return handler.Error(err)
	}

	eng := ctx.Engine
	before := eng.CursorOffset()
	count := ctx.GetCount()

	switch action.Name {
	case ActionLeft:
		off := before
		for i := 0; i < count; i++ {
			_, size := eng.RuneBefore(off)
			off -= buffer.ByteOffset(size)
		}
		eng.SetCursor(off)
	case ActionRight:
		off := before
		for i := 0; i < count && off < eng.Len(); i++ {
			off += buffer.ByteOffset(runeLenAt(eng, off))
		}
		eng.SetCursor(off)
	case ActionUp:
		h.vertical(eng, -count)
	case ActionDown:
		h.vertical(eng, count)
	case ActionLineStart:
		eng.SetCursor(eng.LineStartOffset(eng.OffsetToPoint(before).Line))
	case ActionLineEnd:
		eng.SetCursor(eng.LineEndOffset(eng.OffsetToPoint(before).Line))
	default:
		return handler.Errorf("unknown cursor action: %s", action.Name)
	}

	if eng.CursorOffset() == before {
		return handler.NoOp()
	}
	return handler.Success()
}

// vertical moves delta lines, aiming for the goal column.
func (h *Handler) vertical(eng execctx.EngineInterface, delta int) {
	cur := eng.Cursor()
	p := eng.OffsetToPoint(cur.Offset())

	col := int(p.Column)
	if goal := cur.GoalColumn(); goal >= 0 {
		col = goal
	}

	target := int(p.Line) + delta
	last := int(eng.LineCount()) - 1
	switch {
	case target < 0:
		target = 0
	case target > last:
		target = last
	}
	if target == int(p.Line) {
		return
	}

	text := eng.LineText(uint32(target))
	c := min(col, len(text))
	for c > 0 && c < len(text) && !utf8.RuneStart(text[c]) {
		c--
	}
	cur.MoveVertical(eng.LineStartOffset(uint32(target))+buffer.ByteOffset(c), int(p.Column))
}

func runeLenAt(eng execctx.EngineInterface, off buffer.ByteOffset) int {
	r := eng.TextRange(off, off+utf8.UTFMax)
	if r == "" {
		return 0
	}
	_, size := utf8.DecodeRuneInString(r)
	return size
}
