package editor

import (
	"github.com/dshills/listedit/internal/dispatcher/execctx"
	"github.com/dshills/listedit/internal/dispatcher/handler"
	"github.com/dshills/listedit/internal/input"
)

// Action names for insert operations.
const (
	ActionInsertText    = "editor.insertText"
	ActionInsertNewline = "editor.insertNewline"
)

// InsertHandler handles text insertion operations.
type InsertHandler struct {
	autoIndent bool
}

// NewInsertHandler creates a new insert handler.
func NewInsertHandler(autoIndent bool) *InsertHandler {
	return &InsertHandler{autoIndent: autoIndent}
}

// Namespace returns the editor namespace.
func (h *InsertHandler) Namespace() string {
	return "editor"
}

// Actions returns the action names served by the handler.
func (h *InsertHandler) Actions() []string {
	return []string{ActionInsertText, ActionInsertNewline}
}

// CanHandle returns true if this handler can process the action.
func (h *InsertHandler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionInsertText, ActionInsertNewline:
		return true
	}
	return false
}

// HandleAction processes an insert action.
func (h *InsertHandler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.ValidateForEdit(); err != nil {
		return handler.Error(err)
	}

	switch action.Name {
	case ActionInsertText:
		return h.insertText(ctx, action.Args.Text)
	case ActionInsertNewline:
		return h.insertNewline(ctx)
	default:
		return handler.Errorf("unknown insert action: %s", action.Name)
	}
}

// insertText inserts text at the cursor, repeated count times.
func (h *InsertHandler) insertText(ctx *execctx.ExecutionContext, text string) handler.Result {
	if text == "" {
		return handler.NoOp()
	}

	eng := ctx.Engine
	for i := 0; i < ctx.GetCount(); i++ {
		res, err := eng.Insert(eng.CursorOffset(), text)
		if err != nil {
			return handler.Error(err)
		}
		eng.SetCursor(res.NewRange.End)
	}
	return handler.Success()
}

// insertNewline breaks the line at the cursor.
func (h *InsertHandler) insertNewline(ctx *execctx.ExecutionContext) handler.Result {
	eng := ctx.Engine
	text := "\n"
	if h.autoIndent {
		line := eng.OffsetToPoint(eng.CursorOffset()).Line
		text += leadingWhitespace(eng.LineText(line))
	}
	return h.insertText(ctx, text)
}

func leadingWhitespace(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' && s[i] != '\t' {
			return s[:i]
		}
	}
	return s
}
