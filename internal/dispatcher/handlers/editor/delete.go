package editor

import (
	"github.com/dshills/listedit/internal/dispatcher/execctx"
	"github.com/dshills/listedit/internal/dispatcher/handler"
	"github.com/dshills/listedit/internal/engine/buffer"
	"github.com/dshills/listedit/internal/input"
)

// Action names for delete operations.
const (
	ActionDeleteCharBack = "editor.deleteCharBack"
)

// DeleteHandler handles text deletion operations.
type DeleteHandler struct{}

// NewDeleteHandler creates a new delete handler.
func NewDeleteHandler() *DeleteHandler {
	return &DeleteHandler{}
}

// Namespace returns the editor namespace.
func (h *DeleteHandler) Namespace() string {
	return "editor"
}

// Actions returns the action names served by the handler.
func (h *DeleteHandler) Actions() []string {
	return []string{ActionDeleteCharBack}
}

// CanHandle returns true if this handler can process the action.
func (h *DeleteHandler) CanHandle(actionName string) bool {
	return actionName == ActionDeleteCharBack
}

// HandleAction processes a delete action.
func (h *DeleteHandler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.ValidateForEdit(); err != nil {
		return handler.Error(err)
	}

	switch action.Name {
	case ActionDeleteCharBack:
		return h.deleteCharBack(ctx, ctx.GetCount())
	default:
		return handler.Errorf("unknown delete action: %s", action.Name)
	}
}

// deleteCharBack deletes count characters before the cursor.
func (h *DeleteHandler) deleteCharBack(ctx *execctx.ExecutionContext, count int) handler.Result {
	eng := ctx.Engine
	end := eng.CursorOffset()
	start := end
	for i := 0; i < count && start > 0; i++ {
		_, size := eng.RuneBefore(start)
		if size == 0 {
			break
		}
		start -= buffer.ByteOffset(size)
	}
	if start == end {
		return handler.NoOp()
	}

	if _, err := eng.Delete(start, end); err != nil {
		return handler.Error(err)
	}
	eng.SetCursor(start)
	return handler.Success()
}
