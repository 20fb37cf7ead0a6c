package editor

import (
	"errors"

	"github.com/dshills/listedit/internal/dispatcher/execctx"
	"github.com/dshills/listedit/internal/dispatcher/handler"
	"github.com/dshills/listedit/internal/engine"
	"github.com/dshills/listedit/internal/input"
)

// Action names for history operations.
const (
	ActionUndo = "editor.undo"
	ActionRedo = "editor.redo"
)

// HistoryHandler handles undo and redo.
type HistoryHandler struct{}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler() *HistoryHandler {
	return &HistoryHandler{}
}

// Namespace returns the editor namespace.
func (h *HistoryHandler) Namespace() string {
	return "editor"
}

// Actions returns the action names served by the handler.
func (h *HistoryHandler) Actions() []string {
	return []string{ActionUndo, ActionRedo}
}

// CanHandle returns true if this handler can process the action.
func (h *HistoryHandler) CanHandle(actionName string) bool {
	return actionName == ActionUndo || actionName == ActionRedo
}

// HandleAction processes an undo or redo action.
func (h *HistoryHandler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if err := ctx.ValidateForEdit(); err != nil {
		return handler.Error(err)
	}

	var err error
	switch action.Name {
	case ActionUndo:
		err = ctx.Engine.Undo()
	case ActionRedo:
		err = ctx.Engine.Redo()
	default:
		return handler.Errorf("unknown history action: %s", action.Name)
	}

	switch {
	case errors.Is(err, engine.ErrNothingToUndo):
		return handler.NoOpWithMessage("nothing to undo")
	case errors.Is(err, engine.ErrNothingToRedo):
		return handler.NoOpWithMessage("nothing to redo")
	case err != nil:
		return handler.Error(err)
	}
	return handler.Success()
}
