package editor

import (
	"github.com/dshills/listedit/internal/dispatcher/execctx"
	"github.com/dshills/listedit/internal/dispatcher/handler"
	"github.com/dshills/listedit/internal/input"
)

// CombinedHandler serves the whole editor namespace by routing each action
// to the insert, delete or history handler that owns it.
type CombinedHandler struct {
	parts []handler.NamespaceHandler
}

// NewCombinedHandler returns the editor namespace. autoIndent makes plain
// newlines copy the current line's indentation.
func NewCombinedHandler(autoIndent bool) *CombinedHandler {
	return &CombinedHandler{parts: []handler.NamespaceHandler{
		NewInsertHandler(autoIndent),
		NewDeleteHandler(),
		NewHistoryHandler(),
	}}
}

func (h *CombinedHandler) Namespace() string { return "editor" }

func (h *CombinedHandler) Actions() []string {
	var out []string
	for _, p := range h.parts {
		out = append(out, p.Actions()...)
	}
	return out
}

func (h *CombinedHandler) CanHandle(actionName string) bool {
	return h.owner(actionName) != nil
}

func (h *CombinedHandler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	if p := h.owner(action.Name); p != nil {
		return p.HandleAction(action, ctx)
	}
	return handler.Errorf("unknown editor action: %s", action.Name)
}

func (h *CombinedHandler) owner(name string) handler.NamespaceHandler {
	for _, p := range h.parts {
		if p.CanHandle(name) {
			return p
		}
	}
	return nil
}
