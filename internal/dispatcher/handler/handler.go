// Package handler defines what the dispatcher calls and what it gets back.
package handler

import (
	"slices"

	"github.com/dshills/listedit/internal/dispatcher/execctx"
	"github.com/dshills/listedit/internal/input"
)

// Handler runs one command.
type Handler interface {
	Handle(action input.Action, ctx *execctx.ExecutionContext) Result
}

// HandlerFunc lets a plain function serve as a Handler.
type HandlerFunc func(action input.Action, ctx *execctx.ExecutionContext) Result

// Handle implements Handler.
func (f HandlerFunc) Handle(action input.Action, ctx *execctx.ExecutionContext) Result {
	if f == nil {
		return Errorf("handler function is nil")
	}
	return f(action, ctx)
}

// NamespaceHandler serves a family of commands sharing the prefix before
// the first dot, such as "cursor" for "cursor.left".
type NamespaceHandler interface {
	HandleAction(action input.Action, ctx *execctx.ExecutionContext) Result

	CanHandle(actionName string) bool

	Namespace() string

	// Actions lists the commands the registry should route here.
	Actions() []string
}

// BaseNamespaceHandler is a NamespaceHandler assembled from functions, one
// per command, kept in registration order.
type BaseNamespaceHandler struct {
	namespace string
	order     []string
	actions   map[string]HandlerFunc
}

func NewBaseNamespaceHandler(namespace string) *BaseNamespaceHandler {
	return &BaseNamespaceHandler{
		namespace: namespace,
		actions:   make(map[string]HandlerFunc),
	}
}

// Register adds fn for actionName. Registering a name again replaces the
// function but keeps its original position.
func (h *BaseNamespaceHandler) Register(actionName string, fn HandlerFunc) {
	if _, ok := h.actions[actionName]; !ok {
		h.order = append(h.order, actionName)
	}
	h.actions[actionName] = fn
}

func (h *BaseNamespaceHandler) Namespace() string {
	return h.namespace
}

func (h *BaseNamespaceHandler) CanHandle(actionName string) bool {
	_, ok := h.actions[actionName]
	return ok
}

func (h *BaseNamespaceHandler) Actions() []string {
	return slices.Clone(h.order)
}

func (h *BaseNamespaceHandler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) Result {
	fn, ok := h.actions[action.Name]
	if !ok {
		return Errorf("unknown action in namespace %s: %s", h.namespace, action.Name)
	}
	return fn(action, ctx)
}

// Handle lets the same value be registered for a single command.
func (h *BaseNamespaceHandler) Handle(action input.Action, ctx *execctx.ExecutionContext) Result {
	return h.HandleAction(action, ctx)
}
