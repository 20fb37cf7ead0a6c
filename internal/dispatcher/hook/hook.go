package hook

import (
	"github.com/dshills/listedit/internal/dispatcher/execctx"
	"github.com/dshills/listedit/internal/dispatcher/handler"
	"github.com/dshills/listedit/internal/input"
)

// Hook is anything the Manager can order and replace by name.
type Hook interface {
	Name() string
	// Priority orders hooks; see the package documentation for which way.
	// Built-in hooks use 800 and up, feature advice 100.
	Priority() int
}

// PreDispatchHook sees every action before its handler. It may change the
// action or the context, and returns false to cancel the action.
type PreDispatchHook interface {
	Hook
	PreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool
}

// PostDispatchHook sees every action after its handler and may rewrite
// the result.
type PostDispatchHook interface {
	Hook
	PostDispatch(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result)
}

// Next continues an advice chain: the next advice, or the command itself.
type Next func() handler.Result

// Advice runs around one command. It may call next once, never, or do
// work on both sides of it; whatever it returns is the command's result.
type Advice interface {
	Hook
	Around(action input.Action, ctx *execctx.ExecutionContext, next Next) handler.Result
}

// named carries the Hook half of the function adapters below.
type named struct {
	name     string
	priority int
}

func (n named) Name() string  { return n.name }
func (n named) Priority() int { return n.priority }

// PreDispatchFunc adapts a function to PreDispatchHook. A nil function
// lets every action through.
type PreDispatchFunc struct {
	named
	fn func(*input.Action, *execctx.ExecutionContext) bool
}

func NewPreDispatchFunc(name string, priority int, fn func(*input.Action, *execctx.ExecutionContext) bool) *PreDispatchFunc {
	return &PreDispatchFunc{named{name, priority}, fn}
}

func (f *PreDispatchFunc) PreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool {
	return f.fn == nil || f.fn(action, ctx)
}

// PostDispatchFunc adapts a function to PostDispatchHook.
type PostDispatchFunc struct {
	named
	fn func(*input.Action, *execctx.ExecutionContext, *handler.Result)
}

func NewPostDispatchFunc(name string, priority int, fn func(*input.Action, *execctx.ExecutionContext, *handler.Result)) *PostDispatchFunc {
	return &PostDispatchFunc{named{name, priority}, fn}
}

func (f *PostDispatchFunc) PostDispatch(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
	if f.fn != nil {
		f.fn(action, ctx, result)
	}
}

// AroundFunc adapts a function to Advice. A nil function calls next.
type AroundFunc struct {
	named
	fn func(input.Action, *execctx.ExecutionContext, Next) handler.Result
}

func NewAroundFunc(name string, priority int, fn func(input.Action, *execctx.ExecutionContext, Next) handler.Result) *AroundFunc {
	return &AroundFunc{named{name, priority}, fn}
}

func (f *AroundFunc) Around(action input.Action, ctx *execctx.ExecutionContext, next Next) handler.Result {
	if f.fn == nil {
		return next()
	}
	return f.fn(action, ctx, next)
}
