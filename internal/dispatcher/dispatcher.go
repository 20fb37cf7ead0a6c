package dispatcher

import (
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/dshills/listedit/internal/dispatcher/execctx"
	"github.com/dshills/listedit/internal/dispatcher/handler"
	"github.com/dshills/listedit/internal/dispatcher/hook"
	"github.com/dshills/listedit/internal/input"
)

// Dispatcher routes actions to handlers and coordinates execution.
type Dispatcher struct {
	mu sync.RWMutex

	registry *Registry
	hooks    *hook.Manager

	engine   execctx.EngineInterface
	filePath string
	readOnly bool

	config  Config
	metrics *Metrics
}

// New creates a new dispatcher with the given configuration.
func New(config Config) *Dispatcher {
	d := &Dispatcher{
		registry: NewRegistry(),
		hooks:    hook.NewManager(),
		config:   config,
	}

	d.hooks.RegisterPre(hook.NewReadOnlyHook())
	if config.MaxRepeatCount > 0 {
		d.hooks.RegisterPre(hook.NewCountLimitHook(config.MaxRepeatCount))
	}
	if config.EnableMetrics {
		d.metrics = NewMetrics()
	}

	return d
}

// NewWithDefaults creates a new dispatcher with default configuration.
func NewWithDefaults() *Dispatcher {
	return New(DefaultConfig())
}

// SetEngine sets the text engine.
func (d *Dispatcher) SetEngine(engine execctx.EngineInterface) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.engine = engine
}

// Engine returns the text engine.
func (d *Dispatcher) Engine() execctx.EngineInterface {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.engine
}

// SetFilePath records the file being edited.
func (d *Dispatcher) SetFilePath(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.filePath = path
}

// SetReadOnly marks the buffer read-only.
func (d *Dispatcher) SetReadOnly(readOnly bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.readOnly = readOnly
}

// Dispatch executes an action synchronously.
func (d *Dispatcher) Dispatch(action input.Action) handler.Result {
	startTime := time.Now()

	if action.Name == "" {
		return handler.Error(ErrInvalidAction)
	}

	ctx := d.buildContext()
	if action.Count > 0 {
		ctx.Count = action.Count
	}

	if !d.hooks.RunPreDispatch(&action, ctx) {
		return handler.Error(fmt.Errorf("%w: %s", ErrActionCancelled, action.Name))
	}

	var result handler.Result
	if h := d.registry.Get(action.Name); h == nil {
		result = handler.Error(fmt.Errorf("%w: %s", ErrNoHandler, action.Name))
	} else {
		run := d.hooks.Wrap(action, ctx, func() handler.Result {
			return h.Handle(action, ctx)
		})
		result = d.runGrouped(action, ctx, run)
	}

	d.hooks.RunPostDispatch(&action, ctx, &result)

	if d.metrics != nil {
		d.metrics.RecordDispatch(action.Name, time.Since(startTime), result.Status)
	}

	return result
}

// runGrouped runs a command chain inside one undo group.
func (d *Dispatcher) runGrouped(action input.Action, ctx *execctx.ExecutionContext, run hook.Next) handler.Result {
	eng := ctx.Engine
	if !d.config.GroupUndo || eng == nil || eng.IsGrouping() {
		return d.execute(action, run)
	}

	eng.BeginUndoGroup(action.Name)
	result := d.execute(action, run)
	eng.EndUndoGroup()
	return result
}

// execute runs a chain, with panic recovery if configured.
func (d *Dispatcher) execute(action input.Action, run hook.Next) (result handler.Result) {
	if !d.config.RecoverFromPanic {
		return run()
	}

	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)

			result = handler.Error(fmt.Errorf("%w for %s: %v\n%s", ErrPanic, action.Name, r, string(stack[:n])))

			if d.metrics != nil {
				d.metrics.RecordPanic(action.Name)
			}
		}
	}()

	return run()
}

// buildContext builds an execution context from current state.
func (d *Dispatcher) buildContext() *execctx.ExecutionContext {
	d.mu.RLock()
	defer d.mu.RUnlock()

	ctx := execctx.New()
	ctx.Engine = d.engine
	ctx.FilePath = d.filePath
	ctx.ReadOnly = d.readOnly
	return ctx
}

// RegisterHandler registers a handler for an exact action name.
func (d *Dispatcher) RegisterHandler(actionName string, h handler.Handler) {
	d.registry.Register(actionName, h)
}

// RegisterHandlerFunc registers a handler function for an action name.
func (d *Dispatcher) RegisterHandlerFunc(actionName string, fn func(input.Action, *execctx.ExecutionContext) handler.Result) {
	d.registry.Register(actionName, handler.HandlerFunc(fn))
}

// RegisterNamespace registers every action of a namespace handler.
func (d *Dispatcher) RegisterNamespace(h handler.NamespaceHandler) {
	d.registry.RegisterNamespace(h)
}

// UnregisterHandler removes a handler for an action name.
func (d *Dispatcher) UnregisterHandler(actionName string) {
	d.registry.Unregister(actionName)
}

// Hooks returns the hook manager.
func (d *Dispatcher) Hooks() *hook.Manager {
	return d.hooks
}

// Registry returns the handler registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Metrics returns the metrics collector (may be nil if disabled).
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Config returns the dispatcher configuration.
func (d *Dispatcher) Config() Config {
	return d.config
}

// namespaceAdapter adapts a NamespaceHandler to the Handler interface.
type namespaceAdapter struct {
	h handler.NamespaceHandler
}

func (a namespaceAdapter) Handle(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	return a.h.HandleAction(action, ctx)
}
