package hook

import (
	"slices"

	"github.com/dshills/listedit/internal/dispatcher/execctx"
	"github.com/dshills/listedit/internal/dispatcher/handler"
	"github.com/dshills/listedit/internal/input"
)

// Priorities of the built-in hooks and of feature advice.
const (
	PriorityAudit      = 1000
	PriorityCountLimit = 900
	PriorityReadOnly   = 800
	PriorityFeature    = 100
)

// Logger is what AuditHook writes to.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// AuditHook logs every action on the way in and its outcome on the way
// out. Failures are logged at error level, everything else at debug.
type AuditHook struct {
	logger Logger
}

// NewAuditHook returns an audit hook. A nil logger makes it a no-op.
func NewAuditHook(logger Logger) *AuditHook {
	return &AuditHook{logger: logger}
}

func (h *AuditHook) Name() string  { return "audit" }
func (h *AuditHook) Priority() int { return PriorityAudit }

func (h *AuditHook) PreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool {
	if h.logger != nil {
		h.logger.Debug("dispatch", "action", action.Name, "source", action.Source.String(), "count", ctx.Count)
	}
	return true
}

func (h *AuditHook) PostDispatch(action *input.Action, _ *execctx.ExecutionContext, result *handler.Result) {
	switch {
	case h.logger == nil:
	case result.IsError():
		h.logger.Error("dispatch failed", "action", action.Name, "error", result.Error)
	default:
		h.logger.Debug("dispatched", "action", action.Name, "status", result.Status.String())
	}
}

// CountLimitHook clamps repeat counts so a stray prefix cannot run a
// command millions of times.
type CountLimitHook struct {
	max int
}

// NewCountLimitHook returns a hook clamping counts to max. Zero disables it.
func NewCountLimitHook(max int) *CountLimitHook {
	return &CountLimitHook{max: max}
}

func (h *CountLimitHook) Name() string  { return "count-limit" }
func (h *CountLimitHook) Priority() int { return PriorityCountLimit }

func (h *CountLimitHook) PreDispatch(_ *input.Action, ctx *execctx.ExecutionContext) bool {
	if h.max > 0 {
		ctx.Count = min(ctx.Count, h.max)
	}
	return true
}

// ReadOnlyHook cancels actions in the given namespaces while the context
// is read-only. Motions and list editing toggles stay available.
type ReadOnlyHook struct {
	namespaces []string
}

// NewReadOnlyHook guards the listed namespaces, or "editor" when none are
// given.
func NewReadOnlyHook(namespaces ...string) *ReadOnlyHook {
	if len(namespaces) == 0 {
		namespaces = []string{"editor"}
	}
	return &ReadOnlyHook{namespaces: namespaces}
}

func (h *ReadOnlyHook) Name() string  { return "read-only" }
func (h *ReadOnlyHook) Priority() int { return PriorityReadOnly }

func (h *ReadOnlyHook) PreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool {
	return !ctx.ReadOnly || !slices.Contains(h.namespaces, action.Namespace())
}
