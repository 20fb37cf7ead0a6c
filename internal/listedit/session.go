package listedit

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/listedit/internal/dispatcher/execctx"
	"github.com/dshills/listedit/internal/dispatcher/handler"
	"github.com/dshills/listedit/internal/dispatcher/hook"
	"github.com/dshills/listedit/internal/input"
)

// Advice names as registered with the hook manager.
const (
	AdviceExtend     = "listedit.extend"
	AdviceDeleteBack = "listedit.deleteBack"
)

// ActionToggle flips list editing on and off.
const ActionToggle = input.ActionToggleLists

// AdviceRegistry is where the session installs its advice.
// *hook.Manager satisfies it.
type AdviceRegistry interface {
	RegisterAdvice(command string, a hook.Advice)
	UnregisterAdvice(command, name string) bool
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets the session logger.
func WithLogger(l Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithOptions sets the item creation options.
func WithOptions(opts Options) SessionOption {
	return func(s *Session) {
		s.opts = opts
	}
}

// Session owns the enabled state of list editing for one editor.
type Session struct {
	mu       sync.Mutex
	id       uuid.UUID
	registry AdviceRegistry
	handlers *Handlers
	logger   Logger
	opts     Options
	enabled  bool
}

// NewSession returns a disabled session that installs advice into registry.
func NewSession(registry AdviceRegistry, opts ...SessionOption) *Session {
	s := &Session{
		id:       uuid.New(),
		registry: registry,
		logger:   nopLogger{},
		opts:     DefaultOptions(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.handlers = NewHandlers(s.logger)
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id.String()
}

// Enabled reports whether the advice is installed.
func (s *Session) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// Enable installs the list editing advice. It returns false if list
// editing was already enabled.
func (s *Session) Enable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enableLocked()
}

func (s *Session) enableLocked() bool {
	if s.enabled {
		return false
	}
	s.registry.RegisterAdvice(input.ActionInsertNewline,
		hook.NewAroundFunc(AdviceExtend, hook.PriorityFeature, s.extendAdvice))
	s.registry.RegisterAdvice(input.ActionDeleteCharBack,
		hook.NewAroundFunc(AdviceDeleteBack, hook.PriorityFeature, s.deleteBackAdvice))
	s.enabled = true
	s.logger.Info("list editing enabled", "session", s.id.String())
	return true
}

// Disable removes the list editing advice. It returns false if list
// editing was already disabled.
func (s *Session) Disable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disableLocked()
}

func (s *Session) disableLocked() bool {
	if !s.enabled {
		return false
	}
	s.registry.UnregisterAdvice(input.ActionInsertNewline, AdviceExtend)
	s.registry.UnregisterAdvice(input.ActionDeleteCharBack, AdviceDeleteBack)
	s.enabled = false
	s.logger.Info("list editing disabled", "session", s.id.String())
	return true
}

// SetEnabled enables or disables list editing.
func (s *Session) SetEnabled(on bool) bool {
	if on {
		return s.Enable()
	}
	return s.Disable()
}

// Toggle flips list editing and returns the new state.
func (s *Session) Toggle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.enabled {
		s.disableLocked()
	} else {
		s.enableLocked()
	}
	return s.enabled
}

// Options returns the item creation options.
func (s *Session) Options() Options {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opts
}

// SetOptions replaces the item creation options. It takes effect on the
// next trigger.
func (s *Session) SetOptions(opts Options) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts = opts
}

// ToggleHandler returns the handler for ActionToggle.
func (s *Session) ToggleHandler() handler.Handler {
	return handler.HandlerFunc(func(input.Action, *execctx.ExecutionContext) handler.Result {
		if s.Toggle() {
			return handler.SuccessWithMessage("list editing enabled")
		}
		return handler.SuccessWithMessage("list editing disabled")
	})
}

func (s *Session) extendAdvice(_ input.Action, ctx *execctx.ExecutionContext, next hook.Next) handler.Result {
	return s.run(ctx, next, s.handlers.Extend)
}

func (s *Session) deleteBackAdvice(_ input.Action, ctx *execctx.ExecutionContext, next hook.Next) handler.Result {
	return s.run(ctx, next, s.handlers.DeleteBack)
}

// run adapts a list handler to advice. A repeat count runs the handler
// that many times, each one classifying the cursor afresh and running the
// native command once when it falls through. The result is that of the
// last repetition; a fall-through returns the native result unchanged.
func (s *Session) run(ctx *execctx.ExecutionContext, next hook.Next, fn func(Host, func() error) error) handler.Result {
	if ctx.Engine == nil {
		return handler.Error(ErrNoEngine)
	}

	count := ctx.GetCount()
	if count > 1 {
		saved := ctx.Count
		ctx.Count = 1
		defer func() { ctx.Count = saved }()
	}

	opts := s.Options()
	var result handler.Result
	for range count {
		result = s.once(NewEngineHost(ctx.Engine, opts), next, fn)
		if result.IsError() {
			break
		}
	}
	return result
}

func (s *Session) once(h Host, next hook.Next, fn func(Host, func() error) error) handler.Result {
	var (
		native handler.Result
		called bool
	)
	err := fn(h, func() error {
		native = next()
		called = true
		return native.Err()
	})
	if called {
		return native
	}
	if err != nil {
		return handler.Error(fmt.Errorf("list edit: %w", err))
	}
	return handler.Success()
}
