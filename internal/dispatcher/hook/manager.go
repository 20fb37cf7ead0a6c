package hook

import (
	"cmp"
	"slices"
	"sync"

	"github.com/dshills/listedit/internal/dispatcher/execctx"
	"github.com/dshills/listedit/internal/dispatcher/handler"
	"github.com/dshills/listedit/internal/input"
)

// chain is a list of hooks kept sorted by priority. Names are unique
// within a chain.
type chain[H Hook] struct {
	items []H
	// descending puts higher priorities first.
	descending bool
}

func (c *chain[H]) put(h H) {
	c.items = slices.DeleteFunc(c.items, func(x H) bool { return x.Name() == h.Name() })
	c.items = append(c.items, h)
	slices.SortStableFunc(c.items, func(a, b H) int {
		if c.descending {
			return cmp.Compare(b.Priority(), a.Priority())
		}
		return cmp.Compare(a.Priority(), b.Priority())
	})
}

func (c *chain[H]) remove(name string) bool {
	n := len(c.items)
	c.items = slices.DeleteFunc(c.items, func(x H) bool { return x.Name() == name })
	return len(c.items) != n
}

func (c *chain[H]) has(name string) bool {
	return slices.ContainsFunc(c.items, func(x H) bool { return x.Name() == name })
}

func (c *chain[H]) names() []string {
	names := make([]string, len(c.items))
	for i, h := range c.items {
		names[i] = h.Name()
	}
	return names
}

// snapshot copies the items so they can be run without the lock.
func (c *chain[H]) snapshot() []H {
	return slices.Clone(c.items)
}

// Manager holds the global hooks and the per-command advice of a
// dispatcher.
type Manager struct {
	mu     sync.RWMutex
	pre    chain[PreDispatchHook]
	post   chain[PostDispatchHook]
	advice map[string]*chain[Advice]
}

// NewManager returns an empty manager.
func NewManager() *Manager {
	return &Manager{
		pre:    chain[PreDispatchHook]{descending: true},
		post:   chain[PostDispatchHook]{},
		advice: make(map[string]*chain[Advice]),
	}
}

// RegisterPre adds or replaces a pre-dispatch hook.
func (m *Manager) RegisterPre(h PreDispatchHook) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pre.put(h)
}

// RegisterPost adds or replaces a post-dispatch hook.
func (m *Manager) RegisterPost(h PostDispatchHook) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.post.put(h)
}

// Register adds h as a pre-hook, a post-hook or both, depending on which
// interfaces it implements.
func (m *Manager) Register(h Hook) {
	if pre, ok := h.(PreDispatchHook); ok {
		m.RegisterPre(pre)
	}
	if post, ok := h.(PostDispatchHook); ok {
		m.RegisterPost(post)
	}
}

// Unregister removes a global hook from both lists.
func (m *Manager) Unregister(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	fromPre := m.pre.remove(name)
	fromPost := m.post.remove(name)
	return fromPre || fromPost
}

// RegisterAdvice attaches a to command, replacing advice of the same name.
func (m *Manager) RegisterAdvice(command string, a Advice) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.advice[command]
	if !ok {
		c = &chain[Advice]{descending: true}
		m.advice[command] = c
	}
	c.put(a)
}

// UnregisterAdvice detaches named advice from command.
func (m *Manager) UnregisterAdvice(command, name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.advice[command]
	if !ok || !c.remove(name) {
		return false
	}
	if len(c.items) == 0 {
		delete(m.advice, command)
	}
	return true
}

func (m *Manager) HasAdvice(command, name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.advice[command]
	return ok && c.has(name)
}

// AdviceNames lists the advice on command, outermost first.
func (m *Manager) AdviceNames(command string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.advice[command]; ok {
		return c.names()
	}
	return []string{}
}

// Wrap builds the advice chain for action around base. The chain is fixed
// when Wrap returns; advice registered later applies to the next action.
func (m *Manager) Wrap(action input.Action, ctx *execctx.ExecutionContext, base Next) Next {
	m.mu.RLock()
	var list []Advice
	if c, ok := m.advice[action.Name]; ok {
		list = c.snapshot()
	}
	m.mu.RUnlock()

	next := base
	for _, a := range slices.Backward(list) {
		inner := next
		next = func() handler.Result { return a.Around(action, ctx, inner) }
	}
	return next
}

// RunPreDispatch runs pre-hooks, highest priority first, and stops at the
// first one that cancels.
func (m *Manager) RunPreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool {
	m.mu.RLock()
	hooks := m.pre.snapshot()
	m.mu.RUnlock()

	for _, h := range hooks {
		if !h.PreDispatch(action, ctx) {
			return false
		}
	}
	return true
}

// RunPostDispatch runs post-hooks, lowest priority first, so the highest
// sees the final result.
func (m *Manager) RunPostDispatch(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
	m.mu.RLock()
	hooks := m.post.snapshot()
	m.mu.RUnlock()

	for _, h := range hooks {
		h.PostDispatch(action, ctx, result)
	}
}

func (m *Manager) PreHookNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pre.names()
}

func (m *Manager) PostHookNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.post.names()
}

// Clear removes all hooks and advice.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pre.items = nil
	m.post.items = nil
	clear(m.advice)
}
