package plugin

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dshills/listedit/internal/plugin/lua"
)

// Binder applies key bindings declared in plugin manifests.
type Binder interface {
	Bind(key, action string) error
}

// StateFactory creates the Lua state a plugin runs in. The factory installs
// whatever modules plugins may require.
type StateFactory func() *lua.State

// Plugin is a loaded plugin.
type Plugin struct {
	Info  *PluginInfo
	state *lua.State
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return p.Info.Name
}

// State returns the plugin's Lua state.
func (p *Plugin) State() *lua.State {
	return p.state
}

// Manager loads plugins and owns their Lua states.
type Manager struct {
	mu sync.RWMutex

	loader   *Loader
	newState StateFactory
	binder   Binder

	// Loaded plugins by name
	plugins map[string]*Plugin

	// Plugin load order (for deterministic iteration)
	loadOrder []string

	eventHandlers []EventHandler
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLoader sets the loader used to find plugins.
func WithLoader(l *Loader) ManagerOption {
	return func(m *Manager) {
		m.loader = l
	}
}

// WithBinder applies manifest key bindings through b.
func WithBinder(b Binder) ManagerOption {
	return func(m *Manager) {
		m.binder = b
	}
}

// EventHandler handles plugin manager events. Panics in handlers are
// recovered.
type EventHandler func(event ManagerEvent)

// ManagerEvent represents a plugin manager event.
type ManagerEvent struct {
	Type   ManagerEventType
	Plugin string
	Error  error
}

// ManagerEventType is the type of manager event.
type ManagerEventType int

const (
	// EventPluginLoaded is emitted when a plugin is loaded.
	EventPluginLoaded ManagerEventType = iota
	// EventPluginUnloaded is emitted when a plugin is unloaded.
	EventPluginUnloaded
	// EventPluginError is emitted when a plugin fails to load.
	EventPluginError
)

// String returns a string representation of the event type.
func (t ManagerEventType) String() string {
	switch t {
	case EventPluginLoaded:
		return "loaded"
	case EventPluginUnloaded:
		return "unloaded"
	case EventPluginError:
		return "error"
	default:
		return "unknown"
	}
}

// NewManager creates a plugin manager whose plugins run in states made by
// newState.
func NewManager(newState StateFactory, opts ...ManagerOption) *Manager {
	m := &Manager{
		newState: newState,
		plugins:  make(map[string]*Plugin),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.loader == nil {
		m.loader = NewLoader()
	}
	return m
}

// Discover searches for available plugins.
func (m *Manager) Discover() ([]*PluginInfo, error) {
	return m.loader.Discover()
}

// Load finds a plugin by name, runs its entry point and applies the key
// bindings from its manifest.
func (m *Manager) Load(ctx context.Context, name string) (*Plugin, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	_, exists := m.plugins[name]
	m.mu.RUnlock()
	if exists {
		return nil, fmt.Errorf("plugin %q: %w", name, ErrAlreadyLoaded)
	}

	info, err := m.loader.FindPlugin(name)
	if err != nil {
		return nil, err
	}
	p, err := m.load(info)
	if err != nil {
		m.emitEvent(ManagerEvent{Type: EventPluginError, Plugin: name, Error: err})
		return p, err
	}
	m.emitEvent(ManagerEvent{Type: EventPluginLoaded, Plugin: name})
	return p, nil
}

func (m *Manager) load(info *PluginInfo) (*Plugin, error) {
	if info.Error != nil {
		return nil, info.Error
	}

	state := m.newState()
	if err := state.DoFile(info.Manifest.MainPath()); err != nil {
		state.Close()
		info.State, info.Error = StateError, err
		return nil, fmt.Errorf("failed to load plugin %q: %w", info.Name, err)
	}

	var bindErrs []error
	if m.binder != nil {
		for key, action := range info.Manifest.Keys {
			if err := m.binder.Bind(key, action); err != nil {
				bindErrs = append(bindErrs, err)
			}
		}
	}

	p := &Plugin{Info: info, state: state}

	m.mu.Lock()
	if _, exists := m.plugins[info.Name]; exists {
		m.mu.Unlock()
		state.Close()
		return nil, fmt.Errorf("plugin %q: %w", info.Name, ErrAlreadyLoaded)
	}
	m.plugins[info.Name] = p
	m.loadOrder = append(m.loadOrder, info.Name)
	m.mu.Unlock()

	info.State = StateLoaded
	if len(bindErrs) > 0 {
		// The plugin runs; only its bindings are incomplete.
		return p, fmt.Errorf("plugin %q keys: %w", info.Name, errors.Join(bindErrs...))
	}
	return p, nil
}

// LoadAll loads every discovered plugin. A plugin that fails does not stop
// the others; all failures are returned together.
func (m *Manager) LoadAll(ctx context.Context) error {
	plugins, err := m.loader.Discover()
	var loadErrors []error
	if err != nil {
		loadErrors = append(loadErrors, err)
	}

	for _, info := range plugins {
		if ctx.Err() != nil {
			loadErrors = append(loadErrors, ctx.Err())
			break
		}
		m.mu.RLock()
		_, exists := m.plugins[info.Name]
		m.mu.RUnlock()
		if exists {
			continue
		}
		if _, err := m.load(info); err != nil {
			m.emitEvent(ManagerEvent{Type: EventPluginError, Plugin: info.Name, Error: err})
			loadErrors = append(loadErrors, fmt.Errorf("%s: %w", info.Name, err))
			continue
		}
		m.emitEvent(ManagerEvent{Type: EventPluginLoaded, Plugin: info.Name})
	}

	if len(loadErrors) > 0 {
		return fmt.Errorf("failed to load %d plugins: %w", len(loadErrors), errors.Join(loadErrors...))
	}
	return nil
}

// Unload closes a plugin's Lua state. Key bindings it added stay bound.
func (m *Manager) Unload(name string) error {
	m.mu.Lock()
	p, ok := m.plugins[name]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrPluginNotFound, name)
	}
	delete(m.plugins, name)
	m.removeFromLoadOrder(name)
	m.mu.Unlock()

	p.state.Close()
	p.Info.State = StateUnloaded
	m.emitEvent(ManagerEvent{Type: EventPluginUnloaded, Plugin: name})
	return nil
}

// Close unloads all plugins in reverse load order.
func (m *Manager) Close() {
	m.mu.RLock()
	names := make([]string, len(m.loadOrder))
	copy(names, m.loadOrder)
	m.mu.RUnlock()

	for i := len(names) - 1; i >= 0; i-- {
		_ = m.Unload(names[i])
	}
}

// Get returns a loaded plugin by name.
func (m *Manager) Get(name string) (*Plugin, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.plugins[name]
	return p, ok
}

// List returns loaded plugins in load order.
func (m *Manager) List() []*Plugin {
	m.mu.RLock()
	defer m.mu.RUnlock()
	list := make([]*Plugin, 0, len(m.loadOrder))
	for _, name := range m.loadOrder {
		list = append(list, m.plugins[name])
	}
	return list
}

// Count returns the number of loaded plugins.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.plugins)
}

// Subscribe registers an event handler and returns a function that removes
// it.
func (m *Manager) Subscribe(handler EventHandler) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.eventHandlers = append(m.eventHandlers, handler)
	idx := len(m.eventHandlers) - 1
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if idx < len(m.eventHandlers) {
			m.eventHandlers[idx] = nil
		}
	}
}

// Loader returns the underlying loader.
func (m *Manager) Loader() *Loader {
	return m.loader
}

// emitEvent calls handlers outside any lock, recovering panics.
func (m *Manager) emitEvent(event ManagerEvent) {
	m.mu.RLock()
	handlers := make([]EventHandler, len(m.eventHandlers))
	copy(handlers, m.eventHandlers)
	m.mu.RUnlock()

	for _, handler := range handlers {
		if handler == nil {
			continue
		}
		func() {
			defer func() {
				_ = recover()
			}()
			handler(event)
		}()
	}
}

// removeFromLoadOrder must be called with mu held.
func (m *Manager) removeFromLoadOrder(name string) {
	for i, n := range m.loadOrder {
		if n == name {
			m.loadOrder = append(m.loadOrder[:i], m.loadOrder[i+1:]...)
			return
		}
	}
}
