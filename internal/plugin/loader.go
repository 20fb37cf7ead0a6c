package plugin

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// State is where a discovered plugin is in its lifecycle.
type State int

const (
	StateUnloaded State = iota // found, not run
	StateLoaded                // entry point ran
	StateError                 // cannot be inspected or failed to run
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoaded:
		return "loaded"
	case StateError:
		return "error"
	}
	return "unknown"
}

// PluginInfo describes a plugin found on disk.
type PluginInfo struct {
	Name     string
	Path     string // plugin directory, or the directory holding a single-file plugin
	Manifest *Manifest
	State    State
	Error    error
}

// Loader finds plugins in an ordered list of directories. When two
// directories hold a plugin of the same name, the earlier one wins.
type Loader struct {
	paths      []string
	discovered map[string]*PluginInfo
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithPaths replaces the search paths.
func WithPaths(paths ...string) LoaderOption {
	return func(l *Loader) {
		l.paths = paths
	}
}

// NewLoader returns a loader searching DefaultPluginPaths unless WithPaths
// is given.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		paths:      DefaultPluginPaths(),
		discovered: make(map[string]*PluginInfo),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// DefaultPluginPaths returns the user's plugin directory followed by the
// project's .listedit/plugins.
func DefaultPluginPaths() []string {
	var paths []string
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "listedit", "plugins"))
	}
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".listedit", "plugins"))
	}
	return paths
}

// Paths returns the search paths in order.
func (l *Loader) Paths() []string {
	return l.paths
}

// AddPath appends a search path.
func (l *Loader) AddPath(path string) {
	l.paths = append(l.paths, path)
}

// Discover rescans every search path and returns the plugins sorted by
// name. Missing directories are skipped; unreadable ones are reported in
// the error alongside the plugins that were found.
func (l *Loader) Discover() ([]*PluginInfo, error) {
	l.discovered = make(map[string]*PluginInfo)

	var errs []error
	for _, dir := range l.paths {
		found, err := scan(dir)
		if err != nil {
			errs = append(errs, err)
		}
		for _, info := range found {
			if _, dup := l.discovered[info.Name]; !dup {
				l.discovered[info.Name] = info
			}
		}
	}

	plugins := make([]*PluginInfo, 0, len(l.discovered))
	for _, name := range l.ListNames() {
		plugins = append(plugins, l.discovered[name])
	}
	return plugins, errors.Join(errs...)
}

// scan lists the plugins directly inside dir.
func scan(dir string) ([]*PluginInfo, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var found []*PluginInfo
	for _, e := range entries {
		switch {
		case e.IsDir():
			found = append(found, inspectDir(e.Name(), filepath.Join(dir, e.Name())))
		case filepath.Ext(e.Name()) == ".lua":
			found = append(found, singleFile(dir, e.Name()))
		}
	}
	return found, nil
}

func singleFile(dir, file string) *PluginInfo {
	name := strings.TrimSuffix(file, ".lua")
	return &PluginInfo{
		Name:     name,
		Path:     dir,
		Manifest: newMinimalManifest(name, dir, file),
	}
}

// inspectDir reads a plugin directory. A plugin.toml decides the name and
// entry point; without one, init.lua or plugin.lua is the entry point.
func inspectDir(name, dir string) *PluginInfo {
	info := &PluginInfo{Name: name, Path: dir}
	fail := func(err error) *PluginInfo {
		info.State, info.Error = StateError, err
		return info
	}

	manifestPath := filepath.Join(dir, ManifestFile)
	if _, err := os.Stat(manifestPath); err == nil {
		m, err := LoadManifest(manifestPath)
		if err != nil {
			return fail(fmt.Errorf("invalid manifest: %w", err))
		}
		info.Name, info.Manifest = m.Name, m
		if _, err := os.Stat(m.MainPath()); err != nil {
			return fail(fmt.Errorf("%w: %s", ErrNoEntryPoint, m.Main))
		}
		return info
	}

	for _, main := range []string{"init.lua", "plugin.lua"} {
		if _, err := os.Stat(filepath.Join(dir, main)); err == nil {
			info.Manifest = newMinimalManifest(name, dir, main)
			return info
		}
	}
	return fail(ErrNoEntryPoint)
}

// Get returns a plugin found by the last Discover or FindPlugin.
func (l *Loader) Get(name string) (*PluginInfo, bool) {
	info, ok := l.discovered[name]
	return info, ok
}

// FindPlugin returns the first loadable plugin called name, searching
// directory plugins before single files in each path.
func (l *Loader) FindPlugin(name string) (*PluginInfo, error) {
	if info, ok := l.discovered[name]; ok {
		return info, nil
	}

	for _, dir := range l.paths {
		if st, err := os.Stat(filepath.Join(dir, name)); err == nil && st.IsDir() {
			if info := inspectDir(name, filepath.Join(dir, name)); info.Error == nil {
				l.discovered[name] = info
				return info, nil
			}
		}
		if _, err := os.Stat(filepath.Join(dir, name+".lua")); err == nil {
			info := singleFile(dir, name+".lua")
			l.discovered[name] = info
			return info, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrPluginNotFound, name)
}

// ListNames returns the names of known plugins, sorted.
func (l *Loader) ListNames() []string {
	names := make([]string, 0, len(l.discovered))
	for name := range l.discovered {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Errors returns the known plugins that cannot be loaded, sorted by name.
func (l *Loader) Errors() []*PluginInfo {
	var errored []*PluginInfo
	for _, name := range l.ListNames() {
		if info := l.discovered[name]; info.Error != nil {
			errored = append(errored, info)
		}
	}
	return errored
}
