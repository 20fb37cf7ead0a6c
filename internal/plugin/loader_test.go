package plugin

import (
	"errors"
	"path/filepath"
	"slices"
	"testing"
)

// pluginTree lays out plugins in two search paths:
//
//	first/
//	    alpha.lua
//	    beta/init.lua
//	    gamma/plugin.toml   (name "gamma-renamed", main "main.lua")
//	    gamma/main.lua
//	    empty/
//	second/
//	    alpha.lua           (shadowed)
//	    delta/plugin.lua
func pluginTree(t *testing.T) (first, second string) {
	t.Helper()
	root := t.TempDir()
	first = filepath.Join(root, "first")
	second = filepath.Join(root, "second")

	writeFile(t, filepath.Join(first, "alpha.lua"), "x = 1")
	writeFile(t, filepath.Join(first, "beta", "init.lua"), "x = 2")
	writeFile(t, filepath.Join(first, "gamma", ManifestFile), "name = \"gamma-renamed\"\nmain = \"main.lua\"\n")
	writeFile(t, filepath.Join(first, "gamma", "main.lua"), "x = 3")
	writeFile(t, filepath.Join(first, "empty", "README"), "nothing here")
	writeFile(t, filepath.Join(second, "alpha.lua"), "x = 4")
	writeFile(t, filepath.Join(second, "delta", "plugin.lua"), "x = 5")
	return first, second
}

func TestDiscover(t *testing.T) {
	first, second := pluginTree(t)
	l := NewLoader(WithPaths(first, filepath.Join(t.TempDir(), "missing"), second))

	plugins, err := l.Discover()
	if err != nil {
		t.Fatal(err)
	}

	var names []string
	for _, p := range plugins {
		names = append(names, p.Name)
	}
	want := []string{"alpha", "beta", "delta", "empty", "gamma-renamed"}
	if !slices.Equal(names, want) {
		t.Fatalf("names = %v, want %v", names, want)
	}

	alpha, _ := l.Get("alpha")
	if alpha.Manifest.MainPath() != filepath.Join(first, "alpha.lua") {
		t.Errorf("alpha should come from the first path, got %s", alpha.Manifest.MainPath())
	}
	delta, _ := l.Get("delta")
	if delta.Manifest.Main != "plugin.lua" {
		t.Errorf("delta main = %q", delta.Manifest.Main)
	}
	gamma, _ := l.Get("gamma-renamed")
	if gamma.Manifest.MainPath() != filepath.Join(first, "gamma", "main.lua") {
		t.Errorf("gamma main path = %s", gamma.Manifest.MainPath())
	}

	empty, _ := l.Get("empty")
	if !errors.Is(empty.Error, ErrNoEntryPoint) || empty.State != StateError {
		t.Errorf("empty: state %v, error %v", empty.State, empty.Error)
	}
	if errs := l.Errors(); len(errs) != 1 || errs[0].Name != "empty" {
		t.Errorf("Errors() = %v", errs)
	}
	if got := l.ListNames(); !slices.Equal(got, want) {
		t.Errorf("ListNames() = %v", got)
	}
}

func TestDiscoverManifestErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad", ManifestFile), `name = "Bad Name"`)
	writeFile(t, filepath.Join(dir, "nomain", ManifestFile), `name = "nomain"`)

	l := NewLoader(WithPaths(dir))
	if _, err := l.Discover(); err != nil {
		t.Fatal(err)
	}

	bad, ok := l.Get("bad")
	if !ok || !errors.Is(bad.Error, ErrInvalidName) {
		t.Errorf("bad: %+v", bad)
	}
	nomain, ok := l.Get("nomain")
	if !ok || !errors.Is(nomain.Error, ErrNoEntryPoint) {
		t.Errorf("nomain: %+v", nomain)
	}
}

func TestFindPlugin(t *testing.T) {
	first, second := pluginTree(t)
	l := NewLoader(WithPaths(first, second))

	info, err := l.FindPlugin("delta")
	if err != nil {
		t.Fatal(err)
	}
	if info.Path != filepath.Join(second, "delta") {
		t.Errorf("Path = %s", info.Path)
	}

	info, err = l.FindPlugin("alpha")
	if err != nil {
		t.Fatal(err)
	}
	if info.Path != first {
		t.Errorf("alpha Path = %s, want %s", info.Path, first)
	}

	if _, err := l.FindPlugin("nope"); !errors.Is(err, ErrPluginNotFound) {
		t.Errorf("got %v, want ErrPluginNotFound", err)
	}
}

func TestLoaderPaths(t *testing.T) {
	l := NewLoader(WithPaths("a"))
	l.AddPath("b")
	if got := l.Paths(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Paths() = %v", got)
	}
	if len(DefaultPluginPaths()) == 0 {
		t.Error("expected default plugin paths")
	}
}
