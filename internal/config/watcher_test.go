package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func startWatcher(t *testing.T, w *Watcher) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("Run: %v", err)
		}
	})

	select {
	case <-w.Ready():
	case err := <-done:
		t.Fatalf("watcher exited early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher not ready")
	}
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	path := writeFile(t, t.TempDir(), "[listedit]\nenabled = true\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	w := NewWatcher(path, cfg, WithDebounce(20*time.Millisecond))
	got := make(chan *Config, 4)
	w.Subscribe(func(c *Config) { got <- c })
	startWatcher(t, w)

	if err := os.WriteFile(path, []byte("[listedit]\nenabled = false\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case c := <-got:
		if c.ListEdit.Enabled {
			t.Error("reloaded config should be disabled")
		}
		if w.Current() != c {
			t.Error("Current should return the reloaded config")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload")
	}
}

func TestWatcherKeepsConfigOnBadFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "[editor]\ntab_width = 2\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	w := NewWatcher(path, cfg, WithDebounce(20*time.Millisecond))
	got := make(chan *Config, 4)
	w.Subscribe(func(c *Config) { got <- c })
	startWatcher(t, w)

	if err := os.WriteFile(path, []byte("[editor\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-got:
		t.Fatal("subscribers should not see a broken file")
	case <-time.After(300 * time.Millisecond):
	}
	if w.Current() != cfg {
		t.Error("previous config should stay current")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "")
	w := NewWatcher(path, Default(), WithDebounce(20*time.Millisecond))
	got := make(chan *Config, 4)
	w.Subscribe(func(c *Config) { got <- c })
	startWatcher(t, w)

	if err := os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x = 1"), 0o644); err != nil {
		t.Fatal(err)
	}
	select {
	case <-got:
		t.Fatal("unrelated file triggered a reload")
	case <-time.After(300 * time.Millisecond):
	}
}
