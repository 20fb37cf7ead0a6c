package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/listedit/internal/app"
)

func TestReplayTestdata(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "internal", "scenario", "testdata", "*.yaml"))
	if err != nil || len(paths) == 0 {
		t.Fatalf("no scenario files: %v", err)
	}

	var out bytes.Buffer
	if err := runReplay(context.Background(), &out, app.NullLogger, paths); err != nil {
		t.Fatalf("replay: %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), " 0 failed") {
		t.Errorf("summary missing: %s", out.String())
	}
}

func TestReplayReportsFailures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	data := `scenarios:
  - name: expects the wrong bullet
    lines: ["- one"]
    cursor: {line: 1, end: true}
    steps:
      - key: Enter
    expect:
      lines: ["- one", "+ "]
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	err := runReplay(context.Background(), &out, app.NullLogger, []string{path})
	var failed errScenariosFailed
	if !errors.As(err, &failed) || failed.failed != 1 || failed.total != 1 {
		t.Fatalf("err = %v", err)
	}
	if !strings.Contains(out.String(), "FAIL") || !strings.Contains(out.String(), `want "+ "`) {
		t.Errorf("output = %s", out.String())
	}
}

func TestReplayMissingFile(t *testing.T) {
	err := runReplay(context.Background(), &bytes.Buffer{}, app.NullLogger, []string{"does-not-exist.yaml"})
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v", err)
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	if err := rootCmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "listedit dev") {
		t.Errorf("output = %q", out.String())
	}
}
