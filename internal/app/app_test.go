package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/listedit/internal/config"
	"github.com/dshills/listedit/internal/input"
)

func newApp(t *testing.T, opts Options) *Application {
	t.Helper()
	app, err := New(opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(app.close)
	return app
}

func typeText(t *testing.T, app *Application, text string) {
	t.Helper()
	res := app.Dispatcher().Dispatch(input.NewAction(input.ActionInsertText).WithText(text))
	if !res.IsOK() {
		t.Fatalf("insert %q: %v", text, res.Err())
	}
}

func press(t *testing.T, app *Application, ev *tcell.EventKey) error {
	t.Helper()
	return app.handleEvent(ev)
}

var enterKey = tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestNewDefaults(t *testing.T) {
	app := newApp(t, Options{})

	if !app.Session().Enabled() {
		t.Error("list editing should be on by default")
	}
	if !app.Document().IsScratch() {
		t.Error("expected scratch document")
	}

	typeText(t, app, "- milk")
	if err := press(t, app, enterKey); err != nil {
		t.Fatal(err)
	}
	if got := app.Document().Engine.Text(); got != "- milk\n- " {
		t.Errorf("text = %q", got)
	}
	if !app.Status().Modified || !app.Status().ListEditing {
		t.Errorf("status = %+v", app.Status())
	}
}

func TestNoListEdit(t *testing.T) {
	app := newApp(t, Options{NoListEdit: true})

	typeText(t, app, "- milk")
	_ = press(t, app, enterKey)
	if got := app.Document().Engine.Text(); got != "- milk\n" {
		t.Errorf("text = %q", got)
	}

	_ = press(t, app, tcell.NewEventKey(tcell.KeyCtrlT, 0, tcell.ModCtrl))
	if !app.Session().Enabled() {
		t.Error("Ctrl+T should turn list editing on")
	}
	if msg := app.Status().Message; msg != "list editing enabled" {
		t.Errorf("message = %q", msg)
	}
}

func TestConfigFile(t *testing.T) {
	path := writeFile(t, "listedit.toml", `
[listedit]
enabled = false

[editor]
auto_indent = false

[keys]
"Alt+t" = "listedit.toggle"
`)
	app := newApp(t, Options{ConfigPath: path})

	if app.Session().Enabled() {
		t.Fatal("config disables list editing")
	}
	_ = press(t, app, tcell.NewEventKey(tcell.KeyRune, 't', tcell.ModAlt))
	if !app.Session().Enabled() {
		t.Error("configured binding should toggle list editing")
	}
}

func TestBadConfigFails(t *testing.T) {
	path := writeFile(t, "listedit.toml", "[editor]\ntab_width = 0\n")
	_, err := New(Options{ConfigPath: path})
	var ie *InitError
	if !errors.As(err, &ie) || ie.Component != "config" {
		t.Errorf("err = %v, want config InitError", err)
	}
	if !errors.Is(err, config.ErrInvalidValue) {
		t.Errorf("err = %v, want ErrInvalidValue", err)
	}
}

func TestSaveAndQuit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.org")
	app := newApp(t, Options{FilePath: path})

	typeText(t, app, "- one")
	if err := app.Execute(input.ActionQuit); !errors.Is(err, ErrUnsavedChanges) {
		t.Fatalf("quit with changes: err = %v", err)
	}
	if !app.Status().IsError {
		t.Error("warning should show as an error")
	}

	if err := app.Execute(input.ActionSave); err != nil {
		t.Fatalf("save: %v", err)
	}
	if msg := app.Status().Message; msg != "wrote notes.org" {
		t.Errorf("message = %q", msg)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "- one" {
		t.Fatalf("file = %q, %v", data, err)
	}

	if err := app.Execute(input.ActionQuit); !errors.Is(err, ErrQuit) {
		t.Errorf("quit after save: err = %v", err)
	}
}

func TestQuitTwiceDiscards(t *testing.T) {
	app := newApp(t, Options{})
	typeText(t, app, "x")

	ctrlQ := tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl)
	if err := press(t, app, ctrlQ); err != nil {
		t.Fatalf("first quit: %v", err)
	}
	if err := press(t, app, ctrlQ); !errors.Is(err, ErrQuit) {
		t.Errorf("second quit: err = %v", err)
	}
}

func TestQuitDisarmedByOtherCommand(t *testing.T) {
	app := newApp(t, Options{})
	typeText(t, app, "x")

	_ = app.Execute(input.ActionQuit)
	typeText(t, app, "y")
	app.dispatch(input.NewAction(input.ActionUndo))
	if err := app.Execute(input.ActionQuit); !errors.Is(err, ErrUnsavedChanges) {
		t.Errorf("err = %v, want a fresh warning", err)
	}
}

func TestSaveScratchFails(t *testing.T) {
	app := newApp(t, Options{})
	if err := app.Execute(input.ActionSave); !errors.Is(err, ErrNoFilePath) {
		t.Errorf("err = %v", err)
	}
}

func TestReadOnly(t *testing.T) {
	path := writeFile(t, "notes.org", "- one")
	app := newApp(t, Options{FilePath: path, ReadOnly: true})

	res := app.Dispatcher().Dispatch(input.NewAction(input.ActionInsertNewline))
	if !res.IsError() {
		t.Error("edit should be rejected")
	}
	if got := app.Document().Engine.Text(); got != "- one" {
		t.Errorf("text = %q", got)
	}
}

func TestScript(t *testing.T) {
	script := writeFile(t, "init.lua", `
local le = require("listedit")
le.disable()
le.bind("Alt+x", "listedit.toggle")
`)
	app := newApp(t, Options{ScriptPath: script})

	if app.Session().Enabled() {
		t.Error("script should disable list editing")
	}
	_ = press(t, app, tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt))
	if !app.Session().Enabled() {
		t.Error("script binding should toggle list editing")
	}
}

func TestScriptErrorFails(t *testing.T) {
	script := writeFile(t, "init.lua", "error('boom')")
	_, err := New(Options{ScriptPath: script})
	var ie *InitError
	if !errors.As(err, &ie) || ie.Component != "script" {
		t.Errorf("err = %v, want script InitError", err)
	}
}

func TestPlugins(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"quiet.lua":        `require("listedit").disable()`,
		"broken.lua":       `error("boom")`,
		"keys/init.lua":    ``,
		"keys/plugin.toml": "name = \"keys\"\n[keys]\n\"Alt+k\" = \"listedit.toggle\"\n",
	} {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	app := newApp(t, Options{PluginDirs: []string{dir}})

	if got := app.Plugins().Count(); got != 2 {
		t.Errorf("loaded %d plugins, want 2", got)
	}
	if app.Session().Enabled() {
		t.Error("plugin should disable list editing")
	}
	st := app.Status()
	if !st.IsError || !strings.Contains(st.Message, "broken") {
		t.Errorf("status = %+v, want broken plugin reported", st)
	}
	_ = press(t, app, tcell.NewEventKey(tcell.KeyRune, 'k', tcell.ModAlt))
	if !app.Session().Enabled() {
		t.Error("manifest binding should toggle list editing")
	}
}

func TestApplyConfig(t *testing.T) {
	var logs bytes.Buffer
	app := newApp(t, Options{LogOutput: &logs})

	cfg := config.Default()
	cfg.ListEdit.Enabled = false
	cfg.ListEdit.SplitLine = false
	cfg.Log.Level = "debug"
	cfg.Keys = map[string]string{"Alt+t": input.ActionToggleLists}
	app.applyConfig(cfg)

	if app.Session().Enabled() {
		t.Error("reload should disable list editing")
	}
	if app.Session().Options().SplitLine {
		t.Error("reload should update options")
	}
	if app.Logger().Level() != LogLevelDebug {
		t.Error("reload should update log level")
	}
	if msg := app.Status().Message; msg != "config: list editing off" {
		t.Errorf("message = %q", msg)
	}
	if app.Config() != cfg {
		t.Error("Config() should return the reloaded config")
	}

	ev, _ := input.ParseKey("Alt+t")
	if a, ok := app.Keymap().Lookup(ev); !ok || a.Name != input.ActionToggleLists {
		t.Error("reloaded key binding missing")
	}
	if !strings.Contains(logs.String(), "list editing disabled") {
		t.Errorf("logs = %q", logs.String())
	}
}

func TestApplyConfigRespectsFlags(t *testing.T) {
	app := newApp(t, Options{NoListEdit: true, LogLevel: "error"})

	cfg := config.Default()
	cfg.Log.Level = "debug"
	app.applyConfig(cfg)

	if app.Session().Enabled() {
		t.Error("--no-listedit should win over config")
	}
	if app.Logger().Level() != LogLevelError {
		t.Error("--log-level should win over config")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	screen.SetSize(40, 10)

	path := writeFile(t, "notes.org", "- one\n- two")
	app, err := New(Options{FilePath: path, Screen: screen})
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
