package lua_test

import (
	"testing"

	"github.com/dshills/listedit/internal/dispatcher"
	"github.com/dshills/listedit/internal/dispatcher/handlers/editor"
	"github.com/dshills/listedit/internal/engine"
	"github.com/dshills/listedit/internal/input"
	"github.com/dshills/listedit/internal/listedit"
	"github.com/dshills/listedit/internal/plugin/lua"
)

type testEditor struct {
	*dispatcher.Dispatcher
	*engine.Engine
	keys *input.Keymap
}

func (e *testEditor) Bind(key, action string) error {
	return e.keys.Bind(key, action)
}

func setup(t *testing.T, text string) (*lua.State, *testEditor, *listedit.Session) {
	t.Helper()
	eng := engine.New(engine.WithContent(text))
	eng.SetCursor(eng.Len())

	d := dispatcher.NewWithDefaults()
	d.SetEngine(eng)
	d.RegisterNamespace(editor.NewCombinedHandler(false))
	session := listedit.NewSession(d.Hooks())

	ed := &testEditor{Dispatcher: d, Engine: eng, keys: input.NewKeymap()}
	s := lua.NewState()
	t.Cleanup(s.Close)
	lua.NewModule(ed, session).Install(s)
	return s, ed, session
}

func TestModuleToggle(t *testing.T) {
	s, _, session := setup(t, "")

	if err := s.DoString(`
		local le = require("listedit")
		assert(le.enabled() == false)
		assert(le.enable() == true)
		assert(le.enable() == false)
	`); err != nil {
		t.Fatal(err)
	}
	if !session.Enabled() {
		t.Error("session should be enabled from Lua")
	}
	if err := s.DoString(`assert(listedit.toggle() == false)`); err != nil {
		t.Fatal(err)
	}
	if session.Enabled() {
		t.Error("toggle should disable")
	}
}

func TestModuleEditing(t *testing.T) {
	s, ed, _ := setup(t, "")

	err := s.DoString(`
		listedit.enable()
		assert(listedit.insert("- one") == "ok")
		assert(listedit.extend() == "ok")
		listedit.insert("two")
		listedit.extend()
		status = listedit.extend()
		lines = listedit.lines()
	`)
	if err != nil {
		t.Fatal(err)
	}
	if want := "- one\n- two\n"; ed.Text() != want {
		t.Errorf("text = %q, want %q", ed.Text(), want)
	}
}

func TestModuleDispatchAndCursor(t *testing.T) {
	s, ed, _ := setup(t, "ab")

	err := s.DoString(`
		listedit.set_cursor(1)
		assert(listedit.cursor() == 1)
		assert(listedit.dispatch("editor.insertText", "X") == "ok")
		assert(listedit.dispatch("editor.insertText", {text = "Y"}, 2) == "ok")
		local status, msg = listedit.dispatch("nope.nothing")
		assert(status == "error" and msg ~= nil)
		assert(listedit.delete_back() == "ok")
		assert(listedit.text() == "aXYb")
	`)
	if err != nil {
		t.Fatal(err)
	}
	if ed.CursorOffset() != 3 {
		t.Errorf("cursor = %d, want 3", ed.CursorOffset())
	}
}

func TestModuleBind(t *testing.T) {
	s, ed, _ := setup(t, "")

	if err := s.DoString(`
		assert(listedit.bind("ctrl+l", "listedit.toggle") == true)
		local ok, msg = listedit.bind("hyper+x", "app.quit")
		assert(ok == false and msg ~= nil)
	`); err != nil {
		t.Fatal(err)
	}
	ev, _ := input.ParseKey("ctrl+l")
	if a, ok := ed.keys.Lookup(ev); !ok || a.Name != "listedit.toggle" {
		t.Errorf("lookup = %q/%v", a.Name, ok)
	}
}
