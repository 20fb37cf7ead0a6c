package lua

import (
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/listedit/internal/dispatcher/handler"
	"github.com/dshills/listedit/internal/engine/buffer"
	"github.com/dshills/listedit/internal/input"
)

// ModuleName is the name scripts use for the editor module.
const ModuleName = "listedit"

// Editor is the part of the application a script can drive.
type Editor interface {
	Dispatch(action input.Action) handler.Result
	Text() string
	CursorOffset() buffer.ByteOffset
	SetCursor(offset buffer.ByteOffset)
	Bind(key, action string) error
}

// Lists switches list editing on and off.
type Lists interface {
	Enable() bool
	Disable() bool
	Toggle() bool
	Enabled() bool
}

// Module exposes an Editor and its list editing session to Lua.
type Module struct {
	editor Editor
	lists  Lists
}

// NewModule returns the listedit module for editor and lists.
func NewModule(editor Editor, lists Lists) *Module {
	return &Module{editor: editor, lists: lists}
}

// Install registers the module in s.
func (m *Module) Install(s *State) {
	s.RegisterModule(ModuleName, m.funcs())
}

func (m *Module) funcs() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"enable":  m.boolFunc(m.lists.Enable),
		"disable": m.boolFunc(m.lists.Disable),
		"toggle":  m.boolFunc(m.lists.Toggle),
		"enabled": m.boolFunc(m.lists.Enabled),

		"extend": func(L *lua.LState) int {
			return pushResult(L, m.editor.Dispatch(input.NewAction(input.ActionInsertNewline)))
		},
		"delete_back": func(L *lua.LState) int {
			return pushResult(L, m.editor.Dispatch(input.NewAction(input.ActionDeleteCharBack)))
		},
		"insert": func(L *lua.LState) int {
			action := input.NewAction(input.ActionInsertText).WithText(L.CheckString(1))
			return pushResult(L, m.editor.Dispatch(action))
		},
		"dispatch": m.dispatch,
		"bind":     m.bind,

		"text": func(L *lua.LState) int {
			L.Push(lua.LString(m.editor.Text()))
			return 1
		},
		"lines": func(L *lua.LState) int {
			L.Push(NewBridge(L).ToLuaValue(strings.Split(m.editor.Text(), "\n")))
			return 1
		},
		"cursor": func(L *lua.LState) int {
			L.Push(lua.LNumber(m.editor.CursorOffset()))
			return 1
		},
		"set_cursor": func(L *lua.LState) int {
			m.editor.SetCursor(buffer.ByteOffset(L.CheckInt(1)))
			return 0
		},
	}
}

func (m *Module) boolFunc(fn func() bool) lua.LGFunction {
	return func(L *lua.LState) int {
		L.Push(lua.LBool(fn()))
		return 1
	}
}

// dispatch(name [, text | args]) runs any command. A string second
// argument is the command text; a table supplies named arguments.
func (m *Module) dispatch(L *lua.LState) int {
	action := input.NewAction(L.CheckString(1))
	switch arg := L.Get(2).(type) {
	case lua.LString:
		action = action.WithText(string(arg))
	case *lua.LTable:
		if extra, ok := NewBridge(L).ToGoValue(arg).(map[string]interface{}); ok {
			action.Args.Extra = extra
		}
		if text, ok := action.Args.Extra["text"].(string); ok {
			action.Args.Text = text
		}
	}
	if n := L.OptInt(3, 0); n > 0 {
		action = action.WithCount(n)
	}
	return pushResult(L, m.editor.Dispatch(action.WithSource(input.SourcePlugin)))
}

func (m *Module) bind(L *lua.LState) int {
	if err := m.editor.Bind(L.CheckString(1), L.CheckString(2)); err != nil {
		L.Push(lua.LFalse)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LTrue)
	return 1
}

// pushResult returns the status name, plus the error message on failure.
func pushResult(L *lua.LState, r handler.Result) int {
	L.Push(lua.LString(r.Status.String()))
	if r.IsError() {
		L.Push(lua.LString(r.Err().Error()))
		return 2
	}
	return 1
}
