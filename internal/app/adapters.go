package app

import (
	"github.com/dshills/listedit/internal/dispatcher/handler"
	"github.com/dshills/listedit/internal/engine/buffer"
	"github.com/dshills/listedit/internal/input"
)

// scriptEditor is the view of the application given to Lua scripts.
type scriptEditor struct {
	app *Application
}

func (e *scriptEditor) Dispatch(action input.Action) handler.Result {
	return e.app.dispatch(action)
}

func (e *scriptEditor) Text() string {
	return e.app.doc.Engine.Text()
}

func (e *scriptEditor) CursorOffset() buffer.ByteOffset {
	return e.app.doc.Engine.CursorOffset()
}

func (e *scriptEditor) SetCursor(offset buffer.ByteOffset) {
	eng := e.app.doc.Engine
	eng.SetCursor(min(max(offset, 0), eng.Len()))
}

func (e *scriptEditor) Bind(key, action string) error {
	return e.app.keys.Bind(key, action)
}
