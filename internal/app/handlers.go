package app

import (
	"fmt"

	"github.com/dshills/listedit/internal/dispatcher/execctx"
	"github.com/dshills/listedit/internal/dispatcher/handler"
	"github.com/dshills/listedit/internal/input"
)

// handleSave writes the document to its file.
func (app *Application) handleSave(_ input.Action, _ *execctx.ExecutionContext) handler.Result {
	if err := app.doc.Save(); err != nil {
		return handler.Error(err)
	}
	app.logger.Info("document saved", "path", app.doc.Path())
	return handler.SuccessWithMessage(fmt.Sprintf("wrote %s", app.doc.Name()))
}

// handleQuit asks the event loop to exit. With unsaved changes the first
// request only warns; repeating it quits.
func (app *Application) handleQuit(_ input.Action, _ *execctx.ExecutionContext) handler.Result {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.doc.IsModified() && !app.quitArmed {
		app.quitArmed = true
		return handler.Error(fmt.Errorf("%w, quit again to discard", ErrUnsavedChanges))
	}
	app.quit = true
	return handler.Success()
}
