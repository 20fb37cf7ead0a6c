package app

import (
	"context"
	"errors"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/listedit/internal/dispatcher/handler"
	"github.com/dshills/listedit/internal/input"
)

// eventLoop redraws and handles one terminal event at a time until quit
// or ctx is done. Commands never run concurrently.
func (app *Application) eventLoop(ctx context.Context, screen tcell.Screen) error {
	events := make(chan tcell.Event, 64)
	// The poller exits once Run finalizes the screen.
	go pollEvents(screen, events, ctx.Done())

	for {
		app.draw()

		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := app.handleEvent(ev); errors.Is(err, ErrQuit) {
				app.logger.Info("quit")
				return nil
			}
		}
	}
}

// pollEvents forwards screen events until the screen is finalized or done
// is closed.
func pollEvents(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	defer close(events)
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// handleEvent processes one terminal event. It returns ErrQuit when the
// editor should exit.
func (app *Application) handleEvent(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		action, ok := app.keys.Lookup(ev)
		if !ok {
			return nil
		}
		app.dispatch(action)
		if app.quitting() {
			return ErrQuit
		}
	case *tcell.EventResize:
		if app.renderer != nil {
			app.renderer.Screen().Sync()
		}
	}
	return nil
}

// dispatch runs a command and records its outcome for the status line.
func (app *Application) dispatch(action input.Action) handler.Result {
	if action.Name != input.ActionQuit {
		app.mu.Lock()
		app.quitArmed = false
		app.mu.Unlock()
	}

	res := app.dispatcher.Dispatch(action)
	if res.IsError() {
		app.setMessage(res.Err().Error(), true)
	} else {
		app.setMessage(res.Message, false)
	}
	return res
}

func (app *Application) quitting() bool {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.quit
}

// draw renders the current frame.
func (app *Application) draw() {
	if app.renderer == nil {
		return
	}
	eng := app.doc.Engine
	app.renderer.Render(eng, eng.OffsetToPoint(eng.CursorOffset()), app.Status())
}
