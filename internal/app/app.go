// Package app wires the editor together: configuration, the document and
// its engine, the command dispatcher with list editing advice, key
// bindings, scripting and the terminal front end.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/listedit/internal/config"
	"github.com/dshills/listedit/internal/dispatcher"
	"github.com/dshills/listedit/internal/input"
	"github.com/dshills/listedit/internal/listedit"
	"github.com/dshills/listedit/internal/plugin"
	"github.com/dshills/listedit/internal/plugin/lua"
	"github.com/dshills/listedit/internal/renderer"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the TOML configuration file. Empty uses defaults and
	// disables live reload.
	ConfigPath string

	// FilePath is the file to edit. Empty opens a scratch buffer.
	FilePath string

	// ScriptPath is a Lua file run after startup.
	ScriptPath string

	// PluginDirs are searched for Lua plugins, first match wins. No
	// plugins are loaded when empty.
	PluginDirs []string

	// LogLevel overrides the configured log level when set.
	LogLevel string

	// LogOutput receives log lines. When nil, logs go to the configured
	// log file, or nowhere.
	LogOutput io.Writer

	// NoListEdit starts with list editing off regardless of configuration.
	NoListEdit bool

	// ReadOnly rejects editing commands.
	ReadOnly bool

	// Screen is used instead of the terminal when set. Run calls Fini on
	// whichever screen it uses.
	Screen tcell.Screen
}

// Application is the running editor.
type Application struct {
	mu sync.Mutex

	opts    Options
	logger  *Logger
	logFile *os.File
	config  *config.Config
	watcher *config.Watcher

	doc        *Document
	dispatcher *dispatcher.Dispatcher
	session    *listedit.Session
	keys       *input.Keymap
	scripts    *lua.State
	plugins    *plugin.Manager
	renderer   *renderer.Renderer

	message   string
	isError   bool
	quitArmed bool
	quit      bool

	running atomic.Bool
}

// New creates an application and initializes every component. Nothing is
// drawn until Run.
func New(opts Options) (*Application, error) {
	app := &Application{opts: opts}
	if err := newBootstrapper(app).bootstrap(); err != nil {
		app.close()
		return nil, err
	}
	return app, nil
}

// Run draws the editor and processes input until quit or ctx is done.
func (app *Application) Run(ctx context.Context) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)
	defer app.close()

	screen := app.opts.Screen
	if screen == nil {
		s, err := renderer.NewTerminalScreen()
		if err != nil {
			return &InitError{Component: "terminal", Err: err}
		}
		screen = s
	}
	app.renderer = renderer.New(screen, renderer.DefaultOptions())

	ctx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	defer wg.Wait()
	defer screen.Fini()
	defer cancel()

	if app.watcher != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := app.watcher.Run(ctx); err != nil {
				app.logger.Error("config watcher stopped", "error", err)
			}
		}()
	}

	return app.eventLoop(ctx, screen)
}

// close releases resources opened by bootstrap.
func (app *Application) close() {
	if app.plugins != nil {
		app.plugins.Close()
	}
	if app.scripts != nil {
		app.scripts.Close()
	}
	if app.logFile != nil {
		defer func() {
			_ = app.logFile.Close()
			app.logFile = nil
		}()
	}
	if app.dispatcher == nil {
		return
	}
	if m := app.dispatcher.Metrics(); m != nil {
		n, errs, panics := m.Totals()
		app.logger.Debug("dispatch totals", "dispatches", n, "errors", errs, "panics", panics)
	}
}

// Document returns the document being edited.
func (app *Application) Document() *Document {
	return app.doc
}

// Dispatcher returns the command dispatcher.
func (app *Application) Dispatcher() *dispatcher.Dispatcher {
	return app.dispatcher
}

// Session returns the list editing session.
func (app *Application) Session() *listedit.Session {
	return app.session
}

// Plugins returns the plugin manager, or nil when no plugin directories
// were given.
func (app *Application) Plugins() *plugin.Manager {
	return app.plugins
}

// Keymap returns the key bindings.
func (app *Application) Keymap() *input.Keymap {
	return app.keys
}

// Config returns the configuration in effect.
func (app *Application) Config() *config.Config {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.config
}

// Logger returns the application logger.
func (app *Application) Logger() *Logger {
	return app.logger
}

// Status returns the current status line content.
func (app *Application) Status() renderer.Status {
	app.mu.Lock()
	defer app.mu.Unlock()
	return renderer.Status{
		FileName:    app.doc.Path(),
		Modified:    app.doc.IsModified(),
		ListEditing: app.session.Enabled(),
		Message:     app.message,
		IsError:     app.isError,
	}
}

func (app *Application) setMessage(msg string, isError bool) {
	app.mu.Lock()
	defer app.mu.Unlock()
	app.message = msg
	app.isError = isError
}

// Execute dispatches a command by name, the way a key binding would.
func (app *Application) Execute(name string) error {
	res := app.dispatch(input.NewAction(name).WithSource(input.SourceAPI))
	if res.IsError() {
		return res.Err()
	}
	if app.quitting() {
		return ErrQuit
	}
	return nil
}

func openLogFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
