package app

import (
	"context"
	"errors"
	"io"

	"github.com/dshills/listedit/internal/config"
	"github.com/dshills/listedit/internal/dispatcher"
	"github.com/dshills/listedit/internal/dispatcher/handler"
	"github.com/dshills/listedit/internal/dispatcher/handlers/cursor"
	"github.com/dshills/listedit/internal/dispatcher/handlers/editor"
	"github.com/dshills/listedit/internal/dispatcher/hook"
	"github.com/dshills/listedit/internal/engine"
	"github.com/dshills/listedit/internal/input"
	"github.com/dshills/listedit/internal/listedit"
	"github.com/dshills/listedit/internal/plugin"
	"github.com/dshills/listedit/internal/plugin/lua"
)

// bootstrapper initializes components in dependency order.
type bootstrapper struct {
	app  *Application
	opts Options
}

func newBootstrapper(app *Application) *bootstrapper {
	return &bootstrapper{app: app, opts: app.opts}
}

func (b *bootstrapper) bootstrap() error {
	steps := []func() error{
		b.initConfig,
		b.initLogger,
		b.initDocument,
		b.initDispatcher,
		b.initSession,
		b.initKeymap,
		b.initScripting,
		b.initPlugins,
		b.initWatcher,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func (b *bootstrapper) initConfig() error {
	cfg := config.Default()
	if b.opts.ConfigPath != "" {
		loaded, err := config.Load(b.opts.ConfigPath)
		if err != nil {
			return &InitError{Component: "config", Err: err}
		}
		cfg = loaded
	}
	b.app.config = cfg
	return nil
}

func (b *bootstrapper) initLogger() error {
	cfg := b.app.config
	out := b.opts.LogOutput
	if out == nil {
		out = io.Discard
		if cfg.Log.File != "" {
			f, err := openLogFile(cfg.Log.File)
			if err != nil {
				return &InitError{Component: "logger", Err: err}
			}
			b.app.logFile = f
			out = f
		}
	}

	level := cfg.Log.Level
	if b.opts.LogLevel != "" {
		level = b.opts.LogLevel
	}
	lc := DefaultLoggerConfig()
	lc.Level = ParseLogLevel(level)
	lc.Output = out
	b.app.logger = NewLogger(lc)
	return nil
}

func (b *bootstrapper) initDocument() error {
	ec := b.app.config.Editor
	opts := []engine.Option{engine.WithTabWidth(ec.TabWidth)}
	if ec.HistorySize > 0 {
		opts = append(opts, engine.WithMaxUndoEntries(ec.HistorySize))
	}

	if b.opts.FilePath == "" {
		b.app.doc = NewDocument("", "", opts...)
		return nil
	}
	doc, err := OpenDocument(b.opts.FilePath, opts...)
	if err != nil {
		return &InitError{Component: "document", Err: err}
	}
	b.app.doc = doc
	b.app.logger.Info("opened document", "path", b.opts.FilePath, "lines", doc.Engine.LineCount())
	return nil
}

func (b *bootstrapper) initDispatcher() error {
	d := dispatcher.New(dispatcher.DefaultConfig().WithMetrics())
	d.SetEngine(b.app.doc.Engine)
	d.SetFilePath(b.app.doc.Path())
	d.SetReadOnly(b.opts.ReadOnly)
	d.Hooks().Register(hook.NewAuditHook(b.app.logger.WithComponent("dispatcher")))

	d.RegisterNamespace(editor.NewCombinedHandler(b.app.config.Editor.AutoIndent))
	d.RegisterNamespace(cursor.NewHandler())

	appCommands := handler.NewBaseNamespaceHandler("app")
	appCommands.Register(input.ActionSave, b.app.handleSave)
	appCommands.Register(input.ActionQuit, b.app.handleQuit)
	d.RegisterNamespace(appCommands)

	b.app.dispatcher = d
	return nil
}

func (b *bootstrapper) initSession() error {
	s := listedit.NewSession(b.app.dispatcher.Hooks(),
		listedit.WithLogger(b.app.logger.WithComponent("listedit")),
		listedit.WithOptions(listOptions(b.app.config)),
	)
	b.app.dispatcher.RegisterHandler(listedit.ActionToggle, s.ToggleHandler())
	if b.app.config.ListEdit.Enabled && !b.opts.NoListEdit {
		s.Enable()
	}
	b.app.session = s
	return nil
}

func (b *bootstrapper) initKeymap() error {
	b.app.keys = input.DefaultKeymap()
	return bindKeys(b.app.keys, b.app.config.Keys)
}

func (b *bootstrapper) initScripting() error {
	s := lua.NewState()
	lua.NewModule(&scriptEditor{app: b.app}, b.app.session).Install(s)
	b.app.scripts = s

	if b.opts.ScriptPath == "" {
		return nil
	}
	if err := s.DoFile(b.opts.ScriptPath); err != nil {
		return &InitError{Component: "script", Err: err}
	}
	b.app.logger.Info("script loaded", "path", b.opts.ScriptPath)
	return nil
}

// initPlugins loads plugins into their own Lua states. A plugin that fails
// to load is logged and reported in the status line; the editor still
// starts.
func (b *bootstrapper) initPlugins() error {
	if len(b.opts.PluginDirs) == 0 {
		return nil
	}
	editor := &scriptEditor{app: b.app}
	m := plugin.NewManager(
		func() *lua.State {
			s := lua.NewState()
			lua.NewModule(editor, b.app.session).Install(s)
			return s
		},
		plugin.WithLoader(plugin.NewLoader(plugin.WithPaths(b.opts.PluginDirs...))),
		plugin.WithBinder(editor),
	)
	log := b.app.logger.WithComponent("plugin")
	m.Subscribe(func(ev plugin.ManagerEvent) {
		if ev.Error != nil {
			log.Error("plugin "+ev.Type.String(), "plugin", ev.Plugin, "error", ev.Error)
			return
		}
		log.Info("plugin "+ev.Type.String(), "plugin", ev.Plugin)
	})
	b.app.plugins = m

	if err := m.LoadAll(context.Background()); err != nil {
		b.app.setMessage(err.Error(), true)
	}
	return nil
}

func (b *bootstrapper) initWatcher() error {
	if b.opts.ConfigPath == "" {
		return nil
	}
	w := config.NewWatcher(b.opts.ConfigPath, b.app.config,
		config.WithWatchLogger(b.app.logger.WithComponent("config")))
	w.Subscribe(b.app.applyConfig)
	b.app.watcher = w
	return nil
}

// listOptions extracts the list editing options from cfg.
func listOptions(cfg *config.Config) listedit.Options {
	return listedit.Options{
		SplitLine: cfg.ListEdit.SplitLine,
		Checkbox:  cfg.ListEdit.Checkbox,
	}
}

// bindKeys applies configured bindings on top of the defaults.
func bindKeys(keys *input.Keymap, bindings map[string]string) error {
	var errs []error
	for spec, action := range bindings {
		if err := keys.Bind(spec, action); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return &InitError{Component: "keymap", Err: err}
	}
	return nil
}
