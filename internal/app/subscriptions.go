package app

import (
	"maps"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/listedit/internal/config"
	"github.com/dshills/listedit/internal/input"
)

// applyConfig brings a reloaded configuration into effect. Editor settings
// such as tab width apply to the next opened document only, and a change
// to [keys] also drops bindings made by scripts.
func (app *Application) applyConfig(cfg *config.Config) {
	app.mu.Lock()
	prev := app.config
	app.config = cfg
	app.mu.Unlock()

	if app.opts.LogLevel == "" {
		app.logger.SetLevel(ParseLogLevel(cfg.Log.Level))
	}

	app.session.SetOptions(listOptions(cfg))
	if !app.opts.NoListEdit && app.session.SetEnabled(cfg.ListEdit.Enabled) {
		state := "off"
		if cfg.ListEdit.Enabled {
			state = "on"
		}
		app.setMessage("config: list editing "+state, false)
	}

	if !maps.Equal(prev.Keys, cfg.Keys) {
		keys := input.DefaultKeymap()
		if err := bindKeys(keys, cfg.Keys); err != nil {
			app.logger.Error("key bindings not applied", "error", err)
		} else {
			app.keys.Replace(keys)
		}
	}

	if app.renderer != nil {
		_ = app.renderer.Screen().PostEvent(tcell.NewEventInterrupt(nil))
	}
}
