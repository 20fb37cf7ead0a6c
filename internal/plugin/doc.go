// Package plugin discovers and loads Lua plugins.
//
// A plugin is either a single file:
//
//	~/.config/listedit/plugins/checklist.lua
//
// or a directory with an entry point and an optional manifest:
//
//	~/.config/listedit/plugins/checklist/
//	    plugin.toml
//	    init.lua
//
// The manifest names the plugin and may declare key bindings that are
// applied when the plugin loads:
//
//	name = "checklist"
//	version = "1.0.0"
//	description = "Checklist helpers"
//	main = "init.lua"
//
//	[keys]
//	"Alt+c" = "listedit.toggle"
//
// Each plugin runs in its own sandboxed Lua state with the listedit module
// available through require("listedit").
package plugin
