// Package config loads listedit settings from a TOML file.
//
// Settings are read in three steps, later steps overriding earlier ones:
//
//  1. Built-in defaults (Default).
//  2. The TOML file, if it exists. Missing keys keep their defaults and
//     unknown keys are ignored.
//  3. LISTEDIT_* environment variables (ApplyEnv).
//
// A Watcher reloads the file when it changes on disk and hands the new
// Config to its subscribers.
//
// # File format
//
//	[listedit]
//	enabled = true
//	split_line = true
//	checkbox = "[ ] "
//
//	[editor]
//	tab_width = 4
//	auto_indent = true
//	history_size = 1000
//
//	[log]
//	level = "info"
//	file = ""
//
//	[keys]
//	"ctrl+l" = "listedit.toggle"
package config
