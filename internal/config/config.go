package config

import (
	"maps"
	"slices"
	"strings"

	"github.com/dshills/listedit/internal/input"
)

// Config holds all listedit settings.
type Config struct {
	ListEdit ListEditConfig `toml:"listedit"`
	Editor   EditorConfig   `toml:"editor"`
	Log      LogConfig      `toml:"log"`

	// Keys maps key specs such as "ctrl+l" to action names. Entries are
	// bound on top of the default key map.
	Keys map[string]string `toml:"keys"`
}

// ListEditConfig controls list editing.
type ListEditConfig struct {
	Enabled   bool   `toml:"enabled"`
	SplitLine bool   `toml:"split_line"`
	Checkbox  string `toml:"checkbox"`
}

// EditorConfig controls the editing engine.
type EditorConfig struct {
	TabWidth    int  `toml:"tab_width"`
	AutoIndent  bool `toml:"auto_indent"`
	HistorySize int  `toml:"history_size"`
}

// LogConfig controls logging.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		ListEdit: ListEditConfig{
			Enabled:   true,
			SplitLine: true,
			Checkbox:  "[ ] ",
		},
		Editor: EditorConfig{
			TabWidth:    4,
			AutoIndent:  true,
			HistorySize: 1000,
		},
		Log: LogConfig{Level: "info"},
	}
}

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	checkboxes = []string{"[ ]", "[X]", "[x]", "[-]"}
)

// Validate checks ranges and normalizes values in place.
func (c *Config) Validate() error {
	if c.Editor.TabWidth < 1 || c.Editor.TabWidth > 16 {
		return invalid("editor.tab_width", c.Editor.TabWidth, "must be between 1 and 16")
	}
	if c.Editor.HistorySize < 0 {
		return invalid("editor.history_size", c.Editor.HistorySize, "must not be negative")
	}

	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if !slices.Contains(logLevels, c.Log.Level) {
		return invalid("log.level", c.Log.Level, "must be one of "+strings.Join(logLevels, ", "))
	}

	box := strings.TrimSpace(c.ListEdit.Checkbox)
	if !slices.Contains(checkboxes, box) {
		return invalid("listedit.checkbox", c.ListEdit.Checkbox, "not a checkbox")
	}
	c.ListEdit.Checkbox = box + " "

	for spec, action := range c.Keys {
		if _, err := input.ParseKey(spec); err != nil {
			return invalid("keys", spec, err.Error())
		}
		if input.NewAction(action).Namespace() == "" {
			return invalid("keys."+spec, action, "action must be namespace.name")
		}
	}
	return nil
}

// Clone returns a deep copy of c.
func (c *Config) Clone() *Config {
	out := *c
	out.Keys = maps.Clone(c.Keys)
	return &out
}
