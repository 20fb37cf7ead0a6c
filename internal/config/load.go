package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix is the prefix of environment variables that override settings.
const EnvPrefix = "LISTEDIT_"

// Load reads the file at path on top of the defaults and applies the
// environment. A missing file is not an error. An empty path loads the
// defaults only.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if cfg, err = Parse(path, data); err != nil {
				return nil, err
			}
		}
	}
	if err := ApplyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes TOML data on top of the defaults. source names the data in
// errors.
func Parse(source string, data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		perr := &ParseError{Path: source, Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return nil, perr
	}
	return cfg, nil
}

// envSetters maps variable names (without EnvPrefix) to setters.
var envSetters = map[string]func(*Config, string) error{
	"ENABLED": func(c *Config, v string) error {
		return setBool(&c.ListEdit.Enabled, "ENABLED", v)
	},
	"SPLIT_LINE": func(c *Config, v string) error {
		return setBool(&c.ListEdit.SplitLine, "SPLIT_LINE", v)
	},
	"CHECKBOX": func(c *Config, v string) error {
		c.ListEdit.Checkbox = v
		return nil
	},
	"TAB_WIDTH": func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return invalid(EnvPrefix+"TAB_WIDTH", v, "not an integer")
		}
		c.Editor.TabWidth = n
		return nil
	},
	"AUTO_INDENT": func(c *Config, v string) error {
		return setBool(&c.Editor.AutoIndent, "AUTO_INDENT", v)
	},
	"LOG_LEVEL": func(c *Config, v string) error {
		c.Log.Level = v
		return nil
	},
	"LOG_FILE": func(c *Config, v string) error {
		c.Log.File = v
		return nil
	},
}

// ApplyEnv overrides settings from LISTEDIT_* variables found by lookup.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	for name, set := range envSetters {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			continue
		}
		if err := set(cfg, strings.TrimSpace(v)); err != nil {
			return err
		}
	}
	return nil
}

func setBool(dst *bool, name, v string) error {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return invalid(EnvPrefix+name, v, "not a boolean")
	}
	*dst = b
	return nil
}
