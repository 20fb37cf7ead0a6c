package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/listedit/internal/app"
	"github.com/dshills/listedit/internal/plugin"
)

var rootFlags struct {
	config     string
	logLevel   string
	logFile    string
	script     string
	noListEdit bool
	readOnly   bool
	pluginDirs []string
	noPlugins  bool
}

var rootCmd = &cobra.Command{
	Use:   "listedit [file]",
	Short: "Edit outline files with automatic list continuation",
	Long: `listedit opens a file in a terminal editor where Enter continues the
current list item, Enter on an empty item outdents or clears it, and
Backspace at the start of an item's text removes its bullet.

Ctrl+T toggles list editing, Ctrl+S saves and Ctrl+Q quits.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := app.Options{
			ConfigPath: rootFlags.config,
			ScriptPath: rootFlags.script,
			LogLevel:   rootFlags.logLevel,
			NoListEdit: rootFlags.noListEdit,
			ReadOnly:   rootFlags.readOnly,
		}
		if !rootFlags.noPlugins {
			opts.PluginDirs = rootFlags.pluginDirs
		}
		if len(args) == 1 {
			opts.FilePath = args[0]
		}
		if rootFlags.logFile != "" {
			f, err := os.OpenFile(rootFlags.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err != nil {
				return err
			}
			defer f.Close()
			opts.LogOutput = f
		}

		application, err := app.New(opts)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return application.Run(ctx)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&rootFlags.config, "config", "c", defaultConfigPath(), "configuration file")
	flags.StringVar(&rootFlags.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&rootFlags.logFile, "log-file", "", "append logs to this file")

	rootCmd.Flags().StringVar(&rootFlags.script, "script", "", "Lua script to run at startup")
	rootCmd.Flags().BoolVar(&rootFlags.noListEdit, "no-listedit", false, "start with list editing off")
	rootCmd.Flags().BoolVarP(&rootFlags.readOnly, "read-only", "R", false, "open the file read-only")
	rootCmd.Flags().StringSliceVar(&rootFlags.pluginDirs, "plugin-dir", plugin.DefaultPluginPaths(), "directories searched for Lua plugins")
	rootCmd.Flags().BoolVar(&rootFlags.noPlugins, "no-plugins", false, "do not load plugins")
}

// defaultConfigPath returns the per-user configuration file, or "" when
// the user config directory is unknown.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "listedit", "config.toml")
}
