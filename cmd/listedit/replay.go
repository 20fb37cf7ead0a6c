package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dshills/listedit/internal/app"
	"github.com/dshills/listedit/internal/scenario"
)

var replayCmd = &cobra.Command{
	Use:   "replay <scenario.yaml>...",
	Short: "Replay recorded editing scenarios and report mismatches",
	Long: `Replay runs each scenario in the given YAML files on a headless editor
with list editing on and compares the final lines and cursor with the
recorded expectation. It exits non-zero if any scenario fails.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := app.NullLogger
		if rootFlags.logLevel != "" {
			lc := app.DefaultLoggerConfig()
			lc.Level = app.ParseLogLevel(rootFlags.logLevel)
			lc.Output = cmd.ErrOrStderr()
			logger = app.NewLogger(lc)
		}
		return runReplay(cmd.Context(), cmd.OutOrStdout(), logger, args)
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
}

// errScenariosFailed is returned when at least one scenario fails.
type errScenariosFailed struct {
	failed, total int
}

func (e errScenariosFailed) Error() string {
	return fmt.Sprintf("%d of %d scenarios failed", e.failed, e.total)
}

func runReplay(ctx context.Context, out io.Writer, logger *app.Logger, paths []string) error {
	runner := scenario.NewRunner(logger.WithComponent("replay"))
	failed, total := 0, 0

	for _, path := range paths {
		f, err := scenario.Load(path)
		if err != nil {
			return err
		}
		for _, res := range runner.RunFile(ctx, f) {
			total++
			if res.Passed() {
				fmt.Fprintf(out, "PASS %s: %s\n", path, res.Name)
				continue
			}
			failed++
			fmt.Fprintf(out, "FAIL %s: %s\n  %v\n", path, res.Name, res.Err)
		}
	}

	fmt.Fprintf(out, "%d passed, %d failed\n", total-failed, failed)
	if failed > 0 {
		return errScenariosFailed{failed: failed, total: total}
	}
	return nil
}
