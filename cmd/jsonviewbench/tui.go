// cmd/jsonviewbench/tui.go
package jsonviewbench

import (
	"github.com/spf13/cobra"

	"github.com/mwiater/jsonviewbench/cli"
	"github.com/mwiater/jsonviewbench/internal/logging"
)

var startGUI = cli.StartGUI

// tuiCmd represents the 'tui' command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive benchmark form",
	Long:  `The 'tui' command opens a terminal form to pick the benchmark type, sample count, dataset and renderer, run benchmarks and read the accumulated report. Logs go to the configured log file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log, f, err := logging.ToFile(cfg.LogFile, cfg.Debug)
		if err != nil {
			return err
		}
		defer f.Close()

		session, err := buildSession(cfg, log)
		if err != nil {
			return err
		}
		return startGUI(session, log)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
