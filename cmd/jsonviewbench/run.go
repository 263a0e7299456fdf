// cmd/jsonviewbench/run.go
package jsonviewbench

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwiater/jsonviewbench/internal/config"
	"github.com/mwiater/jsonviewbench/internal/harness"
	"github.com/mwiater/jsonviewbench/internal/logging"
)

var (
	runCount    int
	outFile     string
	interactive bool
)

// askSelection lets the user adjust the session selection before running.
var askSelection = promptSelection

// runCmd implements 'run', the non-interactive benchmark.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a benchmark and print the report",
	Long:  `The 'run' command benchmarks one renderer with the configured type, sample count and dataset, then prints the report: the runner results followed by the p50/p70/p90/p95/p99 breakdown for every run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if runCount <= 0 {
			return fmt.Errorf("--runs must be positive, got %d", runCount)
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := logging.New(cmd.ErrOrStderr(), cfg.Debug)

		session, err := buildSession(cfg, log)
		if err != nil {
			return err
		}
		if interactive {
			if err := askSelection(session); err != nil {
				return err
			}
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		for i := 0; i < runCount; i++ {
			sel := session.Selection()
			log.WithFields(logrus.Fields{
				"run":       i + 1,
				"component": sel.Component,
				"type":      sel.Type,
				"samples":   sel.SampleCount,
				"data":      sel.DataType,
			}).Info("running benchmark")
			if _, err := session.Start(ctx); err != nil {
				return err
			}
		}

		report := session.Report()
		fmt.Fprintln(cmd.OutOrStdout(), report)
		if outFile != "" {
			if err := os.WriteFile(outFile, []byte(report), 0o644); err != nil {
				return fmt.Errorf("could not write report: %w", err)
			}
			log.WithField("path", outFile).Info("report written")
		}
		return nil
	},
}

// promptSelection shows a form with the same controls as the TUI.
func promptSelection(session *harness.Session) error {
	sel := session.Selection()
	typ := string(sel.Type)
	samples := sel.SampleCount
	data := sel.DataType
	component := sel.Component

	types := make([]string, len(harness.BenchmarkTypes))
	for i, t := range harness.BenchmarkTypes {
		types[i] = string(t)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Test Type").Options(huh.NewOptions(types...)...).Value(&typ),
			huh.NewSelect[int]().Title("Samples Count").Options(huh.NewOptions(harness.SampleCounts...)...).Value(&samples),
			huh.NewSelect[string]().Title("Test Data").Options(huh.NewOptions(harness.DataTypes...)...).Value(&data),
			huh.NewSelect[string]().Title("Test Target Library").Options(huh.NewOptions(session.Catalog().Names()...)...).Value(&component),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	if err := session.SetType(typ); err != nil {
		return err
	}
	if err := session.SetSampleCount(samples); err != nil {
		return err
	}
	if err := session.SetDataType(data); err != nil {
		return err
	}
	session.SetComponent(component)
	return nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	flags := runCmd.Flags()
	flags.StringP("type", "t", "mount", "benchmark type: mount, update or unmount")
	flags.IntP("samples", "n", 50, "samples per run")
	flags.StringP("data", "d", "array", "dataset: object or array")
	flags.StringP("renderer", "r", "JsonView", "renderer to benchmark (see 'list renderers')")
	flags.Duration("timeout", 200*time.Second, "timeout for a whole run")
	flags.IntVar(&runCount, "runs", 1, "number of runs appended to the report")
	flags.StringVarP(&outFile, "out", "o", "", "also write the report to this file")
	flags.BoolVarP(&interactive, "interactive", "i", false, "pick the options in a form before running")

	viper.BindPFlag(config.KeyType, flags.Lookup("type"))
	viper.BindPFlag(config.KeySamples, flags.Lookup("samples"))
	viper.BindPFlag(config.KeyData, flags.Lookup("data"))
	viper.BindPFlag(config.KeyRenderer, flags.Lookup("renderer"))
	viper.BindPFlag(config.KeyTimeout, flags.Lookup("timeout"))
}
