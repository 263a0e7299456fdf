// cmd/jsonviewbench/root.go
package jsonviewbench

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwiater/jsonviewbench/internal/catalog"
	"github.com/mwiater/jsonviewbench/internal/config"
	"github.com/mwiater/jsonviewbench/internal/dataset"
	"github.com/mwiater/jsonviewbench/internal/harness"
)

// cfgFile is the optional config file given with --config.
var cfgFile string

// rootCmd is the base Cobra command for the jsonviewbench application.
// All subcommands are attached to this root to form the complete CLI.
var rootCmd = &cobra.Command{
	Use:   "jsonviewbench",
	Short: "Benchmark JSON renderers",
	Long:  `jsonviewbench times how JSON renderers perform when mounting, updating and unmounting a large nested object or a large array, and reports p50/p70/p90/p95/p99 for every run.`,
}

// Execute runs the root Cobra command and all registered subcommands.
// It prints any returned error and exits the process with a non-zero
// status code on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default ./jsonviewbench.yaml if present)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	viper.BindPFlag(config.KeyDebug, rootCmd.PersistentFlags().Lookup("debug"))
}

// loadConfig resolves the configuration from the global viper instance,
// which carries the bound flags.
func loadConfig() (*config.Config, error) {
	return config.Load(viper.GetViper(), cfgFile)
}

// buildSession prepares the datasets, the catalog and a session seeded with
// the configured selection.
func buildSession(cfg *config.Config, log logrus.FieldLogger) (*harness.Session, error) {
	set := dataset.Generate(dataset.Options{
		ObjectDepth:  cfg.Data.ObjectDepth,
		ObjectFanout: cfg.Data.ObjectFanout,
		ArrayLength:  cfg.Data.ArrayLength,
	})
	if err := set.Load(cfg.Data.ObjectFile, cfg.Data.ArrayFile); err != nil {
		return nil, err
	}

	typ, err := harness.ParseBenchmarkType(cfg.Benchmark.Type)
	if err != nil {
		return nil, err
	}
	sel := harness.Selection{
		Type:        typ,
		SampleCount: cfg.Benchmark.Samples,
		DataType:    cfg.Benchmark.Data,
		Component:   cfg.Benchmark.Renderer,
		Timeout:     cfg.Benchmark.Timeout,
	}
	log.WithFields(logrus.Fields{
		"array_items": len(set.Array),
		"timeout":     sel.Timeout.Round(time.Second),
	}).Debug("datasets ready")
	return harness.NewSession(catalog.Default(set), sel, log), nil
}
