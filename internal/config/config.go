// internal/config/config.go
// Package config loads jsonviewbench settings from defaults, an optional
// config file, environment variables and bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. JSONVIEWBENCH_BENCHMARK_SAMPLES.
const EnvPrefix = "JSONVIEWBENCH"

// Keys shared between flag bindings and defaults.
const (
	KeyType        = "benchmark.type"
	KeySamples     = "benchmark.samples"
	KeyData        = "benchmark.data"
	KeyRenderer    = "benchmark.renderer"
	KeyTimeout     = "benchmark.timeout"
	KeyObjectFile  = "data.object_file"
	KeyArrayFile   = "data.array_file"
	KeyObjectDepth = "data.object_depth"
	KeyFanout      = "data.object_fanout"
	KeyArrayLength = "data.array_length"
	KeyDebug       = "debug"
	KeyLogFile     = "log_file"
)

// Config is the resolved configuration.
type Config struct {
	Benchmark BenchmarkConfig `mapstructure:"benchmark"`
	Data      DataConfig      `mapstructure:"data"`
	// Debug raises the log level to debug.
	Debug bool `mapstructure:"debug"`
	// LogFile receives log output while the TUI owns the terminal.
	LogFile string `mapstructure:"log_file"`
}

// BenchmarkConfig is the initial form selection.
type BenchmarkConfig struct {
	Type     string        `mapstructure:"type"`
	Samples  int           `mapstructure:"samples"`
	Data     string        `mapstructure:"data"`
	Renderer string        `mapstructure:"renderer"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// DataConfig sizes the generated datasets or points at JSON files replacing them.
type DataConfig struct {
	ObjectFile   string `mapstructure:"object_file"`
	ArrayFile    string `mapstructure:"array_file"`
	ObjectDepth  int    `mapstructure:"object_depth"`
	ObjectFanout int    `mapstructure:"object_fanout"`
	ArrayLength  int    `mapstructure:"array_length"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyType, "mount")
	v.SetDefault(KeySamples, 50)
	v.SetDefault(KeyData, "array")
	v.SetDefault(KeyRenderer, "JsonView")
	v.SetDefault(KeyTimeout, 200*time.Second)
	v.SetDefault(KeyObjectFile, "")
	v.SetDefault(KeyArrayFile, "")
	v.SetDefault(KeyObjectDepth, 4)
	v.SetDefault(KeyFanout, 6)
	v.SetDefault(KeyArrayLength, 5000)
	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyLogFile, "debug.log")
}

// Load resolves the configuration held by v. When path is non-empty the file
// must exist; otherwise an optional jsonviewbench.{yaml,json,toml} in the
// working directory is used if present.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("could not read config file: %w", err)
		}
	} else {
		v.SetConfigName("jsonviewbench")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("could not parse config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("could not decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values that cannot be corrected later.
func (c *Config) Validate() error {
	if c.Benchmark.Samples <= 0 {
		return fmt.Errorf("benchmark.samples must be positive, got %d", c.Benchmark.Samples)
	}
	if c.Benchmark.Data != "object" && c.Benchmark.Data != "array" {
		return fmt.Errorf("benchmark.data must be object or array, got %q", c.Benchmark.Data)
	}
	if c.Benchmark.Timeout <= 0 {
		return fmt.Errorf("benchmark.timeout must be positive, got %s", c.Benchmark.Timeout)
	}
	return nil
}
