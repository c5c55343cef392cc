// Package config loads the command-line tool's settings from defaults, an
// optional YAML file and DEFCOMPOSE_* environment variables.
package config

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "DEFCOMPOSE"

// Keys of the recognized settings.
const (
	KeyLogLevel          = "log_level"
	KeyMergeDefaultFirst = "merge_default_first"
	KeyStrict            = "strict"
	KeyOutput            = "output"
)

// StdOutput selects standard output as the output destination.
const StdOutput = "-"

// Config holds the tool settings.
type Config struct {
	LogLevel          string `mapstructure:"log_level"`
	MergeDefaultFirst bool   `mapstructure:"merge_default_first"`
	// Strict makes warnings fail the command.
	Strict bool   `mapstructure:"strict"`
	Output string `mapstructure:"output"`
}

// DefaultConfig returns the settings used when nothing overrides them.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Output:   StdOutput,
	}
}

// Binder attaches extra sources, such as command flags, to v.
type Binder func(v *viper.Viper) error

// Load reads the settings. An empty path skips the config file; a path
// that does not exist is an error.
func Load(path string, bind Binder) (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault(KeyLogLevel, defaults.LogLevel)
	v.SetDefault(KeyMergeDefaultFirst, defaults.MergeDefaultFirst)
	v.SetDefault(KeyStrict, defaults.Strict)
	v.SetDefault(KeyOutput, defaults.Output)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file not found: %s", path)
		}

		v.SetConfigFile(path)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	if bind != nil {
		if err := bind(v); err != nil {
			return nil, fmt.Errorf("failed to bind settings: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if _, err := cfg.Level(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Level returns the configured log level. An empty level means info.
func (c *Config) Level() (log.Level, error) {
	if c.LogLevel == "" {
		return log.InfoLevel, nil
	}

	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("unknown log level: %w", err)
	}

	return lvl, nil
}

// ToStdout reports whether output goes to standard output.
func (c *Config) ToStdout() bool {
	return c.Output == "" || c.Output == StdOutput
}
