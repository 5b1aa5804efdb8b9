package main

import (
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	defaultLogLevel  = "info"
	defaultLogOutput = "stderr"
)

// Config holds the command configuration.
type Config struct {
	Input  string    `mapstructure:"input"`
	Output string    `mapstructure:"output"`
	Log    LogConfig `mapstructure:"log"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Output string `mapstructure:"output"`
}

// loadConfig loads configuration from flags, environment variables, and
// defaults, in that order of precedence.
func loadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("input", "-")
	v.SetDefault("output", "-")
	v.SetDefault("log.level", defaultLogLevel)
	v.SetDefault("log.output", defaultLogOutput)

	flag.StringP("input", "i", "-", "ballot proof inputs JSON file (\"-\" for stdin)")
	flag.StringP("output", "o", "-", "result JSON file (\"-\" for stdout)")
	flag.String("log.level", defaultLogLevel, "log level (debug, info, warn, error)")
	flag.String("log.output", defaultLogOutput, "log output (stdout, stderr or file path)")
	flag.Parse()

	if err := v.BindPFlags(flag.CommandLine); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	// Environment variables: DAVINCI_INPUT, DAVINCI_LOG_LEVEL, ...
	v.SetEnvPrefix("DAVINCI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}
