// Package config loads solver settings from the environment.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is prepended to every variable name, e.g. ALMANAC_LOG_LEVEL.
const EnvPrefix = "ALMANAC"

type LogFormat string

const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

// Config holds settings shared by every command. Flags override it.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	// Env: ALMANAC_LOG_LEVEL (default: info)
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// LogFormat is pretty or json.
	// Env: ALMANAC_LOG_FORMAT (default: pretty)
	LogFormat LogFormat `envconfig:"LOG_FORMAT" default:"pretty"`

	// Parallelism bounds concurrent seed range tasks; 0 means GOMAXPROCS
	// and 1 runs sequentially.
	// Env: ALMANAC_PARALLELISM (default: 0)
	Parallelism int `envconfig:"PARALLELISM" default:"0"`

	// Strict rejects stages with overlapping entries.
	// Env: ALMANAC_STRICT (default: false)
	Strict bool `envconfig:"STRICT" default:"false"`

	// Format selects the answer output format.
	// Env: ALMANAC_FORMAT (default: text)
	Format OutputFormat `envconfig:"FORMAT" default:"text"`
}

// Load reads an optional .env file and then the environment. A missing
// .env file is not an error.
func Load(envFile string) (Config, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("stat %s: %w", envFile, err)
	}

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("process env: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch LogFormat(strings.ToLower(string(c.LogFormat))) {
	case LogFormatPretty, LogFormatJSON:
	default:
		return fmt.Errorf("invalid log format %q", c.LogFormat)
	}
	switch OutputFormat(strings.ToLower(string(c.Format))) {
	case OutputText, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("invalid output format %q", c.Format)
	}
	if c.Parallelism < 0 {
		return fmt.Errorf("parallelism must not be negative, got %d", c.Parallelism)
	}
	return nil
}
