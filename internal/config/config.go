// Package config loads handrit settings from defaults, a YAML file, the
// environment and command line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const (
	DefaultConfigFile = "handrit.yaml"
	EnvPrefix         = "HANDRIT_"

	DefaultPrecision = 34
	DefaultPrompt    = "> "
	DefaultLogLevel  = "warn"
)

// DefaultHistoryFile is where the REPL keeps its line history.
var DefaultHistoryFile = filepath.Join(xdg.DataHome, "handrit", "history")

type Config struct {
	Precision      uint32 `koanf:"precision"`
	Prompt         string `koanf:"prompt"`
	HistoryFile    string `koanf:"history_file"`
	ReuseOperators bool   `koanf:"reuse_operators"`
	LogLevel       string `koanf:"log_level"`
	LogFile        string `koanf:"log_file"`
	Color          bool   `koanf:"color"`

	// File is the configuration file that was read, empty if none.
	File string `koanf:"-"`
}

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"precision":       DefaultPrecision,
		"prompt":          DefaultPrompt,
		"history_file":    DefaultHistoryFile,
		"reuse_operators": true,
		"log_level":       DefaultLogLevel,
		"log_file":        "",
		"color":           true,
	}
}

// findConfigFile returns the explicit path, or ./handrit.yaml if it exists.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(DefaultConfigFile); err == nil {
		return DefaultConfigFile
	}
	return ""
}

// Load reads the configuration.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// HANDRIT_LOG_LEVEL -> log_level
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			// --log-level -> log_level
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.File = used

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects settings the rest of the program cannot use.
func (c *Config) Validate() error {
	if c.Precision == 0 {
		return fmt.Errorf("precision must be positive")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}
