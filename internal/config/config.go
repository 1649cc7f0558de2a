// Package config loads mc-analyzer's configuration from (in ascending
// precedence) built-in defaults, a .mc-analyzer.toml file, MCANALYZER_
// environment variables, and CLI flags, layered with viper and parsed
// with go-toml.
package config

import (
	"fmt"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Analysis names a disableable CFG analysis.
type Analysis string

const (
	AlwaysReturns      Analysis = "always-returns"
	Unreachable        Analysis = "unreachable"
	DefiniteAssignment Analysis = "definite-assignment"
	DeadStore          Analysis = "dead-store"
	ZeroAnalysis       Analysis = "zero-analysis"
)

var allAnalyses = []Analysis{AlwaysReturns, Unreachable, DefiniteAssignment, DeadStore, ZeroAnalysis}

// Config is the resolved, merged configuration the service layer runs
// with.
type Config struct {
	Format     string
	Exclude    []string
	FailOn     string
	Disabled   map[Analysis]bool
	NoProgress bool
	Verbose    bool
}

// Default returns the built-in defaults, the bottom of the precedence
// stack.
func Default() *Config {
	return &Config{
		Format:   "text",
		FailOn:   "warning",
		Disabled: make(map[Analysis]bool),
	}
}

// tomlFile is the on-disk .mc-analyzer.toml shape.
type tomlFile struct {
	Format  string   `toml:"format"`
	Exclude []string `toml:"exclude"`
	FailOn  string   `toml:"fail_on"`
	Disable []string `toml:"disable"`
}

// LoadFile reads and parses a .mc-analyzer.toml file at path. A missing
// or unreadable file is an error, so callers should only call LoadFile
// when a file is known to exist (--config) or after probing the default
// location.
func LoadFile(path string) (*tomlFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	var parsed tomlFile
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return &parsed, nil
}

// Load merges defaults, an optional config file, MCANALYZER_-prefixed
// environment variables, and CLI flags (in that ascending order of
// precedence) into a single Config, via viper.
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("MCANALYZER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("format", "text")
	v.SetDefault("fail_on", "warning")
	v.SetDefault("exclude", []string{})
	v.SetDefault("disable", []string{})

	if configPath == "" {
		if _, err := os.Stat(".mc-analyzer.toml"); err == nil {
			configPath = ".mc-analyzer.toml"
		}
	}
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			v.SetConfigFile(configPath)
			v.SetConfigType("toml")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config file %s: %w", configPath, err)
			}
		}
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
		// The --fail-on flag binds under its own hyphenated name; map it
		// onto the fail_on key the file and environment use.
		if f := flags.Lookup("fail-on"); f != nil {
			if err := v.BindPFlag("fail_on", f); err != nil {
				return nil, fmt.Errorf("bind flags: %w", err)
			}
		}
	}

	cfg := Default()
	cfg.Format = v.GetString("format")
	cfg.FailOn = v.GetString("fail_on")
	cfg.Exclude = v.GetStringSlice("exclude")
	cfg.NoProgress = v.GetBool("no-progress")
	cfg.Verbose = v.GetBool("verbose")

	for _, name := range v.GetStringSlice("disable") {
		cfg.Disabled[Analysis(name)] = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configuration values the service layer can't act on.
func (c *Config) Validate() error {
	if c.Format != "text" && c.Format != "json" {
		return fmt.Errorf("invalid format %q: must be \"text\" or \"json\"", c.Format)
	}
	if c.FailOn != "warning" && c.FailOn != "error" {
		return fmt.Errorf("invalid fail_on %q: must be \"warning\" or \"error\"", c.FailOn)
	}
	for name := range c.Disabled {
		if !isKnownAnalysis(name) {
			return fmt.Errorf("unknown analysis %q in disable list", name)
		}
	}
	return nil
}

func isKnownAnalysis(name Analysis) bool {
	for _, a := range allAnalyses {
		if a == name {
			return true
		}
	}
	return false
}

// IsDisabled reports whether a is on the configured disable list.
func (c *Config) IsDisabled(a Analysis) bool {
	return c.Disabled[a]
}
