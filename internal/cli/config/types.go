// Package config loads pinelint configuration.
//
// Values are layered with koanf, lowest precedence first: built-in
// defaults, the config file, PINELINT_ environment variables and finally
// command-line flags the user actually set. The rule section is decoded
// into core.RuleConfig; the remaining keys drive the CLI itself.
package config

import (
	"github.com/leapstack-labs/pinelint/internal/state"
	"github.com/leapstack-labs/pinelint/pkg/core"
)

// CacheConfig controls the lint cache.
type CacheConfig struct {
	Enabled bool   `koanf:"enabled" json:"enabled" yaml:"enabled"`
	Path    string `koanf:"path" json:"path" yaml:"path"`
}

// Config holds all CLI configuration options.
type Config struct {
	// Rules is decoded separately from the same koanf tree.
	Rules core.RuleConfig `koanf:"-"`

	FailOn       string      `koanf:"fail_on"`
	OutputFormat string      `koanf:"output"`
	Workers      int         `koanf:"workers"`
	Verbose      bool        `koanf:"verbose"`
	Cache        CacheConfig `koanf:"cache"`
}

// File is the on-disk config layout written by `pinelint init`.
type File struct {
	core.RuleConfig `yaml:",inline"`

	FailOn  string      `json:"fail_on" yaml:"fail_on"`
	Output  string      `json:"output" yaml:"output"`
	Workers int         `json:"workers" yaml:"workers"`
	Cache   CacheConfig `json:"cache" yaml:"cache"`
}

// Default configuration values.
const (
	DefaultFailOn  = "info"
	DefaultOutput  = "auto"
	DefaultWorkers = 0
	EnvPrefix      = "PINELINT_"
)

// FileNames are the config file names searched for, in priority order.
var FileNames = []string{"pinelint.json", "pinelint.yaml", "pinelint.yml", ".pinelintrc.json"}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Rules:        core.DefaultRuleConfig(),
		FailOn:       DefaultFailOn,
		OutputFormat: DefaultOutput,
		Workers:      DefaultWorkers,
		Cache:        CacheConfig{Path: state.DefaultPath},
	}
}

// DefaultFile returns the default config in its on-disk layout.
func DefaultFile() File {
	d := Default()
	return File{
		RuleConfig: d.Rules,
		FailOn:     d.FailOn,
		Output:     d.OutputFormat,
		Workers:    d.Workers,
		Cache:      d.Cache,
	}
}

// FailThreshold parses FailOn, falling back to failing on any finding.
func (c *Config) FailThreshold() core.FailThreshold {
	t, _ := core.ParseFailThreshold(c.FailOn)
	return t
}
