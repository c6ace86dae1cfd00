package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// loggerKey is used to store logger in context.
type loggerKey struct{}

// maxUpwardSearchLevels limits how far up the directory tree to search for config files.
const maxUpwardSearchLevels = 10

// flagKeys maps command-line flags onto config keys. Flags not listed
// are command options and never reach the config tree.
var flagKeys = map[string]string{
	"output":    "output",
	"verbose":   "verbose",
	"fail-on":   "fail_on",
	"workers":   "workers",
	"cache":     "cache.enabled",
	"cache-dir": "cache.path",
}

// Package-level koanf instance and config file tracking
var (
	k              = koanf.New(".")
	configFileUsed string
	currentConfig  *Config
)

// ResetConfig resets the koanf instance. Used for testing.
func ResetConfig() {
	k = koanf.New(".")
	configFileUsed = ""
	currentConfig = nil
}

// findConfigFileUpward searches upward from startDir for a config file.
// Returns empty string if not found within maxUpwardSearchLevels.
func findConfigFileUpward(startDir string) string {
	dir := startDir
	for range maxUpwardSearchLevels {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// parserFor picks the koanf parser by file extension.
func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return kjson.Parser()
	}
}

// defaults flattens Default() into a koanf tree through its JSON encoding.
func defaults() (map[string]any, error) {
	d := DefaultFile()
	raw, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	m["verbose"] = false
	return m, nil
}

// LoadConfig loads configuration from defaults, file, environment and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
//
// A missing explicit file or a malformed file is not fatal: it is logged
// at info level and the remaining layers are applied over the defaults.
func LoadConfig(cfgFile string, flags *pflag.FlagSet, logger *slog.Logger) (*Config, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	k = koanf.New(".")
	configFileUsed = ""

	// 1. Defaults
	m, err := defaults()
	if err != nil {
		return nil, fmt.Errorf("failed to build defaults: %w", err)
	}
	if err := k.Load(confmap.Provider(m, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	path := cfgFile
	if path == "" {
		if cwd, err := os.Getwd(); err == nil {
			path = findConfigFileUpward(cwd)
		}
	}
	if path != "" {
		if err := loadFile(path); err != nil {
			logger.Info("using default configuration", slog.String("path", path), slog.String("reason", err.Error()))
		} else {
			configFileUsed = path
		}
	}

	// 3. Environment: PINELINT_CACHE__ENABLED -> cache.enabled
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.ReplaceAll(key, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags the user set
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			key, ok := flagKeys[f.Name]
			if !f.Changed || !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// 5. Decode
	// Decode into zero values: the tree already holds every default.
	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	if err := k.Unmarshal("", &cfg.Rules); err != nil {
		logger.Info("using default rules", slog.String("reason", err.Error()))
		cfg.Rules = Default().Rules
	}
	for _, p := range cfg.Rules.Problems() {
		logger.Warn("config problem", slog.String("problem", p))
	}

	currentConfig = cfg
	return cfg, nil
}

// loadFile merges one config file into k, leaving k untouched on failure.
func loadFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return errors.New("config path is a directory")
	}

	fk := koanf.New(".")
	if err := fk.Load(file.Provider(path), parserFor(path)); err != nil {
		return fmt.Errorf("error reading config file %s: %w", path, err)
	}
	// severity_levels from a file replaces the default lists wholesale.
	if fk.Exists("severity_levels") {
		k.Delete("severity_levels")
	}
	return k.Merge(fk)
}

// GetConfigFileUsed returns the path to the config file being used, if any.
func GetConfigFileUsed() string {
	return configFileUsed
}

// GetCurrentConfig returns the currently loaded configuration.
func GetCurrentConfig() *Config {
	return currentConfig
}

// LoggerKey returns the context key used for storing the logger.
// This allows the commands package to retrieve the logger from context
// without creating an import cycle with the cli package.
func LoggerKey() any {
	return loggerKey{}
}

// WithLogger returns ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
			return l
		}
	}
	return slog.New(slog.DiscardHandler)
}
