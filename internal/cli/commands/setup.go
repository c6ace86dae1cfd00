package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/leapstack-labs/pinelint/internal/cli/config"
	"github.com/leapstack-labs/pinelint/internal/cli/output"
	"github.com/leapstack-labs/pinelint/internal/discover"
	"github.com/leapstack-labs/pinelint/internal/engine"
	"github.com/leapstack-labs/pinelint/internal/state"
	"github.com/leapstack-labs/pinelint/pkg/core"
	"github.com/leapstack-labs/pinelint/pkg/lint"
	"github.com/spf13/cobra"
)

// errIssuesFound is returned when a run fails the configured threshold.
var errIssuesFound = errors.New("lint issues found")

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext for cmd. Cfg is a copy the
// command may adjust. A non-empty format overrides the configured output mode.
func NewCommandContext(cmd *cobra.Command, format string) (*CommandContext, error) {
	cfg := *getConfig()
	logger := config.GetLogger(cmd.Context())

	mode := cfg.OutputFormat
	if format != "" {
		mode = format
	}
	m, err := output.ParseMode(mode)
	if err != nil {
		return nil, err
	}

	return &CommandContext{
		Cfg:      &cfg,
		Logger:   logger,
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), m),
	}, nil
}

// getConfig returns the loaded configuration, or the defaults when a
// command runs without the root command.
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}
	return config.Default()
}

// runOptions are the options lint and fix share.
type runOptions struct {
	Recursive         bool
	Format            string
	Disable           []string
	SeverityOverrides []string
	Workers           int
}

func (o *runOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&o.Recursive, "recursive", "r", false, "Descend into subdirectories")
	cmd.Flags().StringVarP(&o.Format, "format", "f", "", "Output format: text, json, github")
	cmd.Flags().StringSliceVar(&o.Disable, "disable", nil, "Rule IDs to disable")
	cmd.Flags().StringSliceVar(&o.SeverityOverrides, "severity-override", nil, "Override a rule severity (rule=level)")
	cmd.Flags().IntVarP(&o.Workers, "workers", "j", 0, "Files processed concurrently (0 = GOMAXPROCS)")
	cmd.Flags().String("fail-on", "", "Lowest severity that fails the run: error, warning, info, never")

	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "json", "github"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("fail-on", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"error", "warning", "info", "never"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("disable", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return core.RuleIDs(), cobra.ShellCompDirectiveNoFileComp
	})
}

// failThreshold resolves --fail-on over the configured value.
func failThreshold(cmd *cobra.Command, cfg *config.Config) (core.FailThreshold, error) {
	value := cfg.FailOn
	if f := cmd.Flags().Lookup("fail-on"); f != nil && f.Changed {
		value = f.Value.String()
	}
	t, ok := core.ParseFailThreshold(value)
	if !ok {
		return t, fmt.Errorf("invalid --fail-on %q (valid: error, warning, info, never)", value)
	}
	return t, nil
}

// ruleConfig returns a copy of the configured rules with CLI disables added.
func ruleConfig(cfg *config.Config, opts *runOptions) *core.RuleConfig {
	rc := cfg.Rules
	rc.DisabledRules = append(slices.Clone(rc.DisabledRules), opts.Disable...)
	return &rc
}

// lintConfig resolves disabled rules and severity overrides. CLI overrides
// win over severity_levels.
func lintConfig(rc *core.RuleConfig, overrides []string) (*lint.Config, error) {
	lc := lint.NewConfigFromRuleConfig(rc)
	for _, o := range overrides {
		id, level, ok := strings.Cut(o, "=")
		if !ok {
			return nil, fmt.Errorf("invalid severity override %q (want rule=level)", o)
		}
		id = strings.TrimSpace(id)
		if !slices.Contains(core.RuleIDs(), id) {
			return nil, fmt.Errorf("invalid severity override %q: unknown rule %q", o, id)
		}
		sev, ok := core.ParseSeverity(level)
		if !ok {
			return nil, fmt.Errorf("invalid severity override %q: unknown severity %q", o, level)
		}
		lc.SetSeverity(id, sev)
	}
	return lc, nil
}

// discoverFiles expands path arguments into the files to process.
func discoverFiles(cc *CommandContext, paths []string, recursive bool) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}
	return discover.Files(paths, discover.Options{
		Extensions:     cc.Cfg.Rules.FileExtensions,
		IgnorePatterns: cc.Cfg.Rules.IgnorePatterns,
		Recursive:      recursive,
		Logger:         cc.Logger,
	})
}

// openCache opens the lint cache when enabled. A cache that cannot be
// opened is logged and the run continues without it.
func openCache(cc *CommandContext) (state.Store, func()) {
	if !cc.Cfg.Cache.Enabled {
		return nil, func() {}
	}
	path := cc.Cfg.Cache.Path
	if path == "" {
		path = state.DefaultPath
	}
	store := state.NewSQLiteStore()
	if err := store.Open(path); err != nil {
		cc.Logger.Warn("lint cache disabled", slog.String("path", path), slog.String("error", err.Error()))
		return nil, func() {}
	}
	return store, func() { _ = store.Close() }
}

// newEngine builds an engine for lint or fix. The returned cleanup closes
// the cache.
func newEngine(cc *CommandContext, opts *runOptions, cfg engine.Config) (*engine.Engine, func(), error) {
	rc := ruleConfig(cc.Cfg, opts)
	lc, err := lintConfig(rc, opts.SeverityOverrides)
	if err != nil {
		return nil, nil, err
	}

	cfg.Rules = rc
	cfg.Lint = lc
	cfg.Logger = cc.Logger
	cfg.Workers = cc.Cfg.Workers
	if opts.Workers > 0 {
		cfg.Workers = opts.Workers
	}

	cache, cleanup := openCache(cc)
	cfg.Cache = cache

	eng, err := engine.New(cfg)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return eng, cleanup, nil
}
