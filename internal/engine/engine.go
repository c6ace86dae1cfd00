// Package engine runs lint and fix over batches of files.
//
// Files are processed concurrently on a bounded errgroup. A failure on one
// file is carried on its FileResult and never aborts the batch. Fixed text
// is written atomically after an optional .bak backup, then re-linted so the
// caller reports what remains.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/leapstack-labs/pinelint/internal/state"
	"github.com/leapstack-labs/pinelint/pkg/core"
	"github.com/leapstack-labs/pinelint/pkg/fix"
	"github.com/leapstack-labs/pinelint/pkg/lint"
	_ "github.com/leapstack-labs/pinelint/pkg/lint/rules" // register the rule catalogue
	"github.com/leapstack-labs/pinelint/pkg/report"
	"golang.org/x/sync/errgroup"
)

// Config holds engine configuration.
type Config struct {
	// Rules is the loaded rule configuration (defaults if nil).
	Rules *core.RuleConfig
	// Lint carries disabled rules and severity overrides (derived from Rules if nil).
	Lint *lint.Config
	// Workers bounds concurrency; 0 uses GOMAXPROCS.
	Workers int
	// Backup writes <path>.bak before a fixed file is replaced.
	Backup bool
	// DryRun computes fixes without writing them.
	DryRun bool
	// Diff renders a unified diff for every changed file.
	Diff bool
	// Cache stores lint results between runs (optional).
	Cache state.Store
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
}

// FileResult is the outcome for one file.
type FileResult struct {
	Path     string
	Findings []core.Finding
	Fix      *fix.Result
	Diff     string
	Written  bool
	Backup   string
	Cached   bool
	Err      error
}

// Engine processes files under one configuration.
type Engine struct {
	cfg        Config
	logger     *slog.Logger
	analyzer   *lint.Analyzer
	fixer      *fix.Fixer
	configHash string
}

// New creates an engine.
func New(cfg Config) (*Engine, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Rules == nil {
		d := core.DefaultRuleConfig()
		cfg.Rules = &d
	}
	if cfg.Lint == nil {
		cfg.Lint = lint.NewConfigFromRuleConfig(cfg.Rules)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}

	analyzer := lint.NewAnalyzer(cfg.Lint, lint.WithLogger(logger))

	ruleIDs := make([]string, 0, len(analyzer.Rules()))
	for _, r := range analyzer.Rules() {
		ruleIDs = append(ruleIDs, r.ID())
	}
	hash, err := state.ConfigHash(cfg.Rules, cfg.Lint, ruleIDs)
	if err != nil {
		return nil, err
	}

	logger.Debug("initializing engine", slog.Int("workers", cfg.Workers), slog.Bool("cache", cfg.Cache != nil))

	return &Engine{
		cfg:        cfg,
		logger:     logger,
		analyzer:   analyzer,
		fixer:      fix.New(cfg.Rules, fix.WithLogger(logger)),
		configHash: hash,
	}, nil
}

// ConfigHash returns the hash of the effective rule configuration.
func (e *Engine) ConfigHash() string { return e.configHash }

// Lint lints every path. Results are returned in input order.
func (e *Engine) Lint(ctx context.Context, paths []string) ([]FileResult, error) {
	return e.each(ctx, paths, e.LintFile)
}

// Fix fixes every path. Results are returned in input order.
func (e *Engine) Fix(ctx context.Context, paths []string) ([]FileResult, error) {
	return e.each(ctx, paths, e.FixFile)
}

func (e *Engine) each(ctx context.Context, paths []string, fn func(string) FileResult) ([]FileResult, error) {
	results := make([]FileResult, len(paths))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(e.cfg.Workers)

	for i, path := range paths {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = FileResult{Path: path, Err: err}
				return err
			}
			results[i] = fn(path)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return results, fmt.Errorf("batch interrupted: %w", err)
	}
	return results, nil
}

// Report converts results into a run report. A cache-backed run is recorded
// in the run history and the report takes its run ID.
func (e *Engine) Report(command string, results []FileResult) *report.Report {
	rep := report.New()
	if e.cfg.Cache != nil {
		if run, err := e.cfg.Cache.CreateRun(command); err != nil {
			e.logger.Warn("failed to record run", slog.String("error", err.Error()))
		} else {
			rep = report.NewWithRunID(run.ID)
			defer func() {
				status := state.RunStatusCompleted
				if rep.Summary.FilesFailed > 0 {
					status = state.RunStatusFailed
				}
				if err := e.cfg.Cache.CompleteRun(run.ID, status, rep.Summary.Files, rep.Summary.Issues); err != nil {
					e.logger.Warn("failed to complete run", slog.String("error", err.Error()))
				}
			}()
		}
	}

	for _, res := range results {
		fr := report.FileReport{
			Path:     res.Path,
			Findings: res.Findings,
			Cached:   res.Cached,
		}
		if res.Fix != nil {
			fr.Fixed = res.Fix.Changed
			fr.Changes = res.Fix.Changes
		}
		if res.Err != nil {
			fr.Error = res.Err.Error()
		}
		rep.Add(fr)
	}
	return rep
}
