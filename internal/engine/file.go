package engine

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/leapstack-labs/pinelint/internal/state"
	"github.com/leapstack-labs/pinelint/pkg/core"
	"github.com/pmezard/go-difflib/difflib"
)

// LintFile lints one file, consulting the cache when configured.
func (e *Engine) LintFile(path string) FileResult {
	res := FileResult{Path: path}

	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from discovery
	if err != nil {
		e.logger.Error("failed to read file", slog.String("path", path), slog.String("error", err.Error()))
		res.Err = fmt.Errorf("read %s: %w", path, err)
		return res
	}

	contentHash := state.ContentHash(data)
	if findings, ok := e.lookup(path, contentHash); ok {
		res.Findings = findings
		res.Cached = true
		return res
	}

	res.Findings = e.analyzer.AnalyzeText(string(data), e.cfg.Rules)
	e.store(path, contentHash, res.Findings)
	return res
}

// FixFile fixes one file. On any error the file is left untouched.
func (e *Engine) FixFile(path string) FileResult {
	res := FileResult{Path: path}

	info, err := os.Stat(path)
	if err != nil {
		e.logger.Error("failed to stat file", slog.String("path", path), slog.String("error", err.Error()))
		res.Err = fmt.Errorf("stat %s: %w", path, err)
		return res
	}
	data, err := os.ReadFile(path) //nolint:gosec // G304: path comes from discovery
	if err != nil {
		e.logger.Error("failed to read file", slog.String("path", path), slog.String("error", err.Error()))
		res.Err = fmt.Errorf("read %s: %w", path, err)
		return res
	}
	original := string(data)

	result, err := e.fixer.Fix(original)
	if err != nil {
		e.logger.Error("fix failed", slog.String("path", path), slog.String("error", err.Error()))
		res.Err = fmt.Errorf("fix %s: %w", path, err)
		return res
	}
	res.Fix = result

	if result.Changed && e.cfg.Diff {
		diff, err := unifiedDiff(path, original, result.Text)
		if err != nil {
			res.Err = err
			return res
		}
		res.Diff = diff
	}

	if result.Changed && !e.cfg.DryRun {
		if e.cfg.Backup {
			res.Backup = path + ".bak"
			if err := writeFileAtomic(res.Backup, data, info.Mode().Perm()); err != nil {
				e.logger.Error("failed to write backup", slog.String("path", res.Backup), slog.String("error", err.Error()))
				res.Err = fmt.Errorf("backup %s: %w", path, err)
				res.Backup = ""
				return res
			}
		}
		if err := writeFileAtomic(path, []byte(result.Text), info.Mode().Perm()); err != nil {
			e.logger.Error("failed to write file", slog.String("path", path), slog.String("error", err.Error()))
			res.Err = fmt.Errorf("write %s: %w", path, err)
			return res
		}
		res.Written = true
		e.logger.Debug("fixed file", slog.String("path", path), slog.Int("rounds", result.Rounds))
	}

	res.Findings = e.analyzer.AnalyzeText(result.Text, e.cfg.Rules)
	if res.Written || !result.Changed {
		e.store(path, state.ContentHash([]byte(result.Text)), res.Findings)
	}
	return res
}

func (e *Engine) lookup(path, contentHash string) ([]core.Finding, bool) {
	if e.cfg.Cache == nil {
		return nil, false
	}
	findings, ok, err := e.cfg.Cache.Lookup(path, contentHash, e.configHash)
	if err != nil {
		e.logger.Warn("cache lookup failed", slog.String("path", path), slog.String("error", err.Error()))
		return nil, false
	}
	return findings, ok
}

func (e *Engine) store(path, contentHash string, findings []core.Finding) {
	if e.cfg.Cache == nil {
		return
	}
	err := e.cfg.Cache.Put(state.Entry{
		Path:        path,
		ContentHash: contentHash,
		ConfigHash:  e.configHash,
		Findings:    findings,
	})
	if err != nil {
		e.logger.Warn("cache store failed", slog.String("path", path), slog.String("error", err.Error()))
	}
}

func unifiedDiff(path, before, after string) (string, error) {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: path,
		ToFile:   path + " (fixed)",
		Context:  3,
	})
	if err != nil {
		return "", fmt.Errorf("diff %s: %w", path, err)
	}
	return diff, nil
}
