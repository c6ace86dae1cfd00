package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/pinelint/internal/state"
	"github.com/leapstack-labs/pinelint/internal/testutil"
	"github.com/leapstack-labs/pinelint/pkg/core"
	"github.com/leapstack-labs/pinelint/pkg/fix"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	cfg.Logger = testutil.NewTestLogger(t)
	e, err := New(cfg)
	require.NoError(t, err)
	return e
}

func TestEngine_Lint(t *testing.T) {
	dir := t.TempDir()
	clean := testutil.WriteFile(t, dir, "clean.pine", testutil.CleanScript)
	misplaced := testutil.WriteFile(t, dir, "misplaced.pine", testutil.MisplacedScript)
	missing := filepath.Join(dir, "missing.pine")

	e := newTestEngine(t, Config{Workers: 2})
	results, err := e.Lint(context.Background(), []string{clean, misplaced, missing})
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, clean, results[0].Path)
	assert.Empty(t, results[0].Findings)
	assert.NoError(t, results[0].Err)

	require.Len(t, results[1].Findings, 1)
	f := results[1].Findings[0]
	assert.Equal(t, core.RuleVariablePlacement, f.RuleID)
	assert.Equal(t, core.SeverityWarning, f.Severity)
	assert.Equal(t, 17, f.Line)

	assert.ErrorContains(t, results[2].Err, "read")

	rep := e.Report("lint", results)
	assert.Equal(t, 3, rep.Summary.Files)
	assert.Equal(t, 1, rep.Summary.Issues)
	assert.Equal(t, 1, rep.Summary.FilesFailed)
}

func TestEngine_Fix(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "misplaced.pine", testutil.MisplacedScript)
	require.NoError(t, os.Chmod(path, 0o640))

	e := newTestEngine(t, Config{Backup: true})
	results, err := e.Fix(context.Background(), []string{path})
	require.NoError(t, err)
	require.Len(t, results, 1)

	res := results[0]
	require.NoError(t, res.Err)
	assert.True(t, res.Written)
	assert.Empty(t, res.Findings, "re-lint after fix")
	assert.Equal(t, []fix.Change{{Pass: fix.PassRelocateVariables, Count: 1}}, res.Fix.Changes)

	assert.Equal(t, testutil.MisplacedScriptFixed, testutil.ReadFile(t, path))
	assert.Equal(t, path+".bak", res.Backup)
	assert.Equal(t, testutil.MisplacedScript, testutil.ReadFile(t, res.Backup))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "no temp files left behind")
}

func TestEngine_FixModes(t *testing.T) {
	tests := []struct {
		name        string
		cfg         Config
		content     string
		wantWritten bool
		wantBackup  bool
		wantDiff    bool
	}{
		{"no backup", Config{}, testutil.MisplacedScript, true, false, false},
		{"dry run with diff", Config{DryRun: true, Diff: true, Backup: true}, testutil.MisplacedScript, false, false, true},
		{"already clean", Config{Backup: true, Diff: true}, testutil.CleanScript, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := testutil.WriteFile(t, dir, "script.pine", tt.content)

			res := newTestEngine(t, tt.cfg).FixFile(path)
			require.NoError(t, res.Err)

			assert.Equal(t, tt.wantWritten, res.Written)
			_, statErr := os.Stat(path + ".bak")
			assert.Equal(t, tt.wantBackup, statErr == nil)

			if tt.wantDiff {
				assert.Contains(t, res.Diff, "--- "+path)
				assert.Contains(t, res.Diff, "+var float peak = na")
				assert.Contains(t, res.Diff, "-var float peak = na")
			} else {
				assert.Empty(t, res.Diff)
			}
			if !tt.wantWritten {
				assert.Equal(t, tt.content, testutil.ReadFile(t, path))
			}
		})
	}
}

func TestEngine_FixNotConverged(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "script.pine", testutil.MisplacedScript)

	e := newTestEngine(t, Config{Backup: true})
	e.fixer = fix.New(e.cfg.Rules, fix.WithMaxRounds(1))

	res := e.FixFile(path)
	assert.ErrorIs(t, res.Err, fix.ErrNotConverged)
	assert.False(t, res.Written)
	assert.Equal(t, testutil.MisplacedScript, testutil.ReadFile(t, path))
	assert.NoFileExists(t, path+".bak")
}

func TestEngine_Cache(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "misplaced.pine", testutil.MisplacedScript)

	store := state.NewSQLiteStore()
	require.NoError(t, store.Open(":memory:"))
	t.Cleanup(func() { _ = store.Close() })

	e := newTestEngine(t, Config{Cache: store})

	first := e.LintFile(path)
	require.NoError(t, first.Err)
	assert.False(t, first.Cached)

	second := e.LintFile(path)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Findings, second.Findings)

	disabled := core.DefaultRuleConfig()
	disabled.DisabledRules = []string{core.RuleVariablePlacement}
	other := newTestEngine(t, Config{Rules: &disabled, Cache: store})
	assert.NotEqual(t, e.ConfigHash(), other.ConfigHash())
	third := other.LintFile(path)
	assert.False(t, third.Cached, "config change invalidates the cache")
	assert.Empty(t, third.Findings)

	testutil.WriteFile(t, dir, "misplaced.pine", testutil.CleanScript)
	fourth := e.LintFile(path)
	assert.False(t, fourth.Cached, "content change invalidates the cache")

	rep := e.Report("lint", []FileResult{fourth})
	run, err := store.GetRun(rep.RunID)
	require.NoError(t, err)
	assert.Equal(t, state.RunStatusCompleted, run.Status)
	assert.Equal(t, 1, run.FileCount)
}

func TestEngine_Cancelled(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "clean.pine", testutil.CleanScript)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := newTestEngine(t, Config{}).Lint(ctx, []string{path})
	assert.ErrorIs(t, err, context.Canceled)
	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, context.Canceled)
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.pine")

	require.NoError(t, writeFileAtomic(path, []byte("a\n"), 0o600))
	require.NoError(t, writeFileAtomic(path, []byte("b\n"), 0o644))
	assert.Equal(t, "b\n", testutil.ReadFile(t, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	err = writeFileAtomic(filepath.Join(dir, "missing", "x.pine"), []byte("x"), 0o600)
	assert.Error(t, err)
}
