package commands

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/pinelint/internal/cli/output"
	"github.com/leapstack-labs/pinelint/internal/engine"
	"github.com/leapstack-labs/pinelint/pkg/fix"
	"github.com/spf13/cobra"
)

// FixOptions holds options for the fix command.
type FixOptions struct {
	runOptions
	NoBackup bool // Skip <path>.bak
	Diff     bool // Print diffs, write nothing
	Check    bool // Fail if a fix would change a file, write nothing
}

// NewFixCommand creates the fix command.
func NewFixCommand() *cobra.Command {
	opts := &FixOptions{}
	cmd := &cobra.Command{
		Use:   "fix [paths...]",
		Short: "Repair structural issues in Pine Script files",
		Long: `Rewrite Pine Script files so they follow the configured structure.

Fixes add or move the version pragma, add missing sections, move
declarations into their sections, rename identifiers to the configured
naming conventions and repair line continuations. Passes repeat until the
file stops changing.

Each changed file is backed up to <path>.bak (unless --no-backup) and
written atomically. Remaining issues are reported afterwards.`,
		Example: `  # Fix a single script
  pinelint fix strategy.pine

  # Fix a tree without backups
  pinelint fix -r -n ./scripts

  # Show what would change
  pinelint fix --diff strategy.pine

  # Fail in CI when a file is not fixed
  pinelint fix -r --check .`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, args, opts)
		},
	}

	opts.addFlags(cmd)
	cmd.Flags().BoolVarP(&opts.NoBackup, "no-backup", "n", false, "Do not write <path>.bak before changing a file")
	cmd.Flags().BoolVar(&opts.Diff, "diff", false, "Print unified diffs instead of writing files")
	cmd.Flags().BoolVar(&opts.Check, "check", false, "Exit non-zero if any file would change; write nothing")

	return cmd
}

func runFix(cmd *cobra.Command, paths []string, opts *FixOptions) error {
	cc, err := NewCommandContext(cmd, opts.Format)
	if err != nil {
		return err
	}
	r := cc.Renderer

	threshold, err := failThreshold(cmd, cc.Cfg)
	if err != nil {
		return err
	}

	files, err := discoverFiles(cc, paths, opts.Recursive)
	if err != nil {
		return err
	}

	dryRun := opts.Diff || opts.Check
	eng, cleanup, err := newEngine(cc, &opts.runOptions, engine.Config{
		Backup: !opts.NoBackup,
		DryRun: dryRun,
		Diff:   opts.Diff,
	})
	if err != nil {
		return err
	}
	defer cleanup()

	results, err := eng.Fix(cmd.Context(), files)
	if err != nil {
		return err
	}

	changed := 0
	for _, res := range results {
		if res.Fix != nil && res.Fix.Changed {
			changed++
		}
	}

	if r.EffectiveMode() != output.ModeJSON {
		for _, res := range results {
			renderFixResult(r, res, dryRun)
		}
		if changed > 0 || hasFailures(results) {
			r.Println("")
		}
	}

	rep := eng.Report("fix", results)
	if err := renderReport(r, rep); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if opts.Check && changed > 0 {
		return fmt.Errorf("%d files would be changed", changed)
	}
	if rep.Failed(threshold) {
		return errIssuesFound
	}
	return nil
}

// renderFixResult prints one status line per failed or changed file,
// followed by its diff when one was computed.
func renderFixResult(r *output.Renderer, res engine.FileResult, dryRun bool) {
	switch {
	case res.Err != nil:
		r.StatusLine(res.Path, "failed", res.Err.Error())
	case res.Fix == nil || !res.Fix.Changed:
		return
	case dryRun:
		r.StatusLine(res.Path, "changed", "would fix: "+describeChanges(res.Fix.Changes))
	default:
		detail := "fixed: " + describeChanges(res.Fix.Changes)
		if res.Backup != "" {
			detail += " (backup " + res.Backup + ")"
		}
		r.StatusLine(res.Path, "success", detail)
	}

	if res.Diff != "" {
		r.Println("")
		r.Printf("%s", res.Diff)
	}
}

// describeChanges renders pass counts, e.g. "relocate_variables 1, naming 2".
func describeChanges(changes []fix.Change) string {
	parts := make([]string, 0, len(changes))
	for _, c := range changes {
		parts = append(parts, fmt.Sprintf("%s %d", c.Pass, c.Count))
	}
	return strings.Join(parts, ", ")
}

func hasFailures(results []engine.FileResult) bool {
	for _, res := range results {
		if res.Err != nil {
			return true
		}
	}
	return false
}
