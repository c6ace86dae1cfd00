package commands

import (
	"context"
	"fmt"

	"github.com/leapstack-labs/pinelint/internal/engine"
	"github.com/leapstack-labs/pinelint/pkg/report"
	"github.com/spf13/cobra"
)

// LintOptions holds options for the lint command.
type LintOptions struct {
	runOptions
	Watch bool // Re-lint on change
	Cache bool // Use the lint cache
}

// NewLintCommand creates the lint command.
func NewLintCommand() *cobra.Command {
	opts := &LintOptions{}
	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Check Pine Script files for structural issues",
		Long: `Analyze Pine Script files and report structural issues.

Checks the version pragma, required sections and their order, placement
of functions, inputs, variables and imports, naming conventions and line
continuation. Rules are configured in pinelint.json or pinelint.yaml.

Output adapts to environment:
  - Terminal: Styled output with colors
  - Piped/Scripted: Plain text
  - JSON: Machine-readable report
  - GitHub: Workflow annotations`,
		Example: `  # Lint the current directory
  pinelint lint

  # Lint a directory tree
  pinelint lint -r ./strategies

  # Output as GitHub annotations
  pinelint lint -r --format github .

  # Disable a rule and downgrade another
  pinelint lint --disable naming_conventions --severity-override function_placement=warning

  # Only fail on errors
  pinelint lint --fail-on error

  # Re-lint on every save
  pinelint lint -r --watch .`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, opts)
		},
	}

	opts.addFlags(cmd)
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Watch files and re-lint on change")
	cmd.Flags().BoolVar(&opts.Cache, "cache", false, "Reuse results for unchanged files")

	return cmd
}

func runLint(cmd *cobra.Command, paths []string, opts *LintOptions) error {
	cc, err := NewCommandContext(cmd, opts.Format)
	if err != nil {
		return err
	}
	if opts.Cache {
		cc.Cfg.Cache.Enabled = true
	}

	threshold, err := failThreshold(cmd, cc.Cfg)
	if err != nil {
		return err
	}

	files, err := discoverFiles(cc, paths, opts.Recursive)
	if err != nil {
		return err
	}

	eng, cleanup, err := newEngine(cc, &opts.runOptions, engine.Config{})
	if err != nil {
		return err
	}
	defer cleanup()

	if opts.Watch {
		return watchLint(cmd.Context(), cc, eng, paths, files, opts.Recursive)
	}

	rep, err := lintFiles(cmd.Context(), cc, eng, files)
	if err != nil {
		return err
	}
	if rep.Failed(threshold) {
		return errIssuesFound
	}
	return nil
}

// lintFiles lints files and renders the report.
func lintFiles(ctx context.Context, cc *CommandContext, eng *engine.Engine, files []string) (*report.Report, error) {
	results, err := eng.Lint(ctx, files)
	if err != nil {
		return nil, err
	}
	rep := eng.Report("lint", results)
	if err := renderReport(cc.Renderer, rep); err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}
	return rep, nil
}
