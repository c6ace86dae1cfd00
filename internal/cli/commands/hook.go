package commands

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/spf13/cobra"
)

// hookMarker identifies hooks written by pinelint.
const hookMarker = "# pinelint pre-commit hook"

var hookTemplate = template.Must(template.New("pre-commit").Parse(`#!/bin/sh
` + hookMarker + `
files=$(git diff --cached --name-only --diff-filter=ACM --{{range .Patterns}} '{{.}}'{{end}})
[ -z "$files" ] && exit 0
{{if .Fix}}
pinelint fix -n $files || exit 1
git add $files
{{end}}
exec pinelint lint $files
`))

// NewHookCommand creates the hook command.
func NewHookCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hook",
		Short: "Manage the git pre-commit hook",
		Long: `Install or remove a git pre-commit hook that lints staged Pine Script
files before every commit.`,
	}

	cmd.AddCommand(newHookInstallCommand())
	cmd.AddCommand(newHookUninstallCommand())
	return cmd
}

func newHookInstallCommand() *cobra.Command {
	var fixFirst, force bool

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Install the pre-commit hook",
		Example: `  # Lint staged scripts on commit
  pinelint hook install

  # Fix staged scripts, re-stage them, then lint
  pinelint hook install --fix`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, err := NewCommandContext(cmd, "")
			if err != nil {
				return err
			}

			hookPath, err := preCommitPath(".")
			if err != nil {
				return err
			}
			if existing, err := os.ReadFile(hookPath); err == nil { //nolint:gosec // G304: hook path under .git
				if !bytes.Contains(existing, []byte(hookMarker)) && !force {
					return fmt.Errorf("%s already exists and was not written by pinelint. Use --force to overwrite", hookPath)
				}
			}

			script, err := renderHook(cc.Cfg.Rules.FileExtensions, fixFirst)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(hookPath), 0750); err != nil {
				return fmt.Errorf("failed to create hooks directory: %w", err)
			}
			if err := os.WriteFile(hookPath, script, 0755); err != nil { //nolint:gosec // G306: hooks must be executable
				return fmt.Errorf("failed to write hook: %w", err)
			}

			cc.Renderer.StatusLine(hookPath, "success", "installed")
			return nil
		},
	}

	cmd.Flags().BoolVar(&fixFirst, "fix", false, "Run pinelint fix on staged files before linting")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing hook")
	return cmd
}

func newHookUninstallCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall",
		Short: "Remove the pre-commit hook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, err := NewCommandContext(cmd, "")
			if err != nil {
				return err
			}

			hookPath, err := preCommitPath(".")
			if err != nil {
				return err
			}
			existing, err := os.ReadFile(hookPath) //nolint:gosec // G304: hook path under .git
			if errors.Is(err, os.ErrNotExist) {
				cc.Renderer.StatusLine(hookPath, "skipped", "not installed")
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to read hook: %w", err)
			}
			if !bytes.Contains(existing, []byte(hookMarker)) {
				return fmt.Errorf("%s was not written by pinelint", hookPath)
			}
			if err := os.Remove(hookPath); err != nil {
				return fmt.Errorf("failed to remove hook: %w", err)
			}

			cc.Renderer.StatusLine(hookPath, "success", "removed")
			return nil
		},
	}
}

// renderHook builds the hook script for the given extensions.
func renderHook(extensions []string, fixFirst bool) ([]byte, error) {
	patterns := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		patterns = append(patterns, "*"+ext)
	}
	if len(patterns) == 0 {
		return nil, errors.New("no file extensions configured")
	}

	var buf bytes.Buffer
	err := hookTemplate.Execute(&buf, struct {
		Patterns []string
		Fix      bool
	}{patterns, fixFirst})
	if err != nil {
		return nil, fmt.Errorf("failed to render hook: %w", err)
	}
	return buf.Bytes(), nil
}

// preCommitPath finds the repository containing dir and returns the path
// of its pre-commit hook.
func preCommitPath(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for d := abs; ; d = filepath.Dir(d) {
		gitPath := filepath.Join(d, ".git")
		info, err := os.Stat(gitPath)
		if err == nil {
			gitDir := gitPath
			if !info.IsDir() {
				// Worktrees and submodules use a "gitdir: <path>" file.
				data, err := os.ReadFile(gitPath) //nolint:gosec // G304: .git file of the repository
				if err != nil {
					return "", fmt.Errorf("failed to read %s: %w", gitPath, err)
				}
				target, ok := strings.CutPrefix(strings.TrimSpace(string(data)), "gitdir:")
				if !ok {
					return "", fmt.Errorf("unrecognized .git file at %s", gitPath)
				}
				gitDir = strings.TrimSpace(target)
				if !filepath.IsAbs(gitDir) {
					gitDir = filepath.Join(d, gitDir)
				}
			}
			return filepath.Join(gitDir, "hooks", "pre-commit"), nil
		}
		if filepath.Dir(d) == d {
			return "", fmt.Errorf("not a git repository: %s", abs)
		}
	}
}
