package commands

import (
	"github.com/leapstack-labs/pinelint/internal/lsp"
	"github.com/spf13/cobra"
)

// LSPOptions holds options for the lsp command.
type LSPOptions struct {
	Disable           []string
	SeverityOverrides []string
}

// NewLSPCommand creates the lsp command.
func NewLSPCommand(version string) *cobra.Command {
	opts := &LSPOptions{}

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Run the language server over stdio",
		Long: `Run a Language Server Protocol server on stdin and stdout.

Editors get pinelint findings as diagnostics while typing, a
"Fix all pinelint issues" code action, and document formatting backed
by the fixer. The server uses the same configuration file as lint and fix.`,
		Example: `  # Neovim (lspconfig)
  cmd = { "pinelint", "lsp" }`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLSP(cmd, version, opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule IDs to disable")
	cmd.Flags().StringSliceVar(&opts.SeverityOverrides, "severity-override", nil, "Override a rule severity (rule=level)")

	return cmd
}

func runLSP(cmd *cobra.Command, version string, opts *LSPOptions) error {
	cc, err := NewCommandContext(cmd, "")
	if err != nil {
		return err
	}

	rc := ruleConfig(cc.Cfg, &runOptions{Disable: opts.Disable})
	lc, err := lintConfig(rc, opts.SeverityOverrides)
	if err != nil {
		return err
	}

	server := lsp.NewServer(cmd.InOrStdin(), cmd.OutOrStdout(), lsp.Config{
		Rules:   rc,
		Lint:    lc,
		Version: version,
		Logger:  cc.Logger,
	})
	return server.Run()
}
