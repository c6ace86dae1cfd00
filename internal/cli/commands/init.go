package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/pinelint/internal/cli/config"
	"github.com/leapstack-labs/pinelint/internal/cli/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool
	var format string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a default pinelint configuration",
		Long: `Write the default configuration to pinelint.yaml or pinelint.json.

The file lists every rule with its default setting, the section order,
severity levels and file discovery options, ready to edit.`,
		Example: `  # Initialize in current directory
  pinelint init

  # Write JSON compatible with existing tooling
  pinelint init --format json

  # Initialize in another directory
  pinelint init ./indicators

  # Force overwrite existing config
  pinelint init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			cfg := getConfig()
			mode, err := output.ParseMode(cfg.OutputFormat)
			if err != nil {
				mode = output.ModeAuto
			}
			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

			return runInit(r, dir, format, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")
	cmd.Flags().StringVar(&format, "format", "yaml", "Config format: yaml, json")
	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"yaml", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runInit(r *output.Renderer, dir, format string, force bool) error {
	var (
		name string
		data []byte
		err  error
	)
	switch format {
	case "yaml", "yml":
		name = "pinelint.yaml"
		data, err = marshalYAML(config.DefaultFile())
	case "json":
		name = "pinelint.json"
		data, err = json.MarshalIndent(config.DefaultFile(), "", "  ")
		data = append(data, '\n')
	default:
		return fmt.Errorf("unknown config format %q (valid: yaml, json)", format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, name)
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("%s already exists. Use --force to overwrite", configPath)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}

	r.StatusLine(configPath, "success", "created")
	r.Println("")
	r.Success("pinelint configured")
	r.Muted("Run 'pinelint lint -r .' to check your scripts")
	return nil
}

func marshalYAML(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
