package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/leapstack-labs/pinelint/internal/cli/config"
	"github.com/leapstack-labs/pinelint/internal/cli/output"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd()

	assert.Equal(t, "pinelint", cmd.Use)
	assert.True(t, cmd.SilenceUsage)
	assert.True(t, cmd.SilenceErrors)

	for _, name := range []string{"config", "verbose", "output"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(name), "flag %q should exist", name)
	}
	assert.Equal(t, "c", cmd.PersistentFlags().Lookup("config").Shorthand)

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Subset(t, names, []string{"lint", "fix", "rules", "init", "hook", "lsp", "version", "completion"})
}

func TestPersistentPreRun_StoresContext(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Cleanup(config.ResetConfig)

	root := NewRootCmd()
	var got context.Context
	probe := &cobra.Command{
		Use: "probe",
		RunE: func(cmd *cobra.Command, _ []string) error {
			got = cmd.Context()
			return nil
		},
	}
	root.AddCommand(probe)

	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs([]string{"-o", "json", "probe"})
	require.NoError(t, root.Execute())

	require.NotNil(t, got)
	assert.Equal(t, "json", GetConfig(got).OutputFormat)
	assert.Equal(t, output.ModeJSON, GetRenderer(got).EffectiveMode())
	assert.NotNil(t, config.GetLogger(got))
}

func TestPersistentPreRun_InvalidOutput(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Cleanup(config.ResetConfig)

	root := NewRootCmd()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs([]string{"-o", "yaml", "rules"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output mode")
}

func TestGetConfig_Defaults(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, config.Default(), GetConfig(ctx))
	assert.Equal(t, output.ModeText, GetRenderer(ctx).EffectiveMode())
}
