package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frame(t *testing.T, msg map[string]any) string {
	t.Helper()
	body, err := json.Marshal(msg)
	require.NoError(t, err)
	return fmt.Sprintf("Content-Length: %d\r\n\r\n%s", len(body), body)
}

func TestNewLSPCommand(t *testing.T) {
	cmd := NewLSPCommand("dev")

	assert.Equal(t, "lsp", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotNil(t, cmd.Flags().Lookup("disable"))
	assert.NotNil(t, cmd.Flags().Lookup("severity-override"))
}

func TestLSPCommand_Session(t *testing.T) {
	in := frame(t, map[string]any{"jsonrpc": "2.0", "id": 1, "method": "initialize", "params": map[string]any{"rootUri": "file:///tmp"}}) +
		frame(t, map[string]any{"jsonrpc": "2.0", "id": 2, "method": "shutdown"}) +
		frame(t, map[string]any{"jsonrpc": "2.0", "method": "exit"})

	cmd := NewLSPCommand("9.9.9")
	out := new(bytes.Buffer)
	cmd.SetIn(bytes.NewBufferString(in))
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), `"serverInfo":{"name":"pinelint","version":"9.9.9"}`)
	assert.Contains(t, out.String(), `"documentFormattingProvider":true`)
}

func TestLSPCommand_InvalidOverride(t *testing.T) {
	cmd := NewLSPCommand("dev")
	cmd.SetIn(new(bytes.Buffer))
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"--severity-override", "nope=error"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown rule")
}
