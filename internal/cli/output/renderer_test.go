package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeAuto, false},
		{"auto", ModeAuto, false},
		{"TEXT", ModeText, false},
		{"json", ModeJSON, false},
		{" github ", ModeGitHub, false},
		{"markdown", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderer_EffectiveMode(t *testing.T) {
	var out, errOut bytes.Buffer

	assert.Equal(t, ModeText, NewRenderer(&out, &errOut, ModeAuto).EffectiveMode())
	assert.Equal(t, ModeText, NewRenderer(&out, &errOut, "bogus").EffectiveMode())
	assert.Equal(t, ModeJSON, NewRenderer(&out, &errOut, ModeJSON).EffectiveMode())
	assert.Equal(t, ModeGitHub, NewRenderer(&out, &errOut, ModeGitHub).EffectiveMode())
}

func TestRenderer_PlainWithoutTerminal(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewRenderer(&out, &errOut, ModeText)

	assert.False(t, r.IsTTY())

	r.Success("No lint issues found")
	r.Header("Rules")
	r.Muted("dim")
	r.Error("boom")
	r.Warning("careful")

	assert.Equal(t, "✓ No lint issues found\nRules\n\ndim\n", out.String())
	assert.Equal(t, "✗ boom\nwarning: careful\n", errOut.String())
	assert.NotContains(t, out.String(), "\x1b[")
	assert.Equal(t, "path", r.Styles().Path.Render("path"))
	assert.Equal(t, "key: value", r.FormatKeyValue("key", "value"))
}

func TestRenderer_JSON(t *testing.T) {
	var out bytes.Buffer
	r := NewRenderer(&out, &out, ModeJSON)

	require.NoError(t, r.JSON(map[string]int{"count": 2}))
	assert.JSONEq(t, `{"count": 2}`, out.String())
}

func TestRenderer_StyledOnTerminal(t *testing.T) {
	var out bytes.Buffer
	r := NewRendererWithTTY(&out, &out, true, ModeText)

	assert.True(t, r.IsTTY())
	assert.Contains(t, r.Styles().Error.Render("boom"), "\x1b[")

	plain := NewRendererWithTTY(&out, &out, true, ModeGitHub)
	assert.Equal(t, "boom", plain.Styles().Error.Render("boom"))
}
