package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/pinelint/internal/testutil"
	"github.com/leapstack-labs/pinelint/pkg/core"
)

func TestFindingToDiagnostic(t *testing.T) {
	doc := newDocument("file:///x.pine", "//@version=6\nf() =>\n    var x = 1\n", 1)

	tests := []struct {
		name    string
		finding core.Finding
		want    Diagnostic
	}{
		{
			name:    "indented line starts at first non-blank",
			finding: core.Finding{RuleID: core.RuleVariablePlacement, Message: "moved", Line: 3, Severity: core.SeverityWarning},
			want: Diagnostic{
				Range:    Range{Start: Position{Line: 2, Character: 4}, End: Position{Line: 2, Character: 13}},
				Severity: DiagnosticSeverityWarning,
				Code:     core.RuleVariablePlacement,
				Source:   "pinelint",
				Message:  "moved",
			},
		},
		{
			name:    "file level finding lands on the first line",
			finding: core.Finding{RuleID: core.RuleRequireVersion, Message: "missing", Line: 0, Severity: core.SeverityError},
			want: Diagnostic{
				Range:    Range{Start: Position{Line: 0, Character: 0}, End: Position{Line: 0, Character: 12}},
				Severity: DiagnosticSeverityError,
				Code:     core.RuleRequireVersion,
				Source:   "pinelint",
				Message:  "missing",
			},
		},
		{
			name:    "low confidence is spelled out",
			finding: core.Finding{RuleID: core.RuleFunctionPlacement, Message: "ambiguous", Line: 2, Severity: core.SeverityInfo, LowConfidence: true},
			want: Diagnostic{
				Range:    Range{Start: Position{Line: 1, Character: 0}, End: Position{Line: 1, Character: 6}},
				Severity: DiagnosticSeverityInformation,
				Code:     core.RuleFunctionPlacement,
				Source:   "pinelint",
				Message:  "ambiguous (low confidence)",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, findingToDiagnostic(doc, tt.finding))
		})
	}
}

func TestToDiagnosticSeverity(t *testing.T) {
	assert.Equal(t, DiagnosticSeverityError, toDiagnosticSeverity(core.SeverityError))
	assert.Equal(t, DiagnosticSeverityWarning, toDiagnosticSeverity(core.SeverityWarning))
	assert.Equal(t, DiagnosticSeverityInformation, toDiagnosticSeverity(core.SeverityInfo))
}

func TestServer_Diagnose(t *testing.T) {
	t.Run("misplaced variable", func(t *testing.T) {
		s := NewServer(nil, nil, Config{})
		diags := s.diagnose(newDocument("file:///x.pine", testutil.MisplacedScript, 1))

		require.Len(t, diags, 1)
		assert.Equal(t, core.RuleVariablePlacement, diags[0].Code)
		assert.Equal(t, uint32(16), diags[0].Range.Start.Line)
		assert.Equal(t, DiagnosticSeverityWarning, diags[0].Severity)
	})

	t.Run("clean script", func(t *testing.T) {
		s := NewServer(nil, nil, Config{})
		assert.Empty(t, s.diagnose(newDocument("file:///x.pine", testutil.CleanScript, 1)))
	})

	t.Run("disabled rule", func(t *testing.T) {
		rc := core.DefaultRuleConfig()
		rc.DisabledRules = []string{core.RuleVariablePlacement}
		s := NewServer(nil, nil, Config{Rules: &rc})
		assert.Empty(t, s.diagnose(newDocument("file:///x.pine", testutil.MisplacedScript, 1)))
	})
}

func TestServer_Lintable(t *testing.T) {
	s := NewServer(nil, nil, Config{})

	assert.True(t, s.lintable("file:///a/b.pine"))
	assert.True(t, s.lintable("file:///a/B.PINESCRIPT"))
	assert.False(t, s.lintable("file:///a/notes.txt"))

	rc := core.DefaultRuleConfig()
	rc.FileExtensions = nil
	all := NewServer(nil, nil, Config{Rules: &rc})
	assert.True(t, all.lintable("file:///a/notes.txt"))
}
