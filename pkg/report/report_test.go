package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/leapstack-labs/pinelint/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() *Report {
	rep := NewWithRunID("run-1")
	rep.Add(FileReport{
		Path: "b.pine",
		Findings: []core.Finding{
			{RuleID: core.RuleNamingConventions, Message: "Function name 'f_x' does not follow camelCase convention", Line: 9, Severity: core.SeverityInfo},
			{RuleID: core.RuleRequireVersion, Message: "Missing version declaration (e.g., //@version=6)", Line: 1, Severity: core.SeverityError},
		},
	})
	rep.Add(FileReport{
		Path: "a.pine",
		Findings: []core.Finding{
			{RuleID: core.RuleSectionOrder, Message: "Section 'A' should come before 'B'", Line: 4, Severity: core.SeverityWarning},
		},
	})
	rep.Add(FileReport{Path: "c.pine"})
	rep.Sort()
	return rep
}

func TestReport_Summary(t *testing.T) {
	rep := sampleReport()

	assert.Equal(t, Summary{
		Files:           3,
		FilesWithIssues: 2,
		Issues:          3,
		Errors:          1,
		Warnings:        1,
		Info:            1,
	}, rep.Summary)
	assert.Equal(t, "3 issues (1 errors, 1 warnings, 1 info) in 3 files", rep.Summary.String())

	require.Len(t, rep.Files, 3)
	assert.Equal(t, "a.pine", rep.Files[0].Path)
	assert.Equal(t, 1, rep.Files[1].Findings[0].Line, "findings sorted by line")
	assert.NotNil(t, rep.Files[2].Findings)
}

func TestReport_Failed(t *testing.T) {
	never, _ := core.ParseFailThreshold("never")
	errOnly, _ := core.ParseFailThreshold("error")

	tests := []struct {
		name      string
		report    func() *Report
		threshold core.FailThreshold
		want      int
	}{
		{"any finding fails by default", sampleReport, core.FailOnAny, 1},
		{"never", sampleReport, never, 0},
		{"error threshold with an error", sampleReport, errOnly, 1},
		{
			name: "error threshold with only info",
			report: func() *Report {
				rep := New()
				rep.Add(FileReport{Path: "x.pine", Findings: []core.Finding{{Line: 1, Severity: core.SeverityInfo}}})
				return rep
			},
			threshold: errOnly,
			want:      0,
		},
		{
			name: "file error always fails",
			report: func() *Report {
				rep := New()
				rep.Add(FileReport{Path: "x.pine", Error: "permission denied"})
				return rep
			},
			threshold: never,
			want:      1,
		},
		{"clean", New, core.FailOnAny, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.report().ExitStatus(tt.threshold))
		})
	}
}

func TestNew_RunID(t *testing.T) {
	a, b := New(), New()
	assert.Len(t, a.RunID, 36)
	assert.NotEqual(t, a.RunID, b.RunID)
	assert.True(t, a.Clean())
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleReport(), FormatText))

	assert.Equal(t, "a.pine:4: warning [section_order] Section 'A' should come before 'B'\n"+
		"b.pine:1: error [require_version_declaration] Missing version declaration (e.g., //@version=6)\n"+
		"b.pine:9: info [naming_conventions] Function name 'f_x' does not follow camelCase convention\n"+
		"Summary: 3 issues (1 errors, 1 warnings, 1 info) in 3 files\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleReport(), FormatJSON))

	var decoded struct {
		RunID string `json:"run_id"`
		Files []struct {
			Path     string `json:"path"`
			Findings []struct {
				RuleID   string `json:"rule_id"`
				Line     int    `json:"line"`
				Severity string `json:"severity"`
			} `json:"findings"`
		} `json:"files"`
		Summary Summary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "run-1", decoded.RunID)
	require.Len(t, decoded.Files, 3)
	assert.Equal(t, "warning", decoded.Files[0].Findings[0].Severity)
	assert.Equal(t, 3, decoded.Summary.Issues)
}

func TestWriteGitHub(t *testing.T) {
	rep := sampleReport()
	rep.Add(FileReport{Path: "d,e.pine", Error: "read failed:\nboom"})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, rep, FormatGitHub))

	assert.Equal(t, "::warning file=a.pine,line=4::[section_order] Section 'A' should come before 'B'\n"+
		"::error file=b.pine,line=1::[require_version_declaration] Missing version declaration (e.g., //@version=6)\n"+
		"::notice file=b.pine,line=9::[naming_conventions] Function name 'f_x' does not follow camelCase convention\n"+
		"::error file=d%2Ce.pine::read failed:%0Aboom\n", buf.String())
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"text", "JSON", " github "} {
		_, err := ParseFormat(s)
		assert.NoError(t, err, s)
	}
	_, err := ParseFormat("markdown")
	assert.Error(t, err)
}
