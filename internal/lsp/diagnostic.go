package lsp

import (
	"strings"

	"github.com/leapstack-labs/pinelint/pkg/core"
)

// diagnosticSource tags every diagnostic this server publishes.
const diagnosticSource = "pinelint"

// publishDiagnostics lints the document and publishes the findings.
// Documents without a script extension get an empty list.
func (s *Server) publishDiagnostics(uri string) {
	doc := s.documents.Get(uri)
	if doc == nil {
		return
	}

	diagnostics := []Diagnostic{}
	if s.lintable(uri) {
		diagnostics = s.diagnose(doc)
	}

	version := doc.Version
	s.sendNotification("textDocument/publishDiagnostics", &PublishDiagnosticsParams{
		URI:         uri,
		Version:     &version,
		Diagnostics: diagnostics,
	})
}

// diagnose runs the analyzer over the document text.
func (s *Server) diagnose(doc *Document) []Diagnostic {
	findings := s.analyzer.AnalyzeText(doc.Content, s.rules)
	core.SortFindings(findings)

	diagnostics := make([]Diagnostic, 0, len(findings))
	for _, f := range findings {
		diagnostics = append(diagnostics, findingToDiagnostic(doc, f))
	}
	return diagnostics
}

// findingToDiagnostic spans the finding's line from its first non-blank
// character to its end. File-level findings (line 0) land on the first line.
func findingToDiagnostic(doc *Document, f core.Finding) Diagnostic {
	line := max(0, f.Line-1)
	text := doc.GetLine(line)
	start := len(text) - len(strings.TrimLeft(text, " \t"))

	msg := f.Message
	if f.LowConfidence {
		msg += " (low confidence)"
	}

	return Diagnostic{
		Range: Range{
			Start: Position{Line: uint32(line), Character: uint32(start)},     //nolint:gosec // G115: non-negative
			End:   Position{Line: uint32(line), Character: uint32(len(text))}, //nolint:gosec // G115: non-negative
		},
		Severity: toDiagnosticSeverity(f.Severity),
		Code:     f.RuleID,
		Source:   diagnosticSource,
		Message:  msg,
	}
}

func toDiagnosticSeverity(sev core.Severity) DiagnosticSeverity {
	switch sev {
	case core.SeverityError:
		return DiagnosticSeverityError
	case core.SeverityWarning:
		return DiagnosticSeverityWarning
	default:
		return DiagnosticSeverityInformation
	}
}
