package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/leapstack-labs/pinelint/pkg/core"
)

// Format selects a report encoding.
type Format string

// Report formats.
const (
	FormatText   Format = "text"
	FormatJSON   Format = "json"
	FormatGitHub Format = "github"
)

// ParseFormat parses text|json|github.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatText, FormatJSON, FormatGitHub:
		return f, nil
	default:
		return "", fmt.Errorf("unknown report format %q (valid: text, json, github)", s)
	}
}

// Write renders rep to w in the given format.
func Write(w io.Writer, rep *Report, format Format) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, rep)
	case FormatGitHub:
		return WriteGitHub(w, rep)
	case FormatText, "":
		return WriteText(w, rep)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// WriteText writes one "path:line: severity [rule] message" line per finding
// followed by the summary line.
func WriteText(w io.Writer, rep *Report) error {
	for _, fr := range rep.Files {
		if fr.Error != "" {
			if _, err := fmt.Fprintf(w, "%s: error: %s\n", fr.Path, fr.Error); err != nil {
				return err
			}
		}
		for _, f := range fr.Findings {
			if _, err := fmt.Fprintf(w, "%s:%s\n", fr.Path, f.String()); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprintf(w, "Summary: %s\n", rep.Summary)
	return err
}

// WriteJSON writes the report as indented JSON.
func WriteJSON(w io.Writer, rep *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

// WriteGitHub writes GitHub Actions workflow commands, one per finding.
func WriteGitHub(w io.Writer, rep *Report) error {
	for _, fr := range rep.Files {
		if fr.Error != "" {
			if _, err := fmt.Fprintf(w, "::error file=%s::%s\n",
				escapeProperty(fr.Path), escapeData(fr.Error)); err != nil {
				return err
			}
		}
		for _, f := range fr.Findings {
			if _, err := fmt.Fprintf(w, "::%s file=%s,line=%d::[%s] %s\n",
				annotationLevel(f.Severity), escapeProperty(fr.Path), f.Line,
				f.RuleID, escapeData(f.Message)); err != nil {
				return err
			}
		}
	}
	return nil
}

func annotationLevel(sev core.Severity) string {
	switch sev {
	case core.SeverityError:
		return "error"
	case core.SeverityWarning:
		return "warning"
	default:
		return "notice"
	}
}

var (
	dataEscaper     = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")
	propertyEscaper = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A", ":", "%3A", ",", "%2C")
)

func escapeData(s string) string     { return dataEscaper.Replace(s) }
func escapeProperty(s string) string { return propertyEscaper.Replace(s) }
