package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/leapstack-labs/pinelint/internal/cli/output"
	"github.com/leapstack-labs/pinelint/pkg/core"
	"github.com/leapstack-labs/pinelint/pkg/report"
)

// renderReport writes rep in the renderer's mode.
func renderReport(r *output.Renderer, rep *report.Report) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return report.WriteJSON(r.Writer(), rep)
	case output.ModeGitHub:
		if err := report.WriteGitHub(r.Writer(), rep); err != nil {
			return err
		}
		r.Printf("Summary: %s\n", rep.Summary)
		return nil
	default:
		renderReportText(r, rep)
		return nil
	}
}

// renderReportText prints findings grouped by file, then the summary.
func renderReportText(r *output.Renderer, rep *report.Report) {
	styles := r.Styles()

	if rep.Clean() {
		r.Success(fmt.Sprintf("No lint issues found in %d files", rep.Summary.Files))
		return
	}

	for _, fr := range rep.Files {
		if len(fr.Findings) == 0 && fr.Error == "" {
			continue
		}

		r.Println(styles.Path.Render(fr.Path))
		if fr.Error != "" {
			r.Printf("  %s %s\n", styles.StatusFailed.String(), styles.Error.Render(fr.Error))
		}
		for _, f := range fr.Findings {
			sevStyle := getSeverityStyle(styles, f.Severity)
			msg := f.Message
			if f.LowConfidence {
				msg += styles.Muted.Render(" (low confidence)")
			}
			r.Printf("  %s  %s  %s  %s\n",
				styles.Muted.Render(fmt.Sprintf("%5d", f.Line)),
				sevStyle.Render(fmt.Sprintf("%-7s", f.Severity.String())),
				styles.Bold.Render("["+f.RuleID+"]"),
				msg,
			)
		}
		r.Println("")
	}

	r.Printf("Summary: %s\n", rep.Summary)
}

func getSeverityStyle(styles *output.Styles, sev core.Severity) lipgloss.Style {
	switch sev {
	case core.SeverityError:
		return styles.Error
	case core.SeverityWarning:
		return styles.Warning
	default:
		return styles.Info
	}
}

// capitalizeFirst capitalizes the first letter of a string.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// truncateOneLine returns the first line of s, cut to maxLen.
func truncateOneLine(s string, maxLen int) string {
	if idx := strings.Index(s, "\n"); idx >= 0 {
		s = s[:idx]
	}
	if len(s) > maxLen {
		return s[:maxLen-3] + "..."
	}
	return s
}
