package core

import (
	"fmt"
	"sort"
)

// Finding is one reported rule violation.
type Finding struct {
	RuleID   string   `json:"rule_id"`
	Message  string   `json:"message"`
	Line     int      `json:"line"`
	Severity Severity `json:"severity"`

	// LowConfidence marks findings on blocks whose boundary could not be resolved.
	LowConfidence bool `json:"low_confidence,omitempty"`
}

// String renders the finding on a single line.
func (f Finding) String() string {
	s := fmt.Sprintf("%d: %s [%s] %s", f.Line, f.Severity, f.RuleID, f.Message)
	if f.LowConfidence {
		s += " (low confidence)"
	}
	return s
}

// SortFindings orders findings by line, then rule ID, then message.
func SortFindings(findings []Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.RuleID != b.RuleID {
			return a.RuleID < b.RuleID
		}
		return a.Message < b.Message
	})
}
