package core

import "strings"

// =============================================================================
// Severity
// =============================================================================

// Severity indicates the importance of a finding.
// Lower values are more severe.
type Severity int

// Severity levels for findings.
const (
	// SeverityError indicates a structural violation that should be fixed.
	SeverityError Severity = iota
	// SeverityWarning indicates a convention violation that should be reviewed.
	SeverityWarning
	// SeverityInfo indicates informational feedback.
	SeverityInfo
)

// String returns the string representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return "unknown"
	}
}

// MarshalText encodes the severity by name.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a severity name. Unknown names decode to SeverityInfo.
func (s *Severity) UnmarshalText(b []byte) error {
	sev, _ := ParseSeverity(string(b))
	*s = sev
	return nil
}

// AtLeast reports whether s is as severe as threshold or more.
func (s Severity) AtLeast(threshold Severity) bool {
	return s <= threshold
}

// ParseSeverity converts a string to a Severity value.
// Returns the severity and true if valid, or SeverityInfo and false if invalid.
func ParseSeverity(s string) (Severity, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return SeverityError, true
	case "warning", "warn":
		return SeverityWarning, true
	case "info":
		return SeverityInfo, true
	default:
		return SeverityInfo, false
	}
}

// AllSeverities returns every severity, most severe first.
func AllSeverities() []Severity {
	return []Severity{SeverityError, SeverityWarning, SeverityInfo}
}

// =============================================================================
// Fail threshold
// =============================================================================

// FailThreshold decides which findings make a run fail.
type FailThreshold struct {
	never bool
	level Severity
}

// FailOnAny fails on any finding regardless of severity.
var FailOnAny = FailThreshold{level: SeverityInfo}

// ParseFailThreshold parses error|warning|info|never.
func ParseFailThreshold(s string) (FailThreshold, bool) {
	if strings.EqualFold(strings.TrimSpace(s), "never") {
		return FailThreshold{never: true}, true
	}
	sev, ok := ParseSeverity(s)
	if !ok {
		return FailOnAny, false
	}
	return FailThreshold{level: sev}, true
}

// Fails reports whether a finding of the given severity fails the run.
func (t FailThreshold) Fails(sev Severity) bool {
	if t.never {
		return false
	}
	return sev.AtLeast(t.level)
}

// String returns the threshold name.
func (t FailThreshold) String() string {
	if t.never {
		return "never"
	}
	return t.level.String()
}

// =============================================================================
// RuleInfo
// =============================================================================

// RuleInfo provides metadata about a lint rule for documentation/tooling.
// This is a DTO (Data Transfer Object) - it carries data without behavior.
type RuleInfo struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Group           string   `json:"group"`
	Description     string   `json:"description"`
	DefaultSeverity Severity `json:"default_severity"`
	ConfigKeys      []string `json:"config_keys,omitempty"`
	Fixable         bool     `json:"fixable"`
}
