package style

import (
	"github.com/leapstack-labs/pinelint/pkg/core"
	"github.com/leapstack-labs/pinelint/pkg/lint"
)

func init() {
	lint.Register(MissingContinuation)
}

// MissingContinuation reports expressions wrapped onto an unindented line.
var MissingContinuation = lint.RuleDef{
	ID:          core.RuleMissingContinuation,
	Name:        "style.missing_continuation",
	Group:       "style",
	Description: "A line ending with an operator must be followed by an indented line.",
	Severity:    core.SeverityInfo,
	Check:       checkMissingContinuation,
	ConfigKeys:  []string{"rules.missing_line_continuation"},
	Fixable:     true,
	Rationale:   `Continuation lines must be indented, otherwise the compiler reads them as a new statement.`,
	BadExample:  "signal = fast > slow and\nvolume > avgVol",
	GoodExample: "signal = fast > slow and\n  volume > avgVol",
	Fix:         "The following line is indented by two spaces, which Pine reads as a wrapped line rather than a block.",
}

func checkMissingContinuation(ctx *lint.Context) []core.Finding {
	if !ctx.Config.RuleEnabled(core.RuleMissingContinuation) {
		return nil
	}
	findings := make([]core.Finding, 0, len(ctx.Facts.Continuations))
	for _, c := range ctx.Facts.Continuations {
		findings = append(findings, core.Finding{
			Message: "Line ends with an operator but the next line is not indented",
			Line:    c.Line,
		})
	}
	return findings
}
