package style

import (
	"github.com/leapstack-labs/pinelint/pkg/core"
	"github.com/leapstack-labs/pinelint/pkg/lint"
)

func init() {
	lint.Register(IndentedVariable)
}

// IndentedVariable reports var declarations indented outside any body.
var IndentedVariable = lint.RuleDef{
	ID:          core.RuleIndentedVariable,
	Name:        "style.indented_variable",
	Group:       "style",
	Description: "Top-level variable declarations start at column 0.",
	Severity:    core.SeverityInfo,
	Check:       checkIndentedVariable,
	ConfigKeys:  []string{"rules.indented_variable_declaration"},
	Fixable:     true,
	Rationale: `Pine Script treats indentation as block structure. A stray indent on a
top-level declaration is either a syntax error or silently attaches the line
to the previous statement.`,
	BadExample:  "plot(close)\n    var int count = 0",
	GoodExample: "plot(close)\nvar int count = 0",
}

func checkIndentedVariable(ctx *lint.Context) []core.Finding {
	if !ctx.Config.RuleEnabled(core.RuleIndentedVariable) {
		return nil
	}
	findings := make([]core.Finding, 0, len(ctx.Facts.IndentedVariables))
	for _, v := range ctx.Facts.IndentedVariables {
		findings = append(findings, core.Finding{
			Message: "Variable declarations should not be indented",
			Line:    v.Line,
		})
	}
	return findings
}
