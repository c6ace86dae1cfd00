package style

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/pinelint/pkg/core"
	"github.com/leapstack-labs/pinelint/pkg/lint"
)

func init() {
	lint.Register(NamingConventions)
}

// NamingConventions reports declarations whose names break their convention.
var NamingConventions = lint.RuleDef{
	ID:          core.RuleNamingConventions,
	Name:        "style.naming_conventions",
	Group:       "style",
	Description: "Declared names follow the convention configured for their category.",
	Severity:    core.SeverityInfo,
	Check:       checkNamingConventions,
	ConfigKeys:  []string{"rules.naming_conventions"},
	Fixable:     true,
	BadExample: `f_calculateAverage(a, b) => (a + b) / 2
c_max_length = 50`,
	GoodExample: `calculateAverage(a, b) => (a + b) / 2
MAX_LENGTH = 50`,
	Fix: `The name is rewritten everywhere it appears as a whole word. The rename is
textual and ignores scope.`,
}

func checkNamingConventions(ctx *lint.Context) []core.Finding {
	violations := lint.NamingViolations(ctx)
	findings := make([]core.Finding, 0, len(violations))
	for _, v := range violations {
		findings = append(findings, core.Finding{
			Message: fmt.Sprintf("%s name '%s' does not follow %s convention",
				categoryLabel(v.Block.Category.String()), v.Block.Name, v.Convention),
			Line: v.Block.Start,
		})
	}
	return findings
}

func categoryLabel(category string) string {
	if category == "" {
		return category
	}
	return strings.ToUpper(category[:1]) + category[1:]
}
