package structure

import (
	"fmt"

	"github.com/leapstack-labs/pinelint/pkg/core"
	"github.com/leapstack-labs/pinelint/pkg/lint"
	"github.com/leapstack-labs/pinelint/pkg/source"
)

func init() {
	lint.Register(SectionOrder)
}

// SectionOrder reports sections that appear out of the canonical order.
var SectionOrder = lint.RuleDef{
	ID:          core.RuleSectionOrder,
	Name:        "structure.section_order",
	Group:       "structure",
	Description: "Sections must follow the configured section_order.",
	Severity:    core.SeverityWarning,
	Check:       checkSectionOrder,
	ConfigKeys:  []string{"rules.section_order"},
	Rationale: `Readers expect inputs before the calculations that use them and plots after
the values they draw.`,
	BadExample: `// =================== FUNCTION DEFINITIONS =================== //
// =================== INPUT PARAMETERS =================== //`,
	GoodExample: `// =================== INPUT PARAMETERS =================== //
// =================== FUNCTION DEFINITIONS =================== //`,
	Fix: "Move the reported section above the one named in the message. Not fixed automatically.",
}

// checkSectionOrder compares adjacent pairs after dropping sections that are
// not in section_order.
func checkSectionOrder(ctx *lint.Context) []core.Finding {
	if !ctx.Config.RuleEnabled(core.RuleSectionOrder) {
		return nil
	}

	var ordered []source.Section
	for _, s := range ctx.Sections {
		if ctx.Config.OrderIndex(s.Name) >= 0 {
			ordered = append(ordered, s)
		}
	}

	var findings []core.Finding
	for i := 1; i < len(ordered); i++ {
		prev, cur := ordered[i-1], ordered[i]
		if ctx.Config.OrderIndex(cur.Name) < ctx.Config.OrderIndex(prev.Name) {
			findings = append(findings, core.Finding{
				Message: fmt.Sprintf("Section '%s' should come before '%s'", cur.Name, prev.Name),
				Line:    cur.Start,
			})
		}
	}
	return findings
}
