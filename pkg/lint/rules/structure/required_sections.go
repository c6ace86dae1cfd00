package structure

import (
	"github.com/leapstack-labs/pinelint/pkg/core"
	"github.com/leapstack-labs/pinelint/pkg/lint"
	"github.com/leapstack-labs/pinelint/pkg/source"
)

func init() {
	lint.Register(RequiredSections)
}

// RequiredSections reports every configured section missing from the file.
var RequiredSections = lint.RuleDef{
	ID:          core.RuleRequiredSections,
	Name:        "structure.required_sections",
	Group:       "structure",
	Description: "Every required section header must be present.",
	Severity:    core.SeverityInfo,
	Check:       checkRequiredSections,
	ConfigKeys:  []string{"rules.required_sections"},
	Fixable:     true,
	Rationale: `A fixed skeleton of sections makes every script in a repository navigable in
the same way, and gives the placement rules somewhere to move declarations to.`,
	BadExample: `//@version=6
indicator("Demo")
length = input.int(14)`,
	GoodExample: `//@version=6
// =================== METADATA =================== //
indicator("Demo")

// =================== INPUT PARAMETERS =================== //
length = input.int(14)`,
	Fix: "Missing headers are inserted at their position in section_order.",
}

func checkRequiredSections(ctx *lint.Context) []core.Finding {
	if !ctx.Config.RuleEnabled(core.RuleRequiredSections) {
		return nil
	}

	var findings []core.Finding
	seen := make(map[string]bool)
	for _, name := range ctx.Config.Rules.RequiredSections {
		if seen[name] {
			continue
		}
		seen[name] = true
		if _, ok := source.FindSection(ctx.Sections, name); ok {
			continue
		}
		findings = append(findings, core.Finding{
			Message: "Missing required section: " + name,
			Line:    1,
		})
	}
	return findings
}
