package placement

import (
	"fmt"

	"github.com/leapstack-labs/pinelint/pkg/core"
	"github.com/leapstack-labs/pinelint/pkg/lint"
	"github.com/leapstack-labs/pinelint/pkg/source"
)

// VariablePlacement keeps var/varip declarations in the variables section.
var VariablePlacement = lint.RuleDef{
	ID:          core.RuleVariablePlacement,
	Name:        "placement.variable",
	Group:       "placement",
	Description: "Persistent variable declarations belong in the variables section.",
	Severity:    core.SeverityWarning,
	Check: checkPlacement(core.RuleVariablePlacement, func(cfg *core.RuleConfig, b source.Block) string {
		return fmt.Sprintf("Variable declaration '%s' should be in the %s section",
			b.Name, cfg.Rules.VariableDeclarationPlacement.Section)
	}),
	ConfigKeys: []string{"rules.variable_declaration_placement"},
	Fixable:    true,
	Rationale: `var and varip keep state across bars. Collecting them in one place makes the
script's persistent state visible at a glance.`,
	BadExample: `// =================== MAIN CALCULATIONS =================== //
var float peak = na`,
	GoodExample: `// =================== VARIABLE DECLARATIONS =================== //
var float peak = na`,
	Fix: "The declaration and its indented continuation lines are moved to the end of the section.",
}
