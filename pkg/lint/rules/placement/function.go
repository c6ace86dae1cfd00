package placement

import (
	"fmt"

	"github.com/leapstack-labs/pinelint/pkg/core"
	"github.com/leapstack-labs/pinelint/pkg/lint"
	"github.com/leapstack-labs/pinelint/pkg/source"
)

// FunctionPlacement keeps user-defined functions in the functions section.
var FunctionPlacement = lint.RuleDef{
	ID:          core.RuleFunctionPlacement,
	Name:        "placement.function",
	Group:       "placement",
	Description: "User-defined functions belong in the functions section.",
	Severity:    core.SeverityError,
	Check: checkPlacement(core.RuleFunctionPlacement, func(cfg *core.RuleConfig, b source.Block) string {
		return fmt.Sprintf("Function '%s' should be defined in the %s section",
			b.Name, cfg.Rules.FunctionPlacement.Section)
	}),
	ConfigKeys: []string{"rules.function_placement"},
	Fixable:    true,
	BadExample: `// =================== MAIN CALCULATIONS =================== //
avg(a, b) => (a + b) / 2`,
	GoodExample: `// =================== FUNCTION DEFINITIONS =================== //
avg(a, b) => (a + b) / 2`,
	Fix: "The function body is moved to the end of the section, separated by a blank line.",
}
