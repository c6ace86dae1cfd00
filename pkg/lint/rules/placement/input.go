package placement

import (
	"github.com/leapstack-labs/pinelint/pkg/core"
	"github.com/leapstack-labs/pinelint/pkg/lint"
	"github.com/leapstack-labs/pinelint/pkg/source"
)

// InputPlacement keeps input declarations in one of the input sections.
var InputPlacement = lint.RuleDef{
	ID:          core.RuleInputPlacement,
	Name:        "placement.input",
	Group:       "placement",
	Description: "Inputs belong in one of the configured input sections.",
	Severity:    core.SeverityWarning,
	Check: checkPlacement(core.RuleInputPlacement, func(_ *core.RuleConfig, b source.Block) string {
		return "Input declaration '" + b.Name + "' should be in one of the allowed input sections"
	}),
	ConfigKeys: []string{"rules.input_placement"},
	Fixable:    true,
	Rationale:  `Inputs define the settings dialog. Keeping them together keeps the dialog order predictable.`,
	Fix:        "The input is moved to the first configured input section present in the file.",
}
