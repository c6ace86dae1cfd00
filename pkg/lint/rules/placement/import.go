package placement

import (
	"github.com/leapstack-labs/pinelint/pkg/core"
	"github.com/leapstack-labs/pinelint/pkg/lint"
	"github.com/leapstack-labs/pinelint/pkg/source"
)

// ImportPlacement keeps library imports in the imports section.
var ImportPlacement = lint.RuleDef{
	ID:          core.RuleImportPlacement,
	Name:        "placement.import",
	Group:       "placement",
	Description: "Library imports belong in the imports section.",
	Severity:    core.SeverityError,
	Check: checkPlacement(core.RuleImportPlacement, func(cfg *core.RuleConfig, _ source.Block) string {
		return "Import statement should be in the " + cfg.Rules.ImportPlacement.Section + " section"
	}),
	ConfigKeys: []string{"rules.import_placement"},
	Fixable:    true,
	BadExample: `plot(close)
import TradingView/ta/7`,
	GoodExample: `// =================== IMPORTS =================== //
import TradingView/ta/7`,
}
