package lint

import (
	"github.com/leapstack-labs/pinelint/pkg/core"
	"github.com/leapstack-labs/pinelint/pkg/source"
)

// Placement describes where one declaration category belongs.
type Placement struct {
	RuleID   string
	Category source.Category
	Sections []string
}

// Placements returns the placement rules of cfg in relocation order:
// variables, functions, inputs, imports.
func Placements(cfg *core.RuleConfig) []Placement {
	r := cfg.Rules
	return []Placement{
		{RuleID: core.RuleVariablePlacement, Category: source.CategoryVariable, Sections: nonEmpty(r.VariableDeclarationPlacement.Section)},
		{RuleID: core.RuleFunctionPlacement, Category: source.CategoryFunction, Sections: nonEmpty(r.FunctionPlacement.Section)},
		{RuleID: core.RuleInputPlacement, Category: source.CategoryInput, Sections: r.InputPlacement.Sections},
		{RuleID: core.RuleImportPlacement, Category: source.CategoryImport, Sections: nonEmpty(r.ImportPlacement.Section)},
	}
}

// PlacementFor returns the placement rule with the given ID.
func PlacementFor(cfg *core.RuleConfig, ruleID string) (Placement, bool) {
	for _, p := range Placements(cfg) {
		if p.RuleID == ruleID {
			return p, true
		}
	}
	return Placement{}, false
}

// Misplaced returns the blocks of the placement's category outside its
// sections. ok is false when the rule is disabled or no target section
// exists in the document.
func (p Placement) Misplaced(ctx *Context) (blocks []source.Block, ok bool) {
	if !ctx.Config.RuleEnabled(p.RuleID) {
		return nil, false
	}
	return source.Misplaced(ctx.Facts.ByCategory(p.Category), ctx.Sections, p.Sections...)
}

func nonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}
