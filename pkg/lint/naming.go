package lint

import (
	"github.com/leapstack-labs/pinelint/pkg/core"
	"github.com/leapstack-labs/pinelint/pkg/naming"
	"github.com/leapstack-labs/pinelint/pkg/source"
)

// ConventionFor returns the naming convention configured for a category.
// ok is false when the category has no convention or the convention string is not
// recognised.
func ConventionFor(cfg *core.RuleConfig, cat source.Category) (naming.Convention, bool) {
	n := cfg.Rules.NamingConventions
	var spec string
	switch cat {
	case source.CategoryFunction:
		spec = n.Functions
	case source.CategoryInput:
		spec = n.Inputs
	case source.CategoryVariable:
		spec = n.Variables
	case source.CategoryConst:
		spec = n.Constants
	}
	if spec == "" {
		return naming.Convention{}, false
	}
	c, ok := naming.Parse(spec)
	return c, ok
}

// NamingViolation is a declaration whose name does not follow its convention.
type NamingViolation struct {
	Block      source.Block
	Convention naming.Convention
}

// NamingViolations returns the non-conforming declarations of ctx in file order.
func NamingViolations(ctx *Context) []NamingViolation {
	if !ctx.Config.RuleEnabled(core.RuleNamingConventions) {
		return nil
	}
	var out []NamingViolation
	for _, b := range ctx.Facts.Blocks {
		conv, ok := ConventionFor(ctx.Config, b.Category)
		if !ok || conv.Check(b.Name) {
			continue
		}
		out = append(out, NamingViolation{Block: b, Convention: conv})
	}
	return out
}
