package placement

import (
	"github.com/leapstack-labs/pinelint/pkg/core"
	"github.com/leapstack-labs/pinelint/pkg/lint"
	"github.com/leapstack-labs/pinelint/pkg/source"
)

func init() {
	lint.Register(VariablePlacement)
	lint.Register(FunctionPlacement)
	lint.Register(InputPlacement)
	lint.Register(ImportPlacement)
}

// checkPlacement builds a check that reports every misplaced block of the
// placement identified by ruleID. Ambiguous blocks are reported with low
// confidence.
func checkPlacement(ruleID string, message func(cfg *core.RuleConfig, b source.Block) string) lint.CheckFunc {
	return func(ctx *lint.Context) []core.Finding {
		p, ok := lint.PlacementFor(ctx.Config, ruleID)
		if !ok {
			return nil
		}
		blocks, ok := p.Misplaced(ctx)
		if !ok {
			return nil
		}

		findings := make([]core.Finding, 0, len(blocks))
		for _, b := range blocks {
			findings = append(findings, core.Finding{
				Message:       message(ctx.Config, b),
				Line:          b.Start,
				LowConfidence: b.Ambiguous,
			})
		}
		return findings
	}
}
