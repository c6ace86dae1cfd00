package structure

import (
	"fmt"

	"github.com/leapstack-labs/pinelint/pkg/core"
	"github.com/leapstack-labs/pinelint/pkg/lint"
)

func init() {
	lint.Register(RequireVersion)
}

// RequireVersion reports scripts without a leading version pragma.
var RequireVersion = lint.RuleDef{
	ID:          core.RuleRequireVersion,
	Name:        "structure.require_version",
	Group:       "structure",
	Description: "Scripts must declare the Pine Script version before any code.",
	Severity:    core.SeverityError,
	Check:       checkRequireVersion,
	ConfigKeys:  []string{"rules.require_version_declaration", "default_version"},
	Fixable:     true,
	Rationale: `Without a //@version pragma the compiler falls back to version 1 semantics,
which silently changes how many built-ins behave.`,
	BadExample: `indicator("RSI")
plot(ta.rsi(close, 14))`,
	GoodExample: `//@version=6
indicator("RSI")
plot(ta.rsi(close, 14))`,
	Fix: "Add //@version=N as the first line. A pragma found after code is moved to line 1.",
}

func checkRequireVersion(ctx *lint.Context) []core.Finding {
	if !ctx.Config.RuleEnabled(core.RuleRequireVersion) {
		return nil
	}

	p := ctx.Facts.Pragma
	if p == nil {
		return []core.Finding{{
			Message: fmt.Sprintf("Missing version declaration (e.g., //@version=%d)", ctx.Config.PragmaVersion()),
			Line:    1,
		}}
	}
	if !p.BeforeCode {
		return []core.Finding{{
			Message: "Version declaration must come before any code",
			Line:    p.Line,
		}}
	}
	return nil
}
