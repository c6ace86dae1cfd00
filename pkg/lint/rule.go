package lint

import (
	"github.com/leapstack-labs/pinelint/pkg/core"
	"github.com/leapstack-labs/pinelint/pkg/source"
)

// Rule is the interface all lint rules implement.
type Rule interface {
	// ID returns the unique identifier, e.g. "section_order".
	ID() string

	// Name returns the human-readable name, e.g. "structure.section_order".
	Name() string

	// Group returns the category, e.g. "structure", "placement", "style".
	Group() string

	// Description returns a human-readable description.
	Description() string

	// DefaultSeverity returns the severity used when nothing overrides it.
	DefaultSeverity() core.Severity

	// ConfigKeys returns the configuration keys this rule reads.
	ConfigKeys() []string

	// Fixable reports whether the fixer repairs this rule's findings.
	Fixable() bool

	// Check evaluates the rule. Findings carry no severity; the Analyzer
	// assigns it.
	Check(ctx *Context) []core.Finding
}

// Documented is implemented by rules that carry long-form documentation.
type Documented interface {
	Rationale() string
	BadExample() string
	GoodExample() string
	Fix() string
}

// Context is everything a rule may inspect for one document.
type Context struct {
	Doc      *source.Document
	Sections []source.Section
	Facts    *source.Facts
	Config   *core.RuleConfig
}

// NewContext derives sections and facts for doc. A nil scanner uses a
// discarding logger.
func NewContext(doc *source.Document, cfg *core.RuleConfig, scanner *source.Scanner) *Context {
	if scanner == nil {
		scanner = source.NewScanner(nil)
	}
	return &Context{
		Doc:      doc,
		Sections: source.Sections(doc),
		Facts:    scanner.Scan(doc),
		Config:   cfg,
	}
}

// SectionsNamed returns the sections whose name is in names, in file order.
func (c *Context) SectionsNamed(names ...string) []source.Section {
	var out []source.Section
	for _, s := range c.Sections {
		for _, n := range names {
			if s.Name == n {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

// CheckFunc evaluates a rule against a context.
type CheckFunc func(ctx *Context) []core.Finding

// RuleDef is a data-driven rule definition.
type RuleDef struct {
	ID          string        // Unique identifier, e.g. "function_placement"
	Name        string        // Human-readable name, e.g. "placement.function"
	Group       string        // Category, e.g. "placement"
	Description string        // Human-readable description
	Severity    core.Severity // Default severity
	Check       CheckFunc     // The check function
	ConfigKeys  []string      // Configuration keys this rule reads
	Fixable     bool          // The fixer repairs this rule

	// Documentation fields used by `pinelint rules <id>`
	Rationale   string
	BadExample  string
	GoodExample string
	Fix         string
}

// GetRuleInfo extracts metadata from a Rule for documentation and tooling.
func GetRuleInfo(r Rule) core.RuleInfo {
	return core.RuleInfo{
		ID:              r.ID(),
		Name:            r.Name(),
		Group:           r.Group(),
		Description:     r.Description(),
		DefaultSeverity: r.DefaultSeverity(),
		ConfigKeys:      r.ConfigKeys(),
		Fixable:         r.Fixable(),
	}
}

// wrappedRuleDef adapts a RuleDef to the Rule interface.
type wrappedRuleDef struct {
	def RuleDef
}

// WrapRuleDef wraps a RuleDef so it satisfies Rule and Documented.
func WrapRuleDef(def RuleDef) Rule {
	return &wrappedRuleDef{def: def}
}

func (w *wrappedRuleDef) ID() string                     { return w.def.ID }
func (w *wrappedRuleDef) Name() string                   { return w.def.Name }
func (w *wrappedRuleDef) Group() string                  { return w.def.Group }
func (w *wrappedRuleDef) Description() string            { return w.def.Description }
func (w *wrappedRuleDef) DefaultSeverity() core.Severity { return w.def.Severity }
func (w *wrappedRuleDef) ConfigKeys() []string           { return w.def.ConfigKeys }
func (w *wrappedRuleDef) Fixable() bool                  { return w.def.Fixable }
func (w *wrappedRuleDef) Rationale() string              { return w.def.Rationale }
func (w *wrappedRuleDef) BadExample() string             { return w.def.BadExample }
func (w *wrappedRuleDef) GoodExample() string            { return w.def.GoodExample }
func (w *wrappedRuleDef) Fix() string                    { return w.def.Fix }

func (w *wrappedRuleDef) Check(ctx *Context) []core.Finding {
	if w.def.Check == nil {
		return nil
	}
	return w.def.Check(ctx)
}

// Unwrap returns the underlying RuleDef.
func (w *wrappedRuleDef) Unwrap() RuleDef {
	return w.def
}
