// Package lint evaluates structural rules against a Pine Script document.
//
// # Architecture
//
// Rules are pure predicates over a Context: the parsed line Document, its
// Sections, the declaration Facts and the RuleConfig of the run. They never
// mutate the document and never depend on each other's output.
//
// # Rule Registration
//
// Rules register themselves via init() when their package is imported:
//
//	import _ "github.com/leapstack-labs/pinelint/pkg/lint/rules"
//
// The registry always returns rules in catalogue order (see core.RuleIDs),
// regardless of registration order.
//
// # Configuration
//
// Config decides which rules run and at which severity. Severity resolves
// from the rule default, then the severity_levels lists of the RuleConfig,
// then explicit overrides:
//
//	cfg := lint.NewConfigFromRuleConfig(&ruleCfg)
//	cfg.SetSeverity(core.RuleSectionOrder, core.SeverityError)
//	findings := lint.NewAnalyzer(cfg).AnalyzeText(text, &ruleCfg)
package lint
