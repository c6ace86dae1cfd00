package lint

import (
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/pinelint/pkg/core"
	"github.com/leapstack-labs/pinelint/pkg/source"
)

// Analyzer runs lint rules against a document.
type Analyzer struct {
	config  *Config
	rules   []Rule
	scanner *source.Scanner
	logger  *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets the analyzer logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithRules replaces the registry rules with an explicit list, evaluated
// in the given order.
func WithRules(rules ...Rule) Option {
	return func(a *Analyzer) {
		a.rules = rules
	}
}

// NewAnalyzer creates an analyzer over the registered rules.
func NewAnalyzer(config *Config, opts ...Option) *Analyzer {
	if config == nil {
		config = NewConfig()
	}
	a := &Analyzer{
		config: config,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.rules == nil {
		a.rules = GetAll()
	}
	a.scanner = source.NewScanner(a.logger)
	return a
}

// Rules returns the rules this analyzer evaluates, in order.
func (a *Analyzer) Rules() []Rule {
	return a.rules
}

// Analyze runs every enabled rule against ctx and returns the findings in
// catalogue order with severities resolved. A rule that panics is logged
// and skipped; the remaining rules still run.
func (a *Analyzer) Analyze(ctx *Context) []core.Finding {
	if ctx == nil || ctx.Doc == nil {
		return nil
	}
	if ctx.Config == nil {
		cfg := core.DefaultRuleConfig()
		ctx.Config = &cfg
	}

	var findings []core.Finding
	for _, rule := range a.rules {
		if a.config.IsDisabled(rule.ID()) {
			continue
		}

		found, err := a.runRule(rule, ctx)
		if err != nil {
			a.logger.Error("rule failed", slog.String("rule", rule.ID()), slog.Any("error", err))
			continue
		}

		sev := a.config.GetSeverity(rule.ID(), rule.DefaultSeverity())
		for i := range found {
			found[i].RuleID = rule.ID()
			found[i].Severity = sev
		}
		findings = append(findings, found...)
	}
	return findings
}

// AnalyzeText parses text and analyzes it.
func (a *Analyzer) AnalyzeText(text string, cfg *core.RuleConfig) []core.Finding {
	doc := source.Parse(text)
	return a.Analyze(NewContext(doc, cfg, a.scanner))
}

// AnalyzeDocument analyzes an already parsed document.
func (a *Analyzer) AnalyzeDocument(doc *source.Document, cfg *core.RuleConfig) []core.Finding {
	return a.Analyze(NewContext(doc, cfg, a.scanner))
}

func (a *Analyzer) runRule(rule Rule, ctx *Context) (findings []core.Finding, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in rule %s: %v", rule.ID(), r)
		}
	}()
	return rule.Check(ctx), nil
}
