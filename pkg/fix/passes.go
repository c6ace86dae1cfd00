package fix

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/pinelint/pkg/core"
	"github.com/leapstack-labs/pinelint/pkg/source"
)

// Pass names, as reported in Change.
const (
	PassPragma            = "pragma"
	PassSections          = "sections"
	PassRelocateVariables = "relocate_variables"
	PassRelocateFunctions = "relocate_functions"
	PassRelocateInputs    = "relocate_inputs"
	PassRelocateImports   = "relocate_imports"
	PassNaming            = "naming"
	PassContinuation      = "continuation"
	PassIndentation       = "indentation"
)

// continuationIndent is prepended to wrapped lines. Pine reads an indent
// that is a multiple of four as a new block, so two spaces are used.
const continuationIndent = "  "

type pass struct {
	name   string
	ruleID string
	apply  func(f *Fixer, doc *source.Document) (int, error)
}

func pipeline() []pass {
	return []pass{
		{name: PassPragma, ruleID: core.RuleRequireVersion, apply: (*Fixer).fixPragma},
		{name: PassSections, ruleID: core.RuleRequiredSections, apply: (*Fixer).fixSections},
		{name: PassRelocateVariables, ruleID: core.RuleVariablePlacement, apply: relocate(core.RuleVariablePlacement)},
		{name: PassRelocateFunctions, ruleID: core.RuleFunctionPlacement, apply: relocate(core.RuleFunctionPlacement)},
		{name: PassRelocateInputs, ruleID: core.RuleInputPlacement, apply: relocate(core.RuleInputPlacement)},
		{name: PassRelocateImports, ruleID: core.RuleImportPlacement, apply: relocate(core.RuleImportPlacement)},
		{name: PassNaming, ruleID: core.RuleNamingConventions, apply: (*Fixer).fixNaming},
		{name: PassContinuation, ruleID: core.RuleMissingContinuation, apply: (*Fixer).fixContinuation},
		{name: PassIndentation, ruleID: core.RuleIndentedVariable, apply: (*Fixer).fixIndentation},
	}
}

// fixPragma inserts a missing pragma at line 1, or hoists one that follows code.
func (f *Fixer) fixPragma(doc *source.Document) (int, error) {
	facts := f.scanner.Scan(doc)
	p := facts.Pragma
	if p != nil && p.BeforeCode {
		return 0, nil
	}

	line := fmt.Sprintf("//@version=%d", f.cfg.PragmaVersion())
	if p != nil {
		removed, err := doc.Remove(p.ID)
		if err != nil {
			return 0, err
		}
		line = strings.TrimSpace(removed[0])
	}
	if _, err := doc.InsertAt(0, line); err != nil {
		return 0, err
	}
	return 1, nil
}

// fixSections inserts each missing required section before the first
// existing section that follows it in section_order, or at the end.
func (f *Fixer) fixSections(doc *source.Document) (int, error) {
	n := 0
	for _, name := range f.cfg.Rules.RequiredSections {
		sections := source.Sections(doc)
		if _, ok := source.FindSection(sections, name); ok {
			continue
		}

		at := doc.Len()
		if order := f.cfg.OrderIndex(name); order >= 0 {
			for _, s := range sections {
				if f.cfg.OrderIndex(s.Name) > order {
					at = s.Start - 1
					break
				}
			}
		}

		var lines []string
		if at > 0 && !source.IsBlank(doc.Text(at-1)) {
			lines = append(lines, "")
		}
		lines = append(lines, source.FormatHeader(name))
		if at < doc.Len() {
			lines = append(lines, "")
		}
		if _, err := doc.InsertAt(at, lines...); err != nil {
			return n, err
		}
		f.logger.Debug("inserted section", slog.String("section", name), slog.Int("line", at+1))
		n++
	}
	return n, nil
}

// fixContinuation indents a column-0 line that continues an expression.
func (f *Fixer) fixContinuation(doc *source.Document) (int, error) {
	facts := f.scanner.Scan(doc)
	for _, c := range facts.Continuations {
		idx, err := doc.IndexOf(c.NextID)
		if err != nil {
			return 0, err
		}
		if err := doc.SetText(idx, continuationIndent+doc.Text(idx)); err != nil {
			return 0, err
		}
	}
	return len(facts.Continuations), nil
}

// fixIndentation strips the indent of stray top-level var declarations.
func (f *Fixer) fixIndentation(doc *source.Document) (int, error) {
	facts := f.scanner.Scan(doc)
	for _, v := range facts.IndentedVariables {
		idx, err := doc.IndexOf(v.ID)
		if err != nil {
			return 0, err
		}
		if err := doc.SetText(idx, strings.TrimLeft(doc.Text(idx), " \t")); err != nil {
			return 0, err
		}
	}
	return len(facts.IndentedVariables), nil
}
