package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/pinelint/pkg/lint"
	_ "github.com/leapstack-labs/pinelint/pkg/lint/rules"
)

// groupOrder lists rule groups in page order.
var groupOrder = []string{"structure", "placement", "style"}

// groupDescriptions provides human-readable descriptions for rule groups.
var groupDescriptions = map[string]string{
	"structure": "Rules about the version pragma and the presence and order of sections.",
	"placement": "Rules about which section holds functions, inputs, variables and imports.",
	"style":     "Rules about naming conventions, indentation and line continuations.",
}

// generateLintDocs generates all lint documentation files.
func generateLintDocs(outDir string) error {
	log.Printf("Generating rule docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	rules := lint.GetAll()

	if err := generateLintIndex(outDir, rules); err != nil {
		return err
	}
	log.Printf("  Generated index.md")

	for _, group := range groupOrder {
		if err := generateGroupPage(outDir, group, lint.GetByGroup(group)); err != nil {
			return err
		}
		log.Printf("  Generated %s.md", group)
	}

	return nil
}

// generateLintIndex generates the rules overview page.
func generateLintIndex(outDir string, rules []lint.Rule) error {
	w := NewMarkdownWriter()

	w.Frontmatter("Rules", "Structural lint rules for Pine Script")
	w.GeneratedMarker()

	w.Header(1, "Rules")
	fixable := 0
	for _, r := range rules {
		if r.Fixable() {
			fixable++
		}
	}
	w.Paragraph(fmt.Sprintf("pinelint ships **%d rules**, %d of which `pinelint fix` repairs automatically.", len(rules), fixable))

	w.Header(2, "Severity Levels")
	w.Table(
		[]string{"Severity", "Description"},
		[][]string{
			{InlineCode("error"), "Structural problem that should be fixed"},
			{InlineCode("warning"), "Layout problem that should be reviewed"},
			{InlineCode("info"), "Style feedback"},
		},
	)

	w.Header(2, "Configuration")
	w.Paragraph("Severities and disabled rules are set in `pinelint.yaml` or `pinelint.json`:")
	w.CodeBlock("yaml", `severity_levels:
  error: [require_version_declaration, function_placement]
  warning: [section_order]
disabled_rules:
  - naming_conventions`)

	w.Header(2, "All Rules")
	var rows [][]string
	for _, r := range rules {
		link := fmt.Sprintf("[%s](%s.md#%s)", InlineCode(r.ID()), r.Group(), r.ID())
		rows = append(rows, []string{
			link,
			r.Group(),
			InlineCode(r.DefaultSeverity().String()),
			yesNo(r.Fixable()),
			cleanDescription(r.Description()),
		})
	}
	w.Table([]string{"Rule", "Group", "Severity", "Fixable", "Description"}, rows)

	return os.WriteFile(filepath.Join(outDir, "index.md"), w.Bytes(), 0600)
}

// generateGroupPage documents every rule of one group.
func generateGroupPage(outDir, group string, rules []lint.Rule) error {
	w := NewMarkdownWriter()

	title := capitalizeFirst(group) + " Rules"
	w.Frontmatter(title, groupDescriptions[group])
	w.GeneratedMarker()

	w.Header(1, title)
	if desc, ok := groupDescriptions[group]; ok {
		w.Paragraph(desc)
	}

	for _, rule := range rules {
		writeRuleDoc(w, rule)
	}

	return os.WriteFile(filepath.Join(outDir, group+".md"), w.Bytes(), 0600)
}

// capitalizeFirst capitalizes the first letter of a string.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// writeRuleDoc writes detailed documentation for a single rule.
func writeRuleDoc(w *MarkdownWriter, rule lint.Rule) {
	// Rule header with anchor: ## section_order - structure.section_order {#section_order}
	w.Line(fmt.Sprintf("## %s - %s {#%s}", rule.ID(), rule.Name(), rule.ID()))
	w.Newline()

	w.Line(fmt.Sprintf("**Severity:** %s", InlineCode(rule.DefaultSeverity().String())))
	w.Newline()

	w.Paragraph(cleanDescription(rule.Description()))

	if doc, ok := rule.(lint.Documented); ok {
		if rationale := doc.Rationale(); rationale != "" {
			w.Header(3, "Why This Matters")
			w.Paragraph(strings.TrimSpace(rationale))
		}
		if badExample := doc.BadExample(); badExample != "" {
			w.Header(3, "Bad")
			w.CodeBlock("pine", badExample)
		}
		if goodExample := doc.GoodExample(); goodExample != "" {
			w.Header(3, "Good")
			w.CodeBlock("pine", goodExample)
		}
		if fix := doc.Fix(); fix != "" {
			w.Header(3, "How to Fix")
			w.Paragraph(strings.TrimSpace(fix))
		}
	}

	if configKeys := rule.ConfigKeys(); len(configKeys) > 0 {
		w.Header(3, "Configuration")
		w.Paragraph(fmt.Sprintf("This rule reads the following configuration keys: %s",
			InlineCode(strings.Join(configKeys, ", "))))
	}

	w.Line("---")
	w.Newline()
}
