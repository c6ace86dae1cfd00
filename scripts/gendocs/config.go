package main

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/pinelint/internal/cli/config"
	"gopkg.in/yaml.v3"
)

// ConfigField represents a configuration field definition.
type ConfigField struct {
	Name        string
	Type        string
	Default     string
	Description string
	Category    string // "rules", "run"
}

// getConfigSchema returns the configuration schema definition, mirroring
// core.RuleConfig and config.File.
func getConfigSchema() []ConfigField {
	return []ConfigField{
		// Rule settings
		{Name: "rules.require_version_declaration", Type: "bool", Default: "true", Description: "Require a //@version=N pragma on the first code line", Category: "rules"},
		{Name: "rules.required_sections", Type: "[]string", Default: "all eight sections", Description: "Sections every script must contain", Category: "rules"},
		{Name: "rules.section_order", Type: "[]string", Default: "canonical order", Description: "Expected order of section headers", Category: "rules"},
		{Name: "rules.function_placement", Type: "{enforce, section}", Default: "FUNCTION DEFINITIONS", Description: "Section that holds user functions", Category: "rules"},
		{Name: "rules.input_placement", Type: "{enforce, sections}", Default: "INPUT PARAMETERS", Description: "Sections that may hold input declarations", Category: "rules"},
		{Name: "rules.variable_declaration_placement", Type: "{enforce, section}", Default: "VARIABLE DECLARATIONS", Description: "Section that holds var and varip declarations", Category: "rules"},
		{Name: "rules.import_placement", Type: "{enforce, section}", Default: "IMPORTS", Description: "Section that holds import statements", Category: "rules"},
		{Name: "rules.naming_conventions", Type: "map[string]string", Default: "camelCase, SNAKE_CASE for constants", Description: "Naming convention per declaration category", Category: "rules"},
		{Name: "rules.indented_variable_declaration", Type: "bool", Default: "true", Description: "Flag var declarations inside indented blocks", Category: "rules"},
		{Name: "rules.missing_line_continuation", Type: "bool", Default: "true", Description: "Flag lines ending in an operator without an indented continuation", Category: "rules"},
		{Name: "severity_levels", Type: "map[string][]string", Default: "per rule", Description: "Rule IDs per severity; replaces the defaults when set", Category: "rules"},
		{Name: "disabled_rules", Type: "[]string", Description: "Rule IDs that never run", Category: "rules"},
		{Name: "file_extensions", Type: "[]string", Default: ".pine, .pinescript", Description: "Extensions of files to lint", Category: "rules"},
		{Name: "ignore_patterns", Type: "[]string", Default: "**/vendor/**, **/deprecated/**", Description: "Doublestar globs of paths to skip", Category: "rules"},
		{Name: "default_version", Type: "int", Default: "6", Description: "Pragma version written by the fixer", Category: "rules"},

		// Run settings
		{Name: "fail_on", Type: "string", Default: config.DefaultFailOn, Description: "Lowest severity that fails a run: error, warning, info or never", Category: "run"},
		{Name: "output", Type: "string", Default: config.DefaultOutput, Description: "Output format: auto, text, json or github", Category: "run"},
		{Name: "workers", Type: "int", Default: fmt.Sprint(config.DefaultWorkers), Description: "Parallel workers, 0 for one per CPU", Category: "run"},
		{Name: "cache.enabled", Type: "bool", Default: "false", Description: "Reuse results for unchanged files", Category: "run"},
		{Name: "cache.path", Type: "string", Default: config.Default().Cache.Path, Description: "Lint cache database path", Category: "run"},
	}
}

// generateConfigDocs generates the configuration reference page.
func generateConfigDocs(outDir string) error {
	log.Printf("Generating configuration docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()

	w.Frontmatter("Configuration", "pinelint configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph(fmt.Sprintf("pinelint reads the first of %s found in the current directory or any parent. "+
		"`pinelint init` writes the defaults below.", joinCode(config.FileNames)))

	for _, category := range []struct{ key, title string }{
		{"rules", "Rule Settings"},
		{"run", "Run Settings"},
	} {
		w.Header(2, category.title)
		var rows [][]string
		for _, f := range getConfigSchema() {
			if f.Category != category.key {
				continue
			}
			def := f.Default
			if def != "" {
				def = InlineCode(def)
			}
			rows = append(rows, []string{InlineCode(f.Name), f.Type, def, f.Description})
		}
		w.Table([]string{"Key", "Type", "Default", "Description"}, rows)
	}

	w.Header(2, "Default File")
	defaults, err := defaultYAML()
	if err != nil {
		return err
	}
	w.CodeBlock("yaml", defaults)

	log.Printf("  Generated index.md")
	return os.WriteFile(filepath.Join(outDir, "index.md"), w.Bytes(), 0600)
}

// defaultYAML renders the file `pinelint init` writes.
func defaultYAML() (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(config.DefaultFile()); err != nil {
		return "", fmt.Errorf("failed to encode defaults: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func joinCode(items []string) string {
	out := ""
	for i, item := range items {
		if i > 0 {
			out += ", "
		}
		out += InlineCode(item)
	}
	return out
}
