package core

import "slices"

// Rule identifiers. These are the keys used in configuration files,
// severity_levels lists and on the command line.
const (
	RuleRequireVersion      = "require_version_declaration"
	RuleRequiredSections    = "required_sections"
	RuleSectionOrder        = "section_order"
	RuleVariablePlacement   = "variable_declaration_placement"
	RuleFunctionPlacement   = "function_placement"
	RuleInputPlacement      = "input_placement"
	RuleImportPlacement     = "import_placement"
	RuleNamingConventions   = "naming_conventions"
	RuleIndentedVariable    = "indented_variable_declaration"
	RuleMissingContinuation = "missing_line_continuation"
)

// RuleIDs returns every rule identifier in catalogue order.
func RuleIDs() []string {
	return []string{
		RuleRequireVersion,
		RuleRequiredSections,
		RuleSectionOrder,
		RuleVariablePlacement,
		RuleFunctionPlacement,
		RuleInputPlacement,
		RuleImportPlacement,
		RuleNamingConventions,
		RuleIndentedVariable,
		RuleMissingContinuation,
	}
}

// Default section names.
const (
	SectionMetadata      = "METADATA"
	SectionImports       = "IMPORTS"
	SectionInputGroups   = "INPUT GROUPS"
	SectionInputs        = "INPUT PARAMETERS"
	SectionVariables     = "VARIABLE DECLARATIONS"
	SectionFunctions     = "FUNCTION DEFINITIONS"
	SectionCalculations  = "MAIN CALCULATIONS"
	SectionVisualization = "VISUALIZATION"
	SectionAlerts        = "ALERTS"
)

// DefaultVersion is the pragma version written when none is configured.
const DefaultVersion = 6

// PlacementRule routes one declaration category to a single section.
type PlacementRule struct {
	Enforce bool   `koanf:"enforce" json:"enforce" yaml:"enforce"`
	Section string `koanf:"section" json:"section,omitempty" yaml:"section,omitempty"`
}

// MultiPlacementRule routes a declaration category to any of several sections.
// Relocation targets the first listed section present in the file.
type MultiPlacementRule struct {
	Enforce  bool     `koanf:"enforce" json:"enforce" yaml:"enforce"`
	Sections []string `koanf:"sections" json:"sections,omitempty" yaml:"sections,omitempty"`
}

// NamingConventions holds one convention spec per declaration category.
// An empty spec disables naming checks for that category.
type NamingConventions struct {
	Functions string `koanf:"functions" json:"functions,omitempty" yaml:"functions,omitempty"`
	Inputs    string `koanf:"inputs" json:"inputs,omitempty" yaml:"inputs,omitempty"`
	Variables string `koanf:"variables" json:"variables,omitempty" yaml:"variables,omitempty"`
	Constants string `koanf:"constants" json:"constants,omitempty" yaml:"constants,omitempty"`
}

// Any reports whether at least one category has a convention.
func (n NamingConventions) Any() bool {
	return n.Functions != "" || n.Inputs != "" || n.Variables != "" || n.Constants != ""
}

// Rules is the structural rule set.
type Rules struct {
	RequireVersionDeclaration    bool               `koanf:"require_version_declaration" json:"require_version_declaration" yaml:"require_version_declaration"`
	RequiredSections             []string           `koanf:"required_sections" json:"required_sections" yaml:"required_sections"`
	SectionOrder                 []string           `koanf:"section_order" json:"section_order" yaml:"section_order"`
	FunctionPlacement            PlacementRule      `koanf:"function_placement" json:"function_placement" yaml:"function_placement"`
	InputPlacement               MultiPlacementRule `koanf:"input_placement" json:"input_placement" yaml:"input_placement"`
	VariableDeclarationPlacement PlacementRule      `koanf:"variable_declaration_placement" json:"variable_declaration_placement" yaml:"variable_declaration_placement"`
	ImportPlacement              PlacementRule      `koanf:"import_placement" json:"import_placement" yaml:"import_placement"`
	NamingConventions            NamingConventions  `koanf:"naming_conventions" json:"naming_conventions" yaml:"naming_conventions"`
	IndentedVariableDeclaration  bool               `koanf:"indented_variable_declaration" json:"indented_variable_declaration" yaml:"indented_variable_declaration"`
	MissingLineContinuation      bool               `koanf:"missing_line_continuation" json:"missing_line_continuation" yaml:"missing_line_continuation"`
}

// RuleConfig is the complete, read-only rule configuration for one run.
// It is built once by the config loader and passed explicitly to every
// component; nothing mutates it after loading.
type RuleConfig struct {
	Rules          Rules               `koanf:"rules" json:"rules" yaml:"rules"`
	SeverityLevels map[string][]string `koanf:"severity_levels" json:"severity_levels,omitempty" yaml:"severity_levels,omitempty"`
	DisabledRules  []string            `koanf:"disabled_rules" json:"disabled_rules,omitempty" yaml:"disabled_rules,omitempty"`
	FileExtensions []string            `koanf:"file_extensions" json:"file_extensions" yaml:"file_extensions"`
	IgnorePatterns []string            `koanf:"ignore_patterns" json:"ignore_patterns,omitempty" yaml:"ignore_patterns,omitempty"`
	DefaultVersion int                 `koanf:"default_version" json:"default_version,omitempty" yaml:"default_version,omitempty"`
}

// DefaultSectionOrder returns the canonical section order.
func DefaultSectionOrder() []string {
	return []string{
		SectionMetadata,
		SectionInputGroups,
		SectionInputs,
		SectionVariables,
		SectionFunctions,
		SectionCalculations,
		SectionVisualization,
		SectionAlerts,
	}
}

// DefaultRuleConfig returns the built-in configuration used when no config
// file is found or the file cannot be parsed.
func DefaultRuleConfig() RuleConfig {
	return RuleConfig{
		Rules: Rules{
			RequireVersionDeclaration: true,
			RequiredSections:          DefaultSectionOrder(),
			SectionOrder:              DefaultSectionOrder(),
			FunctionPlacement: PlacementRule{
				Enforce: true,
				Section: SectionFunctions,
			},
			InputPlacement: MultiPlacementRule{
				Enforce:  true,
				Sections: []string{SectionInputs},
			},
			VariableDeclarationPlacement: PlacementRule{
				Enforce: true,
				Section: SectionVariables,
			},
			ImportPlacement: PlacementRule{
				Enforce: true,
				Section: SectionImports,
			},
			NamingConventions: NamingConventions{
				Functions: "camelCase",
				Inputs:    "camelCase",
				Variables: "camelCase",
				Constants: "SNAKE_CASE",
			},
			IndentedVariableDeclaration: true,
			MissingLineContinuation:     true,
		},
		SeverityLevels: map[string][]string{
			"error":   {RuleRequireVersion, RuleFunctionPlacement, RuleImportPlacement},
			"warning": {RuleSectionOrder, RuleInputPlacement, RuleVariablePlacement},
			"info":    {RuleNamingConventions},
		},
		FileExtensions: []string{".pine", ".pinescript"},
		IgnorePatterns: []string{"**/vendor/**", "**/deprecated/**"},
		DefaultVersion: DefaultVersion,
	}
}

// PragmaVersion returns the version written by the fixer.
func (c *RuleConfig) PragmaVersion() int {
	if c.DefaultVersion <= 0 {
		return DefaultVersion
	}
	return c.DefaultVersion
}

// RuleEnabled reports whether a rule is switched on and not listed in
// disabled_rules. Rules with nothing to check count as disabled.
func (c *RuleConfig) RuleEnabled(ruleID string) bool {
	if slices.Contains(c.DisabledRules, ruleID) {
		return false
	}
	r := c.Rules
	switch ruleID {
	case RuleRequireVersion:
		return r.RequireVersionDeclaration
	case RuleRequiredSections:
		return len(r.RequiredSections) > 0
	case RuleSectionOrder:
		return len(r.SectionOrder) > 1
	case RuleVariablePlacement:
		return r.VariableDeclarationPlacement.Enforce && r.VariableDeclarationPlacement.Section != ""
	case RuleFunctionPlacement:
		return r.FunctionPlacement.Enforce && r.FunctionPlacement.Section != ""
	case RuleInputPlacement:
		return r.InputPlacement.Enforce && len(r.InputPlacement.Sections) > 0
	case RuleImportPlacement:
		return r.ImportPlacement.Enforce && r.ImportPlacement.Section != ""
	case RuleNamingConventions:
		return r.NamingConventions.Any()
	case RuleIndentedVariable:
		return r.IndentedVariableDeclaration
	case RuleMissingContinuation:
		return r.MissingLineContinuation
	default:
		return false
	}
}

// OrderIndex returns the position of name in the canonical section order,
// or -1 when the section is not ordered.
func (c *RuleConfig) OrderIndex(name string) int {
	return slices.Index(c.Rules.SectionOrder, name)
}

// IsRequired reports whether name is a required section.
func (c *RuleConfig) IsRequired(name string) bool {
	return slices.Contains(c.Rules.RequiredSections, name)
}

// SeverityFor returns the configured severity level for a rule, if any.
// When a rule appears in several lists the most severe wins.
func (c *RuleConfig) SeverityFor(ruleID string) (Severity, bool) {
	for _, sev := range AllSeverities() {
		if slices.Contains(c.SeverityLevels[sev.String()], ruleID) {
			return sev, true
		}
	}
	return SeverityInfo, false
}

// Problems lists configuration references that cannot be resolved.
// Each problem degrades the affected rule to a no-op; none is fatal.
func (c *RuleConfig) Problems() []string {
	var problems []string
	seen := make(map[string]bool, len(c.Rules.RequiredSections))
	for _, name := range c.Rules.RequiredSections {
		if seen[name] {
			problems = append(problems, "duplicate required section "+quote(name))
		}
		seen[name] = true
	}
	if c.Rules.FunctionPlacement.Enforce && c.Rules.FunctionPlacement.Section == "" {
		problems = append(problems, RuleFunctionPlacement+" has no section")
	}
	if c.Rules.VariableDeclarationPlacement.Enforce && c.Rules.VariableDeclarationPlacement.Section == "" {
		problems = append(problems, RuleVariablePlacement+" has no section")
	}
	if c.Rules.ImportPlacement.Enforce && c.Rules.ImportPlacement.Section == "" {
		problems = append(problems, RuleImportPlacement+" has no section")
	}
	if c.Rules.InputPlacement.Enforce && len(c.Rules.InputPlacement.Sections) == 0 {
		problems = append(problems, RuleInputPlacement+" has no sections")
	}
	for level := range c.SeverityLevels {
		if _, ok := ParseSeverity(level); !ok {
			problems = append(problems, "unknown severity level "+quote(level))
		}
	}
	return problems
}

func quote(s string) string {
	return "'" + s + "'"
}
