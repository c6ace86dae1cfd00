package lint

import (
	"slices"

	"github.com/leapstack-labs/pinelint/pkg/core"
)

// Config controls which rules are enabled and their severity.
type Config struct {
	// DisabledRules contains rule IDs to skip
	DisabledRules map[string]bool

	// SeverityOverrides changes the default severity of rules
	SeverityOverrides map[string]core.Severity
}

// NewConfig creates a default configuration with all rules enabled.
func NewConfig() *Config {
	return &Config{
		DisabledRules:     make(map[string]bool),
		SeverityOverrides: make(map[string]core.Severity),
	}
}

// NewConfigFromRuleConfig seeds a Config from the disabled_rules and
// severity_levels of a rule configuration. When a rule is listed under
// several levels the most severe one wins.
func NewConfigFromRuleConfig(rc *core.RuleConfig) *Config {
	c := NewConfig()
	if rc == nil {
		return c
	}
	for _, id := range rc.DisabledRules {
		c.Disable(id)
	}
	levels := core.AllSeverities()
	slices.Reverse(levels)
	for _, sev := range levels {
		for _, id := range rc.SeverityLevels[sev.String()] {
			c.SetSeverity(id, sev)
		}
	}
	return c
}

// IsDisabled returns true if the rule should be skipped.
func (c *Config) IsDisabled(ruleID string) bool {
	if c == nil {
		return false
	}
	return c.DisabledRules[ruleID]
}

// GetSeverity returns the severity for a rule, applying any override.
func (c *Config) GetSeverity(ruleID string, defaultSeverity core.Severity) core.Severity {
	if c != nil {
		if sev, ok := c.SeverityOverrides[ruleID]; ok {
			return sev
		}
	}
	return defaultSeverity
}

// Disable disables a rule by ID.
func (c *Config) Disable(ruleID string) *Config {
	c.DisabledRules[ruleID] = true
	return c
}

// SetSeverity overrides the severity for a rule.
func (c *Config) SetSeverity(ruleID string, severity core.Severity) *Config {
	c.SeverityOverrides[ruleID] = severity
	return c
}
