// Package core defines the shared language of pinelint.
//
// This package contains:
//   - Severity levels and Finding values produced by the linter
//   - RuleConfig, the immutable rule configuration shared by every component
//   - Rule identifiers used by both the linter and the fixer
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
