package rules

// Import all rule subpackages to register them with the global registry.
// This file triggers all init() functions in the rule packages.
import (
	_ "github.com/leapstack-labs/pinelint/pkg/lint/rules/placement"
	_ "github.com/leapstack-labs/pinelint/pkg/lint/rules/structure"
	_ "github.com/leapstack-labs/pinelint/pkg/lint/rules/style"
)
