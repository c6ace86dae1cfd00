// Package rules provides the Pine Script structural rule catalogue.
//
// Rules are organized by category:
//   - structure: version pragma, required sections, section order
//   - placement: variables, functions, inputs and imports in their sections
//   - style: naming conventions, indented variables, line continuations
//
// To register all rules with the global lint registry, import this package
// with a blank identifier:
//
//	import _ "github.com/leapstack-labs/pinelint/pkg/lint/rules"
//
// The registry orders rules by catalogue position, so import order does
// not affect evaluation order.
package rules
