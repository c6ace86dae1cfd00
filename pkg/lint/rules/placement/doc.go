// Package placement provides lint rules that route declarations to their
// designated sections.
//
// Rules in this package:
//   - variable_declaration_placement: var/varip declarations
//   - function_placement: user-defined functions and methods
//   - input_placement: input.*() declarations
//   - import_placement: library imports
package placement
