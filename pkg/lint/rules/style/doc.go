// Package style provides lint rules for identifiers and line layout.
//
// Rules in this package:
//   - naming_conventions: declared names follow the configured convention
//   - indented_variable_declaration: top-level var declarations start at column 0
//   - missing_line_continuation: a line ending in an operator is followed by an indented line
package style
