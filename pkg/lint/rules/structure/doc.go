// Package structure provides lint rules for the overall layout of a script.
//
// Rules in this package:
//   - require_version_declaration: a //@version pragma precedes all code
//   - required_sections: every configured section header is present
//   - section_order: sections appear in the canonical order
package structure
