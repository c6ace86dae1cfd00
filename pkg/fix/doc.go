// Package fix rewrites Pine Script sources so the structural rules pass.
//
// A Fixer runs an ordered pipeline of passes over a line Document:
//
//  1. pragma: insert or hoist the //@version line
//  2. sections: insert missing required section headers
//  3. relocate_variables, relocate_functions, relocate_inputs,
//     relocate_imports: move misplaced declaration blocks into their section
//  4. naming: rename non-conforming declarations file-wide
//  5. continuation: indent lines that continue an expression
//  6. indentation: un-indent stray top-level var declarations
//
// Every pass rebuilds sections and facts from the current document before
// acting. The pipeline repeats until the text stops changing; output that
// is still changing after MaxRounds is rejected with ErrNotConverged.
package fix
