// Package source derives structural facts from Pine Script text.
//
// A Document is an arena of lines with stable IDs. Physical line numbers are
// computed on demand, so callers that mutate a Document hold on to LineIDs
// rather than indices and never patch positions by hand.
//
// Sections and Scan are pure functions of a Document. They are cheap and are
// meant to be recomputed after every structural edit.
package source
