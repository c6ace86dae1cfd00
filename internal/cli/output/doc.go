// Package output renders command results for humans and machines.
//
// A Renderer picks its effective mode from the requested one: auto
// resolves to text, and text is styled only when stdout is a terminal.
// JSON and GitHub modes never carry ANSI sequences.
package output
