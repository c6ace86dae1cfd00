// Package report collects per-file lint and fix results into a run report
// and renders it as plain text, JSON or GitHub workflow annotations.
//
// Findings are always sorted by line, then rule ID, so every format lists
// them in the same order. The exit status of a run is derived from the
// report and a core.FailThreshold.
package report
