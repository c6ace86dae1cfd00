package report

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/leapstack-labs/pinelint/pkg/core"
	"github.com/leapstack-labs/pinelint/pkg/fix"
)

// FileReport is the result for one file.
type FileReport struct {
	Path     string         `json:"path"`
	Findings []core.Finding `json:"findings"`
	Fixed    bool           `json:"fixed,omitempty"`
	Changes  []fix.Change   `json:"changes,omitempty"`
	Cached   bool           `json:"cached,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// Summary aggregates a report.
type Summary struct {
	Files           int `json:"files"`
	FilesWithIssues int `json:"files_with_issues"`
	FilesFixed      int `json:"files_fixed,omitempty"`
	FilesFailed     int `json:"files_failed,omitempty"`
	Issues          int `json:"issues"`
	Errors          int `json:"errors"`
	Warnings        int `json:"warnings"`
	Info            int `json:"info"`
}

// String renders the summary counts, e.g.
// "3 issues (1 errors, 1 warnings, 1 info) in 2 files".
func (s Summary) String() string {
	return fmt.Sprintf("%d issues (%d errors, %d warnings, %d info) in %d files",
		s.Issues, s.Errors, s.Warnings, s.Info, s.Files)
}

// Report is the result of one lint or fix run.
type Report struct {
	RunID   string       `json:"run_id"`
	Files   []FileReport `json:"files"`
	Summary Summary      `json:"summary"`
}

// New creates an empty report with a fresh run ID.
func New() *Report {
	return NewWithRunID(uuid.NewString())
}

// NewWithRunID creates an empty report with the given run ID.
func NewWithRunID(runID string) *Report {
	return &Report{RunID: runID, Files: []FileReport{}}
}

// Add records one file. Its findings are sorted and counted.
func (r *Report) Add(fr FileReport) {
	if fr.Findings == nil {
		fr.Findings = []core.Finding{}
	}
	core.SortFindings(fr.Findings)
	r.Files = append(r.Files, fr)

	r.Summary.Files++
	if len(fr.Findings) > 0 {
		r.Summary.FilesWithIssues++
	}
	if fr.Fixed {
		r.Summary.FilesFixed++
	}
	if fr.Error != "" {
		r.Summary.FilesFailed++
	}
	for _, f := range fr.Findings {
		r.Summary.Issues++
		switch f.Severity {
		case core.SeverityError:
			r.Summary.Errors++
		case core.SeverityWarning:
			r.Summary.Warnings++
		default:
			r.Summary.Info++
		}
	}
}

// Sort orders files by path.
func (r *Report) Sort() {
	slices.SortStableFunc(r.Files, func(a, b FileReport) int {
		return cmp.Compare(a.Path, b.Path)
	})
}

// Clean reports whether no file has findings or errors.
func (r *Report) Clean() bool {
	return r.Summary.Issues == 0 && r.Summary.FilesFailed == 0
}

// Failed reports whether the run fails under threshold: any file error, or
// any finding the threshold fails on.
func (r *Report) Failed(threshold core.FailThreshold) bool {
	if r.Summary.FilesFailed > 0 {
		return true
	}
	for _, fr := range r.Files {
		for _, f := range fr.Findings {
			if threshold.Fails(f.Severity) {
				return true
			}
		}
	}
	return false
}

// ExitStatus returns the process exit status for threshold.
func (r *Report) ExitStatus(threshold core.FailThreshold) int {
	if r.Failed(threshold) {
		return 1
	}
	return 0
}
