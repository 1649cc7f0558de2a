// Package service orchestrates the analyzer pipeline over files and
// directories: discovery, parallel execution, and report formatting.
package service

import "github.com/ludo-technologies/mc-analyzer/internal/diagnostic"

// FileReport is one file's analysis outcome.
type FileReport struct {
	Path        string                  `json:"path"`
	Diagnostics []diagnostic.Diagnostic `json:"diagnostics"`
	Err         string                  `json:"error,omitempty"`
}

// Passed reports whether the file produced no error-severity condition:
// neither an I/O/parse failure nor a diagnostic at or above the
// configured fail-on threshold.
func (r FileReport) Passed(failOnError bool) bool {
	if r.Err != "" {
		return false
	}
	for _, d := range r.Diagnostics {
		if failOnError {
			if d.Severity == diagnostic.Error {
				return false
			}
		} else {
			return false
		}
	}
	return true
}

// RunReport aggregates every file analyzed in one invocation, carrying a
// unique id so JSON output can be correlated across tool runs.
type RunReport struct {
	ID     string       `json:"id"`
	Files  []FileReport `json:"files"`
	Total  int          `json:"total"`
	Passed int          `json:"passed"`
	Failed int          `json:"failed"`
}

// Summarize fills in Total/Passed/Failed from Files.
func (r *RunReport) Summarize(failOnError bool) {
	r.Total = len(r.Files)
	r.Passed = 0
	r.Failed = 0
	for _, f := range r.Files {
		if f.Passed(failOnError) {
			r.Passed++
		} else {
			r.Failed++
		}
	}
}
