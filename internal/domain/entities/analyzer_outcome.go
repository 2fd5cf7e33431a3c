package entities

import (
	"strings"
	"time"
)

// Exit codes of the alignment analyzer
const (
	AnalyzerExitClean        = 0
	AnalyzerExitIssuesFound  = 1
	AnalyzerExitNotAvailable = -1 // process never produced an exit status
)

// AnalyzerOutcome is the raw result of one analyzer invocation
type AnalyzerOutcome struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Duration time.Duration
}

// HasOutput reports whether the analyzer wrote anything at all
func (o *AnalyzerOutcome) HasOutput() bool {
	if o == nil {
		return false
	}
	return strings.TrimSpace(o.Stdout) != "" || strings.TrimSpace(o.Stderr) != ""
}

// Completed reports whether the outcome represents a finished analysis.
// Exit 1 is the analyzer's way of saying "done, alignment problems found"
// and only counts when a report was written to stdout.
func (o *AnalyzerOutcome) Completed() bool {
	if o == nil {
		return false
	}
	switch o.ExitCode {
	case AnalyzerExitClean:
		return o.HasOutput()
	case AnalyzerExitIssuesFound:
		return strings.TrimSpace(o.Stdout) != ""
	default:
		return false
	}
}
