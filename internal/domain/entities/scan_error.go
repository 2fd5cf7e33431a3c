package entities

import (
	"errors"
	"fmt"
)

// ErrorKind classifies scan failures by who can fix them
type ErrorKind string

// Error kinds
const (
	KindBadInput      ErrorKind = "bad_input"      // caller supplied an unusable upload
	KindToolMissing   ErrorKind = "tool_missing"   // analyzer absent, not runnable or untrusted
	KindToolExecution ErrorKind = "tool_execution" // analyzer ran but did not complete an analysis
	KindWorkspace     ErrorKind = "workspace"      // scratch directory or staging failed
)

// Sentinels for errors.Is checks against a ScanError kind
var (
	ErrBadInput      = errors.New("bad input")
	ErrToolMissing   = errors.New("analyzer unavailable")
	ErrToolExecution = errors.New("analyzer execution failed")
	ErrWorkspace     = errors.New("workspace failure")
)

// ScanError is the error returned across the scan pipeline's layers
type ScanError struct {
	Kind    ErrorKind
	Message string
	Err     error
	Outcome *AnalyzerOutcome // partial analyzer output, tool execution failures only
}

// NewScanError creates a ScanError of the given kind
func NewScanError(kind ErrorKind, message string, err error) *ScanError {
	return &ScanError{Kind: kind, Message: message, Err: err}
}

func (e *ScanError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

func (e *ScanError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind
func (e *ScanError) Is(target error) bool {
	return target == e.Kind.sentinel()
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindBadInput:
		return ErrBadInput
	case KindToolMissing:
		return ErrToolMissing
	case KindToolExecution:
		return ErrToolExecution
	case KindWorkspace:
		return ErrWorkspace
	default:
		return nil
	}
}

// KindOf returns the kind of the first ScanError in err's chain
func KindOf(err error) (ErrorKind, bool) {
	var se *ScanError
	if errors.As(err, &se) {
		return se.Kind, true
	}
	return "", false
}
