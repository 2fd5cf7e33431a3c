package entities

// ScanStatus is the overall outcome of parsing an analyzer report
type ScanStatus string

// Scan statuses
const (
	ScanStatusUnknown ScanStatus = "unknown"
	ScanStatusSuccess ScanStatus = "success"
	ScanStatusError   ScanStatus = "error"
)

// ComplianceStatus is the store compliance verdict printed by the analyzer
type ComplianceStatus string

// Compliance verdicts
const (
	CompliancePassed  ComplianceStatus = "PASSED"
	ComplianceFailed  ComplianceStatus = "FAILED"
	ComplianceUnknown ComplianceStatus = "unknown"
)

// AlignmentStatus is the per-library verdict
type AlignmentStatus string

// Alignment verdicts
const (
	Aligned   AlignmentStatus = "ALIGNED"
	Unaligned AlignmentStatus = "UNALIGNED"
)

// LibraryEntry is one native library row reported by the analyzer
type LibraryEntry struct {
	Name         string          `json:"name"`
	Architecture string          `json:"architecture"`
	Alignment    string          `json:"alignment"` // raw text, not interpreted
	Status       AlignmentStatus `json:"status"`
	IsCritical   bool            `json:"isCritical"` // 64-bit ABI
}

// ComplianceReport is the structured form of an analyzer report
type ComplianceReport struct {
	Status             ScanStatus       `json:"status"`
	TotalLibraries     int              `json:"totalLibraries"`
	AlignedLibraries   int              `json:"alignedLibraries"`
	UnalignedLibraries int              `json:"unalignedLibraries"`
	CriticalFailures   int              `json:"criticalFailures"`
	Libraries          []LibraryEntry   `json:"libraries"`
	Summary            string           `json:"summary"`
	ComplianceStatus   ComplianceStatus `json:"complianceStatus"`
	Recommendations    []string         `json:"recommendations"`
	IsFlutterApp       bool             `json:"isFlutterApp"`
	FlutterVersion     *string          `json:"flutterVersion,omitempty"` // reserved
}

// NewComplianceReport returns an empty report in the unknown state
func NewComplianceReport() *ComplianceReport {
	return &ComplianceReport{
		Status:           ScanStatusUnknown,
		ComplianceStatus: ComplianceUnknown,
		Libraries:        make([]LibraryEntry, 0),
		Recommendations:  make([]string, 0),
	}
}

// Passed reports whether the analyzer declared the package compliant
func (r *ComplianceReport) Passed() bool {
	return r != nil && r.ComplianceStatus == CompliancePassed
}
