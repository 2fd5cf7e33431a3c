package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ochairo/alignscan/internal/domain/entities"
)

// Markers the analyzer prints around its summary
const (
	markerTotalScanned   = "Total libraries scanned:"
	markerCompliance     = "Google Play Compliance:"
	markerNoNativeUpper  = "NO NATIVE LIBRARIES"
	markerNoNativeLower  = "No native libraries"
	markerPassed         = "PASSED"
	markerFailed         = "FAILED"
	markerRowPass        = "PASS"
	markerRowCheck       = "✓"
	summaryNoNativeLibs  = "No native libraries found - automatically compatible"
	summaryFlutterReady  = " Your Flutter app is ready for Google Play!"
	summaryFlutterFixing = " Follow the Flutter-specific steps below to fix these issues."
)

// criticalABIs are the 64-bit ABIs whose misalignment blocks store compliance
var criticalABIs = []string{"arm64-v8a", "x86_64"}

// flutterTokens mark a library as part of the Flutter runtime
var flutterTokens = []string{"flutter", "dart", "engine", "skia", "libflutter", "libdart"}

var digitRun = regexp.MustCompile(`\d+`)

// ParseReport converts analyzer output into a ComplianceReport.
// It is total over its input: unrecognized lines are ignored and the
// result degrades to the unknown status instead of failing.
func ParseReport(stdout, _ string) *entities.ComplianceReport {
	report := entities.NewComplianceReport()
	scanner := &tableScanner{}
	forcedSummary := false

	for _, raw := range strings.Split(stdout, "\n") {
		line := strings.TrimSpace(raw)

		if row, ok := scanner.Feed(line); ok {
			addLibrary(report, row)
		}

		if strings.Contains(line, markerTotalScanned) {
			if n, ok := firstNumber(line); ok {
				report.TotalLibraries = n
			}
		}

		if strings.Contains(line, markerCompliance) {
			if strings.Contains(line, markerPassed) {
				report.ComplianceStatus = entities.CompliancePassed
				report.Status = entities.ScanStatusSuccess
			} else if strings.Contains(line, markerFailed) {
				report.ComplianceStatus = entities.ComplianceFailed
				report.Status = entities.ScanStatusError
			}
		}

		// A package without native code is always compliant
		if strings.Contains(line, markerNoNativeUpper) || strings.Contains(line, markerNoNativeLower) {
			report.Status = entities.ScanStatusSuccess
			report.ComplianceStatus = entities.CompliancePassed
			report.Summary = summaryNoNativeLibs
			forcedSummary = true
		}
	}

	for _, lib := range report.Libraries {
		if IsFlutterLibrary(lib.Name) {
			report.IsFlutterApp = true
			break
		}
	}

	if !forcedSummary {
		report.Summary = buildSummary(report)
	}

	return report
}

func addLibrary(report *entities.ComplianceReport, row tableRow) {
	aligned := strings.Contains(row.StatusText, markerRowPass) || strings.Contains(row.StatusText, markerRowCheck)
	entry := entities.LibraryEntry{
		Name:         row.Name,
		Architecture: row.Architecture,
		Alignment:    row.Alignment,
		Status:       entities.Unaligned,
		IsCritical:   IsCriticalArchitecture(row.Architecture),
	}

	if aligned {
		entry.Status = entities.Aligned
		report.AlignedLibraries++
	} else {
		report.UnalignedLibraries++
		if entry.IsCritical {
			report.CriticalFailures++
		}
	}

	report.Libraries = append(report.Libraries, entry)
}

// buildSummary renders the human readable summary from the counts.
// Returns "" when neither the all-aligned nor the needs-fixes case applies.
func buildSummary(report *entities.ComplianceReport) string {
	var b strings.Builder

	switch {
	case report.UnalignedLibraries == 0 && report.TotalLibraries > 0:
		fmt.Fprintf(&b, "All %d libraries are properly aligned for 16KB page size.", report.TotalLibraries)
		if report.IsFlutterApp {
			b.WriteString(summaryFlutterReady)
		}
	case report.UnalignedLibraries > 0:
		fmt.Fprintf(&b, "%d of %d libraries need alignment fixes.", report.UnalignedLibraries, report.TotalLibraries)
		if report.CriticalFailures > 0 {
			fmt.Fprintf(&b, " %d critical failures require immediate attention.", report.CriticalFailures)
		}
		if report.IsFlutterApp {
			b.WriteString(summaryFlutterFixing)
		}
	}

	return b.String()
}

// IsCriticalArchitecture reports whether arch names a 64-bit ABI
func IsCriticalArchitecture(arch string) bool {
	for _, abi := range criticalABIs {
		if strings.Contains(arch, abi) {
			return true
		}
	}
	return false
}

// IsFlutterLibrary reports whether a library name looks like part of the Flutter runtime
func IsFlutterLibrary(name string) bool {
	lower := strings.ToLower(name)
	for _, token := range flutterTokens {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return false
}

func firstNumber(line string) (int, bool) {
	m := digitRun.FindString(line)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		// Overflowing digit runs are treated like a missing count
		return 0, false
	}
	return n, true
}
