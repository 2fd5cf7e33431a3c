package orchestrators

import (
	"context"
	"fmt"
	"time"

	"github.com/ochairo/alignscan/internal/domain/entities"
	"github.com/ochairo/alignscan/internal/domain/interfaces"
	"github.com/ochairo/alignscan/internal/domain/interfaces/gateways"
	"github.com/ochairo/alignscan/internal/domain/interfaces/services"
)

// ScanOrchestrator coordinates one upload through validation, staging,
// analysis and parsing
type ScanOrchestrator struct {
	compliance services.ComplianceService
	workspaces gateways.WorkspaceManager
	analyzer   gateways.Analyzer
	logger     interfaces.Logger
}

// NewScanOrchestrator creates a new scan orchestrator
func NewScanOrchestrator(
	compliance services.ComplianceService,
	workspaces gateways.WorkspaceManager,
	analyzer gateways.Analyzer,
	logger interfaces.Logger,
) *ScanOrchestrator {
	return &ScanOrchestrator{
		compliance: compliance,
		workspaces: workspaces,
		analyzer:   analyzer,
		logger:     interfaces.OrNoOp(logger),
	}
}

// ScanResult is everything a caller needs to answer a scan request
type ScanResult struct {
	Report       *entities.ComplianceReport
	RawOutput    string
	Errors       string
	ExitCode     int
	WorkspaceID  string
	ScanDuration time.Duration
}

// PerformScan runs the full pipeline for one upload. The workspace is
// released on every path out of this method once it has been acquired.
func (o *ScanOrchestrator) PerformScan(ctx context.Context, pkg *entities.UploadedPackage) (*ScanResult, error) {
	startTime := time.Now()

	// Step 1: Reject unusable uploads before touching the filesystem
	if err := o.compliance.ValidateUpload(pkg); err != nil {
		return nil, err
	}

	// Step 2: Isolate the request
	ws, err := o.workspaces.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("workspace acquisition failed: %w", err)
	}
	defer o.workspaces.Release(ws)

	stagedPath, err := o.workspaces.Stage(ctx, ws, pkg)
	if err != nil {
		return nil, fmt.Errorf("staging failed: %w", err)
	}

	o.logger.Info("scan started",
		interfaces.F("workspace", ws.ID),
		interfaces.F("file", pkg.Filename),
		interfaces.F("media_type", pkg.MediaType),
		interfaces.F("bytes", pkg.Size()))

	// Step 3: Run the analyzer
	outcome, err := o.analyzer.Invoke(ctx, stagedPath)
	if err != nil {
		o.logger.Error("analyzer failed",
			interfaces.F("workspace", ws.ID),
			interfaces.F("error", err))
		return nil, fmt.Errorf("analysis failed: %w", err)
	}

	// Step 4: Parse (pure business logic, never fails)
	report := o.compliance.ParseReport(outcome.Stdout, outcome.Stderr)

	result := &ScanResult{
		Report:       report,
		RawOutput:    outcome.Stdout,
		Errors:       outcome.Stderr,
		ExitCode:     outcome.ExitCode,
		WorkspaceID:  ws.ID,
		ScanDuration: time.Since(startTime),
	}

	o.logger.Info("scan finished",
		interfaces.F("workspace", ws.ID),
		interfaces.F("compliance", report.ComplianceStatus),
		interfaces.F("libraries", len(report.Libraries)),
		interfaces.F("unaligned", report.UnalignedLibraries),
		interfaces.F("critical", report.CriticalFailures),
		interfaces.F("duration", result.ScanDuration))

	return result, nil
}

// GetScanSummary renders a one-line human-readable summary of a result
func (o *ScanOrchestrator) GetScanSummary(result *ScanResult) string {
	if result == nil {
		return SummaryLine(nil)
	}
	return SummaryLine(result.Report)
}

// SummaryLine renders a one-line verdict for report
func SummaryLine(report *entities.ComplianceReport) string {
	if report == nil {
		return "❓ UNKNOWN: no report"
	}

	switch report.ComplianceStatus {
	case entities.CompliancePassed:
		return fmt.Sprintf("✅ PASSED: %s", report.Summary)
	case entities.ComplianceFailed:
		return fmt.Sprintf("🚫 FAILED: %s", report.Summary)
	default:
		if report.Summary == "" {
			return "❓ UNKNOWN: analyzer output did not contain a verdict"
		}
		return fmt.Sprintf("❓ UNKNOWN: %s", report.Summary)
	}
}
