// Package gateways defines contracts for the infrastructure the scan pipeline drives.
package gateways

import (
	"context"

	"github.com/ochairo/alignscan/internal/domain/entities"
)

// Analyzer runs the external alignment analyzer against a staged file.
// Implementations return a *entities.ScanError on failure.
type Analyzer interface {
	Invoke(ctx context.Context, targetPath string) (*entities.AnalyzerOutcome, error)
}

// WorkspaceManager owns request-scoped scratch directories
type WorkspaceManager interface {
	// Acquire creates a fresh, uniquely named workspace
	Acquire(ctx context.Context) (*entities.Workspace, error)

	// Stage writes the upload into the workspace and returns the file path
	Stage(ctx context.Context, ws *entities.Workspace, pkg *entities.UploadedPackage) (string, error)

	// Release removes the workspace; failures are logged, never returned
	Release(ws *entities.Workspace)
}

// ToolVerifier checks that the analyzer executable is present and trusted
type ToolVerifier interface {
	VerifyTool(ctx context.Context, executablePath string) error
}
