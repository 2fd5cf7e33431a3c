// Package services defines interfaces for domain service contracts.
package services

import (
	"github.com/ochairo/alignscan/internal/domain/entities"
)

// ComplianceService defines the pure business logic of a scan
// No I/O: validation works on declared metadata and parsing on captured text
type ComplianceService interface {
	ValidateUpload(pkg *entities.UploadedPackage) error
	ParseReport(stdout, stderr string) *entities.ComplianceReport
}
