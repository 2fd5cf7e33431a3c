package services

import (
	"github.com/ochairo/alignscan/internal/domain/entities"
	"github.com/ochairo/alignscan/internal/domain/interfaces/services"
)

// complianceService implements ComplianceService with pure business logic
type complianceService struct {
	validator *UploadValidator
}

// NewComplianceService creates a new compliance service
func NewComplianceService(validator *UploadValidator) services.ComplianceService {
	if validator == nil {
		validator = NewUploadValidator(nil, nil)
	}
	return &complianceService{validator: validator}
}

// ValidateUpload checks the declared metadata of an upload
func (s *complianceService) ValidateUpload(pkg *entities.UploadedPackage) error {
	return s.validator.Validate(pkg)
}

// ParseReport converts analyzer output into a ComplianceReport
// Pure business logic - no I/O
func (s *complianceService) ParseReport(stdout, stderr string) *entities.ComplianceReport {
	return ParseReport(stdout, stderr)
}
