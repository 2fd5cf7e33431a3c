package services

import (
	"errors"
	"testing"

	"github.com/ochairo/alignscan/internal/domain/entities"
)

func TestComplianceService(t *testing.T) {
	svc := NewComplianceService(nil)

	err := svc.ValidateUpload(&entities.UploadedPackage{Filename: "app.txt", MediaType: "text/plain", Data: []byte("x")})
	if !errors.Is(err, entities.ErrBadInput) {
		t.Errorf("ValidateUpload() error = %v, want BadInput", err)
	}

	report := svc.ParseReport("Google Play Compliance: PASSED\n", "")
	if !report.Passed() {
		t.Errorf("ParseReport() ComplianceStatus = %q, want PASSED", report.ComplianceStatus)
	}
}
