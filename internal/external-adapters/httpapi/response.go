// Package httpapi exposes the scan pipeline over HTTP.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ochairo/alignscan/internal/domain/entities"
	orchestrators "github.com/ochairo/alignscan/internal/domain-orchestrators"
)

const msgProcessingFailed = "Failed to process file"

// ScanResponse is the body of a successful scan
type ScanResponse struct {
	Success   bool                       `json:"success"`
	Results   *entities.ComplianceReport `json:"results"`
	RawOutput string                     `json:"rawOutput"`
	Errors    string                     `json:"errors"`
}

// ErrorResponse is the body of a failed request
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// HealthResponse is the body of GET /healthz
type HealthResponse struct {
	OK       bool   `json:"ok"`
	Analyzer string `json:"analyzer"`
	Details  string `json:"details,omitempty"`
}

// NewScanResponse assembles the success body from a scan result
func NewScanResponse(result *orchestrators.ScanResult) ScanResponse {
	return ScanResponse{
		Success:   true,
		Results:   result.Report,
		RawOutput: result.RawOutput,
		Errors:    result.Errors,
	}
}

// NewErrorResponse maps err to a status code and body. Bad input is the
// caller's fault and keeps its own message; everything else is reported
// as a processing failure with the cause in details.
func NewErrorResponse(err error) (int, ErrorResponse) {
	var scanErr *entities.ScanError
	if errors.As(err, &scanErr) && scanErr.Kind == entities.KindBadInput {
		resp := ErrorResponse{Error: scanErr.Message}
		if scanErr.Err != nil {
			resp.Details = scanErr.Err.Error()
		}
		return http.StatusBadRequest, resp
	}

	resp := ErrorResponse{Error: msgProcessingFailed}
	if err != nil {
		resp.Details = err.Error()
	}
	return http.StatusInternalServerError, resp
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
