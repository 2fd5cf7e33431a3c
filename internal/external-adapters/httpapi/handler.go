package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/ochairo/alignscan/internal/domain/entities"
	"github.com/ochairo/alignscan/internal/domain/interfaces"
	orchestrators "github.com/ochairo/alignscan/internal/domain-orchestrators"
)

// Routes served by the handler
const (
	ScanPath   = "/api/scan"
	HealthPath = "/healthz"
)

// formFileField is the multipart field carrying the upload
const formFileField = "file"

// multipartMemory is how much of a form is held in memory before spilling to disk
const multipartMemory = 32 << 20

// Scanner runs the scan pipeline for one upload
type Scanner interface {
	PerformScan(ctx context.Context, pkg *entities.UploadedPackage) (*orchestrators.ScanResult, error)
}

// ReadinessChecker reports whether the analyzer can be run
type ReadinessChecker interface {
	Ready(ctx context.Context) error
}

// HandlerConfig wires the HTTP surface to the pipeline
type HandlerConfig struct {
	Scanner   Scanner
	Readiness ReadinessChecker
	// MaxUploadBytes bounds the request body; zero means unbounded
	MaxUploadBytes int64
	Logger         interfaces.Logger
}

// Handler serves the scan API
type Handler struct {
	scanner   Scanner
	readiness ReadinessChecker
	maxBytes  int64
	logger    interfaces.Logger
	mux       *http.ServeMux
}

// NewHandler creates the API handler with CORS applied
func NewHandler(config HandlerConfig) http.Handler {
	h := &Handler{
		scanner:   config.Scanner,
		readiness: config.Readiness,
		maxBytes:  config.MaxUploadBytes,
		logger:    interfaces.OrNoOp(config.Logger),
		mux:       http.NewServeMux(),
	}

	h.mux.HandleFunc("POST "+ScanPath, h.handleScan)
	h.mux.HandleFunc("GET "+HealthPath, h.handleHealth)

	return withCORS(h.mux)
}

func (h *Handler) handleScan(w http.ResponseWriter, r *http.Request) {
	pkg, err := h.readUpload(w, r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	result, err := h.scanner.PerformScan(r.Context(), pkg)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, NewScanResponse(result))
}

// readUpload extracts the uploaded file. A missing file yields a nil
// package so validation reports it the same way as an empty one.
func (h *Handler) readUpload(w http.ResponseWriter, r *http.Request) (*entities.UploadedPackage, error) {
	if h.maxBytes > 0 {
		if r.ContentLength > h.maxBytes {
			return nil, uploadError(&http.MaxBytesError{Limit: h.maxBytes})
		}
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	}

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		return nil, uploadError(err)
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile(formFileField)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, uploadError(err)
	}
	defer func() { _ = file.Close() }()

	data, err := readAll(file, header)
	if err != nil {
		return nil, entities.NewScanError(entities.KindWorkspace, "failed to read upload", err)
	}

	return &entities.UploadedPackage{
		Filename:  header.Filename,
		MediaType: header.Header.Get("Content-Type"),
		Data:      data,
	}, nil
}

func readAll(file multipart.File, header *multipart.FileHeader) ([]byte, error) {
	if header.Size <= 0 {
		return io.ReadAll(file)
	}
	data := make([]byte, header.Size)
	if _, err := io.ReadFull(file, data); err != nil {
		return nil, err
	}
	return data, nil
}

func uploadError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return entities.NewScanError(entities.KindBadInput,
			fmt.Sprintf("File too large. Maximum upload size is %d bytes.", tooLarge.Limit), err)
	}
	return entities.NewScanError(entities.KindBadInput, "Invalid upload form", err)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, body := NewErrorResponse(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("scan request failed",
			interfaces.F("path", r.URL.Path),
			interfaces.F("status", status),
			interfaces.F("error", err))
	} else {
		h.logger.Warn("scan request rejected",
			interfaces.F("path", r.URL.Path),
			interfaces.F("status", status),
			interfaces.F("error", err))
	}
	writeJSON(w, status, body)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if h.readiness == nil {
		writeJSON(w, http.StatusOK, HealthResponse{OK: true, Analyzer: "ready"})
		return
	}

	if err := h.readiness.Ready(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			OK:       true,
			Analyzer: "unavailable",
			Details:  err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{OK: true, Analyzer: "ready"})
}
