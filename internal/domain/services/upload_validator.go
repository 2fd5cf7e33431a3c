// Package services implements domain business logic and use cases.
package services

import (
	"strings"

	"github.com/ochairo/alignscan/internal/domain/entities"
)

// Defaults for upload acceptance
var (
	DefaultAllowedMediaTypes = []string{
		"application/vnd.android.package-archive",
		"application/zip",
		"application/x-zip-compressed",
	}
	DefaultAllowedExtensions = []string{".apk", ".zip"}
)

// Messages returned to callers for rejected uploads
const (
	msgNoFile          = "No file provided"
	msgInvalidFileType = "Invalid file type. Please upload an APK or ZIP file."
)

// UploadValidator accepts or rejects uploads on declared metadata only.
// Deep inspection is left to the analyzer.
type UploadValidator struct {
	mediaTypes map[string]struct{}
	extensions []string
}

// NewUploadValidator creates a validator; empty lists fall back to the defaults
func NewUploadValidator(mediaTypes, extensions []string) *UploadValidator {
	if len(mediaTypes) == 0 {
		mediaTypes = DefaultAllowedMediaTypes
	}
	if len(extensions) == 0 {
		extensions = DefaultAllowedExtensions
	}

	types := make(map[string]struct{}, len(mediaTypes))
	for _, mt := range mediaTypes {
		types[strings.ToLower(strings.TrimSpace(mt))] = struct{}{}
	}

	return &UploadValidator{
		mediaTypes: types,
		extensions: append([]string(nil), extensions...),
	}
}

// Validate returns a BadInput ScanError when the upload is not a candidate package
func (v *UploadValidator) Validate(pkg *entities.UploadedPackage) error {
	if pkg == nil || len(pkg.Data) == 0 {
		return entities.NewScanError(entities.KindBadInput, msgNoFile, nil)
	}

	if v.allowedMediaType(pkg.MediaType) || v.allowedExtension(pkg.Filename) {
		return nil
	}

	return entities.NewScanError(entities.KindBadInput, msgInvalidFileType, nil)
}

func (v *UploadValidator) allowedMediaType(mediaType string) bool {
	// Drop parameters such as "; charset=binary"
	if i := strings.IndexByte(mediaType, ';'); i >= 0 {
		mediaType = mediaType[:i]
	}
	_, ok := v.mediaTypes[strings.ToLower(strings.TrimSpace(mediaType))]
	return ok
}

func (v *UploadValidator) allowedExtension(filename string) bool {
	for _, ext := range v.extensions {
		if ext != "" && strings.HasSuffix(filename, ext) {
			return true
		}
	}
	return false
}
