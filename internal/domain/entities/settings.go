package entities

import "time"

// ScannerSettings is the operator configuration of a scanner deployment
type ScannerSettings struct {
	Listen      string
	ScratchRoot string
	Log         LogSettings
	Analyzer    AnalyzerSettings
	Upload      UploadSettings
}

// LogSettings configures structured logging
type LogSettings struct {
	Level  string // debug, info, warn, error
	Format string // text, json
}

// AnalyzerSettings locates and pins the external analyzer
type AnalyzerSettings struct {
	Path          string
	SHA256        string
	SignaturePath string
	KeyringPath   string
	Timeout       time.Duration // zero means no limit
}

// UploadSettings bounds and filters accepted uploads
type UploadSettings struct {
	MaxBytes          int64
	AllowedMediaTypes []string
	AllowedExtensions []string
}
