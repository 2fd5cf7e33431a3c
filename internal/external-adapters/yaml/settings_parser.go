// Package yaml provides YAML-based parsing of scanner settings files.
package yaml

import (
	"fmt"
	"os"
	"time"

	"github.com/ochairo/alignscan/internal/domain/entities"
	"gopkg.in/yaml.v3"
)

// yamlSettings represents the raw YAML structure
type yamlSettings struct {
	Listen      string       `yaml:"listen"`
	ScratchRoot string       `yaml:"scratch_root"`
	Log         yamlLog      `yaml:"log"`
	Analyzer    yamlAnalyzer `yaml:"analyzer"`
	Upload      yamlUpload   `yaml:"upload"`
}

type yamlLog struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type yamlAnalyzer struct {
	Path      string `yaml:"path"`
	SHA256    string `yaml:"sha256"`
	Signature string `yaml:"signature"`
	Keyring   string `yaml:"keyring"`
	Timeout   string `yaml:"timeout"` // Go duration, e.g. "5m"
}

type yamlUpload struct {
	MaxBytes          int64    `yaml:"max_bytes"`
	AllowedMediaTypes []string `yaml:"allowed_media_types"`
	AllowedExtensions []string `yaml:"allowed_extensions"`
}

// SettingsParser parses YAML settings files
type SettingsParser struct{}

// NewSettingsParser creates a new YAML parser
func NewSettingsParser() *SettingsParser {
	return &SettingsParser{}
}

// ParseFile parses a YAML settings file
func (p *SettingsParser) ParseFile(filePath string) (*entities.ScannerSettings, error) {
	//nolint:gosec // G304: filePath is the operator-supplied config path
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return p.Parse(data)
}

// Parse parses YAML bytes into ScannerSettings. Unset keys stay at their
// zero value so callers can layer the result over defaults.
func (p *SettingsParser) Parse(data []byte) (*entities.ScannerSettings, error) {
	var raw yamlSettings
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	var timeout time.Duration
	if raw.Analyzer.Timeout != "" {
		d, err := time.ParseDuration(raw.Analyzer.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid analyzer.timeout %q: %w", raw.Analyzer.Timeout, err)
		}
		if d < 0 {
			return nil, fmt.Errorf("analyzer.timeout must not be negative")
		}
		timeout = d
	}

	if raw.Upload.MaxBytes < 0 {
		return nil, fmt.Errorf("upload.max_bytes must not be negative")
	}

	return &entities.ScannerSettings{
		Listen:      raw.Listen,
		ScratchRoot: raw.ScratchRoot,
		Log: entities.LogSettings{
			Level:  raw.Log.Level,
			Format: raw.Log.Format,
		},
		Analyzer: entities.AnalyzerSettings{
			Path:          raw.Analyzer.Path,
			SHA256:        raw.Analyzer.SHA256,
			SignaturePath: raw.Analyzer.Signature,
			KeyringPath:   raw.Analyzer.Keyring,
			Timeout:       timeout,
		},
		Upload: entities.UploadSettings{
			MaxBytes:          raw.Upload.MaxBytes,
			AllowedMediaTypes: raw.Upload.AllowedMediaTypes,
			AllowedExtensions: raw.Upload.AllowedExtensions,
		},
	}, nil
}
