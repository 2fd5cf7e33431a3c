// Package config assembles scanner settings from defaults, a YAML file,
// .env files and the process environment, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/ochairo/alignscan/internal/domain/entities"
	"github.com/ochairo/alignscan/internal/domain/services"
	"github.com/ochairo/alignscan/internal/external-adapters/yaml"
)

// Environment variables read by Load
const (
	EnvConfigFile        = "ALIGNSCAN_CONFIG"
	EnvListen            = "ALIGNSCAN_LISTEN"
	EnvPort              = "PORT"
	EnvScratchRoot       = "ALIGNSCAN_SCRATCH_ROOT"
	EnvLogLevel          = "ALIGNSCAN_LOG_LEVEL"
	EnvLogFormat         = "ALIGNSCAN_LOG_FORMAT"
	EnvAnalyzerPath      = "ALIGNSCAN_ANALYZER_PATH"
	EnvAnalyzerSHA256    = "ALIGNSCAN_ANALYZER_SHA256"
	EnvAnalyzerSignature = "ALIGNSCAN_ANALYZER_SIGNATURE"
	EnvAnalyzerKeyring   = "ALIGNSCAN_ANALYZER_KEYRING"
	EnvAnalyzerTimeout   = "ALIGNSCAN_ANALYZER_TIMEOUT"
	EnvUploadMaxBytes    = "ALIGNSCAN_UPLOAD_MAX_BYTES"
	EnvAllowedMediaTypes = "ALIGNSCAN_ALLOWED_MEDIA_TYPES"
	EnvAllowedExtensions = "ALIGNSCAN_ALLOWED_EXTENSIONS"
)

// DefaultMaxUploadBytes caps uploads at 512 MiB
const DefaultMaxUploadBytes int64 = 512 << 20

// Config is the resolved scanner configuration
type Config struct {
	entities.ScannerSettings
	// Source is the YAML file the settings were read from, if any
	Source string
}

// Defaults returns the built-in settings
func Defaults() *Config {
	return &Config{
		ScannerSettings: entities.ScannerSettings{
			Listen:      ":8080",
			ScratchRoot: filepath.Join(os.TempDir(), "alignscan"),
			Log: entities.LogSettings{
				Level:  "info",
				Format: "text",
			},
			Analyzer: entities.AnalyzerSettings{
				Path: filepath.Join("scripts", "check_elf_alignment.sh"),
			},
			Upload: entities.UploadSettings{
				MaxBytes:          DefaultMaxUploadBytes,
				AllowedMediaTypes: append([]string(nil), services.DefaultAllowedMediaTypes...),
				AllowedExtensions: append([]string(nil), services.DefaultAllowedExtensions...),
			},
		},
	}
}

// Load resolves configuration. path names a YAML file (falls back to
// $ALIGNSCAN_CONFIG); envFiles are dotenv files whose values apply only
// where the process environment does not set the key. Without envFiles
// a ".env" in the working directory is used when present.
func Load(path string, envFiles ...string) (*Config, error) {
	env, err := newEnvLookup(envFiles)
	if err != nil {
		return nil, err
	}

	cfg := Defaults()

	if path == "" {
		path = env(EnvConfigFile)
	}
	if path != "" {
		fileSettings, err := yaml.NewSettingsParser().ParseFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
		cfg.overlay(fileSettings)
		cfg.Source = path
	}

	if err := cfg.applyEnv(env); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks settings that would make the scanner unusable
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Analyzer.Path) == "" {
		return errors.New("analyzer path must be set")
	}
	if strings.TrimSpace(c.ScratchRoot) == "" {
		return errors.New("scratch root must be set")
	}
	if c.Upload.MaxBytes <= 0 {
		return fmt.Errorf("upload max bytes must be positive, got %d", c.Upload.MaxBytes)
	}
	if c.Analyzer.SignaturePath != "" && c.Analyzer.KeyringPath == "" {
		return errors.New("analyzer signature requires a keyring")
	}
	return nil
}

// overlay copies every non-zero field of s over c
func (c *Config) overlay(s *entities.ScannerSettings) {
	setString(&c.Listen, s.Listen)
	setString(&c.ScratchRoot, s.ScratchRoot)
	setString(&c.Log.Level, s.Log.Level)
	setString(&c.Log.Format, s.Log.Format)
	setString(&c.Analyzer.Path, s.Analyzer.Path)
	setString(&c.Analyzer.SHA256, s.Analyzer.SHA256)
	setString(&c.Analyzer.SignaturePath, s.Analyzer.SignaturePath)
	setString(&c.Analyzer.KeyringPath, s.Analyzer.KeyringPath)
	if s.Analyzer.Timeout > 0 {
		c.Analyzer.Timeout = s.Analyzer.Timeout
	}
	if s.Upload.MaxBytes > 0 {
		c.Upload.MaxBytes = s.Upload.MaxBytes
	}
	if len(s.Upload.AllowedMediaTypes) > 0 {
		c.Upload.AllowedMediaTypes = s.Upload.AllowedMediaTypes
	}
	if len(s.Upload.AllowedExtensions) > 0 {
		c.Upload.AllowedExtensions = s.Upload.AllowedExtensions
	}
}

func (c *Config) applyEnv(env func(string) string) error {
	if port := env(EnvPort); port != "" {
		if strings.HasPrefix(port, ":") {
			c.Listen = port
		} else {
			c.Listen = ":" + port
		}
	}
	setString(&c.Listen, env(EnvListen))
	setString(&c.ScratchRoot, env(EnvScratchRoot))
	setString(&c.Log.Level, env(EnvLogLevel))
	setString(&c.Log.Format, env(EnvLogFormat))
	setString(&c.Analyzer.Path, env(EnvAnalyzerPath))
	setString(&c.Analyzer.SHA256, env(EnvAnalyzerSHA256))
	setString(&c.Analyzer.SignaturePath, env(EnvAnalyzerSignature))
	setString(&c.Analyzer.KeyringPath, env(EnvAnalyzerKeyring))

	if raw := env(EnvAnalyzerTimeout); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			return fmt.Errorf("invalid %s %q", EnvAnalyzerTimeout, raw)
		}
		c.Analyzer.Timeout = d
	}

	if raw := env(EnvUploadMaxBytes); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvUploadMaxBytes, raw, err)
		}
		c.Upload.MaxBytes = n
	}

	if list := splitList(env(EnvAllowedMediaTypes)); len(list) > 0 {
		c.Upload.AllowedMediaTypes = list
	}
	if list := splitList(env(EnvAllowedExtensions)); len(list) > 0 {
		c.Upload.AllowedExtensions = list
	}

	return nil
}

// newEnvLookup layers the process environment over dotenv files
func newEnvLookup(envFiles []string) (func(string) string, error) {
	files := envFiles
	if len(files) == 0 {
		if _, err := os.Stat(".env"); err == nil {
			files = []string{".env"}
		}
	}

	fileValues := map[string]string{}
	if len(files) > 0 {
		values, err := godotenv.Read(files...)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read env file: %w", err)
		}
		if values != nil {
			fileValues = values
		}
	}

	return func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return strings.TrimSpace(v)
		}
		return strings.TrimSpace(fileValues[key])
	}, nil
}

func setString(dst *string, value string) {
	if strings.TrimSpace(value) != "" {
		*dst = strings.TrimSpace(value)
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
