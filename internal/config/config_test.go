package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable Load reads for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		EnvConfigFile, EnvListen, EnvPort, EnvScratchRoot, EnvLogLevel, EnvLogFormat,
		EnvAnalyzerPath, EnvAnalyzerSHA256, EnvAnalyzerSignature, EnvAnalyzerKeyring,
		EnvAnalyzerTimeout, EnvUploadMaxBytes, EnvAllowedMediaTypes, EnvAllowedExtensions,
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	cfg, err := Load("", filepath.Join(dir, "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Listen)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, DefaultMaxUploadBytes, cfg.Upload.MaxBytes)
	assert.Equal(t, time.Duration(0), cfg.Analyzer.Timeout)
	assert.Contains(t, cfg.Upload.AllowedExtensions, ".apk")
	assert.Contains(t, cfg.Upload.AllowedMediaTypes, "application/vnd.android.package-archive")
	assert.Empty(t, cfg.Source)
}

func TestLoad_Precedence(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	yamlPath := writeFile(t, dir, "alignscan.yml", `
listen: ":9000"
scratch_root: /var/tmp/scans
log:
  level: debug
analyzer:
  path: /opt/tools/check.sh
  timeout: 2m
upload:
  max_bytes: 1024
`)
	envPath := writeFile(t, dir, "test.env", "ALIGNSCAN_LOG_LEVEL=warn\nALIGNSCAN_ANALYZER_PATH=/from/dotenv.sh\n")

	// process environment beats the dotenv file
	t.Setenv(EnvAnalyzerPath, "/from/env.sh")

	cfg, err := Load(yamlPath, envPath)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Listen, "YAML overrides default")
	assert.Equal(t, "/var/tmp/scans", cfg.ScratchRoot)
	assert.Equal(t, "warn", cfg.Log.Level, "dotenv overrides YAML")
	assert.Equal(t, "/from/env.sh", cfg.Analyzer.Path, "environment overrides dotenv")
	assert.Equal(t, 2*time.Minute, cfg.Analyzer.Timeout)
	assert.Equal(t, int64(1024), cfg.Upload.MaxBytes)
	assert.Equal(t, "text", cfg.Log.Format, "unset keys keep defaults")
	assert.Equal(t, yamlPath, cfg.Source)
}

func TestLoad_ConfigFileFromEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	yamlPath := writeFile(t, dir, "alignscan.yml", "listen: \":7070\"\n")
	t.Setenv(EnvConfigFile, yamlPath)

	cfg, err := Load("", filepath.Join(dir, "none.env"))
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Listen)
}

func TestLoad_Port(t *testing.T) {
	tests := []struct {
		name   string
		port   string
		listen string
		want   string
	}{
		{"bare port", "3000", "", ":3000"},
		{"colon port", ":3001", "", ":3001"},
		{"listen wins", "3000", "127.0.0.1:4000", "127.0.0.1:4000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(EnvPort, tt.port)
			if tt.listen != "" {
				t.Setenv(EnvListen, tt.listen)
			}

			cfg, err := Load("", filepath.Join(t.TempDir(), "none.env"))
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Listen)
		})
	}
}

func TestLoad_Lists(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAllowedExtensions, ".apk, .aab ,")
	t.Setenv(EnvAllowedMediaTypes, "application/octet-stream")

	cfg, err := Load("", filepath.Join(t.TempDir(), "none.env"))
	require.NoError(t, err)
	assert.Equal(t, []string{".apk", ".aab"}, cfg.Upload.AllowedExtensions)
	assert.Equal(t, []string{"application/octet-stream"}, cfg.Upload.AllowedMediaTypes)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		yaml string
	}{
		{name: "bad timeout", env: map[string]string{EnvAnalyzerTimeout: "soon"}},
		{name: "negative timeout", env: map[string]string{EnvAnalyzerTimeout: "-5s"}},
		{name: "bad max bytes", env: map[string]string{EnvUploadMaxBytes: "lots"}},
		{name: "zero max bytes", env: map[string]string{EnvUploadMaxBytes: "0"}},
		{name: "signature without keyring", env: map[string]string{EnvAnalyzerSignature: "/tmp/check.sh.sig"}},
		{name: "malformed yaml", yaml: "listen: [unterminated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			dir := t.TempDir()
			path := ""
			if tt.yaml != "" {
				path = writeFile(t, dir, "bad.yml", tt.yaml)
			}

			_, err := Load(path, filepath.Join(dir, "none.env"))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingConfigFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config file")
}
