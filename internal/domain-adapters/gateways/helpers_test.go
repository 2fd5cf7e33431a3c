package gateways

import (
	"os"
	"path/filepath"
	"testing"
)

// writeAnalyzer writes a shell script standing in for the real analyzer
func writeAnalyzer(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "check_elf_alignment.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("Failed to write analyzer script: %v", err)
	}
	return path
}

// writeTarget writes a fake upload for the analyzer to inspect
func writeTarget(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "app.apk")
	if err := os.WriteFile(path, []byte("PK\x03\x04"), 0o600); err != nil {
		t.Fatalf("Failed to write target: %v", err)
	}
	return path
}
