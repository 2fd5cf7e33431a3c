package gateways

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
)

// checksumVerifier pins a file to a known SHA256 digest
type checksumVerifier struct{}

// NewChecksumVerifier creates a new checksum verifier
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewChecksumVerifier() *checksumVerifier {
	return &checksumVerifier{}
}

// VerifyChecksum compares a file's SHA256 digest with expectedSum.
// expectedSum is hex, case-insensitive, optionally prefixed with "sha256:".
func (v *checksumVerifier) VerifyChecksum(_ context.Context, filePath, expectedSum string) error {
	expected := normalizeDigest(expectedSum)
	if len(expected) != sha256.Size*2 {
		return fmt.Errorf("invalid SHA256 digest %q", expectedSum)
	}

	actual, err := v.CalculateChecksum(filePath)
	if err != nil {
		return err
	}

	if actual != expected {
		return fmt.Errorf("checksum mismatch: expected %s, got %s", expected, actual)
	}

	return nil
}

// CalculateChecksum returns the hex SHA256 digest of a file
func (v *checksumVerifier) CalculateChecksum(filePath string) (string, error) {
	//nolint:gosec // G304: filePath is the configured analyzer executable
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash file: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

func normalizeDigest(sum string) string {
	sum = strings.ToLower(strings.TrimSpace(sum))
	return strings.TrimPrefix(sum, "sha256:")
}
