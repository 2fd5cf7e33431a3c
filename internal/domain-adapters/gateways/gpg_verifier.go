package gateways

import (
	"fmt"

	"github.com/ochairo/alignscan/internal/external-adapters/gpg"
)

// gpgVerifier wraps the external GPG adapter for the tool verifier
type gpgVerifier struct {
	verifier *gpg.Verifier
}

// NewGPGVerifier creates a GPG verifier trusting the keys in keyringPath
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewGPGVerifier(keyringPath string) (*gpgVerifier, error) {
	v := gpg.NewVerifier()
	if err := v.ImportKeyFromFile(keyringPath); err != nil {
		return nil, fmt.Errorf("failed to import GPG keyring: %w", err)
	}
	return &gpgVerifier{verifier: v}, nil
}

// VerifyGPGSignatureFromFile verifies a detached GPG signature from a local file
func (g *gpgVerifier) VerifyGPGSignatureFromFile(filePath, sigPath string) error {
	if err := g.verifier.VerifySignatureFromFile(filePath, sigPath); err != nil {
		return fmt.Errorf("GPG signature verification failed: %w", err)
	}
	return nil
}

// KeyringSize returns the number of trusted keys
func (g *gpgVerifier) KeyringSize() int {
	return g.verifier.KeyringSize()
}
