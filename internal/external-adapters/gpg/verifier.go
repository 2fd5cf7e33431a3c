// Package gpg provides OpenPGP detached-signature verification for local files.
package gpg

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp"
)

const armorSignatureHeader = "-----BEGIN PGP SIGNATURE-----"

// Verifier checks detached signatures against an in-memory keyring.
// The keyring is only mutated by the Import methods; concurrent
// verification after import is safe.
type Verifier struct {
	keyring openpgp.EntityList
}

// NewVerifier creates a verifier with an empty keyring
func NewVerifier() *Verifier {
	return &Verifier{
		keyring: make(openpgp.EntityList, 0),
	}
}

// ImportKeyFromFile imports an armored or binary public keyring file
func (v *Verifier) ImportKeyFromFile(keyPath string) error {
	//nolint:gosec // G304: keyPath is operator-provided configuration
	f, err := os.Open(keyPath)
	if err != nil {
		return fmt.Errorf("failed to open key file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	return v.ImportKeys(f)
}

// ImportKeys reads an armored or binary keyring from r
func (v *Verifier) ImportKeys(r io.ReadSeeker) error {
	entities, err := openpgp.ReadArmoredKeyRing(r)
	if err != nil {
		if _, seekErr := r.Seek(0, io.SeekStart); seekErr != nil {
			return fmt.Errorf("failed to rewind keyring: %w", seekErr)
		}
		entities, err = openpgp.ReadKeyRing(r)
		if err != nil {
			return fmt.Errorf("failed to read keyring: %w", err)
		}
	}

	if len(entities) == 0 {
		return fmt.Errorf("no keys found in keyring")
	}

	v.keyring = append(v.keyring, entities...)
	return nil
}

// VerifySignatureFromFile verifies filePath against the detached signature at sigPath
func (v *Verifier) VerifySignatureFromFile(filePath, sigPath string) error {
	if len(v.keyring) == 0 {
		return fmt.Errorf("no keys imported")
	}

	//nolint:gosec // G304: sigPath is operator-provided configuration
	sigFile, err := os.Open(sigPath)
	if err != nil {
		return fmt.Errorf("failed to open signature file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer sigFile.Close()

	//nolint:gosec // G304: filePath is the configured analyzer executable
	dataFile, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open signed file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer dataFile.Close()

	sig := bufio.NewReader(sigFile)
	peek, _ := sig.Peek(len(armorSignatureHeader))
	armored := strings.HasPrefix(string(peek), armorSignatureHeader)

	if armored {
		_, err = openpgp.CheckArmoredDetachedSignature(v.keyring, dataFile, sig, nil)
	} else {
		_, err = openpgp.CheckDetachedSignature(v.keyring, dataFile, sig, nil)
	}
	if err != nil {
		return fmt.Errorf("signature verification failed: %w", err)
	}

	return nil
}

// KeyringSize returns the number of keys loaded
func (v *Verifier) KeyringSize() int {
	return len(v.keyring)
}
