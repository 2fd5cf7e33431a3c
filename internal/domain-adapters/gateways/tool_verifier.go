package gateways

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ochairo/alignscan/internal/domain/entities"
	"github.com/ochairo/alignscan/internal/domain/interfaces"
)

const defaultVerifiedCacheSize = 64

// ToolVerifierConfig pins the analyzer executable
type ToolVerifierConfig struct {
	// SHA256 is the expected hex digest; empty disables the check
	SHA256 string
	// SignaturePath is a detached OpenPGP signature of the executable
	SignaturePath string
	// KeyringPath holds the public keys trusted to sign the executable
	KeyringPath string
	CacheSize   int
	Logger      interfaces.Logger
}

// toolVerifier checks that the analyzer exists, is runnable and, when
// configured, matches its pinned digest and signature. Successful integrity
// checks are cached per file identity so unchanged binaries are not re-hashed
// on every request.
type toolVerifier struct {
	sha256        string
	signaturePath string
	checksum      *checksumVerifier
	gpg           *gpgVerifier
	verified      *lru.Cache[string, struct{}]
	logger        interfaces.Logger
}

// NewToolVerifier creates a tool verifier
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewToolVerifier(config ToolVerifierConfig) (*toolVerifier, error) {
	size := config.CacheSize
	if size <= 0 {
		size = defaultVerifiedCacheSize
	}
	cache, err := lru.New[string, struct{}](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create verification cache: %w", err)
	}

	v := &toolVerifier{
		sha256:        config.SHA256,
		signaturePath: config.SignaturePath,
		checksum:      NewChecksumVerifier(),
		verified:      cache,
		logger:        interfaces.OrNoOp(config.Logger),
	}

	if config.SignaturePath != "" {
		if config.KeyringPath == "" {
			return nil, errors.New("analyzer signature configured without a keyring")
		}
		g, err := NewGPGVerifier(config.KeyringPath)
		if err != nil {
			return nil, err
		}
		v.gpg = g
	}

	return v, nil
}

// NewPresenceVerifier returns a verifier that only checks the executable is runnable
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewPresenceVerifier() *toolVerifier {
	return &toolVerifier{
		checksum: NewChecksumVerifier(),
		logger:   &interfaces.NoOpLogger{},
	}
}

// VerifyTool returns a ToolMissing ScanError when the executable cannot be trusted to run
func (v *toolVerifier) VerifyTool(ctx context.Context, executablePath string) error {
	info, err := os.Stat(executablePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return entities.NewScanError(entities.KindToolMissing, fmt.Sprintf("analyzer not found at %s", executablePath), err)
		}
		return entities.NewScanError(entities.KindToolMissing, "failed to inspect analyzer", err)
	}

	if !info.Mode().IsRegular() {
		return entities.NewScanError(entities.KindToolMissing,
			fmt.Sprintf("analyzer %s is not a regular file", executablePath), nil)
	}

	if runtime.GOOS != "windows" && info.Mode().Perm()&0o111 == 0 {
		return entities.NewScanError(entities.KindToolMissing,
			fmt.Sprintf("analyzer %s is not executable", executablePath), nil)
	}

	if v.sha256 == "" && v.gpg == nil {
		return nil
	}

	key := fileIdentity(executablePath, info)
	if v.verified.Contains(key) {
		return nil
	}

	if v.sha256 != "" {
		if err := v.checksum.VerifyChecksum(ctx, executablePath, v.sha256); err != nil {
			v.logger.Error("analyzer checksum mismatch",
				interfaces.F("analyzer", executablePath),
				interfaces.F("error", err))
			return entities.NewScanError(entities.KindToolMissing, "analyzer failed checksum verification", err)
		}
	}

	if v.gpg != nil {
		if err := v.gpg.VerifyGPGSignatureFromFile(executablePath, v.signaturePath); err != nil {
			v.logger.Error("analyzer signature rejected",
				interfaces.F("analyzer", executablePath),
				interfaces.F("error", err))
			return entities.NewScanError(entities.KindToolMissing, "analyzer failed signature verification", err)
		}
	}

	v.verified.Add(key, struct{}{})
	v.logger.Info("analyzer integrity verified", interfaces.F("analyzer", executablePath))

	return nil
}

// fileIdentity changes whenever the file is replaced or rewritten
func fileIdentity(path string, info fs.FileInfo) string {
	return fmt.Sprintf("%s|%d|%d|%o", path, info.Size(), info.ModTime().UnixNano(), info.Mode())
}
