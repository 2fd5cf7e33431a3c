// Package gateways provides adapter implementations for external services and tools.
package gateways

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ochairo/alignscan/internal/domain/entities"
	"github.com/ochairo/alignscan/internal/domain/interfaces"
)

const (
	workspacePrefix  = "scan_"
	fallbackFilename = "upload.bin"
)

// IDSource yields workspace identifiers; every call must return a new value
type IDSource func() string

// DefaultIDSource combines a nanosecond timestamp with a random UUID so
// names sort by creation time and never collide across processes
func DefaultIDSource() string {
	return strconv.FormatInt(time.Now().UnixNano(), 10) + "_" + uuid.NewString()[:8]
}

// workspaceManager creates per-request scratch directories under a shared root
type workspaceManager struct {
	root   string
	nextID IDSource
	logger interfaces.Logger
}

// NewWorkspaceManager creates a workspace manager rooted at root
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewWorkspaceManager(root string, ids IDSource, logger interfaces.Logger) *workspaceManager {
	if ids == nil {
		ids = DefaultIDSource
	}
	return &workspaceManager{
		root:   root,
		nextID: ids,
		logger: interfaces.OrNoOp(logger),
	}
}

// Acquire creates a fresh workspace directory
func (m *workspaceManager) Acquire(_ context.Context) (*entities.Workspace, error) {
	if err := os.MkdirAll(m.root, 0o750); err != nil {
		return nil, entities.NewScanError(entities.KindWorkspace, "failed to create scratch root", err)
	}

	id := m.nextID()
	if id == "" || strings.ContainsAny(id, `/\`) {
		return nil, entities.NewScanError(entities.KindWorkspace, fmt.Sprintf("invalid workspace id %q", id), nil)
	}

	path := filepath.Join(m.root, workspacePrefix+id)
	// Mkdir, not MkdirAll: an existing directory means the id collided
	if err := os.Mkdir(path, 0o700); err != nil {
		return nil, entities.NewScanError(entities.KindWorkspace, "failed to create workspace", err)
	}

	m.logger.Debug("workspace acquired", interfaces.F("workspace", id), interfaces.F("path", path))

	return &entities.Workspace{ID: id, Path: path}, nil
}

// Stage writes the upload into the workspace under its original base name
func (m *workspaceManager) Stage(_ context.Context, ws *entities.Workspace, pkg *entities.UploadedPackage) (string, error) {
	if ws == nil || ws.Path == "" {
		return "", entities.NewScanError(entities.KindWorkspace, "workspace not acquired", nil)
	}
	if pkg == nil {
		return "", entities.NewScanError(entities.KindWorkspace, "nothing to stage", nil)
	}

	target := filepath.Join(ws.Path, stagedName(pkg.Filename))
	if err := os.WriteFile(target, pkg.Data, 0o600); err != nil {
		return "", entities.NewScanError(entities.KindWorkspace, "failed to stage upload", err)
	}

	ws.StagedFile = target
	m.logger.Debug("upload staged",
		interfaces.F("workspace", ws.ID),
		interfaces.F("file", target),
		interfaces.F("bytes", len(pkg.Data)))

	return target, nil
}

// Release removes the workspace recursively, logging instead of failing
func (m *workspaceManager) Release(ws *entities.Workspace) {
	if ws == nil || ws.Path == "" {
		return
	}

	if err := os.RemoveAll(ws.Path); err != nil {
		m.logger.Warn("failed to clean up workspace",
			interfaces.F("workspace", ws.ID),
			interfaces.F("path", ws.Path),
			interfaces.F("error", err))
		return
	}

	m.logger.Debug("workspace released", interfaces.F("workspace", ws.ID))
}

// stagedName keeps only the base name of the declared filename so an upload
// can never be written outside its workspace
func stagedName(filename string) string {
	name := filepath.Base(filepath.Clean("/" + strings.ReplaceAll(filename, `\`, "/")))
	if name == "" || name == "/" || name == "." || name == ".." {
		return fallbackFilename
	}
	return name
}
