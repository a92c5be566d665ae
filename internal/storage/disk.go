package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// DiskUploader writes proofs to a local directory. Default mode for
// single-node deployments where receipts live next to the database file.
type DiskUploader struct {
	dir     string
	baseUrl string
}

func NewDiskUploader(dir, baseUrl string) (*DiskUploader, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &DiskUploader{dir: dir, baseUrl: strings.TrimSuffix(baseUrl, "/")}, nil
}

func (u *DiskUploader) Upload(_ context.Context, name string, content []byte) (string, error) {
	// Proof names are generated internally, but strip any path components
	// anyway so a crafted name cannot escape the directory.
	name = filepath.Base(name)

	path := filepath.Join(u.dir, name)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("failed to write proof file: %w", err)
	}

	zap.L().Info("Proof stored on disk", zap.String("path", path))
	return u.baseUrl + "/" + name, nil
}
