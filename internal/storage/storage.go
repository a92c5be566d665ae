package storage

import (
	"context"
	"fmt"

	"github.com/theeabrarrr/raza-gas-erp/internal/models"
)

// Uploader stores a proof-of-delivery file and returns its public URL.
// Upload failures must never abort a settlement; callers log and continue.
type Uploader interface {
	Upload(ctx context.Context, name string, content []byte) (string, error)
}

// NewUploader builds the uploader named by the configuration.
func NewUploader(cfg models.StorageConfig) (Uploader, error) {
	switch cfg.Mode {
	case "disk":
		return NewDiskUploader(cfg.Dir, cfg.BaseURL)
	case "http":
		return NewHttpUploader(cfg.Endpoint, cfg.UploadTimeout)
	default:
		return nil, fmt.Errorf("unknown storage mode: %q", cfg.Mode)
	}
}
