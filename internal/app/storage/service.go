/*
Package storage provides the object store behind sticker uploads.

The relay core treats stored objects purely as opaque URLs; this package owns
persisting the bytes and producing those URLs, either on local disk or in an
S3-compatible bucket.
*/
package storage

import (
	"context"
	"fmt"
	"io"

	"chatrelay/internal/configs"
)

// URLPrefix is the public path under which disk-stored uploads are served.
const URLPrefix = "/uploads"

// Service defines the public interface for the file storage service.
type Service interface {
	// Save persists the object under key and returns the URL clients use to
	// fetch it.
	Save(ctx context.Context, key string, contentType string, body io.Reader) (string, error)
}

// NewService is the factory function for Service. It selects the concrete
// implementation from the configured upload backend.
func NewService(cfg *configs.AppConfig) (Service, error) {
	switch cfg.UploadBackend {
	case configs.UploadBackendDisk:
		return newDiskStore(cfg.UploadDir)
	case configs.UploadBackendS3:
		return newS3Store(cfg)
	default:
		return nil, fmt.Errorf("unknown upload backend %q", cfg.UploadBackend)
	}
}
