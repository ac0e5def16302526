package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// diskStore implements Service on the local filesystem. Stored objects are
// served statically under URLPrefix by the HTTP router.
type diskStore struct {
	root string
}

func newDiskStore(root string) (*diskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory %q: %w", root, err)
	}

	return &diskStore{root: root}, nil
}

// Save writes the object to disk and returns its relative serving URL.
// Keys are generated server-side, but path traversal is still refused.
func (s *diskStore) Save(ctx context.Context, key string, contentType string, body io.Reader) (string, error) {
	if strings.Contains(key, "/") || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid object key %q", key)
	}

	path := filepath.Join(s.root, key)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create object file: %w", err)
	}

	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write object file: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close object file: %w", err)
	}

	return URLPrefix + "/" + key, nil
}
