package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/recipebox/backend/internal/infrastructure/config"
)

// Ensure LocalObjectStorage implements ObjectStorage
var _ ObjectStorage = (*LocalObjectStorage)(nil)

// LocalObjectStorage stores objects as files under a root directory.
// It is meant for development and single-node deployments where the
// media directory is served by a reverse proxy.
type LocalObjectStorage struct {
	root      string
	publicURL string
}

// NewLocalObjectStorage creates a new LocalObjectStorage rooted at cfg.LocalPath
func NewLocalObjectStorage(cfg *config.StorageConfig) (*LocalObjectStorage, error) {
	if cfg == nil {
		return nil, errors.New("storage configuration is required")
	}

	root := cfg.LocalPath
	if root == "" {
		root = "./media"
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalObjectStorage{
		root:      root,
		publicURL: strings.TrimSuffix(cfg.PublicURL, "/"),
	}, nil
}

// Upload writes data to a file under the root directory
func (s *LocalObjectStorage) Upload(ctx context.Context, storageKey string, data []byte, contentType string) error {
	path, err := s.resolve(storageKey)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write object: %w", err)
	}

	return nil
}

// Delete removes the file. Missing files are ignored.
func (s *LocalObjectStorage) Delete(ctx context.Context, storageKey string) error {
	path, err := s.resolve(storageKey)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// Exists reports whether a file is stored under the key
func (s *LocalObjectStorage) Exists(ctx context.Context, storageKey string) (bool, error) {
	path, err := s.resolve(storageKey)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat object: %w", err)
	}
	return true, nil
}

// URL returns the public URL for a stored object
func (s *LocalObjectStorage) URL(storageKey string) string {
	if s.publicURL != "" {
		return s.publicURL + "/" + storageKey
	}
	return "/" + strings.TrimPrefix(storageKey, "/")
}

// resolve maps a storage key to a path under root and rejects keys
// that would escape it
func (s *LocalObjectStorage) resolve(storageKey string) (string, error) {
	if storageKey == "" {
		return "", errors.New("storage key is required")
	}

	cleaned := filepath.Clean(filepath.FromSlash(storageKey))
	if filepath.IsAbs(cleaned) || cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid storage key: %q", storageKey)
	}

	return filepath.Join(s.root, cleaned), nil
}
