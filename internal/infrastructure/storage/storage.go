// Package storage provides object storage implementations for recipe
// images and user avatars.
package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/recipebox/backend/internal/infrastructure/config"
)

// ObjectStorage abstracts where image bytes live. Keys are slash-separated
// paths such as "recipes/<id>.png" or "avatars/<id>.jpg".
type ObjectStorage interface {
	// Upload stores data under the given key, overwriting any existing object
	Upload(ctx context.Context, storageKey string, data []byte, contentType string) error

	// Delete removes the object. Deleting a missing object is not an error.
	Delete(ctx context.Context, storageKey string) error

	// Exists reports whether an object is stored under the key
	Exists(ctx context.Context, storageKey string) (bool, error)

	// URL returns the public URL the object is served from
	URL(storageKey string) string
}

// New creates the ObjectStorage selected by cfg.Provider.
// Supported providers are "s3" (any S3-compatible backend) and "local".
func New(cfg config.StorageConfig, logger *zap.Logger) (ObjectStorage, error) {
	switch cfg.Provider {
	case "s3":
		return NewS3ObjectStorage(&cfg, WithLogger(logger))
	case "local", "":
		return NewLocalObjectStorage(&cfg)
	default:
		return nil, fmt.Errorf("unknown storage provider: %q", cfg.Provider)
	}
}
