package catalog

import (
	"context"

	"github.com/google/uuid"
)

// TagRepository defines the interface for tag persistence
type TagRepository interface {
	// Save creates or updates a tag
	Save(ctx context.Context, tag *Tag) error

	// FindByID finds a tag by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Tag, error)

	// FindByIDs finds all tags matching the given IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Tag, error)

	// FindBySlug finds a tag by its slug
	FindBySlug(ctx context.Context, slug string) (*Tag, error)

	// FindBySlugs finds all tags matching the given slugs
	FindBySlugs(ctx context.Context, slugs []string) ([]*Tag, error)

	// FindAll returns all tags ordered by name
	FindAll(ctx context.Context) ([]*Tag, error)

	// ExistsBySlug checks whether the slug is taken
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
}
