package recipe

import (
	"context"

	"github.com/google/uuid"
)

// RecipeRepository defines the interface for recipe persistence.
// Implementations load ingredient lines with catalog name/unit joined in
// and tag IDs resolved, so returned aggregates are complete.
type RecipeRepository interface {
	// Create persists a new recipe with its lines and tag links
	Create(ctx context.Context, r *Recipe) error

	// Update persists recipe changes, replacing lines and tag links
	Update(ctx context.Context, r *Recipe) error

	// Delete removes a recipe and its lines, tag links, and ledger rows
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID finds a recipe by ID with lines and tags loaded
	FindByID(ctx context.Context, id uuid.UUID) (*Recipe, error)

	// FindByIDs finds all recipes matching the given IDs, lines loaded
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Recipe, error)

	// FindAll returns recipes matching the filter with pagination
	FindAll(ctx context.Context, filter RecipeFilter) ([]*Recipe, int64, error)

	// Exists reports whether a recipe with the given ID exists
	Exists(ctx context.Context, id uuid.UUID) (bool, error)

	// CountByAuthor returns the number of recipes by an author
	CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error)
}

// RecipeFilter contains filter options for querying recipes
type RecipeFilter struct {
	// Filter by author
	AuthorID *uuid.UUID

	// Filter by tag slugs (any match)
	TagSlugs []string

	// Only recipes favorited by this user
	FavoritedBy *uuid.UUID

	// Only recipes in this user's shopping cart
	InCartOf *uuid.UUID

	// Search by name prefix
	NamePrefix string

	// Pagination
	Page     int
	PageSize int
}

// NewRecipeFilter creates a RecipeFilter with default pagination
func NewRecipeFilter() RecipeFilter {
	return RecipeFilter{
		Page:     1,
		PageSize: 10,
	}
}

// Offset returns the offset for pagination
func (f RecipeFilter) Offset() int {
	if f.Page <= 0 {
		return 0
	}
	return (f.Page - 1) * f.Limit()
}

// Limit returns the limit for pagination
func (f RecipeFilter) Limit() int {
	if f.PageSize <= 0 {
		return 10
	}
	if f.PageSize > 100 {
		return 100
	}
	return f.PageSize
}
