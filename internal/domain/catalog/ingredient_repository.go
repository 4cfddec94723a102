package catalog

import (
	"context"

	"github.com/google/uuid"
)

// IngredientRepository defines the interface for ingredient persistence.
// The catalog is read-only over the API; writes happen through seeding
// and migrations, so the mutation surface stays minimal.
type IngredientRepository interface {
	// Save creates or updates an ingredient
	Save(ctx context.Context, ingredient *Ingredient) error

	// FindByID finds an ingredient by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Ingredient, error)

	// FindByIDs finds all ingredients matching the given IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Ingredient, error)

	// FindByNameAndUnit finds the ingredient with the exact (name, unit) pair
	FindByNameAndUnit(ctx context.Context, name, unit string) (*Ingredient, error)

	// SearchByName returns ingredients whose name starts with the prefix
	SearchByName(ctx context.Context, prefix string, limit int) ([]*Ingredient, error)

	// FindAll returns all ingredients ordered by name
	FindAll(ctx context.Context) ([]*Ingredient, error)

	// ExistsByNameAndUnit checks whether the (name, unit) pair is taken
	ExistsByNameAndUnit(ctx context.Context, name, unit string) (bool, error)
}
