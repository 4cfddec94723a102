package ledger

import (
	"context"

	"github.com/google/uuid"
)

// FavoriteRepository defines the interface for favorite persistence.
// Add returns shared.ErrAlreadyExists for a duplicate pair; Remove
// returns shared.ErrNotFound when the pair does not exist.
type FavoriteRepository interface {
	// Add persists a favorite relation
	Add(ctx context.Context, favorite *Favorite) error

	// Remove deletes the relation for the (user, recipe) pair
	Remove(ctx context.Context, userID, recipeID uuid.UUID) error

	// Exists reports whether the (user, recipe) pair is favorited
	Exists(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)

	// FindRecipeIDs returns the recipe IDs favorited by a user
	FindRecipeIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)

	// CountByRecipe returns how many users favorited a recipe
	CountByRecipe(ctx context.Context, recipeID uuid.UUID) (int64, error)
}

// SubscriptionRepository defines the interface for subscription
// persistence, with the same duplicate/missing semantics as favorites.
type SubscriptionRepository interface {
	// Add persists a subscription relation
	Add(ctx context.Context, subscription *Subscription) error

	// Remove deletes the relation for the (follower, author) pair
	Remove(ctx context.Context, followerID, authorID uuid.UUID) error

	// Exists reports whether the follower subscribes to the author
	Exists(ctx context.Context, followerID, authorID uuid.UUID) (bool, error)

	// FindAuthorIDs returns the authors a user subscribes to, paginated
	FindAuthorIDs(ctx context.Context, followerID uuid.UUID, page, pageSize int) ([]uuid.UUID, int64, error)

	// CountByAuthor returns how many followers an author has
	CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error)
}

// CartRepository defines the interface for cart persistence
type CartRepository interface {
	// Add persists a cart selection entry
	Add(ctx context.Context, item *CartItem) error

	// Remove deletes the entry for the (user, recipe) pair
	Remove(ctx context.Context, userID, recipeID uuid.UUID) error

	// Exists reports whether the recipe is in the user's cart
	Exists(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)

	// FindRecipeIDs returns the recipe IDs in the user's cart
	FindRecipeIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)

	// Clear removes every entry in the user's cart
	Clear(ctx context.Context, userID uuid.UUID) error
}
