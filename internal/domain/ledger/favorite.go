// Package ledger holds the user-to-recipe and user-to-author relation
// aggregates: favorites, subscriptions, and the shopping cart. All three
// share the same discipline: unique pairs, duplicate adds rejected,
// removal of a missing relation rejected.
package ledger

import (
	"github.com/google/uuid"
	"github.com/recipebox/backend/internal/domain/shared"
)

// Favorite marks a recipe as favorited by a user. (UserID, RecipeID) is unique.
type Favorite struct {
	shared.BaseEntity
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorite_user_recipe,priority:1"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorite_user_recipe,priority:2"`
}

// TableName returns the table name for GORM
func (Favorite) TableName() string {
	return "favorites"
}

// NewFavorite creates a favorite relation
func NewFavorite(userID, recipeID uuid.UUID) (*Favorite, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if recipeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RECIPE", "Recipe ID cannot be empty")
	}

	return &Favorite{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		RecipeID:   recipeID,
	}, nil
}
