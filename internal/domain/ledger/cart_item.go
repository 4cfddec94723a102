package ledger

import (
	"github.com/google/uuid"
	"github.com/recipebox/backend/internal/domain/shared"
)

// CartItem queues a recipe for shopping-list export. (UserID, RecipeID)
// is unique; the whole selection is cleared after a successful export.
type CartItem struct {
	shared.BaseEntity
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_recipe,priority:1"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_recipe,priority:2"`
}

// TableName returns the table name for GORM
func (CartItem) TableName() string {
	return "cart_items"
}

// NewCartItem creates a cart selection entry
func NewCartItem(userID, recipeID uuid.UUID) (*CartItem, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if recipeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RECIPE", "Recipe ID cannot be empty")
	}

	return &CartItem{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		RecipeID:   recipeID,
	}, nil
}
