package recipe

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/recipebox/backend/internal/domain/shared"
)

// ShortLinkCodeLength is the length of generated short-link codes
const ShortLinkCodeLength = 8

// ShortLink maps a short shareable code to a recipe.
// One link per recipe; codes are unique.
type ShortLink struct {
	shared.BaseEntity
	RecipeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Code     string    `gorm:"type:varchar(16);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (ShortLink) TableName() string {
	return "short_links"
}

// NewShortLink creates a short link for a recipe.
// The code is derived from a fresh UUID, which keeps generation
// collision-resistant without a coordination table.
func NewShortLink(recipeID uuid.UUID) (*ShortLink, error) {
	if recipeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RECIPE", "Recipe ID cannot be empty")
	}

	code := strings.ReplaceAll(uuid.New().String(), "-", "")[:ShortLinkCodeLength]

	return &ShortLink{
		BaseEntity: shared.NewBaseEntity(),
		RecipeID:   recipeID,
		Code:       code,
	}, nil
}

// ShortLinkRepository defines the interface for short-link persistence
type ShortLinkRepository interface {
	// Save persists a short link
	Save(ctx context.Context, link *ShortLink) error

	// FindByRecipeID finds the link for a recipe
	FindByRecipeID(ctx context.Context, recipeID uuid.UUID) (*ShortLink, error)

	// FindByCode resolves a code to its link
	FindByCode(ctx context.Context, code string) (*ShortLink, error)
}
