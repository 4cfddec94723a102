package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipebox/backend/internal/domain/recipe"
	"github.com/recipebox/backend/internal/domain/shared"
)

// GormShortLinkRepository implements ShortLinkRepository using GORM.
type GormShortLinkRepository struct {
	db *gorm.DB
}

// NewGormShortLinkRepository creates a new GormShortLinkRepository
func NewGormShortLinkRepository(db *gorm.DB) *GormShortLinkRepository {
	return &GormShortLinkRepository{db: db}
}

// Save persists a short link
func (r *GormShortLinkRepository) Save(ctx context.Context, link *recipe.ShortLink) error {
	if err := r.db.WithContext(ctx).Save(link).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// FindByRecipeID finds the link for a recipe
func (r *GormShortLinkRepository) FindByRecipeID(ctx context.Context, recipeID uuid.UUID) (*recipe.ShortLink, error) {
	var link recipe.ShortLink
	if err := r.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &link, nil
}

// FindByCode resolves a code to its link
func (r *GormShortLinkRepository) FindByCode(ctx context.Context, code string) (*recipe.ShortLink, error) {
	var link recipe.ShortLink
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.TrimSpace(code)).
		First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &link, nil
}

// Ensure GormShortLinkRepository implements ShortLinkRepository
var _ recipe.ShortLinkRepository = (*GormShortLinkRepository)(nil)
