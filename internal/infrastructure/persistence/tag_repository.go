package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipebox/backend/internal/domain/catalog"
	"github.com/recipebox/backend/internal/domain/shared"
)

// GormTagRepository implements TagRepository using GORM.
type GormTagRepository struct {
	db *gorm.DB
}

// NewGormTagRepository creates a new GormTagRepository
func NewGormTagRepository(db *gorm.DB) *GormTagRepository {
	return &GormTagRepository{db: db}
}

// Save creates or updates a tag
func (r *GormTagRepository) Save(ctx context.Context, tag *catalog.Tag) error {
	if err := r.db.WithContext(ctx).Save(tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// FindByID finds a tag by ID
func (r *GormTagRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Tag, error) {
	var tag catalog.Tag
	if err := r.db.WithContext(ctx).First(&tag, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tag, nil
}

// FindByIDs finds all tags matching the given IDs
func (r *GormTagRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*catalog.Tag, error) {
	if len(ids) == 0 {
		return []*catalog.Tag{}, nil
	}

	var tags []*catalog.Tag
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// FindBySlug finds a tag by its slug
func (r *GormTagRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Tag, error) {
	var tag catalog.Tag
	if err := r.db.WithContext(ctx).
		Where("slug = ?", strings.ToLower(slug)).
		First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &tag, nil
}

// FindBySlugs finds all tags matching the given slugs
func (r *GormTagRepository) FindBySlugs(ctx context.Context, slugs []string) ([]*catalog.Tag, error) {
	if len(slugs) == 0 {
		return []*catalog.Tag{}, nil
	}

	lowered := make([]string, len(slugs))
	for i, s := range slugs {
		lowered[i] = strings.ToLower(s)
	}

	var tags []*catalog.Tag
	if err := r.db.WithContext(ctx).
		Where("slug IN ?", lowered).
		Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// FindAll returns all tags ordered by name
func (r *GormTagRepository) FindAll(ctx context.Context) ([]*catalog.Tag, error) {
	var tags []*catalog.Tag
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// ExistsBySlug checks whether the slug is taken
func (r *GormTagRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Tag{}).
		Where("slug = ?", strings.ToLower(slug)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormTagRepository implements TagRepository
var _ catalog.TagRepository = (*GormTagRepository)(nil)
