package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipebox/backend/internal/domain/catalog"
	"github.com/recipebox/backend/internal/domain/shared"
)

// GormIngredientRepository implements IngredientRepository using GORM.
// The catalog Ingredient carries its own GORM tags, so no separate
// persistence model is needed.
type GormIngredientRepository struct {
	db *gorm.DB
}

// NewGormIngredientRepository creates a new GormIngredientRepository
func NewGormIngredientRepository(db *gorm.DB) *GormIngredientRepository {
	return &GormIngredientRepository{db: db}
}

// Save creates or updates an ingredient
func (r *GormIngredientRepository) Save(ctx context.Context, ingredient *catalog.Ingredient) error {
	if err := r.db.WithContext(ctx).Save(ingredient).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// FindByID finds an ingredient by ID
func (r *GormIngredientRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Ingredient, error) {
	var ingredient catalog.Ingredient
	if err := r.db.WithContext(ctx).First(&ingredient, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ingredient, nil
}

// FindByIDs finds all ingredients matching the given IDs
func (r *GormIngredientRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*catalog.Ingredient, error) {
	if len(ids) == 0 {
		return []*catalog.Ingredient{}, nil
	}

	var ingredients []*catalog.Ingredient
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// FindByNameAndUnit finds the ingredient with the exact (name, unit) pair
func (r *GormIngredientRepository) FindByNameAndUnit(ctx context.Context, name, unit string) (*catalog.Ingredient, error) {
	var ingredient catalog.Ingredient
	if err := r.db.WithContext(ctx).
		Where("name = ? AND measurement_unit = ?", name, unit).
		First(&ingredient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &ingredient, nil
}

// SearchByName returns ingredients whose name starts with the prefix,
// case-insensitively, ordered by name.
func (r *GormIngredientRepository) SearchByName(ctx context.Context, prefix string, limit int) ([]*catalog.Ingredient, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	var ingredients []*catalog.Ingredient
	query := r.db.WithContext(ctx).Order("name ASC, measurement_unit ASC").Limit(limit)
	if prefix != "" {
		query = query.Where("name ILIKE ?", prefix+"%")
	}
	if err := query.Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// FindAll returns all ingredients ordered by name
func (r *GormIngredientRepository) FindAll(ctx context.Context) ([]*catalog.Ingredient, error) {
	var ingredients []*catalog.Ingredient
	if err := r.db.WithContext(ctx).
		Order("name ASC, measurement_unit ASC").
		Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// ExistsByNameAndUnit checks whether the (name, unit) pair is taken
func (r *GormIngredientRepository) ExistsByNameAndUnit(ctx context.Context, name, unit string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&catalog.Ingredient{}).
		Where("name = ? AND measurement_unit = ?", name, unit).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormIngredientRepository implements IngredientRepository
var _ catalog.IngredientRepository = (*GormIngredientRepository)(nil)
