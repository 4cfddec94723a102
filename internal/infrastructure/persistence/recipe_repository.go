package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/recipebox/backend/internal/domain/ledger"
	"github.com/recipebox/backend/internal/domain/recipe"
	"github.com/recipebox/backend/internal/domain/shared"
	"github.com/recipebox/backend/internal/infrastructure/persistence/models"
)

// GormRecipeRepository implements RecipeRepository using GORM.
// Loaded aggregates are complete: ingredient lines come back with the
// catalog name and unit joined in, and tag IDs are resolved.
type GormRecipeRepository struct {
	db *gorm.DB
}

// NewGormRecipeRepository creates a new GormRecipeRepository
func NewGormRecipeRepository(db *gorm.DB) *GormRecipeRepository {
	return &GormRecipeRepository{db: db}
}

// ingredientLineRow is the scan target for the lines-with-catalog join.
type ingredientLineRow struct {
	ID              uuid.UUID
	RecipeID        uuid.UUID
	IngredientID    uuid.UUID
	Amount          decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
	IngredientName  string
	MeasurementUnit string
}

func (row ingredientLineRow) toDomain() recipe.IngredientLine {
	return recipe.IngredientLine{
		ID:              row.ID,
		RecipeID:        row.RecipeID,
		IngredientID:    row.IngredientID,
		IngredientName:  row.IngredientName,
		MeasurementUnit: row.MeasurementUnit,
		Amount:          row.Amount,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}

// Create persists a new recipe with its lines and tag links
func (r *GormRecipeRepository) Create(ctx context.Context, rec *recipe.Recipe) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.RecipeModelFromDomain(rec)
		if err := tx.Create(model).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return shared.ErrAlreadyExists
			}
			return err
		}
		return r.saveLinesAndTags(tx, rec)
	})
}

// Update persists recipe changes, replacing lines and tag links
func (r *GormRecipeRepository) Update(ctx context.Context, rec *recipe.Recipe) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		model := models.RecipeModelFromDomain(rec)
		result := tx.Save(model)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}

		if err := tx.Where("recipe_id = ?", rec.ID).
			Delete(&models.RecipeIngredientModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", rec.ID).
			Delete(&models.RecipeTagModel{}).Error; err != nil {
			return err
		}
		return r.saveLinesAndTags(tx, rec)
	})
}

// saveLinesAndTags inserts the recipe's ingredient lines and tag links
func (r *GormRecipeRepository) saveLinesAndTags(tx *gorm.DB, rec *recipe.Recipe) error {
	if len(rec.Lines) > 0 {
		lineModels := make([]models.RecipeIngredientModel, len(rec.Lines))
		for i, line := range rec.Lines {
			lineModels[i].FromDomain(line)
			lineModels[i].RecipeID = rec.ID
		}
		if err := tx.Create(&lineModels).Error; err != nil {
			return err
		}
	}

	if len(rec.TagIDs) > 0 {
		now := time.Now()
		tagLinks := make([]models.RecipeTagModel, len(rec.TagIDs))
		for i, tagID := range rec.TagIDs {
			tagLinks[i] = models.RecipeTagModel{
				RecipeID:  rec.ID,
				TagID:     tagID,
				CreatedAt: now,
			}
		}
		if err := tx.Create(&tagLinks).Error; err != nil {
			return err
		}
	}

	return nil
}

// Delete removes a recipe with its lines, tag links, and ledger rows
func (r *GormRecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).
			Delete(&models.RecipeIngredientModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).
			Delete(&models.RecipeTagModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).
			Delete(&ledger.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).
			Delete(&ledger.CartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).
			Delete(&recipe.ShortLink{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.RecipeModel{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// FindByID finds a recipe by ID with lines and tags loaded
func (r *GormRecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	var model models.RecipeModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}

	rec := model.ToDomain()
	if err := r.loadAssociations(ctx, []*recipe.Recipe{rec}); err != nil {
		return nil, err
	}
	return rec, nil
}

// FindByIDs finds all recipes matching the given IDs, lines loaded
func (r *GormRecipeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*recipe.Recipe, error) {
	if len(ids) == 0 {
		return []*recipe.Recipe{}, nil
	}

	var recipeModels []models.RecipeModel
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&recipeModels).Error; err != nil {
		return nil, err
	}

	recipes := make([]*recipe.Recipe, len(recipeModels))
	for i := range recipeModels {
		recipes[i] = recipeModels[i].ToDomain()
	}
	if err := r.loadAssociations(ctx, recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// FindAll returns recipes matching the filter with pagination
func (r *GormRecipeRepository) FindAll(ctx context.Context, filter recipe.RecipeFilter) ([]*recipe.Recipe, int64, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.RecipeModel{}), filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recipeModels []models.RecipeModel
	if err := query.
		Order("recipes.created_at DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&recipeModels).Error; err != nil {
		return nil, 0, err
	}

	recipes := make([]*recipe.Recipe, len(recipeModels))
	for i := range recipeModels {
		recipes[i] = recipeModels[i].ToDomain()
	}
	if err := r.loadAssociations(ctx, recipes); err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

// Exists reports whether a recipe with the given ID exists
func (r *GormRecipeRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.RecipeModel{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByAuthor returns the number of recipes by an author
func (r *GormRecipeRepository) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.RecipeModel{}).
		Where("author_id = ?", authorID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter conditions without pagination or ordering
func (r *GormRecipeRepository) applyFilter(query *gorm.DB, filter recipe.RecipeFilter) *gorm.DB {
	if filter.AuthorID != nil {
		query = query.Where("recipes.author_id = ?", *filter.AuthorID)
	}
	if filter.NamePrefix != "" {
		query = query.Where("recipes.name ILIKE ?", filter.NamePrefix+"%")
	}
	if len(filter.TagSlugs) > 0 {
		query = query.Where(
			"recipes.id IN (?)",
			r.db.Table("recipe_tags").
				Select("recipe_tags.recipe_id").
				Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
				Where("tags.slug IN ?", filter.TagSlugs),
		)
	}
	if filter.FavoritedBy != nil {
		query = query.Where(
			"recipes.id IN (?)",
			r.db.Table("favorites").
				Select("favorites.recipe_id").
				Where("favorites.user_id = ?", *filter.FavoritedBy),
		)
	}
	if filter.InCartOf != nil {
		query = query.Where(
			"recipes.id IN (?)",
			r.db.Table("cart_items").
				Select("cart_items.recipe_id").
				Where("cart_items.user_id = ?", *filter.InCartOf),
		)
	}
	return query
}

// loadAssociations fills ingredient lines and tag IDs for the given
// recipes in two batch queries.
func (r *GormRecipeRepository) loadAssociations(ctx context.Context, recipes []*recipe.Recipe) error {
	if len(recipes) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(recipes))
	byID := make(map[uuid.UUID]*recipe.Recipe, len(recipes))
	for i, rec := range recipes {
		ids[i] = rec.ID
		byID[rec.ID] = rec
	}

	var lineRows []ingredientLineRow
	if err := r.db.WithContext(ctx).
		Table("recipe_ingredients").
		Select("recipe_ingredients.id, recipe_ingredients.recipe_id, recipe_ingredients.ingredient_id, recipe_ingredients.amount, recipe_ingredients.created_at, recipe_ingredients.updated_at, ingredients.name AS ingredient_name, ingredients.measurement_unit AS measurement_unit").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Where("recipe_ingredients.recipe_id IN ?", ids).
		Order("recipe_ingredients.created_at ASC").
		Scan(&lineRows).Error; err != nil {
		return err
	}
	for _, row := range lineRows {
		if rec, ok := byID[row.RecipeID]; ok {
			rec.Lines = append(rec.Lines, row.toDomain())
		}
	}

	var tagLinks []models.RecipeTagModel
	if err := r.db.WithContext(ctx).
		Where("recipe_id IN ?", ids).
		Find(&tagLinks).Error; err != nil {
		return err
	}
	for _, link := range tagLinks {
		if rec, ok := byID[link.RecipeID]; ok {
			rec.TagIDs = append(rec.TagIDs, link.TagID)
		}
	}

	return nil
}

// Ensure GormRecipeRepository implements RecipeRepository
var _ recipe.RecipeRepository = (*GormRecipeRepository)(nil)
