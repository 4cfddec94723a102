package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/recipebox/backend/internal/domain/ledger"
	"github.com/recipebox/backend/internal/domain/shared"
)

// GormFavoriteRepository implements FavoriteRepository using GORM.
// A duplicate (user, recipe) pair maps to shared.ErrAlreadyExists and
// removing a missing pair maps to shared.ErrNotFound, so services can
// surface the ledger policy directly.
type GormFavoriteRepository struct {
	db *gorm.DB
}

// NewGormFavoriteRepository creates a new GormFavoriteRepository
func NewGormFavoriteRepository(db *gorm.DB) *GormFavoriteRepository {
	return &GormFavoriteRepository{db: db}
}

// Add persists a favorite relation
func (r *GormFavoriteRepository) Add(ctx context.Context, favorite *ledger.Favorite) error {
	if err := r.db.WithContext(ctx).Create(favorite).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Remove deletes the relation for the (user, recipe) pair
func (r *GormFavoriteRepository) Remove(ctx context.Context, userID, recipeID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&ledger.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Exists reports whether the (user, recipe) pair is favorited
func (r *GormFavoriteRepository) Exists(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&ledger.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindRecipeIDs returns the recipe IDs favorited by a user
func (r *GormFavoriteRepository) FindRecipeIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&ledger.Favorite{}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// CountByRecipe returns how many users favorited a recipe
func (r *GormFavoriteRepository) CountByRecipe(ctx context.Context, recipeID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&ledger.Favorite{}).
		Where("recipe_id = ?", recipeID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormFavoriteRepository implements FavoriteRepository
var _ ledger.FavoriteRepository = (*GormFavoriteRepository)(nil)

// GormSubscriptionRepository implements SubscriptionRepository using GORM.
type GormSubscriptionRepository struct {
	db *gorm.DB
}

// NewGormSubscriptionRepository creates a new GormSubscriptionRepository
func NewGormSubscriptionRepository(db *gorm.DB) *GormSubscriptionRepository {
	return &GormSubscriptionRepository{db: db}
}

// Add persists a subscription relation
func (r *GormSubscriptionRepository) Add(ctx context.Context, subscription *ledger.Subscription) error {
	if err := r.db.WithContext(ctx).Create(subscription).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Remove deletes the relation for the (follower, author) pair
func (r *GormSubscriptionRepository) Remove(ctx context.Context, followerID, authorID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("follower_id = ? AND author_id = ?", followerID, authorID).
		Delete(&ledger.Subscription{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Exists reports whether the follower subscribes to the author
func (r *GormSubscriptionRepository) Exists(ctx context.Context, followerID, authorID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&ledger.Subscription{}).
		Where("follower_id = ? AND author_id = ?", followerID, authorID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindAuthorIDs returns the authors a user subscribes to, paginated,
// most recent subscription first.
func (r *GormSubscriptionRepository) FindAuthorIDs(ctx context.Context, followerID uuid.UUID, page, pageSize int) ([]uuid.UUID, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&ledger.Subscription{}).
		Where("follower_id = ?", followerID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	var ids []uuid.UUID
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Pluck("author_id", &ids).Error; err != nil {
		return nil, 0, err
	}
	return ids, total, nil
}

// CountByAuthor returns how many followers an author has
func (r *GormSubscriptionRepository) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&ledger.Subscription{}).
		Where("author_id = ?", authorID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormSubscriptionRepository implements SubscriptionRepository
var _ ledger.SubscriptionRepository = (*GormSubscriptionRepository)(nil)

// GormCartRepository implements CartRepository using GORM.
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// Add persists a cart selection entry
func (r *GormCartRepository) Add(ctx context.Context, item *ledger.CartItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Remove deletes the entry for the (user, recipe) pair
func (r *GormCartRepository) Remove(ctx context.Context, userID, recipeID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&ledger.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Exists reports whether the recipe is in the user's cart
func (r *GormCartRepository) Exists(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&ledger.CartItem{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindRecipeIDs returns the recipe IDs in the user's cart
func (r *GormCartRepository) FindRecipeIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	if err := r.db.WithContext(ctx).
		Model(&ledger.CartItem{}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Pluck("recipe_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// Clear removes every entry in the user's cart
func (r *GormCartRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&ledger.CartItem{}).Error
}

// Ensure GormCartRepository implements CartRepository
var _ ledger.CartRepository = (*GormCartRepository)(nil)
