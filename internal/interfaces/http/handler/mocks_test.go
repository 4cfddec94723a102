package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/recipebox/backend/internal/domain/catalog"
	"github.com/recipebox/backend/internal/domain/ledger"
	"github.com/recipebox/backend/internal/domain/recipe"
)

// MockRecipeRepository is a mock implementation of recipe.RecipeRepository
type MockRecipeRepository struct {
	mock.Mock
}

func (m *MockRecipeRepository) Create(ctx context.Context, r *recipe.Recipe) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRecipeRepository) Update(ctx context.Context, r *recipe.Recipe) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recipe.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*recipe.Recipe, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*recipe.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) FindAll(ctx context.Context, filter recipe.RecipeFilter) ([]*recipe.Recipe, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*recipe.Recipe), args.Get(1).(int64), args.Error(2)
}

func (m *MockRecipeRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockRecipeRepository) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	args := m.Called(ctx, authorID)
	return args.Get(0).(int64), args.Error(1)
}

// MockSubscriptionRepository is a mock implementation of ledger.SubscriptionRepository
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) Add(ctx context.Context, subscription *ledger.Subscription) error {
	args := m.Called(ctx, subscription)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) Remove(ctx context.Context, followerID, authorID uuid.UUID) error {
	args := m.Called(ctx, followerID, authorID)
	return args.Error(0)
}

func (m *MockSubscriptionRepository) Exists(ctx context.Context, followerID, authorID uuid.UUID) (bool, error) {
	args := m.Called(ctx, followerID, authorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSubscriptionRepository) FindAuthorIDs(ctx context.Context, followerID uuid.UUID, page, pageSize int) ([]uuid.UUID, int64, error) {
	args := m.Called(ctx, followerID, page, pageSize)
	return args.Get(0).([]uuid.UUID), args.Get(1).(int64), args.Error(2)
}

func (m *MockSubscriptionRepository) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	args := m.Called(ctx, authorID)
	return args.Get(0).(int64), args.Error(1)
}

// MockFavoriteRepository is a mock implementation of ledger.FavoriteRepository
type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) Add(ctx context.Context, favorite *ledger.Favorite) error {
	args := m.Called(ctx, favorite)
	return args.Error(0)
}

func (m *MockFavoriteRepository) Remove(ctx context.Context, userID, recipeID uuid.UUID) error {
	args := m.Called(ctx, userID, recipeID)
	return args.Error(0)
}

func (m *MockFavoriteRepository) Exists(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, recipeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFavoriteRepository) FindRecipeIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockFavoriteRepository) CountByRecipe(ctx context.Context, recipeID uuid.UUID) (int64, error) {
	args := m.Called(ctx, recipeID)
	return args.Get(0).(int64), args.Error(1)
}

// MockCartRepository is a mock implementation of ledger.CartRepository
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) Add(ctx context.Context, item *ledger.CartItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCartRepository) Remove(ctx context.Context, userID, recipeID uuid.UUID) error {
	args := m.Called(ctx, userID, recipeID)
	return args.Error(0)
}

func (m *MockCartRepository) Exists(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, recipeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCartRepository) FindRecipeIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockCartRepository) Clear(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockIngredientRepository is a mock implementation of catalog.IngredientRepository
type MockIngredientRepository struct {
	mock.Mock
}

func (m *MockIngredientRepository) Save(ctx context.Context, ingredient *catalog.Ingredient) error {
	args := m.Called(ctx, ingredient)
	return args.Error(0)
}

func (m *MockIngredientRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Ingredient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Ingredient), args.Error(1)
}

func (m *MockIngredientRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*catalog.Ingredient, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]*catalog.Ingredient), args.Error(1)
}

func (m *MockIngredientRepository) FindByNameAndUnit(ctx context.Context, name, unit string) (*catalog.Ingredient, error) {
	args := m.Called(ctx, name, unit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Ingredient), args.Error(1)
}

func (m *MockIngredientRepository) SearchByName(ctx context.Context, prefix string, limit int) ([]*catalog.Ingredient, error) {
	args := m.Called(ctx, prefix, limit)
	return args.Get(0).([]*catalog.Ingredient), args.Error(1)
}

func (m *MockIngredientRepository) FindAll(ctx context.Context) ([]*catalog.Ingredient, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*catalog.Ingredient), args.Error(1)
}

func (m *MockIngredientRepository) ExistsByNameAndUnit(ctx context.Context, name, unit string) (bool, error) {
	args := m.Called(ctx, name, unit)
	return args.Bool(0), args.Error(1)
}

// MockTagRepository is a mock implementation of catalog.TagRepository
type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) Save(ctx context.Context, tag *catalog.Tag) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

func (m *MockTagRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Tag, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Tag), args.Error(1)
}

func (m *MockTagRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*catalog.Tag, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]*catalog.Tag), args.Error(1)
}

func (m *MockTagRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Tag, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Tag), args.Error(1)
}

func (m *MockTagRepository) FindBySlugs(ctx context.Context, slugs []string) ([]*catalog.Tag, error) {
	args := m.Called(ctx, slugs)
	return args.Get(0).([]*catalog.Tag), args.Error(1)
}

func (m *MockTagRepository) FindAll(ctx context.Context) ([]*catalog.Tag, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*catalog.Tag), args.Error(1)
}

func (m *MockTagRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	args := m.Called(ctx, slug)
	return args.Bool(0), args.Error(1)
}

// MockShortLinkRepository is a mock implementation of recipe.ShortLinkRepository
type MockShortLinkRepository struct {
	mock.Mock
}

func (m *MockShortLinkRepository) Save(ctx context.Context, link *recipe.ShortLink) error {
	args := m.Called(ctx, link)
	return args.Error(0)
}

func (m *MockShortLinkRepository) FindByRecipeID(ctx context.Context, recipeID uuid.UUID) (*recipe.ShortLink, error) {
	args := m.Called(ctx, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recipe.ShortLink), args.Error(1)
}

func (m *MockShortLinkRepository) FindByCode(ctx context.Context, code string) (*recipe.ShortLink, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recipe.ShortLink), args.Error(1)
}

// MockObjectStorage is a mock implementation of storage.ObjectStorage
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Upload(ctx context.Context, storageKey string, data []byte, contentType string) error {
	args := m.Called(ctx, storageKey, data, contentType)
	return args.Error(0)
}

func (m *MockObjectStorage) Delete(ctx context.Context, storageKey string) error {
	args := m.Called(ctx, storageKey)
	return args.Error(0)
}

func (m *MockObjectStorage) Exists(ctx context.Context, storageKey string) (bool, error) {
	args := m.Called(ctx, storageKey)
	return args.Bool(0), args.Error(1)
}

func (m *MockObjectStorage) URL(storageKey string) string {
	args := m.Called(storageKey)
	return args.String(0)
}
