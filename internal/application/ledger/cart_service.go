package ledger

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/recipebox/backend/internal/domain/ledger"
	"github.com/recipebox/backend/internal/domain/recipe"
	"github.com/recipebox/backend/internal/domain/shared"
)

// CartService manages the shopping-cart selection
type CartService struct {
	cartRepo   ledger.CartRepository
	recipeRepo recipe.RecipeRepository
	locks      *UserLocks
	logger     *zap.Logger
}

// NewCartService creates a new cart service. The lock registry is shared
// with the shopping-list export service so that cart mutations and export
// for the same user never interleave.
func NewCartService(
	cartRepo ledger.CartRepository,
	recipeRepo recipe.RecipeRepository,
	locks *UserLocks,
	logger *zap.Logger,
) *CartService {
	return &CartService{
		cartRepo:   cartRepo,
		recipeRepo: recipeRepo,
		locks:      locks,
		logger:     logger,
	}
}

// Add puts a recipe into the user's cart.
// Adding the same recipe twice fails with shared.ErrAlreadyExists.
func (s *CartService) Add(ctx context.Context, userID, recipeID uuid.UUID) error {
	unlock := s.locks.Lock(userID)
	defer unlock()

	exists, err := s.recipeRepo.Exists(ctx, recipeID)
	if err != nil {
		s.logger.Error("Failed to check recipe existence", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to add recipe to cart")
	}
	if !exists {
		return shared.NewDomainError("RECIPE_NOT_FOUND", "Recipe not found")
	}

	item, err := ledger.NewCartItem(userID, recipeID)
	if err != nil {
		return err
	}

	if err := s.cartRepo.Add(ctx, item); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return shared.ErrAlreadyExists
		}
		s.logger.Error("Failed to add cart item", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to add recipe to cart")
	}

	s.logger.Info("Recipe added to cart",
		zap.String("user_id", userID.String()),
		zap.String("recipe_id", recipeID.String()))

	return nil
}

// Remove takes a recipe out of the user's cart.
// Removing a recipe that is not in the cart fails with shared.ErrNotFound.
func (s *CartService) Remove(ctx context.Context, userID, recipeID uuid.UUID) error {
	unlock := s.locks.Lock(userID)
	defer unlock()

	if err := s.cartRepo.Remove(ctx, userID, recipeID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.ErrNotFound
		}
		s.logger.Error("Failed to remove cart item", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to remove recipe from cart")
	}

	s.logger.Info("Recipe removed from cart",
		zap.String("user_id", userID.String()),
		zap.String("recipe_id", recipeID.String()))

	return nil
}

// RecipeIDs returns the recipe IDs currently in the user's cart
func (s *CartService) RecipeIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	ids, err := s.cartRepo.FindRecipeIDs(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to load cart", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load cart")
	}
	return ids, nil
}
