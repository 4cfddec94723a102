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

// FavoriteService manages the user-to-recipe favorite relation
type FavoriteService struct {
	favoriteRepo ledger.FavoriteRepository
	recipeRepo   recipe.RecipeRepository
	logger       *zap.Logger
}

// NewFavoriteService creates a new favorite service
func NewFavoriteService(
	favoriteRepo ledger.FavoriteRepository,
	recipeRepo recipe.RecipeRepository,
	logger *zap.Logger,
) *FavoriteService {
	return &FavoriteService{
		favoriteRepo: favoriteRepo,
		recipeRepo:   recipeRepo,
		logger:       logger,
	}
}

// Add marks a recipe as favorited by the user.
// Favoriting the same recipe twice fails with shared.ErrAlreadyExists.
func (s *FavoriteService) Add(ctx context.Context, userID, recipeID uuid.UUID) error {
	exists, err := s.recipeRepo.Exists(ctx, recipeID)
	if err != nil {
		s.logger.Error("Failed to check recipe existence", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to favorite recipe")
	}
	if !exists {
		return shared.NewDomainError("RECIPE_NOT_FOUND", "Recipe not found")
	}

	favorite, err := ledger.NewFavorite(userID, recipeID)
	if err != nil {
		return err
	}

	if err := s.favoriteRepo.Add(ctx, favorite); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return shared.ErrAlreadyExists
		}
		s.logger.Error("Failed to add favorite", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to favorite recipe")
	}

	s.logger.Info("Recipe favorited",
		zap.String("user_id", userID.String()),
		zap.String("recipe_id", recipeID.String()))

	return nil
}

// Remove unfavorites a recipe.
// Removing a pair that was never favorited fails with shared.ErrNotFound.
func (s *FavoriteService) Remove(ctx context.Context, userID, recipeID uuid.UUID) error {
	if err := s.favoriteRepo.Remove(ctx, userID, recipeID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.ErrNotFound
		}
		s.logger.Error("Failed to remove favorite", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to unfavorite recipe")
	}

	s.logger.Info("Recipe unfavorited",
		zap.String("user_id", userID.String()),
		zap.String("recipe_id", recipeID.String()))

	return nil
}
