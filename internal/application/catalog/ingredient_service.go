package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/recipebox/backend/internal/domain/catalog"
	"github.com/recipebox/backend/internal/domain/shared"
)

// Default and maximum result counts for ingredient search
const (
	defaultSearchLimit = 50
	maxSearchLimit     = 200
)

// IngredientService serves the read-only ingredient catalog
type IngredientService struct {
	ingredientRepo catalog.IngredientRepository
	logger         *zap.Logger
}

// NewIngredientService creates a new ingredient service
func NewIngredientService(ingredientRepo catalog.IngredientRepository, logger *zap.Logger) *IngredientService {
	return &IngredientService{
		ingredientRepo: ingredientRepo,
		logger:         logger,
	}
}

// GetByID returns a single catalog ingredient
func (s *IngredientService) GetByID(ctx context.Context, id uuid.UUID) (*IngredientDTO, error) {
	ingredient, err := s.ingredientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewDomainError("INGREDIENT_NOT_FOUND", "Ingredient not found")
	}

	dto := toIngredientDTO(ingredient)
	return &dto, nil
}

// List returns ingredients, optionally narrowed by a name prefix.
// An empty prefix returns the full catalog ordered by name.
func (s *IngredientService) List(ctx context.Context, input SearchIngredientsInput) ([]IngredientDTO, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	var (
		ingredients []*catalog.Ingredient
		err         error
	)
	if input.NamePrefix == "" {
		ingredients, err = s.ingredientRepo.FindAll(ctx)
	} else {
		ingredients, err = s.ingredientRepo.SearchByName(ctx, input.NamePrefix, limit)
	}
	if err != nil {
		s.logger.Error("Failed to list ingredients",
			zap.String("name_prefix", input.NamePrefix),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list ingredients")
	}

	return toIngredientDTOs(ingredients), nil
}
