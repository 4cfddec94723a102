package recipe

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/recipebox/backend/internal/domain/catalog"
	"github.com/recipebox/backend/internal/domain/identity"
	"github.com/recipebox/backend/internal/domain/ledger"
	"github.com/recipebox/backend/internal/domain/recipe"
	"github.com/recipebox/backend/internal/domain/shared"
	"github.com/recipebox/backend/internal/infrastructure/storage"
)

// RecipeService handles recipe authoring and listing
type RecipeService struct {
	recipeRepo       recipe.RecipeRepository
	shortLinkRepo    recipe.ShortLinkRepository
	ingredientRepo   catalog.IngredientRepository
	tagRepo          catalog.TagRepository
	userRepo         identity.UserRepository
	favoriteRepo     ledger.FavoriteRepository
	cartRepo         ledger.CartRepository
	subscriptionRepo ledger.SubscriptionRepository
	storage          storage.ObjectStorage
	eventBus         shared.EventPublisher
	logger           *zap.Logger
}

// NewRecipeService creates a new recipe service
func NewRecipeService(
	recipeRepo recipe.RecipeRepository,
	shortLinkRepo recipe.ShortLinkRepository,
	ingredientRepo catalog.IngredientRepository,
	tagRepo catalog.TagRepository,
	userRepo identity.UserRepository,
	favoriteRepo ledger.FavoriteRepository,
	cartRepo ledger.CartRepository,
	subscriptionRepo ledger.SubscriptionRepository,
	objectStorage storage.ObjectStorage,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *RecipeService {
	return &RecipeService{
		recipeRepo:       recipeRepo,
		shortLinkRepo:    shortLinkRepo,
		ingredientRepo:   ingredientRepo,
		tagRepo:          tagRepo,
		userRepo:         userRepo,
		favoriteRepo:     favoriteRepo,
		cartRepo:         cartRepo,
		subscriptionRepo: subscriptionRepo,
		storage:          objectStorage,
		eventBus:         eventBus,
		logger:           logger,
	}
}

// Create creates a new recipe owned by the author
func (s *RecipeService) Create(ctx context.Context, input CreateRecipeInput) (*RecipeDTO, error) {
	s.logger.Info("Creating recipe",
		zap.String("author_id", input.AuthorID.String()),
		zap.String("name", input.Name))

	r, err := recipe.NewRecipe(input.AuthorID, input.Name, input.Text, input.CookingTime)
	if err != nil {
		return nil, err
	}

	if err := s.attachLines(ctx, r, input.Ingredients); err != nil {
		return nil, err
	}

	tags, err := s.resolveTags(ctx, input.TagIDs)
	if err != nil {
		return nil, err
	}
	if err := r.SetTags(input.TagIDs); err != nil {
		return nil, err
	}

	if len(input.ImageData) > 0 {
		url, err := s.uploadImage(ctx, r.ID, input.ImageData, input.ImageContentType)
		if err != nil {
			return nil, err
		}
		if err := r.SetImage(url); err != nil {
			return nil, err
		}
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}

	if err := s.recipeRepo.Create(ctx, r); err != nil {
		s.logger.Error("Failed to create recipe", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create recipe")
	}

	s.publishEvents(ctx, r)

	s.logger.Info("Recipe created",
		zap.String("recipe_id", r.ID.String()),
		zap.String("author_id", input.AuthorID.String()))

	return s.buildDTO(ctx, r, tags, &input.AuthorID)
}

// Update modifies an existing recipe. Only the author may update it.
func (s *RecipeService) Update(ctx context.Context, input UpdateRecipeInput) (*RecipeDTO, error) {
	r, err := s.recipeRepo.FindByID(ctx, input.RecipeID)
	if err != nil {
		return nil, shared.NewDomainError("RECIPE_NOT_FOUND", "Recipe not found")
	}

	if !r.IsOwnedBy(input.RequesterID) {
		s.logger.Warn("Recipe update rejected for non-author",
			zap.String("recipe_id", r.ID.String()),
			zap.String("requester_id", input.RequesterID.String()))
		return nil, shared.ErrForbidden
	}

	if err := r.Update(input.Name, input.Text, input.CookingTime); err != nil {
		return nil, err
	}

	lines, err := s.resolveLines(ctx, r.ID, input.Ingredients)
	if err != nil {
		return nil, err
	}
	if err := r.ReplaceLines(lines); err != nil {
		return nil, err
	}

	tags, err := s.resolveTags(ctx, input.TagIDs)
	if err != nil {
		return nil, err
	}
	if err := r.SetTags(input.TagIDs); err != nil {
		return nil, err
	}

	if len(input.ImageData) > 0 {
		url, err := s.uploadImage(ctx, r.ID, input.ImageData, input.ImageContentType)
		if err != nil {
			return nil, err
		}
		if err := r.SetImage(url); err != nil {
			return nil, err
		}
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}

	if err := s.recipeRepo.Update(ctx, r); err != nil {
		s.logger.Error("Failed to update recipe", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to update recipe")
	}

	s.publishEvents(ctx, r)

	s.logger.Info("Recipe updated", zap.String("recipe_id", r.ID.String()))

	return s.buildDTO(ctx, r, tags, &input.RequesterID)
}

// Delete removes a recipe. Only the author may delete it.
func (s *RecipeService) Delete(ctx context.Context, input DeleteRecipeInput) error {
	r, err := s.recipeRepo.FindByID(ctx, input.RecipeID)
	if err != nil {
		return shared.NewDomainError("RECIPE_NOT_FOUND", "Recipe not found")
	}

	if !r.IsOwnedBy(input.RequesterID) {
		s.logger.Warn("Recipe delete rejected for non-author",
			zap.String("recipe_id", r.ID.String()),
			zap.String("requester_id", input.RequesterID.String()))
		return shared.ErrForbidden
	}

	if err := s.recipeRepo.Delete(ctx, input.RecipeID); err != nil {
		s.logger.Error("Failed to delete recipe", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete recipe")
	}

	if err := s.eventBus.Publish(ctx, recipe.NewRecipeDeletedEvent(r)); err != nil {
		s.logger.Error("Failed to publish recipe deleted event", zap.Error(err))
	}

	s.logger.Info("Recipe deleted",
		zap.String("recipe_id", r.ID.String()),
		zap.String("author_id", r.AuthorID.String()))

	return nil
}

// GetByID returns a fully assembled recipe.
// viewerID may be nil for anonymous access.
func (s *RecipeService) GetByID(ctx context.Context, recipeID uuid.UUID, viewerID *uuid.UUID) (*RecipeDTO, error) {
	r, err := s.recipeRepo.FindByID(ctx, recipeID)
	if err != nil {
		return nil, shared.NewDomainError("RECIPE_NOT_FOUND", "Recipe not found")
	}

	tags, err := s.resolveTags(ctx, r.TagIDs)
	if err != nil {
		return nil, err
	}

	return s.buildDTO(ctx, r, tags, viewerID)
}

// List returns recipes matching the filter with viewer-dependent flags
func (s *RecipeService) List(ctx context.Context, input ListRecipesInput) (*RecipeListResult, error) {
	filter := recipe.NewRecipeFilter()
	filter.AuthorID = input.AuthorID
	filter.TagSlugs = input.TagSlugs
	filter.FavoritedBy = input.FavoritedBy
	filter.InCartOf = input.InCartOf
	filter.NamePrefix = input.NamePrefix
	if input.Page > 0 {
		filter.Page = input.Page
	}
	if input.PageSize > 0 {
		filter.PageSize = input.PageSize
	}

	recipes, total, err := s.recipeRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to list recipes", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list recipes")
	}

	dtos := make([]RecipeDTO, 0, len(recipes))
	for _, r := range recipes {
		tags, err := s.resolveTags(ctx, r.TagIDs)
		if err != nil {
			return nil, err
		}
		dto, err := s.buildDTO(ctx, r, tags, input.ViewerID)
		if err != nil {
			return nil, err
		}
		dtos = append(dtos, *dto)
	}

	pageSize := filter.Limit()
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &RecipeListResult{
		Recipes:    dtos,
		Total:      total,
		Page:       filter.Page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// GetShortLink returns the short link for a recipe, creating it on
// first request
func (s *RecipeService) GetShortLink(ctx context.Context, recipeID uuid.UUID) (*ShortLinkDTO, error) {
	exists, err := s.recipeRepo.Exists(ctx, recipeID)
	if err != nil {
		s.logger.Error("Failed to check recipe existence", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create short link")
	}
	if !exists {
		return nil, shared.NewDomainError("RECIPE_NOT_FOUND", "Recipe not found")
	}

	link, err := s.shortLinkRepo.FindByRecipeID(ctx, recipeID)
	if err == nil {
		return &ShortLinkDTO{RecipeID: link.RecipeID, Code: link.Code}, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		s.logger.Error("Failed to look up short link", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create short link")
	}

	link, err = recipe.NewShortLink(recipeID)
	if err != nil {
		return nil, err
	}

	if err := s.shortLinkRepo.Save(ctx, link); err != nil {
		// Concurrent first request may have created the link already.
		if errors.Is(err, shared.ErrAlreadyExists) {
			if existing, findErr := s.shortLinkRepo.FindByRecipeID(ctx, recipeID); findErr == nil {
				return &ShortLinkDTO{RecipeID: existing.RecipeID, Code: existing.Code}, nil
			}
		}
		s.logger.Error("Failed to save short link", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create short link")
	}

	s.logger.Info("Short link created",
		zap.String("recipe_id", recipeID.String()),
		zap.String("code", link.Code))

	return &ShortLinkDTO{RecipeID: link.RecipeID, Code: link.Code}, nil
}

// ResolveShortLink resolves a short-link code to a recipe ID
func (s *RecipeService) ResolveShortLink(ctx context.Context, code string) (uuid.UUID, error) {
	link, err := s.shortLinkRepo.FindByCode(ctx, code)
	if err != nil {
		return uuid.Nil, shared.NewDomainError("LINK_NOT_FOUND", "Short link not found")
	}
	return link.RecipeID, nil
}

// attachLines resolves catalog ingredients and attaches them as lines
// on a fresh recipe
func (s *RecipeService) attachLines(ctx context.Context, r *recipe.Recipe, inputs []IngredientLineInput) error {
	lines, err := s.resolveLines(ctx, r.ID, inputs)
	if err != nil {
		return err
	}
	return r.ReplaceLines(lines)
}

// resolveLines builds ingredient lines with catalog name and unit
// snapshots joined in
func (s *RecipeService) resolveLines(ctx context.Context, recipeID uuid.UUID, inputs []IngredientLineInput) ([]recipe.IngredientLine, error) {
	if len(inputs) == 0 {
		return nil, shared.NewDomainError("NO_INGREDIENTS", "Recipe must have at least one ingredient line")
	}

	ids := make([]uuid.UUID, 0, len(inputs))
	for _, in := range inputs {
		ids = append(ids, in.IngredientID)
	}

	ingredients, err := s.ingredientRepo.FindByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("Failed to load ingredients", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load ingredients")
	}

	byID := make(map[uuid.UUID]*catalog.Ingredient, len(ingredients))
	for _, ingredient := range ingredients {
		byID[ingredient.ID] = ingredient
	}

	lines := make([]recipe.IngredientLine, 0, len(inputs))
	for _, in := range inputs {
		ingredient, ok := byID[in.IngredientID]
		if !ok {
			return nil, shared.NewDomainError("INGREDIENT_NOT_FOUND",
				fmt.Sprintf("Ingredient not found: %s", in.IngredientID))
		}
		line, err := recipe.NewIngredientLine(recipeID, ingredient.ID, ingredient.Name, ingredient.MeasurementUnit, in.Amount)
		if err != nil {
			return nil, err
		}
		lines = append(lines, *line)
	}

	return lines, nil
}

// resolveTags loads tags and verifies every requested ID exists
func (s *RecipeService) resolveTags(ctx context.Context, tagIDs []uuid.UUID) ([]*catalog.Tag, error) {
	if len(tagIDs) == 0 {
		return nil, shared.NewDomainError("NO_TAGS", "Recipe must have at least one tag")
	}

	tags, err := s.tagRepo.FindByIDs(ctx, tagIDs)
	if err != nil {
		s.logger.Error("Failed to load tags", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load tags")
	}

	byID := make(map[uuid.UUID]bool, len(tags))
	for _, tag := range tags {
		byID[tag.ID] = true
	}
	for _, id := range tagIDs {
		if !byID[id] {
			return nil, shared.NewDomainError("TAG_NOT_FOUND", fmt.Sprintf("Tag not found: %s", id))
		}
	}

	return tags, nil
}

func (s *RecipeService) uploadImage(ctx context.Context, recipeID uuid.UUID, data []byte, contentType string) (string, error) {
	key := recipeImageKey(recipeID, contentType)
	if err := s.storage.Upload(ctx, key, data, contentType); err != nil {
		s.logger.Error("Failed to upload recipe image",
			zap.String("recipe_id", recipeID.String()),
			zap.Error(err))
		return "", shared.NewDomainError("STORAGE_ERROR", "Failed to store recipe image")
	}
	return s.storage.URL(key), nil
}

func (s *RecipeService) publishEvents(ctx context.Context, r *recipe.Recipe) {
	events := r.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventBus.Publish(ctx, events...); err != nil {
		s.logger.Error("Failed to publish recipe events", zap.Error(err))
	}
	r.ClearDomainEvents()
}

// buildDTO assembles the full recipe representation for a viewer
func (s *RecipeService) buildDTO(ctx context.Context, r *recipe.Recipe, tags []*catalog.Tag, viewerID *uuid.UUID) (*RecipeDTO, error) {
	author, err := s.userRepo.FindByID(ctx, r.AuthorID)
	if err != nil {
		s.logger.Error("Failed to load recipe author",
			zap.String("recipe_id", r.ID.String()),
			zap.String("author_id", r.AuthorID.String()),
			zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load recipe author")
	}

	dto := &RecipeDTO{
		ID: r.ID,
		Author: AuthorDTO{
			ID:        author.ID,
			Email:     author.Email,
			Username:  author.Username,
			FirstName: author.FirstName,
			LastName:  author.LastName,
			Avatar:    author.Avatar,
		},
		Name:        r.Name,
		Text:        r.Text,
		Image:       r.Image,
		CookingTime: r.CookingTime,
		Tags:        make([]RecipeTagDTO, 0, len(tags)),
		Ingredients: make([]RecipeIngredientDTO, 0, len(r.Lines)),
		CreatedAt:   r.CreatedAt,
	}

	for _, tag := range tags {
		dto.Tags = append(dto.Tags, RecipeTagDTO{ID: tag.ID, Name: tag.Name, Slug: tag.Slug})
	}
	for _, line := range r.Lines {
		dto.Ingredients = append(dto.Ingredients, RecipeIngredientDTO{
			ID:              line.IngredientID,
			Name:            line.IngredientName,
			MeasurementUnit: line.MeasurementUnit,
			Amount:          line.Amount,
		})
	}

	if viewerID != nil {
		s.applyViewerFlags(ctx, dto, r, *viewerID)
	}

	return dto, nil
}

// applyViewerFlags fills the viewer-dependent booleans. Lookup failures
// leave the flags false rather than failing the whole read.
func (s *RecipeService) applyViewerFlags(ctx context.Context, dto *RecipeDTO, r *recipe.Recipe, viewerID uuid.UUID) {
	if favorited, err := s.favoriteRepo.Exists(ctx, viewerID, r.ID); err == nil {
		dto.IsFavorited = favorited
	} else {
		s.logger.Warn("Failed to check favorite flag", zap.Error(err))
	}

	if inCart, err := s.cartRepo.Exists(ctx, viewerID, r.ID); err == nil {
		dto.IsInShoppingCart = inCart
	} else {
		s.logger.Warn("Failed to check cart flag", zap.Error(err))
	}

	if viewerID != r.AuthorID {
		if subscribed, err := s.subscriptionRepo.Exists(ctx, viewerID, r.AuthorID); err == nil {
			dto.Author.IsSubscribed = subscribed
		} else {
			s.logger.Warn("Failed to check subscription flag", zap.Error(err))
		}
	}
}

func recipeImageKey(recipeID uuid.UUID, contentType string) string {
	return fmt.Sprintf("recipes/%s.%s", recipeID, imageExtension(contentType))
}

func imageExtension(contentType string) string {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return "jpg"
	case "image/gif":
		return "gif"
	case "image/webp":
		return "webp"
	default:
		return "png"
	}
}
