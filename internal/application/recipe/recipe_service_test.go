package recipe

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/recipebox/backend/internal/domain/catalog"
	"github.com/recipebox/backend/internal/domain/identity"
	"github.com/recipebox/backend/internal/domain/recipe"
	"github.com/recipebox/backend/internal/domain/shared"
	"github.com/recipebox/backend/internal/infrastructure/config"
	"github.com/recipebox/backend/internal/infrastructure/storage"
)

type serviceMocks struct {
	recipes     *MockRecipeRepository
	links       *MockShortLinkRepository
	ingredients *MockIngredientRepository
	tags        *MockTagRepository
	users       *MockUserRepository
	favorites   *MockFavoriteRepository
	cart        *MockCartRepository
	subs        *MockSubscriptionRepository
	events      *MockEventPublisher
}

func newTestService(t *testing.T) (*RecipeService, *serviceMocks, storage.ObjectStorage) {
	t.Helper()

	m := &serviceMocks{
		recipes:     new(MockRecipeRepository),
		links:       new(MockShortLinkRepository),
		ingredients: new(MockIngredientRepository),
		tags:        new(MockTagRepository),
		users:       new(MockUserRepository),
		favorites:   new(MockFavoriteRepository),
		cart:        new(MockCartRepository),
		subs:        new(MockSubscriptionRepository),
		events:      new(MockEventPublisher),
	}

	store, err := storage.NewLocalObjectStorage(&config.StorageConfig{
		LocalPath: t.TempDir(),
		PublicURL: "http://localhost:8080/media",
	})
	require.NoError(t, err)

	svc := NewRecipeService(
		m.recipes, m.links, m.ingredients, m.tags, m.users,
		m.favorites, m.cart, m.subs, store, m.events, zap.NewNop(),
	)
	return svc, m, store
}

func newTestAuthor(t *testing.T) *identity.User {
	t.Helper()
	author, err := identity.NewUser("anna@example.com", "chef_anna", "secret1234")
	require.NoError(t, err)
	author.ClearDomainEvents()
	return author
}

func newTestCatalog(t *testing.T) ([]*catalog.Ingredient, []*catalog.Tag) {
	t.Helper()
	flour, err := catalog.NewIngredient("flour", "g")
	require.NoError(t, err)
	milk, err := catalog.NewIngredient("milk", "ml")
	require.NoError(t, err)
	breakfast, err := catalog.NewTag("Breakfast", "breakfast")
	require.NoError(t, err)
	return []*catalog.Ingredient{flour, milk}, []*catalog.Tag{breakfast}
}

func newStoredRecipe(t *testing.T, author *identity.User, ingredients []*catalog.Ingredient, tags []*catalog.Tag) *recipe.Recipe {
	t.Helper()
	r, err := recipe.NewRecipe(author.ID, "Pancakes", "Mix and fry.", 25)
	require.NoError(t, err)
	for _, ingredient := range ingredients {
		require.NoError(t, r.AddLine(ingredient.ID, ingredient.Name, ingredient.MeasurementUnit, decimal.NewFromInt(100)))
	}
	tagIDs := make([]uuid.UUID, 0, len(tags))
	for _, tag := range tags {
		tagIDs = append(tagIDs, tag.ID)
	}
	require.NoError(t, r.SetTags(tagIDs))
	r.ClearDomainEvents()
	return r
}

func lineInputs(ingredients []*catalog.Ingredient) []IngredientLineInput {
	inputs := make([]IngredientLineInput, 0, len(ingredients))
	for _, ingredient := range ingredients {
		inputs = append(inputs, IngredientLineInput{
			IngredientID: ingredient.ID,
			Amount:       decimal.NewFromInt(100),
		})
	}
	return inputs
}

func tagIDs(tags []*catalog.Tag) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(tags))
	for _, tag := range tags {
		ids = append(ids, tag.ID)
	}
	return ids
}

func TestRecipeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("successful create", func(t *testing.T) {
		svc, m, _ := newTestService(t)
		author := newTestAuthor(t)
		ingredients, tags := newTestCatalog(t)

		m.ingredients.On("FindByIDs", ctx, mock.Anything).Return(ingredients, nil)
		m.tags.On("FindByIDs", ctx, mock.Anything).Return(tags, nil)
		m.recipes.On("Create", ctx, mock.AnythingOfType("*recipe.Recipe")).Return(nil)
		m.events.On("Publish", ctx, mock.Anything).Return(nil)
		m.users.On("FindByID", ctx, author.ID).Return(author, nil)
		m.favorites.On("Exists", ctx, author.ID, mock.Anything).Return(false, nil)
		m.cart.On("Exists", ctx, author.ID, mock.Anything).Return(false, nil)

		dto, err := svc.Create(ctx, CreateRecipeInput{
			AuthorID:    author.ID,
			Name:        "Pancakes",
			Text:        "Mix and fry.",
			CookingTime: 25,
			TagIDs:      tagIDs(tags),
			Ingredients: lineInputs(ingredients),
		})

		require.NoError(t, err)
		assert.Equal(t, "Pancakes", dto.Name)
		assert.Equal(t, author.ID, dto.Author.ID)
		assert.Len(t, dto.Ingredients, 2)
		assert.Len(t, dto.Tags, 1)
		assert.False(t, dto.Author.IsSubscribed)
		m.recipes.AssertExpectations(t)
		m.events.AssertExpectations(t)
	})

	t.Run("uploads image when provided", func(t *testing.T) {
		svc, m, store := newTestService(t)
		author := newTestAuthor(t)
		ingredients, tags := newTestCatalog(t)

		m.ingredients.On("FindByIDs", ctx, mock.Anything).Return(ingredients, nil)
		m.tags.On("FindByIDs", ctx, mock.Anything).Return(tags, nil)
		m.recipes.On("Create", ctx, mock.Anything).Return(nil)
		m.events.On("Publish", ctx, mock.Anything).Return(nil)
		m.users.On("FindByID", ctx, author.ID).Return(author, nil)
		m.favorites.On("Exists", ctx, author.ID, mock.Anything).Return(false, nil)
		m.cart.On("Exists", ctx, author.ID, mock.Anything).Return(false, nil)

		dto, err := svc.Create(ctx, CreateRecipeInput{
			AuthorID:         author.ID,
			Name:             "Pancakes",
			Text:             "Mix and fry.",
			CookingTime:      25,
			TagIDs:           tagIDs(tags),
			Ingredients:      lineInputs(ingredients),
			ImageData:        []byte("fake-png-bytes"),
			ImageContentType: "image/png",
		})

		require.NoError(t, err)
		assert.Contains(t, dto.Image, "recipes/"+dto.ID.String()+".png")

		exists, err := store.Exists(ctx, "recipes/"+dto.ID.String()+".png")
		require.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("unknown ingredient rejected", func(t *testing.T) {
		svc, m, _ := newTestService(t)
		author := newTestAuthor(t)
		_, tags := newTestCatalog(t)

		m.ingredients.On("FindByIDs", ctx, mock.Anything).Return([]*catalog.Ingredient{}, nil)

		_, err := svc.Create(ctx, CreateRecipeInput{
			AuthorID:    author.ID,
			Name:        "Pancakes",
			Text:        "Mix and fry.",
			CookingTime: 25,
			TagIDs:      tagIDs(tags),
			Ingredients: []IngredientLineInput{{IngredientID: uuid.New(), Amount: decimal.NewFromInt(1)}},
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INGREDIENT_NOT_FOUND", domainErr.Code)
	})

	t.Run("unknown tag rejected", func(t *testing.T) {
		svc, m, _ := newTestService(t)
		author := newTestAuthor(t)
		ingredients, _ := newTestCatalog(t)

		m.ingredients.On("FindByIDs", ctx, mock.Anything).Return(ingredients, nil)
		m.tags.On("FindByIDs", ctx, mock.Anything).Return([]*catalog.Tag{}, nil)

		_, err := svc.Create(ctx, CreateRecipeInput{
			AuthorID:    author.ID,
			Name:        "Pancakes",
			Text:        "Mix and fry.",
			CookingTime: 25,
			TagIDs:      []uuid.UUID{uuid.New()},
			Ingredients: lineInputs(ingredients),
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "TAG_NOT_FOUND", domainErr.Code)
	})

	t.Run("no ingredients rejected", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		author := newTestAuthor(t)

		_, err := svc.Create(ctx, CreateRecipeInput{
			AuthorID:    author.ID,
			Name:        "Pancakes",
			Text:        "Mix and fry.",
			CookingTime: 25,
			TagIDs:      []uuid.UUID{uuid.New()},
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NO_INGREDIENTS", domainErr.Code)
	})
}

func TestRecipeService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("non-author is forbidden", func(t *testing.T) {
		svc, m, _ := newTestService(t)
		author := newTestAuthor(t)
		ingredients, tags := newTestCatalog(t)
		r := newStoredRecipe(t, author, ingredients, tags)

		m.recipes.On("FindByID", ctx, r.ID).Return(r, nil)

		_, err := svc.Update(ctx, UpdateRecipeInput{
			RecipeID:    r.ID,
			RequesterID: uuid.New(),
			Name:        "Stolen Pancakes",
			Text:        "Mine now.",
			CookingTime: 10,
			TagIDs:      tagIDs(tags),
			Ingredients: lineInputs(ingredients),
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, shared.ErrForbidden)
		m.recipes.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("author updates fields and lines", func(t *testing.T) {
		svc, m, _ := newTestService(t)
		author := newTestAuthor(t)
		ingredients, tags := newTestCatalog(t)
		r := newStoredRecipe(t, author, ingredients, tags)

		m.recipes.On("FindByID", ctx, r.ID).Return(r, nil)
		m.ingredients.On("FindByIDs", ctx, mock.Anything).Return(ingredients[:1], nil)
		m.tags.On("FindByIDs", ctx, mock.Anything).Return(tags, nil)
		m.recipes.On("Update", ctx, r).Return(nil)
		m.events.On("Publish", ctx, mock.Anything).Return(nil)
		m.users.On("FindByID", ctx, author.ID).Return(author, nil)
		m.favorites.On("Exists", ctx, author.ID, r.ID).Return(false, nil)
		m.cart.On("Exists", ctx, author.ID, r.ID).Return(false, nil)

		dto, err := svc.Update(ctx, UpdateRecipeInput{
			RecipeID:    r.ID,
			RequesterID: author.ID,
			Name:        "Thin Pancakes",
			Text:        "Mix, rest, fry.",
			CookingTime: 30,
			TagIDs:      tagIDs(tags),
			Ingredients: lineInputs(ingredients[:1]),
		})

		require.NoError(t, err)
		assert.Equal(t, "Thin Pancakes", dto.Name)
		assert.Equal(t, 30, dto.CookingTime)
		assert.Len(t, dto.Ingredients, 1)
	})

	t.Run("missing recipe", func(t *testing.T) {
		svc, m, _ := newTestService(t)

		missing := uuid.New()
		m.recipes.On("FindByID", ctx, missing).Return(nil, shared.ErrNotFound)

		_, err := svc.Update(ctx, UpdateRecipeInput{RecipeID: missing, RequesterID: uuid.New()})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "RECIPE_NOT_FOUND", domainErr.Code)
	})
}

func TestRecipeService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("author deletes and event is published", func(t *testing.T) {
		svc, m, _ := newTestService(t)
		author := newTestAuthor(t)
		ingredients, tags := newTestCatalog(t)
		r := newStoredRecipe(t, author, ingredients, tags)

		m.recipes.On("FindByID", ctx, r.ID).Return(r, nil)
		m.recipes.On("Delete", ctx, r.ID).Return(nil)
		m.events.On("Publish", ctx, mock.MatchedBy(func(events []shared.DomainEvent) bool {
			if len(events) != 1 {
				return false
			}
			deleted, ok := events[0].(*recipe.RecipeDeletedEvent)
			return ok && deleted.AggregateID() == r.ID
		})).Return(nil)

		err := svc.Delete(ctx, DeleteRecipeInput{RecipeID: r.ID, RequesterID: author.ID})

		require.NoError(t, err)
		m.events.AssertExpectations(t)
	})

	t.Run("non-author is forbidden", func(t *testing.T) {
		svc, m, _ := newTestService(t)
		author := newTestAuthor(t)
		ingredients, tags := newTestCatalog(t)
		r := newStoredRecipe(t, author, ingredients, tags)

		m.recipes.On("FindByID", ctx, r.ID).Return(r, nil)

		err := svc.Delete(ctx, DeleteRecipeInput{RecipeID: r.ID, RequesterID: uuid.New()})

		assert.ErrorIs(t, err, shared.ErrForbidden)
		m.recipes.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestRecipeService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("anonymous viewer gets no flags", func(t *testing.T) {
		svc, m, _ := newTestService(t)
		author := newTestAuthor(t)
		ingredients, tags := newTestCatalog(t)
		r := newStoredRecipe(t, author, ingredients, tags)

		m.recipes.On("FindByID", ctx, r.ID).Return(r, nil)
		m.tags.On("FindByIDs", ctx, mock.Anything).Return(tags, nil)
		m.users.On("FindByID", ctx, author.ID).Return(author, nil)

		dto, err := svc.GetByID(ctx, r.ID, nil)

		require.NoError(t, err)
		assert.False(t, dto.IsFavorited)
		assert.False(t, dto.IsInShoppingCart)
		m.favorites.AssertNotCalled(t, "Exists", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("viewer flags applied", func(t *testing.T) {
		svc, m, _ := newTestService(t)
		author := newTestAuthor(t)
		ingredients, tags := newTestCatalog(t)
		r := newStoredRecipe(t, author, ingredients, tags)
		viewer := uuid.New()

		m.recipes.On("FindByID", ctx, r.ID).Return(r, nil)
		m.tags.On("FindByIDs", ctx, mock.Anything).Return(tags, nil)
		m.users.On("FindByID", ctx, author.ID).Return(author, nil)
		m.favorites.On("Exists", ctx, viewer, r.ID).Return(true, nil)
		m.cart.On("Exists", ctx, viewer, r.ID).Return(false, nil)
		m.subs.On("Exists", ctx, viewer, author.ID).Return(true, nil)

		dto, err := svc.GetByID(ctx, r.ID, &viewer)

		require.NoError(t, err)
		assert.True(t, dto.IsFavorited)
		assert.False(t, dto.IsInShoppingCart)
		assert.True(t, dto.Author.IsSubscribed)
	})
}

func TestRecipeService_List(t *testing.T) {
	ctx := context.Background()

	svc, m, _ := newTestService(t)
	author := newTestAuthor(t)
	ingredients, tags := newTestCatalog(t)
	r1 := newStoredRecipe(t, author, ingredients, tags)
	r2 := newStoredRecipe(t, author, ingredients[:1], tags)

	m.recipes.On("FindAll", ctx, mock.MatchedBy(func(f recipe.RecipeFilter) bool {
		return f.Page == 1 && f.PageSize == 10 && len(f.TagSlugs) == 1
	})).Return([]*recipe.Recipe{r1, r2}, int64(2), nil)
	m.tags.On("FindByIDs", ctx, mock.Anything).Return(tags, nil)
	m.users.On("FindByID", ctx, author.ID).Return(author, nil)

	result, err := svc.List(ctx, ListRecipesInput{TagSlugs: []string{"breakfast"}})

	require.NoError(t, err)
	assert.Len(t, result.Recipes, 2)
	assert.Equal(t, int64(2), result.Total)
	assert.Equal(t, 1, result.TotalPages)
}

func TestRecipeService_ShortLinks(t *testing.T) {
	ctx := context.Background()

	t.Run("creates link on first request", func(t *testing.T) {
		svc, m, _ := newTestService(t)
		recipeID := uuid.New()

		m.recipes.On("Exists", ctx, recipeID).Return(true, nil)
		m.links.On("FindByRecipeID", ctx, recipeID).Return(nil, shared.ErrNotFound)
		m.links.On("Save", ctx, mock.AnythingOfType("*recipe.ShortLink")).Return(nil)

		dto, err := svc.GetShortLink(ctx, recipeID)

		require.NoError(t, err)
		assert.Equal(t, recipeID, dto.RecipeID)
		assert.Len(t, dto.Code, recipe.ShortLinkCodeLength)
	})

	t.Run("returns existing link", func(t *testing.T) {
		svc, m, _ := newTestService(t)
		recipeID := uuid.New()
		link, err := recipe.NewShortLink(recipeID)
		require.NoError(t, err)

		m.recipes.On("Exists", ctx, recipeID).Return(true, nil)
		m.links.On("FindByRecipeID", ctx, recipeID).Return(link, nil)

		dto, err := svc.GetShortLink(ctx, recipeID)

		require.NoError(t, err)
		assert.Equal(t, link.Code, dto.Code)
		m.links.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("missing recipe", func(t *testing.T) {
		svc, m, _ := newTestService(t)
		recipeID := uuid.New()

		m.recipes.On("Exists", ctx, recipeID).Return(false, nil)

		_, err := svc.GetShortLink(ctx, recipeID)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "RECIPE_NOT_FOUND", domainErr.Code)
	})

	t.Run("resolves code to recipe", func(t *testing.T) {
		svc, m, _ := newTestService(t)
		recipeID := uuid.New()
		link, err := recipe.NewShortLink(recipeID)
		require.NoError(t, err)

		m.links.On("FindByCode", ctx, link.Code).Return(link, nil)

		resolved, err := svc.ResolveShortLink(ctx, link.Code)

		require.NoError(t, err)
		assert.Equal(t, recipeID, resolved)
	})

	t.Run("unknown code", func(t *testing.T) {
		svc, m, _ := newTestService(t)

		m.links.On("FindByCode", ctx, "nope1234").Return(nil, shared.ErrNotFound)

		_, err := svc.ResolveShortLink(ctx, "nope1234")

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "LINK_NOT_FOUND", domainErr.Code)
	})
}
