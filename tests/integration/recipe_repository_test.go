package integration

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipebox/backend/internal/domain/identity"
	"github.com/recipebox/backend/internal/domain/recipe"
	"github.com/recipebox/backend/internal/domain/shared"
	"github.com/recipebox/backend/internal/infrastructure/persistence"
)

func newStoredRecipe(t *testing.T, repo recipe.RecipeRepository, authorID, ingredientID, tagID uuid.UUID, name string) *recipe.Recipe {
	t.Helper()

	r, err := recipe.NewRecipe(authorID, name, "Chop, mix, and cook until done.", 30)
	require.NoError(t, err)
	require.NoError(t, r.AddLine(ingredientID, "flour", "g", decimal.NewFromInt(200)))
	require.NoError(t, r.SetTags([]uuid.UUID{tagID}))
	require.NoError(t, r.Validate())
	require.NoError(t, repo.Create(context.Background(), r))
	r.ClearDomainEvents()
	return r
}

func TestGormRecipeRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewTestDB(t)
	ctx := context.Background()

	repo := persistence.NewGormRecipeRepository(tdb.DB)

	authorID := tdb.CreateTestUser("author@example.com", "chef_author")
	otherID := tdb.CreateTestUser("other@example.com", "chef_other")
	flourID := tdb.CreateTestIngredient("spelt flour", "g")
	milkID := tdb.CreateTestIngredient("oat milk", "ml")
	breakfastID := tdb.CreateTestTag("Breakfast Specials", "breakfast-specials")
	dinnerID := tdb.CreateTestTag("Dinner Specials", "dinner-specials")

	t.Run("create and find by ID loads lines and tags", func(t *testing.T) {
		r, err := recipe.NewRecipe(authorID, "Pancakes", "Mix everything and fry.", 25)
		require.NoError(t, err)
		require.NoError(t, r.AddLine(flourID, "spelt flour", "g", decimal.NewFromInt(200)))
		require.NoError(t, r.AddLine(milkID, "oat milk", "ml", decimal.NewFromInt(300)))
		require.NoError(t, r.SetTags([]uuid.UUID{breakfastID}))
		require.NoError(t, r.Validate())

		require.NoError(t, repo.Create(ctx, r))

		found, err := repo.FindByID(ctx, r.ID)
		require.NoError(t, err)
		assert.Equal(t, "Pancakes", found.Name)
		assert.Equal(t, authorID, found.AuthorID)
		assert.Equal(t, 25, found.CookingTime)
		require.Len(t, found.Lines, 2)
		assert.Equal(t, []uuid.UUID{breakfastID}, found.TagIDs)

		byIngredient := map[uuid.UUID]string{}
		for _, line := range found.Lines {
			byIngredient[line.IngredientID] = line.Amount.String()
		}
		assert.Equal(t, "200", byIngredient[flourID])
		assert.Equal(t, "300", byIngredient[milkID])
	})

	t.Run("find by ID returns not found for unknown recipe", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("update replaces lines and tags", func(t *testing.T) {
		r, err := recipe.NewRecipe(authorID, "Porridge", "Boil and stir.", 15)
		require.NoError(t, err)
		require.NoError(t, r.AddLine(flourID, "spelt flour", "g", decimal.NewFromInt(100)))
		require.NoError(t, r.SetTags([]uuid.UUID{breakfastID}))
		require.NoError(t, repo.Create(ctx, r))

		require.NoError(t, r.Update("Overnight Porridge", "Soak overnight, then boil.", 20))
		milkLine, err := recipe.NewIngredientLine(r.ID, milkID, "oat milk", "ml", decimal.NewFromInt(250))
		require.NoError(t, err)
		require.NoError(t, r.ReplaceLines([]recipe.IngredientLine{*milkLine}))
		require.NoError(t, r.SetTags([]uuid.UUID{dinnerID}))
		require.NoError(t, repo.Update(ctx, r))

		found, err := repo.FindByID(ctx, r.ID)
		require.NoError(t, err)
		assert.Equal(t, "Overnight Porridge", found.Name)
		assert.Equal(t, 20, found.CookingTime)
		require.Len(t, found.Lines, 1)
		assert.Equal(t, milkID, found.Lines[0].IngredientID)
		assert.Equal(t, []uuid.UUID{dinnerID}, found.TagIDs)
	})

	t.Run("find all filters by author", func(t *testing.T) {
		newStoredRecipe(t, repo, otherID, flourID, dinnerID, "Other Bake")

		filter := recipe.NewRecipeFilter()
		filter.AuthorID = &otherID
		recipes, total, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, recipes, 1)
		assert.Equal(t, otherID, recipes[0].AuthorID)
	})

	t.Run("find all filters by tag slug", func(t *testing.T) {
		filter := recipe.NewRecipeFilter()
		filter.TagSlugs = []string{"breakfast-specials"}
		recipes, total, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, total, int64(1))
		for _, r := range recipes {
			assert.Contains(t, r.TagIDs, breakfastID)
		}
	})

	t.Run("find all filters by name prefix", func(t *testing.T) {
		newStoredRecipe(t, repo, authorID, flourID, breakfastID, "Prefix Pie")

		filter := recipe.NewRecipeFilter()
		filter.NamePrefix = "Prefix"
		recipes, total, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, recipes, 1)
		assert.Equal(t, "Prefix Pie", recipes[0].Name)
	})

	t.Run("exists and count by author", func(t *testing.T) {
		r := newStoredRecipe(t, repo, authorID, flourID, breakfastID, "Counted Stew")

		ok, err := repo.Exists(ctx, r.ID)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.Exists(ctx, uuid.New())
		require.NoError(t, err)
		assert.False(t, ok)

		count, err := repo.CountByAuthor(ctx, authorID)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, count, int64(1))
	})

	t.Run("delete removes recipe and lines", func(t *testing.T) {
		r := newStoredRecipe(t, repo, authorID, flourID, breakfastID, "Doomed Dish")

		require.NoError(t, repo.Delete(ctx, r.ID))

		_, err := repo.FindByID(ctx, r.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		var lines int64
		require.NoError(t, tdb.DB.Raw(
			"SELECT count(*) FROM recipe_ingredients WHERE recipe_id = ?", r.ID).Scan(&lines).Error)
		assert.Equal(t, int64(0), lines)
	})

	t.Run("find by IDs returns matching recipes", func(t *testing.T) {
		r1 := newStoredRecipe(t, repo, authorID, flourID, breakfastID, "Batch One")
		r2 := newStoredRecipe(t, repo, authorID, milkID, breakfastID, "Batch Two")

		recipes, err := repo.FindByIDs(ctx, []uuid.UUID{r1.ID, r2.ID, uuid.New()})
		require.NoError(t, err)
		assert.Len(t, recipes, 2)
	})
}

func TestGormShortLinkRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewTestDB(t)
	ctx := context.Background()

	recipeRepo := persistence.NewGormRecipeRepository(tdb.DB)
	linkRepo := persistence.NewGormShortLinkRepository(tdb.DB)

	authorID := tdb.CreateTestUser("linker@example.com", "chef_linker")
	flourID := tdb.CreateTestIngredient("rye flour", "g")
	tagID := tdb.CreateTestTag("Baking", "baking")

	r := newStoredRecipe(t, recipeRepo, authorID, flourID, tagID, "Rye Bread")

	t.Run("save and resolve by code", func(t *testing.T) {
		link, err := recipe.NewShortLink(r.ID)
		require.NoError(t, err)
		require.NoError(t, linkRepo.Save(ctx, link))

		byCode, err := linkRepo.FindByCode(ctx, link.Code)
		require.NoError(t, err)
		assert.Equal(t, r.ID, byCode.RecipeID)

		byRecipe, err := linkRepo.FindByRecipeID(ctx, r.ID)
		require.NoError(t, err)
		assert.Equal(t, link.Code, byRecipe.Code)
	})

	t.Run("second save for same recipe conflicts", func(t *testing.T) {
		dup, err := recipe.NewShortLink(r.ID)
		require.NoError(t, err)
		err = linkRepo.Save(ctx, dup)
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})

	t.Run("unknown code is not found", func(t *testing.T) {
		_, err := linkRepo.FindByCode(ctx, "ffffffff")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestGormUserRepository(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tdb := NewTestDB(t)
	ctx := context.Background()

	repo := persistence.NewGormUserRepository(tdb.DB)

	t.Run("create and find by email and username", func(t *testing.T) {
		user, err := identity.NewUser("anna@example.com", "chef_anna", "s3cret-pass")
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, user))

		byEmail, err := repo.FindByEmail(ctx, "anna@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, byEmail.ID)

		byName, err := repo.FindByUsername(ctx, "chef_anna")
		require.NoError(t, err)
		assert.Equal(t, user.ID, byName.ID)

		exists, err := repo.ExistsByEmail(ctx, "anna@example.com")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.ExistsByUsername(ctx, "nobody_here")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("find all with keyword", func(t *testing.T) {
		user, err := identity.NewUser("boris@example.com", "chef_boris", "s3cret-pass")
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, user))

		filter := identity.NewUserFilter()
		filter.Keyword = "boris"
		users, total, err := repo.FindAll(ctx, filter)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, users, 1)
		assert.Equal(t, "chef_boris", users[0].Username)
	})
}
