package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appcatalog "github.com/recipebox/backend/internal/application/catalog"
	"github.com/recipebox/backend/internal/domain/catalog"
	"github.com/recipebox/backend/internal/domain/shared"
)

func setupCatalogRouter(ingredientRepo *MockIngredientRepository, tagRepo *MockTagRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)

	ingredientHandler := NewIngredientHandler(appcatalog.NewIngredientService(ingredientRepo, zap.NewNop()))
	tagHandler := NewTagHandler(appcatalog.NewTagService(tagRepo, zap.NewNop()))

	r := gin.New()
	api := r.Group("/api/v1")
	{
		api.GET("/ingredients", ingredientHandler.List)
		api.GET("/ingredients/:id", ingredientHandler.GetByID)
		api.GET("/tags", tagHandler.List)
		api.GET("/tags/:id", tagHandler.GetByID)
	}
	return r
}

func newTestIngredient(t *testing.T, name, unit string) *catalog.Ingredient {
	t.Helper()
	ingredient, err := catalog.NewIngredient(name, unit)
	require.NoError(t, err)
	return ingredient
}

func newTestTag(t *testing.T, name, slug string) *catalog.Tag {
	t.Helper()
	tag, err := catalog.NewTag(name, slug)
	require.NoError(t, err)
	return tag
}

func TestIngredientHandler_List(t *testing.T) {
	t.Run("all ingredients", func(t *testing.T) {
		ingredientRepo := new(MockIngredientRepository)
		tagRepo := new(MockTagRepository)

		ingredientRepo.On("FindAll", mock.Anything).Return([]*catalog.Ingredient{
			newTestIngredient(t, "flour", "g"),
			newTestIngredient(t, "milk", "ml"),
		}, nil)

		router := setupCatalogRouter(ingredientRepo, tagRepo)
		req := httptest.NewRequest(http.MethodGet, "/api/v1/ingredients", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		data := response["data"].([]interface{})
		require.Len(t, data, 2)
		first := data[0].(map[string]interface{})
		assert.Equal(t, "flour", first["name"])
		assert.Equal(t, "g", first["measurement_unit"])
	})

	t.Run("name prefix search", func(t *testing.T) {
		ingredientRepo := new(MockIngredientRepository)
		tagRepo := new(MockTagRepository)

		ingredientRepo.On("SearchByName", mock.Anything, "flo", mock.AnythingOfType("int")).
			Return([]*catalog.Ingredient{newTestIngredient(t, "flour", "g")}, nil)

		router := setupCatalogRouter(ingredientRepo, tagRepo)
		req := httptest.NewRequest(http.MethodGet, "/api/v1/ingredients?name=flo", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "flour")
		ingredientRepo.AssertNotCalled(t, "FindAll")
	})
}

func TestIngredientHandler_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		ingredientRepo := new(MockIngredientRepository)
		tagRepo := new(MockTagRepository)

		ingredient := newTestIngredient(t, "flour", "g")
		ingredientRepo.On("FindByID", mock.Anything, ingredient.ID).Return(ingredient, nil)

		router := setupCatalogRouter(ingredientRepo, tagRepo)
		req := httptest.NewRequest(http.MethodGet, "/api/v1/ingredients/"+ingredient.ID.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "flour")
	})

	t.Run("not found", func(t *testing.T) {
		ingredientRepo := new(MockIngredientRepository)
		tagRepo := new(MockTagRepository)

		unknown := uuid.New()
		ingredientRepo.On("FindByID", mock.Anything, unknown).Return(nil, shared.ErrNotFound)

		router := setupCatalogRouter(ingredientRepo, tagRepo)
		req := httptest.NewRequest(http.MethodGet, "/api/v1/ingredients/"+unknown.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		router := setupCatalogRouter(new(MockIngredientRepository), new(MockTagRepository))
		req := httptest.NewRequest(http.MethodGet, "/api/v1/ingredients/not-a-uuid", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTagHandler_List(t *testing.T) {
	ingredientRepo := new(MockIngredientRepository)
	tagRepo := new(MockTagRepository)

	tagRepo.On("FindAll", mock.Anything).Return([]*catalog.Tag{
		newTestTag(t, "Breakfast", "breakfast"),
		newTestTag(t, "Dinner", "dinner"),
	}, nil)

	router := setupCatalogRouter(ingredientRepo, tagRepo)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tags", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].([]interface{})
	require.Len(t, data, 2)
	first := data[0].(map[string]interface{})
	assert.Equal(t, "breakfast", first["slug"])
}

func TestTagHandler_GetByID(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		tagRepo := new(MockTagRepository)
		tag := newTestTag(t, "Breakfast", "breakfast")
		tagRepo.On("FindByID", mock.Anything, tag.ID).Return(tag, nil)

		router := setupCatalogRouter(new(MockIngredientRepository), tagRepo)
		req := httptest.NewRequest(http.MethodGet, "/api/v1/tags/"+tag.ID.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Breakfast")
	})

	t.Run("not found", func(t *testing.T) {
		tagRepo := new(MockTagRepository)
		unknown := uuid.New()
		tagRepo.On("FindByID", mock.Anything, unknown).Return(nil, shared.ErrNotFound)

		router := setupCatalogRouter(new(MockIngredientRepository), tagRepo)
		req := httptest.NewRequest(http.MethodGet, "/api/v1/tags/"+unknown.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
