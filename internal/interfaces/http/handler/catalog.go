package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appcatalog "github.com/recipebox/backend/internal/application/catalog"
	"github.com/recipebox/backend/internal/interfaces/http/dto"
)

// IngredientHandler handles ingredient catalog HTTP requests
type IngredientHandler struct {
	BaseHandler
	ingredientService *appcatalog.IngredientService
}

// NewIngredientHandler creates a new ingredient handler
func NewIngredientHandler(ingredientService *appcatalog.IngredientService) *IngredientHandler {
	return &IngredientHandler{
		ingredientService: ingredientService,
	}
}

// ListIngredientsRequest contains query parameters for ingredient search
type ListIngredientsRequest struct {
	Name  string `form:"name" binding:"omitempty,max=200"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=1000"`
}

// List godoc
// @Summary      List ingredients
// @Description  List catalog ingredients, optionally filtered by name prefix
// @Tags         ingredients
// @Produce      json
// @Param        name query string false "Name prefix filter"
// @Param        limit query int false "Max results for prefix search"
// @Success      200 {object} dto.Response{data=[]appcatalog.IngredientDTO}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /ingredients [get]
func (h *IngredientHandler) List(c *gin.Context) {
	var req ListIngredientsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	ingredients, err := h.ingredientService.List(c.Request.Context(), appcatalog.SearchIngredientsInput{
		NamePrefix: req.Name,
		Limit:      req.Limit,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ingredients)
}

// GetByID godoc
// @Summary      Get ingredient
// @Description  Get a catalog ingredient by ID
// @Tags         ingredients
// @Produce      json
// @Param        id path string true "Ingredient ID"
// @Success      200 {object} dto.Response{data=appcatalog.IngredientDTO}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /ingredients/{id} [get]
func (h *IngredientHandler) GetByID(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid ingredient ID")
		return
	}

	ingredient, err := h.ingredientService.GetByID(c.Request.Context(), uuid.MustParse(req.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ingredient)
}

// TagHandler handles tag catalog HTTP requests
type TagHandler struct {
	BaseHandler
	tagService *appcatalog.TagService
}

// NewTagHandler creates a new tag handler
func NewTagHandler(tagService *appcatalog.TagService) *TagHandler {
	return &TagHandler{
		tagService: tagService,
	}
}

// List godoc
// @Summary      List tags
// @Description  List all recipe tags
// @Tags         tags
// @Produce      json
// @Success      200 {object} dto.Response{data=[]appcatalog.TagDTO}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /tags [get]
func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.tagService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tags)
}

// GetByID godoc
// @Summary      Get tag
// @Description  Get a recipe tag by ID
// @Tags         tags
// @Produce      json
// @Param        id path string true "Tag ID"
// @Success      200 {object} dto.Response{data=appcatalog.TagDTO}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /tags/{id} [get]
func (h *TagHandler) GetByID(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid tag ID")
		return
	}

	tag, err := h.tagService.GetByID(c.Request.Context(), uuid.MustParse(req.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, tag)
}
