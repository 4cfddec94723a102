package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appledger "github.com/recipebox/backend/internal/application/ledger"
	apprecipe "github.com/recipebox/backend/internal/application/recipe"
	"github.com/recipebox/backend/internal/application/shoppinglist"
	"github.com/recipebox/backend/internal/interfaces/http/dto"
)

// RecipeHandler handles recipe authoring, listing, favorites, cart
// selection, and shopping-list download
type RecipeHandler struct {
	BaseHandler
	recipeService   *apprecipe.RecipeService
	favoriteService *appledger.FavoriteService
	cartService     *appledger.CartService
	exportService   *shoppinglist.ExportService
	baseURL         string
}

// NewRecipeHandler creates a new recipe handler.
// baseURL is the public base URL short links are built against.
func NewRecipeHandler(
	recipeService *apprecipe.RecipeService,
	favoriteService *appledger.FavoriteService,
	cartService *appledger.CartService,
	exportService *shoppinglist.ExportService,
	baseURL string,
) *RecipeHandler {
	return &RecipeHandler{
		recipeService:   recipeService,
		favoriteService: favoriteService,
		cartService:     cartService,
		exportService:   exportService,
		baseURL:         strings.TrimRight(baseURL, "/"),
	}
}

func (h *RecipeHandler) bindImage(c *gin.Context, image string) ([]byte, string, bool) {
	if image == "" {
		return nil, "", true
	}
	data, contentType, err := decodeBase64Image(image)
	if err != nil {
		h.BadRequest(c, "Image must be a base64 image data URL")
		return nil, "", false
	}
	return data, contentType, true
}

func toIngredientLineInputs(lines []RecipeIngredientRequest) []apprecipe.IngredientLineInput {
	inputs := make([]apprecipe.IngredientLineInput, 0, len(lines))
	for _, line := range lines {
		inputs = append(inputs, apprecipe.IngredientLineInput{
			IngredientID: line.ID,
			Amount:       toDecimal(line.Amount),
		})
	}
	return inputs
}

// Create godoc
// @Summary      Create recipe
// @Description  Create a recipe with ingredient lines, tags, and an optional image
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Param        request body CreateRecipeRequest true "Recipe data"
// @Success      201 {object} dto.Response{data=apprecipe.RecipeDTO}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /recipes [post]
func (h *RecipeHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	imageData, imageContentType, ok := h.bindImage(c, req.Image)
	if !ok {
		return
	}

	result, err := h.recipeService.Create(c.Request.Context(), apprecipe.CreateRecipeInput{
		AuthorID:         userID,
		Name:             req.Name,
		Text:             req.Text,
		CookingTime:      req.CookingTime,
		TagIDs:           req.Tags,
		Ingredients:      toIngredientLineInputs(req.Ingredients),
		ImageData:        imageData,
		ImageContentType: imageContentType,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, result)
}

// List godoc
// @Summary      List recipes
// @Description  List recipes with filters for author, tags, favorites, and cart membership
// @Tags         recipes
// @Produce      json
// @Param        author query string false "Author ID"
// @Param        tags query []string false "Tag slugs (any match)"
// @Param        is_favorited query bool false "Only the viewer's favorites"
// @Param        is_in_shopping_cart query bool false "Only recipes in the viewer's cart"
// @Param        name query string false "Name prefix filter"
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Success      200 {object} dto.Response{data=[]apprecipe.RecipeDTO}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /recipes [get]
func (h *RecipeHandler) List(c *gin.Context) {
	var req ListRecipesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	viewerID := getOptionalUserID(c)

	input := apprecipe.ListRecipesInput{
		TagSlugs:   req.Tags,
		NamePrefix: req.Name,
		Page:       req.Page,
		PageSize:   req.PageSize,
		ViewerID:   viewerID,
	}

	if req.Author != "" {
		authorID, err := uuid.Parse(req.Author)
		if err != nil {
			h.BadRequest(c, "Invalid author ID")
			return
		}
		input.AuthorID = &authorID
	}

	// Viewer-scoped filters are no-ops for anonymous requests
	if req.IsFavorited && viewerID != nil {
		input.FavoritedBy = viewerID
	}
	if req.IsInShoppingCart && viewerID != nil {
		input.InCartOf = viewerID
	}

	result, err := h.recipeService.List(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Recipes, result.Total, result.Page, result.PageSize)
}

// GetByID godoc
// @Summary      Get recipe
// @Description  Get a recipe by ID with viewer-dependent flags
// @Tags         recipes
// @Produce      json
// @Param        id path string true "Recipe ID"
// @Success      200 {object} dto.Response{data=apprecipe.RecipeDTO}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /recipes/{id} [get]
func (h *RecipeHandler) GetByID(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid recipe ID")
		return
	}

	result, err := h.recipeService.GetByID(c.Request.Context(), uuid.MustParse(req.ID), getOptionalUserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Update godoc
// @Summary      Update recipe
// @Description  Replace a recipe's fields, lines, and tags. Author only.
// @Tags         recipes
// @Accept       json
// @Produce      json
// @Param        id path string true "Recipe ID"
// @Param        request body UpdateRecipeRequest true "Recipe data"
// @Success      200 {object} dto.Response{data=apprecipe.RecipeDTO}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /recipes/{id} [patch]
func (h *RecipeHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var uri dto.IDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		h.BadRequest(c, "Invalid recipe ID")
		return
	}

	var req UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	imageData, imageContentType, ok := h.bindImage(c, req.Image)
	if !ok {
		return
	}

	result, err := h.recipeService.Update(c.Request.Context(), apprecipe.UpdateRecipeInput{
		RecipeID:         uuid.MustParse(uri.ID),
		RequesterID:      userID,
		Name:             req.Name,
		Text:             req.Text,
		CookingTime:      req.CookingTime,
		TagIDs:           req.Tags,
		Ingredients:      toIngredientLineInputs(req.Ingredients),
		ImageData:        imageData,
		ImageContentType: imageContentType,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Delete godoc
// @Summary      Delete recipe
// @Description  Delete a recipe. Author only.
// @Tags         recipes
// @Produce      json
// @Param        id path string true "Recipe ID"
// @Success      204
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /recipes/{id} [delete]
func (h *RecipeHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid recipe ID")
		return
	}

	if err := h.recipeService.Delete(c.Request.Context(), apprecipe.DeleteRecipeInput{
		RecipeID:    uuid.MustParse(req.ID),
		RequesterID: userID,
	}); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// GetLink godoc
// @Summary      Get short link
// @Description  Get the shareable short link for a recipe, creating it on first request
// @Tags         recipes
// @Produce      json
// @Param        id path string true "Recipe ID"
// @Success      200 {object} dto.Response{data=ShortLinkResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /recipes/{id}/get-link [get]
func (h *RecipeHandler) GetLink(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid recipe ID")
		return
	}

	link, err := h.recipeService.GetShortLink(c.Request.Context(), uuid.MustParse(req.ID))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, ShortLinkResponse{
		ShortLink: fmt.Sprintf("%s/s/%s", h.baseURL, link.Code),
	})
}

// Favorite godoc
// @Summary      Favorite recipe
// @Description  Add a recipe to the current user's favorites
// @Tags         recipes
// @Produce      json
// @Param        id path string true "Recipe ID"
// @Success      201 {object} dto.Response
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /recipes/{id}/favorite [post]
func (h *RecipeHandler) Favorite(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid recipe ID")
		return
	}

	if err := h.favoriteService.Add(c.Request.Context(), userID, uuid.MustParse(req.ID)); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, gin.H{"message": "Recipe added to favorites"})
}

// Unfavorite godoc
// @Summary      Unfavorite recipe
// @Description  Remove a recipe from the current user's favorites
// @Tags         recipes
// @Produce      json
// @Param        id path string true "Recipe ID"
// @Success      204
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /recipes/{id}/favorite [delete]
func (h *RecipeHandler) Unfavorite(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid recipe ID")
		return
	}

	if err := h.favoriteService.Remove(c.Request.Context(), userID, uuid.MustParse(req.ID)); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// AddToShoppingCart godoc
// @Summary      Add recipe to cart
// @Description  Add a recipe to the current user's shopping cart selection
// @Tags         recipes
// @Produce      json
// @Param        id path string true "Recipe ID"
// @Success      201 {object} dto.Response
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      409 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /recipes/{id}/shopping_cart [post]
func (h *RecipeHandler) AddToShoppingCart(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid recipe ID")
		return
	}

	if err := h.cartService.Add(c.Request.Context(), userID, uuid.MustParse(req.ID)); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, gin.H{"message": "Recipe added to shopping cart"})
}

// RemoveFromShoppingCart godoc
// @Summary      Remove recipe from cart
// @Description  Remove a recipe from the current user's shopping cart selection
// @Tags         recipes
// @Produce      json
// @Param        id path string true "Recipe ID"
// @Success      204
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /recipes/{id}/shopping_cart [delete]
func (h *RecipeHandler) RemoveFromShoppingCart(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req dto.IDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		h.BadRequest(c, "Invalid recipe ID")
		return
	}

	if err := h.cartService.Remove(c.Request.Context(), userID, uuid.MustParse(req.ID)); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// DownloadShoppingCart godoc
// @Summary      Download shopping list
// @Description  Export the aggregated shopping list as text or PDF and clear the cart
// @Tags         recipes
// @Produce      plain
// @Produce      application/pdf
// @Param        format query string false "Export format (txt or pdf)" Enums(txt, pdf)
// @Success      200 {file} file
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      401 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      500 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /recipes/download_shopping_cart [get]
func (h *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req DownloadShoppingCartRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Unsupported export format")
		return
	}

	result, err := h.exportService.Export(c.Request.Context(), userID, req.Format)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
