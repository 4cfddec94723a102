package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	apprecipe "github.com/recipebox/backend/internal/application/recipe"
)

// ShortLinkHandler resolves short-link codes to recipe pages
type ShortLinkHandler struct {
	BaseHandler
	recipeService *apprecipe.RecipeService
	baseURL       string
}

// NewShortLinkHandler creates a new short-link handler
func NewShortLinkHandler(recipeService *apprecipe.RecipeService, baseURL string) *ShortLinkHandler {
	return &ShortLinkHandler{
		recipeService: recipeService,
		baseURL:       strings.TrimRight(baseURL, "/"),
	}
}

// Resolve godoc
// @Summary      Resolve short link
// @Description  Redirect a short-link code to the recipe page
// @Tags         recipes
// @Param        code path string true "Short-link code"
// @Success      302
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Router       /s/{code} [get]
func (h *ShortLinkHandler) Resolve(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		h.NotFound(c, "Short link not found")
		return
	}

	recipeID, err := h.recipeService.ResolveShortLink(c.Request.Context(), code)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("%s/recipes/%s", h.baseURL, recipeID))
}
