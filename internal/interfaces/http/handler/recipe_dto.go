package handler

import (
	"github.com/google/uuid"
)

// =====================
// Recipe Request DTOs
// =====================

// RecipeIngredientRequest is one ingredient line of a recipe write
type RecipeIngredientRequest struct {
	ID     uuid.UUID `json:"id" binding:"required"`
	Amount float64   `json:"amount" binding:"required,gt=0"`
}

// CreateRecipeRequest represents the request body for recipe creation.
// Image is an optional base64 data URL.
type CreateRecipeRequest struct {
	Name        string                    `json:"name" binding:"required,max=200"`
	Text        string                    `json:"text" binding:"required"`
	CookingTime int                       `json:"cooking_time" binding:"required,min=1,max=32000"`
	Tags        []uuid.UUID               `json:"tags" binding:"required,min=1"`
	Ingredients []RecipeIngredientRequest `json:"ingredients" binding:"required,min=1,dive"`
	Image       string                    `json:"image" binding:"omitempty"`
}

// UpdateRecipeRequest represents the request body for recipe updates.
// All fields are required; a recipe is replaced wholesale.
type UpdateRecipeRequest struct {
	Name        string                    `json:"name" binding:"required,max=200"`
	Text        string                    `json:"text" binding:"required"`
	CookingTime int                       `json:"cooking_time" binding:"required,min=1,max=32000"`
	Tags        []uuid.UUID               `json:"tags" binding:"required,min=1"`
	Ingredients []RecipeIngredientRequest `json:"ingredients" binding:"required,min=1,dive"`
	Image       string                    `json:"image" binding:"omitempty"`
}

// ListRecipesRequest contains query parameters for recipe listing
type ListRecipesRequest struct {
	Author           string   `form:"author" binding:"omitempty,uuid"`
	Tags             []string `form:"tags" binding:"omitempty,dive,max=200"`
	IsFavorited      bool     `form:"is_favorited"`
	IsInShoppingCart bool     `form:"is_in_shopping_cart"`
	Name             string   `form:"name" binding:"omitempty,max=200"`
	Page             int      `form:"page" binding:"omitempty,min=1"`
	PageSize         int      `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// DownloadShoppingCartRequest contains query parameters for the
// shopping-list export
type DownloadShoppingCartRequest struct {
	Format string `form:"format" binding:"omitempty,oneof=txt pdf"`
}

// =====================
// Recipe Response DTOs
// =====================

// ShortLinkResponse carries the absolute short link for a recipe
type ShortLinkResponse struct {
	ShortLink string `json:"short-link"`
}
