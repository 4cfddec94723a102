package recipe

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IngredientLineInput is one (ingredient, amount) pair of a recipe write
type IngredientLineInput struct {
	IngredientID uuid.UUID       `json:"id"`
	Amount       decimal.Decimal `json:"amount"`
}

// CreateRecipeInput contains input for creating a recipe.
// ImageData is the decoded image payload; it may be empty for recipes
// without a picture.
type CreateRecipeInput struct {
	AuthorID         uuid.UUID
	Name             string
	Text             string
	CookingTime      int
	TagIDs           []uuid.UUID
	Ingredients      []IngredientLineInput
	ImageData        []byte
	ImageContentType string
}

// UpdateRecipeInput contains input for updating a recipe.
// Only the recipe's author may update it; RequesterID is checked
// against the stored author.
type UpdateRecipeInput struct {
	RecipeID         uuid.UUID
	RequesterID      uuid.UUID
	Name             string
	Text             string
	CookingTime      int
	TagIDs           []uuid.UUID
	Ingredients      []IngredientLineInput
	ImageData        []byte
	ImageContentType string
}

// DeleteRecipeInput contains input for deleting a recipe
type DeleteRecipeInput struct {
	RecipeID    uuid.UUID
	RequesterID uuid.UUID
}

// ListRecipesInput contains filter and viewer context for recipe listing.
// ViewerID is nil for anonymous requests; viewer-dependent flags are
// false in that case.
type ListRecipesInput struct {
	AuthorID    *uuid.UUID
	TagSlugs    []string
	FavoritedBy *uuid.UUID
	InCartOf    *uuid.UUID
	NamePrefix  string
	Page        int
	PageSize    int
	ViewerID    *uuid.UUID
}

// AuthorDTO describes a recipe author, including whether the viewer
// subscribes to them
type AuthorDTO struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Avatar       string    `json:"avatar,omitempty"`
	IsSubscribed bool      `json:"is_subscribed"`
}

// RecipeTagDTO is a tag attached to a recipe
type RecipeTagDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// RecipeIngredientDTO is one ingredient line of a recipe
type RecipeIngredientDTO struct {
	ID              uuid.UUID       `json:"id"`
	Name            string          `json:"name"`
	MeasurementUnit string          `json:"measurement_unit"`
	Amount          decimal.Decimal `json:"amount"`
}

// RecipeDTO represents a fully assembled recipe
type RecipeDTO struct {
	ID               uuid.UUID             `json:"id"`
	Author           AuthorDTO             `json:"author"`
	Name             string                `json:"name"`
	Text             string                `json:"text"`
	Image            string                `json:"image,omitempty"`
	CookingTime      int                   `json:"cooking_time"`
	Tags             []RecipeTagDTO        `json:"tags"`
	Ingredients      []RecipeIngredientDTO `json:"ingredients"`
	IsFavorited      bool                  `json:"is_favorited"`
	IsInShoppingCart bool                  `json:"is_in_shopping_cart"`
	CreatedAt        time.Time             `json:"created_at"`
}

// RecipeListResult represents a paginated recipe listing
type RecipeListResult struct {
	Recipes    []RecipeDTO `json:"recipes"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
}

// ShortLinkDTO represents a shareable short link for a recipe
type ShortLinkDTO struct {
	RecipeID uuid.UUID `json:"recipe_id"`
	Code     string    `json:"code"`
}
