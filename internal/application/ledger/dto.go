package ledger

import (
	"github.com/google/uuid"
)

// RecipeSummaryDTO is the compact recipe representation used in
// subscription listings
type RecipeSummaryDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Image       string    `json:"image,omitempty"`
	CookingTime int       `json:"cooking_time"`
}

// SubscribedAuthorDTO is one followed author with a preview of their
// recipes
type SubscribedAuthorDTO struct {
	ID           uuid.UUID          `json:"id"`
	Email        string             `json:"email"`
	Username     string             `json:"username"`
	FirstName    string             `json:"first_name"`
	LastName     string             `json:"last_name"`
	Avatar       string             `json:"avatar,omitempty"`
	IsSubscribed bool               `json:"is_subscribed"`
	RecipesCount int64              `json:"recipes_count"`
	Recipes      []RecipeSummaryDTO `json:"recipes"`
}

// SubscriptionListResult is a paginated listing of followed authors
type SubscriptionListResult struct {
	Authors    []SubscribedAuthorDTO `json:"authors"`
	Total      int64                 `json:"total"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	TotalPages int                   `json:"total_pages"`
}

// ListSubscriptionsInput contains pagination for subscription listing.
// RecipesLimit caps how many recipes are embedded per author; zero
// means all of them.
type ListSubscriptionsInput struct {
	FollowerID   uuid.UUID
	Page         int
	PageSize     int
	RecipesLimit int
}
