package recipe

import (
	"github.com/google/uuid"
	"github.com/recipebox/backend/internal/domain/shared"
)

// Aggregate type constant for Recipe
const AggregateTypeRecipe = "Recipe"

// Recipe domain event types
const (
	EventTypeRecipeCreated = "RecipeCreated"
	EventTypeRecipeUpdated = "RecipeUpdated"
	EventTypeRecipeDeleted = "RecipeDeleted"
)

// RecipeCreatedEvent is published when a recipe is created
type RecipeCreatedEvent struct {
	shared.BaseDomainEvent
	AuthorID uuid.UUID `json:"author_id"`
	Name     string    `json:"name"`
}

// NewRecipeCreatedEvent creates a new RecipeCreatedEvent
func NewRecipeCreatedEvent(r *Recipe) *RecipeCreatedEvent {
	return &RecipeCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRecipeCreated, AggregateTypeRecipe, r.ID),
		AuthorID:        r.AuthorID,
		Name:            r.Name,
	}
}

// RecipeUpdatedEvent is published when a recipe is updated
type RecipeUpdatedEvent struct {
	shared.BaseDomainEvent
	AuthorID uuid.UUID `json:"author_id"`
	Name     string    `json:"name"`
}

// NewRecipeUpdatedEvent creates a new RecipeUpdatedEvent
func NewRecipeUpdatedEvent(r *Recipe) *RecipeUpdatedEvent {
	return &RecipeUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRecipeUpdated, AggregateTypeRecipe, r.ID),
		AuthorID:        r.AuthorID,
		Name:            r.Name,
	}
}

// RecipeDeletedEvent is published when a recipe is deleted.
// Image carries the stored image URL so cleanup handlers can remove the
// object after the row is gone.
type RecipeDeletedEvent struct {
	shared.BaseDomainEvent
	AuthorID uuid.UUID `json:"author_id"`
	Name     string    `json:"name"`
	Image    string    `json:"image,omitempty"`
}

// NewRecipeDeletedEvent creates a new RecipeDeletedEvent
func NewRecipeDeletedEvent(r *Recipe) *RecipeDeletedEvent {
	return &RecipeDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRecipeDeleted, AggregateTypeRecipe, r.ID),
		AuthorID:        r.AuthorID,
		Name:            r.Name,
		Image:           r.Image,
	}
}
