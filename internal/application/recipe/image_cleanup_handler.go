package recipe

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/recipebox/backend/internal/domain/recipe"
	"github.com/recipebox/backend/internal/domain/shared"
	"github.com/recipebox/backend/internal/infrastructure/storage"
)

// ImageCleanupHandler handles RecipeDeletedEvent and removes the
// recipe's stored image once the database row is gone. The recipe row
// and its object are not deleted atomically; cleanup riding on the
// event keeps the store from accumulating orphans.
type ImageCleanupHandler struct {
	storage storage.ObjectStorage
	logger  *zap.Logger
}

// NewImageCleanupHandler creates a new handler for recipe deleted events
func NewImageCleanupHandler(objectStorage storage.ObjectStorage, logger *zap.Logger) *ImageCleanupHandler {
	return &ImageCleanupHandler{
		storage: objectStorage,
		logger:  logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *ImageCleanupHandler) EventTypes() []string {
	return []string{recipe.EventTypeRecipeDeleted}
}

// Handle deletes the image object referenced by a deleted recipe
func (h *ImageCleanupHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	deletedEvent, ok := event.(*recipe.RecipeDeletedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", recipe.EventTypeRecipeDeleted),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			recipe.EventTypeRecipeDeleted, event.EventType())
	}

	if deletedEvent.Image == "" {
		return nil
	}

	key := storageKeyFromURL(deletedEvent.Image, deletedEvent.AggregateID())
	if key == "" {
		h.logger.Warn("could not derive storage key from image URL",
			zap.String("recipe_id", deletedEvent.AggregateID().String()),
			zap.String("image", deletedEvent.Image))
		return nil
	}

	if err := h.storage.Delete(ctx, key); err != nil {
		h.logger.Error("failed to delete recipe image",
			zap.String("recipe_id", deletedEvent.AggregateID().String()),
			zap.String("storage_key", key),
			zap.Error(err))
		return err
	}

	h.logger.Info("recipe image removed",
		zap.String("recipe_id", deletedEvent.AggregateID().String()),
		zap.String("storage_key", key))

	return nil
}

// storageKeyFromURL recovers the "recipes/<id>.<ext>" key from a stored
// image URL. The key is the URL path suffix starting at the recipes
// segment.
func storageKeyFromURL(imageURL string, recipeID fmt.Stringer) string {
	marker := "recipes/" + recipeID.String()
	idx := strings.Index(imageURL, marker)
	if idx < 0 {
		return ""
	}
	return imageURL[idx:]
}

var _ shared.EventHandler = (*ImageCleanupHandler)(nil)
