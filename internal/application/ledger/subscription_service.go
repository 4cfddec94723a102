package ledger

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/recipebox/backend/internal/domain/identity"
	"github.com/recipebox/backend/internal/domain/ledger"
	"github.com/recipebox/backend/internal/domain/recipe"
	"github.com/recipebox/backend/internal/domain/shared"
)

// SubscriptionService manages author subscriptions
type SubscriptionService struct {
	subscriptionRepo ledger.SubscriptionRepository
	userRepo         identity.UserRepository
	recipeRepo       recipe.RecipeRepository
	logger           *zap.Logger
}

// NewSubscriptionService creates a new subscription service
func NewSubscriptionService(
	subscriptionRepo ledger.SubscriptionRepository,
	userRepo identity.UserRepository,
	recipeRepo recipe.RecipeRepository,
	logger *zap.Logger,
) *SubscriptionService {
	return &SubscriptionService{
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
		recipeRepo:       recipeRepo,
		logger:           logger,
	}
}

// Subscribe follows an author. Following yourself fails with
// shared.ErrSelfSubscription; following twice fails with
// shared.ErrAlreadyExists.
func (s *SubscriptionService) Subscribe(ctx context.Context, followerID, authorID uuid.UUID) (*SubscribedAuthorDTO, error) {
	author, err := s.userRepo.FindByID(ctx, authorID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "Author not found")
	}

	subscription, err := ledger.NewSubscription(followerID, authorID)
	if err != nil {
		return nil, err
	}

	if err := s.subscriptionRepo.Add(ctx, subscription); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.ErrAlreadyExists
		}
		s.logger.Error("Failed to add subscription", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to subscribe")
	}

	s.logger.Info("Author subscribed",
		zap.String("follower_id", followerID.String()),
		zap.String("author_id", authorID.String()))

	return s.buildAuthorDTO(ctx, author, 0)
}

// Unsubscribe stops following an author.
// Removing a subscription that does not exist fails with shared.ErrNotFound.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, followerID, authorID uuid.UUID) error {
	if err := s.subscriptionRepo.Remove(ctx, followerID, authorID); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.ErrNotFound
		}
		s.logger.Error("Failed to remove subscription", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to unsubscribe")
	}

	s.logger.Info("Author unsubscribed",
		zap.String("follower_id", followerID.String()),
		zap.String("author_id", authorID.String()))

	return nil
}

// IsSubscribed reports whether the follower subscribes to the author.
// An anonymous viewer (nil followerID) is never subscribed.
func (s *SubscriptionService) IsSubscribed(ctx context.Context, followerID *uuid.UUID, authorID uuid.UUID) (bool, error) {
	if followerID == nil {
		return false, nil
	}
	exists, err := s.subscriptionRepo.Exists(ctx, *followerID, authorID)
	if err != nil {
		s.logger.Error("Failed to check subscription", zap.Error(err))
		return false, shared.NewDomainError("INTERNAL_ERROR", "Failed to check subscription")
	}
	return exists, nil
}

// List returns the authors the user follows, each with a preview of
// their recipes
func (s *SubscriptionService) List(ctx context.Context, input ListSubscriptionsInput) (*SubscriptionListResult, error) {
	page := input.Page
	if page <= 0 {
		page = 1
	}
	pageSize := input.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}

	authorIDs, total, err := s.subscriptionRepo.FindAuthorIDs(ctx, input.FollowerID, page, pageSize)
	if err != nil {
		s.logger.Error("Failed to list subscriptions", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list subscriptions")
	}

	authors := make([]SubscribedAuthorDTO, 0, len(authorIDs))
	for _, authorID := range authorIDs {
		author, err := s.userRepo.FindByID(ctx, authorID)
		if err != nil {
			s.logger.Warn("Subscribed author no longer exists",
				zap.String("author_id", authorID.String()))
			continue
		}
		dto, err := s.buildAuthorDTO(ctx, author, input.RecipesLimit)
		if err != nil {
			return nil, err
		}
		authors = append(authors, *dto)
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))

	return &SubscriptionListResult{
		Authors:    authors,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *SubscriptionService) buildAuthorDTO(ctx context.Context, author *identity.User, recipesLimit int) (*SubscribedAuthorDTO, error) {
	count, err := s.recipeRepo.CountByAuthor(ctx, author.ID)
	if err != nil {
		s.logger.Error("Failed to count author recipes", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load author recipes")
	}

	filter := recipe.NewRecipeFilter()
	filter.AuthorID = &author.ID
	if recipesLimit > 0 {
		filter.PageSize = recipesLimit
	} else {
		filter.PageSize = 100
	}

	recipes, _, err := s.recipeRepo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("Failed to load author recipes", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load author recipes")
	}

	summaries := make([]RecipeSummaryDTO, 0, len(recipes))
	for _, r := range recipes {
		summaries = append(summaries, RecipeSummaryDTO{
			ID:          r.ID,
			Name:        r.Name,
			Image:       r.Image,
			CookingTime: r.CookingTime,
		})
	}

	return &SubscribedAuthorDTO{
		ID:           author.ID,
		Email:        author.Email,
		Username:     author.Username,
		FirstName:    author.FirstName,
		LastName:     author.LastName,
		Avatar:       author.Avatar,
		IsSubscribed: true,
		RecipesCount: count,
		Recipes:      summaries,
	}, nil
}
