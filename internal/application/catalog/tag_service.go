package catalog

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/recipebox/backend/internal/domain/catalog"
	"github.com/recipebox/backend/internal/domain/shared"
)

// TagService serves the read-only tag catalog
type TagService struct {
	tagRepo catalog.TagRepository
	logger  *zap.Logger
}

// NewTagService creates a new tag service
func NewTagService(tagRepo catalog.TagRepository, logger *zap.Logger) *TagService {
	return &TagService{
		tagRepo: tagRepo,
		logger:  logger,
	}
}

// GetByID returns a single tag
func (s *TagService) GetByID(ctx context.Context, id uuid.UUID) (*TagDTO, error) {
	tag, err := s.tagRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.NewDomainError("TAG_NOT_FOUND", "Tag not found")
	}

	dto := toTagDTO(tag)
	return &dto, nil
}

// GetBySlug returns the tag with the given slug
func (s *TagService) GetBySlug(ctx context.Context, slug string) (*TagDTO, error) {
	tag, err := s.tagRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, shared.NewDomainError("TAG_NOT_FOUND", "Tag not found")
	}

	dto := toTagDTO(tag)
	return &dto, nil
}

// List returns all tags ordered by name
func (s *TagService) List(ctx context.Context) ([]TagDTO, error) {
	tags, err := s.tagRepo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list tags", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to list tags")
	}

	return toTagDTOs(tags), nil
}
