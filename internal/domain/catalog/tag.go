package catalog

import (
	"regexp"
	"strings"
	"time"

	"github.com/recipebox/backend/internal/domain/shared"
)

// Tag labels recipes for filtering (breakfast, dinner, vegan, ...).
// Both name and slug are unique across the catalog.
type Tag struct {
	shared.BaseAggregateRoot
	Name string `gorm:"type:varchar(64);not null;uniqueIndex"`
	Slug string `gorm:"type:varchar(64);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (Tag) TableName() string {
	return "tags"
}

var slugRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9\-_]*$`)

// NewTag creates a new tag
func NewTag(name, slug string) (*Tag, error) {
	name = strings.TrimSpace(name)
	slug = strings.ToLower(strings.TrimSpace(slug))

	if err := validateTagName(name); err != nil {
		return nil, err
	}
	if err := validateTagSlug(slug); err != nil {
		return nil, err
	}

	return &Tag{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              slug,
	}, nil
}

// Rename updates the tag display name, keeping the slug stable
func (t *Tag) Rename(name string) error {
	name = strings.TrimSpace(name)
	if err := validateTagName(name); err != nil {
		return err
	}

	t.Name = name
	t.UpdatedAt = time.Now()
	t.IncrementVersion()

	return nil
}

func validateTagName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_TAG_NAME", "Tag name cannot be empty")
	}
	if len(name) > 64 {
		return shared.NewDomainError("INVALID_TAG_NAME", "Tag name cannot exceed 64 characters")
	}
	return nil
}

func validateTagSlug(slug string) error {
	if slug == "" {
		return shared.NewDomainError("INVALID_TAG_SLUG", "Tag slug cannot be empty")
	}
	if len(slug) > 64 {
		return shared.NewDomainError("INVALID_TAG_SLUG", "Tag slug cannot exceed 64 characters")
	}
	if !slugRegex.MatchString(slug) {
		return shared.NewDomainError("INVALID_TAG_SLUG", "Tag slug may only contain lowercase letters, numbers, hyphens, and underscores")
	}
	return nil
}
