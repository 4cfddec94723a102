package catalog

import (
	"github.com/google/uuid"

	"github.com/recipebox/backend/internal/domain/catalog"
)

// IngredientDTO represents a catalog ingredient
type IngredientDTO struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
}

// TagDTO represents a recipe tag
type TagDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// SearchIngredientsInput contains input for ingredient name search
type SearchIngredientsInput struct {
	NamePrefix string
	Limit      int
}

func toIngredientDTO(ingredient *catalog.Ingredient) IngredientDTO {
	return IngredientDTO{
		ID:              ingredient.ID,
		Name:            ingredient.Name,
		MeasurementUnit: ingredient.MeasurementUnit,
	}
}

func toIngredientDTOs(ingredients []*catalog.Ingredient) []IngredientDTO {
	dtos := make([]IngredientDTO, 0, len(ingredients))
	for _, ingredient := range ingredients {
		dtos = append(dtos, toIngredientDTO(ingredient))
	}
	return dtos
}

func toTagDTO(tag *catalog.Tag) TagDTO {
	return TagDTO{
		ID:   tag.ID,
		Name: tag.Name,
		Slug: tag.Slug,
	}
}

func toTagDTOs(tags []*catalog.Tag) []TagDTO {
	dtos := make([]TagDTO, 0, len(tags))
	for _, tag := range tags {
		dtos = append(dtos, toTagDTO(tag))
	}
	return dtos
}
