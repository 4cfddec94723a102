package catalog

import (
	"strings"
	"time"

	"github.com/recipebox/backend/internal/domain/shared"
)

// Ingredient is a canonical catalog entry pairing a name with a
// measurement unit. Two entries may share a name as long as their units
// differ; the (name, unit) pair is unique.
type Ingredient struct {
	shared.BaseAggregateRoot
	Name            string `gorm:"type:varchar(200);not null;uniqueIndex:idx_ingredient_name_unit,priority:1"`
	MeasurementUnit string `gorm:"type:varchar(64);not null;uniqueIndex:idx_ingredient_name_unit,priority:2"`
}

// TableName returns the table name for GORM
func (Ingredient) TableName() string {
	return "ingredients"
}

// NewIngredient creates a new catalog ingredient
func NewIngredient(name, measurementUnit string) (*Ingredient, error) {
	name = strings.TrimSpace(name)
	measurementUnit = strings.TrimSpace(measurementUnit)

	if err := validateIngredientName(name); err != nil {
		return nil, err
	}
	if err := validateMeasurementUnit(measurementUnit); err != nil {
		return nil, err
	}

	return &Ingredient{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		MeasurementUnit:   measurementUnit,
	}, nil
}

// Rename updates the ingredient name
func (i *Ingredient) Rename(name string) error {
	name = strings.TrimSpace(name)
	if err := validateIngredientName(name); err != nil {
		return err
	}

	i.Name = name
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

func validateIngredientName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_INGREDIENT_NAME", "Ingredient name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_INGREDIENT_NAME", "Ingredient name cannot exceed 200 characters")
	}
	return nil
}

func validateMeasurementUnit(unit string) error {
	if unit == "" {
		return shared.NewDomainError("INVALID_MEASUREMENT_UNIT", "Measurement unit cannot be empty")
	}
	if len(unit) > 64 {
		return shared.NewDomainError("INVALID_MEASUREMENT_UNIT", "Measurement unit cannot exceed 64 characters")
	}
	return nil
}
