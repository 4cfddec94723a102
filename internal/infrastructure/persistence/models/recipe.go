package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/recipebox/backend/internal/domain/recipe"
	"github.com/recipebox/backend/internal/domain/shared"
)

// RecipeModel is the persistence model for the Recipe aggregate root.
// Ingredient lines and tag links live in their own tables.
type RecipeModel struct {
	AggregateModel
	AuthorID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:varchar(256);not null;index"`
	Text        string    `gorm:"type:text"`
	Image       string    `gorm:"type:varchar(500)"`
	CookingTime int       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (RecipeModel) TableName() string {
	return "recipes"
}

// ToDomain converts the persistence model to a domain Recipe.
// Lines and tag IDs must be loaded separately by the repository.
func (m *RecipeModel) ToDomain() *recipe.Recipe {
	return &recipe.Recipe{
		BaseAggregateRoot: shared.BaseAggregateRoot{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			Version: m.Version,
		},
		AuthorID:    m.AuthorID,
		Name:        m.Name,
		Text:        m.Text,
		Image:       m.Image,
		CookingTime: m.CookingTime,
		TagIDs:      make([]uuid.UUID, 0),
		Lines:       make([]recipe.IngredientLine, 0),
	}
}

// FromDomain populates the persistence model from a domain Recipe.
func (m *RecipeModel) FromDomain(r *recipe.Recipe) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.AuthorID = r.AuthorID
	m.Name = r.Name
	m.Text = r.Text
	m.Image = r.Image
	m.CookingTime = r.CookingTime
}

// RecipeModelFromDomain creates a new persistence model from a domain Recipe.
func RecipeModelFromDomain(r *recipe.Recipe) *RecipeModel {
	m := &RecipeModel{}
	m.FromDomain(r)
	return m
}

// RecipeIngredientModel is the persistence model for an ingredient line.
// Name and unit are not stored here; the repository joins the catalog
// when loading lines into the domain aggregate.
type RecipeIngredientModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key"`
	RecipeID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_ingredient,priority:1"`
	IngredientID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_ingredient,priority:2"`
	Amount       decimal.Decimal `gorm:"type:numeric(12,3);not null"`
	CreatedAt    time.Time       `gorm:"not null"`
	UpdatedAt    time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (RecipeIngredientModel) TableName() string {
	return "recipe_ingredients"
}

// ToDomain converts the line model to a domain IngredientLine.
// The catalog name and unit come from the repository join.
func (m *RecipeIngredientModel) ToDomain(ingredientName, measurementUnit string) recipe.IngredientLine {
	return recipe.IngredientLine{
		ID:              m.ID,
		RecipeID:        m.RecipeID,
		IngredientID:    m.IngredientID,
		IngredientName:  ingredientName,
		MeasurementUnit: measurementUnit,
		Amount:          m.Amount,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// FromDomain populates the line model from a domain IngredientLine.
func (m *RecipeIngredientModel) FromDomain(l recipe.IngredientLine) {
	m.ID = l.ID
	m.RecipeID = l.RecipeID
	m.IngredientID = l.IngredientID
	m.Amount = l.Amount
	m.CreatedAt = l.CreatedAt
	m.UpdatedAt = l.UpdatedAt
}

// RecipeTagModel is the persistence model for the recipe-to-tag link.
type RecipeTagModel struct {
	RecipeID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	TagID     uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (RecipeTagModel) TableName() string {
	return "recipe_tags"
}
