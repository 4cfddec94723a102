package recipe

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/recipebox/backend/internal/domain/shared"
	"github.com/recipebox/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Cooking time bounds in minutes
const (
	MinCookingTime = 1
	MaxCookingTime = 32000
)

// IngredientLine is an (ingredient, amount) pair attached to a recipe.
// Name and unit are snapshots of the catalog entry, loaded by the
// repository through a join, so the aggregation fold never touches the
// catalog again.
type IngredientLine struct {
	ID              uuid.UUID
	RecipeID        uuid.UUID
	IngredientID    uuid.UUID
	IngredientName  string
	MeasurementUnit string
	Amount          decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewIngredientLine creates a new ingredient line
func NewIngredientLine(recipeID, ingredientID uuid.UUID, name, unit string, amount decimal.Decimal) (*IngredientLine, error) {
	if ingredientID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INGREDIENT", "Ingredient ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INGREDIENT", "Ingredient name cannot be empty")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Ingredient amount must be strictly positive")
	}

	now := time.Now()
	return &IngredientLine{
		ID:              uuid.New(),
		RecipeID:        recipeID,
		IngredientID:    ingredientID,
		IngredientName:  name,
		MeasurementUnit: unit,
		Amount:          amount,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// Quantity returns the line amount with its measurement unit
func (l *IngredientLine) Quantity() valueobject.Quantity {
	return valueobject.MustNewQuantity(l.Amount, l.MeasurementUnit)
}

// Recipe is the aggregate root for an authored recipe.
// A recipe always carries at least one ingredient line and at least one
// tag; only the owning author may mutate it.
type Recipe struct {
	shared.BaseAggregateRoot
	AuthorID    uuid.UUID
	Name        string
	Text        string
	Image       string
	CookingTime int // minutes
	TagIDs      []uuid.UUID
	Lines       []IngredientLine
}

// NewRecipe creates a new recipe in a pre-publication state.
// Lines and tags must be attached before the recipe is saved; Validate
// enforces that.
func NewRecipe(authorID uuid.UUID, name, text string, cookingTime int) (*Recipe, error) {
	if authorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_AUTHOR", "Author ID cannot be empty")
	}
	if err := validateRecipeName(name); err != nil {
		return nil, err
	}
	if err := validateCookingTime(cookingTime); err != nil {
		return nil, err
	}

	r := &Recipe{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		AuthorID:          authorID,
		Name:              strings.TrimSpace(name),
		Text:              text,
		CookingTime:       cookingTime,
		TagIDs:            make([]uuid.UUID, 0),
		Lines:             make([]IngredientLine, 0),
	}

	r.AddDomainEvent(NewRecipeCreatedEvent(r))

	return r, nil
}

// AddLine attaches an ingredient line. Each catalog ingredient may
// appear at most once per recipe.
func (r *Recipe) AddLine(ingredientID uuid.UUID, name, unit string, amount decimal.Decimal) error {
	for _, line := range r.Lines {
		if line.IngredientID == ingredientID {
			return shared.NewDomainError("DUPLICATE_INGREDIENT", "Ingredient already present in recipe")
		}
	}

	line, err := NewIngredientLine(r.ID, ingredientID, name, unit, amount)
	if err != nil {
		return err
	}

	r.Lines = append(r.Lines, *line)
	r.UpdatedAt = time.Now()

	return nil
}

// ReplaceLines swaps the full set of ingredient lines.
// The new set cannot be empty.
func (r *Recipe) ReplaceLines(lines []IngredientLine) error {
	if len(lines) == 0 {
		return shared.NewDomainError("NO_INGREDIENTS", "Recipe must have at least one ingredient line")
	}

	seen := make(map[uuid.UUID]bool, len(lines))
	for _, line := range lines {
		if !line.Amount.IsPositive() {
			return shared.NewDomainError("INVALID_AMOUNT", "Ingredient amount must be strictly positive")
		}
		if seen[line.IngredientID] {
			return shared.NewDomainError("DUPLICATE_INGREDIENT", "Ingredient already present in recipe")
		}
		seen[line.IngredientID] = true
	}

	r.Lines = lines
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	return nil
}

// SetTags replaces the tag set. At least one tag is required.
func (r *Recipe) SetTags(tagIDs []uuid.UUID) error {
	if len(tagIDs) == 0 {
		return shared.NewDomainError("NO_TAGS", "Recipe must have at least one tag")
	}

	seen := make(map[uuid.UUID]bool, len(tagIDs))
	unique := make([]uuid.UUID, 0, len(tagIDs))
	for _, id := range tagIDs {
		if id == uuid.Nil {
			return shared.NewDomainError("INVALID_TAG", "Tag ID cannot be empty")
		}
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	r.TagIDs = unique
	r.UpdatedAt = time.Now()

	return nil
}

// SetImage sets the recipe image URL
func (r *Recipe) SetImage(image string) error {
	if image != "" && len(image) > 500 {
		return shared.NewDomainError("INVALID_IMAGE", "Image URL cannot exceed 500 characters")
	}

	r.Image = image
	r.UpdatedAt = time.Now()

	return nil
}

// Update changes the recipe's basic fields
func (r *Recipe) Update(name, text string, cookingTime int) error {
	if err := validateRecipeName(name); err != nil {
		return err
	}
	if err := validateCookingTime(cookingTime); err != nil {
		return err
	}

	r.Name = strings.TrimSpace(name)
	r.Text = text
	r.CookingTime = cookingTime
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewRecipeUpdatedEvent(r))

	return nil
}

// IsOwnedBy reports whether the given user authored this recipe
func (r *Recipe) IsOwnedBy(userID uuid.UUID) bool {
	return r.AuthorID == userID
}

// Validate checks the aggregate invariants before persistence
func (r *Recipe) Validate() error {
	if len(r.Lines) == 0 {
		return shared.NewDomainError("NO_INGREDIENTS", "Recipe must have at least one ingredient line")
	}
	if len(r.TagIDs) == 0 {
		return shared.NewDomainError("NO_TAGS", "Recipe must have at least one tag")
	}
	return nil
}

func validateRecipeName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_RECIPE_NAME", "Recipe name cannot be empty")
	}
	if len(name) > 256 {
		return shared.NewDomainError("INVALID_RECIPE_NAME", "Recipe name cannot exceed 256 characters")
	}
	return nil
}

func validateCookingTime(minutes int) error {
	if minutes < MinCookingTime || minutes > MaxCookingTime {
		return shared.NewDomainError("INVALID_COOKING_TIME", "Cooking time must be between 1 and 32000 minutes")
	}
	return nil
}
