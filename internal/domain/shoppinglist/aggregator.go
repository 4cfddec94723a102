// Package shoppinglist computes the merged ingredient list for a cart of
// recipes. The fold is commutative, so the result is independent of the
// order recipes are visited in.
package shoppinglist

import (
	"sort"

	"github.com/recipebox/backend/internal/domain/recipe"
	"github.com/recipebox/backend/internal/domain/shared"
	"github.com/recipebox/backend/internal/domain/shared/valueobject"
)

// Line is one aggregated shopping-list entry: the total amount of a
// distinct (ingredient name, unit) pair across all selected recipes.
type Line struct {
	Name     string
	Quantity valueobject.Quantity
}

// Summary is the aggregation result. Lines are sorted by ingredient name
// (then unit) so repeated exports of the same cart render identically.
type Summary struct {
	Lines       []Line
	RecipeCount int
}

type lineKey struct {
	name string
	unit string
}

// Aggregate folds the ingredient lines of the given recipes into one
// total per (name, unit) pair. Ingredients sharing a name but measured
// in different units stay distinct.
//
// An empty cart fails with shared.ErrEmptyCart. A missing recipe or one
// without ingredient lines fails with shared.ErrInvalidRecipe.
func Aggregate(recipes []*recipe.Recipe) (*Summary, error) {
	if len(recipes) == 0 {
		return nil, shared.ErrEmptyCart
	}

	totals := make(map[lineKey]valueobject.Quantity)
	for _, r := range recipes {
		if r == nil || len(r.Lines) == 0 {
			return nil, shared.ErrInvalidRecipe
		}
		for _, line := range r.Lines {
			key := lineKey{name: line.IngredientName, unit: line.MeasurementUnit}
			q := line.Quantity()
			if existing, ok := totals[key]; ok {
				// Same key means same unit, so Add cannot fail.
				q = existing.MustAdd(q)
			}
			totals[key] = q
		}
	}

	lines := make([]Line, 0, len(totals))
	for key, q := range totals {
		lines = append(lines, Line{Name: key.name, Quantity: q})
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Name != lines[j].Name {
			return lines[i].Name < lines[j].Name
		}
		return lines[i].Quantity.Unit() < lines[j].Quantity.Unit()
	})

	return &Summary{
		Lines:       lines,
		RecipeCount: len(recipes),
	}, nil
}
