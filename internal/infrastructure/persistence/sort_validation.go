package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// orderClause builds a safe ORDER BY clause from caller-supplied sort
// parameters, falling back to the given default clause.
func orderClause(sortBy, sortOrder, defaultClause string) string {
	field := ValidateSortField(sortBy, CommonSortFields, "")
	if field == "" {
		return defaultClause
	}
	return field + " " + ValidateSortOrder(sortOrder)
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"username":   true,
	"email":      true,
	"status":     true,
}

// UserSortFields contains allowed sort fields for users
var UserSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"username":      true,
	"email":         true,
	"status":        true,
	"last_login_at": true,
}

// RecipeSortFields contains allowed sort fields for recipes
var RecipeSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"name":         true,
	"cooking_time": true,
}

// IngredientSortFields contains allowed sort fields for ingredients
var IngredientSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"name":             true,
	"measurement_unit": true,
}

// TagSortFields contains allowed sort fields for tags
var TagSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"name":       true,
	"slug":       true,
}
