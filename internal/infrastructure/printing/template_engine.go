package printing

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates/*.html
var templateFS embed.FS

// ShoppingListEntry is one aggregated ingredient row on the rendered list
type ShoppingListEntry struct {
	Name   string
	Unit   string
	Amount decimal.Decimal
}

// ShoppingListDocument holds the data rendered into the shopping list template
type ShoppingListDocument struct {
	Owner       string
	GeneratedAt time.Time
	RecipeCount int
	Items       []ShoppingListEntry
}

// TemplateEngine renders HTML documents from embedded templates.
// It uses Go's html/template package with custom formatting functions.
type TemplateEngine struct {
	shoppingList *template.Template
}

// NewTemplateEngine creates a new template engine with the embedded templates parsed
func NewTemplateEngine() (*TemplateEngine, error) {
	funcMap := template.FuncMap{
		"formatAmount":   formatAmount,
		"formatDate":     formatDate,
		"formatDateTime": formatDateTime,
		"title":          titleCase,
		"upper":          strings.ToUpper,
		"lower":          strings.ToLower,
		"trim":           strings.TrimSpace,
	}

	tmpl, err := template.New("shopping_list.html").Funcs(funcMap).ParseFS(templateFS, "templates/shopping_list.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse shopping list template: %w", err)
	}

	return &TemplateEngine{shoppingList: tmpl}, nil
}

// RenderShoppingList renders the shopping list document to an HTML string
func (e *TemplateEngine) RenderShoppingList(doc ShoppingListDocument) (string, error) {
	var buf bytes.Buffer
	if err := e.shoppingList.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("failed to render shopping list: %w", err)
	}
	return buf.String(), nil
}

// formatAmount renders a quantity without trailing zeros.
// Example: 2.500 -> "2.5", 3.000 -> "3"
func formatAmount(d decimal.Decimal) string {
	s := d.StringFixed(3)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return s
}

// formatDate formats a time value as a date string
// Example: time.Now() -> "2024-01-15"
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

// formatDateTime formats a time value as a datetime string
// Example: time.Now() -> "2024-01-15 14:30:00"
func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

func titleCase(s string) string {
	caser := cases.Title(language.English)
	return caser.String(s)
}
