// Package shoppinglist exports the aggregated shopping list for a
// user's cart as plain text or a rendered PDF document.
package shoppinglist

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appledger "github.com/recipebox/backend/internal/application/ledger"
	"github.com/recipebox/backend/internal/domain/identity"
	"github.com/recipebox/backend/internal/domain/ledger"
	"github.com/recipebox/backend/internal/domain/recipe"
	"github.com/recipebox/backend/internal/domain/shared"
	"github.com/recipebox/backend/internal/domain/shoppinglist"
	"github.com/recipebox/backend/internal/infrastructure/printing"
)

// Export formats
const (
	FormatText = "txt"
	FormatPDF  = "pdf"
)

// ExportResult carries the rendered shopping list and its metadata
type ExportResult struct {
	Data        []byte
	ContentType string
	Filename    string
}

// ExportService builds and renders shopping lists from the cart.
// A successful export clears the cart.
type ExportService struct {
	cartRepo   ledger.CartRepository
	recipeRepo recipe.RecipeRepository
	userRepo   identity.UserRepository
	templates  *printing.TemplateEngine
	renderer   printing.PDFRenderer
	locks      *appledger.UserLocks
	logger     *zap.Logger
}

// NewExportService creates a new shopping-list export service. The lock
// registry must be the same instance the cart service uses.
func NewExportService(
	cartRepo ledger.CartRepository,
	recipeRepo recipe.RecipeRepository,
	userRepo identity.UserRepository,
	templates *printing.TemplateEngine,
	renderer printing.PDFRenderer,
	locks *appledger.UserLocks,
	logger *zap.Logger,
) *ExportService {
	return &ExportService{
		cartRepo:   cartRepo,
		recipeRepo: recipeRepo,
		userRepo:   userRepo,
		templates:  templates,
		renderer:   renderer,
		locks:      locks,
		logger:     logger,
	}
}

// Export renders the user's aggregated shopping list in the requested
// format and clears the cart on success
func (s *ExportService) Export(ctx context.Context, userID uuid.UUID, format string) (*ExportResult, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	summary, err := s.buildSummary(ctx, userID)
	if err != nil {
		return nil, err
	}

	var result *ExportResult
	switch format {
	case FormatText, "":
		result = renderText(summary)
	case FormatPDF:
		result, err = s.renderPDF(ctx, userID, summary)
		if err != nil {
			return nil, err
		}
	default:
		return nil, shared.NewDomainError("INVALID_FORMAT", fmt.Sprintf("Unsupported export format: %s", format))
	}

	if err := s.cartRepo.Clear(ctx, userID); err != nil {
		// The list is already rendered; a stale cart only means the next
		// export repeats these recipes.
		s.logger.Error("Failed to clear cart after export",
			zap.String("user_id", userID.String()),
			zap.Error(err))
	}

	s.logger.Info("Shopping list exported",
		zap.String("user_id", userID.String()),
		zap.String("format", format),
		zap.Int("line_count", len(summary.Lines)),
		zap.Int("recipe_count", summary.RecipeCount))

	return result, nil
}

// buildSummary loads the cart's recipes and folds their ingredient
// lines into per-(name, unit) totals
func (s *ExportService) buildSummary(ctx context.Context, userID uuid.UUID) (*shoppinglist.Summary, error) {
	recipeIDs, err := s.cartRepo.FindRecipeIDs(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to load cart", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load cart")
	}
	if len(recipeIDs) == 0 {
		return nil, shared.ErrEmptyCart
	}

	recipes, err := s.recipeRepo.FindByIDs(ctx, recipeIDs)
	if err != nil {
		s.logger.Error("Failed to load cart recipes", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load cart recipes")
	}
	if len(recipes) != len(recipeIDs) {
		return nil, shared.ErrInvalidRecipe
	}

	return shoppinglist.Aggregate(recipes)
}

func renderText(summary *shoppinglist.Summary) *ExportResult {
	var b strings.Builder
	b.WriteString("Shopping list\n")
	fmt.Fprintf(&b, "Recipes: %d\n\n", summary.RecipeCount)
	for _, line := range summary.Lines {
		fmt.Fprintf(&b, "%s — %s %s\n", line.Name, formatAmount(line.Quantity.Amount()), line.Quantity.Unit())
	}

	return &ExportResult{
		Data:        []byte(b.String()),
		ContentType: "text/plain; charset=utf-8",
		Filename:    "shopping_list.txt",
	}
}

func (s *ExportService) renderPDF(ctx context.Context, userID uuid.UUID, summary *shoppinglist.Summary) (*ExportResult, error) {
	owner := ""
	if user, err := s.userRepo.FindByID(ctx, userID); err == nil {
		owner = user.Username
	}

	doc := printing.ShoppingListDocument{
		Owner:       owner,
		GeneratedAt: time.Now(),
		RecipeCount: summary.RecipeCount,
		Items:       make([]printing.ShoppingListEntry, 0, len(summary.Lines)),
	}
	for _, line := range summary.Lines {
		doc.Items = append(doc.Items, printing.ShoppingListEntry{
			Name:   line.Name,
			Unit:   line.Quantity.Unit(),
			Amount: line.Quantity.Amount(),
		})
	}

	html, err := s.templates.RenderShoppingList(doc)
	if err != nil {
		s.logger.Error("Failed to render shopping list template", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to render shopping list")
	}

	rendered, err := s.renderer.Render(ctx, &printing.RenderRequest{
		HTML:  html,
		Title: "Shopping List",
	})
	if err != nil {
		s.logger.Error("Failed to render shopping list PDF", zap.Error(err))
		return nil, shared.NewDomainError("RENDER_ERROR", "Failed to render shopping list PDF")
	}

	return &ExportResult{
		Data:        rendered.PDFData,
		ContentType: "application/pdf",
		Filename:    "shopping_list.pdf",
	}, nil
}

// formatAmount prints a decimal without trailing zeros
func formatAmount(d decimal.Decimal) string {
	s := strings.TrimRight(d.StringFixed(3), "0")
	return strings.TrimSuffix(s, ".")
}
