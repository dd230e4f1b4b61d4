package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/alessioferri/trattoria-app/models"
	"github.com/alessioferri/trattoria-app/utils"
)

// ErrItemNotFound reports an add with an unresolvable (item, variant) pair.
var ErrItemNotFound = errors.New("item not found")

// CartRepo persists one cart document per identity key. Every mutation is an
// atomic single-document operation so two concurrent writers (two browser
// tabs) cannot lose each other's updates and can never create a second cart
// for the same key.
type CartRepo interface {
	// EnsureExists lazily creates an empty cart and returns the current one.
	EnsureExists(ctx context.Context, key string) (*models.Cart, error)
	// IncrementLineQty atomically bumps the quantity of the line matching
	// (menuItemID, variantID). Reports whether a line matched.
	IncrementLineQty(ctx context.Context, key, menuItemID, variantID string, qty int) (bool, error)
	// AppendLine upserts the cart and appends a new line.
	AppendLine(ctx context.Context, key string, line models.CartLine) error
	// SetLineQty sets the quantity of the line with lineID; no-op when absent.
	SetLineQty(ctx context.Context, key, lineID string, qty int) error
	// RemoveLine deletes the line with lineID; no-op when absent.
	RemoveLine(ctx context.Context, key, lineID string) error
	// Clear empties the cart.
	Clear(ctx context.Context, key string) error
}

type CartService struct {
	repo    CartRepo
	catalog *CatalogService
}

func NewCartService(repo CartRepo, catalog *CatalogService) *CartService {
	return &CartService{repo: repo, catalog: catalog}
}

func (s *CartService) GetCart(ctx context.Context, ident Identity) (*models.Cart, error) {
	cart, err := s.repo.EnsureExists(ctx, ident.Key())
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	return cart, nil
}

// AddItem snapshots catalog data into a new line, or merges into the
// existing line for the same (item, variant) pair. Quantities below 1 are
// clamped to 1.
func (s *CartService) AddItem(ctx context.Context, ident Identity, menuItemID, variantID string, qty int) error {
	if qty < 1 {
		qty = 1
	}

	snapshot, err := s.catalog.ResolveVariant(ctx, menuItemID, variantID)
	if err != nil {
		return fmt.Errorf("resolve menu item: %w", err)
	}
	if snapshot == nil {
		return ErrItemNotFound
	}

	key := ident.Key()
	if _, err := s.repo.EnsureExists(ctx, key); err != nil {
		return fmt.Errorf("load cart: %w", err)
	}

	merged, err := s.repo.IncrementLineQty(ctx, key, menuItemID, variantID, qty)
	if err != nil {
		return fmt.Errorf("merge cart line: %w", err)
	}
	if merged {
		return nil
	}

	line := models.CartLine{
		LineID:       uuid.NewString(),
		MenuItemID:   menuItemID,
		VariantID:    variantID,
		Name:         snapshot.Name,
		Category:     snapshot.Category,
		VariantLabel: snapshot.VariantLabel,
		UnitPrice:    snapshot.UnitPrice,
		Qty:          qty,
	}
	if err := s.repo.AppendLine(ctx, key, line); err != nil {
		return fmt.Errorf("append cart line: %w", err)
	}
	return nil
}

// UpdateLine replaces a line's quantity; qty <= 0 deletes the line. Unknown
// line ids are a no-op.
func (s *CartService) UpdateLine(ctx context.Context, ident Identity, lineID string, qty int) error {
	if qty <= 0 {
		return s.RemoveLine(ctx, ident, lineID)
	}
	if err := s.repo.SetLineQty(ctx, ident.Key(), lineID, qty); err != nil {
		return fmt.Errorf("update cart line: %w", err)
	}
	return nil
}

func (s *CartService) RemoveLine(ctx context.Context, ident Identity, lineID string) error {
	if err := s.repo.RemoveLine(ctx, ident.Key(), lineID); err != nil {
		return fmt.Errorf("remove cart line: %w", err)
	}
	return nil
}

func (s *CartService) Clear(ctx context.Context, ident Identity) error {
	if err := s.repo.Clear(ctx, ident.Key()); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

// Totals derives per-line and grand totals with two-decimal fixed-point
// arithmetic, rounding each line before summation.
func (s *CartService) Totals(cart *models.Cart) ([]models.CartLineView, float64) {
	views := make([]models.CartLineView, 0, len(cart.Items))
	lineTotals := make([]float64, 0, len(cart.Items))

	for _, line := range cart.Items {
		lineTotal := utils.LineTotal(line.UnitPrice, line.Qty)
		lineTotals = append(lineTotals, lineTotal)
		views = append(views, models.CartLineView{
			LineID:       line.LineID,
			Name:         line.Name,
			Category:     line.Category,
			VariantLabel: line.VariantLabel,
			Qty:          line.Qty,
			UnitPrice:    line.UnitPrice,
			LineTotal:    lineTotal,
		})
	}

	return views, utils.SumLines(lineTotals)
}
