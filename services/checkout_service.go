package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/alessioferri/trattoria-app/models"
	"github.com/alessioferri/trattoria-app/utils"
)

var (
	// ErrEmptyCart reports a checkout attempt with zero cart lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrLoginRequired reports a checkout without an authenticated identity.
	ErrLoginRequired = errors.New("authentication required")
)

// CheckoutService converts a cart into an immutable order snapshot. The
// transaction commit is the atomic visibility point; confirmation delivery
// and cart clearing happen after it, outside the transaction.
type CheckoutService struct {
	db       *gorm.DB
	carts    *CartService
	notifier *NotifyService
	currency string
}

func NewCheckoutService(db *gorm.DB, carts *CartService, notifier *NotifyService, currency string) *CheckoutService {
	return &CheckoutService{db: db, carts: carts, notifier: notifier, currency: currency}
}

// Checkout snapshots the identity's cart into an order and its items, all in
// one transaction, then fires the confirmation and clears the cart.
// Per-line totals are rounded to two decimals before summation so the stored
// figures match what the shopper saw. No double-submit deduplication is
// performed; each invocation commits at most one order.
func (s *CheckoutService) Checkout(ctx context.Context, ident Identity) (uint, error) {
	if !ident.Authenticated() {
		return 0, ErrLoginRequired
	}

	cart, err := s.carts.GetCart(ctx, ident)
	if err != nil {
		return 0, err
	}
	if len(cart.Items) == 0 {
		return 0, ErrEmptyCart
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, *ident.UserID).Error; err != nil {
		return 0, fmt.Errorf("load user: %w", err)
	}

	orderItems := make([]models.OrderItem, 0, len(cart.Items))
	lineTotals := make([]float64, 0, len(cart.Items))
	for _, line := range cart.Items {
		lineTotal := utils.LineTotal(line.UnitPrice, line.Qty)
		lineTotals = append(lineTotals, lineTotal)
		orderItems = append(orderItems, models.OrderItem{
			MenuItemID:   line.MenuItemID,
			VariantID:    line.VariantID,
			Name:         line.Name,
			VariantLabel: line.VariantLabel,
			UnitPrice:    line.UnitPrice,
			Qty:          line.Qty,
			LineTotal:    lineTotal,
		})
	}

	order := models.Order{
		UserID:      user.ID,
		Status:      models.OrderStatusCreated,
		Currency:    s.currency,
		TotalAmount: utils.SumLines(lineTotals),
		CreatedAt:   time.Now().UTC(),
		OrderItems:  orderItems,
	}

	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&order).Error
	}); err != nil {
		return 0, fmt.Errorf("create order: %w", err)
	}

	// The order is committed; everything below is cleanup and must not
	// fail the checkout.
	s.sendConfirmation(order, user.Email)

	if err := s.carts.Clear(ctx, ident); err != nil {
		utils.ErrorLogger.Printf("clear cart after checkout of order %d: %v", order.ID, err)
	}

	return order.ID, nil
}

// BuildConfirmation assembles the sink payload for an order.
func BuildConfirmation(order models.Order, email string) OrderConfirmation {
	items := make([]ConfirmationItem, 0, len(order.OrderItems))
	for _, item := range order.OrderItems {
		items = append(items, ConfirmationItem{
			Name:         item.Name,
			VariantLabel: item.VariantLabel,
			Qty:          item.Qty,
			UnitPrice:    item.UnitPrice,
			LineTotal:    item.LineTotal,
		})
	}
	return OrderConfirmation{
		OrderID:     order.ID,
		UserEmail:   email,
		TotalAmount: order.TotalAmount,
		Currency:    order.Currency,
		Items:       items,
	}
}

// sendConfirmation delivers the confirmation in the background. Any failure
// (missing config, network error, non-2xx) is logged and swallowed.
func (s *CheckoutService) sendConfirmation(order models.Order, email string) {
	payload := BuildConfirmation(order, email)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.notifier.SendOrderConfirmation(ctx, payload); err != nil {
			utils.ErrorLogger.Printf("order %d confirmation not delivered: %v", order.ID, err)
		}
	}()
}
