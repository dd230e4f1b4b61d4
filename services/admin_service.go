package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/alessioferri/trattoria-app/models"
)

// ErrInvalidStatus reports a status update outside the allowed set.
var ErrInvalidStatus = errors.New("invalid order status")

// AdminOrderSummary is the read-only dashboard projection of one order.
type AdminOrderSummary struct {
	OrderID       uint                  `json:"order_id"`
	CreatedAt     time.Time             `json:"created_at"`
	Status        string                `json:"status"`
	Currency      string                `json:"currency"`
	Total         float64               `json:"total"`
	UserFirstName string                `json:"user_first_name"`
	UserLastName  string                `json:"user_last_name"`
	UserEmail     string                `json:"user_email"`
	Items         []AdminOrderItemBrief `json:"items"`
}

type AdminOrderItemBrief struct {
	Name         string `json:"name"`
	VariantLabel string `json:"variant_label"`
	Qty          int    `json:"qty"`
}

type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

// RecentOrders joins orders with their users and items, newest first.
// The limit is clamped to [1, 200].
func (s *AdminService) RecentOrders(limit int) ([]AdminOrderSummary, error) {
	if limit < 1 {
		limit = 1
	}
	if limit > 200 {
		limit = 200
	}

	var orders []models.Order
	if err := s.db.
		Preload("OrderItems").
		Joins("User").
		Order("orders.created_at DESC").
		Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("list recent orders: %w", err)
	}

	summaries := make([]AdminOrderSummary, 0, len(orders))
	for _, order := range orders {
		items := make([]AdminOrderItemBrief, 0, len(order.OrderItems))
		for _, item := range order.OrderItems {
			items = append(items, AdminOrderItemBrief{
				Name:         item.Name,
				VariantLabel: item.VariantLabel,
				Qty:          item.Qty,
			})
		}
		summaries = append(summaries, AdminOrderSummary{
			OrderID:       order.ID,
			CreatedAt:     order.CreatedAt,
			Status:        order.Status,
			Currency:      order.Currency,
			Total:         order.TotalAmount,
			UserFirstName: order.User.FirstName,
			UserLastName:  order.User.LastName,
			UserEmail:     order.User.Email,
			Items:         items,
		})
	}
	return summaries, nil
}

// OrderByID loads one order with its items and user.
func (s *AdminService) OrderByID(orderID uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("OrderItems").Joins("User").First(&order, orderID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateStatus replaces an order's status. Any allowed value may replace any
// other; there is no transition graph.
func (s *AdminService) UpdateStatus(orderID uint, status string) error {
	if !models.AllowedOrderStatuses[status] {
		return ErrInvalidStatus
	}

	result := s.db.Model(&models.Order{}).Where("id = ?", orderID).Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("update order status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
