package models

import "time"

// Order statuses. Any allowed value may replace any other; there is no
// transition graph.
const (
	OrderStatusCreated   = "created"
	OrderStatusPaid      = "paid"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

var AllowedOrderStatuses = map[string]bool{
	OrderStatusCreated:   true,
	OrderStatusPaid:      true,
	OrderStatusPreparing: true,
	OrderStatusReady:     true,
	OrderStatusDelivered: true,
	OrderStatusCancelled: true,
}

// Order is the immutable snapshot written at checkout. Only Status is
// mutable after creation.
type Order struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	UserID      uint        `gorm:"not null;index" json:"user_id"`
	User        User        `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Status      string      `gorm:"type:varchar(50);not null;default:'created'" json:"status"`
	Currency    string      `gorm:"type:varchar(3);not null;default:'GBP'" json:"currency"`
	TotalAmount float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"total_amount"`
	CreatedAt   time.Time   `gorm:"not null" json:"created_at"`
	OrderItems  []OrderItem `gorm:"foreignKey:OrderID" json:"order_items"`
}
