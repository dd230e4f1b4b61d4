package models

// OrderItem is one snapshotted cart line. Prices are copied from the cart,
// never re-derived from the live catalog, so the order records exactly what
// the shopper saw.
type OrderItem struct {
	ID      uint  `gorm:"primaryKey" json:"id"`
	OrderID uint  `gorm:"not null;index" json:"order_id"`
	Order   Order `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	MenuItemID string `gorm:"type:varchar(64);not null" json:"menu_item_id"`
	VariantID  string `gorm:"type:varchar(64);not null" json:"variant_id"`

	Name         string `gorm:"type:varchar(255);not null" json:"name"`
	VariantLabel string `gorm:"type:varchar(255);not null" json:"variant_label"`

	UnitPrice float64 `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	Qty       int     `gorm:"not null" json:"qty"`
	LineTotal float64 `gorm:"type:decimal(10,2);not null" json:"line_total"`
}
