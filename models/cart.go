package models

// CartLine is one (item, variant, quantity) entry. Name, category, label and
// unit price are snapshotted from the catalog when the line is created.
type CartLine struct {
	LineID       string  `bson:"line_id" json:"line_id"`
	MenuItemID   string  `bson:"menu_item_id" json:"menu_item_id"`
	VariantID    string  `bson:"variant_id" json:"variant_id"`
	Name         string  `bson:"name" json:"name"`
	Category     string  `bson:"category" json:"category"`
	VariantLabel string  `bson:"variant_label" json:"variant_label"`
	UnitPrice    float64 `bson:"unit_price" json:"unit_price"`
	Qty          int     `bson:"qty" json:"qty"`
}

// Cart is the single mutable cart document for one identity key.
type Cart struct {
	ID    string     `bson:"_id" json:"id"`
	Items []CartLine `bson:"items" json:"items"`
}

// CartLineView adds the derived line total for API responses.
type CartLineView struct {
	LineID       string  `json:"line_id"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	VariantLabel string  `json:"variant_label"`
	Qty          int     `json:"qty"`
	UnitPrice    float64 `json:"unit_price"`
	LineTotal    float64 `json:"line_total"`
}
