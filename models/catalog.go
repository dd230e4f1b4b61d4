package models

// Availability statuses derived from an item's variant set.
const (
	AvailabilityAvailable   = "available"
	AvailabilityLimited     = "limited"
	AvailabilityUnavailable = "unavailable"
)

// Variant is one orderable option of a menu item. Its price is immutable once
// referenced by a cart line; cart lines copy the price at add time.
type Variant struct {
	ID        string  `bson:"id" json:"id"`
	Label     string  `bson:"label" json:"label"`
	Price     float64 `bson:"price" json:"price"`
	Available bool    `bson:"available" json:"available"`
}

// MenuItem is the item shape stored inside a menu document. Documents are
// polymorphic; see services.CatalogService for the flattening rules.
type MenuItem struct {
	ID          string   `bson:"id" json:"id"`
	Category    string   `bson:"category" json:"category"`
	Name        string   `bson:"name" json:"name"`
	Description string   `bson:"description" json:"description"`
	Price       *float64 `bson:"price,omitempty" json:"price,omitempty"`

	Variants    []Variant `bson:"variants" json:"variants"`
	Dietary     []string  `bson:"dietary" json:"dietary"`
	Ingredients []string  `bson:"ingredients" json:"ingredients"`
}

// Availability is the derived status of a display item, with a human note
// naming the limited/unavailable variants where relevant.
type Availability struct {
	Status string `json:"status"`
	Note   string `json:"note,omitempty"`
}

// PriceRange prefers available variants, falls back to all variants, then to
// a flat base price. A nil range means the price is unknown.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DisplayItem is a menu item after availability, price and translation
// derivation, ready for client rendering.
type DisplayItem struct {
	ID                 string       `json:"id"`
	Category           string       `json:"category"`
	Title              string       `json:"title"`
	Description        string       `json:"description"`
	Badges             []string     `json:"badges"`
	Availability       Availability `json:"availability"`
	Price              *PriceRange  `json:"price"`
	IngredientsPreview string       `json:"ingredients_preview"`
	Variants           []Variant    `json:"variants"`
}

// CategoryGroup keeps the category ordering explicit in the menu response.
type CategoryGroup struct {
	Category string        `json:"category"`
	Items    []DisplayItem `json:"items"`
}

// VariantSnapshot is the catalog data copied into a cart line at add time.
type VariantSnapshot struct {
	Name         string
	Category     string
	VariantLabel string
	UnitPrice    float64
}
