package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/alessioferri/trattoria-app/models"
)

// MenuSource lists the raw menu documents. Documents are polymorphic: one
// document may itself be an item, or may bundle several named item lists.
type MenuSource interface {
	ListDocuments(ctx context.Context) ([]bson.M, error)
}

// preferredCategoryOrder fixes the menu's category ordering; categories not
// in this list sort after it, in order of first appearance.
var preferredCategoryOrder = []string{
	"Starters",
	"Mains",
	"Pizza",
	"Sides",
	"Desserts",
	"Drinks",
	"Wine",
}

const (
	sharedFieldPrefix = "shared"
	addOnsFieldSuffix = "_addons"
	// itemListsField lets a document declare which of its fields hold item
	// arrays, replacing the structural guessing for tagged documents.
	itemListsField = "item_lists"
)

type CatalogService struct {
	source    MenuSource
	translate *TranslateService
}

func NewCatalogService(source MenuSource, translate *TranslateService) *CatalogService {
	return &CatalogService{source: source, translate: translate}
}

// ListDisplayItems returns the menu grouped by category, in display order,
// with availability, price range and (for non-English targets) translation
// applied. Translation failures propagate to the caller.
func (s *CatalogService) ListDisplayItems(ctx context.Context, targetLang string) ([]models.CategoryGroup, error) {
	items, err := s.flattenedItems(ctx)
	if err != nil {
		return nil, err
	}

	grouped := map[string][]models.DisplayItem{}
	var categoryOrder []string
	for _, item := range items {
		if _, seen := grouped[item.Category]; !seen {
			categoryOrder = append(categoryOrder, item.Category)
		}
		grouped[item.Category] = append(grouped[item.Category], buildDisplayItem(item))
	}

	sortCategories(categoryOrder)

	groups := make([]models.CategoryGroup, 0, len(categoryOrder))
	for _, category := range categoryOrder {
		displayItems := grouped[category]
		sort.SliceStable(displayItems, func(i, j int) bool {
			return strings.ToLower(displayItems[i].Title) < strings.ToLower(displayItems[j].Title)
		})
		groups = append(groups, models.CategoryGroup{Category: category, Items: displayItems})
	}

	if err := s.translateGroups(ctx, groups, targetLang); err != nil {
		return nil, err
	}

	return groups, nil
}

// ResolveVariant looks up the snapshot data the cart copies at add time.
// Returns nil when the (item, variant) pair does not exist.
func (s *CatalogService) ResolveVariant(ctx context.Context, menuItemID, variantID string) (*models.VariantSnapshot, error) {
	items, err := s.flattenedItems(ctx)
	if err != nil {
		return nil, err
	}

	for _, item := range items {
		if item.ID != menuItemID {
			continue
		}
		for _, v := range item.Variants {
			if v.ID == variantID {
				return &models.VariantSnapshot{
					Name:         item.Name,
					Category:     item.Category,
					VariantLabel: v.Label,
					UnitPrice:    v.Price,
				}, nil
			}
		}
	}
	return nil, nil
}

func (s *CatalogService) flattenedItems(ctx context.Context) ([]models.MenuItem, error) {
	docs, err := s.source.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list menu documents: %w", err)
	}

	var items []models.MenuItem
	for _, doc := range docs {
		items = append(items, flattenDocument(doc)...)
	}
	return items, nil
}

// flattenDocument turns one stored document into zero or more menu items.
// A document tagged with item_lists declares its item-array fields
// explicitly; untagged documents keep the legacy structural rules: the
// document may itself be item-shaped, otherwise every field holding a list
// of item-shaped objects is flattened, except shared-component fields
// (shared prefix) and add-on fields (_addons suffix).
func flattenDocument(doc bson.M) []models.MenuItem {
	if declared, ok := doc[itemListsField]; ok {
		var items []models.MenuItem
		for _, fieldName := range toStringSlice(declared) {
			items = append(items, itemsFromList(doc[fieldName])...)
		}
		return items
	}

	if isItemShaped(doc) {
		if item, ok := decodeMenuItem(doc); ok {
			return []models.MenuItem{item}
		}
		return nil
	}

	var items []models.MenuItem
	for field, value := range doc {
		if strings.HasPrefix(field, sharedFieldPrefix) || strings.HasSuffix(field, addOnsFieldSuffix) {
			continue
		}
		items = append(items, itemsFromList(value)...)
	}
	return items
}

func itemsFromList(value interface{}) []models.MenuItem {
	list, ok := toList(value)
	if !ok || len(list) == 0 {
		return nil
	}

	var items []models.MenuItem
	for _, element := range list {
		raw, ok := toDoc(element)
		if !ok || !isItemShaped(raw) {
			return nil
		}
		item, ok := decodeMenuItem(raw)
		if !ok {
			return nil
		}
		items = append(items, item)
	}
	return items
}

// isItemShaped: has a name and at least one of category/variants.
func isItemShaped(doc bson.M) bool {
	if _, ok := doc["name"]; !ok {
		return false
	}
	_, hasCategory := doc["category"]
	_, hasVariants := doc["variants"]
	return hasCategory || hasVariants
}

func decodeMenuItem(raw bson.M) (models.MenuItem, bool) {
	var item models.MenuItem
	data, err := bson.Marshal(raw)
	if err != nil {
		return item, false
	}
	if err := bson.Unmarshal(data, &item); err != nil {
		return item, false
	}
	return item, true
}

func toList(value interface{}) ([]interface{}, bool) {
	switch v := value.(type) {
	case []interface{}:
		return v, true
	case bson.A:
		return v, true
	default:
		return nil, false
	}
}

func toDoc(value interface{}) (bson.M, bool) {
	switch v := value.(type) {
	case bson.M:
		return v, true
	case map[string]interface{}:
		return v, true
	case bson.D:
		return v.Map(), true
	default:
		return nil, false
	}
}

func toStringSlice(value interface{}) []string {
	list, ok := toList(value)
	if !ok {
		return nil
	}
	var out []string
	for _, element := range list {
		if s, ok := element.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func buildDisplayItem(item models.MenuItem) models.DisplayItem {
	availability := deriveAvailability(item.Variants)

	display := models.DisplayItem{
		ID:                 item.ID,
		Category:           item.Category,
		Title:              item.Name,
		Description:        item.Description,
		Badges:             item.Dietary,
		Availability:       availability,
		Price:              derivePriceRange(item),
		IngredientsPreview: ingredientsPreview(item.Ingredients),
		Variants:           item.Variants,
	}
	return display
}

func deriveAvailability(variants []models.Variant) models.Availability {
	if len(variants) == 0 {
		return models.Availability{Status: models.AvailabilityAvailable}
	}

	var available, unavailable []models.Variant
	for _, v := range variants {
		if v.Available {
			available = append(available, v)
		} else {
			unavailable = append(unavailable, v)
		}
	}

	switch {
	case len(available) == 0:
		return models.Availability{Status: models.AvailabilityUnavailable}
	case len(unavailable) == 0:
		return models.Availability{Status: models.AvailabilityAvailable}
	case len(available) == 1:
		return models.Availability{
			Status: models.AvailabilityLimited,
			Note:   fmt.Sprintf("Only %s available; %s unavailable", available[0].Label, joinLabels(unavailable)),
		}
	default:
		return models.Availability{
			Status: models.AvailabilityLimited,
			Note:   "Unavailable: " + joinLabels(unavailable),
		}
	}
}

func joinLabels(variants []models.Variant) string {
	labels := make([]string, 0, len(variants))
	for _, v := range variants {
		labels = append(labels, v.Label)
	}
	return strings.Join(labels, ", ")
}

// derivePriceRange prefers available variants, falls back to all variants,
// then to a flat base price. Nil means the price is unknown.
func derivePriceRange(item models.MenuItem) *models.PriceRange {
	pool := make([]models.Variant, 0, len(item.Variants))
	for _, v := range item.Variants {
		if v.Available {
			pool = append(pool, v)
		}
	}
	if len(pool) == 0 {
		pool = item.Variants
	}

	if len(pool) > 0 {
		r := &models.PriceRange{Min: pool[0].Price, Max: pool[0].Price}
		for _, v := range pool[1:] {
			if v.Price < r.Min {
				r.Min = v.Price
			}
			if v.Price > r.Max {
				r.Max = v.Price
			}
		}
		return r
	}

	if item.Price != nil {
		return &models.PriceRange{Min: *item.Price, Max: *item.Price}
	}
	return nil
}

func ingredientsPreview(ingredients []string) string {
	if len(ingredients) > 3 {
		ingredients = ingredients[:3]
	}
	return strings.Join(ingredients, ", ")
}

func sortCategories(categories []string) {
	rank := make(map[string]int, len(preferredCategoryOrder))
	for i, name := range preferredCategoryOrder {
		rank[name] = i
	}
	sort.SliceStable(categories, func(i, j int) bool {
		ri, iKnown := rank[categories[i]]
		rj, jKnown := rank[categories[j]]
		switch {
		case iKnown && jKnown:
			return ri < rj
		case iKnown:
			return true
		case jKnown:
			return false
		default:
			return false
		}
	})
}

// translateGroups batches every title, description and variant label into one
// TranslateBatch call and splices the results back by position.
func (s *CatalogService) translateGroups(ctx context.Context, groups []models.CategoryGroup, targetLang string) error {
	if englishTargets[strings.ToLower(targetLang)] {
		return nil
	}

	var texts []string
	for _, group := range groups {
		for _, item := range group.Items {
			texts = append(texts, item.Title, item.Description)
			for _, v := range item.Variants {
				texts = append(texts, v.Label)
			}
		}
	}
	if len(texts) == 0 {
		return nil
	}

	translated, err := s.translate.TranslateBatch(ctx, texts, targetLang, "en")
	if err != nil {
		return fmt.Errorf("translate menu: %w", err)
	}

	pos := 0
	for gi := range groups {
		for ii := range groups[gi].Items {
			item := &groups[gi].Items[ii]
			item.Title = translated[pos]
			item.Description = translated[pos+1]
			pos += 2
			for vi := range item.Variants {
				item.Variants[vi].Label = translated[pos]
				pos++
			}
		}
	}
	return nil
}
