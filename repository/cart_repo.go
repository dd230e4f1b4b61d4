package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/alessioferri/trattoria-app/models"
)

// CartRepo stores one cart document per identity key. All mutations are
// single atomic updates; nothing here reads a cart and writes it back.
type CartRepo struct {
	collection *mongo.Collection
}

func NewCartRepo(db *mongo.Database) *CartRepo {
	return &CartRepo{collection: db.Collection("carts")}
}

func (r *CartRepo) EnsureExists(ctx context.Context, key string) (*models.Cart, error) {
	filter := bson.M{"_id": key}
	update := bson.M{"$setOnInsert": bson.M{"items": bson.A{}}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var cart models.Cart
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&cart); err != nil {
		return nil, fmt.Errorf("cannot upsert cart: %w", err)
	}
	return &cart, nil
}

func (r *CartRepo) IncrementLineQty(ctx context.Context, key, menuItemID, variantID string, qty int) (bool, error) {
	filter := bson.M{
		"_id": key,
		"items": bson.M{"$elemMatch": bson.M{
			"menu_item_id": menuItemID,
			"variant_id":   variantID,
		}},
	}
	update := bson.M{"$inc": bson.M{"items.$.qty": qty}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("cannot increment cart line: %w", err)
	}
	return result.ModifiedCount > 0, nil
}

func (r *CartRepo) AppendLine(ctx context.Context, key string, line models.CartLine) error {
	filter := bson.M{"_id": key}
	update := bson.M{"$push": bson.M{"items": line}}

	if _, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("cannot append cart line: %w", err)
	}
	return nil
}

func (r *CartRepo) SetLineQty(ctx context.Context, key, lineID string, qty int) error {
	filter := bson.M{"_id": key}
	update := bson.M{"$set": bson.M{"items.$[l].qty": qty}}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{bson.M{"l.line_id": lineID}},
	})

	if _, err := r.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("cannot set cart line qty: %w", err)
	}
	return nil
}

func (r *CartRepo) RemoveLine(ctx context.Context, key, lineID string) error {
	filter := bson.M{"_id": key}
	update := bson.M{"$pull": bson.M{"items": bson.M{"line_id": lineID}}}

	if _, err := r.collection.UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("cannot remove cart line: %w", err)
	}
	return nil
}

func (r *CartRepo) Clear(ctx context.Context, key string) error {
	filter := bson.M{"_id": key}
	update := bson.M{"$set": bson.M{"items": bson.A{}}}

	if _, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("cannot clear cart: %w", err)
	}
	return nil
}
