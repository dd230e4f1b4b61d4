package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MenuRepo reads the raw, polymorphic menu documents. The catalog service
// owns the flattening rules; this repo just hands the documents over.
type MenuRepo struct {
	collection *mongo.Collection
}

func NewMenuRepo(db *mongo.Database) *MenuRepo {
	return &MenuRepo{collection: db.Collection("menu_items")}
}

func (r *MenuRepo) ListDocuments(ctx context.Context) ([]bson.M, error) {
	cursor, err := r.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("cannot list menu documents: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("cannot decode menu documents: %w", err)
	}
	return docs, nil
}
