package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/alessioferri/trattoria-app/utils"
)

type translationEntry struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	CreatedAt time.Time `bson:"created_at"`
}

// TranslationRepo is the persistent translation cache. Entries are keyed by
// a content hash and never expire.
type TranslationRepo struct {
	collection *mongo.Collection
}

func NewTranslationRepo(db *mongo.Database) *TranslationRepo {
	return &TranslationRepo{collection: db.Collection("translation_cache")}
}

func (r *TranslationRepo) Get(ctx context.Context, key string) (string, bool, error) {
	var entry translationEntry
	err := r.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&entry)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return "", false, nil
		}
		return "", false, fmt.Errorf("cannot read translation cache: %w", err)
	}
	return entry.Value, true, nil
}

// PutIfAbsent inserts a cache entry. The unique _id makes the insert an
// insert-if-absent: a duplicate key from a concurrent identical request
// leaves the first writer's value in place.
func (r *TranslationRepo) PutIfAbsent(ctx context.Context, key, value string) error {
	entry := translationEntry{
		Key:       key,
		Value:     value,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := r.collection.InsertOne(ctx, entry); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			utils.InfoLogger.Printf("translation cache entry %s already present", key)
			return nil
		}
		return fmt.Errorf("cannot write translation cache: %w", err)
	}
	return nil
}
