package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/alessioferri/trattoria-app/models"
)

// ImageRepo stores the admin image library metadata and the single
// homepage-slots document.
type ImageRepo struct {
	images *mongo.Collection
	slots  *mongo.Collection
}

func NewImageRepo(db *mongo.Database) *ImageRepo {
	return &ImageRepo{
		images: db.Collection("uploaded_images"),
		slots:  db.Collection("homepage_slots"),
	}
}

func (r *ImageRepo) Insert(ctx context.Context, image models.UploadedImage) error {
	if _, err := r.images.InsertOne(ctx, image); err != nil {
		return fmt.Errorf("cannot insert image: %w", err)
	}
	return nil
}

func (r *ImageRepo) ListActive(ctx context.Context, limit int) ([]models.UploadedImage, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "uploaded_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.images.Find(ctx, bson.M{"active": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("cannot list images: %w", err)
	}
	defer cursor.Close(ctx)

	var images []models.UploadedImage
	if err := cursor.All(ctx, &images); err != nil {
		return nil, fmt.Errorf("cannot decode images: %w", err)
	}
	return images, nil
}

func (r *ImageRepo) Find(ctx context.Context, id string) (*models.UploadedImage, error) {
	var image models.UploadedImage
	err := r.images.FindOne(ctx, bson.M{"_id": id}).Decode(&image)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot get image: %w", err)
	}
	return &image, nil
}

func (r *ImageRepo) SetActive(ctx context.Context, id string, active bool) error {
	update := bson.M{"$set": bson.M{"active": active}}
	if _, err := r.images.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		return fmt.Errorf("cannot update image: %w", err)
	}
	return nil
}

func (r *ImageRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.images.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("cannot delete image: %w", err)
	}
	return nil
}

func (r *ImageRepo) GetSlots(ctx context.Context) (*models.HomepageSlots, error) {
	var slots models.HomepageSlots
	err := r.slots.FindOne(ctx, bson.M{"_id": "homepage"}).Decode(&slots)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot get homepage slots: %w", err)
	}
	return &slots, nil
}

func (r *ImageRepo) SaveSlots(ctx context.Context, slots models.HomepageSlots) error {
	filter := bson.M{"_id": "homepage"}
	update := bson.M{"$set": bson.M{
		"slot1":      slots.Slot1,
		"slot2":      slots.Slot2,
		"slot3":      slots.Slot3,
		"slot4":      slots.Slot4,
		"updated_at": slots.UpdatedAt,
	}}

	if _, err := r.slots.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		return fmt.Errorf("cannot save homepage slots: %w", err)
	}
	return nil
}
