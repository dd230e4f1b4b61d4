package models

import "time"

// UploadedImage is an entry in the admin image library.
type UploadedImage struct {
	ID         string    `bson:"_id" json:"id"`
	URL        string    `bson:"url" json:"url"`
	ObjectName string    `bson:"object_name" json:"object_name"`
	UploadedAt time.Time `bson:"uploaded_at" json:"uploaded_at"`
	Active     bool      `bson:"active" json:"active"`
}

// HomepageSlots pins up to four library images to the landing page. A single
// document with a fixed id is upserted in place.
type HomepageSlots struct {
	ID        string    `bson:"_id" json:"-"`
	Slot1     *string   `bson:"slot1" json:"slot1"`
	Slot2     *string   `bson:"slot2" json:"slot2"`
	Slot3     *string   `bson:"slot3" json:"slot3"`
	Slot4     *string   `bson:"slot4" json:"slot4"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
