package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MediaFile is a stored asset reference (URL plus the storage key used to
// delete or re-sign it).
type MediaFile struct {
	URL string `bson:"url" json:"url"`
	Key string `bson:"key,omitempty" json:"key,omitempty"`
}

type Video struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Owner       primitive.ObjectID `bson:"owner" json:"owner"`
	VideoFile   MediaFile          `bson:"videoFile" json:"videoFile"`
	Thumbnail   MediaFile          `bson:"thumbnail" json:"thumbnail"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// LatestVideo is the projection of a channel's most recent video embedded in
// the subscribed-channels listing.
type LatestVideo struct {
	VideoFile   MediaFile `bson:"videoFile" json:"videoFile"`
	Thumbnail   MediaFile `bson:"thumbnail" json:"thumbnail"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
}
