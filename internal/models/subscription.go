package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Subscription is a directed edge: subscriber follows channel. At most one
// edge may exist per (subscriber, channel) pair, enforced by a unique
// compound index.
type Subscription struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Subscriber primitive.ObjectID `bson:"subscriber" json:"subscriber"`
	Channel    primitive.ObjectID `bson:"channel" json:"channel"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// SubscribedChannel is a channel the user follows, enriched with the
// channel's most recently inserted video.
type SubscribedChannel struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Username    string             `bson:"username" json:"username"`
	FullName    string             `bson:"fullName" json:"fullName"`
	Avatar      string             `bson:"avatar" json:"avatar"`
	LatestVideo *LatestVideo       `bson:"latestVideo,omitempty" json:"latestVideo,omitempty"`
}
