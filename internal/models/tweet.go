package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Tweet struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Content   string             `bson:"content" json:"content"`
	Owner     primitive.ObjectID `bson:"owner" json:"owner"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// TweetOwner is the author projection joined into an enriched tweet.
type TweetOwner struct {
	Username string `bson:"username" json:"username"`
	Avatar   string `bson:"avatar" json:"avatar"`
}

// EnrichedTweet is the typed result of the user-tweets aggregation: the tweet
// plus its author and like stats for the requesting viewer.
type EnrichedTweet struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	Content    string             `bson:"content" json:"content"`
	Owner      TweetOwner         `bson:"owner" json:"owner"`
	TotalLikes int                `bson:"totalLikes" json:"totalLikes"`
	IsLiked    bool               `bson:"isLiked" json:"isLiked"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
