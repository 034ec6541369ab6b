package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yourorg/vidtube/services/content-service/internal/models"
)

type LikeRepository interface {
	FindEdge(ctx context.Context, tweet, likedBy primitive.ObjectID) (*models.Like, error)
	InsertEdge(ctx context.Context, tweet, likedBy primitive.ObjectID) (*models.Like, error)
	DeleteEdge(ctx context.Context, id primitive.ObjectID) error
	EnsureIndexes(ctx context.Context) error
}

type likeRepo struct {
	col *mongo.Collection
}

func NewLikeRepo(col *mongo.Collection) LikeRepository {
	return &likeRepo{col: col}
}

func (r *likeRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "tweet", Value: 1},
			{Key: "likedBy", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *likeRepo) FindEdge(ctx context.Context, tweet, likedBy primitive.ObjectID) (*models.Like, error) {
	var l models.Like
	filter := bson.M{"tweet": tweet, "likedBy": likedBy}
	if err := r.col.FindOne(ctx, filter).Decode(&l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *likeRepo) InsertEdge(ctx context.Context, tweet, likedBy primitive.ObjectID) (*models.Like, error) {
	l := models.Like{
		Tweet:     tweet,
		LikedBy:   likedBy,
		CreatedAt: time.Now().UTC(),
	}
	res, err := r.col.InsertOne(ctx, &l)
	if err != nil {
		return nil, err
	}
	l.ID = res.InsertedID.(primitive.ObjectID)
	return &l, nil
}

func (r *likeRepo) DeleteEdge(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
