package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/yourorg/vidtube/services/content-service/internal/models"
)

type TweetRepository interface {
	Insert(ctx context.Context, t *models.Tweet) (*models.Tweet, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Tweet, error)
	UpdateContent(ctx context.Context, id primitive.ObjectID, content string) (*models.Tweet, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	ListEnrichedByOwner(ctx context.Context, owner, viewer primitive.ObjectID) ([]models.EnrichedTweet, error)
}

type tweetRepo struct {
	col *mongo.Collection
}

func NewTweetRepo(col *mongo.Collection) TweetRepository {
	return &tweetRepo{col: col}
}

func (r *tweetRepo) Insert(ctx context.Context, t *models.Tweet) (*models.Tweet, error) {
	now := time.Now().UTC()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
	res, err := r.col.InsertOne(ctx, t)
	if err != nil {
		return nil, err
	}
	t.ID = res.InsertedID.(primitive.ObjectID)
	return t, nil
}

func (r *tweetRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Tweet, error) {
	var t models.Tweet
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tweetRepo) UpdateContent(ctx context.Context, id primitive.ObjectID, content string) (*models.Tweet, error) {
	update := bson.M{"$set": bson.M{"content": content, "updatedAt": time.Now().UTC()}}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, mongo.ErrNoDocuments
	}
	return r.GetByID(ctx, id)
}

func (r *tweetRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// userTweetsPipeline builds the enriched listing for one owner: join the
// author, join the likes, count them and flag whether the viewer is among
// them, newest first. An anonymous viewer (NilObjectID) never matches the
// likedBy set so isLiked stays false.
func userTweetsPipeline(owner, viewer primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "owner", Value: owner}}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "users"},
			{Key: "localField", Value: "owner"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "ownerInfo"},
		}}},
		bson.D{{Key: "$unwind", Value: "$ownerInfo"}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "likes"},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "tweet"},
			{Key: "as", Value: "likeInfo"},
		}}},
		bson.D{{Key: "$addFields", Value: bson.D{
			{Key: "totalLikes", Value: bson.D{{Key: "$size", Value: "$likeInfo"}}},
			{Key: "isLiked", Value: bson.D{{Key: "$in", Value: bson.A{viewer, "$likeInfo.likedBy"}}}},
		}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "content", Value: 1},
			{Key: "createdAt", Value: 1},
			{Key: "totalLikes", Value: 1},
			{Key: "isLiked", Value: 1},
			{Key: "owner", Value: bson.D{
				{Key: "username", Value: "$ownerInfo.username"},
				{Key: "avatar", Value: "$ownerInfo.avatar"},
			}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
	}
}

func (r *tweetRepo) ListEnrichedByOwner(ctx context.Context, owner, viewer primitive.ObjectID) ([]models.EnrichedTweet, error) {
	cur, err := r.col.Aggregate(ctx, userTweetsPipeline(owner, viewer))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	tweets := []models.EnrichedTweet{}
	if err := cur.All(ctx, &tweets); err != nil {
		return nil, err
	}
	return tweets, nil
}
