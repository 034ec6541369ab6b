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

type SubscriptionRepository interface {
	FindEdge(ctx context.Context, subscriber, channel primitive.ObjectID) (*models.Subscription, error)
	InsertEdge(ctx context.Context, subscriber, channel primitive.ObjectID) (*models.Subscription, error)
	DeleteEdge(ctx context.Context, id primitive.ObjectID) error
	CountForChannel(ctx context.Context, channel primitive.ObjectID) (int64, error)
	ListSubscribers(ctx context.Context, channel primitive.ObjectID) ([]models.ChannelProfile, error)
	ListSubscribedChannels(ctx context.Context, subscriber primitive.ObjectID) ([]models.SubscribedChannel, error)
	EnsureIndexes(ctx context.Context) error
}

type subscriptionRepo struct {
	col *mongo.Collection
}

func NewSubscriptionRepo(col *mongo.Collection) SubscriptionRepository {
	return &subscriptionRepo{col: col}
}

// EnsureIndexes creates the unique compound index that makes the toggle race
// safe: two concurrent inserts for the same edge cannot both succeed.
func (r *subscriptionRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "subscriber", Value: 1},
			{Key: "channel", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *subscriptionRepo) FindEdge(ctx context.Context, subscriber, channel primitive.ObjectID) (*models.Subscription, error) {
	var s models.Subscription
	filter := bson.M{"subscriber": subscriber, "channel": channel}
	if err := r.col.FindOne(ctx, filter).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *subscriptionRepo) InsertEdge(ctx context.Context, subscriber, channel primitive.ObjectID) (*models.Subscription, error) {
	s := models.Subscription{
		Subscriber: subscriber,
		Channel:    channel,
		CreatedAt:  time.Now().UTC(),
	}
	res, err := r.col.InsertOne(ctx, &s)
	if err != nil {
		return nil, err
	}
	s.ID = res.InsertedID.(primitive.ObjectID)
	return &s, nil
}

func (r *subscriptionRepo) DeleteEdge(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func (r *subscriptionRepo) CountForChannel(ctx context.Context, channel primitive.ObjectID) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"channel": channel})
}

func subscribersPipeline(channel primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "channel", Value: channel}}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "users"},
			{Key: "localField", Value: "subscriber"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "subscriber"},
		}}},
		bson.D{{Key: "$unwind", Value: "$subscriber"}},
		bson.D{{Key: "$replaceRoot", Value: bson.D{{Key: "newRoot", Value: "$subscriber"}}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 1},
			{Key: "username", Value: 1},
			{Key: "fullName", Value: 1},
			{Key: "avatar", Value: 1},
		}}},
	}
}

func (r *subscriptionRepo) ListSubscribers(ctx context.Context, channel primitive.ObjectID) ([]models.ChannelProfile, error) {
	cur, err := r.col.Aggregate(ctx, subscribersPipeline(channel))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	subscribers := []models.ChannelProfile{}
	if err := cur.All(ctx, &subscribers); err != nil {
		return nil, err
	}
	return subscribers, nil
}

// subscribedChannelsPipeline joins each followed channel and, inside the
// lookup, joins all of the channel's videos and takes $last as latestVideo.
// $last is insertion order: equal timestamps resolve by storage order, not
// by createdAt comparison.
func subscribedChannelsPipeline(subscriber primitive.ObjectID) mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.D{{Key: "subscriber", Value: subscriber}}}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "users"},
			{Key: "localField", Value: "channel"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "channel"},
			{Key: "pipeline", Value: mongo.Pipeline{
				bson.D{{Key: "$lookup", Value: bson.D{
					{Key: "from", Value: "videos"},
					{Key: "localField", Value: "_id"},
					{Key: "foreignField", Value: "owner"},
					{Key: "as", Value: "allVideos"},
				}}},
				bson.D{{Key: "$addFields", Value: bson.D{
					{Key: "latestVideo", Value: bson.D{{Key: "$last", Value: "$allVideos"}}},
				}}},
			}},
		}}},
		bson.D{{Key: "$unwind", Value: "$channel"}},
		bson.D{{Key: "$replaceRoot", Value: bson.D{{Key: "newRoot", Value: "$channel"}}}},
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 1},
			{Key: "username", Value: 1},
			{Key: "fullName", Value: 1},
			{Key: "avatar", Value: 1},
			{Key: "latestVideo", Value: bson.D{
				{Key: "videoFile", Value: 1},
				{Key: "thumbnail", Value: 1},
				{Key: "title", Value: 1},
				{Key: "description", Value: 1},
			}},
		}}},
	}
}

func (r *subscriptionRepo) ListSubscribedChannels(ctx context.Context, subscriber primitive.ObjectID) ([]models.SubscribedChannel, error) {
	cur, err := r.col.Aggregate(ctx, subscribedChannelsPipeline(subscriber))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	channels := []models.SubscribedChannel{}
	if err := cur.All(ctx, &channels); err != nil {
		return nil, err
	}
	return channels, nil
}
