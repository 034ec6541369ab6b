package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/yourorg/vidtube/services/content-service/internal/events"
	"github.com/yourorg/vidtube/services/content-service/internal/models"
	"github.com/yourorg/vidtube/services/content-service/internal/repository"
	"github.com/yourorg/vidtube/services/content-service/internal/utils"
)

// EventPublisher is the slice of the kafka publisher the services use.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, payload interface{})
}

type TweetService struct {
	tweets repository.TweetRepository
	users  repository.UserRepository
	events EventPublisher
}

func NewTweetService(tweets repository.TweetRepository, users repository.UserRepository, ev EventPublisher) *TweetService {
	return &TweetService{tweets: tweets, users: users, events: ev}
}

func (s *TweetService) Create(ctx context.Context, userID primitive.ObjectID, content string) (*models.Tweet, error) {
	if content == "" {
		return nil, utils.BadRequest("content is required")
	}
	// stale sessions can carry an id with no backing user
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NotFound("user not found")
		}
		return nil, err
	}
	tweet, err := s.tweets.Insert(ctx, &models.Tweet{Content: content, Owner: userID})
	if err != nil {
		return nil, err
	}
	s.events.Publish(ctx, events.TweetCreated, tweet)
	return tweet, nil
}

// GetUserTweets returns the owner's tweets enriched with author info and like
// stats for the viewer. An empty result is a valid empty list, not an error.
func (s *TweetService) GetUserTweets(ctx context.Context, userID, viewer primitive.ObjectID) ([]models.EnrichedTweet, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NotFound("user not found")
		}
		return nil, err
	}
	return s.tweets.ListEnrichedByOwner(ctx, userID, viewer)
}

func (s *TweetService) Update(ctx context.Context, tweetID, caller primitive.ObjectID, content string) (*models.Tweet, error) {
	if content == "" {
		return nil, utils.BadRequest("content is required for update")
	}
	tweet, err := s.tweets.GetByID(ctx, tweetID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NotFound("tweet not found")
		}
		return nil, err
	}
	if tweet.Owner != caller {
		return nil, utils.Forbidden("only the owner can update this tweet")
	}
	updated, err := s.tweets.UpdateContent(ctx, tweetID, content)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.NotFound("tweet not found")
		}
		return nil, err
	}
	s.events.Publish(ctx, events.TweetUpdated, updated)
	return updated, nil
}

// Delete removes the tweet. Likes referencing it are left in place; there is
// no cross-collection transaction.
func (s *TweetService) Delete(ctx context.Context, tweetID, caller primitive.ObjectID) error {
	tweet, err := s.tweets.GetByID(ctx, tweetID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return utils.NotFound("tweet not found")
		}
		return err
	}
	if tweet.Owner != caller {
		return utils.Forbidden("only the owner can delete this tweet")
	}
	if err := s.tweets.Delete(ctx, tweetID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return utils.NotFound("tweet not found")
		}
		return err
	}
	s.events.Publish(ctx, events.TweetDeleted, tweet)
	return nil
}
