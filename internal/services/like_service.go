package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/yourorg/vidtube/services/content-service/internal/events"
	"github.com/yourorg/vidtube/services/content-service/internal/repository"
	"github.com/yourorg/vidtube/services/content-service/internal/utils"
)

type LikeService struct {
	likes  repository.LikeRepository
	tweets repository.TweetRepository
	events EventPublisher
}

func NewLikeService(likes repository.LikeRepository, tweets repository.TweetRepository, ev EventPublisher) *LikeService {
	return &LikeService{likes: likes, tweets: tweets, events: ev}
}

type likeEvent struct {
	Tweet   string `json:"tweet"`
	LikedBy string `json:"likedBy"`
	Liked   bool   `json:"liked"`
}

// ToggleTweetLike flips the user's like on a tweet, same toggle shape as
// subscriptions.
func (s *LikeService) ToggleTweetLike(ctx context.Context, tweetID, user primitive.ObjectID) (bool, error) {
	if _, err := s.tweets.GetByID(ctx, tweetID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, utils.NotFound("tweet not found")
		}
		return false, err
	}

	var liked bool
	edge, err := s.likes.FindEdge(ctx, tweetID, user)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return false, err
	}
	if edge != nil {
		if err := s.likes.DeleteEdge(ctx, edge.ID); err != nil {
			return false, err
		}
		liked = false
	} else {
		if _, err := s.likes.InsertEdge(ctx, tweetID, user); err != nil {
			if !mongo.IsDuplicateKeyError(err) {
				return false, err
			}
		}
		liked = true
	}

	s.events.Publish(ctx, events.LikeToggle, likeEvent{
		Tweet:   tweetID.Hex(),
		LikedBy: user.Hex(),
		Liked:   liked,
	})
	return liked, nil
}
