package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/yourorg/vidtube/services/content-service/internal/events"
	"github.com/yourorg/vidtube/services/content-service/internal/models"
	"github.com/yourorg/vidtube/services/content-service/internal/repository"
	"github.com/yourorg/vidtube/services/content-service/internal/utils"
)

// CountCache caches channel subscriber totals between toggles.
type CountCache interface {
	GetSubscriberCount(ctx context.Context, channelID string) (int64, bool, error)
	SetSubscriberCount(ctx context.Context, channelID string, n int64) error
	InvalidateSubscriberCount(ctx context.Context, channelID string) error
}

type SubscriptionService struct {
	subs   repository.SubscriptionRepository
	cache  CountCache
	events EventPublisher
	log    *zap.SugaredLogger
}

func NewSubscriptionService(subs repository.SubscriptionRepository, cache CountCache, ev EventPublisher, log *zap.SugaredLogger) *SubscriptionService {
	return &SubscriptionService{subs: subs, cache: cache, events: ev, log: log}
}

type toggleEvent struct {
	Subscriber string `json:"subscriber"`
	Channel    string `json:"channel"`
	Subscribed bool   `json:"subscribed"`
}

// Toggle flips the subscriber->channel edge: delete it when present, create
// it when absent. The unique (subscriber, channel) index turns the
// check-then-act race into a duplicate-key error, which resolves to
// "subscribed".
func (s *SubscriptionService) Toggle(ctx context.Context, subscriber, channel primitive.ObjectID) (bool, error) {
	edge, err := s.subs.FindEdge(ctx, subscriber, channel)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return false, err
	}

	var subscribed bool
	if edge != nil {
		if err := s.subs.DeleteEdge(ctx, edge.ID); err != nil {
			return false, err
		}
		subscribed = false
	} else {
		created, err := s.subs.InsertEdge(ctx, subscriber, channel)
		if err != nil {
			if mongo.IsDuplicateKeyError(err) {
				// lost the race to a concurrent toggle; the edge exists
				subscribed = true
			} else {
				return false, err
			}
		} else {
			if created.ID.IsZero() {
				return false, utils.Internal("failed to create subscription")
			}
			subscribed = true
		}
	}

	if err := s.invalidateCount(ctx, channel.Hex()); err != nil {
		s.log.Warnw("invalidate subscriber count", "channel", channel.Hex(), "err", err)
	}
	s.events.Publish(ctx, events.SubscriptionToggle, toggleEvent{
		Subscriber: subscriber.Hex(),
		Channel:    channel.Hex(),
		Subscribed: subscribed,
	})
	return subscribed, nil
}

// ChannelSubscribers lists a channel's subscribers with an independently
// counted total. List and count are separate reads; under concurrent toggles
// they may observe different snapshots.
func (s *SubscriptionService) ChannelSubscribers(ctx context.Context, channel primitive.ObjectID) (int64, []models.ChannelProfile, error) {
	subscribers, err := s.subs.ListSubscribers(ctx, channel)
	if err != nil {
		return 0, nil, err
	}
	total, err := s.subscriberCount(ctx, channel)
	if err != nil {
		return 0, nil, err
	}
	return total, subscribers, nil
}

func (s *SubscriptionService) SubscribedChannels(ctx context.Context, subscriber primitive.ObjectID) ([]models.SubscribedChannel, error) {
	return s.subs.ListSubscribedChannels(ctx, subscriber)
}

func (s *SubscriptionService) subscriberCount(ctx context.Context, channel primitive.ObjectID) (int64, error) {
	key := channel.Hex()
	if s.cache != nil {
		if n, ok, err := s.cache.GetSubscriberCount(ctx, key); err == nil && ok {
			return n, nil
		} else if err != nil {
			s.log.Warnw("subscriber count cache read", "channel", key, "err", err)
		}
	}
	total, err := s.subs.CountForChannel(ctx, channel)
	if err != nil {
		return 0, err
	}
	if s.cache != nil {
		if err := s.cache.SetSubscriberCount(ctx, key, total); err != nil {
			s.log.Warnw("subscriber count cache write", "channel", key, "err", err)
		}
	}
	return total, nil
}

func (s *SubscriptionService) invalidateCount(ctx context.Context, channelID string) error {
	if s.cache == nil {
		return nil
	}
	return s.cache.InvalidateSubscriberCount(ctx, channelID)
}
