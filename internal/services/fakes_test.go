package services

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/yourorg/vidtube/services/content-service/internal/models"
)

type fakeUserRepo struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[primitive.ObjectID]*models.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return u, nil
}

func (r *fakeUserRepo) UpdateAvatar(_ context.Context, id primitive.ObjectID, avatarURL string) error {
	u, ok := r.users[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	u.Avatar = avatarURL
	return nil
}

type fakeTweetRepo struct {
	mu       sync.Mutex
	tweets   map[primitive.ObjectID]models.Tweet
	enriched []models.EnrichedTweet

	// when set, ListEnrichedByOwner joins against these instead of
	// returning the canned enriched slice
	users *fakeUserRepo
	likes *fakeLikeRepo

	listCalls    int
	lastViewer   primitive.ObjectID
	storeTouches int
}

func newFakeTweetRepo() *fakeTweetRepo {
	return &fakeTweetRepo{tweets: map[primitive.ObjectID]models.Tweet{}}
}

func (r *fakeTweetRepo) Insert(_ context.Context, t *models.Tweet) (*models.Tweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.storeTouches++
	t.ID = primitive.NewObjectID()
	r.tweets[t.ID] = *t
	return t, nil
}

func (r *fakeTweetRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Tweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.storeTouches++
	t, ok := r.tweets[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &t, nil
}

func (r *fakeTweetRepo) UpdateContent(_ context.Context, id primitive.ObjectID, content string) (*models.Tweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.storeTouches++
	t, ok := r.tweets[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	t.Content = content
	r.tweets[id] = t
	return &t, nil
}

func (r *fakeTweetRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.storeTouches++
	if _, ok := r.tweets[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(r.tweets, id)
	return nil
}

func (r *fakeTweetRepo) ListEnrichedByOwner(_ context.Context, owner, viewer primitive.ObjectID) ([]models.EnrichedTweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	r.lastViewer = viewer
	if r.likes == nil {
		out := []models.EnrichedTweet{}
		out = append(out, r.enriched...)
		return out, nil
	}
	// in-memory analog of the aggregation: join author and like edges
	out := []models.EnrichedTweet{}
	for _, t := range r.tweets {
		if t.Owner != owner {
			continue
		}
		et := models.EnrichedTweet{
			ID:         t.ID,
			Content:    t.Content,
			TotalLikes: r.likes.countForTweet(t.ID),
			IsLiked:    r.likes.hasEdge(t.ID, viewer),
			CreatedAt:  t.CreatedAt,
		}
		if r.users != nil {
			if u, ok := r.users.users[owner]; ok {
				et.Owner = models.TweetOwner{Username: u.Username, Avatar: u.Avatar}
			}
		}
		out = append(out, et)
	}
	return out, nil
}

type edgeKey struct {
	subscriber primitive.ObjectID
	channel    primitive.ObjectID
}

type fakeSubRepo struct {
	mu          sync.Mutex
	edges       map[edgeKey]models.Subscription
	subscribers []models.ChannelProfile
	channels    []models.SubscribedChannel

	countCalls int
	forceDup   bool
}

func newFakeSubRepo() *fakeSubRepo {
	return &fakeSubRepo{edges: map[edgeKey]models.Subscription{}}
}

func (r *fakeSubRepo) FindEdge(_ context.Context, subscriber, channel primitive.ObjectID) (*models.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.edges[edgeKey{subscriber, channel}]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &s, nil
}

func (r *fakeSubRepo) InsertEdge(_ context.Context, subscriber, channel primitive.ObjectID) (*models.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.forceDup {
		return nil, mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
	}
	s := models.Subscription{ID: primitive.NewObjectID(), Subscriber: subscriber, Channel: channel}
	r.edges[edgeKey{subscriber, channel}] = s
	return &s, nil
}

func (r *fakeSubRepo) DeleteEdge(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, s := range r.edges {
		if s.ID == id {
			delete(r.edges, k)
			return nil
		}
	}
	return nil
}

func (r *fakeSubRepo) CountForChannel(_ context.Context, channel primitive.ObjectID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.countCalls++
	var n int64
	for k := range r.edges {
		if k.channel == channel {
			n++
		}
	}
	return n, nil
}

func (r *fakeSubRepo) ListSubscribers(_ context.Context, _ primitive.ObjectID) ([]models.ChannelProfile, error) {
	out := []models.ChannelProfile{}
	out = append(out, r.subscribers...)
	return out, nil
}

func (r *fakeSubRepo) ListSubscribedChannels(_ context.Context, _ primitive.ObjectID) ([]models.SubscribedChannel, error) {
	out := []models.SubscribedChannel{}
	out = append(out, r.channels...)
	return out, nil
}

func (r *fakeSubRepo) EnsureIndexes(_ context.Context) error { return nil }

type fakeLikeRepo struct {
	mu    sync.Mutex
	edges map[edgeKey]models.Like
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{edges: map[edgeKey]models.Like{}}
}

func (r *fakeLikeRepo) FindEdge(_ context.Context, tweet, likedBy primitive.ObjectID) (*models.Like, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.edges[edgeKey{likedBy, tweet}]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &l, nil
}

func (r *fakeLikeRepo) InsertEdge(_ context.Context, tweet, likedBy primitive.ObjectID) (*models.Like, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l := models.Like{ID: primitive.NewObjectID(), Tweet: tweet, LikedBy: likedBy}
	r.edges[edgeKey{likedBy, tweet}] = l
	return &l, nil
}

func (r *fakeLikeRepo) DeleteEdge(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, l := range r.edges {
		if l.ID == id {
			delete(r.edges, k)
			return nil
		}
	}
	return nil
}

func (r *fakeLikeRepo) EnsureIndexes(_ context.Context) error { return nil }

func (r *fakeLikeRepo) countForTweet(tweet primitive.ObjectID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for k := range r.edges {
		if k.channel == tweet {
			n++
		}
	}
	return n
}

func (r *fakeLikeRepo) hasEdge(tweet, user primitive.ObjectID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.edges[edgeKey{user, tweet}]
	return ok
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingPublisher) Publish(_ context.Context, eventType string, _ interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, eventType)
}

type fakeCache struct {
	mu            sync.Mutex
	counts        map[string]int64
	invalidations []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{counts: map[string]int64{}}
}

func (c *fakeCache) GetSubscriberCount(_ context.Context, channelID string) (int64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, ok := c.counts[channelID]
	return n, ok, nil
}

func (c *fakeCache) SetSubscriberCount(_ context.Context, channelID string, n int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[channelID] = n
	return nil
}

func (c *fakeCache) InvalidateSubscriberCount(_ context.Context, channelID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.counts, channelID)
	c.invalidations = append(c.invalidations, channelID)
	return nil
}
