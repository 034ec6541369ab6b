package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

type Client struct {
	cli *redis.Client
	ttl time.Duration
}

func NewRedis(ctx context.Context, addr, password string, db int, countTTL time.Duration) (*Client, error) {
	r := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := r.Ping(pingCtx).Err(); err != nil {
		return nil, err
	}
	return &Client{cli: r, ttl: countTTL}, nil
}

func (c *Client) Close() error { return c.cli.Close() }

func subscriberCountKey(channelID string) string {
	return "subscribers:count:" + channelID
}

// GetSubscriberCount returns the cached count; the second return is false on
// a miss.
func (c *Client) GetSubscriberCount(ctx context.Context, channelID string) (int64, bool, error) {
	s, err := c.cli.Get(ctx, subscriberCountKey(channelID)).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return n, true, nil
}

func (c *Client) SetSubscriberCount(ctx context.Context, channelID string, n int64) error {
	return c.cli.Set(ctx, subscriberCountKey(channelID), strconv.FormatInt(n, 10), c.ttl).Err()
}

// InvalidateSubscriberCount drops the cached count after a toggle so the next
// read recounts.
func (c *Client) InvalidateSubscriberCount(ctx context.Context, channelID string) error {
	return c.cli.Del(ctx, subscriberCountKey(channelID)).Err()
}
