package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	TweetCreated       = "tweet.created"
	TweetUpdated       = "tweet.updated"
	TweetDeleted       = "tweet.deleted"
	SubscriptionToggle = "subscription.toggled"
	LikeToggle         = "like.toggled"
)

// Event is the wire shape published for every domain change.
type Event struct {
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

type Publisher struct {
	writer *kafka.Writer
	log    *zap.SugaredLogger
}

func NewPublisher(brokers []string, topic string, log *zap.SugaredLogger) *Publisher {
	w := kafka.NewWriter(kafka.WriterConfig{
		Brokers:  brokers,
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	})
	return &Publisher{writer: w, log: log}
}

// Publish is fire-and-forget: a broker failure is logged, never surfaced to
// the request. A nil Publisher is a no-op so events can be disabled in dev.
func (p *Publisher) Publish(ctx context.Context, eventType string, payload interface{}) {
	if p == nil || p.writer == nil {
		return
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		p.log.Errorw("marshal event payload", "type", eventType, "err", err)
		return
	}
	body, _ := json.Marshal(Event{Type: eventType, Payload: raw, Timestamp: time.Now().UTC()})
	msg := kafka.Message{Key: []byte(eventType), Value: body, Time: time.Now()}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Errorw("publish event", "type", eventType, "err", err)
	}
}

func (p *Publisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
