package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const publishTimeout = 2 * time.Second

// envelope is what travels over the shared Redis channel
type envelope struct {
	UserIDs []string        `json:"user_ids"`
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
	SentAt  time.Time       `json:"sent_at"`
}

// RedisBridge fans pushes out through Redis Pub/Sub so that every API
// instance replays them into its own Hub. It implements service.Pusher.
type RedisBridge struct {
	client  *redis.Client
	channel string
	hub     *Hub
	logger  *slog.Logger
	ready   chan struct{}
	once    sync.Once
}

func NewRedisBridge(client *redis.Client, channel string, hub *Hub, logger *slog.Logger) *RedisBridge {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisBridge{
		client:  client,
		channel: channel,
		hub:     hub,
		logger:  logger,
		ready:   make(chan struct{}),
	}
}

func (b *RedisBridge) Push(ctx context.Context, userID, event string, payload any) error {
	return b.PushMany(ctx, []string{userID}, event, payload)
}

// PushMany publishes one envelope for all users
func (b *RedisBridge) PushMany(ctx context.Context, userIDs []string, event string, payload any) error {
	if len(userIDs) == 0 {
		return nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	body, err := json.Marshal(envelope{
		UserIDs: userIDs,
		Event:   event,
		Payload: raw,
		SentAt:  time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode envelope: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := b.client.Publish(ctx, b.channel, body).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", b.channel, err)
	}
	return nil
}

// Ready is closed once the subscription is confirmed
func (b *RedisBridge) Ready() <-chan struct{} {
	return b.ready
}

// Run subscribes to the channel and replays every envelope into the local hub
// until ctx is cancelled. It may be called again after it returns, for example
// to resubscribe after the connection dropped.
func (b *RedisBridge) Run(ctx context.Context) error {
	pubsub := b.client.Subscribe(ctx, b.channel)
	defer pubsub.Close()

	// make sure the subscription exists before reading
	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe to %s: %w", b.channel, err)
	}
	b.once.Do(func() { close(b.ready) })
	b.logger.Info("redis_bridge_subscribed", "channel", b.channel)

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			b.logger.Info("redis_bridge_stopped", "channel", b.channel)
			return nil
		case msg, ok := <-ch:
			if !ok {
				return errors.New("redis subscription closed")
			}
			b.replay(msg.Payload)
		}
	}
}

func (b *RedisBridge) replay(body string) {
	var env envelope
	if err := json.Unmarshal([]byte(body), &env); err != nil {
		b.logger.Error("redis_bridge_decode_failed", "channel", b.channel, "error", err)
		return
	}
	if len(env.UserIDs) == 0 || env.Event == "" {
		return
	}

	frame, err := encodeRawFrame(env.Event, env.Payload, env.SentAt)
	if err != nil {
		b.logger.Error("redis_bridge_encode_failed", "error", err)
		return
	}
	b.hub.Deliver(env.UserIDs, frame)
}
