package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"marketly.backend/internal/domain/entities"
)

// QueueKey is the Redis list the notification workers consume from.
const QueueKey = "notifications:queue"

// RedisNotifier enqueues notification payloads onto a Redis list.
// Delivery (email, push, webhooks) happens in a separate worker pool
// consuming the list; the engine only guarantees the enqueue.
type RedisNotifier struct {
	client *redis.Client
}

// NewRedisNotifier creates a new Redis-backed notifier
func NewRedisNotifier(client *redis.Client) *RedisNotifier {
	return &RedisNotifier{client: client}
}

// Notify serializes the payload and pushes it onto the queue
func (n *RedisNotifier) Notify(ctx context.Context, notification *entities.Notification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}
	if err := n.client.LPush(ctx, QueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to enqueue notification: %w", err)
	}
	return nil
}
