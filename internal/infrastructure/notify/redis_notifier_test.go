package notify

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"marketly.backend/internal/domain/entities"
)

func newTestNotifier(t *testing.T) (*RedisNotifier, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisNotifier(client), client
}

func TestRedisNotifier_EnqueuesPayload(t *testing.T) {
	notifier, client := newTestNotifier(t)
	ctx := context.Background()

	ownerID := uuid.New()
	from := entities.MerchantStatusSubmitted
	err := notifier.Notify(ctx, &entities.Notification{
		Event:      entities.NotificationMerchantStatusChanged,
		MerchantID: uuid.New(),
		UserID:     &ownerID,
		FromStatus: &from,
		ToStatus:   entities.MerchantStatusRejected,
		Reason:     "incomplete documents",
		CreatedAt:  time.Now(),
	})
	require.NoError(t, err)

	raw, err := client.RPop(ctx, QueueKey).Result()
	require.NoError(t, err)

	var got entities.Notification
	require.NoError(t, json.Unmarshal([]byte(raw), &got))
	assert.Equal(t, entities.NotificationMerchantStatusChanged, got.Event)
	assert.Equal(t, ownerID, *got.UserID)
	assert.Equal(t, entities.MerchantStatusRejected, got.ToStatus)
	assert.Equal(t, "incomplete documents", got.Reason)
}

func TestRedisNotifier_PreservesOrder(t *testing.T) {
	notifier, client := newTestNotifier(t)
	ctx := context.Background()

	for _, reason := range []string{"first", "second"} {
		require.NoError(t, notifier.Notify(ctx, &entities.Notification{
			Event:      entities.NotificationMerchantSubmitted,
			MerchantID: uuid.New(),
			ToStatus:   entities.MerchantStatusSubmitted,
			Reason:     reason,
		}))
	}

	// workers RPOP, so the first enqueued payload comes out first
	raw, err := client.RPop(ctx, QueueKey).Result()
	require.NoError(t, err)
	var got entities.Notification
	require.NoError(t, json.Unmarshal([]byte(raw), &got))
	assert.Equal(t, "first", got.Reason)
}
