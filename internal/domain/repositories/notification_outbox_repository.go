package repositories

import (
	"context"

	"github.com/google/uuid"

	"marketly.backend/internal/domain/entities"
)

// NotificationOutboxRepository persists notification payloads in the
// same transaction as the state change that produced them. A payload
// stays pending until the queue enqueue succeeds, so a crash or queue
// outage between commit and enqueue never loses it.
type NotificationOutboxRepository interface {
	Save(ctx context.Context, n *entities.Notification) error
	MarkDispatched(ctx context.Context, id uuid.UUID) error
	ListPending(ctx context.Context, limit int) ([]*entities.Notification, error)
}
