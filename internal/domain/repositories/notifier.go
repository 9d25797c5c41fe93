package repositories

import (
	"context"

	"marketly.backend/internal/domain/entities"
)

// Notifier hands notification payloads to the async delivery queue.
// Enqueueing is fire-and-forget from the caller's perspective but
// at-least-once: implementations must surface failures, not drop them.
type Notifier interface {
	Notify(ctx context.Context, n *entities.Notification) error
}
