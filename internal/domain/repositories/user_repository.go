package repositories

import (
	"context"

	"github.com/google/uuid"

	"marketly.backend/internal/domain/entities"
)

// UserRepository defines the identity reads the engine needs.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	ListAdminIDs(ctx context.Context) ([]uuid.UUID, error)
}
