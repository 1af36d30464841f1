package ports

import (
	"context"

	"github.com/ybblog/blog/internal/core/domain"
)

// UserRepository persists user credentials.
type UserRepository interface {
	// Create inserts the user and returns it with its generated ID. A taken
	// username or email yields *domain.ConflictError.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
