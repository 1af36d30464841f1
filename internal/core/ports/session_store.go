package ports

import (
	"context"

	"github.com/ybblog/blog/internal/core/domain"
)

// SessionStore keeps login sessions server-side, keyed by an opaque token.
type SessionStore interface {
	Create(ctx context.Context, username string) (*domain.Session, error)
	// Get returns domain.ErrSessionNotFound for unknown or expired tokens.
	Get(ctx context.Context, token string) (*domain.Session, error)
	// Delete is idempotent.
	Delete(ctx context.Context, token string) error
}

// RateLimiter counts attempts per key inside a fixed window.
type RateLimiter interface {
	// Allow records one attempt for key and reports whether it is within the limit.
	Allow(ctx context.Context, key string) (bool, error)
	Reset(ctx context.Context, key string) error
}
