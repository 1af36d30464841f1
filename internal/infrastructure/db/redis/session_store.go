package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ybblog/blog/internal/core/domain"
)

const sessionKeyPrefix = "session:"

// SessionStore keeps sessions as Redis hashes that expire with the session.
// Key format: session:<token>
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionStore creates a SessionStore whose records live for ttl.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl, now: time.Now}
}

type sessionRecord struct {
	Username  string `redis:"username"`
	CreatedAt int64  `redis:"created_at"`
	ExpiresAt int64  `redis:"expires_at"`
}

// Create stores a new logged-in session for username under a random token.
func (s *SessionStore) Create(ctx context.Context, username string) (*domain.Session, error) {
	now := s.now().UTC()
	sess := &domain.Session{
		Token:     uuid.NewString(),
		Username:  username,
		LoggedIn:  true,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	rec := sessionRecord{
		Username:  sess.Username,
		CreatedAt: sess.CreatedAt.Unix(),
		ExpiresAt: sess.ExpiresAt.Unix(),
	}
	key := s.key(sess.Token)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, rec)
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return sess, nil
}

// Get loads the session for token.
func (s *SessionStore) Get(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrSessionNotFound
	}

	res := s.client.HGetAll(ctx, s.key(token))
	if err := res.Err(); err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if len(res.Val()) == 0 {
		return nil, domain.ErrSessionNotFound
	}

	var rec sessionRecord
	if err := res.Scan(&rec); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}

	sess := &domain.Session{
		Token:     token,
		Username:  rec.Username,
		LoggedIn:  rec.Username != "",
		CreatedAt: time.Unix(rec.CreatedAt, 0).UTC(),
		ExpiresAt: time.Unix(rec.ExpiresAt, 0).UTC(),
	}
	if !sess.LoggedIn || sess.Expired(s.now()) {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

// Delete removes the session. Deleting an unknown token is not an error.
func (s *SessionStore) Delete(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.client.Del(ctx, s.key(token)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SessionStore) key(token string) string {
	return sessionKeyPrefix + token
}
