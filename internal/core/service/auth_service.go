package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ybblog/blog/internal/core/domain"
	"github.com/ybblog/blog/internal/core/ports"
	"github.com/ybblog/blog/internal/core/validation"
)

// dummyHash is compared against when the username does not exist, so a
// missing user costs the same bcrypt round as a wrong password.
var dummyHash = sync.OnceValue(func() []byte {
	h, _ := bcrypt.GenerateFromPassword(passwordKey("blog-dummy-password"), bcrypt.DefaultCost)
	return h
})

// passwordKey digests the raw password before bcrypt, which only reads the
// first 72 bytes of its input. The base64 digest is 44 bytes with no NUL.
func passwordKey(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}

// AuthService implements registration, login and session lookup.
type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionStore
	validate *validation.Validator
	log      zerolog.Logger
	hashCost int
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionStore, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		validate: validation.New(),
		log:      log,
		hashCost: bcrypt.DefaultCost,
	}
}

// Register validates the form, rejects taken usernames and emails and stores
// a bcrypt hash of the password.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if err := s.validate.Validate(in); err != nil {
		return nil, err
	}

	if err := s.ensureFree(ctx, "username", in.Username, s.users.FindByUsername); err != nil {
		return nil, err
	}
	if err := s.ensureFree(ctx, "email", in.Email, s.users.FindByEmail); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword(passwordKey(in.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.users.Create(ctx, &domain.User{
		Name:         in.Name,
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("username", created.Username).Int64("user_id", created.ID).Msg("user registered")
	return created, nil
}

func (s *AuthService) ensureFree(
	ctx context.Context,
	field, value string,
	find func(context.Context, string) (*domain.User, error),
) error {
	_, err := find(ctx, value)
	switch {
	case err == nil:
		return &domain.ConflictError{Field: field}
	case errors.Is(err, domain.ErrUserNotFound):
		return nil
	default:
		return err
	}
}

// Login verifies the password and opens a session. Unknown users and wrong
// passwords both yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash(), passwordKey(password))
			s.log.Info().Str("username", username).Msg("login rejected")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), passwordKey(password)) != nil {
		s.log.Info().Str("username", username).Msg("login rejected")
		return nil, domain.ErrInvalidCredentials
	}

	sess, err := s.sessions.Create(ctx, user.Username)
	if err != nil {
		return nil, fmt.Errorf("open session: %w", err)
	}

	s.log.Info().Str("username", user.Username).Msg("user logged in")
	return sess, nil
}

// Logout drops the session behind token. Calling it without a session is fine.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

func (s *AuthService) Resolve(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrSessionNotFound
	}
	return s.sessions.Get(ctx, token)
}
