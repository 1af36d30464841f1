package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ybblog/blog/internal/core/domain"
)

const (
	uniqueViolation = "23505"
	emailConstraint = "user_email_key"
)

const (
	insertUserQuery = `INSERT INTO "user" (name, username, email, password, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	selectUserByUsernameQuery = `SELECT id, name, username, email, password, created_at
		FROM "user" WHERE username = $1`

	selectUserByEmailQuery = `SELECT id, name, username, email, password, created_at
		FROM "user" WHERE email = $1`
)

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	created := *user
	err := r.db.QueryRowContext(ctx, insertUserQuery,
		user.Name, user.Username, user.Email, user.PasswordHash, user.CreatedAt).Scan(&created.ID)
	if err != nil {
		if ce := conflictFrom(err); ce != nil {
			return nil, ce
		}
		return nil, domain.NewStoreError("insert user", err)
	}
	return &created, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, selectUserByUsernameQuery, username)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, selectUserByEmailQuery, email)
}

func (r *UserRepository) findOne(ctx context.Context, query, arg string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var u domain.User
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Name, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.NewStoreError("find user", err)
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}

// conflictFrom maps a unique violation on the user table to a ConflictError.
func conflictFrom(err error) *domain.ConflictError {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return nil
	}
	switch pgErr.ConstraintName {
	case emailConstraint:
		return &domain.ConflictError{Field: "email"}
	default:
		return &domain.ConflictError{Field: "username"}
	}
}
