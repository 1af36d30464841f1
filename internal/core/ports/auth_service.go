package ports

import (
	"context"

	"github.com/ybblog/blog/internal/core/domain"
)

// RegisterInput is the registration form.
type RegisterInput struct {
	Name     string `json:"name"     form:"name"     validate:"min=4,max=25"`
	Username string `json:"username" form:"username" validate:"min=5,max=35"`
	Email    string `json:"email"    form:"email"    validate:"email"`
	Password string `json:"password" form:"password" validate:"required,eqfield=Confirm"`
	Confirm  string `json:"confirm"  form:"confirm"`
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*domain.Session, error)
	Logout(ctx context.Context, token string) error
	Resolve(ctx context.Context, token string) (*domain.Session, error)
}
