package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ybblog/blog/internal/api/cookie"
	"github.com/ybblog/blog/internal/core/domain"
)

const sessionContextKey = "session"

// LoginNotice is shown when an anonymous request reaches a protected page.
const LoginNotice = "Please log in to view this page."

// SessionResolver looks up the live session for a token.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*domain.Session, error)
}

// SessionFrom returns the session attached to the request, or nil.
func SessionFrom(c echo.Context) *domain.Session {
	sess, _ := c.Get(sessionContextKey).(*domain.Session)
	return sess
}

// SetSession attaches sess to the request context.
func SetSession(c echo.Context, sess *domain.Session) {
	c.Set(sessionContextKey, sess)
}

// LoadSession verifies the session cookie and attaches the live session to
// the context. Invalid, expired or revoked cookies are cleared and the request
// continues anonymously.
func LoadSession(resolver SessionResolver, codec *cookie.SessionCodec, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, username, err := codec.Read(c)
			if errors.Is(err, cookie.ErrNoSessionCookie) {
				return next(c)
			}
			if err != nil {
				log.Debug().Err(err).Msg("rejected session cookie")
				codec.Clear(c)
				return next(c)
			}

			sess, err := resolver.Resolve(c.Request().Context(), token)
			switch {
			case errors.Is(err, domain.ErrSessionNotFound):
				codec.Clear(c)
				return next(c)
			case err != nil:
				return err
			}

			if sess.Username != username {
				log.Warn().Str("subject", username).Msg("session cookie subject mismatch")
				codec.Clear(c)
				return next(c)
			}

			SetSession(c, sess)
			return next(c)
		}
	}
}

// RequireSession guards protected pages. Anonymous requests never reach next;
// they are redirected to /login with a notice.
func RequireSession(flash *cookie.Flasher) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if sess := SessionFrom(c); sess != nil && sess.LoggedIn {
				return next(c)
			}
			flash.Add(c, cookie.Warning, LoginNotice)
			code := http.StatusFound
			if c.Request().Method == http.MethodPost {
				code = http.StatusSeeOther
			}
			return c.Redirect(code, "/login")
		}
	}
}
