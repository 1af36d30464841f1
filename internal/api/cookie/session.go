package cookie

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/ybblog/blog/internal/core/domain"
)

const sessionCookieName = "blog_session"

// ErrNoSessionCookie is returned by Read when the request carries no session cookie.
var ErrNoSessionCookie = errors.New("no session cookie")

type sessionClaims struct {
	SID string `json:"sid"`
	jwt.RegisteredClaims
}

// SessionCodec writes and reads the session cookie. The cookie holds an HS256
// token naming the server-side session; the session store stays authoritative.
type SessionCodec struct {
	secret []byte
	secure bool
}

func NewSessionCodec(secret []byte, secure bool) *SessionCodec {
	return &SessionCodec{secret: secret, secure: secure}
}

// Write sets the session cookie for sess.
func (s *SessionCodec) Write(c echo.Context, sess *domain.Session) error {
	claims := sessionClaims{
		SID: sess.Token,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sess.Username,
			IssuedAt:  jwt.NewNumericDate(sess.CreatedAt),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    signed,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Read verifies the session cookie and returns the session token and username
// it names.
func (s *SessionCodec) Read(c echo.Context) (token, username string, err error) {
	ck, err := c.Cookie(sessionCookieName)
	if err != nil || ck.Value == "" {
		return "", "", ErrNoSessionCookie
	}

	claims := &sessionClaims{}
	_, err = jwt.ParseWithClaims(ck.Value, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return "", "", err
	}
	if claims.SID == "" {
		return "", "", jwt.ErrTokenInvalidClaims
	}
	return claims.SID, claims.Subject, nil
}

// Clear expires the session cookie.
func (s *SessionCodec) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
