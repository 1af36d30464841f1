package domain

import "time"

// Session is the server-side record of a successful login. Token is the
// opaque key under which the record is stored.
type Session struct {
	Token     string    `json:"-"`
	Username  string    `json:"username"`
	LoggedIn  bool      `json:"logged_in"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is no longer valid at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
