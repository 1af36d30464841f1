package cookie

import (
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Flash categories.
const (
	Success = "success"
	Info    = "info"
	Warning = "warning"
	Danger  = "danger"
)

const (
	flashCookieName = "blog_flash"
	flashPendingKey = "flash.pending"
	flashHookKey    = "flash.hook"
)

// Flash is a one-shot notice shown on the next rendered page.
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Flasher carries flash notices across a redirect in a signed cookie.
type Flasher struct {
	codec  *securecookie.SecureCookie
	secure bool
	log    zerolog.Logger
}

// NewFlasher signs flash cookies with hashKey. The value is signed, not encrypted.
func NewFlasher(hashKey []byte, secure bool, log zerolog.Logger) *Flasher {
	codec := securecookie.New(hashKey, nil)
	codec.SetSerializer(securecookie.JSONEncoder{})
	return &Flasher{codec: codec, secure: secure, log: log}
}

// Add queues a notice for the next page. The cookie is written once, just
// before the response header goes out.
func (f *Flasher) Add(c echo.Context, category, message string) {
	pending, _ := c.Get(flashPendingKey).([]Flash)
	c.Set(flashPendingKey, append(pending, Flash{Category: category, Message: message}))
	f.hook(c)
}

// Pop returns the notices carried in by the request and clears the cookie.
// Invalid or tampered cookies are dropped.
func (f *Flasher) Pop(c echo.Context) []Flash {
	ck, err := c.Cookie(flashCookieName)
	if err != nil {
		return nil
	}
	f.hook(c)

	var flashes []Flash
	if err := f.codec.Decode(flashCookieName, ck.Value, &flashes); err != nil {
		return nil
	}
	return flashes
}

func (f *Flasher) hook(c echo.Context) {
	if hooked, _ := c.Get(flashHookKey).(bool); hooked {
		return
	}
	c.Set(flashHookKey, true)
	c.Response().Before(func() { f.write(c) })
}

func (f *Flasher) write(c echo.Context) {
	ck := &http.Cookie{
		Name:     flashCookieName,
		Path:     "/",
		HttpOnly: true,
		Secure:   f.secure,
		SameSite: http.SameSiteLaxMode,
	}

	pending, _ := c.Get(flashPendingKey).([]Flash)
	if len(pending) == 0 {
		ck.MaxAge = -1
		c.SetCookie(ck)
		return
	}

	value, err := f.codec.Encode(flashCookieName, pending)
	if err != nil {
		f.log.Error().Err(err).Int("pending", len(pending)).Msg("encode flash")
		return
	}
	ck.Value = value
	c.SetCookie(ck)
}
