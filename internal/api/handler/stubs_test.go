package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ybblog/blog/internal/api/cookie"
	"github.com/ybblog/blog/internal/api/middleware"
	"github.com/ybblog/blog/internal/core/domain"
	"github.com/ybblog/blog/internal/core/ports"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*domain.User, error)
	loginFn    func(ctx context.Context, username, password string) (*domain.Session, error)
	logoutFn   func(ctx context.Context, token string) error
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Logout(ctx context.Context, token string) error {
	if s.logoutFn == nil {
		return nil
	}
	return s.logoutFn(ctx, token)
}

func (s *stubAuthService) Resolve(context.Context, string) (*domain.Session, error) {
	return nil, domain.ErrSessionNotFound
}

type stubArticleService struct {
	createFn       func(ctx context.Context, in ports.ArticleInput, author string) (*domain.Article, error)
	getFn          func(ctx context.Context, id int64) (*domain.Article, error)
	listAllFn      func(ctx context.Context) ([]*domain.Article, error)
	listByAuthorFn func(ctx context.Context, author string) ([]*domain.Article, error)
	searchFn       func(ctx context.Context, keyword string) ([]*domain.Article, error)
	updateFn       func(ctx context.Context, id int64, in ports.ArticleInput, acting string) (*domain.Article, error)
	deleteFn       func(ctx context.Context, id int64, acting string) error
}

func (s *stubArticleService) Create(ctx context.Context, in ports.ArticleInput, author string) (*domain.Article, error) {
	return s.createFn(ctx, in, author)
}

func (s *stubArticleService) Get(ctx context.Context, id int64) (*domain.Article, error) {
	return s.getFn(ctx, id)
}

func (s *stubArticleService) ListAll(ctx context.Context) ([]*domain.Article, error) {
	return s.listAllFn(ctx)
}

func (s *stubArticleService) ListByAuthor(ctx context.Context, author string) ([]*domain.Article, error) {
	return s.listByAuthorFn(ctx, author)
}

func (s *stubArticleService) Search(ctx context.Context, keyword string) ([]*domain.Article, error) {
	return s.searchFn(ctx, keyword)
}

func (s *stubArticleService) Update(ctx context.Context, id int64, in ports.ArticleInput, acting string) (*domain.Article, error) {
	return s.updateFn(ctx, id, in, acting)
}

func (s *stubArticleService) Delete(ctx context.Context, id int64, acting string) error {
	return s.deleteFn(ctx, id, acting)
}

func newFlasher() *cookie.Flasher {
	return cookie.NewFlasher(testSecret, false, zerolog.Nop())
}

// newRequest builds an echo context for method/target. A non-nil form is sent
// url-encoded. A non-empty user attaches a live session for that username.
func newRequest(method, target string, form url.Values, user string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if user != "" {
		now := time.Now()
		middleware.SetSession(c, &domain.Session{
			Token: "tok-" + user, Username: user, LoggedIn: true,
			CreatedAt: now, ExpiresAt: now.Add(time.Hour),
		})
	}
	return c, rec
}

func withID(c echo.Context, id string) echo.Context {
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c
}

// flashesOf decodes the flash cookie set on rec.
func flashesOf(t *testing.T, rec *httptest.ResponseRecorder) []cookie.Flash {
	t.Helper()
	var ck *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == "blog_flash" {
			ck = c
		}
	}
	if ck == nil {
		return nil
	}
	c, _ := newRequest(http.MethodGet, "/", nil, "")
	c.Request().AddCookie(ck)
	return newFlasher().Pop(c)
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v (%s)", err, rec.Body.String())
	}
	return body
}

func expectRedirect(t *testing.T, rec *httptest.ResponseRecorder, code int, location string) {
	t.Helper()
	if rec.Code != code {
		t.Fatalf("expected %d, got %d", code, rec.Code)
	}
	if got := rec.Header().Get(echo.HeaderLocation); got != location {
		t.Fatalf("expected redirect to %q, got %q", location, got)
	}
}

func expectFlash(t *testing.T, rec *httptest.ResponseRecorder, category, message string) {
	t.Helper()
	for _, f := range flashesOf(t, rec) {
		if f.Category == category && f.Message == message {
			return
		}
	}
	t.Fatalf("expected %s flash %q, got %+v", category, message, flashesOf(t, rec))
}
