package service

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ybblog/blog/internal/core/domain"
)

var discardLogger = zerolog.Nop()

// ---------------------------------------------------------------------------
// In-memory user repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu        sync.Mutex
	users     map[string]*domain.User
	nextID    int64
	createErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

// Create mirrors the unique constraints of the real stores.
func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.createErr != nil {
		return nil, r.createErr
	}
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, &domain.ConflictError{Field: "username"}
		}
		if u.Email == user.Email {
			return nil, &domain.ConflictError{Field: "email"}
		}
	}
	r.nextID++
	stored := cloneUser(user)
	stored.ID = r.nextID
	r.users[stored.Username] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

// ---------------------------------------------------------------------------
// In-memory session store
// ---------------------------------------------------------------------------

type stubSessionStore struct {
	mu        sync.Mutex
	sessions  map[string]*domain.Session
	seq       int
	createErr error
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]*domain.Session)}
}

func (s *stubSessionStore) Create(_ context.Context, username string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.createErr != nil {
		return nil, s.createErr
	}
	s.seq++
	now := time.Now().UTC()
	sess := &domain.Session{
		Token:     "token-" + username + "-" + strconv.Itoa(s.seq),
		Username:  username,
		LoggedIn:  true,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}
	stored := *sess
	s.sessions[sess.Token] = &stored
	return sess, nil
}

func (s *stubSessionStore) Get(_ context.Context, token string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[token]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	clone := *sess
	return &clone, nil
}

func (s *stubSessionStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, token)
	return nil
}

func (s *stubSessionStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// ---------------------------------------------------------------------------
// In-memory article repository. The mutex makes UpdateOwned/DeleteOwned
// behave like the single conditional statements of the real stores.
// ---------------------------------------------------------------------------

type stubArticleRepo struct {
	mu          sync.Mutex
	articles    map[int64]*domain.Article
	nextID      int64
	searchCalls int
	err         error // if set, every call returns it
}

func newStubArticleRepo() *stubArticleRepo {
	return &stubArticleRepo{articles: make(map[int64]*domain.Article)}
}

func cloneArticle(a *domain.Article) *domain.Article {
	clone := *a
	return &clone
}

func (r *stubArticleRepo) sorted(keep func(*domain.Article) bool) []*domain.Article {
	out := make([]*domain.Article, 0, len(r.articles))
	for _, a := range r.articles {
		if keep(a) {
			out = append(out, cloneArticle(a))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *stubArticleRepo) Create(_ context.Context, a *domain.Article) (*domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return nil, r.err
	}
	r.nextID++
	stored := cloneArticle(a)
	stored.ID = r.nextID
	r.articles[stored.ID] = stored
	return cloneArticle(stored), nil
}

func (r *stubArticleRepo) FindByID(_ context.Context, id int64) (*domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return nil, r.err
	}
	a, ok := r.articles[id]
	if !ok {
		return nil, domain.ErrArticleNotFound
	}
	return cloneArticle(a), nil
}

func (r *stubArticleRepo) List(_ context.Context) ([]*domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return nil, r.err
	}
	return r.sorted(func(*domain.Article) bool { return true }), nil
}

func (r *stubArticleRepo) ListByAuthor(_ context.Context, author string) ([]*domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return nil, r.err
	}
	return r.sorted(func(a *domain.Article) bool { return a.Author == author }), nil
}

func (r *stubArticleRepo) SearchTitle(_ context.Context, keyword string) ([]*domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.searchCalls++
	if r.err != nil {
		return nil, r.err
	}
	return r.sorted(func(a *domain.Article) bool { return strings.Contains(a.Title, keyword) }), nil
}

func (r *stubArticleRepo) UpdateOwned(_ context.Context, id int64, author, title, content string) (*domain.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return nil, r.err
	}
	a, ok := r.articles[id]
	if !ok {
		return nil, domain.ErrArticleNotFound
	}
	if a.Author != author {
		return nil, domain.ErrForbidden
	}
	updated := cloneArticle(a)
	updated.Title = title
	updated.Content = content
	r.articles[id] = updated
	return cloneArticle(updated), nil
}

func (r *stubArticleRepo) DeleteOwned(_ context.Context, id int64, author string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.err != nil {
		return r.err
	}
	a, ok := r.articles[id]
	if !ok {
		return domain.ErrArticleNotFound
	}
	if a.Author != author {
		return domain.ErrForbidden
	}
	delete(r.articles, id)
	return nil
}

func (r *stubArticleRepo) seed(title, author, content string) *domain.Article {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	a := &domain.Article{
		ID:        r.nextID,
		Title:     title,
		Author:    author,
		Content:   content,
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	r.articles[a.ID] = a
	return cloneArticle(a)
}
