package handler

import (
	"github.com/ybblog/blog/internal/api/cookie"
	"github.com/ybblog/blog/internal/core/domain"
)

// --- Requests ---

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type searchRequest struct {
	Keyword string `json:"keyword" form:"keyword"`
}

// --- Page models ---

// page is the part every rendered page shares.
type page struct {
	Page    string         `json:"page"`
	User    string         `json:"user,omitempty"`
	Flashes []cookie.Flash `json:"flashes"`
}

type articlesPage struct {
	page
	Keyword  string            `json:"keyword,omitempty"`
	Articles []*domain.Article `json:"articles"`
}

type articlePage struct {
	page
	Article *domain.Article `json:"article"`
}

type formPage struct {
	page
	ArticleID int64             `json:"article_id,omitempty"`
	Form      any               `json:"form,omitempty"`
	Errors    map[string]string `json:"errors,omitempty"`
}

// registerForm echoes the registration form back without the passwords.
type registerForm struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type articleForm struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
