package ports

import (
	"context"

	"github.com/ybblog/blog/internal/core/domain"
)

// ArticleInput carries the editable fields of an article.
type ArticleInput struct {
	Title   string `json:"title"   form:"title"   validate:"min=5,max=100"`
	Content string `json:"content" form:"content" validate:"min=10"`
}

// ArticleService defines use-case operations for articles. Mutations take the
// acting username from the session, never from the client payload.
type ArticleService interface {
	Create(ctx context.Context, in ArticleInput, author string) (*domain.Article, error)
	Get(ctx context.Context, id int64) (*domain.Article, error)
	ListAll(ctx context.Context) ([]*domain.Article, error)
	ListByAuthor(ctx context.Context, author string) ([]*domain.Article, error)
	Search(ctx context.Context, keyword string) ([]*domain.Article, error)
	Update(ctx context.Context, id int64, in ArticleInput, actingUsername string) (*domain.Article, error)
	Delete(ctx context.Context, id int64, actingUsername string) error
}
