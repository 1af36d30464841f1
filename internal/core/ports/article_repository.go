package ports

import (
	"context"

	"github.com/ybblog/blog/internal/core/domain"
)

// ArticleRepository persists articles.
//
// UpdateOwned and DeleteOwned apply the ownership check and the write as a
// single conditional statement keyed by id and author. When nothing matched
// they return domain.ErrArticleNotFound if the id does not exist and
// domain.ErrForbidden if it belongs to someone else.
type ArticleRepository interface {
	Create(ctx context.Context, article *domain.Article) (*domain.Article, error)
	FindByID(ctx context.Context, id int64) (*domain.Article, error)
	List(ctx context.Context) ([]*domain.Article, error)
	ListByAuthor(ctx context.Context, author string) ([]*domain.Article, error)
	// SearchTitle returns articles whose title contains keyword (case-sensitive).
	SearchTitle(ctx context.Context, keyword string) ([]*domain.Article, error)
	UpdateOwned(ctx context.Context, id int64, author, title, content string) (*domain.Article, error)
	DeleteOwned(ctx context.Context, id int64, author string) error
}
