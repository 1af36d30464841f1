package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/ybblog/blog/internal/core/domain"
)

const articleColumns = `id, title, author, content, created_at`

const (
	insertArticleQuery = `INSERT INTO article (title, author, content, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`

	selectArticleByIDQuery = `SELECT ` + articleColumns + ` FROM article WHERE id = $1`

	selectArticlesQuery = `SELECT ` + articleColumns + ` FROM article ORDER BY id`

	selectArticlesByAuthorQuery = `SELECT ` + articleColumns + ` FROM article WHERE author = $1 ORDER BY id`

	// strpos keeps the match literal and case-sensitive; LIKE would treat % and _ as wildcards.
	searchArticlesQuery = `SELECT ` + articleColumns + ` FROM article WHERE strpos(title, $1) > 0 ORDER BY id`

	updateOwnedArticleQuery = `UPDATE article SET title = $1, content = $2
		WHERE id = $3 AND author = $4
		RETURNING ` + articleColumns

	deleteOwnedArticleQuery = `DELETE FROM article WHERE id = $1 AND author = $2`

	selectArticleAuthorQuery = `SELECT author FROM article WHERE id = $1`
)

type ArticleRepository struct {
	db DBTX
}

func NewArticleRepository(db DBTX) *ArticleRepository {
	return &ArticleRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (*domain.Article, error) {
	var a domain.Article
	if err := row.Scan(&a.ID, &a.Title, &a.Author, &a.Content, &a.CreatedAt); err != nil {
		return nil, err
	}
	a.CreatedAt = a.CreatedAt.UTC()
	return &a, nil
}

func (r *ArticleRepository) Create(ctx context.Context, a *domain.Article) (*domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	created := *a
	if err := r.db.QueryRowContext(ctx, insertArticleQuery, a.Title, a.Author, a.Content, a.CreatedAt).Scan(&created.ID); err != nil {
		return nil, domain.NewStoreError("insert article", err)
	}
	return &created, nil
}

func (r *ArticleRepository) FindByID(ctx context.Context, id int64) (*domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	a, err := scanArticle(r.db.QueryRowContext(ctx, selectArticleByIDQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrArticleNotFound
		}
		return nil, domain.NewStoreError("find article", err)
	}
	return a, nil
}

func (r *ArticleRepository) List(ctx context.Context) ([]*domain.Article, error) {
	return r.query(ctx, "list articles", selectArticlesQuery)
}

func (r *ArticleRepository) ListByAuthor(ctx context.Context, author string) ([]*domain.Article, error) {
	return r.query(ctx, "list articles by author", selectArticlesByAuthorQuery, author)
}

func (r *ArticleRepository) SearchTitle(ctx context.Context, keyword string) ([]*domain.Article, error) {
	return r.query(ctx, "search articles", searchArticlesQuery, keyword)
}

func (r *ArticleRepository) query(ctx context.Context, op, query string, args ...any) ([]*domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, domain.NewStoreError(op, err)
	}
	defer rows.Close()

	out := make([]*domain.Article, 0)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, domain.NewStoreError(op, err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStoreError(op, err)
	}
	return out, nil
}

// UpdateOwned rewrites title and content in one statement guarded by id and author.
func (r *ArticleRepository) UpdateOwned(ctx context.Context, id int64, author, title, content string) (*domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	a, err := scanArticle(r.db.QueryRowContext(ctx, updateOwnedArticleQuery, title, content, id, author))
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NewStoreError("update article", err)
	}
	return nil, r.classifyMiss(ctx, id)
}

// DeleteOwned removes the article in one statement guarded by id and author.
func (r *ArticleRepository) DeleteOwned(ctx context.Context, id int64, author string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, deleteOwnedArticleQuery, id, author)
	if err != nil {
		return domain.NewStoreError("delete article", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return domain.NewStoreError("delete article", err)
	}
	if n == 1 {
		return nil
	}
	return r.classifyMiss(ctx, id)
}

// classifyMiss reports why a guarded write matched no row.
func (r *ArticleRepository) classifyMiss(ctx context.Context, id int64) error {
	var author string
	err := r.db.QueryRowContext(ctx, selectArticleAuthorQuery, id).Scan(&author)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return domain.ErrArticleNotFound
	case err != nil:
		return domain.NewStoreError("classify article", err)
	default:
		return domain.ErrForbidden
	}
}
