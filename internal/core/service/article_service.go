package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/ybblog/blog/internal/core/domain"
	"github.com/ybblog/blog/internal/core/ports"
	"github.com/ybblog/blog/internal/core/validation"
)

type ArticleService struct {
	repo     ports.ArticleRepository
	validate *validation.Validator
	logger   zerolog.Logger
	now      func() time.Time
}

func NewArticleService(repo ports.ArticleRepository, logger zerolog.Logger) *ArticleService {
	return &ArticleService{
		repo:     repo,
		validate: validation.New(),
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Create stores a new article owned by author, stamped with the server time.
func (s *ArticleService) Create(ctx context.Context, in ports.ArticleInput, author string) (*domain.Article, error) {
	if author == "" {
		return nil, domain.ErrForbidden
	}
	if err := s.validate.Validate(in); err != nil {
		return nil, err
	}

	article, err := s.repo.Create(ctx, &domain.Article{
		Title:     in.Title,
		Author:    author,
		Content:   in.Content,
		CreatedAt: s.now(),
	})
	if err != nil {
		s.logger.Error().Err(err).Str("author", author).Msg("failed to create article")
		return nil, err
	}

	s.logger.Info().Int64("article_id", article.ID).Str("author", author).Msg("article created")
	return article, nil
}

func (s *ArticleService) Get(ctx context.Context, id int64) (*domain.Article, error) {
	if id <= 0 {
		return nil, domain.ErrArticleNotFound
	}
	return s.repo.FindByID(ctx, id)
}

func (s *ArticleService) ListAll(ctx context.Context) ([]*domain.Article, error) {
	return s.repo.List(ctx)
}

func (s *ArticleService) ListByAuthor(ctx context.Context, author string) ([]*domain.Article, error) {
	return s.repo.ListByAuthor(ctx, author)
}

// Search matches keyword against titles only. An empty keyword never reaches
// the store.
func (s *ArticleService) Search(ctx context.Context, keyword string) ([]*domain.Article, error) {
	if keyword == "" {
		return nil, domain.ErrEmptyKeyword
	}
	return s.repo.SearchTitle(ctx, keyword)
}

// Update overwrites title and content. Ownership is verified by the
// repository in the same statement as the write.
func (s *ArticleService) Update(ctx context.Context, id int64, in ports.ArticleInput, actingUsername string) (*domain.Article, error) {
	if actingUsername == "" {
		return nil, domain.ErrForbidden
	}
	if id <= 0 {
		return nil, domain.ErrArticleNotFound
	}
	if err := s.validate.Validate(in); err != nil {
		return nil, err
	}

	article, err := s.repo.UpdateOwned(ctx, id, actingUsername, in.Title, in.Content)
	if err != nil {
		s.logMutationFailure(err, "update", id, actingUsername)
		return nil, err
	}

	s.logger.Info().Int64("article_id", id).Str("author", actingUsername).Msg("article updated")
	return article, nil
}

func (s *ArticleService) Delete(ctx context.Context, id int64, actingUsername string) error {
	if actingUsername == "" {
		return domain.ErrForbidden
	}
	if id <= 0 {
		return domain.ErrArticleNotFound
	}

	if err := s.repo.DeleteOwned(ctx, id, actingUsername); err != nil {
		s.logMutationFailure(err, "delete", id, actingUsername)
		return err
	}

	s.logger.Info().Int64("article_id", id).Str("author", actingUsername).Msg("article deleted")
	return nil
}

func (s *ArticleService) logMutationFailure(err error, op string, id int64, username string) {
	ev := s.logger.Warn()
	if !errors.Is(err, domain.ErrForbidden) && !errors.Is(err, domain.ErrArticleNotFound) {
		ev = s.logger.Error()
	}
	ev.Err(err).Str("op", op).Int64("article_id", id).Str("username", username).Msg("article mutation rejected")
}
