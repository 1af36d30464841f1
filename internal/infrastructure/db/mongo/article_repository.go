package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ybblog/blog/internal/core/domain"
)

type ArticleRepository struct {
	col *mongo.Collection
	ids *Sequence
}

func NewArticleRepository(db *mongo.Database) *ArticleRepository {
	return &ArticleRepository{col: db.Collection(collectionArticles), ids: NewSequence(db, collectionArticles)}
}

type mongoArticle struct {
	ID        int64     `bson:"_id"`
	Title     string    `bson:"title"`
	Author    string    `bson:"author"`
	Content   string    `bson:"content"`
	CreatedAt time.Time `bson:"created_at"`
}

func (ma mongoArticle) toDomain() *domain.Article {
	return &domain.Article{
		ID:        ma.ID,
		Title:     ma.Title,
		Author:    ma.Author,
		Content:   ma.Content,
		CreatedAt: ma.CreatedAt.UTC(),
	}
}

// Create inserts a new article document.
func (r *ArticleRepository) Create(ctx context.Context, a *domain.Article) (*domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.ids.Next(ctx)
	if err != nil {
		return nil, domain.NewStoreError("insert article", err)
	}

	doc := mongoArticle{ID: id, Title: a.Title, Author: a.Author, Content: a.Content, CreatedAt: a.CreatedAt}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, domain.NewStoreError("insert article", err)
	}
	return doc.toDomain(), nil
}

func (r *ArticleRepository) FindByID(ctx context.Context, id int64) (*domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var ma mongoArticle
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&ma); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrArticleNotFound
		}
		return nil, domain.NewStoreError("find article", err)
	}
	return ma.toDomain(), nil
}

func (r *ArticleRepository) List(ctx context.Context) ([]*domain.Article, error) {
	return r.find(ctx, "list articles", bson.M{})
}

func (r *ArticleRepository) ListByAuthor(ctx context.Context, author string) ([]*domain.Article, error) {
	return r.find(ctx, "list articles by author", bson.M{"author": author})
}

// SearchTitle runs a case-sensitive substring match; the keyword is quoted so
// regex metacharacters match literally.
func (r *ArticleRepository) SearchTitle(ctx context.Context, keyword string) ([]*domain.Article, error) {
	return r.find(ctx, "search articles", bson.M{"title": bson.M{"$regex": regexp.QuoteMeta(keyword)}})
}

func (r *ArticleRepository) find(ctx context.Context, op string, filter bson.M) ([]*domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, domain.NewStoreError(op, err)
	}
	defer cursor.Close(ctx)

	var docs []mongoArticle
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, domain.NewStoreError(op, err)
	}

	out := make([]*domain.Article, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// UpdateOwned sets title and content with a single FindOneAndUpdate filtered
// on both _id and author.
func (r *ArticleRepository) UpdateOwned(ctx context.Context, id int64, author, title, content string) (*domain.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id, "author": author}
	update := bson.M{"$set": bson.M{"title": title, "content": content}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var ma mongoArticle
	err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&ma)
	if err == nil {
		return ma.toDomain(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.NewStoreError("update article", err)
	}
	return nil, r.classifyMiss(ctx, id)
}

// DeleteOwned removes the article with a single DeleteOne filtered on both
// _id and author.
func (r *ArticleRepository) DeleteOwned(ctx context.Context, id int64, author string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id, "author": author})
	if err != nil {
		return domain.NewStoreError("delete article", err)
	}
	if res.DeletedCount == 1 {
		return nil
	}
	return r.classifyMiss(ctx, id)
}

func (r *ArticleRepository) classifyMiss(ctx context.Context, id int64) error {
	n, err := r.col.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return domain.NewStoreError("classify article", err)
	}
	if n == 0 {
		return domain.ErrArticleNotFound
	}
	return domain.ErrForbidden
}
