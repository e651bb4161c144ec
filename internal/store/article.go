package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/articled/apiserver/types"
)

const articleColumns = `id, user_id, title, slug, body, created_at, updated_at`

// ArticleRepository handles persistence for articles. It enforces no
// ownership rules; callers authorize before mutating.
type ArticleRepository struct {
	db *sql.DB
}

func NewArticleRepository(db *sql.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

func (r *ArticleRepository) Create(ctx context.Context, article types.Article) (types.Article, error) {
	now := time.Now().UTC()
	article.CreatedAt = now
	article.UpdatedAt = now

	const query = `
		INSERT INTO articles (user_id, title, slug, body, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		article.OwnerID,
		article.Title,
		article.Slug,
		article.Body,
		article.CreatedAt,
		article.UpdatedAt,
	).Scan(&article.ID); err != nil {
		return types.Article{}, mapError(err)
	}

	return article, nil
}

func (r *ArticleRepository) FindByID(ctx context.Context, id int64) (types.Article, error) {
	const query = `SELECT ` + articleColumns + ` FROM articles WHERE id = $1`
	article, err := scanArticle(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return types.Article{}, mapError(err)
	}
	return article, nil
}

// FindManyByOwner returns the owner's articles in insertion order. The
// result is empty, never nil, when the owner has none.
func (r *ArticleRepository) FindManyByOwner(ctx context.Context, ownerID int64) ([]types.Article, error) {
	const query = `SELECT ` + articleColumns + ` FROM articles WHERE user_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	articles := make([]types.Article, 0)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return articles, nil
}

// Update applies the non-nil fields of upd in a single statement and returns
// the stored record.
func (r *ArticleRepository) Update(ctx context.Context, id int64, upd types.ArticleUpdate) (types.Article, error) {
	const query = `
		UPDATE articles
		SET title = COALESCE($1, title),
			slug = COALESCE($2, slug),
			body = COALESCE($3, body),
			updated_at = $4
		WHERE id = $5`
	result, err := r.db.ExecContext(
		ctx,
		query,
		upd.Title,
		upd.Slug,
		upd.Body,
		time.Now().UTC(),
		id,
	)
	if err != nil {
		return types.Article{}, mapError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Article{}, err
	}
	if affected == 0 {
		return types.Article{}, ErrNotFound
	}

	return r.FindByID(ctx, id)
}

func (r *ArticleRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM articles WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return mapError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (types.Article, error) {
	var article types.Article
	err := row.Scan(
		&article.ID,
		&article.OwnerID,
		&article.Title,
		&article.Slug,
		&article.Body,
		&article.CreatedAt,
		&article.UpdatedAt,
	)
	return article, err
}
