package articles

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/newsexplorer/internal/common"
	"github.com/dmitrijs2005/newsexplorer/internal/dbx"
	"github.com/dmitrijs2005/newsexplorer/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectColumns = `id, owner, keywords, title, description, content, source, url, url_to_image, published_at, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (*models.Article, error) {
	var (
		a         models.Article
		keywords  []byte
		published sql.NullTime
	)

	err := row.Scan(&a.ID, &a.Owner, &keywords, &a.Title, &a.Description, &a.Content,
		&a.Source, &a.URL, &a.URLToImage, &published, &a.CreatedAt)
	if err != nil {
		return nil, err
	}

	if len(keywords) > 0 {
		if err := json.Unmarshal(keywords, &a.Keywords); err != nil {
			return nil, fmt.Errorf("decode keywords: %w", err)
		}
	}
	if published.Valid {
		a.PublishedAt = published.Time
	}

	return &a, nil
}

func (r *PostgresRepository) Create(ctx context.Context, article *models.Article) (*models.Article, error) {

	keywords := article.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	kw, err := json.Marshal(keywords)
	if err != nil {
		return nil, fmt.Errorf("encode keywords: %w", err)
	}

	var published sql.NullTime
	if !article.PublishedAt.IsZero() {
		published = sql.NullTime{Time: article.PublishedAt, Valid: true}
	}

	query :=
		`INSERT INTO articles (owner, keywords, title, description, content, source, url, url_to_image, published_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at
		 `

	err = r.db.QueryRowContext(ctx, query,
		article.Owner, kw, article.Title, article.Description, article.Content,
		article.Source, article.URL, article.URLToImage, published).Scan(&article.ID, &article.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	article.Keywords = keywords
	return article, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Article, error) {
	query := `SELECT ` + selectColumns + ` FROM articles WHERE id = $1`

	a, err := scanArticle(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) ListByOwner(ctx context.Context, owner string) ([]models.Article, error) {
	query := `SELECT ` + selectColumns + ` FROM articles WHERE owner = $1 ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Article, 0)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
