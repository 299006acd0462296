package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/newsexplorer/internal/common"
	"github.com/dmitrijs2005/newsexplorer/internal/dbx"
	"github.com/dmitrijs2005/newsexplorer/internal/server/models"
	"github.com/dmitrijs2005/newsexplorer/internal/server/repositories/repomanager"
)

// ArticleService manages each user's saved articles.
type ArticleService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewArticleService(db *sql.DB, m repomanager.RepositoryManager) *ArticleService {
	return &ArticleService{db: db, repomanager: m}
}

// List returns the owner's articles in the order they were saved.
func (s *ArticleService) List(ctx context.Context, owner string) ([]models.Article, error) {
	list, err := s.repomanager.Articles(conn(s.db)).ListByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("error listing articles: %w", err)
	}
	return list, nil
}

// Create saves article for owner. Title and URL are required; blank keywords
// are dropped.
func (s *ArticleService) Create(ctx context.Context, owner string, article models.Article) (*models.Article, error) {
	if strings.TrimSpace(article.Title) == "" || strings.TrimSpace(article.URL) == "" {
		return nil, fmt.Errorf("%w: title and url are required", common.ErrValidation)
	}

	keywords := make([]string, 0, len(article.Keywords))
	for _, k := range article.Keywords {
		if strings.TrimSpace(k) != "" {
			keywords = append(keywords, k)
		}
	}

	article.ID = ""
	article.Owner = owner
	article.Keywords = keywords

	created, err := s.repomanager.Articles(conn(s.db)).Create(ctx, &article)
	if err != nil {
		return nil, fmt.Errorf("error saving article: %w", err)
	}
	return created, nil
}

// Delete removes the article with id if owner saved it, returning the
// removed article.
func (s *ArticleService) Delete(ctx context.Context, owner, id string) (*models.Article, error) {
	var deleted *models.Article

	err := withTx(ctx, s.db, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Articles(tx)

		a, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if a.Owner != owner {
			return common.ErrorForbidden
		}
		if err := repo.Delete(ctx, id); err != nil {
			return err
		}
		deleted = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}
