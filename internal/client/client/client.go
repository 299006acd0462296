package client

import (
	"context"

	"github.com/dmitrijs2005/newsexplorer/internal/client/models"
)

type Client interface {
	Register(ctx context.Context, reg models.Registration) (models.User, error)
	Authorize(ctx context.Context, creds models.Credentials) (string, error)
	CheckToken(ctx context.Context, token string) (models.User, error)
	GetSavedArticles(ctx context.Context, token string) ([]models.SavedArticle, error)
	SaveArticle(ctx context.Context, token string, a models.Article) (models.SavedArticle, error)
	DeleteArticle(ctx context.Context, token, id string) error
}

var _ Client = (*HTTPClient)(nil)
