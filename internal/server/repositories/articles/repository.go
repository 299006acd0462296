// Package articles persists saved news articles. Listing returns an owner's
// articles oldest first; clients that want newest first reverse the slice.
package articles

import (
	"context"

	"github.com/dmitrijs2005/newsexplorer/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, article *models.Article) (*models.Article, error)
	GetByID(ctx context.Context, id string) (*models.Article, error)
	ListByOwner(ctx context.Context, owner string) ([]models.Article, error)
	Delete(ctx context.Context, id string) error
}
