package articles

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/newsexplorer/internal/common"
	"github.com/dmitrijs2005/newsexplorer/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps articles in insertion order.
type MemoryRepository struct {
	mu    sync.RWMutex
	items []models.Article
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func clone(a models.Article) models.Article {
	a.Keywords = slices.Clone(a.Keywords)
	return a
}

func (r *MemoryRepository) Create(_ context.Context, article *models.Article) (*models.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	article.ID = uuid.NewString()
	article.CreatedAt = time.Now().UTC()
	if article.Keywords == nil {
		article.Keywords = []string{}
	}
	r.items = append(r.items, clone(*article))
	return article, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*models.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.items {
		if a.ID == id {
			c := clone(a)
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *MemoryRepository) ListByOwner(_ context.Context, owner string) ([]models.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.Article, 0)
	for _, a := range r.items {
		if a.Owner == owner {
			result = append(result, clone(a))
		}
	}
	return result, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := slices.IndexFunc(r.items, func(a models.Article) bool { return a.ID == id })
	if i < 0 {
		return common.ErrorNotFound
	}
	r.items = slices.Delete(r.items, i, i+1)
	return nil
}
