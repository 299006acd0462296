// Package savedarticles holds the signed-in user's saved articles together
// with the keyword index derived from them.
//
// Local state changes only after the backend confirms a mutation. Clear
// starts a new epoch: results of calls begun before it are dropped and
// reported as common.ErrSuperseded.
package savedarticles

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/newsexplorer/internal/client/keywords"
	"github.com/dmitrijs2005/newsexplorer/internal/client/models"
	"github.com/dmitrijs2005/newsexplorer/internal/common"
	"github.com/dmitrijs2005/newsexplorer/internal/logging"
)

// Remote is the subset of the backend API the store needs.
type Remote interface {
	GetSavedArticles(ctx context.Context, token string) ([]models.SavedArticle, error)
	SaveArticle(ctx context.Context, token string, a models.Article) (models.SavedArticle, error)
	DeleteArticle(ctx context.Context, token, id string) error
}

type Store struct {
	remote Remote
	log    logging.Logger

	mu       sync.RWMutex
	epoch    uint64
	loads    uint64
	articles []models.SavedArticle
	index    []string
	pending  map[string]struct{}
}

func New(remote Remote, log logging.Logger) *Store {
	if log == nil {
		log = logging.Nop()
	}
	return &Store{
		remote:   remote,
		log:      log,
		articles: []models.SavedArticle{},
		index:    []string{},
		pending:  map[string]struct{}{},
	}
}

// Load replaces the collection with the backend's list, newest first, and
// merges its keywords into the index. Only the latest Load commits; an older
// one returns common.ErrSuperseded.
func (s *Store) Load(ctx context.Context, token string) error {
	s.mu.Lock()
	s.loads++
	seq, epoch := s.loads, s.epoch
	s.mu.Unlock()

	list, err := s.remote.GetSavedArticles(ctx, token)
	if err != nil {
		return fmt.Errorf("load saved articles: %w", err)
	}
	list = slices.Clone(list)
	slices.Reverse(list)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch || s.loads != seq {
		return fmt.Errorf("load saved articles: %w", common.ErrSuperseded)
	}
	s.articles = list
	s.index = keywords.Merge(s.index, keywords.Extract(list))

	s.log.Debug(ctx, "saved articles loaded", "count", len(list), "keywords", len(s.index))
	return nil
}

// Save stores a on the backend and prepends the confirmed entry.
func (s *Store) Save(ctx context.Context, token string, a models.Article) (models.SavedArticle, error) {
	if token == "" {
		return models.SavedArticle{}, common.ErrUnauthenticated
	}

	s.mu.Lock()
	if s.indexOf(a.URL) >= 0 {
		s.mu.Unlock()
		return models.SavedArticle{}, fmt.Errorf("save %q: %w", a.URL, common.ErrAlreadySaved)
	}
	if _, busy := s.pending[a.URL]; busy {
		s.mu.Unlock()
		return models.SavedArticle{}, fmt.Errorf("save %q: %w", a.URL, common.ErrAlreadySaved)
	}
	s.pending[a.URL] = struct{}{}
	epoch := s.epoch
	s.mu.Unlock()

	saved, err := s.remote.SaveArticle(ctx, token, a)

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, a.URL)
	if err != nil {
		return models.SavedArticle{}, fmt.Errorf("save %q: %w", a.URL, err)
	}
	if s.epoch != epoch {
		return saved, fmt.Errorf("save %q: %w", a.URL, common.ErrSuperseded)
	}

	s.articles = append([]models.SavedArticle{saved}, s.articles...)
	s.index = keywords.Merge(s.index, saved.Keywords)
	return saved, nil
}

// Delete removes the article saved under url. Every entry sharing the
// looked-up server id is dropped and the index is rebuilt from what remains.
func (s *Store) Delete(ctx context.Context, token, url string) error {
	if token == "" {
		return common.ErrUnauthenticated
	}

	s.mu.RLock()
	i := s.indexOf(url)
	var id string
	if i >= 0 {
		id = s.articles[i].ID
	}
	epoch := s.epoch
	s.mu.RUnlock()

	if i < 0 {
		s.log.Error(ctx, "delete requested for an article that is not saved", "url", url)
		return fmt.Errorf("delete %q: %w", url, common.ErrNotFound)
	}

	if err := s.remote.DeleteArticle(ctx, token, id); err != nil {
		return fmt.Errorf("delete %q: %w", url, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		return fmt.Errorf("delete %q: %w", url, common.ErrSuperseded)
	}
	s.articles = slices.DeleteFunc(slices.Clone(s.articles), func(a models.SavedArticle) bool {
		return a.ID == id
	})
	s.index = keywords.Extract(s.articles)
	return nil
}

// AddKeywords merges keywords from a search into the index.
func (s *Store) AddKeywords(kw []string) {
	s.mu.Lock()
	s.index = keywords.Merge(s.index, kw)
	s.mu.Unlock()
}

// Clear empties the collection and the index and starts a new epoch.
func (s *Store) Clear() {
	s.mu.Lock()
	s.epoch++
	s.articles = []models.SavedArticle{}
	s.index = []string{}
	s.mu.Unlock()
}

// Articles returns a copy of the collection, newest first.
func (s *Store) Articles() []models.SavedArticle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.articles)
}

// Keywords returns a copy of the index.
func (s *Store) Keywords() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.index)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.articles)
}

func (s *Store) IsSaved(url string) bool {
	_, ok := s.Find(url)
	return ok
}

func (s *Store) Find(url string) (models.SavedArticle, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(url); i >= 0 {
		return s.articles[i], true
	}
	return models.SavedArticle{}, false
}

// indexOf must be called with mu held.
func (s *Store) indexOf(url string) int {
	return slices.IndexFunc(s.articles, func(a models.SavedArticle) bool { return a.URL == url })
}
