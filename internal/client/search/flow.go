// Package search runs news searches on their own status channel and pages
// the results out three at a time.
package search

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/newsexplorer/internal/client/asyncop"
	"github.com/dmitrijs2005/newsexplorer/internal/client/keywords"
	"github.com/dmitrijs2005/newsexplorer/internal/client/models"
	"github.com/dmitrijs2005/newsexplorer/internal/client/newsapi"
	"github.com/dmitrijs2005/newsexplorer/internal/common"
	"github.com/dmitrijs2005/newsexplorer/internal/logging"
)

// PageStep is how many more results "show more" reveals.
const PageStep = 3

// EmptyQueryMessage is shown when a search is submitted without a keyword.
const EmptyQueryMessage = "Please enter a keyword"

// Tagger receives the keywords of every successful search.
type Tagger interface {
	TagSearch(keywords []string)
}

type Flow struct {
	searcher newsapi.Searcher
	tagger   Tagger
	op       *asyncop.Op
	log      logging.Logger
	now      func() time.Time

	mu       sync.Mutex
	seq      uint64
	query    string
	results  []models.Article
	shown    int
	searched bool
}

func New(searcher newsapi.Searcher, tagger Tagger, log logging.Logger) *Flow {
	if log == nil {
		log = logging.Nop()
	}
	return &Flow{
		searcher: searcher,
		tagger:   tagger,
		op:       asyncop.New("search", log),
		log:      log,
		now:      time.Now,
	}
}

// Op exposes the loading and error status of the search channel.
func (f *Flow) Op() *asyncop.Op { return f.op }

// Search looks up query over the default window. Every result is tagged with
// the query terms, which are also merged into the keyword index. Results of
// a search overtaken by a newer one are discarded.
func (f *Flow) Search(ctx context.Context, query string) ([]models.Article, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, fmt.Errorf("%w: %s", common.ErrValidation, EmptyQueryMessage)
	}
	terms := keywords.FromQuery(q)

	f.mu.Lock()
	f.seq++
	seq := f.seq
	f.mu.Unlock()

	arts, err := asyncop.Run(ctx, f.op, func(ctx context.Context) ([]models.Article, error) {
		found, err := f.searcher.Search(ctx, newsapi.DefaultQuery(q, f.now()))
		if err != nil {
			return nil, err
		}
		tagged := make([]models.Article, len(found))
		for i, a := range found {
			tagged[i] = a.WithKeywords(terms)
		}
		return tagged, nil
	})
	if errors.Is(err, common.ErrSuperseded) {
		return nil, err
	}

	f.mu.Lock()
	if seq != f.seq {
		f.mu.Unlock()
		return nil, errors.Join(common.ErrSuperseded, err)
	}
	f.query = q
	f.searched = true
	f.results = arts
	f.shown = min(PageStep, len(arts))
	f.mu.Unlock()

	if err != nil {
		return nil, err
	}
	if f.tagger != nil {
		f.tagger.TagSearch(terms)
	}
	f.log.Info(ctx, "search finished", "query", q, "results", len(arts))
	return slices.Clone(arts), nil
}

// Visible returns the results revealed so far.
func (f *Flow) Visible() []models.Article {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.results[:f.shown])
}

func (f *Flow) Results() []models.Article {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.results)
}

// ShowMore reveals up to PageStep more results and returns how many are visible.
func (f *Flow) ShowMore() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shown = min(f.shown+PageStep, len(f.results))
	return f.shown
}

func (f *Flow) HasMore() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.shown < len(f.results)
}

// NothingFound reports a completed, successful search with no results.
func (f *Flow) NothingFound() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.searched && len(f.results) == 0 && f.op.Err() == nil
}

func (f *Flow) Query() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.query
}

// Reset forgets the last search.
func (f *Flow) Reset() {
	f.mu.Lock()
	f.query, f.results, f.shown, f.searched = "", nil, 0, false
	f.mu.Unlock()
	f.op.ClearError()
}
