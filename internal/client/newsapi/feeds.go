package newsapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/newsexplorer/internal/client/models"
	"github.com/dmitrijs2005/newsexplorer/internal/common"
	"github.com/dmitrijs2005/newsexplorer/internal/logging"
	"github.com/mmcdole/gofeed"
)

// FeedSearcher answers queries from RSS/Atom feeds. An item matches when
// its title, description or content contains any query term, ignoring case,
// and its publication day lies in the query window.
type FeedSearcher struct {
	feeds  []string
	parser *gofeed.Parser
	log    logging.Logger
}

func NewFeedSearcher(feeds []string, hc *http.Client, log logging.Logger) *FeedSearcher {
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	if log == nil {
		log = logging.Nop()
	}
	fp := gofeed.NewParser()
	fp.Client = hc
	return &FeedSearcher{feeds: feeds, parser: fp, log: log}
}

func (s *FeedSearcher) Search(ctx context.Context, q Query) ([]models.Article, error) {
	terms := strings.Fields(strings.ToLower(q.Q))
	from := startOfDay(q.From)
	to := startOfDay(q.To).AddDate(0, 0, 1)

	var (
		out    []models.Article
		seen   = map[string]struct{}{}
		failed []error
	)
	for _, feedURL := range s.feeds {
		feed, err := s.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			s.log.Warn(ctx, "feed fetch failed", "feed", feedURL, "error", err)
			failed = append(failed, fmt.Errorf("%s: %w", feedURL, err))
			continue
		}
		for _, item := range feed.Items {
			a, ok := toArticle(feed, item)
			if !ok || !matches(item, terms) {
				continue
			}
			if a.PublishedAt.Before(from) || !a.PublishedAt.Before(to) {
				continue
			}
			if _, dup := seen[a.URL]; dup {
				continue
			}
			seen[a.URL] = struct{}{}
			out = append(out, a)
		}
	}
	if len(s.feeds) > 0 && len(failed) == len(s.feeds) {
		return nil, fmt.Errorf("%w: %w", common.ErrNetworkFailure, errors.Join(failed...))
	}

	slices.SortStableFunc(out, func(a, b models.Article) int {
		return b.PublishedAt.Compare(a.PublishedAt)
	})
	if q.PageSize > 0 && len(out) > q.PageSize {
		out = out[:q.PageSize]
	}
	return out, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func matches(item *gofeed.Item, terms []string) bool {
	if len(terms) == 0 {
		return false
	}
	text := strings.ToLower(item.Title + "\n" + item.Description + "\n" + item.Content)
	for _, t := range terms {
		if strings.Contains(text, t) {
			return true
		}
	}
	return false
}

func toArticle(feed *gofeed.Feed, item *gofeed.Item) (models.Article, bool) {
	if item.Link == "" {
		return models.Article{}, false
	}
	published := item.PublishedParsed
	if published == nil {
		published = item.UpdatedParsed
	}
	if published == nil {
		return models.Article{}, false
	}

	a := models.Article{
		Source:      models.Source{Name: feed.Title},
		Title:       item.Title,
		Description: item.Description,
		PublishedAt: published.UTC(),
		Content:     item.Content,
		URL:         item.Link,
	}
	if a.Content == "" {
		a.Content = item.Description
	}
	if item.Image != nil {
		a.URLToImage = item.Image.URL
	} else {
		for _, enc := range item.Enclosures {
			if strings.HasPrefix(enc.Type, "image/") {
				a.URLToImage = enc.URL
				break
			}
		}
	}
	return a, true
}
