// Package newsapi searches news articles, either through a NewsAPI-compatible
// "everything" endpoint or by filtering a set of RSS/Atom feeds.
package newsapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/newsexplorer/internal/client/models"
	"github.com/dmitrijs2005/newsexplorer/internal/common"
	"github.com/dmitrijs2005/newsexplorer/internal/logging"
	"github.com/dmitrijs2005/newsexplorer/internal/netx"
)

const (
	// Endpoint is the public NewsAPI endpoint.
	Endpoint = "https://newsapi.org/v2/everything"
	// ProxyEndpoint serves the same API without CORS or key restrictions.
	ProxyEndpoint = "https://nomoreparties.co/news/v2/everything"

	DefaultWindow   = 7 * 24 * time.Hour
	DefaultPageSize = 100

	removedPlaceholder = "[Removed]"
)

// Query is one search request. From and To are whole days.
type Query struct {
	Q        string
	From     time.Time
	To       time.Time
	PageSize int
}

// DefaultQuery searches q over the 7 days ending at now, 100 results.
func DefaultQuery(q string, now time.Time) Query {
	return Query{Q: q, From: now.Add(-DefaultWindow), To: now, PageSize: DefaultPageSize}
}

type Searcher interface {
	Search(ctx context.Context, q Query) ([]models.Article, error)
}

type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
	log      logging.Logger
}

func New(endpoint, apiKey string, hc *http.Client, log logging.Logger) *Client {
	if endpoint == "" {
		endpoint = Endpoint
	}
	if hc == nil {
		hc = &http.Client{Timeout: 15 * time.Second}
	}
	if log == nil {
		log = logging.Nop()
	}
	return &Client{endpoint: endpoint, apiKey: apiKey, http: hc, log: log}
}

type response struct {
	Status       string           `json:"status"`
	TotalResults int              `json:"totalResults"`
	Articles     []models.Article `json:"articles"`
	Code         string           `json:"code"`
	Message      string           `json:"message"`
}

func (c *Client) Search(ctx context.Context, q Query) ([]models.Article, error) {
	v := url.Values{}
	v.Set("q", q.Q)
	v.Set("apiKey", c.apiKey)
	v.Set("from", models.FormatQueryDate(q.From))
	v.Set("to", models.FormatQueryDate(q.To))
	v.Set("pageSize", strconv.Itoa(q.PageSize))

	u := c.endpoint
	if strings.Contains(u, "?") {
		u += "&" + v.Encode()
	} else {
		u += "?" + v.Encode()
	}

	var resp response
	err := netx.DoJSON(ctx, c.http, netx.Request{Method: http.MethodGet, URL: u}, &resp)
	if err != nil {
		var se *netx.StatusError
		if errors.As(err, &se) {
			return nil, fmt.Errorf("news search: %w: %w", common.ErrServer, se)
		}
		return nil, fmt.Errorf("news search: %w", err)
	}
	if resp.Status == "error" {
		return nil, fmt.Errorf("news search: %w: %s: %s", common.ErrServer, resp.Code, resp.Message)
	}

	out := make([]models.Article, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		if a.URL == "" || a.Title == removedPlaceholder {
			continue
		}
		out = append(out, a)
	}
	c.log.Debug(ctx, "news search done", "q", q.Q, "total", resp.TotalResults, "kept", len(out))
	return out, nil
}
