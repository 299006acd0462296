package client

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/newsexplorer/internal/client/models"
	"github.com/dmitrijs2005/newsexplorer/internal/common"
	"github.com/dmitrijs2005/newsexplorer/internal/logging"
	"github.com/dmitrijs2005/newsexplorer/internal/netx"
)

const defaultTimeout = 10 * time.Second

type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger
}

// NewHTTPClient returns a client for the backend at baseURL. A nil hc gets a
// client with a 10s timeout.
func NewHTTPClient(baseURL string, hc *http.Client, log logging.Logger) *HTTPClient {
	if hc == nil {
		hc = &http.Client{Timeout: defaultTimeout}
	}
	if log == nil {
		log = logging.Nop()
	}
	return &HTTPClient{baseURL: strings.TrimRight(baseURL, "/"), http: hc, log: log}
}

func (c *HTTPClient) do(ctx context.Context, method, path, token string, body, out any) error {
	r := netx.Request{Method: method, URL: c.baseURL + path, Body: body}
	if token != "" {
		r.Header = http.Header{common.AuthorizationHeaderName: {common.BearerPrefix + token}}
	}
	err := netx.DoJSON(ctx, c.http, r, out)
	if err != nil {
		c.log.Debug(ctx, "backend call failed", "method", method, "path", path, "error", err)
	}
	return mapError(err)
}

// Register creates an account. The response may be a bare user or wrapped
// in {"user": ...}.
func (c *HTTPClient) Register(ctx context.Context, reg models.Registration) (models.User, error) {
	var resp signupResponse
	if err := c.do(ctx, http.MethodPost, "/signup", "", reg, &resp); err != nil {
		return models.User{}, err
	}
	return resp.user(), nil
}

// Authorize exchanges credentials for a token. An empty token with a 2xx
// status is returned as "" without error; callers decide what that means.
func (c *HTTPClient) Authorize(ctx context.Context, creds models.Credentials) (string, error) {
	var resp tokenResponse
	if err := c.do(ctx, http.MethodPost, "/signin", "", creds, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}

func (c *HTTPClient) CheckToken(ctx context.Context, token string) (models.User, error) {
	var resp wireUser
	if err := c.do(ctx, http.MethodGet, "/users/me", token, nil, &resp); err != nil {
		return models.User{}, err
	}
	return resp.user(), nil
}

// GetSavedArticles returns the user's saved articles in server order.
func (c *HTTPClient) GetSavedArticles(ctx context.Context, token string) ([]models.SavedArticle, error) {
	var resp []wireArticle
	if err := c.do(ctx, http.MethodGet, "/articles", token, nil, &resp); err != nil {
		return nil, err
	}
	out := make([]models.SavedArticle, 0, len(resp))
	for _, w := range resp {
		out = append(out, w.saved())
	}
	return out, nil
}

func (c *HTTPClient) SaveArticle(ctx context.Context, token string, a models.Article) (models.SavedArticle, error) {
	var resp wireArticle
	if err := c.do(ctx, http.MethodPost, "/articles", token, toWire(a), &resp); err != nil {
		return models.SavedArticle{}, err
	}
	return resp.saved(), nil
}

func (c *HTTPClient) DeleteArticle(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/articles/"+url.PathEscape(id), token, nil, nil)
}
