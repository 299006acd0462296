package newsapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/dmitrijs2005/newsexplorer/internal/common"
	"github.com/dmitrijs2005/newsexplorer/internal/netx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultQuery(t *testing.T) {
	now := time.Date(2025, time.May, 8, 15, 0, 0, 0, time.UTC)

	q := DefaultQuery("nature", now)

	assert.Equal(t, "nature", q.Q)
	assert.Equal(t, time.Date(2025, time.May, 1, 15, 0, 0, 0, time.UTC), q.From)
	assert.Equal(t, now, q.To)
	assert.Equal(t, 100, q.PageSize)
}

func TestSearch_BuildsQueryAndDecodes(t *testing.T) {
	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "ok",
			"totalResults": 3,
			"articles": [
				{"source": {"id": "wired", "name": "Wired"}, "title": "Apple juice", "url": "https://w/1", "publishedAt": "2025-05-06T11:00:00Z"},
				{"source": {"id": null, "name": "[Removed]"}, "title": "[Removed]", "url": "https://removed.com", "publishedAt": "1970-01-01T00:00:00Z"},
				{"source": {"name": "Verge"}, "title": "No link", "url": "", "publishedAt": "2025-05-06T11:00:00Z"}
			]
		}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "secret", srv.Client(), nil)
	q := Query{Q: "apple juice", From: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), To: time.Date(2025, 5, 8, 0, 0, 0, 0, time.UTC), PageSize: 100}

	arts, err := c.Search(context.Background(), q)

	require.NoError(t, err)
	require.Len(t, arts, 1)
	assert.Equal(t, "Wired", arts[0].Source.Name)
	assert.Equal(t, "apple juice", got.Get("q"))
	assert.Equal(t, "secret", got.Get("apiKey"))
	assert.Equal(t, "2025-05-01", got.Get("from"))
	assert.Equal(t, "2025-05-08", got.Get("to"))
	assert.Equal(t, "100", got.Get("pageSize"))
}

func TestSearch_ErrorStatusInBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"error","code":"rateLimited","message":"too many requests"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, "k", srv.Client(), nil).Search(context.Background(), DefaultQuery("x", time.Now()))

	assert.ErrorIs(t, err, common.ErrServer)
	assert.Contains(t, err.Error(), "rateLimited")
}

func TestSearch_HTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status":"error","code":"apiKeyInvalid","message":"bad key"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, "k", srv.Client(), nil).Search(context.Background(), DefaultQuery("x", time.Now()))

	require.ErrorIs(t, err, common.ErrServer)
	var se *netx.StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusUnauthorized, se.StatusCode)
	assert.Equal(t, "bad key", se.Message)
}

func TestSearch_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	endpoint := srv.URL
	srv.Close()

	_, err := New(endpoint, "k", nil, nil).Search(context.Background(), DefaultQuery("x", time.Now()))

	assert.ErrorIs(t, err, common.ErrNetworkFailure)
}
