package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/newsexplorer/internal/client/models"
	"github.com/dmitrijs2005/newsexplorer/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	method string
	path   string
	auth   string
	body   map[string]any
}

func newServer(t *testing.T, status int, reply string, rec *recorded) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rec != nil {
			rec.method = r.Method
			rec.path = r.URL.EscapedPath()
			rec.auth = r.Header.Get("Authorization")
			b, _ := io.ReadAll(r.Body)
			if len(b) > 0 {
				_ = json.Unmarshal(b, &rec.body)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL+"/", srv.Client(), nil)
}

func TestAuthorize(t *testing.T) {
	rec := &recorded{}
	c := newServer(t, http.StatusOK, `{"token":"jwt-1"}`, rec)

	tok, err := c.Authorize(context.Background(), models.Credentials{Email: "u@x.com", Password: "pw123456"})

	require.NoError(t, err)
	assert.Equal(t, "jwt-1", tok)
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/signin", rec.path)
	assert.Equal(t, "", rec.auth)
	assert.Equal(t, map[string]any{"email": "u@x.com", "password": "pw123456"}, rec.body)
}

func TestAuthorize_MissingTokenIsNotAnError(t *testing.T) {
	c := newServer(t, http.StatusOK, `{}`, nil)

	tok, err := c.Authorize(context.Background(), models.Credentials{})

	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestAuthorize_BadCredentials(t *testing.T) {
	c := newServer(t, http.StatusUnauthorized, `{"message":"Incorrect email or password"}`, nil)

	_, err := c.Authorize(context.Background(), models.Credentials{})

	require.ErrorIs(t, err, common.ErrAuthFailure)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Incorrect email or password", apiErr.Message)
}

func TestRegister_NormalisesUserShapes(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"bare", `{"_id":"u1","name":"Elise","email":"e@x.com"}`},
		{"wrapped with username", `{"user":{"_id":"u1","username":"Elise","email":"e@x.com"}}`},
		{"plain id", `{"id":"u1","name":"Elise","email":"e@x.com"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorded{}
			c := newServer(t, http.StatusCreated, tt.reply, rec)

			u, err := c.Register(context.Background(), models.Registration{Email: "e@x.com", Password: "pw123456", Name: "Elise"})

			require.NoError(t, err)
			assert.Equal(t, models.User{ID: "u1", Name: "Elise", Email: "e@x.com"}, u)
			assert.Equal(t, "/signup", rec.path)
			assert.Equal(t, "Elise", rec.body["name"])
		})
	}
}

func TestRegister_Conflict(t *testing.T) {
	c := newServer(t, http.StatusConflict, `{"message":"user exists"}`, nil)

	_, err := c.Register(context.Background(), models.Registration{})

	assert.ErrorIs(t, err, common.ErrEmailNotAvailable)
}

func TestCheckToken_SendsBearer(t *testing.T) {
	rec := &recorded{}
	c := newServer(t, http.StatusOK, `{"_id":"u1","name":"Elise","email":"e@x.com"}`, rec)

	u, err := c.CheckToken(context.Background(), "tok")

	require.NoError(t, err)
	assert.Equal(t, "Elise", u.Name)
	assert.Equal(t, "Bearer tok", rec.auth)
	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/users/me", rec.path)
}

func TestGetSavedArticles(t *testing.T) {
	reply := `[
		{"_id":"a1","source":"Wired","title":"T1","publishedAt":"2025-05-06T11:00:00Z","url":"u1","keywords":["Apple"]},
		{"_id":"a2","source":{"id":"verge","name":"The Verge"},"title":"T2","publishedAt":"2025-05-02T12:11:20Z","url":"u2","keywords":["Tech"]}
	]`
	c := newServer(t, http.StatusOK, reply, nil)

	got, err := c.GetSavedArticles(context.Background(), "tok")

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a1", got[0].ID)
	assert.Equal(t, "Wired", got[0].Source.Name)
	assert.Equal(t, "The Verge", got[1].Source.Name)
	assert.Equal(t, []string{"Tech"}, got[1].Keywords)
	assert.Equal(t, time.Date(2025, 5, 6, 11, 0, 0, 0, time.UTC), got[0].PublishedAt)
}

func TestSaveArticle_FlattensSource(t *testing.T) {
	rec := &recorded{}
	c := newServer(t, http.StatusCreated, `{"_id":"a9","source":"Wired","title":"T","url":"u9","keywords":["Apple"]}`, rec)

	a := models.Article{
		Source:   models.Source{ID: "wired", Name: "Wired"},
		Title:    "T",
		URL:      "u9",
		Keywords: []string{"Apple"},
	}
	got, err := c.SaveArticle(context.Background(), "tok", a)

	require.NoError(t, err)
	assert.Equal(t, "a9", got.ID)
	assert.Equal(t, "Wired", rec.body["source"])
	assert.Equal(t, []any{"Apple"}, rec.body["keywords"])
	assert.NotContains(t, rec.body, "_id")
}

func TestDeleteArticle(t *testing.T) {
	rec := &recorded{}
	c := newServer(t, http.StatusOK, ``, rec)

	require.NoError(t, c.DeleteArticle(context.Background(), "tok", "a/1"))

	assert.Equal(t, http.MethodDelete, rec.method)
	assert.Equal(t, "/articles/a%2F1", rec.path)
	assert.Equal(t, "Bearer tok", rec.auth)
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusBadRequest, common.ErrValidation},
		{http.StatusUnauthorized, common.ErrAuthFailure},
		{http.StatusForbidden, common.ErrAuthFailure},
		{http.StatusNotFound, common.ErrNotFound},
		{http.StatusConflict, common.ErrEmailNotAvailable},
		{http.StatusInternalServerError, common.ErrServer},
		{http.StatusTeapot, common.ErrServer},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			c := newServer(t, tt.status, `{"message":"x"}`, nil)
			err := c.DeleteArticle(context.Background(), "tok", "id")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c := NewHTTPClient(base, nil, nil)
	_, err := c.GetSavedArticles(context.Background(), "tok")

	assert.ErrorIs(t, err, common.ErrNetworkFailure)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}
