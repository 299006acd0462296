package newsapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/newsexplorer/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rssFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Park News</title>
  <link>https://parks.example</link>
  <description>News from the parks</description>
  <item>
    <title>Yellowstone bison return</title>
    <link>https://parks.example/bison</link>
    <description>Herds are back in the valley.</description>
    <pubDate>Tue, 06 May 2025 10:00:00 GMT</pubDate>
    <enclosure url="https://parks.example/bison.jpg" type="image/jpeg" length="1"/>
  </item>
  <item>
    <title>Old news about nature</title>
    <link>https://parks.example/old</link>
    <description>Nature story</description>
    <pubDate>Mon, 07 Apr 2025 10:00:00 GMT</pubDate>
  </item>
  <item>
    <title>Nature walk in spring</title>
    <link>https://parks.example/walk</link>
    <description>A quiet trail.</description>
    <pubDate>Wed, 07 May 2025 08:00:00 GMT</pubDate>
  </item>
  <item>
    <title>Budget hearing</title>
    <link>https://parks.example/budget</link>
    <description>Numbers.</description>
    <pubDate>Wed, 07 May 2025 09:00:00 GMT</pubDate>
  </item>
</channel>
</rss>`

func feedServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(rssFeed))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func windowQuery(q string) Query {
	return Query{
		Q:        q,
		From:     time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC),
		To:       time.Date(2025, 5, 8, 12, 0, 0, 0, time.UTC),
		PageSize: 100,
	}
}

func TestFeedSearcher_FiltersByTermsAndWindow(t *testing.T) {
	srv := feedServer(t)
	s := NewFeedSearcher([]string{srv.URL}, srv.Client(), nil)

	arts, err := s.Search(context.Background(), windowQuery("NATURE yellowstone"))

	require.NoError(t, err)
	require.Len(t, arts, 2)
	assert.Equal(t, "https://parks.example/walk", arts[0].URL)
	assert.Equal(t, "https://parks.example/bison", arts[1].URL)
	assert.Equal(t, "Park News", arts[1].Source.Name)
	assert.Equal(t, "https://parks.example/bison.jpg", arts[1].URLToImage)
	assert.Equal(t, "Herds are back in the valley.", arts[1].Content)
}

func TestFeedSearcher_PageSizeAndDedupe(t *testing.T) {
	srv := feedServer(t)
	s := NewFeedSearcher([]string{srv.URL, srv.URL}, srv.Client(), nil)

	q := windowQuery("nature yellowstone")
	q.PageSize = 1
	arts, err := s.Search(context.Background(), q)

	require.NoError(t, err)
	require.Len(t, arts, 1)
	assert.Equal(t, "https://parks.example/walk", arts[0].URL)
}

func TestFeedSearcher_AllFeedsFail(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	s := NewFeedSearcher([]string{addr}, nil, nil)
	_, err := s.Search(context.Background(), windowQuery("nature"))

	assert.ErrorIs(t, err, common.ErrNetworkFailure)
}

func TestFeedSearcher_PartialFailureStillAnswers(t *testing.T) {
	srv := feedServer(t)
	dead := httptest.NewServer(http.NotFoundHandler())
	deadURL := dead.URL
	dead.Close()

	s := NewFeedSearcher([]string{deadURL, srv.URL}, srv.Client(), nil)
	arts, err := s.Search(context.Background(), windowQuery("budget"))

	require.NoError(t, err)
	require.Len(t, arts, 1)
}
