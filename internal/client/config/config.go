package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/dmitrijs2005/newsexplorer/internal/client/newsapi"
	"github.com/dmitrijs2005/newsexplorer/internal/filex"
)

const (
	SourceNewsAPI = "newsapi"
	SourceRSS     = "rss"

	appName = "newsexplorer"
)

// Config holds runtime settings for the client.
type Config struct {
	BackendURL          string
	HealthAddr          string
	NewsAPIURL          string
	NewsAPIKey          string
	NewsSource          string
	RSSFeeds            []string
	DataDir             string
	OnlineCheckInterval time.Duration
	RequestTimeout      time.Duration
	LogLevel            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BackendURL = "http://localhost:3001"
	c.HealthAddr = "127.0.0.1:50051"
	c.NewsAPIURL = newsapi.Endpoint
	c.NewsAPIKey = ""
	c.NewsSource = SourceNewsAPI
	c.RSSFeeds = nil
	c.DataDir = filex.DefaultDataDir(appName)
	c.OnlineCheckInterval = 3 * time.Second
	c.RequestTimeout = 10 * time.Second
	c.LogLevel = "warn"
}

// Load applies defaults and then the file at path, if any. Flags are applied
// by the caller once they are parsed.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if path == "" {
		return cfg, nil
	}
	if err := parseFile(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports settings that cannot work together.
func (c *Config) Validate() error {
	var errs []error
	if u, err := url.Parse(c.BackendURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("backend_url %q is not an absolute URL", c.BackendURL))
	}
	switch c.NewsSource {
	case SourceNewsAPI:
		if c.NewsAPIURL == "" {
			errs = append(errs, errors.New("news_api_url is empty"))
		}
	case SourceRSS:
		if len(c.RSSFeeds) == 0 {
			errs = append(errs, errors.New("news_source is rss but rss_feeds is empty"))
		}
	default:
		errs = append(errs, fmt.Errorf("news_source %q must be %q or %q", c.NewsSource, SourceNewsAPI, SourceRSS))
	}
	if c.OnlineCheckInterval <= 0 {
		errs = append(errs, errors.New("online_check_interval must be positive"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, errors.New("request_timeout must be positive"))
	}
	return errors.Join(errs...)
}
