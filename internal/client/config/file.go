package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/newsexplorer/internal/timex"
	"github.com/pelletier/go-toml/v2"
)

// fileConfig is the on-disk shape. Pointer fields distinguish "absent" from
// "set to the zero value".
type fileConfig struct {
	BackendURL          *string         `json:"backend_url" toml:"backend_url"`
	HealthAddr          *string         `json:"health_addr" toml:"health_addr"`
	NewsAPIURL          *string         `json:"news_api_url" toml:"news_api_url"`
	NewsAPIKey          *string         `json:"news_api_key" toml:"news_api_key"`
	NewsSource          *string         `json:"news_source" toml:"news_source"`
	RSSFeeds            []string        `json:"rss_feeds" toml:"rss_feeds"`
	DataDir             *string         `json:"data_dir" toml:"data_dir"`
	OnlineCheckInterval *timex.Duration `json:"online_check_interval" toml:"online_check_interval"`
	RequestTimeout      *timex.Duration `json:"request_timeout" toml:"request_timeout"`
	LogLevel            *string         `json:"log_level" toml:"log_level"`
}

func parseFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var fc fileConfig
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &fc)
	} else {
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc fileConfig) apply(cfg *Config) {
	setString(&cfg.BackendURL, fc.BackendURL)
	setString(&cfg.HealthAddr, fc.HealthAddr)
	setString(&cfg.NewsAPIURL, fc.NewsAPIURL)
	setString(&cfg.NewsAPIKey, fc.NewsAPIKey)
	setString(&cfg.NewsSource, fc.NewsSource)
	setString(&cfg.DataDir, fc.DataDir)
	setString(&cfg.LogLevel, fc.LogLevel)
	if fc.RSSFeeds != nil {
		cfg.RSSFeeds = fc.RSSFeeds
	}
	if fc.OnlineCheckInterval != nil {
		cfg.OnlineCheckInterval = fc.OnlineCheckInterval.Duration
	}
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
