package config

import (
	"time"

	"github.com/spf13/pflag"
)

// Flags are the command-line overrides. Only flags the user actually set
// are applied.
type Flags struct {
	fs *pflag.FlagSet

	ConfigFile          string
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

// BindFlags registers the client flags on fs.
//
//	-c, --config string            config file (JSON or TOML)
//	-b, --backend string           backend base URL
//	    --health-addr string       backend gRPC health address
//	    --news-api-url string      news search endpoint
//	    --news-api-key string      news search API key
//	    --source string            news source: newsapi or rss
//	    --feed strings             RSS feed URL (repeatable)
//	    --data-dir string          directory of the local database
//	-i, --online-check duration    online probe interval
//	    --timeout duration         request timeout
//	-l, --log-level string         debug, info, warn or error
func BindFlags(fs *pflag.FlagSet) *Flags {
	var def Config
	def.LoadDefaults()

	f := &Flags{fs: fs}
	fs.StringVarP(&f.ConfigFile, "config", "c", "", "config file (JSON or TOML)")
	fs.StringVarP(&f.BackendURL, "backend", "b", def.BackendURL, "backend base URL")
	fs.StringVar(&f.HealthAddr, "health-addr", def.HealthAddr, "backend gRPC health address")
	fs.StringVar(&f.NewsAPIURL, "news-api-url", def.NewsAPIURL, "news search endpoint")
	fs.StringVar(&f.NewsAPIKey, "news-api-key", "", "news search API key")
	fs.StringVar(&f.NewsSource, "source", def.NewsSource, "news source: newsapi or rss")
	fs.StringSliceVar(&f.RSSFeeds, "feed", nil, "RSS feed URL (repeatable)")
	fs.StringVar(&f.DataDir, "data-dir", def.DataDir, "directory of the local database")
	fs.DurationVarP(&f.OnlineCheckInterval, "online-check", "i", def.OnlineCheckInterval, "online probe interval")
	fs.DurationVar(&f.RequestTimeout, "timeout", def.RequestTimeout, "request timeout")
	fs.StringVarP(&f.LogLevel, "log-level", "l", def.LogLevel, "debug, info, warn or error")
	return f
}

// Apply copies every flag that was set on the command line into cfg.
func (f *Flags) Apply(cfg *Config) {
	changed := func(name string) bool { return f.fs.Changed(name) }

	if changed("backend") {
		cfg.BackendURL = f.BackendURL
	}
	if changed("health-addr") {
		cfg.HealthAddr = f.HealthAddr
	}
	if changed("news-api-url") {
		cfg.NewsAPIURL = f.NewsAPIURL
	}
	if changed("news-api-key") {
		cfg.NewsAPIKey = f.NewsAPIKey
	}
	if changed("source") {
		cfg.NewsSource = f.NewsSource
	}
	if changed("feed") {
		cfg.RSSFeeds = f.RSSFeeds
	}
	if changed("data-dir") {
		cfg.DataDir = f.DataDir
	}
	if changed("online-check") {
		cfg.OnlineCheckInterval = f.OnlineCheckInterval
	}
	if changed("timeout") {
		cfg.RequestTimeout = f.RequestTimeout
	}
	if changed("log-level") {
		cfg.LogLevel = f.LogLevel
	}
}

// Resolve builds the effective config: defaults, then the config file, then
// flags.
func (f *Flags) Resolve() (*Config, error) {
	cfg, err := Load(f.ConfigFile)
	if err != nil {
		return nil, err
	}
	f.Apply(cfg)
	return cfg, cfg.Validate()
}
