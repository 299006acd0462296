// Package config loads runtime configuration for the newsexplorer client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file given with -c/--config. Files ending in .toml are
//     read as TOML, anything else as JSON.
//  3. Command-line flags (see BindFlags), which override earlier values.
//
// # File schema
//
// Durations use timex.Duration, so they can be strings like "3s" or integer
// nanoseconds (JSON only):
//
//	{
//	  "backend_url": "http://localhost:3001",
//	  "health_addr": "127.0.0.1:50051",
//	  "news_api_url": "https://newsapi.org/v2/everything",
//	  "news_api_key": "...",
//	  "news_source": "newsapi",
//	  "rss_feeds": ["https://example.com/rss"],
//	  "data_dir": "/home/me/.config/newsexplorer",
//	  "online_check_interval": "3s",
//	  "request_timeout": "10s",
//	  "log_level": "info"
//	}
//
// Keys missing from the file keep their previous value.
package config
