package models

import "time"

// Article is a news article saved by Owner.
type Article struct {
	ID          string
	Owner       string
	Keywords    []string
	Title       string
	Description string
	Content     string
	Source      string
	URL         string
	URLToImage  string
	PublishedAt time.Time
	CreatedAt   time.Time
}
