// Package models defines the client-side data types shared by the session,
// saved-article store and search flow.
package models

import "time"

// Source identifies the publisher of an article.
type Source struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// Article is a search result. URL is its identity within a result batch.
type Article struct {
	Source      Source    `json:"source"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	PublishedAt time.Time `json:"publishedAt"`
	Content     string    `json:"content,omitempty"`
	URLToImage  string    `json:"urlToImage,omitempty"`
	URL         string    `json:"url"`
	Keywords    []string  `json:"keywords,omitempty"`
}

// GetKeywords returns the article's keyword tags in their stored order.
func (a Article) GetKeywords() []string { return a.Keywords }

// WithKeywords returns a copy of a tagged with keywords.
func (a Article) WithKeywords(keywords []string) Article {
	a.Keywords = append([]string(nil), keywords...)
	return a
}

// SavedArticle is an Article persisted by the backend under an opaque ID.
// Save and delete look entries up by URL; ID is only needed for the delete call.
type SavedArticle struct {
	ID string `json:"_id"`
	Article
}

// User is the normalised identity returned by the backend.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Credentials is the sign-in request.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Registration is the sign-up request.
type Registration struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}
