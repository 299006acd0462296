package client

import (
	"encoding/json"
	"time"

	"github.com/dmitrijs2005/newsexplorer/internal/client/models"
)

// wireUser accepts both the `_id`/`id` and `name`/`username` variants.
type wireUser struct {
	MongoID  string `json:"_id"`
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (w wireUser) user() models.User {
	u := models.User{ID: w.MongoID, Name: w.Name, Email: w.Email}
	if u.ID == "" {
		u.ID = w.ID
	}
	if u.Name == "" {
		u.Name = w.Username
	}
	return u
}

// signupResponse is either a bare user or {"user": {...}}.
type signupResponse struct {
	wireUser
	User *wireUser `json:"user"`
}

func (r signupResponse) user() models.User {
	if r.User != nil {
		return r.User.user()
	}
	return r.wireUser.user()
}

type tokenResponse struct {
	Token string `json:"token"`
}

// wireSource is the publisher name. Decoding also accepts {"name": "..."}.
type wireSource string

func (s *wireSource) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err == nil {
		*s = wireSource(name)
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	*s = wireSource(obj.Name)
	return nil
}

type wireArticle struct {
	ID          string     `json:"_id,omitempty"`
	Source      wireSource `json:"source"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	PublishedAt time.Time  `json:"publishedAt"`
	Content     string     `json:"content,omitempty"`
	URLToImage  string     `json:"urlToImage,omitempty"`
	URL         string     `json:"url"`
	Keywords    []string   `json:"keywords"`
}

func toWire(a models.Article) wireArticle {
	kw := a.Keywords
	if kw == nil {
		kw = []string{}
	}
	return wireArticle{
		Source:      wireSource(a.Source.Name),
		Title:       a.Title,
		Description: a.Description,
		PublishedAt: a.PublishedAt,
		Content:     a.Content,
		URLToImage:  a.URLToImage,
		URL:         a.URL,
		Keywords:    kw,
	}
}

func (w wireArticle) saved() models.SavedArticle {
	return models.SavedArticle{
		ID: w.ID,
		Article: models.Article{
			Source:      models.Source{Name: string(w.Source)},
			Title:       w.Title,
			Description: w.Description,
			PublishedAt: w.PublishedAt,
			Content:     w.Content,
			URLToImage:  w.URLToImage,
			URL:         w.URL,
			Keywords:    w.Keywords,
		},
	}
}
