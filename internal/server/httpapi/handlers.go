package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/newsexplorer/internal/common"
	"github.com/dmitrijs2005/newsexplorer/internal/server/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type signupRequest struct {
	Email    string `json:"email" binding:"required,email,max=254"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Name     string `json:"name" binding:"required,min=2,max=30"`
}

type signinRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type articleRequest struct {
	Keywords    []string  `json:"keywords"`
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	Source      string    `json:"source"`
	URL         string    `json:"url" binding:"required,url"`
	URLToImage  string    `json:"urlToImage"`
	PublishedAt time.Time `json:"publishedAt"`
}

type articleResponse struct {
	ID          string    `json:"_id"`
	Keywords    []string  `json:"keywords"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Content     string    `json:"content"`
	Source      string    `json:"source"`
	URL         string    `json:"url"`
	URLToImage  string    `json:"urlToImage"`
	PublishedAt time.Time `json:"publishedAt"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

func toArticleResponse(a *models.Article) articleResponse {
	kw := a.Keywords
	if kw == nil {
		kw = []string{}
	}
	return articleResponse{
		ID:          a.ID,
		Keywords:    kw,
		Title:       a.Title,
		Description: a.Description,
		Content:     a.Content,
		Source:      a.Source,
		URL:         a.URL,
		URLToImage:  a.URLToImage,
		PublishedAt: a.PublishedAt,
	}
}

func (s *Server) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.bindError(c, err)
		return
	}

	u, err := s.users.Signup(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toUserResponse(u))
}

func (s *Server) signin(c *gin.Context) {
	var req signinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.bindError(c, err)
		return
	}

	token, err := s.users.Signin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokenResponse{Token: token})
}

func (s *Server) me(c *gin.Context) {
	u, err := s.users.Me(c.Request.Context(), currentUser(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(u))
}

func (s *Server) listArticles(c *gin.Context) {
	list, err := s.articles.List(c.Request.Context(), currentUser(c))
	if err != nil {
		s.writeError(c, err)
		return
	}

	out := make([]articleResponse, 0, len(list))
	for i := range list {
		out = append(out, toArticleResponse(&list[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) createArticle(c *gin.Context) {
	var req articleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.bindError(c, err)
		return
	}

	a, err := s.articles.Create(c.Request.Context(), currentUser(c), models.Article{
		Keywords:    req.Keywords,
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		Source:      req.Source,
		URL:         req.URL,
		URLToImage:  req.URLToImage,
		PublishedAt: req.PublishedAt,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toArticleResponse(a))
}

func (s *Server) deleteArticle(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		s.writeError(c, common.ErrorNotFound)
		return
	}

	a, err := s.articles.Delete(c.Request.Context(), currentUser(c), id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toArticleResponse(a))
}
