// Package httpapi exposes the backend REST API over gin:
//
//	POST   /signup        create an account
//	POST   /signin        exchange credentials for a bearer token
//	GET    /users/me      current user (bearer)
//	GET    /articles      saved articles (bearer)
//	POST   /articles      save an article (bearer)
//	DELETE /articles/:id  remove a saved article (bearer)
//
// Failures are answered with {"message": "..."}.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"slices"
	"time"

	"github.com/dmitrijs2005/newsexplorer/internal/logging"
	"github.com/dmitrijs2005/newsexplorer/internal/server/models"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 10 * time.Second

type UserService interface {
	Signup(ctx context.Context, email, password, name string) (*models.User, error)
	Signin(ctx context.Context, email, password string) (string, error)
	Me(ctx context.Context, userID string) (*models.User, error)
}

type ArticleService interface {
	List(ctx context.Context, owner string) ([]models.Article, error)
	Create(ctx context.Context, owner string, article models.Article) (*models.Article, error)
	Delete(ctx context.Context, owner, id string) (*models.Article, error)
}

type Options struct {
	Address        string
	SecretKey      []byte
	AllowedOrigins []string
}

type Server struct {
	address   string
	logger    logging.Logger
	users     UserService
	articles  ArticleService
	jwtSecret []byte
	router    *gin.Engine
}

func NewServer(opts Options, l logging.Logger, us UserService, as ArticleService) *Server {
	s := &Server{
		address:   opts.Address,
		logger:    l.With("module", "http_server"),
		users:     us,
		articles:  as,
		jwtSecret: opts.SecretKey,
	}
	s.router = s.routes(opts.AllowedOrigins)
	return s
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cfg
}

func (s *Server) routes(origins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLogger())
	r.Use(cors.New(corsConfig(origins)))
	r.Use(securityHeaders())

	r.POST("/signup", s.signup)
	r.POST("/signin", s.signin)

	authed := r.Group("/", s.requireAuth())
	authed.GET("/users/me", s.me)
	authed.GET("/articles", s.listArticles)
	authed.POST("/articles", s.createArticle)
	authed.DELETE("/articles/:id", s.deleteArticle)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errorBody{Message: "Requested resource not found"})
	})

	return r
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	lis, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, lis)
}

// Serve serves on lis until ctx is cancelled, then shuts down gracefully.
func (s *Server) Serve(ctx context.Context, lis net.Listener) error {
	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		stopped <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", lis.Addr().String())

	if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-stopped
}
