package httpapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/newsexplorer/internal/common"
	"github.com/dmitrijs2005/newsexplorer/internal/server/auth"
	"github.com/gin-gonic/gin"
)

const (
	userIDKey       = "userID"
	requestIDHeader = "X-Request-ID"
)

// requestLogger tags each request with an id, echoed in X-Request-ID, and
// logs it once the handler chain finishes.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id, _ = common.MakeRandHexString(8)
		}
		c.Header(requestIDHeader, id)

		c.Next()
		s.logger.Info(c.Request.Context(), "request",
			"request_id", id,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "no-referrer")
		c.Header("Cache-Control", "no-store")
		c.Next()
	}
}

// requireAuth verifies the bearer token and stores its subject under
// userIDKey.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthorizationHeaderName)
		token, ok := strings.CutPrefix(header, common.BearerPrefix)
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{Message: "Authorization required"})
			return
		}

		userID, err := auth.GetUserIDFromToken(token, s.jwtSecret)
		if err != nil {
			s.logger.Debug(c.Request.Context(), "token rejected", "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody{Message: "Authorization required"})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

func currentUser(c *gin.Context) string {
	return c.GetString(userIDKey)
}
