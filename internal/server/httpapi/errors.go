package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/newsexplorer/internal/common"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type errorBody struct {
	Message string `json:"message"`
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrValidation):
		return http.StatusBadRequest, strings.TrimPrefix(err.Error(), common.ErrValidation.Error()+": ")
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized, "Incorrect email or password"
	case errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized, "Authorization required"
	case errors.Is(err, common.ErrorForbidden):
		return http.StatusForbidden, "You can only delete your own articles"
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, "Requested resource not found"
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusConflict, "This email is not available"
	default:
		return http.StatusInternalServerError, "An error occurred on the server"
	}
}

func (s *Server) writeError(c *gin.Context, err error) {
	status, msg := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, errorBody{Message: msg})
}

// bindError turns a binding failure into a 400 naming the first bad field.
func (s *Server) bindError(c *gin.Context, err error) {
	msg := "Invalid request body"
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		msg = fmt.Sprintf("%s: failed on %q", strings.ToLower(fe.Field()), fe.Tag())
	}
	c.JSON(http.StatusBadRequest, errorBody{Message: msg})
}
