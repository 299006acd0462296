package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/newsexplorer/internal/common"
	"github.com/dmitrijs2005/newsexplorer/internal/netx"
)

// APIError is a non-2xx backend response.
type APIError struct {
	Status  int
	Message string
	// Err is the common sentinel matching Status.
	Err error
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend %d: %s: %s", e.Status, e.Err, e.Message)
	}
	return fmt.Sprintf("backend %d: %s", e.Status, e.Err)
}

func (e *APIError) Unwrap() error { return e.Err }

func sentinelFor(status int) error {
	switch status {
	case http.StatusBadRequest:
		return common.ErrValidation
	case http.StatusUnauthorized, http.StatusForbidden:
		return common.ErrAuthFailure
	case http.StatusNotFound:
		return common.ErrNotFound
	case http.StatusConflict:
		return common.ErrEmailNotAvailable
	default:
		return common.ErrServer
	}
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	var se *netx.StatusError
	if errors.As(err, &se) {
		return &APIError{Status: se.StatusCode, Message: se.Message, Err: sentinelFor(se.StatusCode)}
	}
	return err
}
