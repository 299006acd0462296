package users

import (
	"context"

	"github.com/dmitrijs2005/newsexplorer/internal/server/models"
)

// Repository stores accounts. Emails are unique; Create reports a clash with
// common.ErrorAlreadyExists and lookups of absent users common.ErrorNotFound.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}
