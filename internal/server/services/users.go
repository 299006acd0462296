package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/newsexplorer/internal/common"
	"github.com/dmitrijs2005/newsexplorer/internal/cryptox"
	"github.com/dmitrijs2005/newsexplorer/internal/server/auth"
	"github.com/dmitrijs2005/newsexplorer/internal/server/config"
	"github.com/dmitrijs2005/newsexplorer/internal/server/models"
	"github.com/dmitrijs2005/newsexplorer/internal/server/repositories/repomanager"
)

var validate = validator.New()

// UserService registers accounts, checks credentials and issues tokens.
type UserService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	jwtSecret     []byte
	tokenValidity time.Duration
	bcryptCost    int
}

// NewUserService constructs a UserService. db may be nil for in-memory
// repositories.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:            db,
		repomanager:   m,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidity,
		bcryptCost:    cfg.BcryptCost,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup creates an account. The email is trimmed and lower-cased before it
// is checked for uniqueness.
func (s *UserService) Signup(ctx context.Context, email, password, name string) (*models.User, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)

	if err := validate.Var(email, "required,email"); err != nil {
		return nil, fmt.Errorf("%w: invalid email", common.ErrValidation)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", common.ErrValidation)
	}

	hash, err := cryptox.HashPassword([]byte(password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, cryptox.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: %v", common.ErrValidation, err)
		}
		return nil, common.ErrorInternal
	}

	u, err := s.repomanager.Users(conn(s.db)).Create(ctx, &models.User{Email: email, Name: name, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Signin verifies credentials and returns a signed bearer token. Unknown
// emails and wrong passwords are indistinguishable to the caller.
func (s *UserService) Signin(ctx context.Context, email, password string) (string, error) {
	user, err := s.repomanager.Users(conn(s.db)).GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	if !cryptox.CheckPassword(user.PasswordHash, []byte(password)) {
		return "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}

// Me returns the account behind a verified token subject.
func (s *UserService) Me(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.repomanager.Users(conn(s.db)).GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	return u, nil
}
